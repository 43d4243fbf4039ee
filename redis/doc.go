// Package redis bridges Redis PUBSUB channels and rxkit streams.
//
// Subscribe turns a channel into a stream.Publisher; Publish drains a
// Publisher into a channel. The JSON variants encode and decode typed
// payloads.
//
//	client, err := redis.New(redis.Config{Addr: "localhost:6379"}, logger.Get("redis"))
//	prices := redis.SubscribeJSON[Quote](ctx, client, "quotes")
//	pub := redis.Publish(ctx, client, "alerts", stream.Map(prices, toAlert))
//	defer pub.Cancel()
package redis
