// Package sse streams Publishers to HTTP clients as Server-Sent Events.
//
// Every value becomes a "value" event whose data is the JSON encoding of
// the value. The stream ends with a single "finished" or "failure" event;
// failures carry an errors.ErrorResponse body. When the client goes away
// the request context is cancelled and so is the subscription.
//
// # Usage
//
//	router.GET("/ticks", sse.GinHandler(func(c *gin.Context) (stream.Publisher[int], error) {
//		return stream.Prefix[int](ticks, 10), nil
//	}))
package sse
