package redis

import (
	"context"
	"encoding/json"

	"github.com/kbukum/rxkit/errors"
	"github.com/kbukum/rxkit/stream"
)

// SubscribeJSON is Subscribe with every payload decoded into T. A payload
// that does not decode fails the stream with INVALID_INPUT.
func SubscribeJSON[T any](ctx context.Context, c *Client, channel string) stream.Publisher[T] {
	return subscribe(ctx, c, channel, func(payload string) (T, error) {
		var v T
		if err := json.Unmarshal([]byte(payload), &v); err != nil {
			return v, errors.InvalidInput("payload", "not valid JSON for the channel type").
				WithCause(err).WithDetail("channel", channel)
		}
		return v, nil
	})
}

// PublishJSON is Publish with every value JSON-encoded.
func PublishJSON[T any](ctx context.Context, c *Client, channel string, src stream.Publisher[T]) *Publication {
	return publish(ctx, c, channel, src, func(v T) (any, error) {
		data, err := json.Marshal(v)
		if err != nil {
			return nil, errors.Internal(err)
		}
		return data, nil
	})
}
