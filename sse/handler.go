package sse

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/kbukum/rxkit/errors"
	"github.com/kbukum/rxkit/logger"
	"github.com/kbukum/rxkit/stream"
)

var errIdle = stderrors.New("sse: idle")

// Serve subscribes to p and writes its events to w until p completes or the
// client disconnects. It returns nil when the stream ended normally or the
// client went away, and the write or encoding error otherwise.
func Serve[T any](w http.ResponseWriter, r *http.Request, p stream.Publisher[T], opts ...Option) error {
	o := applyOptions(opts)
	fields := logger.Fields(logger.FieldStream, o.name, "remote_addr", r.RemoteAddr)

	flusher, ok := w.(http.Flusher)
	if !ok {
		o.log.Error("streaming not supported", fields)
		appErr := errors.New(errors.ErrCodeInternal, "streaming not supported")
		writeError(w, appErr)
		return appErr
	}

	// Event streams are long-lived; lift any server WriteTimeout.
	rc := http.NewResponseController(w)
	if err := rc.SetWriteDeadline(time.Time{}); err != nil {
		o.log.Debug("could not disable write deadline", logger.ErrorFields("set_write_deadline", err))
	}

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ctx := r.Context()
	it := stream.Values(ctx, p, o.streamOpts...)
	defer it.Close()

	ew := &eventWriter{w: w, flusher: flusher}
	o.log.Debug("client connected", fields)

	for {
		v, ok, err := nextWithin(ctx, it, o.keepAlive)
		switch {
		case ctx.Err() != nil:
			o.log.Debug("client disconnected", logger.MergeWithError(fields, ctx.Err()))
			return nil
		case err == errIdle:
			if werr := ew.comment("keepalive"); werr != nil {
				return werr
			}
		case ok:
			data, merr := json.Marshal(v)
			if merr != nil {
				appErr := errors.Internal(merr)
				o.log.Error("encode value failed", logger.MergeWithError(fields, merr))
				_ = ew.final(EventFailure, appErr.ToResponse())
				return appErr
			}
			if werr := ew.value(data); werr != nil {
				return werr
			}
		case err != nil:
			o.log.Debug("stream failed", logger.MergeWithError(fields, err))
			return ew.final(EventFailure, errors.FromError(o.name, err).ToResponse())
		default:
			o.log.Debug("stream finished", logger.Fields(logger.FieldStream, o.name, logger.FieldCount, ew.seq))
			return ew.final(EventFinished, struct{}{})
		}
	}
}

// nextWithin waits at most d for the next event and reports errIdle when
// nothing arrived in time.
func nextWithin[T any](ctx context.Context, it stream.Iterator[T], d time.Duration) (T, bool, error) {
	if d <= 0 {
		return it.Next(ctx)
	}
	waitCtx, cancel := context.WithTimeout(ctx, d)
	defer cancel()
	v, ok, err := it.Next(waitCtx)
	if err != nil && ctx.Err() == nil && waitCtx.Err() != nil && stderrors.Is(err, waitCtx.Err()) {
		return v, false, errIdle
	}
	return v, ok, err
}

// Handler adapts factory to an http.Handler. factory builds the Publisher
// served for a request; an error it returns is answered with a JSON error
// body instead of an event stream.
func Handler[T any](factory func(r *http.Request) (stream.Publisher[T], error), opts ...Option) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		o := applyOptions(opts)
		p, err := factory(r)
		if err != nil {
			writeError(w, errors.FromError(o.name, err))
			return
		}
		if err := Serve(w, r, p, opts...); err != nil {
			o.log.Warn("event stream aborted", logger.MergeWithError(logger.Fields(logger.FieldStream, o.name), err))
		}
	})
}

func writeError(w http.ResponseWriter, appErr *errors.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusCode(appErr))
	_ = json.NewEncoder(w).Encode(appErr.ToResponse())
}

// StatusCode maps an AppError code to the HTTP status used when a stream
// cannot be started.
func StatusCode(appErr *errors.AppError) int {
	switch appErr.Code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeMissingField:
		return http.StatusBadRequest
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case errors.ErrCodeServiceUnavailable, errors.ErrCodeConnectionFailed:
		return http.StatusServiceUnavailable
	case errors.ErrCodeUpstreamFailure:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
