package stream

import (
	"github.com/kbukum/rxkit/logger"
)

// Trace logs every event of each subscription to p, prefixed with name,
// at Config.TraceLevel:
//
//	receive subscription
//	receive value       value=3
//	receive cancel
//	receive finished
//	receive failure     error=...
func Trace[T any](p Publisher[T], name string, opts ...Option) Publisher[T] {
	o := applyOptions(opts)
	level := o.cfg.TraceLevel

	return PublisherFunc[T](func(s Subscriber[T]) {
		log := o.log.WithFields(logger.Fields(logger.FieldStream, name))

		HandleEvents(p, Hooks[T]{
			OnSubscribe: func(sub Subscription) {
				log = log.WithFields(logger.Fields(logger.FieldSubscriptionID, sub.ID()))
				log.Log(level, "receive subscription")
			},
			OnValue: func(v T) {
				log.Log(level, "receive value", logger.Fields(logger.FieldValue, v))
			},
			OnCompletion: func(c Completion) {
				if c.IsFailure() {
					log.Log(level, "receive failure", logger.Fields(logger.FieldError, c.Err().Error()))
					return
				}
				log.Log(level, "receive finished")
			},
			OnCancel: func() {
				log.Log(level, "receive cancel")
			},
		}).Subscribe(s)
	})
}
