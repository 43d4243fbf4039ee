// Package logger provides structured logging for rxkit using zerolog.
//
// Stream operators resolve their logger through the named registry, so a
// service can route stream tracing to its own sink:
//
//	logger.Register("stream", logger.New(&cfg, "prices"))
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("stream")
//	log.Info("subscribed", logger.Fields(logger.FieldSubscriptionID, id))
package logger
