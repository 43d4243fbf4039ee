package sse

import (
	"github.com/gin-gonic/gin"

	"github.com/kbukum/rxkit/errors"
	"github.com/kbukum/rxkit/logger"
	"github.com/kbukum/rxkit/stream"
)

// GinHandler adapts factory to a gin route.
func GinHandler[T any](factory func(c *gin.Context) (stream.Publisher[T], error), opts ...Option) gin.HandlerFunc {
	return func(c *gin.Context) {
		o := applyOptions(opts)
		p, err := factory(c)
		if err != nil {
			appErr := errors.FromError(o.name, err)
			c.AbortWithStatusJSON(StatusCode(appErr), appErr.ToResponse())
			return
		}
		if err := Serve(c.Writer, c.Request, p, opts...); err != nil {
			o.log.Warn("event stream aborted", logger.MergeWithError(logger.Fields(logger.FieldStream, o.name), err))
		}
	}
}
