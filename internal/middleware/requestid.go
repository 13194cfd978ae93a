package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader carries the request id on both request and
	// response; a client-supplied id is kept so callers can correlate
	// retries.
	RequestIDHeader = "X-Request-ID"

	// ContextRequestID is the gin context key the logger, error, and
	// recovery middleware read the id from.
	ContextRequestID = "request_id"
)

// RequestID tags every request with an id that the log lines and error
// envelopes of the same request share.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(RequestIDHeader)
		if rid == "" {
			rid = uuid.New().String()
		}

		c.Set(ContextRequestID, rid)
		c.Header(RequestIDHeader, rid)
		c.Next()
	}
}
