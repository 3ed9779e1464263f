package mw

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader carries the correlation id of a request.
const RequestIDHeader = "X-Request-ID"

// RequestID tags each request with an id, reusing the caller's when present,
// and logs one line per request.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("requestID", id)
		c.Header(RequestIDHeader, id)

		start := time.Now()
		c.Next()
		log.Printf("[%s] %s %s %d %s", id, c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}
