package mw

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
)

type cacheEntry struct {
	status      int
	contentType string
	body        []byte
}

// captureWriter tees the response body so it can be stored after the handler runs.
type captureWriter struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *captureWriter) WriteString(s string) (int, error) {
	w.buf.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// ResponseCache keeps successful GET responses in memory per caller.
type ResponseCache struct {
	entries *cache.Cache
	ttl     time.Duration
}

// NewResponseCache returns a cache whose entries expire after ttl.
func NewResponseCache(ttl time.Duration) *ResponseCache {
	return &ResponseCache{entries: cache.New(ttl, 2*ttl), ttl: ttl}
}

// Flush drops every entry. Call it after writes to cached resources.
func (rc *ResponseCache) Flush() {
	rc.entries.Flush()
}

// Handler serves repeated GET requests from memory. Entries are keyed by the
// caller and the request URI so tenants never see each other's responses.
func (rc *ResponseCache) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := callerKey(c) + " " + c.Request.RequestURI
		if v, ok := rc.entries.Get(key); ok {
			entry := v.(cacheEntry)
			if entry.contentType != "" {
				c.Header("Content-Type", entry.contentType)
			}
			c.Header("X-Cache", "HIT")
			c.Status(entry.status)
			c.Writer.Write(entry.body)
			c.Abort()
			return
		}

		cw := &captureWriter{ResponseWriter: c.Writer}
		c.Writer = cw
		c.Next()

		if status := cw.Status(); status >= 200 && status < 300 {
			rc.entries.Set(key, cacheEntry{
				status:      status,
				contentType: cw.Header().Get("Content-Type"),
				body:        bytes.Clone(cw.buf.Bytes()),
			}, rc.ttl)
		}
	}
}
