package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"

	"hotel-ops-backend/internal/model"
	"hotel-ops-backend/internal/mw"
	"hotel-ops-backend/internal/parse"
	"hotel-ops-backend/internal/store"
)

// Dispatcher hands urgent notifications to the push workers.
type Dispatcher interface {
	Dispatch(notificationID int64)
}

// Options tunes the handler. Zero values fall back to defaults.
type Options struct {
	Location    *time.Location
	SearchLimit int
	LogLimit    int
	Push        Dispatcher
	Cache       *mw.ResponseCache
	Now         func() time.Time
}

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store       store.Store
	webpush     *webpush.Options
	push        Dispatcher
	cache       *mw.ResponseCache
	loc         *time.Location
	searchLimit int
	logLimit    int
	now         func() time.Time
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, webpushOptions *webpush.Options, opts Options) *Handler {
	h := &Handler{
		store:       s,
		webpush:     webpushOptions,
		push:        opts.Push,
		cache:       opts.Cache,
		loc:         opts.Location,
		searchLimit: opts.SearchLimit,
		logLimit:    opts.LogLimit,
		now:         opts.Now,
	}
	if h.loc == nil {
		h.loc = time.UTC
	}
	if h.searchLimit <= 0 {
		h.searchLimit = 5
	}
	if h.logLimit <= 0 {
		h.logLimit = 20
	}
	if h.now == nil {
		h.now = time.Now
	}
	return h
}

// today is the hotel-local calendar day as UTC midnight.
func (h *Handler) today() time.Time {
	return parse.DayOf(h.now(), h.loc)
}

func tenantOf(c *gin.Context) int64 {
	id, _ := mw.TenantID(c)
	return id
}

// notify posts a system notification. Failures are logged, never returned:
// the operation that triggered it has already succeeded.
func (h *Handler) notify(c *gin.Context, message, priority string) {
	n, err := h.store.Notify(c.Request.Context(), tenantOf(c), message, priority)
	if err != nil {
		log.Printf("failed to post notification %q: %v", message, err)
		return
	}
	h.dispatch(n)
}

// dispatch hands urgent notifications to the push workers.
func (h *Handler) dispatch(n model.Notification) {
	if n.Priority == model.PriorityUrgent && h.push != nil {
		h.push.Dispatch(n.ID)
	}
}

// idParam parses a positive integer path parameter, responding 400 otherwise.
func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

func badRequest(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
}

// respondError maps store errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, store.ErrForbiddenRoom):
		status = http.StatusForbidden
	case errors.Is(err, store.ErrDuplicateRoom),
		errors.Is(err, store.ErrEndpointTaken):
		status = http.StatusConflict
	case errors.Is(err, store.ErrInvalidState),
		errors.Is(err, store.ErrInvalidDates),
		errors.Is(err, store.ErrPastBooking),
		errors.Is(err, store.ErrOverlap):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		log.Printf("internal error on %s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
