package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-ops-backend/internal/model"
	"hotel-ops-backend/internal/parse"
	"hotel-ops-backend/internal/store"
)

// GetDND handles GET /api/dnd.
func (h *Handler) GetDND(c *gin.Context) {
	entries, err := h.store.DNDSet(c.Request.Context(), tenantOf(c))
	if err != nil {
		respondError(c, err)
		return
	}
	rooms := make([]string, 0, len(entries))
	for _, e := range entries {
		rooms = append(rooms, e.RoomNumber)
	}
	c.JSON(http.StatusOK, gin.H{"rooms": rooms})
}

type toggleDNDRequest struct {
	Room string `json:"room" binding:"required"`
}

// ToggleDND handles POST /api/dnd/toggle.
func (h *Handler) ToggleDND(c *gin.Context) {
	var req toggleDNDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	room, err := parse.RoomNumber(req.Room)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	on, err := h.store.ToggleDND(c.Request.Context(), tenantOf(c), room)
	if err != nil {
		respondError(c, err)
		return
	}
	if on {
		h.notify(c, fmt.Sprintf("Room %s set to Do Not Disturb", room), model.PriorityNormal)
	}
	c.JSON(http.StatusOK, gin.H{"room": room, "dnd": on})
}

// GetNotifications handles GET /api/notifications, oldest first.
func (h *Handler) GetNotifications(c *gin.Context) {
	queue, err := h.store.Notifications(c.Request.Context(), tenantOf(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, queue)
}

type addNotificationRequest struct {
	Message  string `json:"message" binding:"required,max=255"`
	Priority string `json:"priority" binding:"omitempty,oneof=Normal Urgent"`
}

// AddNotification handles POST /api/notifications.
func (h *Handler) AddNotification(c *gin.Context) {
	var req addNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	n, err := h.store.Notify(c.Request.Context(), tenantOf(c), req.Message, req.Priority)
	if err != nil {
		respondError(c, err)
		return
	}
	h.dispatch(n)
	c.JSON(http.StatusCreated, n)
}

// PopNotification handles POST /api/notifications/pop.
func (h *Handler) PopNotification(c *gin.Context) {
	n, err := h.store.PopNotification(c.Request.Context(), tenantOf(c))
	if store.IsNotFound(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no notifications"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, n)
}

// GetActionLogs handles GET /api/logs, newest first.
func (h *Handler) GetActionLogs(c *gin.Context) {
	logs, err := h.store.ActionLogs(c.Request.Context(), tenantOf(c), h.logLimit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}

// WaitlistResponse is a waitlist entry with its 1-based position.
type WaitlistResponse struct {
	model.WaitlistEntry
	Position int `json:"position"`
}

// GetWaitlist handles GET /api/waitlist.
func (h *Handler) GetWaitlist(c *gin.Context) {
	entries, err := h.store.Waitlist(c.Request.Context(), tenantOf(c))
	if err != nil {
		respondError(c, err)
		return
	}
	resp := make([]WaitlistResponse, 0, len(entries))
	for i, e := range entries {
		resp = append(resp, WaitlistResponse{WaitlistEntry: e, Position: i + 1})
	}
	c.JSON(http.StatusOK, resp)
}

type addToWaitlistRequest struct {
	GuestName string `json:"guest_name" binding:"required,max=100"`
	RoomType  string `json:"room_type" binding:"required,max=50"`
}

// AddToWaitlist handles POST /api/waitlist.
func (h *Handler) AddToWaitlist(c *gin.Context) {
	var req addToWaitlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	e, err := h.store.AddToWaitlist(c.Request.Context(), tenantOf(c), req.GuestName, req.RoomType)
	if err != nil {
		respondError(c, err)
		return
	}
	h.notify(c, fmt.Sprintf("Waitlist: %s (%s)", e.GuestName, e.RoomType), model.PriorityNormal)
	c.JSON(http.StatusCreated, e)
}

// PopWaitlist handles POST /api/waitlist/pop.
func (h *Handler) PopWaitlist(c *gin.Context) {
	e, err := h.store.PopWaitlist(c.Request.Context(), tenantOf(c))
	if store.IsNotFound(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": "waitlist is empty"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}
