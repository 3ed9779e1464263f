package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-ops-backend/internal/algo"
	"hotel-ops-backend/internal/model"
)

// GetCleaningRoute handles GET /api/route: rooms being cleaned, walked in
// room number order.
func (h *Handler) GetCleaningRoute(c *gin.Context) {
	rooms, err := h.store.RoomsInState(c.Request.Context(), tenantOf(c), model.RoomCleaning)
	if err != nil {
		respondError(c, err)
		return
	}
	stops := make([]algo.RouteStop, 0, len(rooms))
	for _, r := range rooms {
		stops = append(stops, algo.RouteStop{Number: r.Number, ID: r.ID})
	}
	route := algo.BuildCleaningRoute(stops)
	c.JSON(http.StatusOK, gin.H{"route": route.Stops(), "count": route.Len()})
}

// StartDayCleaning handles POST /api/route/start-day.
func (h *Handler) StartDayCleaning(c *gin.Context) {
	n, err := h.store.StartDayCleaning(c.Request.Context(), tenantOf(c))
	if err != nil {
		respondError(c, err)
		return
	}
	h.notify(c, fmt.Sprintf("Start of day: %d rooms set to cleaning", n), model.PriorityNormal)
	c.JSON(http.StatusOK, gin.H{"updated": n})
}

// MarkRoomCleaned handles POST /api/route/:id/clean.
func (h *Handler) MarkRoomCleaned(c *gin.Context) {
	roomID, ok := idParam(c, "id")
	if !ok {
		return
	}
	room, err := h.store.MarkRoomCleaned(c.Request.Context(), tenantOf(c), roomID, h.today())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toRoomResponse(room))
}

// ResetAllRooms handles POST /api/route/reset.
func (h *Handler) ResetAllRooms(c *gin.Context) {
	n, err := h.store.ResetAllRooms(c.Request.Context(), tenantOf(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": n})
}
