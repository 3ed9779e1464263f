package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-ops-backend/internal/algo"
	"hotel-ops-backend/internal/model"
)

func (h *Handler) toServiceOrder(o model.RoomServiceOrder) algo.ServiceOrder {
	return algo.ServiceOrder{
		ID:          o.ID,
		RoomNumber:  o.Room.Number,
		Item:        o.Item,
		Timestamp:   float64(o.Timestamp.UnixNano()) / 1e9,
		TimeDisplay: o.Timestamp.In(h.loc).Format("15:04"),
	}
}

// GetServiceHeap handles GET /api/service/heap. It returns the heap array
// as built, which is heap-ordered rather than sorted, and the oldest order.
func (h *Handler) GetServiceHeap(c *gin.Context) {
	orders, err := h.store.ServiceOrders(c.Request.Context(), tenantOf(c))
	if err != nil {
		respondError(c, err)
		return
	}

	items := make([]algo.ServiceOrder, 0, len(orders))
	for _, o := range orders {
		items = append(items, h.toServiceOrder(o))
	}
	heap := algo.BuildServiceHeap(items)

	resp := gin.H{"heap": heap.Snapshot(), "next": nil}
	if next, ok := heap.Peek(); ok {
		resp["next"] = next
	}
	c.JSON(http.StatusOK, resp)
}

type addServiceOrderRequest struct {
	RoomID int64  `json:"room_id" binding:"required,gt=0"`
	Item   string `json:"item" binding:"required,max=100"`
}

// AddServiceOrder handles POST /api/service.
func (h *Handler) AddServiceOrder(c *gin.Context) {
	var req addServiceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	order, err := h.store.AddServiceOrder(c.Request.Context(), tenantOf(c), req.RoomID, req.Item)
	if err != nil {
		respondError(c, err)
		return
	}
	h.notify(c, fmt.Sprintf("Room service: %s for room %s", order.Item, order.Room.Number), model.PriorityNormal)
	c.JSON(http.StatusCreated, h.toServiceOrder(order))
}

// CompleteServiceOrder handles DELETE /api/service/:id.
func (h *Handler) CompleteServiceOrder(c *gin.Context) {
	orderID, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.store.CompleteServiceOrder(c.Request.Context(), tenantOf(c), orderID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
