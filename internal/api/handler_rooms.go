package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-ops-backend/internal/model"
	"hotel-ops-backend/internal/parse"
)

// RoomResponse is the JSON shape of a room.
type RoomResponse struct {
	ID         int64   `json:"id"`
	Number     string  `json:"number"`
	RoomTypeID int64   `json:"room_type_id"`
	RoomType   string  `json:"room_type"`
	Price      float64 `json:"price"`
	State      string  `json:"state"`
	StateLabel string  `json:"state_label"`
}

// RoomStatusResponse adds the date hint shown on the status board.
type RoomStatusResponse struct {
	RoomResponse
	DateInfo string `json:"date_info"`
}

func toRoomResponse(r model.Room) RoomResponse {
	return RoomResponse{
		ID:         r.ID,
		Number:     r.Number,
		RoomTypeID: r.RoomTypeID,
		RoomType:   r.RoomType.Name,
		Price:      r.PricePerNight,
		State:      r.State,
		StateLabel: model.RoomStateLabel(r.State),
	}
}

// GetRoomTypes handles GET /api/room-types.
func (h *Handler) GetRoomTypes(c *gin.Context) {
	types, err := h.store.ListRoomTypes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types)
}

type createRoomTypeRequest struct {
	Name        string `json:"name" binding:"required,max=50"`
	Description string `json:"description"`
	Capacity    int    `json:"capacity" binding:"required,min=1"`
}

// CreateRoomType handles POST /api/room-types.
func (h *Handler) CreateRoomType(c *gin.Context) {
	var req createRoomTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	rt := model.RoomType{Name: req.Name, Description: req.Description, Capacity: req.Capacity}
	if err := h.store.CreateRoomType(c.Request.Context(), &rt); err != nil {
		respondError(c, err)
		return
	}
	if h.cache != nil {
		h.cache.Flush()
	}
	c.JSON(http.StatusCreated, rt)
}

// GetRooms handles GET /api/rooms.
func (h *Handler) GetRooms(c *gin.Context) {
	rooms, err := h.store.ListRooms(c.Request.Context(), tenantOf(c))
	if err != nil {
		respondError(c, err)
		return
	}
	resp := make([]RoomResponse, 0, len(rooms))
	for _, r := range rooms {
		resp = append(resp, toRoomResponse(r))
	}
	c.JSON(http.StatusOK, resp)
}

type createRoomRequest struct {
	Number     string  `json:"number" binding:"required"`
	RoomTypeID int64   `json:"room_type_id" binding:"required,gt=0"`
	Price      float64 `json:"price" binding:"required,gt=0"`
	State      string  `json:"state" binding:"omitempty,roomstate"`
}

// CreateRoom handles POST /api/rooms.
func (h *Handler) CreateRoom(c *gin.Context) {
	var req createRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	number, err := parse.RoomNumber(req.Number)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	room := model.Room{Number: number, RoomTypeID: req.RoomTypeID, PricePerNight: req.Price, State: req.State}
	if err := h.store.CreateRoom(c.Request.Context(), tenantOf(c), &room); err != nil {
		respondError(c, err)
		return
	}
	h.notify(c, fmt.Sprintf("Room %s added", room.Number), model.PriorityNormal)
	c.JSON(http.StatusCreated, toRoomResponse(room))
}

// GetRoomStatus handles GET /api/rooms/status, the status board.
func (h *Handler) GetRoomStatus(c *gin.Context) {
	ctx := c.Request.Context()
	rooms, err := h.store.ListRooms(ctx, tenantOf(c))
	if err != nil {
		respondError(c, err)
		return
	}

	today := h.today()
	resp := make([]RoomStatusResponse, 0, len(rooms))
	for _, r := range rooms {
		info, err := h.store.RoomDateInfo(ctx, r, today)
		if err != nil {
			respondError(c, err)
			return
		}
		resp = append(resp, RoomStatusResponse{RoomResponse: toRoomResponse(r), DateInfo: info})
	}
	c.JSON(http.StatusOK, resp)
}

type setRoomStateRequest struct {
	State string `json:"state" binding:"required,roomstate"`
}

// SetRoomState handles POST /api/rooms/:id/state, a manual override.
func (h *Handler) SetRoomState(c *gin.Context) {
	roomID, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req setRoomStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	room, err := h.store.SetRoomState(c.Request.Context(), tenantOf(c), roomID, req.State)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toRoomResponse(room))
}
