package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hotel-ops-backend/internal/model"
	"hotel-ops-backend/internal/parse"
	"hotel-ops-backend/internal/store"
)

// BookingResponse is the JSON shape of a booking.
type BookingResponse struct {
	ID          int64   `json:"id"`
	Guest       string  `json:"guest"`
	Email       string  `json:"email"`
	RoomID      int64   `json:"room_id"`
	Room        string  `json:"room"`
	CheckIn     string  `json:"check_in"`
	CheckOut    string  `json:"check_out"`
	Nights      int     `json:"nights"`
	TotalPrice  float64 `json:"total_price"`
	CheckedIn   bool    `json:"checked_in"`
	CheckInTime string  `json:"check_in_time,omitempty"`
	Notes       string  `json:"notes,omitempty"`
}

func toBookingResponse(b model.Booking) BookingResponse {
	resp := BookingResponse{
		ID:         b.ID,
		Guest:      b.Guest.FullName(),
		Email:      b.Guest.Email,
		RoomID:     b.RoomID,
		Room:       b.Room.Number,
		CheckIn:    time.Time(b.CheckInDate).Format(time.DateOnly),
		CheckOut:   time.Time(b.CheckOutDate).Format(time.DateOnly),
		Nights:     b.Nights(),
		TotalPrice: b.TotalPrice,
		CheckedIn:  b.CheckedIn,
		Notes:      b.Notes,
	}
	if b.CheckInTime != nil {
		resp.CheckInTime = b.CheckInTime.String()
	}
	return resp
}

type createBookingRequest struct {
	FirstName   string `json:"first_name" binding:"required,max=50"`
	LastName    string `json:"last_name" binding:"required,max=50"`
	Email       string `json:"email" binding:"required,email"`
	PhoneNumber string `json:"phone_number" binding:"max=15"`
	RoomID      int64  `json:"room_id" binding:"required,gt=0"`
	CheckIn     string `json:"check_in" binding:"required"`
	CheckOut    string `json:"check_out" binding:"required"`
}

// CreateBooking handles POST /api/bookings.
func (h *Handler) CreateBooking(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	in, out, err := parse.StayDates(req.CheckIn, req.CheckOut)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booking, err := h.store.CreateBooking(c.Request.Context(), tenantOf(c), store.BookingRequest{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		RoomID:      req.RoomID,
		CheckIn:     in,
		CheckOut:    out,
	}, h.today())
	if err != nil {
		respondError(c, err)
		return
	}
	h.notify(c, fmt.Sprintf("New booking: %s in room %s", booking.Guest.FullName(), booking.Room.Number), model.PriorityNormal)
	c.JSON(http.StatusCreated, toBookingResponse(booking))
}

// GetTodayCheckIns handles GET /api/bookings/today.
func (h *Handler) GetTodayCheckIns(c *gin.Context) {
	bookings, err := h.store.TodayCheckIns(c.Request.Context(), tenantOf(c), h.today())
	if err != nil {
		respondError(c, err)
		return
	}
	resp := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		resp = append(resp, toBookingResponse(b))
	}
	c.JSON(http.StatusOK, resp)
}

type checkInRequest struct {
	Time  string `json:"time"`
	Notes string `json:"notes" binding:"max=1000"`
}

// CheckIn handles POST /api/bookings/:id/checkin. The arrival time
// defaults to the current hotel-local time.
func (h *Handler) CheckIn(c *gin.Context) {
	bookingID, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req checkInRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c)
			return
		}
	}

	local := h.now().In(h.loc)
	at := parse.Clock{Hour: local.Hour(), Minute: local.Minute(), Second: local.Second()}
	if req.Time != "" {
		var err error
		if at, err = parse.ClockTime(req.Time); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	booking, err := h.store.CheckIn(c.Request.Context(), tenantOf(c), bookingID, store.CheckInRequest{Time: at, Notes: req.Notes})
	if err != nil {
		respondError(c, err)
		return
	}
	h.notify(c, fmt.Sprintf("%s checked in to room %s", booking.Guest.FullName(), booking.Room.Number), model.PriorityUrgent)
	c.JSON(http.StatusOK, toBookingResponse(booking))
}
