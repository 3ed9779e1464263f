package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"hotel-ops-backend/internal/algo"
	"hotel-ops-backend/internal/model"
	"hotel-ops-backend/internal/parse"
)

// LookupGuest handles GET /api/lookup?room=. The table is rebuilt from the
// in-house bookings on every request.
func (h *Handler) LookupGuest(c *gin.Context) {
	room, err := parse.RoomNumber(c.Query("room"))
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"found": false})
		return
	}

	bookings, err := h.store.InHouseBookings(c.Request.Context(), tenantOf(c))
	if err != nil {
		respondError(c, err)
		return
	}
	records := make([]algo.GuestRecord, 0, len(bookings))
	for _, b := range bookings {
		records = append(records, algo.GuestRecord{
			RoomNumber: b.Room.Number,
			GuestName:  b.Guest.FullName(),
			RoomType:   b.Room.RoomType.Name,
		})
	}

	rec, found := algo.BuildGuestTable(records).Get(room)
	if !found {
		c.JSON(http.StatusOK, gin.H{"found": false, "room": room})
		return
	}
	c.JSON(http.StatusOK, gin.H{"found": true, "room": room, "guest": rec})
}

// Search statuses of a booking.
const (
	statusInHouse    = "In-House"
	statusCheckedOut = "Checked-Out"
	statusPast       = "Past"
	statusActive     = "Active"
)

// bookingStatus labels a search hit. A checked-in guest whose room has been
// released is reported as gone even while the booking is still active.
func bookingStatus(b model.Booking) string {
	if b.CheckedIn && b.Room.State == model.RoomAvailable {
		return statusCheckedOut
	}
	switch {
	case !b.IsActive:
		return statusPast
	case b.CheckedIn:
		return statusInHouse
	}
	return statusActive
}

// SearchGuests handles GET /api/search?q=. Matches are returned newest
// check-in first, capped at the configured limit.
func (h *Handler) SearchGuests(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusOK, gin.H{"query": query, "results": []algo.SearchCandidate{}})
		return
	}

	bookings, err := h.store.BookingsNewestFirst(c.Request.Context(), tenantOf(c))
	if err != nil {
		respondError(c, err)
		return
	}
	candidates := make([]algo.SearchCandidate, 0, len(bookings))
	for _, b := range bookings {
		candidates = append(candidates, algo.SearchCandidate{
			GuestName:  b.Guest.FullName(),
			RoomNumber: b.Room.Number,
			Date:       time.Time(b.CheckInDate).Format("02/01/2006"),
			Status:     bookingStatus(b),
		})
	}

	c.JSON(http.StatusOK, gin.H{"query": query, "results": algo.SearchGuests(candidates, query, h.searchLimit)})
}
