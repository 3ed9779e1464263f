package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	roomPrefixRe = regexp.MustCompile(`(?i)^(?:room|rm\.?|#)\s*`)
	clockRe      = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?::(\d{2}))?$`)
)

// MaxRoomNumberLen is the longest room number accepted.
const MaxRoomNumberLen = 10

// RoomNumber normalizes a room number typed by staff: "Room 101", "#101" and " 101 " all become "101".
func RoomNumber(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimSpace(roomPrefixRe.ReplaceAllString(s, ""))
	if s == "" {
		return "", fmt.Errorf("empty room number: %q", raw)
	}
	if len([]rune(s)) > MaxRoomNumberLen {
		return "", fmt.Errorf("room number too long: %q", raw)
	}
	return s, nil
}

// Date parses a calendar date in YYYY-MM-DD form as UTC midnight.
func Date(raw string) (time.Time, error) {
	t, err := time.ParseInLocation(time.DateOnly, strings.TrimSpace(raw), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", raw, err)
	}
	return t, nil
}

// StayDates parses a check-in and check-out date pair.
func StayDates(checkIn, checkOut string) (time.Time, time.Time, error) {
	in, err := Date(checkIn)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	out, err := Date(checkOut)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return in, out, nil
}

// Clock is a wall-clock time of day.
type Clock struct {
	Hour, Minute, Second int
}

// ClockTime parses "HH:MM" or "HH:MM:SS".
func ClockTime(raw string) (Clock, error) {
	m := clockRe.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return Clock{}, fmt.Errorf("invalid time of day: %q", raw)
	}
	h, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	sec := 0
	if m[3] != "" {
		sec, _ = strconv.Atoi(m[3])
	}
	if h > 23 || minute > 59 || sec > 59 {
		return Clock{}, fmt.Errorf("time of day out of range: %q", raw)
	}
	return Clock{Hour: h, Minute: minute, Second: sec}, nil
}

// DayOf returns the calendar day of t in loc, as UTC midnight.
func DayOf(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
