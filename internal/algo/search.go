package algo

import "unicode"

// ContainsFold reports whether pattern occurs in text, ignoring case, by
// comparing pattern against every start offset of text. An empty pattern
// never matches.
func ContainsFold(text, pattern string) bool {
	t := lowerRunes(text)
	p := lowerRunes(pattern)
	n, m := len(t), len(p)
	if m == 0 || m > n {
		return false
	}
	for i := 0; i <= n-m; i++ {
		match := true
		for j := 0; j < m; j++ {
			if t[i+j] != p[j] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

func lowerRunes(s string) []rune {
	rs := []rune(s)
	for i, r := range rs {
		rs[i] = unicode.ToLower(r)
	}
	return rs
}

// SearchCandidate is a booking considered by SearchGuests.
type SearchCandidate struct {
	GuestName  string `json:"guest"`
	RoomNumber string `json:"room"`
	Date       string `json:"date"`
	Status     string `json:"status"`
}

// SearchGuests returns the first limit candidates whose guest name contains
// query. Candidates are expected newest check-in first.
func SearchGuests(candidates []SearchCandidate, query string, limit int) []SearchCandidate {
	results := []SearchCandidate{}
	if query == "" || limit <= 0 {
		return results
	}
	for _, c := range candidates {
		if !ContainsFold(c.GuestName, query) {
			continue
		}
		results = append(results, c)
		if len(results) >= limit {
			break
		}
	}
	return results
}
