package algo

import "sort"

// RouteStop is a room visited by the cleaning route.
type RouteStop struct {
	Number string `json:"number"`
	ID     int64  `json:"id"`
}

type routeNode struct {
	stop RouteStop
	next *routeNode
}

// CleaningRoute is a singly linked list of rooms awaiting cleaning.
type CleaningRoute struct {
	head *routeNode
	size int
}

// BuildCleaningRoute links rooms in ascending room number order.
func BuildCleaningRoute(rooms []RouteStop) *CleaningRoute {
	sorted := make([]RouteStop, len(rooms))
	copy(sorted, rooms)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Number < sorted[j].Number })

	route := &CleaningRoute{}
	var tail *routeNode
	for _, s := range sorted {
		node := &routeNode{stop: s}
		if tail == nil {
			route.head = node
		} else {
			tail.next = node
		}
		tail = node
		route.size++
	}
	return route
}

// Len returns the number of stops.
func (r *CleaningRoute) Len() int { return r.size }

// Stops walks the list from the head. Each call starts over.
func (r *CleaningRoute) Stops() []RouteStop {
	stops := make([]RouteStop, 0, r.size)
	for cur := r.head; cur != nil; cur = cur.next {
		stops = append(stops, cur.stop)
	}
	return stops
}
