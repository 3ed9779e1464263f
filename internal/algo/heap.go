package algo

// ServiceOrder is a room-service order keyed by its creation time in unix seconds.
type ServiceOrder struct {
	ID          int64   `json:"id"`
	RoomNumber  string  `json:"room"`
	Item        string  `json:"item"`
	Timestamp   float64 `json:"timestamp"`
	TimeDisplay string  `json:"time_display"`
}

// ServiceHeap is an array-backed binary min-heap ordered by Timestamp.
// Elements only ever move up, so the backing array is heap-ordered but not sorted.
type ServiceHeap struct {
	items []ServiceOrder
}

// BuildServiceHeap inserts the orders one at a time.
func BuildServiceHeap(orders []ServiceOrder) *ServiceHeap {
	h := &ServiceHeap{items: make([]ServiceOrder, 0, len(orders))}
	for _, o := range orders {
		h.Push(o)
	}
	return h
}

// Push places o in the next free slot and sifts it up.
func (h *ServiceHeap) Push(o ServiceOrder) {
	h.items = append(h.items, o)
	h.up(len(h.items) - 1)
}

func (h *ServiceHeap) up(j int) {
	for j > 0 {
		parent := (j - 1) / 2
		if !(h.items[j].Timestamp < h.items[parent].Timestamp) {
			return
		}
		h.items[j], h.items[parent] = h.items[parent], h.items[j]
		j = parent
	}
}

// Peek returns the earliest order.
func (h *ServiceHeap) Peek() (ServiceOrder, bool) {
	if len(h.items) == 0 {
		return ServiceOrder{}, false
	}
	return h.items[0], true
}

// Len returns the number of orders in the heap.
func (h *ServiceHeap) Len() int { return len(h.items) }

// Snapshot returns a copy of the backing array.
func (h *ServiceHeap) Snapshot() []ServiceOrder {
	out := make([]ServiceOrder, len(h.items))
	copy(out, h.items)
	return out
}
