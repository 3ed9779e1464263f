package algo

// GuestTableSize is the fixed bucket count of a GuestTable.
const GuestTableSize = 50

// GuestRecord is the occupant of a checked-in room.
type GuestRecord struct {
	RoomNumber string `json:"room"`
	GuestName  string `json:"guest"`
	RoomType   string `json:"type"`
}

// GuestTable maps room numbers to guests through a fixed set of buckets.
// A bucket holds a single record: a colliding Put replaces the previous one,
// which can then no longer be found.
type GuestTable struct {
	buckets [GuestTableSize]*GuestRecord
}

// Hash sums the code points of key modulo GuestTableSize.
func Hash(key string) int {
	sum := 0
	for _, r := range key {
		sum += int(r)
	}
	return sum % GuestTableSize
}

// BuildGuestTable inserts records in order.
func BuildGuestTable(records []GuestRecord) *GuestTable {
	t := &GuestTable{}
	for _, r := range records {
		t.Put(r)
	}
	return t
}

// Put stores r in its bucket, overwriting any occupant.
func (t *GuestTable) Put(r GuestRecord) {
	rec := r
	t.buckets[Hash(r.RoomNumber)] = &rec
}

// Get returns the record for room. Both the bucket and the stored room number must match.
func (t *GuestTable) Get(room string) (GuestRecord, bool) {
	rec := t.buckets[Hash(room)]
	if rec == nil || rec.RoomNumber != room {
		return GuestRecord{}, false
	}
	return *rec, true
}
