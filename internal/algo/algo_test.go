package algo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ts(minutes int) *time.Time {
	t := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC).Add(time.Duration(minutes) * time.Minute)
	return &t
}

func taskIDs(tasks []Task) []int64 {
	ids := make([]int64, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	return ids
}

func TestOrderTasks(t *testing.T) {
	testCases := []struct {
		name     string
		input    []Task
		expected []int64
	}{
		{
			name:     "Empty input",
			input:    nil,
			expected: []int64{},
		},
		{
			name:     "Single task",
			input:    []Task{{ID: 7, Priority: 4}},
			expected: []int64{7},
		},
		{
			name: "Priority ascending",
			input: []Task{
				{ID: 1, Priority: 4, CreatedAt: ts(0)},
				{ID: 2, Priority: 1, CreatedAt: ts(5)},
				{ID: 3, Priority: 3, CreatedAt: ts(1)},
				{ID: 4, Priority: 2, CreatedAt: ts(2)},
			},
			expected: []int64{2, 4, 3, 1},
		},
		{
			name: "Equal priority, older first",
			input: []Task{
				{ID: 1, Priority: 2, CreatedAt: ts(30)},
				{ID: 2, Priority: 2, CreatedAt: ts(10)},
				{ID: 3, Priority: 2, CreatedAt: ts(20)},
			},
			expected: []int64{2, 3, 1},
		},
		{
			name: "Equal keys keep input order",
			input: []Task{
				{ID: 1, Priority: 3, CreatedAt: ts(0)},
				{ID: 2, Priority: 3, CreatedAt: ts(0)},
				{ID: 3, Priority: 3, CreatedAt: ts(0)},
			},
			expected: []int64{1, 2, 3},
		},
		{
			name: "Missing timestamps keep input order",
			input: []Task{
				{ID: 1, Priority: 2, CreatedAt: nil},
				{ID: 2, Priority: 2, CreatedAt: ts(0)},
				{ID: 3, Priority: 1, CreatedAt: nil},
			},
			expected: []int64{3, 1, 2},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := OrderTasks(tc.input)
			assert.Equal(t, tc.expected, taskIDs(out))
			assert.Len(t, out, len(tc.input))
		})
	}
}

func TestOrderTasks_DoesNotMutateInput(t *testing.T) {
	input := []Task{{ID: 1, Priority: 4}, {ID: 2, Priority: 1}}
	_ = OrderTasks(input)
	assert.Equal(t, []int64{1, 2}, taskIDs(input))
}

func assertHeapProperty(t *testing.T, items []ServiceOrder) {
	t.Helper()
	for i := range items {
		for _, c := range []int{2*i + 1, 2*i + 2} {
			if c < len(items) {
				assert.LessOrEqual(t, items[i].Timestamp, items[c].Timestamp, "parent %d child %d", i, c)
			}
		}
	}
}

func TestServiceHeap(t *testing.T) {
	orders := []ServiceOrder{
		{ID: 1, Timestamp: 50},
		{ID: 2, Timestamp: 40},
		{ID: 3, Timestamp: 30},
		{ID: 4, Timestamp: 20},
		{ID: 5, Timestamp: 10},
		{ID: 6, Timestamp: 45},
		{ID: 7, Timestamp: 10},
	}
	h := BuildServiceHeap(orders)
	snap := h.Snapshot()

	require.Len(t, snap, len(orders))
	assertHeapProperty(t, snap)

	root, ok := h.Peek()
	require.True(t, ok)
	assert.Equal(t, float64(10), root.Timestamp)

	// Sift-up only: the array is heap-ordered, not sorted.
	assert.Equal(t, []float64{10, 20, 10, 50, 30, 45, 40}, timestamps(snap))
}

func TestServiceHeap_Empty(t *testing.T) {
	h := BuildServiceHeap(nil)
	assert.Empty(t, h.Snapshot())
	assert.Equal(t, 0, h.Len())
	_, ok := h.Peek()
	assert.False(t, ok)
}

func timestamps(items []ServiceOrder) []float64 {
	out := make([]float64, len(items))
	for i, o := range items {
		out[i] = o.Timestamp
	}
	return out
}

func TestHash(t *testing.T) {
	assert.Equal(t, 3, Hash("5"))   // 53
	assert.Equal(t, 1, Hash("23"))  // 50 + 51
	assert.Equal(t, 3, Hash("16"))  // 49 + 54
	assert.Equal(t, 0, Hash(""))
	assert.Equal(t, Hash("12"), Hash("21"))
}

func TestGuestTable(t *testing.T) {
	t.Run("Distinct buckets are all found", func(t *testing.T) {
		require.NotEqual(t, Hash("5"), Hash("23"))
		table := BuildGuestTable([]GuestRecord{
			{RoomNumber: "5", GuestName: "Maria Lopez", RoomType: "Suite"},
			{RoomNumber: "23", GuestName: "John Smith", RoomType: "Single"},
		})

		rec, ok := table.Get("5")
		assert.True(t, ok)
		assert.Equal(t, "Maria Lopez", rec.GuestName)

		rec, ok = table.Get("23")
		assert.True(t, ok)
		assert.Equal(t, "Single", rec.RoomType)
	})

	t.Run("Collision overwrites earlier record", func(t *testing.T) {
		require.Equal(t, Hash("5"), Hash("16"))
		table := BuildGuestTable([]GuestRecord{
			{RoomNumber: "5", GuestName: "Maria Lopez"},
			{RoomNumber: "16", GuestName: "Ana Ruiz"},
		})

		_, ok := table.Get("5")
		assert.False(t, ok, "overwritten room must not be found")

		rec, ok := table.Get("16")
		assert.True(t, ok)
		assert.Equal(t, "Ana Ruiz", rec.GuestName)
	})

	t.Run("Occupied bucket with other room is not a hit", func(t *testing.T) {
		table := BuildGuestTable([]GuestRecord{{RoomNumber: "12", GuestName: "A"}})
		_, ok := table.Get("21")
		assert.False(t, ok)
	})

	t.Run("Empty table", func(t *testing.T) {
		_, ok := BuildGuestTable(nil).Get("101")
		assert.False(t, ok)
	})
}

func TestContainsFold(t *testing.T) {
	testCases := []struct {
		text, pattern string
		expected      bool
	}{
		{"Maria Lopez", "mar", true},
		{"Maria Lopez", "LOPEZ", true},
		{"Maria Lopez", "a l", true},
		{"Maria", "zz", false},
		{"Maria", "", false},
		{"", "", false},
		{"Ana", "Anabel", false},
		{"José Núñez", "NÚÑ", true},
	}
	for _, tc := range testCases {
		t.Run(tc.text+"/"+tc.pattern, func(t *testing.T) {
			assert.Equal(t, tc.expected, ContainsFold(tc.text, tc.pattern))
		})
	}
}

func TestSearchGuests(t *testing.T) {
	var candidates []SearchCandidate
	for i := 0; i < 8; i++ {
		candidates = append(candidates, SearchCandidate{GuestName: "Maria Lopez", RoomNumber: string(rune('1' + i))})
	}
	candidates = append([]SearchCandidate{{GuestName: "John Smith", RoomNumber: "0"}}, candidates...)

	results := SearchGuests(candidates, "maria", 5)
	require.Len(t, results, 5)
	assert.Equal(t, "1", results[0].RoomNumber)
	assert.Equal(t, "5", results[4].RoomNumber)

	assert.Empty(t, SearchGuests(candidates, "", 5))
	assert.Empty(t, SearchGuests(candidates, "nobody", 5))
}

func TestCleaningRoute(t *testing.T) {
	route := BuildCleaningRoute([]RouteStop{
		{Number: "3", ID: 30},
		{Number: "1", ID: 10},
		{Number: "2", ID: 20},
	})

	expected := []RouteStop{{Number: "1", ID: 10}, {Number: "2", ID: 20}, {Number: "3", ID: 30}}
	assert.Equal(t, expected, route.Stops())
	assert.Equal(t, expected, route.Stops(), "walk must be restartable")
	assert.Equal(t, 3, route.Len())
}

func TestCleaningRoute_Empty(t *testing.T) {
	route := BuildCleaningRoute(nil)
	assert.Empty(t, route.Stops())
	assert.NotNil(t, route.Stops())
	assert.Equal(t, 0, route.Len())
}
