// Package algo holds the in-memory structures used to answer housekeeping
// queries: the maintenance queue, the room-service heap, the guest lookup
// table, guest name search and the cleaning route.
package algo

import "time"

// Task is a pending maintenance task as seen by the queue.
type Task struct {
	ID          int64
	RoomNumber  string
	Description string
	Priority    int // 1 Critical .. 4 Low
	CreatedAt   *time.Time
}

// OrderTasks returns the tasks ordered by priority, then by creation time.
// Tasks whose order cannot be decided keep their input order.
func OrderTasks(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	copy(out, tasks)

	n := len(out)
	if n <= 1 {
		return out
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n-i-1; j++ {
			if mustSwap(out[j], out[j+1]) {
				out[j], out[j+1] = out[j+1], out[j]
			}
		}
	}
	return out
}

func mustSwap(cur, next Task) bool {
	if cur.Priority != next.Priority {
		return cur.Priority > next.Priority
	}
	if cur.CreatedAt == nil || next.CreatedAt == nil {
		return false
	}
	return cur.CreatedAt.After(*next.CreatedAt)
}

// PriorityLabel returns the display name of a task priority.
func PriorityLabel(p int) string {
	switch p {
	case 1:
		return "Critical"
	case 2:
		return "High"
	case 3:
		return "Medium"
	case 4:
		return "Low"
	default:
		return "Unknown"
	}
}
