package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hotel-ops-backend/internal/algo"
	"hotel-ops-backend/internal/model"
)

// TaskResponse is a pending maintenance task in queue order.
type TaskResponse struct {
	ID            int64     `json:"id"`
	Room          string    `json:"room"`
	Description   string    `json:"description"`
	Priority      int       `json:"priority"`
	PriorityLabel string    `json:"priority_label"`
	CreatedAt     time.Time `json:"created_at"`
}

// GetPendingTasks handles GET /api/maintenance/pending. Tasks are ordered
// most urgent first, oldest first within a priority.
func (h *Handler) GetPendingTasks(c *gin.Context) {
	tasks, err := h.store.PendingTasks(c.Request.Context(), tenantOf(c))
	if err != nil {
		respondError(c, err)
		return
	}

	queue := make([]algo.Task, 0, len(tasks))
	for i := range tasks {
		t := tasks[i]
		queue = append(queue, algo.Task{
			ID:          t.ID,
			RoomNumber:  t.Room.Number,
			Description: t.Description,
			Priority:    t.Priority,
			CreatedAt:   &t.CreatedAt,
		})
	}

	ordered := algo.OrderTasks(queue)
	resp := make([]TaskResponse, 0, len(ordered))
	for _, t := range ordered {
		resp = append(resp, TaskResponse{
			ID:            t.ID,
			Room:          t.RoomNumber,
			Description:   t.Description,
			Priority:      t.Priority,
			PriorityLabel: algo.PriorityLabel(t.Priority),
			CreatedAt:     *t.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, resp)
}

type addTaskRequest struct {
	RoomID      int64  `json:"room_id" binding:"required,gt=0"`
	Description string `json:"description" binding:"required,max=255"`
	Priority    int    `json:"priority" binding:"omitempty,min=1,max=4"`
}

// AddTask handles POST /api/maintenance.
func (h *Handler) AddTask(c *gin.Context) {
	var req addTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	task := model.MaintenanceTask{RoomID: req.RoomID, Description: req.Description, Priority: req.Priority}
	if err := h.store.AddTask(c.Request.Context(), tenantOf(c), &task); err != nil {
		respondError(c, err)
		return
	}

	priority := model.PriorityNormal
	if task.Priority == 1 {
		priority = model.PriorityUrgent
	}
	h.notify(c, fmt.Sprintf("Maintenance for room %s: %s", task.Room.Number, task.Description), priority)

	c.JSON(http.StatusCreated, TaskResponse{
		ID:            task.ID,
		Room:          task.Room.Number,
		Description:   task.Description,
		Priority:      task.Priority,
		PriorityLabel: algo.PriorityLabel(task.Priority),
		CreatedAt:     task.CreatedAt,
	})
}

// CompleteTask handles POST /api/maintenance/:id/complete.
func (h *Handler) CompleteTask(c *gin.Context) {
	taskID, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.store.CompleteTask(c.Request.Context(), tenantOf(c), taskID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": taskID, "status": model.TaskCompleted})
}
