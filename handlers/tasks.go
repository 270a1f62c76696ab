// tasks.go - Task CRUD endpoints
//
// Reads are open to any authenticated caller but non-admins only ever see tasks
// assigned to them. Every mutation is admin only (enforced by the route group).

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go-task-backend/events"
	"go-task-backend/models"
	"go-task-backend/response"
	"go-task-backend/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TaskInput struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	AssignedUserID string `json:"assignedUserId"`
	DueDate        string `json:"dueDate"`
	Status         string `json:"status"`
}

// ListTasks returns the caller's visible tasks after search, filter and sort.
func (h *Handler) ListTasks(c *gin.Context) {
	identity, admin := h.caller(c)

	tasks, err := h.tasks.List(c.Request.Context())
	if err != nil {
		h.log.WithField("operation", "handlers.Handler.ListTasks").WithError(err).Error("list tasks")
		response.HandleError(c, err)
		return
	}

	q := parseTaskQuery(c)
	if !admin {
		q.AssignedUserID = identity.ID // Non-admins are pinned to their own tasks
	}
	c.JSON(http.StatusOK, q.Apply(tasks))
}

func (h *Handler) GetTask(c *gin.Context) {
	identity, admin := h.caller(c)

	task, err := h.tasks.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) || (err == nil && !admin && task.AssignedUserID != identity.ID) {
		response.HandleError(c, response.NewNotFoundError("task"))
		return
	}
	if err != nil {
		h.log.WithField("operation", "handlers.Handler.GetTask").WithError(err).Error("load task")
		response.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *Handler) CreateTask(c *gin.Context) {
	const op = "handlers.Handler.CreateTask"
	log := h.log.WithField("operation", op)
	identity, _ := h.caller(c)

	var input TaskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := strings.TrimSpace(input.Status)
	if status == "" {
		status = models.StatusPending
	}
	task := &models.Task{
		ID:             uuid.NewString(),
		Title:          strings.TrimSpace(input.Title),
		Description:    input.Description,
		AssignedUserID: input.AssignedUserID,
		Status:         status,
		DueDate:        strings.TrimSpace(input.DueDate),
		CreatedAt:      h.now(),
		CreatedBy:      identity.ID,
	}
	if err := validateTask(task); err != nil {
		response.HandleError(c, err)
		return
	}

	if err := h.tasks.Put(c.Request.Context(), task); err != nil {
		log.WithError(err).Error("save task")
		response.HandleError(c, err)
		return
	}

	log.WithField("task_id", task.ID).WithField("assigned_user_id", task.AssignedUserID).Info("task created")
	h.publish(events.Event{Type: events.TaskCreated, TaskID: task.ID, Task: task, ActorID: identity.ID})
	c.JSON(http.StatusCreated, gin.H{"message": "task created successfully", "task": task})
}

// UpdateTask merges the supplied fields over the stored record. Fields left out keep
// their previous value; id, createdAt and createdBy cannot be changed.
func (h *Handler) UpdateTask(c *gin.Context) {
	const op = "handlers.Handler.UpdateTask"
	log := h.log.WithField("operation", op)
	ctx := c.Request.Context()
	identity, _ := h.caller(c)

	existing, err := h.tasks.Get(ctx, c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		response.HandleError(c, response.NewNotFoundError("task"))
		return
	}
	if err != nil {
		log.WithError(err).Error("load task")
		response.HandleError(c, err)
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		response.HandleError(c, response.NewValidationError("unable to read body"))
		return
	}
	merged := *existing
	if err := json.Unmarshal(body, &merged); err != nil {
		response.HandleError(c, response.NewValidationError("invalid request structure"))
		return
	}

	now := h.now()
	merged.ID = existing.ID
	merged.CreatedAt = existing.CreatedAt
	merged.CreatedBy = existing.CreatedBy
	merged.Title = strings.TrimSpace(merged.Title)
	merged.DueDate = strings.TrimSpace(merged.DueDate)
	merged.UpdatedAt = &now
	if err := validateTask(&merged); err != nil {
		response.HandleError(c, err)
		return
	}

	if err := h.tasks.Put(ctx, &merged); err != nil {
		log.WithError(err).Error("save task")
		response.HandleError(c, err)
		return
	}

	log.WithField("task_id", merged.ID).Info("task updated")
	h.publish(events.Event{Type: events.TaskUpdated, TaskID: merged.ID, Task: &merged, ActorID: identity.ID})
	c.JSON(http.StatusOK, gin.H{"message": "task updated successfully", "task": merged})
}

func (h *Handler) DeleteTask(c *gin.Context) {
	const op = "handlers.Handler.DeleteTask"
	log := h.log.WithField("operation", op)
	ctx := c.Request.Context()
	identity, _ := h.caller(c)
	id := c.Param("id")

	task, err := h.tasks.Get(ctx, id)
	if err == nil {
		err = h.tasks.Delete(ctx, id)
	}
	if errors.Is(err, store.ErrNotFound) {
		response.HandleError(c, response.NewNotFoundError("task"))
		return
	}
	if err != nil {
		log.WithError(err).Error("delete task")
		response.HandleError(c, err)
		return
	}

	log.WithField("task_id", id).Info("task deleted")
	h.publish(events.Event{Type: events.TaskDeleted, TaskID: id, Task: task, ActorID: identity.ID})
	c.JSON(http.StatusOK, gin.H{"message": "task deleted successfully"})
}

func validateTask(t *models.Task) error {
	if t.Title == "" {
		return response.NewValidationError("title is required")
	}
	if _, err := models.ParseDueDate(t.DueDate); err != nil {
		return response.NewValidationError("dueDate must be YYYY-MM-DD or RFC 3339")
	}
	return nil
}
