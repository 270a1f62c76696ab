// stats.go - Dashboard statistics

package handlers

import (
	"math"
	"net/http"
	"sort"

	"go-task-backend/models"
	"go-task-backend/response"

	"github.com/gin-gonic/gin"
)

type StatusCounts struct {
	Total          int `json:"total"`
	Pending        int `json:"pending"`
	InProgress     int `json:"inProgress"`
	Completed      int `json:"completed"`
	CompletionRate int `json:"completionRate"` // Rounded percent of completed tasks
}

type UserStats struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
	StatusCounts
}

type Stats struct {
	StatusCounts
	Users []UserStats `json:"users,omitempty"` // Admin only
}

// Stats summarizes the tasks visible to the caller; the admin also gets a per-user breakdown.
func (h *Handler) Stats(c *gin.Context) {
	const op = "handlers.Handler.Stats"
	ctx := c.Request.Context()
	identity, admin := h.caller(c)

	tasks, err := h.tasks.List(ctx)
	if err != nil {
		h.log.WithField("operation", op).WithError(err).Error("list tasks")
		response.HandleError(c, err)
		return
	}
	if !admin {
		c.JSON(http.StatusOK, Stats{StatusCounts: countStatuses(tasksOf(tasks, identity.ID))})
		return
	}

	users, err := h.users.List(ctx)
	if err != nil {
		h.log.WithField("operation", op).WithError(err).Error("list users")
		response.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, buildStats(tasks, users))
}

func buildStats(tasks []models.Task, users []models.User) Stats {
	perUser := make([]UserStats, 0, len(users))
	for _, u := range users {
		perUser = append(perUser, UserStats{
			ID:           u.ID,
			Name:         u.Name,
			Role:         u.Role,
			StatusCounts: countStatuses(tasksOf(tasks, u.ID)),
		})
	}
	sort.SliceStable(perUser, func(i, j int) bool { return perUser[i].Completed > perUser[j].Completed })

	return Stats{StatusCounts: countStatuses(tasks), Users: perUser}
}

func countStatuses(tasks []models.Task) StatusCounts {
	var s StatusCounts
	for _, t := range tasks {
		switch t.DisplayStatus() {
		case models.StatusCompleted:
			s.Completed++
		case models.StatusInProgress:
			s.InProgress++
		default:
			s.Pending++
		}
	}
	s.Total = len(tasks)
	if s.Total > 0 {
		s.CompletionRate = int(math.Round(float64(s.Completed) * 100 / float64(s.Total)))
	}
	return s
}

func tasksOf(tasks []models.Task, userID string) []models.Task {
	var out []models.Task
	for _, t := range tasks {
		if t.AssignedUserID == userID {
			out = append(out, t)
		}
	}
	return out
}
