// query.go - Search, filter and sort for task listings

package handlers

import (
	"sort"
	"strings"
	"time"

	"go-task-backend/models"

	"github.com/gin-gonic/gin"
)

// Sort keys accepted by ?sort=. Anything else sorts by creation time.
const (
	sortTitle     = "title"
	sortStatus    = "status"
	sortDueDate   = "dueDate"
	sortCreatedAt = "createdAt"

	filterAll = "all"
)

var noDueDate = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)

type TaskQuery struct {
	Search         string // Case-insensitive substring of title or description
	Status         string // Exact status, empty or "all" for any
	AssignedUserID string // Exact assignee, empty or "all" for any
	Sort           string
}

func parseTaskQuery(c *gin.Context) TaskQuery {
	return TaskQuery{
		Search:         strings.TrimSpace(c.Query("q")),
		Status:         c.Query("status"),
		AssignedUserID: c.Query("assignedUserId"),
		Sort:           c.DefaultQuery("sort", sortCreatedAt),
	}
}

// Apply returns the matching tasks in the requested order. The input slice is not modified.
func (q TaskQuery) Apply(tasks []models.Task) []models.Task {
	search := strings.ToLower(q.Search)
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if search != "" &&
			!strings.Contains(strings.ToLower(t.Title), search) &&
			!strings.Contains(strings.ToLower(t.Description), search) {
			continue
		}
		if q.Status != "" && q.Status != filterAll && t.Status != q.Status {
			continue
		}
		if q.AssignedUserID != "" && q.AssignedUserID != filterAll && t.AssignedUserID != q.AssignedUserID {
			continue
		}
		out = append(out, t)
	}

	var less func(a, b models.Task) bool
	switch q.Sort {
	case sortTitle:
		less = func(a, b models.Task) bool { return strings.ToLower(a.Title) < strings.ToLower(b.Title) }
	case sortStatus:
		less = func(a, b models.Task) bool { return a.Status < b.Status }
	case sortDueDate:
		less = func(a, b models.Task) bool { return dueOrMax(a).Before(dueOrMax(b)) }
	default:
		less = func(a, b models.Task) bool { return a.CreatedAt.After(b.CreatedAt) } // Newest first
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func dueOrMax(t models.Task) time.Time {
	if due, ok := t.Due(); ok {
		return due
	}
	return noDueDate
}
