// task.go - Defines the task record stored in the key-value namespace

package models

import (
	"strings"
	"time"
)

// Known task statuses. Status is stored as an open string; anything else displays as pending.
const (
	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
)

const dueDateLayout = "2006-01-02" // Layout sent by date inputs

type Task struct { // Task is the record kept under "task:<id>"
	ID             string     `json:"id"`                    // Generated uuid
	Title          string     `json:"title"`                 // Required
	Description    string     `json:"description,omitempty"` // Optional free text
	AssignedUserID string     `json:"assignedUserId"`        // User the task belongs to (not checked)
	Status         string     `json:"status"`                // pending, in-progress, completed or anything else
	DueDate        string     `json:"dueDate,omitempty"`     // YYYY-MM-DD or RFC 3339
	CreatedAt      time.Time  `json:"createdAt"`             // Creation time
	UpdatedAt      *time.Time `json:"updatedAt,omitempty"`   // Last update time
	CreatedBy      string     `json:"createdBy"`             // Id of the admin who created it
}

// DisplayStatus folds unknown statuses into pending.
func (t Task) DisplayStatus() string {
	switch t.Status {
	case StatusInProgress, StatusCompleted:
		return t.Status
	default:
		return StatusPending
	}
}

// Due parses DueDate. ok is false when the task has no due date or it is malformed.
func (t Task) Due() (time.Time, bool) {
	due, err := ParseDueDate(t.DueDate)
	if err != nil || due.IsZero() {
		return time.Time{}, false
	}
	return due, true
}

// ParseDueDate accepts a calendar date or an RFC 3339 timestamp. Empty input yields the zero time.
func ParseDueDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if d, err := time.Parse(dueDateLayout, s); err == nil {
		return d, nil
	}
	return time.Parse(time.RFC3339, s)
}
