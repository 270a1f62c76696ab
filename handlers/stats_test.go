package handlers

import (
	"net/http"
	"testing"

	"go-task-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountStatuses(t *testing.T) {
	s := countStatuses([]models.Task{
		{Status: models.StatusCompleted},
		{Status: models.StatusCompleted},
		{Status: models.StatusInProgress},
		{Status: "blocked"}, // Unknown statuses count as pending
		{Status: ""},
		{Status: models.StatusPending},
	})

	assert.Equal(t, StatusCounts{Total: 6, Pending: 3, InProgress: 1, Completed: 2, CompletionRate: 33}, s)
	assert.Equal(t, StatusCounts{}, countStatuses(nil))
}

func TestBuildStatsOrdersUsersByCompleted(t *testing.T) {
	users := []models.User{
		{ID: "a", Name: "Ana", Role: models.RoleUser},
		{ID: "b", Name: "Ben", Role: models.RoleUser},
		{ID: "c", Name: "Cy", Role: models.RoleAdmin},
	}
	tasks := []models.Task{
		{AssignedUserID: "b", Status: models.StatusCompleted},
		{AssignedUserID: "b", Status: models.StatusPending},
		{AssignedUserID: "a", Status: models.StatusPending},
		{AssignedUserID: "ghost", Status: models.StatusCompleted}, // Dangling assignee still counts overall
	}

	s := buildStats(tasks, users)
	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 50, s.CompletionRate)
	require.Len(t, s.Users, 3)
	assert.Equal(t, "b", s.Users[0].ID)
	assert.Equal(t, 50, s.Users[0].CompletionRate)
	assert.Equal(t, "a", s.Users[1].ID) // Ties keep registration order
	assert.Equal(t, "c", s.Users[2].ID)
	assert.Equal(t, 0, s.Users[2].Total)
}

func TestStatsEndpoint(t *testing.T) {
	env := setupTestEnv(t)
	adminToken, _ := env.register(t, testAdminEmail, "Boss")
	userToken, user := env.register(t, "user@test.com", "User")

	createTask(t, env, adminToken, TaskInput{Title: "one", AssignedUserID: user.ID, Status: models.StatusCompleted})
	createTask(t, env, adminToken, TaskInput{Title: "two", AssignedUserID: user.ID})
	createTask(t, env, adminToken, TaskInput{Title: "three", AssignedUserID: "someone-else"})

	var mine Stats
	w := env.do(http.MethodGet, "/api/stats", userToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &mine)
	assert.Equal(t, 2, mine.Total)
	assert.Equal(t, 50, mine.CompletionRate)
	assert.Empty(t, mine.Users)

	var all Stats
	decode(t, env.do(http.MethodGet, "/api/stats", adminToken, nil), &all)
	assert.Equal(t, 3, all.Total)
	require.Len(t, all.Users, 2)
	assert.Equal(t, user.ID, all.Users[0].ID)
}
