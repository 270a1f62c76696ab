package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"go-task-backend/auth"
	"go-task-backend/database"
	"go-task-backend/events"
	"go-task-backend/kv"
	"go-task-backend/models"
	"go-task-backend/store"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testAdminEmail = "admin@test.com"

type testEnv struct {
	router *gin.Engine
	h      *Handler
	bus    *events.Bus
	tasks  *store.Tasks
}

// setupTestEnv builds the full router over a fresh database. The bus is not running,
// so published events stay queued for inspection.
func setupTestEnv(t *testing.T) *testEnv {
	gin.SetMode(gin.TestMode)

	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	l := logrus.New()
	l.SetOutput(io.Discard)
	log := logrus.NewEntry(l)

	s := kv.New(db)
	bus := events.NewBus(100, log)
	tasks := store.NewTasks(s)
	h := New(Deps{
		Log:        log,
		Auth:       auth.NewLocal(db, "test-secret", time.Hour, auth.WithBcryptCost(bcrypt.MinCost)),
		Users:      store.NewUsers(s),
		Tasks:      tasks,
		Bus:        bus,
		AdminEmail: testAdminEmail,
	})

	r := gin.New()
	h.EnrichRoutes(r)
	return &testEnv{router: r, h: h, bus: bus, tasks: tasks}
}

// do sends a JSON request; body may be nil, a string (sent raw) or any value to marshal
func (e *testEnv) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewBuffer(raw)
	}

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	e.router.ServeHTTP(w, req)
	return w
}

// register signs a user up and logs them in, returning the token and the user record
func (e *testEnv) register(t *testing.T, email, name string) (string, models.User) {
	w := e.do(http.MethodPost, "/signup", "", SignupInput{Email: email, Password: "password1", Name: name})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = e.do(http.MethodPost, "/login", "", LoginInput{Email: email, Password: "password1"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Token, resp.User
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
}

const (
	defaultWait = 2 * time.Second
	tick        = 10 * time.Millisecond
)

// captureSink records delivered events
type captureSink struct {
	mu     sync.Mutex
	events []events.Event
}

func (s *captureSink) Name() string { return "capture" }

func (s *captureSink) Deliver(_ context.Context, ev events.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return nil
}

func (s *captureSink) types() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.events))
	for _, ev := range s.events {
		out = append(out, ev.Type)
	}
	return out
}

func (s *captureSink) last() events.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.events[len(s.events)-1]
}
