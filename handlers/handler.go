// handler.go - Wires the HTTP handlers to their dependencies and routes

package handlers

import (
	"net/http"
	"time"

	"go-task-backend/auth"
	"go-task-backend/events"
	"go-task-backend/middleware"
	"go-task-backend/store"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Deps are the collaborators a Handler needs. Bus and Hub are optional.
type Deps struct {
	Log        *logrus.Entry
	Auth       auth.Provider
	Users      *store.Users
	Tasks      *store.Tasks
	Bus        *events.Bus
	Hub        *events.Hub
	AdminEmail string
}

type Handler struct {
	log        *logrus.Entry
	auth       auth.Provider
	users      *store.Users
	tasks      *store.Tasks
	bus        *events.Bus
	hub        *events.Hub
	adminEmail string
	now        func() time.Time
}

func New(d Deps) *Handler {
	return &Handler{
		log:        d.Log,
		auth:       d.Auth,
		users:      d.Users,
		tasks:      d.Tasks,
		bus:        d.Bus,
		hub:        d.Hub,
		adminEmail: d.AdminEmail,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// EnrichRoutes registers every endpoint on router.
func (h *Handler) EnrichRoutes(router *gin.Engine) {
	// Public routes (no authentication required)
	router.GET("/health", h.Health)
	router.POST("/signup", h.Signup)
	router.POST("/login", h.Login)

	// Protected routes: any valid token
	api := router.Group("/api")
	api.Use(middleware.AuthMiddleware(h.auth))
	admin := middleware.AdminMiddleware(h.auth, h.adminEmail)
	{
		api.GET("/session", h.Session)
		api.PUT("/profile", h.UpdateProfile)
		api.GET("/stats", h.Stats)

		api.GET("/tasks", h.ListTasks)
		api.GET("/tasks/:id", h.GetTask)

		// Admin only: user listing and every task mutation
		api.GET("/users", admin, h.ListUsers)
		api.POST("/tasks", admin, h.CreateTask)
		api.PUT("/tasks/:id", admin, h.UpdateTask)
		api.DELETE("/tasks/:id", admin, h.DeleteTask)

		if h.hub != nil {
			api.GET("/events", h.Events)
		}
	}
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// caller returns the authenticated identity and whether it is the admin identity.
func (h *Handler) caller(c *gin.Context) (*auth.Identity, bool) {
	id, _ := middleware.CurrentIdentity(c)
	return id, middleware.IsAdmin(c, h.adminEmail)
}

func (h *Handler) publish(ev events.Event) {
	if h.bus == nil {
		return
	}
	ev.At = h.now()
	h.bus.Publish(ev)
}
