package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-task-backend/auth"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// stubProvider accepts a fixed set of tokens
type stubProvider struct {
	auth.Provider
	tokens map[string]*auth.Identity
}

func (p stubProvider) GetUser(_ context.Context, token string) (*auth.Identity, error) {
	if id, ok := p.tokens[token]; ok {
		return id, nil
	}
	return nil, auth.ErrInvalidToken
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	provider := stubProvider{tokens: map[string]*auth.Identity{
		"admin-token": {ID: "1", Email: "Boss@Example.com"},
		"user-token":  {ID: "2", Email: "user@example.com"},
	}}

	r := gin.New()
	api := r.Group("/api")
	api.Use(AuthMiddleware(provider))
	api.GET("/me", func(c *gin.Context) {
		id, _ := CurrentIdentity(c)
		c.JSON(http.StatusOK, gin.H{"id": id.ID})
	})
	api.GET("/admin", AdminMiddleware(provider, "boss@example.com"), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	// Admin gate on its own authenticates first
	r.GET("/standalone", AdminMiddleware(provider, "boss@example.com"), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func call(r *gin.Engine, path, header string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r := setupRouter()

	assert.Equal(t, http.StatusUnauthorized, call(r, "/api/me", "").Code)
	assert.Equal(t, http.StatusUnauthorized, call(r, "/api/me", "Basic abc").Code)
	assert.Equal(t, http.StatusUnauthorized, call(r, "/api/me", "Bearer nope").Code)

	w := call(r, "/api/me", "Bearer user-token")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"2"}`, w.Body.String())

	// WebSocket clients pass the token as a query parameter
	assert.Equal(t, http.StatusOK, call(r, "/api/me?access_token=user-token", "").Code)
}

func TestAdminMiddleware(t *testing.T) {
	r := setupRouter()

	assert.Equal(t, http.StatusUnauthorized, call(r, "/api/admin", "Bearer user-token").Code)
	assert.Equal(t, http.StatusNoContent, call(r, "/api/admin", "Bearer admin-token").Code) // Email match ignores case

	assert.Equal(t, http.StatusUnauthorized, call(r, "/standalone", "").Code)
	assert.Equal(t, http.StatusUnauthorized, call(r, "/standalone", "Bearer user-token").Code)
	assert.Equal(t, http.StatusNoContent, call(r, "/standalone", "Bearer admin-token").Code)
}
