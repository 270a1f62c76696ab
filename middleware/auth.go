// auth.go - Bearer token authentication and admin gating
//
// Authentication Flow:
// 1. Extract the token from "Authorization: Bearer <token>" (or ?access_token= for WebSockets)
// 2. Ask the auth provider who the token belongs to
// 3. Store the identity in the gin context for handlers
//
// Authorization Flow (Admin):
// 1. Authenticate first if no identity is in the context yet
// 2. Compare the caller's email with the single admin identity
// 3. Allow or reject with 401

package middleware // Declares the package name

import ( // Import required packages
	"net/http" // HTTP status codes
	"strings"  // Header parsing

	"go-task-backend/auth"   // Identity provider
	"go-task-backend/models" // Email comparison

	"github.com/gin-gonic/gin" // Gin web framework (for middleware)
)

const identityKey = "identity" // Gin context key holding *auth.Identity

// AuthMiddleware - Returns a Gin middleware function that requires a valid bearer token
func AuthMiddleware(provider auth.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authenticate(c, provider) {
			return // Request already aborted with 401
		}
		c.Next() // Continue to next handler (authentication successful)
	}
}

// AdminMiddleware - Returns a Gin middleware function that only lets the admin identity through
// Non-admin callers get 401, the same answer as anonymous ones.
func AdminMiddleware(provider auth.Provider, adminEmail string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// STEP 1: Make sure the caller is authenticated
		if _, ok := CurrentIdentity(c); !ok && !authenticate(c, provider) {
			return
		}

		// STEP 2: Check the caller against the admin identity
		if !IsAdmin(c, adminEmail) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		c.Next() // Continue to next handler (admin access granted)
	}
}

// CurrentIdentity returns the identity stored by the auth middleware.
func CurrentIdentity(c *gin.Context) (*auth.Identity, bool) {
	v, exists := c.Get(identityKey)
	if !exists {
		return nil, false
	}
	id, ok := v.(*auth.Identity)
	return id, ok && id != nil
}

// IsAdmin reports whether the authenticated caller is the admin identity.
func IsAdmin(c *gin.Context, adminEmail string) bool {
	id, ok := CurrentIdentity(c)
	return ok && models.SameEmail(id.Email, adminEmail)
}

// authenticate validates the caller's token and stores the identity. It aborts on failure.
func authenticate(c *gin.Context, provider auth.Provider) bool {
	token := extractToken(c)
	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
		return false
	}

	identity, err := provider.GetUser(c.Request.Context(), token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return false
	}

	c.Set(identityKey, identity)
	return true
}

func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	if header == "" {
		return c.Query("access_token") // Browsers cannot set headers on WebSocket upgrades
	}
	return ""
}
