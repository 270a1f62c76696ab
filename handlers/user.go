// user.go - Handles registration, login, session and profile endpoints

package handlers // Declares the package name

import ( // Import required packages
	"context"
	"errors"
	"net/http" // HTTP status codes
	"strings"

	"go-task-backend/auth"     // Identity provider
	"go-task-backend/models"   // User record
	"go-task-backend/response" // Error rendering
	"go-task-backend/store"    // Record repositories

	"github.com/gin-gonic/gin" // Gin web framework
)

type SignupInput struct { // Struct for registration input
	Email    string `json:"email" binding:"required"`    // Email (required)
	Password string `json:"password" binding:"required"` // Password (required)
	Name     string `json:"name"`                        // Display name
}

type LoginInput struct { // Struct for login input
	Email    string `json:"email" binding:"required"`    // Email (required)
	Password string `json:"password" binding:"required"` // Password (required)
}

type ProfileInput struct { // Struct for profile updates; both fields are required
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (h *Handler) Signup(c *gin.Context) { // Handler for user registration
	const op = "handlers.Handler.Signup"
	log := h.log.WithField("operation", op)

	var input SignupInput                            // Declare input variable
	if err := c.ShouldBindJSON(&input); err != nil { // Parse JSON input
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()}) // Return error if invalid
		return
	}

	user, err := h.registerUser(c.Request.Context(), input.Email, input.Password, input.Name)
	if err != nil {
		log.WithError(err).WithField("email", input.Email).Warn("signup failed")
		response.HandleError(c, err)
		return
	}

	log.WithField("user_id", user.ID).Info("user registered")
	c.JSON(http.StatusOK, gin.H{"message": "user registered successfully", "user": user})
}

func (h *Handler) Login(c *gin.Context) { // Handler for user login
	var input LoginInput                             // Declare input variable
	if err := c.ShouldBindJSON(&input); err != nil { // Parse JSON input
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()}) // Return error if invalid
		return
	}

	token, identity, err := h.auth.SignIn(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			h.log.WithField("operation", "handlers.Handler.Login").WithError(err).Error("sign in failed")
		}
		response.HandleError(c, err)
		return
	}

	user, err := h.userFor(c.Request.Context(), identity)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user}) // Return token
}

// Session returns the caller's user record.
func (h *Handler) Session(c *gin.Context) {
	identity, _ := h.caller(c)
	user, err := h.userFor(c.Request.Context(), identity)
	if err != nil {
		h.log.WithField("operation", "handlers.Handler.Session").WithError(err).Error("load session user")
		response.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// ListUsers returns every user record. Admin only.
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		h.log.WithField("operation", "handlers.Handler.ListUsers").WithError(err).Error("list users")
		response.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// UpdateProfile changes the caller's name and email. The role never changes here.
func (h *Handler) UpdateProfile(c *gin.Context) {
	const op = "handlers.Handler.UpdateProfile"
	log := h.log.WithField("operation", op)
	ctx := c.Request.Context()
	identity, _ := h.caller(c)

	var input ProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	if input.Name == "" || input.Email == "" {
		response.HandleError(c, response.NewValidationError("name and email are required"))
		return
	}
	// Taking over the admin identity through a profile edit is not allowed
	if models.SameEmail(input.Email, h.adminEmail) && !models.SameEmail(identity.Email, h.adminEmail) {
		response.HandleError(c, response.NewValidationError("email address is reserved"))
		return
	}

	updated, err := h.auth.UpdateUser(ctx, identity.ID, input.Email, auth.Metadata{Name: input.Name})
	if err != nil {
		log.WithError(err).WithField("user_id", identity.ID).Warn("profile update rejected by auth provider")
		response.HandleError(c, err)
		return
	}

	// Keep the user record in step; callers without a record only have the auth account
	user, err := h.users.Get(ctx, identity.ID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		user = userFromIdentity(updated)
	case err != nil:
		log.WithError(err).Error("load user record")
		response.HandleError(c, err)
		return
	default:
		now := h.now()
		user.Name = updated.Name
		user.Email = updated.Email
		user.UpdatedAt = &now
		if err := h.users.Put(ctx, user); err != nil {
			log.WithError(err).Error("save user record")
			response.HandleError(c, err)
			return
		}
	}

	log.WithField("user_id", identity.ID).Info("profile updated")
	c.JSON(http.StatusOK, gin.H{"message": "profile updated successfully", "user": user})
}

// EnsureAdmin registers the admin identity with password unless it already exists.
func (h *Handler) EnsureAdmin(ctx context.Context, password, name string) error {
	user, err := h.registerUser(ctx, h.adminEmail, password, name)
	if errors.Is(err, auth.ErrEmailTaken) {
		return nil // Already registered
	}
	if err != nil {
		return err
	}
	h.log.WithField("user_id", user.ID).Info("admin account created")
	return nil
}

// registerUser creates the auth account and the matching user record.
// The role is admin only when the email is the admin identity.
func (h *Handler) registerUser(ctx context.Context, email, password, name string) (*models.User, error) {
	identity, err := h.auth.CreateUser(ctx, email, password, auth.Metadata{
		Name: name,
		Role: models.RoleFor(email, h.adminEmail),
	})
	if err != nil {
		return nil, err
	}

	user := userFromIdentity(identity)
	user.CreatedAt = h.now()
	if err := h.users.Put(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// userFor loads the record for identity, falling back to what the auth provider knows.
func (h *Handler) userFor(ctx context.Context, identity *auth.Identity) (*models.User, error) {
	user, err := h.users.Get(ctx, identity.ID)
	if errors.Is(err, store.ErrNotFound) {
		return userFromIdentity(identity), nil
	}
	return user, err
}

func userFromIdentity(identity *auth.Identity) *models.User {
	role := identity.Role
	if role == "" {
		role = models.RoleUser
	}
	return &models.User{
		ID:    identity.ID,
		Email: identity.Email,
		Name:  identity.Name,
		Role:  role,
	}
}
