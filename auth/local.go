// local.go - Provider backed by the accounts table, bcrypt and HS256 JWTs

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-task-backend/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type Local struct {
	db     *gorm.DB
	secret []byte
	ttl    time.Duration
	cost   int
	now    func() time.Time
}

// Option tweaks a Local provider.
type Option func(*Local)

// WithBcryptCost overrides bcrypt.DefaultCost. Tests use bcrypt.MinCost.
func WithBcryptCost(cost int) Option {
	return func(l *Local) { l.cost = cost }
}

// WithClock replaces time.Now for token issuing and validation.
func WithClock(now func() time.Time) Option {
	return func(l *Local) { l.now = now }
}

func NewLocal(db *gorm.DB, secret string, ttl time.Duration, opts ...Option) *Local {
	l := &Local{
		db:     db,
		secret: []byte(secret),
		ttl:    ttl,
		cost:   bcrypt.DefaultCost,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Local) CreateUser(ctx context.Context, email, password string, meta Metadata) (*Identity, error) {
	email = models.NormalizeEmail(email)
	if !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}
	if len(password) < minPasswordLen {
		return nil, ErrWeakPassword
	}
	if taken, err := l.emailTaken(ctx, email, ""); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), l.cost) // Hash password
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role := meta.Role
	if role == "" {
		role = models.RoleUser
	}
	account := models.Account{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(meta.Name),
		Role:         role,
	}
	if err := l.db.WithContext(ctx).Create(&account).Error; err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}
	return identityOf(&account), nil
}

func (l *Local) SignIn(ctx context.Context, email, password string) (string, *Identity, error) {
	var account models.Account
	err := l.db.WithContext(ctx).Where("email = ?", models.NormalizeEmail(email)).Take(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, fmt.Errorf("load account: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	now := l.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Email: account.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(l.ttl)),
		},
	})
	signed, err := token.SignedString(l.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return signed, identityOf(&account), nil
}

// GetUser validates the token and reloads the account it names.
func (l *Local) GetUser(ctx context.Context, token string) (*Identity, error) {
	var c claims
	parsed, err := jwt.ParseWithClaims(token, &c, func(*jwt.Token) (interface{}, error) {
		return l.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(l.now))
	if err != nil || !parsed.Valid || c.Subject == "" {
		return nil, ErrInvalidToken
	}

	account, err := l.account(ctx, c.Subject)
	if errors.Is(err, ErrUserNotFound) {
		return nil, ErrInvalidToken
	}
	if err != nil {
		return nil, err
	}
	return identityOf(account), nil
}

// UpdateUser changes email and name. An empty meta.Role keeps the current role.
func (l *Local) UpdateUser(ctx context.Context, id, email string, meta Metadata) (*Identity, error) {
	account, err := l.account(ctx, id)
	if err != nil {
		return nil, err
	}

	email = models.NormalizeEmail(email)
	if !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}
	if email != account.Email {
		if taken, err := l.emailTaken(ctx, email, account.ID); err != nil {
			return nil, err
		} else if taken {
			return nil, ErrEmailTaken
		}
	}

	account.Email = email
	account.Name = strings.TrimSpace(meta.Name)
	if meta.Role != "" {
		account.Role = meta.Role
	}
	if err := l.db.WithContext(ctx).Save(account).Error; err != nil {
		return nil, fmt.Errorf("update account: %w", err)
	}
	return identityOf(account), nil
}

func (l *Local) account(ctx context.Context, id string) (*models.Account, error) {
	var account models.Account
	err := l.db.WithContext(ctx).Where("id = ?", id).Take(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load account: %w", err)
	}
	return &account, nil
}

// emailTaken reports whether another account (not exceptID) already uses email.
func (l *Local) emailTaken(ctx context.Context, email, exceptID string) (bool, error) {
	var count int64
	q := l.db.WithContext(ctx).Model(&models.Account{}).Where("email = ?", email)
	if exceptID != "" {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("check email: %w", err)
	}
	return count > 0, nil
}

func identityOf(a *models.Account) *Identity {
	return &Identity{ID: a.ID, Email: a.Email, Name: a.Name, Role: a.Role}
}
