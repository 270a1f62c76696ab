// users.go - User records kept under the "user:" prefix

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"go-task-backend/kv"
	"go-task-backend/models"
)

const userPrefix = "user:"

// ErrNotFound is kv.ErrNotFound, re-exported for callers that only see this package.
var ErrNotFound = kv.ErrNotFound

type Users struct {
	kv *kv.Store
}

func NewUsers(s *kv.Store) *Users {
	return &Users{kv: s}
}

func (u *Users) Get(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := u.kv.Get(ctx, userPrefix+id, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *Users) Put(ctx context.Context, user *models.User) error {
	return u.kv.Set(ctx, userPrefix+user.ID, user)
}

// List returns all user records, oldest registration first.
func (u *Users) List(ctx context.Context) ([]models.User, error) {
	values, err := u.kv.GetByPrefix(ctx, userPrefix)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, len(values))
	for _, raw := range values {
		var user models.User
		if err := json.Unmarshal(raw, &user); err != nil {
			return nil, fmt.Errorf("decode user record: %w", err)
		}
		users = append(users, user)
	}
	sort.SliceStable(users, func(i, j int) bool {
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users, nil
}
