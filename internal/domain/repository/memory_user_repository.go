package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/Parth2500/Jwt-Auth/internal/common"
	"github.com/Parth2500/Jwt-Auth/internal/domain/model"

	"github.com/google/uuid"
)

// MemoryUserRepository keeps users in process memory. It enforces the same
// uniqueness rules as the persistent stores and hands out copies.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]model.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[string]model.User)}
}

func (r *MemoryUserRepository) Create(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkUnique(user); err != nil {
		return err
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	r.users[user.ID] = *user
	return nil
}

func (r *MemoryUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *MemoryUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &u, nil
}

func (r *MemoryUserRepository) Update(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.users[user.ID]
	if !ok {
		return common.ErrNotFound
	}
	if err := r.checkUnique(user); err != nil {
		return err
	}
	stored.FirstName = user.FirstName
	stored.LastName = user.LastName
	stored.Email = user.Email
	stored.Birthdate = user.Birthdate
	stored.Age = user.Age
	stored.Location = user.Location
	stored.Bio = user.Bio
	stored.ProfilePicture = user.ProfilePicture
	stored.ModifiedAt = user.ModifiedAt
	r.users[user.ID] = stored
	return nil
}

func (r *MemoryUserRepository) checkUnique(user *model.User) error {
	email := model.NormalizeEmail(user.Email)
	for id, u := range r.users {
		if id == user.ID {
			continue
		}
		if u.Username == user.Username {
			return fmt.Errorf("username %q already exists: %w", user.Username, common.ErrConflict)
		}
		if model.NormalizeEmail(u.Email) == email {
			return fmt.Errorf("email %q already exists: %w", email, common.ErrConflict)
		}
	}
	return nil
}

var _ UserRepository = (*MemoryUserRepository)(nil)
