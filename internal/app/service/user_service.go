package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Parth2500/Jwt-Auth/internal/domain/model"
	"github.com/Parth2500/Jwt-Auth/internal/domain/repository"
)

type UserService struct {
	userRepo repository.UserRepository
	now      func() time.Time
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo, now: time.Now}
}

// Update applies patch to the user identified by userID, which must come
// from verified token claims. An empty patch returns the record unchanged.
func (s *UserService) Update(ctx context.Context, userID string, patch model.UserPatch) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user %s: %w", userID, err)
	}
	if patch.IsEmpty() {
		return user, nil
	}

	now := s.now()
	patch.Apply(user, now)
	user.Prepare(now)
	if err := user.Validate(); err != nil {
		return nil, err
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user %s: %w", userID, err)
	}
	return user, nil
}
