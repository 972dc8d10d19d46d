package services

import (
	"context"

	"github.com/geocoder89/todohub/internal/domain/user"
)

type UserService struct {
	users UserStore
}

func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

func (s *UserService) Me(ctx context.Context, callerID int64) (user.User, error) {
	u, err := s.users.GetByID(ctx, callerID)
	if err != nil {
		return user.User{}, err
	}
	u.Hash = ""
	return u, nil
}

// Edit updates name fields only; email and digest are not editable here.
func (s *UserService) Edit(ctx context.Context, callerID int64, patch user.Patch) (user.User, error) {
	u, err := s.users.Update(ctx, callerID, patch)
	if err != nil {
		return user.User{}, err
	}
	u.Hash = ""
	return u, nil
}
