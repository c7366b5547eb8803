package usecase

import (
	"context"
	"errors"
	"fmt"

	"talent-match/internal/domain/user"

	"github.com/google/uuid"
)

type UserUsecase interface {
	Me(ctx context.Context, userID uuid.UUID) (user.User, error)
}

type Users struct {
	users user.Repository
}

func NewUserUsecase(users user.Repository) *Users {
	return &Users{users: users}
}

func (u *Users) Me(ctx context.Context, userID uuid.UUID) (user.User, error) {
	usr, err := u.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrUnauthorized
		}
		return user.User{}, fmt.Errorf("%w: get user: %v", ErrInternal, err)
	}
	usr.PasswordHash = ""
	return usr, nil
}
