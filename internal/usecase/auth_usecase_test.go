package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"talent-match/internal/config"
	"talent-match/internal/domain/user"
	"talent-match/internal/pkg/jwt"
	ucauth "talent-match/internal/usecase/auth"

	"github.com/google/uuid"
)

func newAuthFixture() (*Auth, *jwt.HMACService) {
	svc := jwt.NewHMACService(config.JWTConfig{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     time.Minute,
		RefreshTTL:    time.Hour,
	})
	return NewAuthUsecase(newMemUsers(), svc), svc
}

func TestAuth_RegisterLoginRefresh(t *testing.T) {
	uc, svc := newAuthFixture()
	ctx := context.Background()

	usr, access, refresh, err := uc.Register(ctx, ucauth.RegisterInput{
		Email:    " HR@Example.com ",
		Password: "supersecret",
		Fullname: "Hiring Team",
		Role:     user.RoleRecruiter,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if usr.Email != "hr@example.com" || usr.PasswordHash != "" || usr.Role != user.RoleRecruiter {
		t.Fatalf("unexpected user %+v", usr)
	}

	claims, err := svc.ValidateToken(access)
	if err != nil {
		t.Fatalf("access token invalid: %v", err)
	}
	if claims.Role != user.RoleRecruiter || claims.UserID != usr.ID {
		t.Fatalf("unexpected claims %+v", claims)
	}

	if _, _, _, err := uc.Login(ctx, ucauth.LoginInput{Email: "hr@example.com", Password: "wrong-password"}); !errors.Is(err, ucauth.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, _, err := uc.Login(ctx, ucauth.LoginInput{Email: "HR@example.com", Password: "supersecret"}); err != nil {
		t.Fatalf("unexpected login error: %v", err)
	}

	newAccess, newRefresh, err := uc.Refresh(ctx, refresh)
	if err != nil {
		t.Fatalf("unexpected refresh error: %v", err)
	}
	if newAccess == "" || newRefresh == "" {
		t.Fatalf("expected fresh tokens")
	}

	if _, _, err := uc.Refresh(ctx, access); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("access token must not refresh, got %v", err)
	}
	if _, _, err := uc.Refresh(ctx, ""); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAuth_RegisterValidation(t *testing.T) {
	uc, _ := newAuthFixture()
	ctx := context.Background()

	cases := []struct {
		name string
		in   ucauth.RegisterInput
		want error
	}{
		{"short password", ucauth.RegisterInput{Email: "a@b.c", Password: "short", Fullname: "A"}, ucauth.ErrInvalidInput},
		{"missing fullname", ucauth.RegisterInput{Email: "a@b.c", Password: "longenough"}, ucauth.ErrInvalidInput},
		{"admin self-signup", ucauth.RegisterInput{Email: "a@b.c", Password: "longenough", Fullname: "A", Role: user.RoleAdmin}, ucauth.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, _, err := uc.Register(ctx, tc.in); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	in := ucauth.RegisterInput{Email: "dup@example.com", Password: "longenough", Fullname: "Dup"}
	if _, _, _, err := uc.Register(ctx, in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, _, _, err := uc.Register(ctx, in); !errors.Is(err, ucauth.ErrEmailAlreadyRegistered) {
		t.Fatalf("expected ErrEmailAlreadyRegistered, got %v", err)
	}
}

func TestUsers_MeHidesPasswordHash(t *testing.T) {
	users := newMemUsers()
	uc := NewAuthUsecase(users, jwt.NewHMACService(config.JWTConfig{
		AccessSecret: "a", RefreshSecret: "r", AccessTTL: time.Minute, RefreshTTL: time.Hour,
	}))
	usr, _, _, err := uc.Register(context.Background(), ucauth.RegisterInput{Email: "me@example.com", Password: "longenough", Fullname: "Me"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	me, err := NewUserUsecase(users).Me(context.Background(), usr.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if me.PasswordHash != "" || me.Email != "me@example.com" {
		t.Fatalf("unexpected user %+v", me)
	}
	if _, err := NewUserUsecase(users).Me(context.Background(), uuid.New()); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
