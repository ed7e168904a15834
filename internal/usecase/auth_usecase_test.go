package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"iri-backend/internal/pkg/jwt"
)

func newAuthFixture() (*Auth, *stubUserRepo) {
	users := newStubUserRepo()
	svc := jwt.NewHMACService("access-secret", "refresh-secret", 15*time.Minute, 24*time.Hour)
	return NewAuthUsecase(users, svc), users
}

func TestRegisterAndLogin(t *testing.T) {
	uc, _ := newAuthFixture()

	usr, pair, err := uc.Register(context.Background(), RegisterInput{
		Email:    "  Ada@Example.COM ",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if usr.Email != "ada@example.com" {
		t.Fatalf("email not normalized: %q", usr.Email)
	}
	if usr.PasswordHash != "" {
		t.Fatal("password hash must not leave the usecase")
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("registration must issue both tokens")
	}

	_, loginPair, err := uc.Login(context.Background(), LoginInput{
		Email:    "ada@example.com",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if loginPair.AccessToken == "" {
		t.Fatal("login must issue an access token")
	}
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	uc, _ := newAuthFixture()
	_, _, err := uc.Register(context.Background(), RegisterInput{Email: "a@b.dev", Password: "short"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	uc, _ := newAuthFixture()
	in := RegisterInput{Email: "a@b.dev", Password: "correct-horse"}

	if _, _, err := uc.Register(context.Background(), in); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, _, err := uc.Register(context.Background(), in)
	if !errors.Is(err, ErrEmailAlreadyRegistered) {
		t.Fatalf("expected ErrEmailAlreadyRegistered, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	uc, _ := newAuthFixture()
	if _, _, err := uc.Register(context.Background(), RegisterInput{Email: "a@b.dev", Password: "correct-horse"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, _, err := uc.Login(context.Background(), LoginInput{Email: "a@b.dev", Password: "wrong"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	uc, _ := newAuthFixture()
	_, _, err := uc.Login(context.Background(), LoginInput{Email: "nobody@b.dev", Password: "whatever"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestRefreshRotatesTokens(t *testing.T) {
	uc, _ := newAuthFixture()
	_, pair, err := uc.Register(context.Background(), RegisterInput{Email: "a@b.dev", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	rotated, err := uc.Refresh(context.Background(), pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if rotated.AccessToken == "" || rotated.RefreshToken == "" {
		t.Fatal("refresh must issue a full pair")
	}
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	uc, _ := newAuthFixture()
	_, pair, err := uc.Register(context.Background(), RegisterInput{Email: "a@b.dev", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := uc.Refresh(context.Background(), pair.AccessToken); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("expected ErrInvalidRefreshToken, got %v", err)
	}
}

func TestRefreshRejectsGarbage(t *testing.T) {
	uc, _ := newAuthFixture()
	if _, err := uc.Refresh(context.Background(), "not-a-token"); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("expected ErrInvalidRefreshToken, got %v", err)
	}
}
