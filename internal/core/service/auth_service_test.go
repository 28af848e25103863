package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskly/tracker-api/internal/core/domain"
	"github.com/taskly/tracker-api/internal/core/ports"
)

const testSecret = "test-secret"

func newAuthService(users *stubUserRepo, throttle *stubThrottle) *AuthService {
	return NewAuthService(users, throttle, testSecret, time.Hour, discardLogger)
}

func registerUser(t *testing.T, svc *AuthService, username, password string) *domain.User {
	t.Helper()
	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: username,
		Password: password,
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	return user
}

// ---------------------------------------------------------------------------
// Register
// ---------------------------------------------------------------------------

func TestAuthService_Register_HashesPassword(t *testing.T) {
	users := newStubUserRepo()
	svc := newAuthService(users, newStubThrottle())

	user := registerUser(t, svc, "alice", "s3cret-pw")

	stored := users.byID[user.ID]
	if stored.PasswordHash == "s3cret-pw" {
		t.Fatal("password must never be stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret-pw")); err != nil {
		t.Errorf("stored hash must verify against the original password: %v", err)
	}
}

func TestAuthService_Register_DefaultPreferences(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), newStubThrottle())

	user := registerUser(t, svc, "alice", "s3cret-pw")
	if !user.EmailNotifications {
		t.Error("new accounts default to email notifications on")
	}
	if user.DarkMode {
		t.Error("new accounts default to dark mode off")
	}
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), newStubThrottle())
	registerUser(t, svc, "alice", "pw-one")

	_, err := svc.Register(context.Background(), ports.RegisterInput{Username: "alice", Password: "pw-two"})
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Register_RequiredFields(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), newStubThrottle())
	ctx := context.Background()

	var ve *domain.ValidationError
	if _, err := svc.Register(ctx, ports.RegisterInput{Password: "pw"}); !errors.As(err, &ve) {
		t.Errorf("expected validation error for missing username, got %v", err)
	}
	if _, err := svc.Register(ctx, ports.RegisterInput{Username: "alice"}); !errors.As(err, &ve) {
		t.Errorf("expected validation error for missing password, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------------

func TestAuthService_Login_Success(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), newStubThrottle())
	registered := registerUser(t, svc, "alice", "s3cret-pw")

	token, user, err := svc.Login(context.Background(), "alice", "s3cret-pw")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != registered.ID {
		t.Errorf("expected user %d, got %d", registered.ID, user.ID)
	}

	// The token must parse with the signing secret and carry identity claims.
	parsed, err := jwt.Parse(token, func(tok *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token must be valid: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if int64(claims["user_id"].(float64)) != registered.ID {
		t.Errorf("user_id claim mismatch: %v", claims["user_id"])
	}
	if claims["username"] != "alice" {
		t.Errorf("username claim mismatch: %v", claims["username"])
	}
	if claims["jti"] == nil || claims["jti"] == "" {
		t.Error("token must carry a jti claim")
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	throttle := newStubThrottle()
	svc := newAuthService(newStubUserRepo(), throttle)
	registerUser(t, svc, "alice", "s3cret-pw")

	_, _, err := svc.Login(context.Background(), "alice", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if throttle.failures["alice"] != 1 {
		t.Errorf("failed login must be recorded, got %d", throttle.failures["alice"])
	}
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), newStubThrottle())

	_, _, err := svc.Login(context.Background(), "nobody", "pw")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_Login_EmptyCredentials(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), newStubThrottle())

	_, _, err := svc.Login(context.Background(), "", "")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Throttling
// ---------------------------------------------------------------------------

func TestAuthService_Login_BlockedAfterRepeatedFailures(t *testing.T) {
	throttle := newStubThrottle()
	svc := newAuthService(newStubUserRepo(), throttle)
	registerUser(t, svc, "alice", "s3cret-pw")
	ctx := context.Background()

	for i := 0; i < throttle.limit; i++ {
		if _, _, err := svc.Login(ctx, "alice", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("attempt %d: expected ErrInvalidCredentials, got %v", i+1, err)
		}
	}

	// Even the correct password is rejected while blocked.
	_, _, err := svc.Login(ctx, "alice", "s3cret-pw")
	if !errors.Is(err, domain.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestAuthService_Login_SuccessResetsThrottle(t *testing.T) {
	throttle := newStubThrottle()
	svc := newAuthService(newStubUserRepo(), throttle)
	registerUser(t, svc, "alice", "s3cret-pw")
	ctx := context.Background()

	_, _, _ = svc.Login(ctx, "alice", "wrong")
	_, _, _ = svc.Login(ctx, "alice", "wrong")

	if _, _, err := svc.Login(ctx, "alice", "s3cret-pw"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if throttle.failures["alice"] != 0 {
		t.Errorf("successful login must reset the failure count, got %d", throttle.failures["alice"])
	}
}

func TestAuthService_Login_ThrottleErrorDegradesOpen(t *testing.T) {
	throttle := newStubThrottle()
	throttle.checkErr = errors.New("redis down")
	svc := newAuthService(newStubUserRepo(), throttle)
	registerUser(t, svc, "alice", "s3cret-pw")

	// A broken throttle store must not lock out valid logins.
	if _, _, err := svc.Login(context.Background(), "alice", "s3cret-pw"); err != nil {
		t.Fatalf("login must proceed when the throttle check errors: %v", err)
	}
}

// ---------------------------------------------------------------------------
// Profile / password
// ---------------------------------------------------------------------------

func TestAuthService_UpdateProfile_PartialMerge(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), newStubThrottle())
	user := registerUser(t, svc, "alice", "s3cret-pw")
	ctx := context.Background()

	dark := true
	got, err := svc.UpdateProfile(ctx, user.ID, ports.UpdateProfileInput{DarkMode: &dark})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.DarkMode {
		t.Error("dark mode must be updated")
	}
	if !got.EmailNotifications {
		t.Error("untouched preference must survive a partial update")
	}
	if got.Username != "alice" {
		t.Errorf("username must be untouched, got %q", got.Username)
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), newStubThrottle())
	user := registerUser(t, svc, "alice", "old-pw")
	ctx := context.Background()

	if err := svc.ChangePassword(ctx, user.ID, "wrong", "new-pw"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong current password, got %v", err)
	}

	if err := svc.ChangePassword(ctx, user.ID, "old-pw", "new-pw"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}

	if _, _, err := svc.Login(ctx, "alice", "old-pw"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Error("old password must stop working")
	}
	if _, _, err := svc.Login(ctx, "alice", "new-pw"); err != nil {
		t.Errorf("new password must work: %v", err)
	}
}
