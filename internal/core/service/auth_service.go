package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskly/tracker-api/internal/core/domain"
	"github.com/taskly/tracker-api/internal/core/ports"
)

// LoginThrottle limits failed login attempts per username (Redis).
type LoginThrottle interface {
	TooMany(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}

// AuthService implements registration, login, and account maintenance.
type AuthService struct {
	repo      ports.UserRepository
	throttle  LoginThrottle
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, throttle LoginThrottle, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, throttle: throttle, jwtSecret: jwtSecret, tokenTTL: tokenTTL, logger: logger}
}

func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	if input.Username == "" {
		return nil, domain.NewValidationError("username", "is required")
	}
	if input.Password == "" {
		return nil, domain.NewValidationError("password", "is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user, err := s.repo.Create(ctx, &domain.User{
		Username:     input.Username,
		PasswordHash: string(hash),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		// New accounts opt in to email notifications; dark mode off.
		EmailNotifications: true,
		CreatedAt:          now,
		UpdatedAt:          now,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", user.ID).Str("username", user.Username).Msg("user registered")
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	// Throttle check degrades open: a broken throttle store must not
	// lock everyone out.
	if blocked, err := s.throttle.TooMany(ctx, username); err != nil {
		s.logger.Warn().Err(err).Str("username", username).Msg("login throttle check failed, proceeding")
	} else if blocked {
		return "", nil, domain.ErrTooManyAttempts
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		if err := s.throttle.RecordFailure(ctx, username); err != nil {
			s.logger.Warn().Err(err).Str("username", username).Msg("failed to record login failure")
		}
		return "", nil, domain.ErrInvalidCredentials
	}

	if err := s.throttle.Reset(ctx, username); err != nil {
		s.logger.Warn().Err(err).Str("username", username).Msg("failed to reset login throttle")
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

func (s *AuthService) GetProfile(ctx context.Context, userID int64) (*domain.User, error) {
	return s.repo.FindByID(ctx, userID)
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID int64, input ports.UpdateProfileInput) (*domain.User, error) {
	return s.repo.Update(ctx, userID, ports.UserUpdate{
		FirstName:          input.FirstName,
		LastName:           input.LastName,
		Email:              input.Email,
		EmailNotifications: input.EmailNotifications,
		DarkMode:           input.DarkMode,
	})
}

func (s *AuthService) ChangePassword(ctx context.Context, userID int64, current, next string) error {
	if next == "" {
		return domain.NewValidationError("new_password", "is required")
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)) != nil {
		return domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	hashed := string(hash)
	if _, err := s.repo.Update(ctx, userID, ports.UserUpdate{PasswordHash: &hashed}); err != nil {
		return err
	}

	s.logger.Info().Int64("user_id", userID).Msg("password changed")
	return nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"jti":      uuid.NewString(),
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
