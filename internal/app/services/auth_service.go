package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/deniz/careerhub/internal/app/models"
	"github.com/deniz/careerhub/internal/pkg/apperrors"
	"github.com/deniz/careerhub/internal/pkg/auth"
)

var emailRegex = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,4}$`)

// RegisterInput carries validated registration form data into the service.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     models.RoleType
}

// AuthService handles registration and login. Registration owns the role
// bootstrap: it is the only place a student profile is created eagerly;
// everywhere else profiles appear lazily through ProfileStore.GetOrCreate.
type AuthService struct {
	users    UserStore
	profiles ProfileStore
	logger   zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(users UserStore, profiles ProfileStore, logger zerolog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		profiles: profiles,
		logger:   logger,
	}
}

// validateUsername checks username shape
func (s *AuthService) validateUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return apperrors.NewValidationError("username cannot be empty")
	}
	if len(username) < 3 || len(username) > 150 {
		return apperrors.NewValidationError("username must be between 3 and 150 characters")
	}
	return nil
}

// validateEmail checks email format
func (s *AuthService) validateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return apperrors.NewValidationError("email cannot be empty")
	}
	if !emailRegex.MatchString(strings.ToLower(email)) {
		return apperrors.NewValidationError("email format is invalid")
	}
	return nil
}

// validatePassword checks if the password meets requirements
func (s *AuthService) validatePassword(password string) error {
	if len(password) < 8 {
		return apperrors.NewValidationError("password must be at least 8 characters long")
	}

	hasLetter := false
	hasDigit := false
	for _, char := range password {
		if unicode.IsLetter(char) {
			hasLetter = true
		}
		if unicode.IsDigit(char) {
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return apperrors.NewValidationError("password must contain at least one letter and one digit")
	}

	return nil
}

// Register creates an account with the selected role and, for students,
// ensures exactly one profile exists. Calling the profile bootstrap again
// for the same identity is a no-op, so an explicit registration after an
// automatic hook cannot duplicate anything.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	if err := s.validateUsername(input.Username); err != nil {
		return nil, err
	}
	if err := s.validateEmail(input.Email); err != nil {
		return nil, err
	}
	if err := s.validatePassword(input.Password); err != nil {
		return nil, err
	}
	if !input.Role.Valid() {
		return nil, apperrors.NewValidationError("role must be student or lecturer")
	}

	taken, err := s.users.UsernameExists(ctx, input.Username)
	if err != nil {
		return nil, fmt.Errorf("error checking username: %w", err)
	}
	if taken {
		return nil, apperrors.ErrUsernameAlreadyExists
	}

	inUse, err := s.users.EmailExists(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("error checking email: %w", err)
	}
	if inUse {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hashed, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Username: input.Username,
		Email:    input.Email,
		Password: hashed,
		Role:     input.Role,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	if user.Role == models.RoleStudent {
		if _, err := s.EnsureStudentProfile(ctx, user.ID); err != nil {
			// Account exists; the profile will come into being lazily on
			// the first student-scoped request.
			s.logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to bootstrap student profile")
		}
	}

	s.logger.Info().Int64("userID", user.ID).Str("role", string(user.Role)).Msg("Account registered")

	return user, nil
}

// EnsureStudentProfile is the idempotent get-or-create for the student
// profile, shared by registration and lazy student-scoped access.
func (s *AuthService) EnsureStudentProfile(ctx context.Context, userID int64) (*models.StudentProfile, error) {
	return s.profiles.GetOrCreate(ctx, userID)
}

// Login verifies credentials and returns the account. Unknown usernames
// and wrong passwords produce the same error.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error looking up user: %w", err)
	}

	if !auth.CheckPassword(user.Password, password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return user, nil
}
