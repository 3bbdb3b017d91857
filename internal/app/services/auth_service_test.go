package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deniz/careerhub/internal/app/models"
	"github.com/deniz/careerhub/internal/pkg/apperrors"
	"github.com/deniz/careerhub/internal/pkg/auth"
)

func newAuthService() (*AuthService, *fakeUserStore, *fakeProfileStore) {
	users := newFakeUserStore()
	profiles := newFakeProfileStore()
	return NewAuthService(users, profiles, zerolog.Nop()), users, profiles
}

func TestRegisterStudentCreatesProfile(t *testing.T) {
	service, _, profiles := newAuthService()

	user, err := service.Register(context.Background(), RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "password1",
		Role:     models.RoleStudent,
	})
	require.NoError(t, err)

	assert.Equal(t, models.RoleStudent, user.Role)
	profile, err := profiles.GetByUserID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, profile.UserID)
}

func TestRegisterLecturerSkipsProfile(t *testing.T) {
	service, _, profiles := newAuthService()

	user, err := service.Register(context.Background(), RegisterInput{
		Username: "dr_bob",
		Email:    "bob@example.com",
		Password: "password1",
		Role:     models.RoleLecturer,
	})
	require.NoError(t, err)

	_, err = profiles.GetByUserID(context.Background(), user.ID)
	assert.ErrorIs(t, err, apperrors.ErrProfileNotFound)
}

func TestRegisterHashesPassword(t *testing.T) {
	service, users, _ := newAuthService()

	user, err := service.Register(context.Background(), RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "password1",
		Role:     models.RoleStudent,
	})
	require.NoError(t, err)

	stored, err := users.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "password1", stored.Password)
	assert.True(t, auth.CheckPassword(stored.Password, "password1"))
}

func TestRegisterDuplicateUsername(t *testing.T) {
	service, _, _ := newAuthService()

	input := RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "password1",
		Role:     models.RoleStudent,
	}
	_, err := service.Register(context.Background(), input)
	require.NoError(t, err)

	input.Email = "alice2@example.com"
	_, err = service.Register(context.Background(), input)
	assert.ErrorIs(t, err, apperrors.ErrUsernameAlreadyExists)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	service, _, _ := newAuthService()

	input := RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "password1",
		Role:     models.RoleStudent,
	}
	_, err := service.Register(context.Background(), input)
	require.NoError(t, err)

	input.Username = "alice2"
	_, err = service.Register(context.Background(), input)
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestRegisterTrimsBeforeDuplicateChecks(t *testing.T) {
	service, _, _ := newAuthService()

	_, err := service.Register(context.Background(), RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "password1",
		Role:     models.RoleStudent,
	})
	require.NoError(t, err)

	// Padding must not slip past the friendly pre-checks
	_, err = service.Register(context.Background(), RegisterInput{
		Username: "  alice  ",
		Email:    "other@example.com",
		Password: "password1",
		Role:     models.RoleStudent,
	})
	assert.ErrorIs(t, err, apperrors.ErrUsernameAlreadyExists)

	_, err = service.Register(context.Background(), RegisterInput{
		Username: "carol",
		Email:    "  ALICE@example.com ",
		Password: "password1",
		Role:     models.RoleStudent,
	})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestRegisterValidation(t *testing.T) {
	service, _, _ := newAuthService()

	cases := []struct {
		name  string
		input RegisterInput
	}{
		{"short username", RegisterInput{Username: "ab", Email: "a@example.com", Password: "password1", Role: models.RoleStudent}},
		{"bad email", RegisterInput{Username: "alice", Email: "not-an-email", Password: "password1", Role: models.RoleStudent}},
		{"short password", RegisterInput{Username: "alice", Email: "a@example.com", Password: "pw1", Role: models.RoleStudent}},
		{"password without digit", RegisterInput{Username: "alice", Email: "a@example.com", Password: "passwords", Role: models.RoleStudent}},
		{"password without letter", RegisterInput{Username: "alice", Email: "a@example.com", Password: "12345678", Role: models.RoleStudent}},
		{"bad role", RegisterInput{Username: "alice", Email: "a@example.com", Password: "password1", Role: models.RoleType("admin")}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.Register(context.Background(), tc.input)
			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
		})
	}
}

func TestEnsureStudentProfileIsIdempotent(t *testing.T) {
	service, _, profiles := newAuthService()

	user, err := service.Register(context.Background(), RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "password1",
		Role:     models.RoleStudent,
	})
	require.NoError(t, err)

	first, err := service.EnsureStudentProfile(context.Background(), user.ID)
	require.NoError(t, err)
	second, err := service.EnsureStudentProfile(context.Background(), user.ID)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, profiles.creates)
}

func TestLogin(t *testing.T) {
	service, _, _ := newAuthService()

	_, err := service.Register(context.Background(), RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "password1",
		Role:     models.RoleStudent,
	})
	require.NoError(t, err)

	user, err := service.Login(context.Background(), "alice", "password1")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	// Wrong password and unknown username are indistinguishable
	_, err = service.Login(context.Background(), "alice", "wrong-pass-1")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = service.Login(context.Background(), "nobody", "password1")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}
