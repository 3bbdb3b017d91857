package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deniz/careerhub/internal/app/models"
	"github.com/deniz/careerhub/internal/pkg/apperrors"
)

type applicationFixture struct {
	service       *ApplicationService
	profiles      *fakeProfileStore
	opportunities *fakeOpportunityStore
	saves         *fakeSaveStore
	applications  *fakeApplicationStore
	notifications *fakeNotificationStore
	opportunity   *models.Opportunity
}

func newApplicationFixture(t *testing.T) *applicationFixture {
	t.Helper()

	f := &applicationFixture{
		profiles:      newFakeProfileStore(),
		opportunities: newFakeOpportunityStore(),
		saves:         newFakeSaveStore(),
		applications:  newFakeApplicationStore(),
		notifications: newFakeNotificationStore(),
	}
	f.service = NewApplicationService(
		f.profiles, f.opportunities, f.saves, f.applications, f.notifications, zerolog.Nop(),
	)

	lecturerID := int64(99)
	f.opportunity = &models.Opportunity{
		Company:   "Acme",
		RoleTitle: "Go Intern",
		Deadline:  time.Now().AddDate(0, 1, 0),
		PostedBy:  &lecturerID,
	}
	require.NoError(t, f.opportunities.Create(context.Background(), f.opportunity))

	return f
}

func TestToggleSaveRoundTrip(t *testing.T) {
	f := newApplicationFixture(t)
	userID := int64(1)

	saved, err := f.service.ToggleSave(context.Background(), userID, f.opportunity.ID)
	require.NoError(t, err)
	assert.True(t, saved)

	saved, applied, err := f.service.Status(context.Background(), userID, f.opportunity.ID)
	require.NoError(t, err)
	assert.True(t, saved)
	assert.False(t, applied)

	// Toggling again restores the original state
	saved, err = f.service.ToggleSave(context.Background(), userID, f.opportunity.ID)
	require.NoError(t, err)
	assert.False(t, saved)

	saved, _, err = f.service.Status(context.Background(), userID, f.opportunity.ID)
	require.NoError(t, err)
	assert.False(t, saved)
}

func TestToggleSaveNotifiesOnlyOnSave(t *testing.T) {
	f := newApplicationFixture(t)
	userID := int64(1)

	_, err := f.service.ToggleSave(context.Background(), userID, f.opportunity.ID)
	require.NoError(t, err)
	assert.Len(t, f.notifications.notifications, 1)
	assert.Contains(t, f.notifications.notifications[0].Message, "You saved opportunity")
	assert.Contains(t, f.notifications.notifications[0].Message, "Acme")

	// Unsaving is silent
	_, err = f.service.ToggleSave(context.Background(), userID, f.opportunity.ID)
	require.NoError(t, err)
	assert.Len(t, f.notifications.notifications, 1)
}

func TestToggleSaveUnknownOpportunity(t *testing.T) {
	f := newApplicationFixture(t)

	_, err := f.service.ToggleSave(context.Background(), 1, 12345)
	assert.ErrorIs(t, err, apperrors.ErrOpportunityNotFound)
}

func TestToggleSaveCreatesProfileLazily(t *testing.T) {
	f := newApplicationFixture(t)
	userID := int64(7)

	_, err := f.service.ToggleSave(context.Background(), userID, f.opportunity.ID)
	require.NoError(t, err)

	profile, err := f.profiles.GetByUserID(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, userID, profile.UserID)
}

func TestApply(t *testing.T) {
	f := newApplicationFixture(t)
	userID := int64(1)

	err := f.service.Apply(context.Background(), userID, f.opportunity.ID, "Keen to join.")
	require.NoError(t, err)

	_, applied, err := f.service.Status(context.Background(), userID, f.opportunity.ID)
	require.NoError(t, err)
	assert.True(t, applied)

	require.Len(t, f.applications.applications, 1)
	assert.Equal(t, "Keen to join.", f.applications.applications[0].Message)

	require.Len(t, f.notifications.notifications, 1)
	assert.Contains(t, f.notifications.notifications[0].Message, "Application submitted for Go Intern at Acme")
}

func TestApplyTwiceIsRejected(t *testing.T) {
	f := newApplicationFixture(t)
	userID := int64(1)

	require.NoError(t, f.service.Apply(context.Background(), userID, f.opportunity.ID, "first"))

	err := f.service.Apply(context.Background(), userID, f.opportunity.ID, "second")
	assert.ErrorIs(t, err, apperrors.ErrAlreadyApplied)

	// Nothing new was written
	assert.Len(t, f.applications.applications, 1)
	assert.Len(t, f.notifications.notifications, 1)
}

func TestApplyEmptyMessageAllowed(t *testing.T) {
	f := newApplicationFixture(t)

	err := f.service.Apply(context.Background(), 1, f.opportunity.ID, "")
	require.NoError(t, err)
	assert.Len(t, f.applications.applications, 1)
}

func TestHasApplied(t *testing.T) {
	f := newApplicationFixture(t)
	userID := int64(1)

	applied, err := f.service.HasApplied(context.Background(), userID, f.opportunity.ID)
	require.NoError(t, err)
	assert.False(t, applied)

	require.NoError(t, f.service.Apply(context.Background(), userID, f.opportunity.ID, ""))

	applied, err = f.service.HasApplied(context.Background(), userID, f.opportunity.ID)
	require.NoError(t, err)
	assert.True(t, applied)
}

func TestSaveAndApplyAreIndependent(t *testing.T) {
	f := newApplicationFixture(t)
	userID := int64(1)

	require.NoError(t, f.service.Apply(context.Background(), userID, f.opportunity.ID, ""))

	saved, applied, err := f.service.Status(context.Background(), userID, f.opportunity.ID)
	require.NoError(t, err)
	assert.False(t, saved)
	assert.True(t, applied)

	// Unsaving after applying leaves the application intact
	_, err = f.service.ToggleSave(context.Background(), userID, f.opportunity.ID)
	require.NoError(t, err)
	_, err = f.service.ToggleSave(context.Background(), userID, f.opportunity.ID)
	require.NoError(t, err)

	_, applied, err = f.service.Status(context.Background(), userID, f.opportunity.ID)
	require.NoError(t, err)
	assert.True(t, applied)
}
