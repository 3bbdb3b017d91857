package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deniz/careerhub/internal/app/models"
	"github.com/deniz/careerhub/internal/pkg/apperrors"
)

func newOpportunityService() (*OpportunityService, *fakeOpportunityStore, *fakeApplicationStore) {
	opportunities := newFakeOpportunityStore()
	applications := newFakeApplicationStore()
	return NewOpportunityService(opportunities, applications), opportunities, applications
}

func postOpportunity(t *testing.T, service *OpportunityService, lecturerID int64, company, role string, deadline time.Time) *models.Opportunity {
	t.Helper()
	opp := &models.Opportunity{Company: company, RoleTitle: role, Deadline: deadline}
	require.NoError(t, service.Create(context.Background(), lecturerID, opp))
	return opp
}

func TestCreateSetsAuthor(t *testing.T) {
	service, _, _ := newOpportunityService()

	opp := postOpportunity(t, service, 7, "Acme", "Go Intern", time.Now().AddDate(0, 1, 0))

	require.NotNil(t, opp.PostedBy)
	assert.Equal(t, int64(7), *opp.PostedBy)
	assert.NotZero(t, opp.ID)
}

func TestCreateValidation(t *testing.T) {
	service, _, _ := newOpportunityService()
	deadline := time.Now().AddDate(0, 1, 0)

	cases := []struct {
		name string
		opp  *models.Opportunity
	}{
		{"missing company", &models.Opportunity{RoleTitle: "Intern", Deadline: deadline}},
		{"missing role", &models.Opportunity{Company: "Acme", Deadline: deadline}},
		{"missing deadline", &models.Opportunity{Company: "Acme", RoleTitle: "Intern"}},
		{"blank company", &models.Opportunity{Company: "   ", RoleTitle: "Intern", Deadline: deadline}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := service.Create(context.Background(), 1, tc.opp)
			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
		})
	}
}

func TestListDefaultSortIsDeadline(t *testing.T) {
	service, _, _ := newOpportunityService()
	now := time.Now()

	postOpportunity(t, service, 1, "Late Co", "Role A", now.AddDate(0, 2, 0))
	postOpportunity(t, service, 1, "Soon Co", "Role B", now.AddDate(0, 0, 3))

	got, err := service.List(context.Background(), "", models.ParseSort(""))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Soon Co", got[0].Company)
}

func TestListNewestSortIsCreatedAt(t *testing.T) {
	service, _, _ := newOpportunityService()
	now := time.Now()
	deadline := now.AddDate(0, 1, 0)

	older := postOpportunity(t, service, 1, "First Co", "Role A", deadline)
	newer := postOpportunity(t, service, 1, "Second Co", "Role B", deadline)
	older.CreatedAt = now.Add(-time.Hour)
	newer.CreatedAt = now

	got, err := service.List(context.Background(), "", models.SortNewest)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Second Co", got[0].Company)
	assert.False(t, got[0].CreatedAt.Before(got[1].CreatedAt))
}

func TestListSearchTrimsQuery(t *testing.T) {
	service, _, _ := newOpportunityService()
	now := time.Now().AddDate(0, 1, 0)

	postOpportunity(t, service, 1, "Acme Analytics", "Data Intern", now)
	postOpportunity(t, service, 1, "Northwind", "Backend Dev", now)

	got, err := service.List(context.Background(), "  acme  ", models.SortDeadline)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Acme Analytics", got[0].Company)
}

func TestOwnershipScoping(t *testing.T) {
	service, _, _ := newOpportunityService()
	deadline := time.Now().AddDate(0, 1, 0)

	mine := postOpportunity(t, service, 1, "Acme", "Go Intern", deadline)
	theirs := postOpportunity(t, service, 2, "Rival", "Rust Intern", deadline)

	// Own posting resolves
	got, err := service.GetOwn(context.Background(), mine.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, mine.ID, got.ID)

	// Another lecturer's posting reads as not found
	_, err = service.GetOwn(context.Background(), theirs.ID, 1)
	assert.ErrorIs(t, err, apperrors.ErrOpportunityNotFound)

	err = service.Delete(context.Background(), theirs.ID, 1)
	assert.ErrorIs(t, err, apperrors.ErrOpportunityNotFound)

	theirs.Company = "Hijacked"
	err = service.Update(context.Background(), 1, theirs)
	assert.ErrorIs(t, err, apperrors.ErrOpportunityNotFound)

	// ListOwn only shows the requester's postings
	own, err := service.ListOwn(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, mine.ID, own[0].ID)
}

func TestUpdateOwn(t *testing.T) {
	service, store, _ := newOpportunityService()
	deadline := time.Now().AddDate(0, 1, 0)

	opp := postOpportunity(t, service, 1, "Acme", "Go Intern", deadline)

	opp.RoleTitle = "Senior Go Intern"
	require.NoError(t, service.Update(context.Background(), 1, opp))

	stored, err := store.GetByID(context.Background(), opp.ID)
	require.NoError(t, err)
	assert.Equal(t, "Senior Go Intern", stored.RoleTitle)
}

func TestApplicationsRequireOwnership(t *testing.T) {
	service, _, applications := newOpportunityService()
	deadline := time.Now().AddDate(0, 1, 0)

	opp := postOpportunity(t, service, 1, "Acme", "Go Intern", deadline)
	require.NoError(t, applications.Create(context.Background(), &models.Application{
		StudentID:     10,
		OpportunityID: opp.ID,
	}))

	gotOpp, apps, err := service.Applications(context.Background(), opp.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, opp.ID, gotOpp.ID)
	assert.Len(t, apps, 1)

	// Applicant details never leak to a non-owner
	_, _, err = service.Applications(context.Background(), opp.ID, 2)
	assert.ErrorIs(t, err, apperrors.ErrOpportunityNotFound)
}
