package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/deniz/careerhub/internal/app/models"
	"github.com/deniz/careerhub/internal/pkg/apperrors"
)

// maxListingResults bounds the student listing. A deliberate cap, not
// pagination: the page simply never grows past this.
const maxListingResults = 200

// OpportunityService handles opportunity listing, search and the
// lecturer-scoped management operations.
type OpportunityService struct {
	opportunities OpportunityStore
	applications  ApplicationStore
}

// NewOpportunityService creates a new OpportunityService
func NewOpportunityService(opportunities OpportunityStore, applications ApplicationStore) *OpportunityService {
	return &OpportunityService{
		opportunities: opportunities,
		applications:  applications,
	}
}

// validateOpportunity checks the required posting fields
func (s *OpportunityService) validateOpportunity(opp *models.Opportunity) error {
	if strings.TrimSpace(opp.Company) == "" {
		return apperrors.NewValidationError("company is required")
	}
	if strings.TrimSpace(opp.RoleTitle) == "" {
		return apperrors.NewValidationError("role is required")
	}
	if opp.Deadline.IsZero() {
		return apperrors.NewValidationError("deadline is required")
	}
	return nil
}

// List retrieves opportunities for the student listing: optional
// case-insensitive substring search over company, role and description,
// ordered by the sort mode, capped at the listing bound.
func (s *OpportunityService) List(ctx context.Context, query string, sort models.OpportunitySort) ([]*models.Opportunity, error) {
	return s.opportunities.Search(ctx, strings.TrimSpace(query), sort, maxListingResults)
}

// Get retrieves a single opportunity for the detail page
func (s *OpportunityService) Get(ctx context.Context, id int64) (*models.Opportunity, error) {
	return s.opportunities.GetByID(ctx, id)
}

// ListOwn retrieves the requesting lecturer's own postings
func (s *OpportunityService) ListOwn(ctx context.Context, lecturerID int64) ([]*models.Opportunity, error) {
	return s.opportunities.ListByLecturer(ctx, lecturerID)
}

// GetOwn retrieves a posting only if authored by the requesting lecturer.
// Anything else, including another lecturer's posting, is not found.
func (s *OpportunityService) GetOwn(ctx context.Context, id, lecturerID int64) (*models.Opportunity, error) {
	return s.opportunities.GetOwned(ctx, id, lecturerID)
}

// Create posts a new opportunity authored by the lecturer
func (s *OpportunityService) Create(ctx context.Context, lecturerID int64, opp *models.Opportunity) error {
	if err := s.validateOpportunity(opp); err != nil {
		return err
	}

	opp.PostedBy = &lecturerID
	if err := s.opportunities.Create(ctx, opp); err != nil {
		return fmt.Errorf("error creating opportunity: %w", err)
	}

	return nil
}

// Update edits a posting authored by the requesting lecturer
func (s *OpportunityService) Update(ctx context.Context, lecturerID int64, opp *models.Opportunity) error {
	if err := s.validateOpportunity(opp); err != nil {
		return err
	}

	return s.opportunities.UpdateOwned(ctx, opp, lecturerID)
}

// Delete removes a posting authored by the requesting lecturer
func (s *OpportunityService) Delete(ctx context.Context, id, lecturerID int64) error {
	return s.opportunities.DeleteOwned(ctx, id, lecturerID)
}

// Applications returns all applications for one of the lecturer's own
// postings, joined with applicant details. Ownership is checked first so a
// foreign posting reads as not found rather than leaking applicants.
func (s *OpportunityService) Applications(ctx context.Context, opportunityID, lecturerID int64) (*models.Opportunity, []*models.Application, error) {
	opp, err := s.opportunities.GetOwned(ctx, opportunityID, lecturerID)
	if err != nil {
		return nil, nil, err
	}

	apps, err := s.applications.ListByOpportunity(ctx, opportunityID)
	if err != nil {
		return nil, nil, err
	}

	return opp, apps, nil
}
