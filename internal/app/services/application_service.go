package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/deniz/careerhub/internal/app/models"
	"github.com/deniz/careerhub/internal/pkg/apperrors"
)

// ApplicationService handles the student save/apply workflow and the
// notifications those actions append.
type ApplicationService struct {
	profiles      ProfileStore
	opportunities OpportunityStore
	saves         SaveStore
	applications  ApplicationStore
	notifications NotificationStore
	logger        zerolog.Logger
}

// NewApplicationService creates a new ApplicationService
func NewApplicationService(
	profiles ProfileStore,
	opportunities OpportunityStore,
	saves SaveStore,
	applications ApplicationStore,
	notifications NotificationStore,
	logger zerolog.Logger,
) *ApplicationService {
	return &ApplicationService{
		profiles:      profiles,
		opportunities: opportunities,
		saves:         saves,
		applications:  applications,
		notifications: notifications,
		logger:        logger,
	}
}

// Status reports whether the student has saved and/or applied for the
// opportunity, for the detail page.
func (s *ApplicationService) Status(ctx context.Context, userID, opportunityID int64) (saved, applied bool, err error) {
	profile, err := s.profiles.GetOrCreate(ctx, userID)
	if err != nil {
		return false, false, err
	}

	saved, err = s.saves.IsSaved(ctx, profile.ID, opportunityID)
	if err != nil {
		return false, false, err
	}

	applied, err = s.applications.Exists(ctx, profile.ID, opportunityID)
	if err != nil {
		return false, false, err
	}

	return saved, applied, nil
}

// HasApplied reports whether the student already applied for the
// opportunity. Runs before the application form is even validated.
func (s *ApplicationService) HasApplied(ctx context.Context, userID, opportunityID int64) (bool, error) {
	profile, err := s.profiles.GetOrCreate(ctx, userID)
	if err != nil {
		return false, err
	}
	return s.applications.Exists(ctx, profile.ID, opportunityID)
}

// ToggleSave flips the save state for the (student, opportunity) pair.
// Returns the new state: true when the toggle saved, false when it
// unsaved. A notification is appended only on the transition to saved.
func (s *ApplicationService) ToggleSave(ctx context.Context, userID, opportunityID int64) (bool, error) {
	opp, err := s.opportunities.GetByID(ctx, opportunityID)
	if err != nil {
		return false, err
	}

	profile, err := s.profiles.GetOrCreate(ctx, userID)
	if err != nil {
		return false, err
	}

	saved, err := s.saves.IsSaved(ctx, profile.ID, opp.ID)
	if err != nil {
		return false, err
	}

	if saved {
		if err := s.saves.Delete(ctx, profile.ID, opp.ID); err != nil {
			// A concurrent unsave already removed the row; same end state.
			if !errors.Is(err, apperrors.ErrResourceNotFound) {
				return false, err
			}
		}
		return false, nil
	}

	record := &models.SavedOpportunity{StudentID: profile.ID, OpportunityID: opp.ID}
	if err := s.saves.Create(ctx, record); err != nil {
		if errors.Is(err, apperrors.ErrAlreadySaved) {
			// Lost the race to an identical request; the pair is saved.
			return true, nil
		}
		return false, err
	}

	s.notify(ctx, profile.ID, fmt.Sprintf("You saved opportunity: %s - %s", opp.Company, opp.RoleTitle))

	return true, nil
}

// Apply submits an application for the opportunity. The duplicate check
// runs before any form content matters; on violation the caller gets
// ErrAlreadyApplied and nothing is written. The store-level unique pair
// constraint turns the remaining read-then-write race into the same error.
func (s *ApplicationService) Apply(ctx context.Context, userID, opportunityID int64, message string) error {
	opp, err := s.opportunities.GetByID(ctx, opportunityID)
	if err != nil {
		return err
	}

	profile, err := s.profiles.GetOrCreate(ctx, userID)
	if err != nil {
		return err
	}

	exists, err := s.applications.Exists(ctx, profile.ID, opp.ID)
	if err != nil {
		return err
	}
	if exists {
		return apperrors.ErrAlreadyApplied
	}

	app := &models.Application{
		StudentID:     profile.ID,
		OpportunityID: opp.ID,
		Message:       message,
	}
	if err := s.applications.Create(ctx, app); err != nil {
		return err
	}

	s.notify(ctx, profile.ID, fmt.Sprintf("Application submitted for %s at %s", opp.RoleTitle, opp.Company))

	return nil
}

// notify appends a feed entry. A failed append never fails the action it
// describes; it is logged and dropped.
func (s *ApplicationService) notify(ctx context.Context, studentID int64, message string) {
	n := &models.Notification{StudentID: studentID, Message: message}
	if err := s.notifications.Create(ctx, n); err != nil {
		s.logger.Error().Err(err).Int64("studentID", studentID).Msg("Failed to append notification")
	}
}
