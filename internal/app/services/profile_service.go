package services

import (
	"context"

	"github.com/deniz/careerhub/internal/app/models"
)

// ProfileService handles the student profile screen.
type ProfileService struct {
	profiles ProfileStore
}

// NewProfileService creates a new ProfileService
func NewProfileService(profiles ProfileStore) *ProfileService {
	return &ProfileService{profiles: profiles}
}

// Get returns the student's profile, creating an empty one on first access.
func (s *ProfileService) Get(ctx context.Context, userID int64) (*models.StudentProfile, error) {
	return s.profiles.GetOrCreate(ctx, userID)
}

// Update stores the student's skills and enrolled subjects.
func (s *ProfileService) Update(ctx context.Context, userID int64, skills, enrolledSubjects string) (*models.StudentProfile, error) {
	profile, err := s.profiles.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile.Skills = skills
	profile.EnrolledSubjects = enrolledSubjects

	if err := s.profiles.Update(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}
