// Package services holds the business logic between the request handlers
// and the data access layer. Services depend on narrow store interfaces,
// satisfied by the repositories package in production and by fakes in tests.
package services

import (
	"context"

	"github.com/deniz/careerhub/internal/app/models"
)

// UserStore is the account store consumed by services.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

// ProfileStore is the student profile store consumed by services.
type ProfileStore interface {
	GetByUserID(ctx context.Context, userID int64) (*models.StudentProfile, error)
	GetOrCreate(ctx context.Context, userID int64) (*models.StudentProfile, error)
	Update(ctx context.Context, profile *models.StudentProfile) error
}

// OpportunityStore is the opportunity store consumed by services.
type OpportunityStore interface {
	Create(ctx context.Context, opp *models.Opportunity) error
	GetByID(ctx context.Context, id int64) (*models.Opportunity, error)
	GetOwned(ctx context.Context, id, lecturerID int64) (*models.Opportunity, error)
	Search(ctx context.Context, query string, sort models.OpportunitySort, limit uint64) ([]*models.Opportunity, error)
	ListByLecturer(ctx context.Context, lecturerID int64) ([]*models.Opportunity, error)
	UpdateOwned(ctx context.Context, opp *models.Opportunity, lecturerID int64) error
	DeleteOwned(ctx context.Context, id, lecturerID int64) error
}

// SaveStore is the saved-opportunity store consumed by services.
type SaveStore interface {
	IsSaved(ctx context.Context, studentID, opportunityID int64) (bool, error)
	Create(ctx context.Context, saved *models.SavedOpportunity) error
	Delete(ctx context.Context, studentID, opportunityID int64) error
}

// ApplicationStore is the application store consumed by services.
type ApplicationStore interface {
	Exists(ctx context.Context, studentID, opportunityID int64) (bool, error)
	Create(ctx context.Context, app *models.Application) error
	ListByOpportunity(ctx context.Context, opportunityID int64) ([]*models.Application, error)
}

// NotificationStore is the notification store consumed by services.
type NotificationStore interface {
	Create(ctx context.Context, n *models.Notification) error
	ListByStudent(ctx context.Context, studentID int64) ([]*models.Notification, error)
	MarkAllRead(ctx context.Context, studentID int64) error
}
