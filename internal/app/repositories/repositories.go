package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	Users         *UserRepository
	Profiles      *StudentProfileRepository
	Opportunities *OpportunityRepository
	Saves         *SavedOpportunityRepository
	Applications  *ApplicationRepository
	Notifications *NotificationRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		Users:         NewUserRepository(db),
		Profiles:      NewStudentProfileRepository(db),
		Opportunities: NewOpportunityRepository(db),
		Saves:         NewSavedOpportunityRepository(db),
		Applications:  NewApplicationRepository(db),
		Notifications: NewNotificationRepository(db),
	}
}
