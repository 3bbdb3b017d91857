package models

import (
	"time"
)

// Application is a student's formal submission against an opportunity,
// based on the 'applications' table. Immutable once created; at most one
// per (student, opportunity) pair.
type Application struct {
	ID            int64     `db:"id"`
	StudentID     int64     `db:"student_id"`
	OpportunityID int64     `db:"opportunity_id"`
	Message       string    `db:"message"`
	AppliedAt     time.Time `db:"applied_at"`

	// Relations, populated for the lecturer applicant list
	Student     *StudentProfile
	Opportunity *Opportunity
}
