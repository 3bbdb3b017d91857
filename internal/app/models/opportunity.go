package models

import (
	"time"
)

// Opportunity defines a lecturer-authored posting based on the
// 'opportunities' table. PostedBy is nullable: deleting the authoring
// account detaches the posting instead of removing it.
type Opportunity struct {
	ID          int64     `db:"id"`
	Company     string    `db:"company"`
	RoleTitle   string    `db:"role_title"`
	Deadline    time.Time `db:"deadline"`
	Link        string    `db:"link"`
	Description string    `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
	PostedBy    *int64    `db:"posted_by"`
}

// SavedOpportunity is a student's bookmark of an opportunity, based on the
// 'saved_opportunities' table. The (student, opportunity) pair is unique.
type SavedOpportunity struct {
	ID            int64     `db:"id"`
	StudentID     int64     `db:"student_id"`
	OpportunityID int64     `db:"opportunity_id"`
	SavedAt       time.Time `db:"saved_at"`
}
