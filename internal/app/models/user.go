package models

import (
	"time"
)

// User defines the account model based on the 'users' table. The role tag
// lives on the account row itself: the role set is closed (student or
// lecturer) and immutable after registration, so it is a column rather than
// a separate role table.
type User struct {
	ID        int64     `db:"id"`
	Username  string    `db:"username"`
	Email     string    `db:"email"`
	Password  string    `db:"password"` // bcrypt hash, never rendered
	Role      RoleType  `db:"role"`
	CreatedAt time.Time `db:"created_at"`
}

// StudentProfile holds per-student mutable attributes based on the
// 'student_profiles' table. Skills and enrolled subjects are free text,
// comma-separated; the recommendation filter tokenizes them.
type StudentProfile struct {
	ID               int64  `db:"id"`
	UserID           int64  `db:"user_id"`
	Skills           string `db:"skills"`
	EnrolledSubjects string `db:"enrolled_subjects"`

	// Relation, populated when needed
	User *User
}
