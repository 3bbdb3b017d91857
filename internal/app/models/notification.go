package models

import (
	"time"
)

// Notification is an append-only per-student message based on the
// 'notifications' table. The read flag only ever transitions false to true.
type Notification struct {
	ID        int64     `db:"id"`
	StudentID int64     `db:"student_id"`
	Message   string    `db:"message"`
	CreatedAt time.Time `db:"created_at"`
	Read      bool      `db:"read"`
}
