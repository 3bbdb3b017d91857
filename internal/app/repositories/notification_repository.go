package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/deniz/careerhub/internal/app/models"
	"github.com/deniz/careerhub/internal/pkg/logger"
)

// NotificationRepository handles notification database operations. The log
// is append-only: rows are never deleted, and the read flag only flips
// false to true.
type NotificationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create appends a notification for a student
func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	sql, args, err := r.sb.Insert("notifications").
		Columns("student_id", "message").
		Values(n.StudentID, n.Message).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create notification SQL")
		return fmt.Errorf("failed to build create notification query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", n.StudentID).Msg("Error executing create notification query")
		return fmt.Errorf("error creating notification: %w", err)
	}

	return nil
}

// ListByStudent retrieves all notifications for a student, newest first
func (r *NotificationRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.Notification, error) {
	sql, args, err := r.sb.Select("id", "student_id", "message", "created_at", "read").
		From("notifications").
		Where(squirrel.Eq{"student_id": studentID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list notifications SQL")
		return nil, fmt.Errorf("failed to build list notifications query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list notifications query")
		return nil, fmt.Errorf("error querying notifications: %w", err)
	}
	defer rows.Close()

	notifications := []*models.Notification{}
	for rows.Next() {
		n := &models.Notification{}
		if err := rows.Scan(&n.ID, &n.StudentID, &n.Message, &n.CreatedAt, &n.Read); err != nil {
			logger.Error().Err(err).Msg("Error scanning notification row")
			return nil, fmt.Errorf("error scanning notification row: %w", err)
		}
		notifications = append(notifications, n)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating notification rows")
		return nil, fmt.Errorf("error iterating notification rows: %w", err)
	}

	return notifications, nil
}

// MarkAllRead flips the read flag for every notification of a student.
// Applies to the full set, not just the rows a feed page displays.
func (r *NotificationRepository) MarkAllRead(ctx context.Context, studentID int64) error {
	sql, args, err := r.sb.Update("notifications").
		Set("read", true).
		Where(squirrel.Eq{"student_id": studentID, "read": false}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building mark read SQL")
		return fmt.Errorf("failed to build mark read query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error executing mark read query")
		return fmt.Errorf("error marking notifications read: %w", err)
	}

	return nil
}
