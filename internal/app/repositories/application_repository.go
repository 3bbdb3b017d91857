package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/deniz/careerhub/internal/app/models"
	"github.com/deniz/careerhub/internal/pkg/apperrors"
	"github.com/deniz/careerhub/internal/pkg/dberrors"
	"github.com/deniz/careerhub/internal/pkg/logger"
)

// ApplicationRepository handles application database operations
type ApplicationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository(db *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Exists checks whether the student already applied for the opportunity
func (r *ApplicationRepository) Exists(ctx context.Context, studentID, opportunityID int64) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("applications").
		Where(squirrel.Eq{"student_id": studentID, "opportunity_id": opportunityID}).
		Prefix("SELECT EXISTS (").Suffix(")").
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building application exists SQL")
		return false, fmt.Errorf("failed to build application existence query: %w", err)
	}

	var exists bool
	err = r.db.QueryRow(ctx, sql, args...).Scan(&exists)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		logger.Error().Err(err).Msg("Error checking application existence")
		return false, fmt.Errorf("error checking application existence: %w", err)
	}

	return exists, nil
}

// Create inserts an application. The unique pair constraint backstops the
// handler-level existence check: a concurrent duplicate insert comes back
// as ErrAlreadyApplied rather than a second record.
func (r *ApplicationRepository) Create(ctx context.Context, app *models.Application) error {
	sql, args, err := r.sb.Insert("applications").
		Columns("student_id", "opportunity_id", "message").
		Values(app.StudentID, app.OpportunityID, app.Message).
		Suffix("RETURNING id, applied_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create application SQL")
		return fmt.Errorf("failed to build create application query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&app.ID, &app.AppliedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrAlreadyApplied
		}
		logger.Error().Err(err).Msg("Error executing create application query")
		return fmt.Errorf("error creating application: %w", err)
	}

	return nil
}

// ListByOpportunity retrieves all applications for an opportunity joined
// with the applicant's profile and account, newest first.
func (r *ApplicationRepository) ListByOpportunity(ctx context.Context, opportunityID int64) ([]*models.Application, error) {
	sql, args, err := r.sb.Select(
		"a.id", "a.student_id", "a.opportunity_id", "a.message", "a.applied_at",
		"sp.id", "sp.user_id", "sp.skills", "sp.enrolled_subjects",
		"u.id", "u.username", "u.email", "u.role", "u.created_at",
	).
		From("applications a").
		Join("student_profiles sp ON sp.id = a.student_id").
		Join("users u ON u.id = sp.user_id").
		Where(squirrel.Eq{"a.opportunity_id": opportunityID}).
		OrderBy("a.applied_at DESC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list applications SQL")
		return nil, fmt.Errorf("failed to build list applications query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list applications query")
		return nil, fmt.Errorf("error querying applications: %w", err)
	}
	defer rows.Close()

	applications := []*models.Application{}
	for rows.Next() {
		app := &models.Application{
			Student: &models.StudentProfile{User: &models.User{}},
		}
		var role string
		err := rows.Scan(
			&app.ID, &app.StudentID, &app.OpportunityID, &app.Message, &app.AppliedAt,
			&app.Student.ID, &app.Student.UserID, &app.Student.Skills, &app.Student.EnrolledSubjects,
			&app.Student.User.ID, &app.Student.User.Username, &app.Student.User.Email,
			&role, &app.Student.User.CreatedAt,
		)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning application row")
			return nil, fmt.Errorf("error scanning application row: %w", err)
		}
		app.Student.User.Role = models.ParseRole(role)
		applications = append(applications, app)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating application rows")
		return nil, fmt.Errorf("error iterating application rows: %w", err)
	}

	return applications, nil
}
