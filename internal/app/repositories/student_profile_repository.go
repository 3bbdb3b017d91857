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

// StudentProfileRepository handles student profile database operations
type StudentProfileRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentProfileRepository creates a new StudentProfileRepository
func NewStudentProfileRepository(db *pgxpool.Pool) *StudentProfileRepository {
	return &StudentProfileRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetByUserID retrieves a student profile by the owning account ID
func (r *StudentProfileRepository) GetByUserID(ctx context.Context, userID int64) (*models.StudentProfile, error) {
	sql, args, err := r.sb.Select("id", "user_id", "skills", "enrolled_subjects").
		From("student_profiles").
		Where(squirrel.Eq{"user_id": userID}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get profile SQL")
		return nil, fmt.Errorf("failed to build get profile query: %w", err)
	}

	profile := &models.StudentProfile{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&profile.ID, &profile.UserID, &profile.Skills, &profile.EnrolledSubjects,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProfileNotFound
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error scanning profile row")
		return nil, fmt.Errorf("error getting student profile: %w", err)
	}

	return profile, nil
}

// GetOrCreate returns the profile for the given account, creating an empty
// one if it does not exist yet. Safe to call from both the registration
// flow and lazy student-scoped access; a concurrent create resolves to a
// re-read instead of an error.
func (r *StudentProfileRepository) GetOrCreate(ctx context.Context, userID int64) (*models.StudentProfile, error) {
	profile, err := r.GetByUserID(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, apperrors.ErrProfileNotFound) {
		return nil, err
	}

	sql, args, err := r.sb.Insert("student_profiles").
		Columns("user_id", "skills", "enrolled_subjects").
		Values(userID, "", "").
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create profile SQL")
		return nil, fmt.Errorf("failed to build create profile query: %w", err)
	}

	profile = &models.StudentProfile{UserID: userID}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&profile.ID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			// Lost the race to another request; the row exists now.
			return r.GetByUserID(ctx, userID)
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing create profile query")
		return nil, fmt.Errorf("error creating student profile: %w", err)
	}

	return profile, nil
}

// Update stores the mutable profile attributes (skills, enrolled subjects)
func (r *StudentProfileRepository) Update(ctx context.Context, profile *models.StudentProfile) error {
	sql, args, err := r.sb.Update("student_profiles").
		SetMap(map[string]interface{}{
			"skills":            profile.Skills,
			"enrolled_subjects": profile.EnrolledSubjects,
		}).
		Where(squirrel.Eq{"id": profile.ID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update profile SQL")
		return fmt.Errorf("failed to build update profile query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("profileID", profile.ID).Msg("Error executing update profile query")
		return fmt.Errorf("error updating student profile: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrProfileNotFound
	}

	return nil
}
