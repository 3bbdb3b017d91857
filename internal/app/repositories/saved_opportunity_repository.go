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

// SavedOpportunityRepository handles saved-opportunity database operations
type SavedOpportunityRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewSavedOpportunityRepository creates a new SavedOpportunityRepository
func NewSavedOpportunityRepository(db *pgxpool.Pool) *SavedOpportunityRepository {
	return &SavedOpportunityRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// IsSaved checks whether a save record exists for the pair
func (r *SavedOpportunityRepository) IsSaved(ctx context.Context, studentID, opportunityID int64) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("saved_opportunities").
		Where(squirrel.Eq{"student_id": studentID, "opportunity_id": opportunityID}).
		Prefix("SELECT EXISTS (").Suffix(")").
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building saved exists SQL")
		return false, fmt.Errorf("failed to build saved existence query: %w", err)
	}

	var exists bool
	err = r.db.QueryRow(ctx, sql, args...).Scan(&exists)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		logger.Error().Err(err).Msg("Error checking saved existence")
		return false, fmt.Errorf("error checking saved existence: %w", err)
	}

	return exists, nil
}

// Create inserts a save record for the pair. The unique pair constraint
// turns a concurrent duplicate into ErrAlreadySaved.
func (r *SavedOpportunityRepository) Create(ctx context.Context, saved *models.SavedOpportunity) error {
	sql, args, err := r.sb.Insert("saved_opportunities").
		Columns("student_id", "opportunity_id").
		Values(saved.StudentID, saved.OpportunityID).
		Suffix("RETURNING id, saved_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create saved SQL")
		return fmt.Errorf("failed to build create saved query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&saved.ID, &saved.SavedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrAlreadySaved
		}
		logger.Error().Err(err).Msg("Error executing create saved query")
		return fmt.Errorf("error creating saved opportunity: %w", err)
	}

	return nil
}

// Delete removes the save record for the pair
func (r *SavedOpportunityRepository) Delete(ctx context.Context, studentID, opportunityID int64) error {
	sql, args, err := r.sb.Delete("saved_opportunities").
		Where(squirrel.Eq{"student_id": studentID, "opportunity_id": opportunityID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete saved SQL")
		return fmt.Errorf("failed to build delete saved query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing delete saved query")
		return fmt.Errorf("error deleting saved opportunity: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}

	return nil
}
