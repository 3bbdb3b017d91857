package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/deniz/careerhub/internal/app/models"
	"github.com/deniz/careerhub/internal/pkg/apperrors"
	"github.com/deniz/careerhub/internal/pkg/logger"
)

const opportunityColumns = "id, company, role_title, deadline, link, description, created_at, posted_by"

// OpportunityRepository handles opportunity database operations
type OpportunityRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewOpportunityRepository creates a new OpportunityRepository
func NewOpportunityRepository(db *pgxpool.Pool) *OpportunityRepository {
	return &OpportunityRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanOpportunity(row pgx.Row) (*models.Opportunity, error) {
	opp := &models.Opportunity{}
	err := row.Scan(
		&opp.ID, &opp.Company, &opp.RoleTitle, &opp.Deadline,
		&opp.Link, &opp.Description, &opp.CreatedAt, &opp.PostedBy,
	)
	if err != nil {
		return nil, err
	}
	return opp, nil
}

// Create inserts a new opportunity and fills in its generated ID.
func (r *OpportunityRepository) Create(ctx context.Context, opp *models.Opportunity) error {
	sql, args, err := r.sb.Insert("opportunities").
		Columns("company", "role_title", "deadline", "link", "description", "posted_by").
		Values(opp.Company, opp.RoleTitle, opp.Deadline, opp.Link, opp.Description, opp.PostedBy).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create opportunity SQL")
		return fmt.Errorf("failed to build create opportunity query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&opp.ID, &opp.CreatedAt)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing create opportunity query")
		return fmt.Errorf("error creating opportunity: %w", err)
	}

	return nil
}

// GetByID retrieves an opportunity by ID
func (r *OpportunityRepository) GetByID(ctx context.Context, id int64) (*models.Opportunity, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetOwned retrieves an opportunity only if it is authored by the given
// lecturer. Other lecturers' postings read as not found.
func (r *OpportunityRepository) GetOwned(ctx context.Context, id, lecturerID int64) (*models.Opportunity, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id, "posted_by": lecturerID})
}

func (r *OpportunityRepository) getOne(ctx context.Context, pred squirrel.Eq) (*models.Opportunity, error) {
	sql, args, err := r.sb.Select(opportunityColumns).
		From("opportunities").
		Where(pred).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get opportunity SQL")
		return nil, fmt.Errorf("failed to build get opportunity query: %w", err)
	}

	opp, err := scanOpportunity(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrOpportunityNotFound
		}
		logger.Error().Err(err).Msg("Error scanning opportunity row")
		return nil, fmt.Errorf("error getting opportunity: %w", err)
	}

	return opp, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike neutralizes the LIKE metacharacters in user input so the
// query text matches literally. Backslash is the default ESCAPE character.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// Search retrieves opportunities matching a free-text query, ordered by the
// given sort mode and capped at limit rows. An empty query matches all.
func (r *OpportunityRepository) Search(ctx context.Context, query string, sort models.OpportunitySort, limit uint64) ([]*models.Opportunity, error) {
	builder := r.sb.Select(opportunityColumns).From("opportunities")

	if query != "" {
		pattern := "%" + escapeLike(query) + "%"
		builder = builder.Where(squirrel.Or{
			squirrel.ILike{"company": pattern},
			squirrel.ILike{"role_title": pattern},
			squirrel.ILike{"description": pattern},
		})
	}

	switch sort {
	case models.SortNewest:
		builder = builder.OrderBy("created_at DESC")
	default:
		builder = builder.OrderBy("deadline ASC")
	}

	sql, args, err := builder.Limit(limit).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building search opportunities SQL")
		return nil, fmt.Errorf("failed to build search opportunities query: %w", err)
	}

	return r.queryMany(ctx, sql, args)
}

// ListByLecturer retrieves all opportunities authored by a lecturer,
// newest first.
func (r *OpportunityRepository) ListByLecturer(ctx context.Context, lecturerID int64) ([]*models.Opportunity, error) {
	sql, args, err := r.sb.Select(opportunityColumns).
		From("opportunities").
		Where(squirrel.Eq{"posted_by": lecturerID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list by lecturer SQL")
		return nil, fmt.Errorf("failed to build list by lecturer query: %w", err)
	}

	return r.queryMany(ctx, sql, args)
}

func (r *OpportunityRepository) queryMany(ctx context.Context, sql string, args []interface{}) ([]*models.Opportunity, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing opportunities query")
		return nil, fmt.Errorf("error querying opportunities: %w", err)
	}
	defer rows.Close()

	opportunities := []*models.Opportunity{}
	for rows.Next() {
		opp, err := scanOpportunity(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning opportunity row")
			return nil, fmt.Errorf("error scanning opportunity row: %w", err)
		}
		opportunities = append(opportunities, opp)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating opportunity rows")
		return nil, fmt.Errorf("error iterating opportunity rows: %w", err)
	}

	return opportunities, nil
}

// UpdateOwned updates an opportunity authored by the given lecturer.
// Returns not found when the posting does not exist or is not theirs.
func (r *OpportunityRepository) UpdateOwned(ctx context.Context, opp *models.Opportunity, lecturerID int64) error {
	sql, args, err := r.sb.Update("opportunities").
		SetMap(map[string]interface{}{
			"company":     opp.Company,
			"role_title":  opp.RoleTitle,
			"deadline":    opp.Deadline,
			"link":        opp.Link,
			"description": opp.Description,
		}).
		Where(squirrel.Eq{"id": opp.ID, "posted_by": lecturerID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update opportunity SQL")
		return fmt.Errorf("failed to build update opportunity query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("opportunityID", opp.ID).Msg("Error executing update opportunity query")
		return fmt.Errorf("error updating opportunity: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrOpportunityNotFound
	}

	return nil
}

// DeleteOwned deletes an opportunity authored by the given lecturer.
func (r *OpportunityRepository) DeleteOwned(ctx context.Context, id, lecturerID int64) error {
	sql, args, err := r.sb.Delete("opportunities").
		Where(squirrel.Eq{"id": id, "posted_by": lecturerID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete opportunity SQL")
		return fmt.Errorf("failed to build delete opportunity query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("opportunityID", id).Msg("Error executing delete opportunity query")
		return fmt.Errorf("error deleting opportunity: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrOpportunityNotFound
	}

	return nil
}
