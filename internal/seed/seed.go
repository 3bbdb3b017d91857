package seed

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/deniz/careerhub/internal/app/models"
	appRepos "github.com/deniz/careerhub/internal/app/repositories"
	"github.com/deniz/careerhub/internal/pkg/apperrors"
	"github.com/deniz/careerhub/internal/pkg/auth"
)

// CreateDefaultData creates a demo lecturer, a demo student and a couple
// of sample postings on a fresh database. Existing accounts short-circuit
// the seeding, so reruns are harmless.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)
	profileRepo := appRepos.NewStudentProfileRepository(dbPool)
	opportunityRepo := appRepos.NewOpportunityRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data (demo accounts)...")

	exists, err := userRepo.UsernameExists(ctx, "demo_lecturer")
	if err != nil {
		return err
	}
	if exists {
		lgr.Debug().Msg("Demo accounts already present, skipping seed")
		return nil
	}

	hashed, err := auth.HashPassword("demo-pass-1")
	if err != nil {
		return err
	}

	var finalErr error

	lecturer := &appModels.User{
		Username: "demo_lecturer",
		Email:    "lecturer@careerhub.local",
		Password: hashed,
		Role:     appModels.RoleLecturer,
	}
	if err := userRepo.Create(ctx, lecturer); err != nil && !errors.Is(err, apperrors.ErrUsernameAlreadyExists) {
		lgr.Error().Err(err).Msg("Error creating demo lecturer")
		finalErr = errors.Join(finalErr, err)
	}

	student := &appModels.User{
		Username: "demo_student",
		Email:    "student@careerhub.local",
		Password: hashed,
		Role:     appModels.RoleStudent,
	}
	if err := userRepo.Create(ctx, student); err != nil && !errors.Is(err, apperrors.ErrUsernameAlreadyExists) {
		lgr.Error().Err(err).Msg("Error creating demo student")
		finalErr = errors.Join(finalErr, err)
	}

	if student.ID > 0 {
		profile, err := profileRepo.GetOrCreate(ctx, student.ID)
		if err != nil {
			lgr.Error().Err(err).Msg("Error creating demo student profile")
			finalErr = errors.Join(finalErr, err)
		} else {
			profile.Skills = "Python, SQL"
			profile.EnrolledSubjects = "Databases, Algorithms"
			if err := profileRepo.Update(ctx, profile); err != nil {
				lgr.Error().Err(err).Msg("Error filling demo student profile")
				finalErr = errors.Join(finalErr, err)
			}
		}
	}

	if lecturer.ID > 0 {
		deadline := time.Now().AddDate(0, 1, 0)
		samples := []*appModels.Opportunity{
			{
				Company:     "Acme Analytics",
				RoleTitle:   "Python Data Intern",
				Deadline:    deadline,
				Link:        "https://careers.acme.example/data-intern",
				Description: "Work with SQL pipelines and Python tooling on real datasets.",
			},
			{
				Company:     "Northwind Systems",
				RoleTitle:   "Backend Developer (Graduate)",
				Deadline:    deadline.AddDate(0, 0, 14),
				Link:        "https://jobs.northwind.example/backend-grad",
				Description: "Go services, PostgreSQL, and a lot of code review.",
			},
		}
		for _, opp := range samples {
			opp.PostedBy = &lecturer.ID
			if err := opportunityRepo.Create(ctx, opp); err != nil {
				lgr.Error().Err(err).Str("company", opp.Company).Msg("Error creating sample opportunity")
				finalErr = errors.Join(finalErr, err)
			}
		}
	}

	if finalErr == nil {
		lgr.Info().Msg("Default data check complete")
	}
	return finalErr
}
