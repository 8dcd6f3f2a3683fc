package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/yigit/university/internal/app/models"
	"github.com/yigit/university/internal/app/repositories"
	"github.com/yigit/university/internal/db"
	"github.com/yigit/university/internal/pkg/apperrors"
	"github.com/yigit/university/internal/seed"
)

// UniversityService defines the seed, update and query operations
type UniversityService interface {
	Seed(ctx context.Context) error
	SeedDataset(ctx context.Context, data seed.Dataset) error
	UpdateRegistrationDates(ctx context.Context, updates []models.RegistrationUpdate) error
	StudentsEnrolledIn(ctx context.Context, courseName string) ([]*models.Student, error)
	CourseEnrollments(ctx context.Context) ([]models.CourseEnrollment, error)
	DegreeEnrollmentCounts(ctx context.Context) ([]models.DegreeEnrollmentCount, error)
	DegreeEnrollmentCountsSQL() (string, error)
	Enrollments(ctx context.Context) ([]*models.CourseStudent, error)
	DeleteCourse(ctx context.Context, id int64) error
	DeleteStudent(ctx context.Context, id int64) error
}

// universityServiceImpl implements the UniversityService interface
type universityServiceImpl struct {
	db       db.Database
	repos    *repositories.Repositories
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewUniversityService creates a new university service over database.
// Reads run on database directly; writes open a transaction on it.
func NewUniversityService(database db.Database, lgr zerolog.Logger) UniversityService {
	return &universityServiceImpl{
		db:       database,
		repos:    repositories.NewRepositories(database),
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   lgr,
	}
}

// inTx runs fn with repositories bound to a single transaction
func (s *universityServiceImpl) inTx(ctx context.Context, fn func(repos *repositories.Repositories) error) error {
	return db.WithTransaction(ctx, s.db, func(ctx context.Context, tx pgx.Tx) error {
		return fn(repositories.NewRepositories(tx))
	})
}

// Seed inserts the canonical dataset atomically
func (s *universityServiceImpl) Seed(ctx context.Context) error {
	return s.SeedDataset(ctx, seed.Canonical())
}

// SeedDataset inserts data atomically: either every row commits or none does
func (s *universityServiceImpl) SeedDataset(ctx context.Context, data seed.Dataset) error {
	s.logger.Info().Msg("Seeding university data...")
	err := s.inTx(ctx, func(repos *repositories.Repositories) error {
		return seed.Insert(ctx, repos, data, s.logger)
	})
	if err != nil {
		return fmt.Errorf("seed failed: %w", err)
	}
	return nil
}

// validateUpdate checks a registration update before it reaches the database
func (s *universityServiceImpl) validateUpdate(i int, update models.RegistrationUpdate) error {
	if err := s.validate.Struct(update); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			fields := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				fields = append(fields, fe.Field())
			}
			return apperrors.NewValidationError(
				fmt.Sprintf("update %d: missing %s", i, strings.Join(fields, ", ")))
		}
		return fmt.Errorf("%w: update %d: %v", apperrors.ErrValidationFailed, i, err)
	}
	if update.Date.IsZero() {
		return apperrors.NewValidationError(fmt.Sprintf("update %d: missing Date", i))
	}
	return nil
}

// UpdateRegistrationDates sets the registration date of each enrollment
// identified by (student last name, course name). Every update must match
// exactly one enrollment; otherwise nothing is committed.
func (s *universityServiceImpl) UpdateRegistrationDates(ctx context.Context, updates []models.RegistrationUpdate) error {
	for i, update := range updates {
		if err := s.validateUpdate(i, update); err != nil {
			return err
		}
	}

	err := s.inTx(ctx, func(repos *repositories.Repositories) error {
		for _, update := range updates {
			enrollment, err := repos.CourseStudentRepository.FindByNames(ctx, update.StudentLastName, update.CourseName)
			if err != nil {
				return err
			}
			if err := repos.CourseStudentRepository.UpdateRegistrationDate(ctx,
				enrollment.CourseID, enrollment.StudentID, update.Date); err != nil {
				return err
			}
			s.logger.Debug().
				Str("student", update.StudentLastName).
				Str("course", update.CourseName).
				Time("date", update.Date).
				Msg("Registration date set")
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("update registration dates failed: %w", err)
	}

	s.logger.Info().Int("updates", len(updates)).Msg("Registration dates updated")
	return nil
}

// StudentsEnrolledIn returns the students of the named course. An unknown
// course name, including "", is apperrors.ErrNotFound rather than an empty list.
func (s *universityServiceImpl) StudentsEnrolledIn(ctx context.Context, courseName string) ([]*models.Student, error) {
	course, err := s.repos.CourseRepository.GetByName(ctx, courseName)
	if err != nil {
		return nil, err
	}

	return s.repos.StudentRepository.GetByCourseID(ctx, course.ID)
}

// CourseEnrollments returns one row per (course, enrolled student)
func (s *universityServiceImpl) CourseEnrollments(ctx context.Context) ([]models.CourseEnrollment, error) {
	return s.repos.ReportRepository.CourseEnrollments(ctx)
}

// DegreeEnrollmentCounts returns the enrollment total of every degree, by name
func (s *universityServiceImpl) DegreeEnrollmentCounts(ctx context.Context) ([]models.DegreeEnrollmentCount, error) {
	return s.repos.ReportRepository.DegreeEnrollmentCounts(ctx)
}

// DegreeEnrollmentCountsSQL returns the SQL behind DegreeEnrollmentCounts
func (s *universityServiceImpl) DegreeEnrollmentCountsSQL() (string, error) {
	return s.repos.ReportRepository.DegreeEnrollmentCountsSQL()
}

// Enrollments returns every enrollment with its registration date
func (s *universityServiceImpl) Enrollments(ctx context.Context) ([]*models.CourseStudent, error) {
	return s.repos.CourseStudentRepository.GetAll(ctx)
}

// DeleteCourse deletes a course together with its enrollments
func (s *universityServiceImpl) DeleteCourse(ctx context.Context, id int64) error {
	return s.repos.CourseRepository.Delete(ctx, id)
}

// DeleteStudent deletes a student together with their enrollments
func (s *universityServiceImpl) DeleteStudent(ctx context.Context, id int64) error {
	return s.repos.StudentRepository.Delete(ctx, id)
}
