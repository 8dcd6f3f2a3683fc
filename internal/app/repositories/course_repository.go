package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/yigit/university/internal/app/models"
	"github.com/yigit/university/internal/db"
	"github.com/yigit/university/internal/pkg/apperrors"
	"github.com/yigit/university/internal/pkg/dberrors"
	"github.com/yigit/university/internal/pkg/logger"
)

// CourseRepository handles course database operations
type CourseRepository struct {
	db db.Querier
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(q db.Querier) *CourseRepository {
	return &CourseRepository{db: q, sb: psql}
}

// Create inserts a course and sets its ID. A DegreeID that does not exist
// fails with apperrors.ErrConstraintViolation.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	sql, args, err := r.sb.Insert("courses").
		Columns("name", "degree_id").
		Values(course.Name, course.DegreeID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create course query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&course.ID); err != nil {
		logger.Error().Err(err).Str("course", course.Name).Msg("Error executing create course query")
		return dberrors.Classify(err, "error creating course")
	}

	return nil
}

// GetByName returns the course with the given name. When several courses share
// the name the one with the lowest ID is returned.
func (r *CourseRepository) GetByName(ctx context.Context, name string) (*models.Course, error) {
	sql, args, err := r.sb.Select("id", "name", "degree_id").
		From("courses").
		Where(squirrel.Eq{"name": name}).
		OrderBy("id ASC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get course by name query: %w", err)
	}

	course := &models.Course{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&course.ID, &course.Name, &course.DegreeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("course %q not found", name))
		}
		return nil, dberrors.Classify(err, "error getting course by name")
	}

	return course, nil
}

// Delete removes a course; its enrollments go with it (ON DELETE CASCADE)
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("courses").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete course query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return dberrors.Classify(err, "error deleting course")
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("course %d not found", id))
	}

	return nil
}
