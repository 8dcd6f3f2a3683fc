package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/yigit/university/internal/app/models"
	"github.com/yigit/university/internal/db"
	"github.com/yigit/university/internal/pkg/apperrors"
	"github.com/yigit/university/internal/pkg/dberrors"
	"github.com/yigit/university/internal/pkg/logger"
)

// enrollmentKeyConstraint is the (course_id, student_id) primary key
const enrollmentKeyConstraint = "course_students_pkey"

// CourseStudentRepository handles enrollment rows
type CourseStudentRepository struct {
	db db.Querier
	sb squirrel.StatementBuilderType
}

// NewCourseStudentRepository creates a new CourseStudentRepository
func NewCourseStudentRepository(q db.Querier) *CourseStudentRepository {
	return &CourseStudentRepository{db: q, sb: psql}
}

// Create enrolls a student in a course. A zero DateOfRegistration leaves the
// column at its default so the date can be backfilled later.
func (r *CourseStudentRepository) Create(ctx context.Context, enrollment *models.CourseStudent) error {
	insert := r.sb.Insert("course_students")
	if enrollment.IsRegistered() {
		insert = insert.Columns("course_id", "student_id", "date_of_registration").
			Values(enrollment.CourseID, enrollment.StudentID, enrollment.DateOfRegistration)
	} else {
		insert = insert.Columns("course_id", "student_id").
			Values(enrollment.CourseID, enrollment.StudentID)
	}

	sql, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create enrollment query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsDuplicateConstraintError(err, enrollmentKeyConstraint) {
			return fmt.Errorf("%w: student %d is already enrolled in course %d",
				apperrors.ErrConstraintViolation, enrollment.StudentID, enrollment.CourseID)
		}
		logger.Error().Err(err).
			Int64("courseID", enrollment.CourseID).
			Int64("studentID", enrollment.StudentID).
			Msg("Error executing create enrollment query")
		return dberrors.Classify(err, "error creating enrollment")
	}

	return nil
}

// FindByNames returns the enrollment whose student has lastName and whose
// course is named courseName. No match is apperrors.ErrNotFound and more than
// one match is apperrors.ErrAmbiguousMatch.
func (r *CourseStudentRepository) FindByNames(ctx context.Context, lastName, courseName string) (*models.CourseStudent, error) {
	sql, args, err := r.sb.Select("cs.course_id", "cs.student_id", "cs.date_of_registration").
		From("course_students cs").
		Join("students s ON s.id = cs.student_id").
		Join("courses c ON c.id = cs.course_id").
		Where(squirrel.Eq{"s.last_name": lastName}).
		Where(squirrel.Eq{"c.name": courseName}).
		OrderBy("cs.course_id ASC", "cs.student_id ASC").
		Limit(2).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build find enrollment query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, dberrors.Classify(err, "error querying enrollment")
	}
	defer rows.Close()

	var matches []*models.CourseStudent
	for rows.Next() {
		enrollment := &models.CourseStudent{}
		if err := rows.Scan(&enrollment.CourseID, &enrollment.StudentID, &enrollment.DateOfRegistration); err != nil {
			return nil, fmt.Errorf("error scanning enrollment row: %w", err)
		}
		matches = append(matches, enrollment)
	}
	if err := rows.Err(); err != nil {
		return nil, dberrors.Classify(err, "error iterating enrollment rows")
	}

	switch len(matches) {
	case 0:
		return nil, apperrors.NewNotFoundError(
			fmt.Sprintf("no enrollment for student %q in course %q", lastName, courseName))
	case 1:
		return matches[0], nil
	default:
		return nil, apperrors.NewAmbiguousMatchError(
			fmt.Sprintf("several enrollments match student %q in course %q", lastName, courseName))
	}
}

// UpdateRegistrationDate sets the registration date of one enrollment
func (r *CourseStudentRepository) UpdateRegistrationDate(ctx context.Context, courseID, studentID int64, date time.Time) error {
	sql, args, err := r.sb.Update("course_students").
		Set("date_of_registration", date).
		Where(squirrel.Eq{"course_id": courseID}).
		Where(squirrel.Eq{"student_id": studentID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update registration date query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return dberrors.Classify(err, "error updating registration date")
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(
			fmt.Sprintf("enrollment (course %d, student %d) not found", courseID, studentID))
	}

	return nil
}

// GetAll returns every enrollment with its course and student, ordered by key
func (r *CourseStudentRepository) GetAll(ctx context.Context) ([]*models.CourseStudent, error) {
	sql, args, err := r.sb.Select(
		"cs.course_id", "cs.student_id", "cs.date_of_registration",
		"c.name", "s.first_name", "s.last_name",
	).
		From("course_students cs").
		Join("courses c ON c.id = cs.course_id").
		Join("students s ON s.id = cs.student_id").
		OrderBy("cs.course_id ASC", "cs.student_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get all enrollments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, dberrors.Classify(err, "error querying enrollments")
	}
	defer rows.Close()

	enrollments := []*models.CourseStudent{}
	for rows.Next() {
		enrollment := &models.CourseStudent{Course: &models.Course{}, Student: &models.Student{}}
		if err := rows.Scan(
			&enrollment.CourseID,
			&enrollment.StudentID,
			&enrollment.DateOfRegistration,
			&enrollment.Course.Name,
			&enrollment.Student.FirstName,
			&enrollment.Student.LastName,
		); err != nil {
			return nil, fmt.Errorf("error scanning enrollment row: %w", err)
		}
		enrollment.Course.ID = enrollment.CourseID
		enrollment.Student.ID = enrollment.StudentID
		enrollments = append(enrollments, enrollment)
	}

	if err := rows.Err(); err != nil {
		return nil, dberrors.Classify(err, "error iterating enrollment rows")
	}

	return enrollments, nil
}
