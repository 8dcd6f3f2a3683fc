package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/yigit/university/internal/app/models"
	"github.com/yigit/university/internal/db"
	"github.com/yigit/university/internal/pkg/dberrors"
)

// ReportRepository runs the read-only aggregate queries. Each report is a
// single statement; nothing is cached.
type ReportRepository struct {
	db db.Querier
	sb squirrel.StatementBuilderType
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(q db.Querier) *ReportRepository {
	return &ReportRepository{db: q, sb: psql}
}

func (r *ReportRepository) courseEnrollmentsQuery() squirrel.SelectBuilder {
	return r.sb.Select("c.name", "s.first_name || ' ' || s.last_name AS student_name").
		From("courses c").
		Join("course_students cs ON cs.course_id = c.id").
		Join("students s ON s.id = cs.student_id").
		OrderBy("c.id ASC", "s.id ASC")
}

// degreeEnrollmentCountsQuery counts join rows per degree, which is the sum of
// the per-course enrollment counts. LEFT JOINs keep degrees without courses
// or students at zero.
func (r *ReportRepository) degreeEnrollmentCountsQuery() squirrel.SelectBuilder {
	return r.sb.Select("d.name", "COUNT(cs.student_id) AS number_of_students").
		From("degrees d").
		LeftJoin("courses c ON c.degree_id = d.id").
		LeftJoin("course_students cs ON cs.course_id = c.id").
		GroupBy("d.id", "d.name").
		OrderBy("d.name ASC", "d.id ASC")
}

// CourseEnrollments returns one row per (course, enrolled student) pair
func (r *ReportRepository) CourseEnrollments(ctx context.Context) ([]models.CourseEnrollment, error) {
	sql, args, err := r.courseEnrollmentsQuery().ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build course enrollments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, dberrors.Classify(err, "error querying course enrollments")
	}
	defer rows.Close()

	enrollments := []models.CourseEnrollment{}
	for rows.Next() {
		var e models.CourseEnrollment
		if err := rows.Scan(&e.CourseName, &e.StudentName); err != nil {
			return nil, fmt.Errorf("error scanning course enrollment row: %w", err)
		}
		enrollments = append(enrollments, e)
	}

	if err := rows.Err(); err != nil {
		return nil, dberrors.Classify(err, "error iterating course enrollment rows")
	}

	return enrollments, nil
}

// DegreeEnrollmentCounts returns every degree, alphabetically, with its
// enrollment total
func (r *ReportRepository) DegreeEnrollmentCounts(ctx context.Context) ([]models.DegreeEnrollmentCount, error) {
	sql, args, err := r.degreeEnrollmentCountsQuery().ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build degree enrollment counts query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, dberrors.Classify(err, "error querying degree enrollment counts")
	}
	defer rows.Close()

	counts := []models.DegreeEnrollmentCount{}
	for rows.Next() {
		var c models.DegreeEnrollmentCount
		if err := rows.Scan(&c.DegreeName, &c.NumberOfStudents); err != nil {
			return nil, fmt.Errorf("error scanning degree enrollment count row: %w", err)
		}
		counts = append(counts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, dberrors.Classify(err, "error iterating degree enrollment count rows")
	}

	return counts, nil
}

// DegreeEnrollmentCountsSQL returns the SQL text DegreeEnrollmentCounts executes.
func (r *ReportRepository) DegreeEnrollmentCountsSQL() (string, error) {
	sql, _, err := r.degreeEnrollmentCountsQuery().ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to build degree enrollment counts query: %w", err)
	}
	return sql, nil
}
