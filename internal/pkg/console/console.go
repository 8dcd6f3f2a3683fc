package console

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/yigit/university/internal/app/models"
)

// Rule separates a label from its rows.
const Rule = "------------"

// Labels printed above each report.
const (
	LabelStudentsOfCourse  = "Nome degli studenti iscritti a %s"
	LabelCourseEnrollments = "Per ogni corso, nome e cognome degli studenti iscritti"
	LabelDegreeCounts      = "Numero di iscritti ad ogni corso di laurea"
	LabelRegistrations     = "Iscrizioni con data di registrazione"
)

// ReportCourse is the course whose students the query report lists.
const ReportCourse = "Programmazione I"

// Dump writes an empty line, label, the rule and then one line per row.
func Dump[T fmt.Stringer](w io.Writer, label string, rows []T) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw)
	fmt.Fprintln(bw, label)
	fmt.Fprintln(bw, Rule)
	for _, row := range rows {
		fmt.Fprintln(bw, row.String())
	}
	return bw.Flush()
}

// Reporter is the read side needed by the console reports.
type Reporter interface {
	StudentsEnrolledIn(ctx context.Context, courseName string) ([]*models.Student, error)
	CourseEnrollments(ctx context.Context) ([]models.CourseEnrollment, error)
	DegreeEnrollmentCounts(ctx context.Context) ([]models.DegreeEnrollmentCount, error)
	DegreeEnrollmentCountsSQL() (string, error)
	Enrollments(ctx context.Context) ([]*models.CourseStudent, error)
}

// WriteQueries runs the three reports in order and writes them to w, followed
// by the SQL of the degree count query.
func WriteQueries(ctx context.Context, w io.Writer, r Reporter) error {
	students, err := r.StudentsEnrolledIn(ctx, ReportCourse)
	if err != nil {
		return err
	}
	if err := Dump(w, fmt.Sprintf(LabelStudentsOfCourse, ReportCourse), students); err != nil {
		return err
	}

	enrollments, err := r.CourseEnrollments(ctx)
	if err != nil {
		return err
	}
	if err := Dump(w, LabelCourseEnrollments, enrollments); err != nil {
		return err
	}

	counts, err := r.DegreeEnrollmentCounts(ctx)
	if err != nil {
		return err
	}
	if err := Dump(w, LabelDegreeCounts, counts); err != nil {
		return err
	}

	sql, err := r.DegreeEnrollmentCountsSQL()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "\nSQL:\n%s\n", sql)
	return err
}

// WriteRegistrations writes every enrollment with its registration date.
func WriteRegistrations(ctx context.Context, w io.Writer, r Reporter) error {
	enrollments, err := r.Enrollments(ctx)
	if err != nil {
		return err
	}
	return Dump(w, LabelRegistrations, enrollments)
}
