package console

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/yigit/university/internal/app/models"
	"github.com/yigit/university/internal/pkg/apperrors"
)

func TestDump(t *testing.T) {
	var buf bytes.Buffer
	rows := []models.DegreeEnrollmentCount{
		{DegreeName: "Fisica", NumberOfStudents: 0},
		{DegreeName: "Informatica", NumberOfStudents: 3},
	}

	if err := Dump(&buf, LabelDegreeCounts, rows); err != nil {
		t.Fatal(err)
	}

	want := "\n" +
		"Numero di iscritti ad ogni corso di laurea\n" +
		"------------\n" +
		"{ Name = Fisica, NumberOfStudents = 0 }\n" +
		"{ Name = Informatica, NumberOfStudents = 3 }\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestDump_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := Dump(&buf, "vuoto", []*models.Student{}); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "\nvuoto\n------------\n" {
		t.Errorf("got %q", buf.String())
	}
}

type stubReporter struct {
	studentsErr error
}

func (s stubReporter) StudentsEnrolledIn(context.Context, string) ([]*models.Student, error) {
	if s.studentsErr != nil {
		return nil, s.studentsErr
	}
	return []*models.Student{
		{ID: 1, FirstName: "Mario", LastName: "Rossi"},
		{ID: 2, FirstName: "Marco", LastName: "Neri"},
	}, nil
}

func (stubReporter) CourseEnrollments(context.Context) ([]models.CourseEnrollment, error) {
	return []models.CourseEnrollment{{CourseName: "Programmazione I", StudentName: "Mario Rossi"}}, nil
}

func (stubReporter) DegreeEnrollmentCounts(context.Context) ([]models.DegreeEnrollmentCount, error) {
	return []models.DegreeEnrollmentCount{{DegreeName: "Informatica", NumberOfStudents: 1}}, nil
}

func (stubReporter) DegreeEnrollmentCountsSQL() (string, error) {
	return "SELECT 1", nil
}

func (stubReporter) Enrollments(context.Context) ([]*models.CourseStudent, error) {
	return []*models.CourseStudent{{
		CourseID:           1,
		StudentID:          1,
		DateOfRegistration: time.Date(2021, 1, 2, 0, 0, 0, 0, time.UTC),
		Course:             &models.Course{ID: 1, Name: "Programmazione I"},
		Student:            &models.Student{ID: 1, FirstName: "Mario", LastName: "Rossi"},
	}}, nil
}

func TestWriteQueries(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteQueries(context.Background(), &buf, stubReporter{}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	for _, want := range []string{
		"Nome degli studenti iscritti a Programmazione I\n------------\n{ Id = 1, FirstName = Mario, LastName = Rossi }\n{ Id = 2, FirstName = Marco, LastName = Neri }\n",
		"Per ogni corso, nome e cognome degli studenti iscritti\n------------\n{ Course = Programmazione I, Student = Mario Rossi }\n",
		"Numero di iscritti ad ogni corso di laurea\n------------\n{ Name = Informatica, NumberOfStudents = 1 }\n",
		"\nSQL:\nSELECT 1\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
	if strings.Index(out, LabelCourseEnrollments) > strings.Index(out, LabelDegreeCounts) {
		t.Error("reports out of order")
	}
}

func TestWriteQueries_StopsOnError(t *testing.T) {
	var buf bytes.Buffer
	err := WriteQueries(context.Background(), &buf, stubReporter{studentsErr: apperrors.NewNotFoundError("course not found")})
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("nothing should be written, got %q", buf.String())
	}
}

func TestWriteRegistrations(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteRegistrations(context.Background(), &buf, stubReporter{}); err != nil {
		t.Fatal(err)
	}
	want := "{ Course = Programmazione I, Student = Mario Rossi, DateOfRegistration = 2021-01-02 }\n"
	if !strings.HasSuffix(buf.String(), want) {
		t.Errorf("got %q", buf.String())
	}
}
