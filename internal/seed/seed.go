package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/yigit/university/internal/app/models"
	appRepos "github.com/yigit/university/internal/app/repositories"
	"github.com/yigit/university/internal/pkg/apperrors"
)

// CourseSeed is a course and the name of the degree it belongs to. An empty
// Degree leaves the course without one.
type CourseSeed struct {
	Name   string
	Degree string
}

// StudentSeed is a student and the names of the courses they enroll in.
type StudentSeed struct {
	FirstName string
	LastName  string
	Courses   []string
}

// Dataset describes a complete seed. Courses reference degrees and students
// reference courses by name; every referenced name must be part of the dataset.
type Dataset struct {
	Degrees  []string
	Courses  []CourseSeed
	Students []StudentSeed
}

// Canonical returns the sample university: two degrees, three courses and two
// students holding three enrollments.
func Canonical() Dataset {
	return Dataset{
		Degrees: []string{"Informatica", "Fisica"},
		Courses: []CourseSeed{
			{Name: "Programmazione I", Degree: "Informatica"},
			{Name: "Programmazione II", Degree: "Informatica"},
			{Name: "Fisica Quantistica", Degree: "Fisica"},
		},
		Students: []StudentSeed{
			{FirstName: "Mario", LastName: "Rossi", Courses: []string{"Programmazione I", "Programmazione II"}},
			{FirstName: "Marco", LastName: "Neri", Courses: []string{"Programmazione I"}},
		},
	}
}

// CanonicalRegistrations returns the registration-date backfill for the
// canonical dataset.
func CanonicalRegistrations() []models.RegistrationUpdate {
	date := func(day int) time.Time { return time.Date(2021, time.January, day, 0, 0, 0, 0, time.UTC) }
	return []models.RegistrationUpdate{
		{StudentLastName: "Rossi", CourseName: "Programmazione I", Date: date(2)},
		{StudentLastName: "Rossi", CourseName: "Programmazione II", Date: date(3)},
		{StudentLastName: "Neri", CourseName: "Programmazione I", Date: date(2)},
	}
}

// Insert writes the dataset through repos. Callers wanting atomicity build
// repos on a transaction. A dangling degree or course reference fails with
// apperrors.ErrConstraintViolation before anything referencing it is written.
func Insert(ctx context.Context, repos *appRepos.Repositories, data Dataset, lgr zerolog.Logger) error {
	degreeIDs := make(map[string]int64, len(data.Degrees))
	for _, name := range data.Degrees {
		degree := &models.Degree{Name: name}
		if err := repos.DegreeRepository.Create(ctx, degree); err != nil {
			return err
		}
		degreeIDs[name] = degree.ID
	}

	courseIDs := make(map[string]int64, len(data.Courses))
	for _, c := range data.Courses {
		course := &models.Course{Name: c.Name}
		if c.Degree != "" {
			id, ok := degreeIDs[c.Degree]
			if !ok {
				return fmt.Errorf("%w: course %q references degree %q which is not part of the seed",
					apperrors.ErrConstraintViolation, c.Name, c.Degree)
			}
			course.DegreeID = &id
		}
		if err := repos.CourseRepository.Create(ctx, course); err != nil {
			return err
		}
		courseIDs[c.Name] = course.ID
	}

	enrollments := 0
	for _, s := range data.Students {
		student := &models.Student{FirstName: s.FirstName, LastName: s.LastName}
		if err := repos.StudentRepository.Create(ctx, student); err != nil {
			return err
		}
		for _, courseName := range s.Courses {
			courseID, ok := courseIDs[courseName]
			if !ok {
				return fmt.Errorf("%w: student %q references course %q which is not part of the seed",
					apperrors.ErrConstraintViolation, student.FullName(), courseName)
			}
			enrollment := &models.CourseStudent{CourseID: courseID, StudentID: student.ID}
			if err := repos.CourseStudentRepository.Create(ctx, enrollment); err != nil {
				return err
			}
			enrollments++
		}
	}

	lgr.Info().
		Int("degrees", len(degreeIDs)).
		Int("courses", len(courseIDs)).
		Int("students", len(data.Students)).
		Int("enrollments", enrollments).
		Msg("Seed data inserted")
	return nil
}
