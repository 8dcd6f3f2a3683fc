package seed

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/rs/zerolog"

	appRepos "github.com/yigit/university/internal/app/repositories"
	"github.com/yigit/university/internal/pkg/apperrors"
)

var (
	insertDegree     = regexp.QuoteMeta("INSERT INTO degrees (name) VALUES ($1) RETURNING id")
	insertCourse     = regexp.QuoteMeta("INSERT INTO courses (name,degree_id) VALUES ($1,$2) RETURNING id")
	insertStudent    = regexp.QuoteMeta("INSERT INTO students (first_name,last_name) VALUES ($1,$2) RETURNING id")
	insertEnrollment = regexp.QuoteMeta("INSERT INTO course_students (course_id,student_id) VALUES ($1,$2)")
)

func expectID(mock pgxmock.PgxPoolIface, sql string, id int64, args ...any) {
	mock.ExpectQuery(sql).WithArgs(args...).WillReturnRows(mock.NewRows([]string{"id"}).AddRow(id))
}

func expectEnrollment(mock pgxmock.PgxPoolIface, courseID, studentID int64) {
	mock.ExpectExec(insertEnrollment).WithArgs(courseID, studentID).WillReturnResult(pgxmock.NewResult("INSERT", 1))
}

func TestInsert_Canonical(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	defer mock.Close()

	expectID(mock, insertDegree, 1, "Informatica")
	expectID(mock, insertDegree, 2, "Fisica")
	expectID(mock, insertCourse, 1, "Programmazione I", pgxmock.AnyArg())
	expectID(mock, insertCourse, 2, "Programmazione II", pgxmock.AnyArg())
	expectID(mock, insertCourse, 3, "Fisica Quantistica", pgxmock.AnyArg())
	expectID(mock, insertStudent, 1, "Mario", "Rossi")
	expectEnrollment(mock, 1, 1)
	expectEnrollment(mock, 2, 1)
	expectID(mock, insertStudent, 2, "Marco", "Neri")
	expectEnrollment(mock, 1, 2)

	if err := Insert(context.Background(), appRepos.NewRepositories(mock), Canonical(), zerolog.Nop()); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestInsert_DanglingDegree(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	defer mock.Close()

	expectID(mock, insertDegree, 1, "Informatica")

	data := Dataset{
		Degrees: []string{"Informatica"},
		Courses: []CourseSeed{{Name: "Meccanica", Degree: "Ingegneria"}},
	}
	err = Insert(context.Background(), appRepos.NewRepositories(mock), data, zerolog.Nop())
	if !errors.Is(err, apperrors.ErrConstraintViolation) {
		t.Fatalf("expected ErrConstraintViolation, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestCanonical_Shape(t *testing.T) {
	data := Canonical()
	pairs := 0
	for _, s := range data.Students {
		pairs += len(s.Courses)
	}
	if len(data.Degrees) != 2 || len(data.Courses) != 3 || len(data.Students) != 2 || pairs != 3 {
		t.Fatalf("unexpected canonical dataset %+v", data)
	}

	updates := CanonicalRegistrations()
	if len(updates) != 3 {
		t.Fatalf("got %d registrations", len(updates))
	}
	if got := updates[1].Date.Format("2006-01-02"); got != "2021-01-03" {
		t.Errorf("Rossi/Programmazione II date = %s", got)
	}
}
