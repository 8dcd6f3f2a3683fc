package repositories

import (
	"github.com/Masterminds/squirrel"

	"github.com/yigit/university/internal/db"
)

// psql builds statements with postgres $n placeholders.
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Repositories holds all the repository instances bound to one Querier.
// Build it on a pool for reads and on a pgx.Tx for atomic writes.
type Repositories struct {
	DegreeRepository        *DegreeRepository
	CourseRepository        *CourseRepository
	StudentRepository       *StudentRepository
	CourseStudentRepository *CourseStudentRepository
	ReportRepository        *ReportRepository
}

// NewRepositories initializes all repositories
func NewRepositories(q db.Querier) *Repositories {
	return &Repositories{
		DegreeRepository:        NewDegreeRepository(q),
		CourseRepository:        NewCourseRepository(q),
		StudentRepository:       NewStudentRepository(q),
		CourseStudentRepository: NewCourseStudentRepository(q),
		ReportRepository:        NewReportRepository(q),
	}
}
