package models

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-date form used for registration dates.
const DateLayout = "2006-01-02"

// CourseStudent is the enrollment of a student in a course. It is keyed by
// (CourseID, StudentID) and carries the registration date. A zero
// DateOfRegistration means the date has not been backfilled yet.
type CourseStudent struct {
	CourseID           int64     `json:"courseId" db:"course_id"`
	StudentID          int64     `json:"studentId" db:"student_id"`
	DateOfRegistration time.Time `json:"dateOfRegistration" db:"date_of_registration"`

	// Relations (populated when needed)
	Course  *Course  `json:"course,omitempty"`
	Student *Student `json:"student,omitempty"`
}

// IsRegistered reports whether the registration date has been set.
func (cs CourseStudent) IsRegistered() bool {
	return !cs.DateOfRegistration.IsZero()
}

func (cs CourseStudent) String() string {
	var course, student string
	if cs.Course != nil {
		course = cs.Course.Name
	}
	if cs.Student != nil {
		student = cs.Student.FullName()
	}
	date := "unset"
	if cs.IsRegistered() {
		date = cs.DateOfRegistration.Format(DateLayout)
	}
	return fmt.Sprintf("{ Course = %s, Student = %s, DateOfRegistration = %s }", course, student, date)
}
