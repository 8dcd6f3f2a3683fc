package models

import (
	"fmt"
	"time"
)

// CourseEnrollment is one (course, enrolled student) pair.
type CourseEnrollment struct {
	CourseName  string `json:"course"`
	StudentName string `json:"student"`
}

func (e CourseEnrollment) String() string {
	return fmt.Sprintf("{ Course = %s, Student = %s }", e.CourseName, e.StudentName)
}

// DegreeEnrollmentCount is the number of enrollments across a degree's courses.
// A student attending two courses of the degree is counted twice.
type DegreeEnrollmentCount struct {
	DegreeName       string `json:"name"`
	NumberOfStudents int64  `json:"numberOfStudents"`
}

func (d DegreeEnrollmentCount) String() string {
	return fmt.Sprintf("{ Name = %s, NumberOfStudents = %d }", d.DegreeName, d.NumberOfStudents)
}

// RegistrationUpdate sets the registration date of the enrollment identified
// by a student's last name and a course name.
type RegistrationUpdate struct {
	StudentLastName string    `json:"studentLastName" validate:"required"`
	CourseName      string    `json:"courseName" validate:"required"`
	Date            time.Time `json:"date" validate:"required"`
}
