package dto

import (
	"time"

	"github.com/yigit/university/internal/app/models"
)

// APIResponse is the envelope of every API response
type APIResponse struct {
	Success   bool         `json:"success"`
	Data      interface{}  `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

// NewSuccessResponse wraps data in a successful APIResponse
func NewSuccessResponse(data interface{}) APIResponse {
	return APIResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// StudentResponse is a student as returned by the API
type StudentResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// RegistrationResponse is an enrollment with its registration date. Date is
// empty while the date is unset.
type RegistrationResponse struct {
	CourseID  int64  `json:"courseId"`
	Course    string `json:"course"`
	StudentID int64  `json:"studentId"`
	Student   string `json:"student"`
	Date      string `json:"dateOfRegistration,omitempty"`
}

// NewStudentResponses converts students for the API
func NewStudentResponses(students []*models.Student) []StudentResponse {
	out := make([]StudentResponse, 0, len(students))
	for _, s := range students {
		out = append(out, StudentResponse{ID: s.ID, FirstName: s.FirstName, LastName: s.LastName})
	}
	return out
}

// NewRegistrationResponses converts enrollments for the API
func NewRegistrationResponses(enrollments []*models.CourseStudent) []RegistrationResponse {
	out := make([]RegistrationResponse, 0, len(enrollments))
	for _, cs := range enrollments {
		r := RegistrationResponse{CourseID: cs.CourseID, StudentID: cs.StudentID}
		if cs.Course != nil {
			r.Course = cs.Course.Name
		}
		if cs.Student != nil {
			r.Student = cs.Student.FullName()
		}
		if cs.IsRegistered() {
			r.Date = cs.DateOfRegistration.Format(models.DateLayout)
		}
		out = append(out, r)
	}
	return out
}
