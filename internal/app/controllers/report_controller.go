package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/university/internal/app/models/dto"
	"github.com/yigit/university/internal/app/services"
	"github.com/yigit/university/internal/middleware"
)

// ReportController serves the read-only enrollment reports
type ReportController struct {
	universityService services.UniversityService
}

// NewReportController creates a new ReportController
func NewReportController(universityService services.UniversityService) *ReportController {
	return &ReportController{
		universityService: universityService,
	}
}

// GetCourseStudents lists the students enrolled in the course named in the path
// GET /api/v1/courses/:name/students
func (c *ReportController) GetCourseStudents(ctx *gin.Context) {
	students, err := c.universityService.StudentsEnrolledIn(ctx, ctx.Param("name"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewStudentResponses(students)))
}

// GetCourseEnrollments lists every (course, student) pair
// GET /api/v1/enrollments
func (c *ReportController) GetCourseEnrollments(ctx *gin.Context) {
	enrollments, err := c.universityService.CourseEnrollments(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(enrollments))
}

// GetRegistrations lists every enrollment with its registration date
// GET /api/v1/enrollments/registrations
func (c *ReportController) GetRegistrations(ctx *gin.Context) {
	enrollments, err := c.universityService.Enrollments(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewRegistrationResponses(enrollments)))
}

// GetDegreeEnrollmentCounts returns the enrollment total of every degree
// GET /api/v1/degrees/enrollment-counts
func (c *ReportController) GetDegreeEnrollmentCounts(ctx *gin.Context) {
	counts, err := c.universityService.DegreeEnrollmentCounts(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(counts))
}
