package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/university/internal/app/controllers"
)

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, reportController *controllers.ReportController) {
	// API version group
	v1 := router.Group("/api/v1")

	courses := v1.Group("/courses")
	{
		courses.GET("/:name/students", reportController.GetCourseStudents)
	}

	enrollments := v1.Group("/enrollments")
	{
		enrollments.GET("", reportController.GetCourseEnrollments)
		enrollments.GET("/registrations", reportController.GetRegistrations)
	}

	degrees := v1.Group("/degrees")
	{
		degrees.GET("/enrollment-counts", reportController.GetDegreeEnrollmentCounts)
	}

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})
}
