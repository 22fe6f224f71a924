package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/studentrecords/internal/app/controllers"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	collegeController *controllers.CollegeController,
	courseController *controllers.CourseController,
	studentController *controllers.StudentController,
	healthController *controllers.HealthController,
) {
	router.GET("/health", healthController.Check)

	// API version group
	v1 := router.Group("/api/v1")

	colleges := v1.Group("/colleges")
	{
		colleges.GET("", collegeController.GetColleges)
		colleges.GET("/all", collegeController.GetAllColleges)
		colleges.GET("/search", collegeController.SearchColleges)
		colleges.GET("/:id", collegeController.GetCollegeByID)
		colleges.POST("", collegeController.CreateCollege)
		colleges.PUT("/:id", collegeController.UpdateCollege)
		colleges.DELETE("/:id", collegeController.DeleteCollege)
	}

	courses := v1.Group("/courses")
	{
		courses.GET("", courseController.GetCourses)
		courses.GET("/all", courseController.GetAllCourses)
		courses.GET("/colleges", courseController.GetCollegeOptions)
		courses.GET("/search", courseController.SearchCourses)
		courses.GET("/:id", courseController.GetCourseByID)
		courses.POST("", courseController.CreateCourse)
		courses.PUT("/:id", courseController.UpdateCourse)
		courses.DELETE("/:id", courseController.DeleteCourse)
	}

	// Student add/edit accept multipart forms with an optional "student_photo" file
	students := v1.Group("/students")
	{
		students.GET("", studentController.GetStudents)
		students.GET("/options", studentController.GetOptions)
		students.GET("/search", studentController.SearchStudents)
		students.GET("/:id", studentController.GetStudentByID)
		students.POST("", studentController.CreateStudent)
		students.PUT("/:id", studentController.UpdateStudent)
		students.DELETE("/:id", studentController.DeleteStudent)
	}
}
