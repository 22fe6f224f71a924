package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/studentrecords/internal/app/models/dto"
	"github.com/yigit/studentrecords/internal/app/services"
	"github.com/yigit/studentrecords/internal/middleware"
	"github.com/yigit/studentrecords/internal/pkg/helpers"
)

// CourseController handles course-related operations
type CourseController struct {
	courseService services.CourseService
	pageSize      int
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService services.CourseService, pageSize int) *CourseController {
	return &CourseController{
		courseService: courseService,
		pageSize:      pageSize,
	}
}

// GetCourses lists courses with their college page by page
// @Summary List courses
// @Tags courses
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=[]models.CourseWithCollege}
// @Router /courses [get]
func (c *CourseController) GetCourses(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx, c.pageSize)

	courses, pagination, err := c.courseService.ListCourses(ctx, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewListResponse(courses, pagination))
}

// GetAllCourses lists every course with its college ordered by name
// @Summary List all courses
// @Tags courses
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.CourseWithCollege}
// @Router /courses/all [get]
func (c *CourseController) GetAllCourses(ctx *gin.Context) {
	courses, err := c.courseService.ListAllCourses(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewListResponse(courses, nil))
}

// GetCollegeOptions lists the colleges a course can belong to
// @Summary College options for courses
// @Tags courses
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.CollegeOption}
// @Router /courses/colleges [get]
func (c *CourseController) GetCollegeOptions(ctx *gin.Context) {
	options, err := c.courseService.ListCollegeOptions(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewListResponse(options, nil))
}

// SearchCourses searches courses by name, code or college code. An empty query lists courses instead.
// @Summary Search courses
// @Tags courses
// @Produce json
// @Param query query string false "Search text"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=[]models.CourseWithCollege}
// @Router /courses/search [get]
func (c *CourseController) SearchCourses(ctx *gin.Context) {
	query := searchQuery(ctx)
	if query == "" {
		c.GetCourses(ctx)
		return
	}

	page, size := helpers.ParsePaginationParams(ctx, c.pageSize)
	courses, pagination, err := c.courseService.SearchCourses(ctx, query, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if pagination.TotalItems == 0 {
		resp := dto.NewInfoResponse("No results found.", courses)
		resp.Pagination = pagination
		ctx.JSON(http.StatusOK, resp)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewListResponse(courses, pagination))
}

// GetCourseByID retrieves a course with its college
// @Summary Get course
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=models.CourseWithCollege}
// @Failure 404 {object} dto.APIResponse "Course not found."
// @Router /courses/{id} [get]
func (c *CourseController) GetCourseByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "course")
	if !ok {
		return
	}

	course, err := c.courseService.GetCourse(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("", course))
}

// CreateCourse adds a course
// @Summary Add course
// @Tags courses
// @Accept x-www-form-urlencoded,json
// @Produce json
// @Param course_name formData string true "Course name"
// @Param course_code formData string true "Course code"
// @Param college formData int true "College ID"
// @Success 201 {object} dto.APIResponse{data=models.Course} "Course added."
// @Failure 400 {object} dto.APIResponse "All fields are required."
// @Failure 409 {object} dto.APIResponse "Course with the same name or code already exists for this college."
// @Router /courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req dto.CourseRequest
	if !middleware.BindRequest(ctx, &req) {
		return
	}

	course, err := c.courseService.AddCourse(ctx, req.ToModel(0))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse("Course added.", course))
}

// UpdateCourse edits a course
// @Summary Edit course
// @Tags courses
// @Accept x-www-form-urlencoded,json
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=models.Course} "Course updated."
// @Failure 404 {object} dto.APIResponse "Course not found."
// @Router /courses/{id} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "course")
	if !ok {
		return
	}

	var req dto.CourseRequest
	if !middleware.BindRequest(ctx, &req) {
		return
	}

	course, err := c.courseService.EditCourse(ctx, req.ToModel(id))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Course updated.", course))
}

// DeleteCourse deletes a course, keeping its students
// @Summary Delete course
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse "Course deleted. Students in this course will not be deleted."
// @Failure 404 {object} dto.APIResponse "Course not found."
// @Router /courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "course")
	if !ok {
		return
	}

	if err := c.courseService.DeleteCourse(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Course deleted. Students in this course will not be deleted.", nil))
}
