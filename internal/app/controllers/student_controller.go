package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/studentrecords/internal/app/models/dto"
	"github.com/yigit/studentrecords/internal/app/services"
	"github.com/yigit/studentrecords/internal/middleware"
	"github.com/yigit/studentrecords/internal/pkg/apperrors"
	"github.com/yigit/studentrecords/internal/pkg/filestorage"
	"github.com/yigit/studentrecords/internal/pkg/helpers"
	"github.com/yigit/studentrecords/internal/pkg/logger"
)

// PhotoField is the multipart field carrying the student photo
const PhotoField = "student_photo"

// StudentController handles student-related operations
type StudentController struct {
	studentService services.StudentService
	pageSize       int
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService services.StudentService, pageSize int) *StudentController {
	return &StudentController{
		studentService: studentService,
		pageSize:       pageSize,
	}
}

// GetStudents lists students with their course and college page by page
// @Summary List students
// @Tags students
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=[]models.StudentListItem}
// @Router /students [get]
func (c *StudentController) GetStudents(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx, c.pageSize)

	students, pagination, err := c.studentService.ListStudents(ctx, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewListResponse(students, pagination))
}

// GetOptions lists the courses and colleges for the student form
// @Summary Student form options
// @Tags students
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.StudentOptions}
// @Router /students/options [get]
func (c *StudentController) GetOptions(ctx *gin.Context) {
	options, err := c.studentService.GetOptions(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("", options))
}

// SearchStudents searches students across their own, course and college fields.
// An empty query lists students instead.
// @Summary Search students
// @Tags students
// @Produce json
// @Param query query string false "Search text"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=[]models.StudentListItem}
// @Router /students/search [get]
func (c *StudentController) SearchStudents(ctx *gin.Context) {
	query := searchQuery(ctx)
	if query == "" {
		c.GetStudents(ctx)
		return
	}

	page, size := helpers.ParsePaginationParams(ctx, c.pageSize)
	students, pagination, err := c.studentService.SearchStudents(ctx, query, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if pagination.TotalItems == 0 {
		resp := dto.NewInfoResponse("No results found.", students)
		resp.Pagination = pagination
		ctx.JSON(http.StatusOK, resp)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewListResponse(students, pagination))
}

// GetStudentByID retrieves the editable fields of a student
// @Summary Get student
// @Tags students
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=models.Student}
// @Failure 404 {object} dto.APIResponse "Student not found."
// @Router /students/{id} [get]
func (c *StudentController) GetStudentByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "student")
	if !ok {
		return
	}

	student, err := c.studentService.GetStudent(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("", student))
}

// CreateStudent adds a student with an optional photo
// @Summary Add student
// @Tags students
// @Accept multipart/form-data
// @Produce json
// @Param student_id formData string true "Student ID"
// @Param firstName formData string true "First name"
// @Param lastName formData string true "Last name"
// @Param gender formData string true "Gender"
// @Param year formData int true "Year level"
// @Param course_college formData int true "Course ID"
// @Param student_photo formData file false "Photo (jpg, jpeg, png, at most 1MB)"
// @Success 201 {object} dto.APIResponse{data=models.Student} "Student added."
// @Failure 400 {object} dto.APIResponse "All fields are required."
// @Failure 409 {object} dto.APIResponse "Student with the same ID already exists."
// @Failure 502 {object} dto.APIResponse "Photo upload failed."
// @Router /students [post]
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var req dto.StudentRequest
	if !middleware.BindRequest(ctx, &req) {
		return
	}

	photo, closePhoto, err := photoFromRequest(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	defer closePhoto()

	student, err := c.studentService.AddStudent(ctx, req.ToModel(0), photo)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse("Student added.", student))
}

// UpdateStudent edits a student. The stored photo is kept unless a new one is sent.
// @Summary Edit student
// @Tags students
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Student ID"
// @Param student_photo formData file false "Replacement photo"
// @Success 200 {object} dto.APIResponse{data=models.Student} "Student updated."
// @Failure 404 {object} dto.APIResponse "Student not found."
// @Router /students/{id} [put]
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "student")
	if !ok {
		return
	}

	var req dto.StudentRequest
	if !middleware.BindRequest(ctx, &req) {
		return
	}

	photo, closePhoto, err := photoFromRequest(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	defer closePhoto()

	student, err := c.studentService.EditStudent(ctx, req.ToModel(id), photo)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Student updated.", student))
}

// DeleteStudent removes a student
// @Summary Delete student
// @Tags students
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse "Student deleted."
// @Failure 404 {object} dto.APIResponse "Student not found."
// @Router /students/{id} [delete]
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "student")
	if !ok {
		return
	}

	if err := c.studentService.DeleteStudent(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Student deleted.", nil))
}

// photoFromRequest opens the optional photo upload. A request without one yields a
// nil photo. The returned func closes the opened file and is always safe to call.
func photoFromRequest(ctx *gin.Context) (*filestorage.Photo, func(), error) {
	noop := func() {}

	header, err := ctx.FormFile(PhotoField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, noop, nil
		}
		return nil, noop, apperrors.NewBadRequestError("Invalid photo upload.")
	}

	file, err := header.Open()
	if err != nil {
		return nil, noop, apperrors.NewBadRequestError("Invalid photo upload.")
	}

	closeFile := func() {
		if err := file.Close(); err != nil {
			logger.Warn().Err(err).Str("filename", header.Filename).Msg("Failed to close uploaded photo")
		}
	}
	return &filestorage.Photo{Filename: header.Filename, Size: header.Size, Content: file}, closeFile, nil
}
