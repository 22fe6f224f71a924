package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/studentrecords/internal/app/models/dto"
	"github.com/yigit/studentrecords/internal/app/services"
	"github.com/yigit/studentrecords/internal/middleware"
	"github.com/yigit/studentrecords/internal/pkg/helpers"
)

// CollegeController handles college-related operations
type CollegeController struct {
	collegeService services.CollegeService
	pageSize       int
}

// NewCollegeController creates a new CollegeController
func NewCollegeController(collegeService services.CollegeService, pageSize int) *CollegeController {
	return &CollegeController{
		collegeService: collegeService,
		pageSize:       pageSize,
	}
}

// GetColleges lists colleges page by page
// @Summary List colleges
// @Description Returns one page of colleges, newest first
// @Tags colleges
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=[]models.College}
// @Failure 500 {object} dto.APIResponse
// @Router /colleges [get]
func (c *CollegeController) GetColleges(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx, c.pageSize)

	colleges, pagination, err := c.collegeService.ListColleges(ctx, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewListResponse(colleges, pagination))
}

// GetAllColleges lists every college ordered by name
// @Summary List all colleges
// @Tags colleges
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.College}
// @Router /colleges/all [get]
func (c *CollegeController) GetAllColleges(ctx *gin.Context) {
	colleges, err := c.collegeService.ListAllColleges(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewListResponse(colleges, nil))
}

// SearchColleges searches colleges by name or code. An empty query lists colleges instead.
// @Summary Search colleges
// @Tags colleges
// @Produce json
// @Param query query string false "Search text"
// @Success 200 {object} dto.APIResponse{data=[]models.College}
// @Router /colleges/search [get]
func (c *CollegeController) SearchColleges(ctx *gin.Context) {
	query := searchQuery(ctx)
	if query == "" {
		c.GetColleges(ctx)
		return
	}

	colleges, err := c.collegeService.SearchColleges(ctx, query)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if len(colleges) == 0 {
		ctx.JSON(http.StatusOK, dto.NewInfoResponse("No results found for the search query.", colleges))
		return
	}
	ctx.JSON(http.StatusOK, dto.NewListResponse(colleges, nil))
}

// GetCollegeByID retrieves a college
// @Summary Get college
// @Tags colleges
// @Produce json
// @Param id path int true "College ID"
// @Success 200 {object} dto.APIResponse{data=models.College}
// @Failure 404 {object} dto.APIResponse "College not found."
// @Router /colleges/{id} [get]
func (c *CollegeController) GetCollegeByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "college")
	if !ok {
		return
	}

	college, err := c.collegeService.GetCollege(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("", college))
}

// CreateCollege adds a college
// @Summary Add college
// @Tags colleges
// @Accept x-www-form-urlencoded,json
// @Produce json
// @Param college_name formData string true "College name"
// @Param college_code formData string true "College code"
// @Success 201 {object} dto.APIResponse{data=models.College} "College added."
// @Failure 400 {object} dto.APIResponse "Name and code cannot be empty."
// @Failure 409 {object} dto.APIResponse "College with the same name or code already exists."
// @Router /colleges [post]
func (c *CollegeController) CreateCollege(ctx *gin.Context) {
	var req dto.CollegeRequest
	if !middleware.BindRequest(ctx, &req) {
		return
	}

	college, err := c.collegeService.AddCollege(ctx, req.ToModel(0))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse("College added.", college))
}

// UpdateCollege edits a college
// @Summary Edit college
// @Tags colleges
// @Accept x-www-form-urlencoded,json
// @Produce json
// @Param id path int true "College ID"
// @Success 200 {object} dto.APIResponse{data=models.College} "College updated."
// @Failure 404 {object} dto.APIResponse "College not found."
// @Failure 409 {object} dto.APIResponse "College with the same name or code already exists."
// @Router /colleges/{id} [put]
func (c *CollegeController) UpdateCollege(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "college")
	if !ok {
		return
	}

	var req dto.CollegeRequest
	if !middleware.BindRequest(ctx, &req) {
		return
	}

	college, err := c.collegeService.EditCollege(ctx, req.ToModel(id))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("College updated.", college))
}

// DeleteCollege deletes a college, keeping its courses and students
// @Summary Delete college
// @Tags colleges
// @Produce json
// @Param id path int true "College ID"
// @Success 200 {object} dto.APIResponse "College deleted."
// @Failure 404 {object} dto.APIResponse "College not found."
// @Router /colleges/{id} [delete]
func (c *CollegeController) DeleteCollege(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "college")
	if !ok {
		return
	}

	if err := c.collegeService.DeleteCollege(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("College deleted.", nil))
}
