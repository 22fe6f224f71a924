package dto

import "github.com/yigit/studentrecords/internal/app/models"

// CollegeRequest is the add/edit form for a college
type CollegeRequest struct {
	Name string `json:"collegeName" form:"college_name" binding:"max=255"`
	Code string `json:"collegeCode" form:"college_code" binding:"max=50"`
}

// ToModel converts the request into a college with the given id (0 for new rows)
func (r CollegeRequest) ToModel(id int64) *models.College {
	return &models.College{ID: id, Name: r.Name, Code: r.Code}
}
