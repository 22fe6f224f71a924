package dto

import "github.com/yigit/studentrecords/internal/app/models"

// CourseRequest is the add/edit form for a course
type CourseRequest struct {
	Name      string `json:"courseName" form:"course_name" binding:"max=255"`
	Code      string `json:"courseCode" form:"course_code" binding:"max=50"`
	CollegeID *int64 `json:"collegeId" form:"college" binding:"omitempty,gt=0"`
}

// ToModel converts the request into a course with the given id (0 for new rows)
func (r CourseRequest) ToModel(id int64) *models.Course {
	return &models.Course{ID: id, Name: r.Name, Code: r.Code, CollegeID: r.CollegeID}
}
