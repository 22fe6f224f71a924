package dto

import "github.com/yigit/studentrecords/internal/app/models"

// StudentRequest is the multipart add/edit form for a student.
// The photo travels separately in the "student_photo" file field.
type StudentRequest struct {
	StudentID string `json:"studentId" form:"student_id" binding:"max=50"`
	FirstName string `json:"firstName" form:"firstName" binding:"max=100"`
	LastName  string `json:"lastName" form:"lastName" binding:"max=100"`
	Gender    string `json:"gender" form:"gender" binding:"max=20"`
	Year      int    `json:"year" form:"year" binding:"omitempty,min=1"`
	CourseID  *int64 `json:"courseId" form:"course_college" binding:"omitempty,gt=0"`
}

// ToModel converts the request into a student with the given id (0 for new rows).
// CollegeID is left unset; it is derived from the course.
func (r StudentRequest) ToModel(id int64) *models.Student {
	return &models.Student{
		ID:        id,
		StudentID: r.StudentID,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Gender:    r.Gender,
		Year:      r.Year,
		CourseID:  r.CourseID,
	}
}

// StudentOptions lists the selectable courses and colleges for the student form
type StudentOptions struct {
	Courses  []*models.CourseOption  `json:"courses"`
	Colleges []*models.CollegeOption `json:"colleges"`
}
