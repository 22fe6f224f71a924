package models

// Student is an enrolled person. CollegeID always mirrors the college of CourseID
// at the time the row was written.
type Student struct {
	ID        int64   `json:"id" db:"id"`
	StudentID string  `json:"studentId" db:"student_id"` // External identifier, e.g. "2021-0001"
	FirstName string  `json:"firstName" db:"first_name"`
	LastName  string  `json:"lastName" db:"last_name"`
	Gender    string  `json:"gender" db:"gender"`
	Year      int     `json:"year" db:"year"`
	CourseID  *int64  `json:"courseId" db:"course_id"`
	CollegeID *int64  `json:"collegeId" db:"college_id"`
	PhotoURL  *string `json:"photoUrl" db:"cloudinary_url"`
}

// StudentListItem is a student row joined with its course and college.
// CourseCollege renders as "<course code> (<college name>)" with empty parts for missing links.
type StudentListItem struct {
	Student
	CourseCode    *string `json:"courseCode" db:"course_code"`
	CollegeName   *string `json:"collegeName" db:"college_name"`
	CourseCollege string  `json:"courseCollege" db:"course_college"`
}
