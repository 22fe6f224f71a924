package models

// Course represents a course of study, optionally attached to a college.
type Course struct {
	ID        int64  `json:"id" db:"id"`
	Name      string `json:"courseName" db:"course_name"`
	Code      string `json:"courseCode" db:"course_code"`
	CollegeID *int64 `json:"collegeId" db:"college_id"` // Nullable, cleared when the college is deleted
}

// CourseWithCollege is a course row joined with its college.
// CollegeName is only populated by the "with college" listings.
type CourseWithCollege struct {
	Course
	CollegeName *string `json:"collegeName,omitempty" db:"college_name"`
	CollegeCode *string `json:"collegeCode" db:"college_code"`
}

// CourseOption is a course entry for selection inputs, carrying the owning college.
type CourseOption struct {
	ID          int64   `json:"id" db:"id"`
	Code        string  `json:"courseCode" db:"course_code"`
	CollegeID   *int64  `json:"collegeId" db:"college_id"`
	CollegeName *string `json:"collegeName" db:"college_name"`
}
