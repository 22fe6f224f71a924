package models

// College is an academic unit that owns courses and groups students.
type College struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"collegeName" db:"college_name"`
	Code string `json:"collegeCode" db:"college_code"`
}

// CollegeOption is the id/name pair used by selection inputs.
type CollegeOption struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"collegeName" db:"college_name"`
}
