package repositories

import (
	"github.com/yigit/studentrecords/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	CollegeRepository *CollegeRepository
	CourseRepository  *CourseRepository
	StudentRepository *StudentRepository
}

// NewRepositories initializes all repositories on the same gateway
func NewRepositories(gw db.Gateway) *Repositories {
	return &Repositories{
		CollegeRepository: NewCollegeRepository(gw),
		CourseRepository:  NewCourseRepository(gw),
		StudentRepository: NewStudentRepository(gw),
	}
}
