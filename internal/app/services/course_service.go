package services

import (
	"context"
	"strings"

	"github.com/yigit/studentrecords/internal/app/models"
	"github.com/yigit/studentrecords/internal/app/models/dto"
	"github.com/yigit/studentrecords/internal/pkg/apperrors"
	"github.com/yigit/studentrecords/internal/pkg/helpers"
	"github.com/yigit/studentrecords/internal/pkg/logger"
)

// CourseStore is the persistence needed by CourseService.
// Implemented by *repositories.CourseRepository.
type CourseStore interface {
	Insert(ctx context.Context, course *models.Course) (int64, error)
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*models.CourseWithCollege, error)
	ListWithCollege(ctx context.Context) ([]*models.CourseWithCollege, error)
	ListWithCollegePaginated(ctx context.Context, offset, limit int) ([]*models.CourseWithCollege, error)
	SearchPaginated(ctx context.Context, term string, offset, limit int) ([]*models.CourseWithCollege, error)
	Count(ctx context.Context) (int64, error)
	CountSearch(ctx context.Context, term string) (int64, error)
	ListColleges(ctx context.Context) ([]*models.CollegeOption, error)
	IsUnique(ctx context.Context, name, code string, collegeID, excludeID *int64) (bool, error)
}

// CourseService defines the interface for course operations
type CourseService interface {
	ListCourses(ctx context.Context, page, size int) ([]*models.CourseWithCollege, *dto.PaginationInfo, error)
	ListAllCourses(ctx context.Context) ([]*models.CourseWithCollege, error)
	SearchCourses(ctx context.Context, query string, page, size int) ([]*models.CourseWithCollege, *dto.PaginationInfo, error)
	GetCourse(ctx context.Context, id int64) (*models.CourseWithCollege, error)
	ListCollegeOptions(ctx context.Context) ([]*models.CollegeOption, error)
	AddCourse(ctx context.Context, course *models.Course) (*models.Course, error)
	EditCourse(ctx context.Context, course *models.Course) (*models.Course, error)
	DeleteCourse(ctx context.Context, id int64) error
}

// courseServiceImpl implements the CourseService interface
type courseServiceImpl struct {
	courseRepo CourseStore
}

// NewCourseService creates a new course service
func NewCourseService(courseRepo CourseStore) CourseService {
	return &courseServiceImpl{courseRepo: courseRepo}
}

// ListCourses returns one page of courses with their college, newest first
func (s *courseServiceImpl) ListCourses(ctx context.Context, page, size int) ([]*models.CourseWithCollege, *dto.PaginationInfo, error) {
	total, err := s.courseRepo.Count(ctx)
	if err != nil {
		return nil, nil, storageError(err, "Error loading courses.")
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	courses, err := s.courseRepo.ListWithCollegePaginated(ctx, offset, limit)
	if err != nil {
		return nil, nil, storageError(err, "Error loading courses.")
	}

	return courses, helpers.NewPaginationInfo(total, page, limit), nil
}

// ListAllCourses returns every course with its college ordered by name
func (s *courseServiceImpl) ListAllCourses(ctx context.Context) ([]*models.CourseWithCollege, error) {
	courses, err := s.courseRepo.ListWithCollege(ctx)
	if err != nil {
		return nil, storageError(err, "Error loading courses.")
	}
	return courses, nil
}

// SearchCourses returns one page of courses matching query on name, code or college code.
// The total is counted with the same filter.
func (s *courseServiceImpl) SearchCourses(ctx context.Context, query string, page, size int) ([]*models.CourseWithCollege, *dto.PaginationInfo, error) {
	query = strings.TrimSpace(query)
	total, err := s.courseRepo.CountSearch(ctx, query)
	if err != nil {
		return nil, nil, storageError(err, "Error searching courses.")
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	courses, err := s.courseRepo.SearchPaginated(ctx, query, offset, limit)
	if err != nil {
		return nil, nil, storageError(err, "Error searching courses.")
	}

	return courses, helpers.NewPaginationInfo(total, page, limit), nil
}

// GetCourse retrieves a course with its college
func (s *courseServiceImpl) GetCourse(ctx context.Context, id int64) (*models.CourseWithCollege, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storageError(err, "Error loading course.")
	}
	return course, nil
}

// ListCollegeOptions returns the colleges a course can be attached to
func (s *courseServiceImpl) ListCollegeOptions(ctx context.Context) ([]*models.CollegeOption, error) {
	options, err := s.courseRepo.ListColleges(ctx)
	if err != nil {
		return nil, storageError(err, "Error loading colleges.")
	}
	return options, nil
}

func (s *courseServiceImpl) validate(ctx context.Context, course *models.Course, excludeID *int64) error {
	course.Name = strings.TrimSpace(course.Name)
	course.Code = strings.TrimSpace(course.Code)
	if blank(course.Name, course.Code) || course.CollegeID == nil || *course.CollegeID <= 0 {
		return apperrors.NewValidationError("All fields are required.")
	}

	unique, err := s.courseRepo.IsUnique(ctx, course.Name, course.Code, course.CollegeID, excludeID)
	if err != nil {
		return err
	}
	if !unique {
		return apperrors.ErrCourseAlreadyExists
	}
	return nil
}

// AddCourse validates and stores a new course
func (s *courseServiceImpl) AddCourse(ctx context.Context, course *models.Course) (*models.Course, error) {
	if err := s.validate(ctx, course, nil); err != nil {
		return nil, storageError(err, "Error adding course.")
	}

	id, err := s.courseRepo.Insert(ctx, course)
	if err != nil {
		return nil, storageError(err, "Error adding course.")
	}
	course.ID = id

	logger.Info().Int64("courseID", id).Str("courseCode", course.Code).Msg("Course added")
	return course, nil
}

// EditCourse replaces every field of an existing course. The course itself is
// excluded from the uniqueness check.
func (s *courseServiceImpl) EditCourse(ctx context.Context, course *models.Course) (*models.Course, error) {
	if _, err := s.courseRepo.GetByID(ctx, course.ID); err != nil {
		return nil, storageError(err, "Error updating course.")
	}

	if err := s.validate(ctx, course, &course.ID); err != nil {
		return nil, storageError(err, "Error updating course.")
	}

	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, storageError(err, "Error updating course.")
	}

	logger.Info().Int64("courseID", course.ID).Msg("Course updated")
	return course, nil
}

// DeleteCourse removes a course; its students are kept with no course
func (s *courseServiceImpl) DeleteCourse(ctx context.Context, id int64) error {
	if err := s.courseRepo.Delete(ctx, id); err != nil {
		return storageError(err, "Error deleting course.")
	}

	logger.Info().Int64("courseID", id).Msg("Course deleted")
	return nil
}
