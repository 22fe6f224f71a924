package services

import (
	"context"
	"errors"
	"strings"

	"github.com/yigit/studentrecords/internal/app/models"
	"github.com/yigit/studentrecords/internal/app/models/dto"
	"github.com/yigit/studentrecords/internal/pkg/apperrors"
	"github.com/yigit/studentrecords/internal/pkg/filestorage"
	"github.com/yigit/studentrecords/internal/pkg/helpers"
	"github.com/yigit/studentrecords/internal/pkg/logger"
)

// StudentStore is the persistence needed by StudentService.
// Implemented by *repositories.StudentRepository.
type StudentStore interface {
	Insert(ctx context.Context, student *models.Student) (int64, error)
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	ListWithCourses(ctx context.Context, limit, offset *int) ([]*models.StudentListItem, error)
	Search(ctx context.Context, term string) ([]*models.StudentListItem, error)
	Count(ctx context.Context) (int64, error)
	ListCourses(ctx context.Context) ([]*models.CourseOption, error)
	ListColleges(ctx context.Context) ([]*models.CollegeOption, error)
	IsUnique(ctx context.Context, student *models.Student, excludeID *int64) (bool, error)
}

// CourseLookup resolves the college of a course.
// Implemented by *repositories.CourseRepository.
type CourseLookup interface {
	CollegeIDOf(ctx context.Context, courseID int64) (*int64, error)
}

// StudentService defines the interface for student operations
type StudentService interface {
	ListStudents(ctx context.Context, page, size int) ([]*models.StudentListItem, *dto.PaginationInfo, error)
	SearchStudents(ctx context.Context, query string, page, size int) ([]*models.StudentListItem, *dto.PaginationInfo, error)
	GetStudent(ctx context.Context, id int64) (*models.Student, error)
	GetOptions(ctx context.Context) (*dto.StudentOptions, error)
	AddStudent(ctx context.Context, student *models.Student, photo *filestorage.Photo) (*models.Student, error)
	EditStudent(ctx context.Context, student *models.Student, photo *filestorage.Photo) (*models.Student, error)
	DeleteStudent(ctx context.Context, id int64) error
}

// PhotoConfig controls where and how large student photos may be
type PhotoConfig struct {
	Folder  string
	MaxSize int64
}

// studentServiceImpl implements the StudentService interface
type studentServiceImpl struct {
	studentRepo StudentStore
	courseRepo  CourseLookup
	imageHost   filestorage.ImageHost
	photos      PhotoConfig
}

// NewStudentService creates a new student service
func NewStudentService(studentRepo StudentStore, courseRepo CourseLookup, imageHost filestorage.ImageHost, photos PhotoConfig) StudentService {
	if photos.MaxSize <= 0 {
		photos.MaxSize = filestorage.DefaultMaxPhotoSize
	}
	return &studentServiceImpl{
		studentRepo: studentRepo,
		courseRepo:  courseRepo,
		imageHost:   imageHost,
		photos:      photos,
	}
}

// ListStudents returns one page of students with their course and college, newest first
func (s *studentServiceImpl) ListStudents(ctx context.Context, page, size int) ([]*models.StudentListItem, *dto.PaginationInfo, error) {
	total, err := s.studentRepo.Count(ctx)
	if err != nil {
		return nil, nil, storageError(err, "Error loading students.")
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	students, err := s.studentRepo.ListWithCourses(ctx, &limit, &offset)
	if err != nil {
		return nil, nil, storageError(err, "Error loading students.")
	}

	return students, helpers.NewPaginationInfo(total, page, limit), nil
}

// SearchStudents runs the full search and returns the requested page of it
func (s *studentServiceImpl) SearchStudents(ctx context.Context, query string, page, size int) ([]*models.StudentListItem, *dto.PaginationInfo, error) {
	all, err := s.studentRepo.Search(ctx, strings.TrimSpace(query))
	if err != nil {
		return nil, nil, storageError(err, "Error searching students.")
	}

	_, limit := helpers.CalculateOffsetLimit(page, size)
	start, end := helpers.CalculateSliceIndices(page, limit, len(all))

	return all[start:end], helpers.NewPaginationInfo(int64(len(all)), page, limit), nil
}

// GetStudent retrieves the editable fields of a student
func (s *studentServiceImpl) GetStudent(ctx context.Context, id int64) (*models.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storageError(err, "Error loading student.")
	}
	return student, nil
}

// GetOptions returns the courses and colleges a student can be assigned to
func (s *studentServiceImpl) GetOptions(ctx context.Context) (*dto.StudentOptions, error) {
	courses, err := s.studentRepo.ListCourses(ctx)
	if err != nil {
		return nil, storageError(err, "Error loading courses.")
	}
	colleges, err := s.studentRepo.ListColleges(ctx)
	if err != nil {
		return nil, storageError(err, "Error loading colleges.")
	}
	return &dto.StudentOptions{Courses: courses, Colleges: colleges}, nil
}

// validate checks required fields, resolves the college from the course and
// checks uniqueness of the resulting record.
func (s *studentServiceImpl) validate(ctx context.Context, student *models.Student, excludeID *int64) error {
	student.StudentID = strings.TrimSpace(student.StudentID)
	student.FirstName = strings.TrimSpace(student.FirstName)
	student.LastName = strings.TrimSpace(student.LastName)
	student.Gender = strings.TrimSpace(student.Gender)
	if blank(student.StudentID, student.FirstName, student.LastName, student.Gender) ||
		student.Year <= 0 || student.CourseID == nil || *student.CourseID <= 0 {
		return apperrors.NewValidationError("All fields are required.")
	}

	collegeID, err := s.courseRepo.CollegeIDOf(ctx, *student.CourseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrCourseNotFound) {
			return apperrors.NewValidationError(apperrors.ErrCourseNotFound.Message)
		}
		return err
	}
	student.CollegeID = collegeID

	unique, err := s.studentRepo.IsUnique(ctx, student, excludeID)
	if err != nil {
		return err
	}
	if !unique {
		return apperrors.ErrStudentAlreadyExists
	}
	return nil
}

// upload validates and stores photo, returning its URL. A nil or unnamed photo
// means no file was submitted and yields current.
func (s *studentServiceImpl) upload(ctx context.Context, photo *filestorage.Photo, current *string) (*string, error) {
	if photo == nil || photo.Filename == "" {
		return current, nil
	}
	if err := filestorage.ValidatePhoto(photo, s.photos.MaxSize); err != nil {
		return nil, err
	}

	url, err := s.imageHost.Upload(ctx, photo.Content, photo.Filename, s.photos.Folder)
	if err != nil {
		return nil, apperrors.NewUploadError(err)
	}
	return &url, nil
}

// AddStudent validates a new student, uploads the optional photo and stores the student.
// Nothing is stored when the upload fails.
func (s *studentServiceImpl) AddStudent(ctx context.Context, student *models.Student, photo *filestorage.Photo) (*models.Student, error) {
	if err := s.validate(ctx, student, nil); err != nil {
		return nil, storageError(err, "Error adding student.")
	}

	url, err := s.upload(ctx, photo, nil)
	if err != nil {
		return nil, err
	}
	student.PhotoURL = url

	id, err := s.studentRepo.Insert(ctx, student)
	if err != nil {
		return nil, storageError(err, "Error adding student.")
	}
	student.ID = id

	logger.Info().Int64("id", id).Str("studentID", student.StudentID).Bool("photo", url != nil).Msg("Student added")
	return student, nil
}

// EditStudent replaces every field of an existing student. The existing photo is
// kept unless a new one is uploaded.
func (s *studentServiceImpl) EditStudent(ctx context.Context, student *models.Student, photo *filestorage.Photo) (*models.Student, error) {
	existing, err := s.studentRepo.GetByID(ctx, student.ID)
	if err != nil {
		if isNotFound(err) {
			return nil, err
		}
		return nil, storageError(err, "Error updating student.")
	}

	if err := s.validate(ctx, student, &student.ID); err != nil {
		return nil, storageError(err, "Error updating student.")
	}

	url, err := s.upload(ctx, photo, existing.PhotoURL)
	if err != nil {
		return nil, err
	}
	student.PhotoURL = url

	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, storageError(err, "Error updating student.")
	}

	logger.Info().Int64("id", student.ID).Msg("Student updated")
	return student, nil
}

// DeleteStudent removes a student
func (s *studentServiceImpl) DeleteStudent(ctx context.Context, id int64) error {
	if err := s.studentRepo.Delete(ctx, id); err != nil {
		return storageError(err, "Error deleting student.")
	}

	logger.Info().Int64("id", id).Msg("Student deleted")
	return nil
}
