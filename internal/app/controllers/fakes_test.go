package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yigit/studentrecords/internal/app/models"
	"github.com/yigit/studentrecords/internal/app/models/dto"
	"github.com/yigit/studentrecords/internal/pkg/filestorage"
	"github.com/yigit/studentrecords/internal/pkg/helpers"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decode(t *testing.T, w *httptest.ResponseRecorder) dto.APIResponse {
	t.Helper()
	var resp dto.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func ptr[T any](v T) *T { return &v }

type fakeCollegeService struct {
	colleges []*models.College
	err      error

	added   *models.College
	edited  *models.College
	deleted int64
	query   string
	page    int
	size    int
}

func (f *fakeCollegeService) ListColleges(_ context.Context, page, size int) ([]*models.College, *dto.PaginationInfo, error) {
	f.page, f.size = page, size
	if f.err != nil {
		return nil, nil, f.err
	}
	return f.colleges, helpers.NewPaginationInfo(int64(len(f.colleges)), page, size), nil
}

func (f *fakeCollegeService) ListAllColleges(context.Context) ([]*models.College, error) {
	return f.colleges, f.err
}

func (f *fakeCollegeService) SearchColleges(_ context.Context, query string) ([]*models.College, error) {
	f.query = query
	if f.err != nil {
		return nil, f.err
	}
	return []*models.College{}, nil
}

func (f *fakeCollegeService) GetCollege(_ context.Context, id int64) (*models.College, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.College{ID: id, Name: "Engineering", Code: "COE"}, nil
}

func (f *fakeCollegeService) AddCollege(_ context.Context, college *models.College) (*models.College, error) {
	f.added = college
	if f.err != nil {
		return nil, f.err
	}
	college.ID = 7
	return college, nil
}

func (f *fakeCollegeService) EditCollege(_ context.Context, college *models.College) (*models.College, error) {
	f.edited = college
	return college, f.err
}

func (f *fakeCollegeService) DeleteCollege(_ context.Context, id int64) error {
	f.deleted = id
	return f.err
}

type fakeCourseService struct {
	courses []*models.CourseWithCollege
	err     error

	added   *models.Course
	deleted int64
	query   string
	page    int
}

func (f *fakeCourseService) ListCourses(_ context.Context, page, size int) ([]*models.CourseWithCollege, *dto.PaginationInfo, error) {
	f.page = page
	return f.courses, helpers.NewPaginationInfo(int64(len(f.courses)), page, size), f.err
}

func (f *fakeCourseService) ListAllCourses(context.Context) ([]*models.CourseWithCollege, error) {
	return f.courses, f.err
}

func (f *fakeCourseService) SearchCourses(_ context.Context, query string, page, size int) ([]*models.CourseWithCollege, *dto.PaginationInfo, error) {
	f.query, f.page = query, page
	if f.err != nil {
		return nil, nil, f.err
	}
	return f.courses, helpers.NewPaginationInfo(int64(len(f.courses)), page, size), nil
}

func (f *fakeCourseService) GetCourse(_ context.Context, id int64) (*models.CourseWithCollege, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.CourseWithCollege{Course: models.Course{ID: id}}, nil
}

func (f *fakeCourseService) ListCollegeOptions(context.Context) ([]*models.CollegeOption, error) {
	return []*models.CollegeOption{{ID: 1, Name: "Engineering"}}, f.err
}

func (f *fakeCourseService) AddCourse(_ context.Context, course *models.Course) (*models.Course, error) {
	f.added = course
	return course, f.err
}

func (f *fakeCourseService) EditCourse(_ context.Context, course *models.Course) (*models.Course, error) {
	return course, f.err
}

func (f *fakeCourseService) DeleteCourse(_ context.Context, id int64) error {
	f.deleted = id
	return f.err
}

type fakeStudentService struct {
	students []*models.StudentListItem
	err      error

	added      *models.Student
	edited     *models.Student
	photo      *filestorage.Photo
	photoBytes []byte
	query      string
}

func (f *fakeStudentService) ListStudents(_ context.Context, page, size int) ([]*models.StudentListItem, *dto.PaginationInfo, error) {
	return f.students, helpers.NewPaginationInfo(int64(len(f.students)), page, size), f.err
}

func (f *fakeStudentService) SearchStudents(_ context.Context, query string, page, size int) ([]*models.StudentListItem, *dto.PaginationInfo, error) {
	f.query = query
	if f.err != nil {
		return nil, nil, f.err
	}
	return f.students, helpers.NewPaginationInfo(int64(len(f.students)), page, size), nil
}

func (f *fakeStudentService) GetStudent(_ context.Context, id int64) (*models.Student, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.Student{ID: id}, nil
}

func (f *fakeStudentService) GetOptions(context.Context) (*dto.StudentOptions, error) {
	return &dto.StudentOptions{Courses: []*models.CourseOption{}, Colleges: []*models.CollegeOption{}}, f.err
}

func (f *fakeStudentService) record(photo *filestorage.Photo) {
	f.photo = photo
	if photo != nil {
		f.photoBytes, _ = io.ReadAll(photo.Content)
	}
}

func (f *fakeStudentService) AddStudent(_ context.Context, student *models.Student, photo *filestorage.Photo) (*models.Student, error) {
	f.added = student
	f.record(photo)
	if f.err != nil {
		return nil, f.err
	}
	return student, nil
}

func (f *fakeStudentService) EditStudent(_ context.Context, student *models.Student, photo *filestorage.Photo) (*models.Student, error) {
	f.edited = student
	f.record(photo)
	if f.err != nil {
		return nil, f.err
	}
	return student, nil
}

func (f *fakeStudentService) DeleteStudent(context.Context, int64) error {
	return f.err
}
