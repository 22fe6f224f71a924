package services

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"

	"github.com/yigit/studentrecords/internal/app/models"
	"github.com/yigit/studentrecords/internal/pkg/apperrors"
)

var errDB = errors.New("connection reset by peer")

type fakeColleges struct {
	rows   map[int64]*models.College
	nextID int64
	err    error
}

func newFakeColleges(colleges ...*models.College) *fakeColleges {
	f := &fakeColleges{rows: map[int64]*models.College{}}
	for _, c := range colleges {
		f.rows[c.ID] = c
		if c.ID > f.nextID {
			f.nextID = c.ID
		}
	}
	return f
}

func (f *fakeColleges) sorted() []*models.College {
	out := make([]*models.College, 0, len(f.rows))
	for _, c := range f.rows {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (f *fakeColleges) Insert(_ context.Context, c *models.College) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.nextID++
	cp := *c
	cp.ID = f.nextID
	f.rows[cp.ID] = &cp
	return cp.ID, nil
}

func (f *fakeColleges) Update(_ context.Context, c *models.College) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.rows[c.ID]; !ok {
		return apperrors.ErrCollegeNotFound
	}
	cp := *c
	f.rows[c.ID] = &cp
	return nil
}

func (f *fakeColleges) Delete(_ context.Context, id int64) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.rows[id]; !ok {
		return apperrors.ErrCollegeNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeColleges) GetByID(_ context.Context, id int64) (*models.College, error) {
	c, ok := f.rows[id]
	if !ok {
		return nil, apperrors.ErrCollegeNotFound
	}
	return c, nil
}

func (f *fakeColleges) ListAll(context.Context) ([]*models.College, error) {
	return f.sorted(), f.err
}

func (f *fakeColleges) ListPaginated(_ context.Context, offset, limit int) ([]*models.College, error) {
	all := f.sorted()
	if offset > len(all) {
		offset = len(all)
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], f.err
}

func (f *fakeColleges) Search(_ context.Context, term string) ([]*models.College, error) {
	out := []*models.College{}
	for _, c := range f.sorted() {
		if containsFold(c.Name, term) || containsFold(c.Code, term) {
			out = append(out, c)
		}
	}
	return out, f.err
}

func (f *fakeColleges) Count(context.Context) (int64, error) {
	return int64(len(f.rows)), f.err
}

func (f *fakeColleges) IsUnique(_ context.Context, name, code string, excludeID *int64) (bool, error) {
	for id, c := range f.rows {
		if excludeID != nil && id == *excludeID {
			continue
		}
		if c.Name == name || c.Code == code {
			return false, nil
		}
	}
	return true, f.err
}

type fakeCourses struct {
	rows        map[int64]*models.Course
	nextID      int64
	err         error
	searchTerms []string
	excluded    []*int64
}

func newFakeCourses(courses ...*models.Course) *fakeCourses {
	f := &fakeCourses{rows: map[int64]*models.Course{}}
	for _, c := range courses {
		f.rows[c.ID] = c
		if c.ID > f.nextID {
			f.nextID = c.ID
		}
	}
	return f
}

func (f *fakeCourses) withCollege(c *models.Course) *models.CourseWithCollege {
	return &models.CourseWithCollege{Course: *c}
}

func (f *fakeCourses) sorted() []*models.CourseWithCollege {
	out := make([]*models.CourseWithCollege, 0, len(f.rows))
	for _, c := range f.rows {
		out = append(out, f.withCollege(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (f *fakeCourses) Insert(_ context.Context, c *models.Course) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.nextID++
	cp := *c
	cp.ID = f.nextID
	f.rows[cp.ID] = &cp
	return cp.ID, nil
}

func (f *fakeCourses) Update(_ context.Context, c *models.Course) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.rows[c.ID]; !ok {
		return apperrors.ErrCourseNotFound
	}
	cp := *c
	f.rows[c.ID] = &cp
	return nil
}

func (f *fakeCourses) Delete(_ context.Context, id int64) error {
	if _, ok := f.rows[id]; !ok {
		return apperrors.ErrCourseNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeCourses) GetByID(_ context.Context, id int64) (*models.CourseWithCollege, error) {
	c, ok := f.rows[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	return f.withCollege(c), nil
}

func (f *fakeCourses) ListWithCollege(context.Context) ([]*models.CourseWithCollege, error) {
	return f.sorted(), f.err
}

func (f *fakeCourses) ListWithCollegePaginated(_ context.Context, offset, limit int) ([]*models.CourseWithCollege, error) {
	all := f.sorted()
	if offset > len(all) {
		offset = len(all)
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], f.err
}

func (f *fakeCourses) matching(term string) []*models.CourseWithCollege {
	out := []*models.CourseWithCollege{}
	for _, c := range f.sorted() {
		if containsFold(c.Name, term) || containsFold(c.Code, term) {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeCourses) SearchPaginated(_ context.Context, term string, offset, limit int) ([]*models.CourseWithCollege, error) {
	f.searchTerms = append(f.searchTerms, term)
	all := f.matching(term)
	if offset > len(all) {
		offset = len(all)
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], f.err
}

func (f *fakeCourses) Count(context.Context) (int64, error) {
	return int64(len(f.rows)), f.err
}

func (f *fakeCourses) CountSearch(_ context.Context, term string) (int64, error) {
	f.searchTerms = append(f.searchTerms, term)
	return int64(len(f.matching(term))), f.err
}

func (f *fakeCourses) ListColleges(context.Context) ([]*models.CollegeOption, error) {
	return []*models.CollegeOption{{ID: 1, Name: "College of Engineering"}}, f.err
}

func (f *fakeCourses) IsUnique(_ context.Context, name, code string, collegeID, excludeID *int64) (bool, error) {
	f.excluded = append(f.excluded, excludeID)
	for id, c := range f.rows {
		if excludeID != nil && id == *excludeID {
			continue
		}
		if c.Name == name && c.Code == code && sameID(c.CollegeID, collegeID) {
			return false, nil
		}
	}
	return true, f.err
}

func (f *fakeCourses) CollegeIDOf(_ context.Context, courseID int64) (*int64, error) {
	c, ok := f.rows[courseID]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	return c.CollegeID, nil
}

type fakeStudents struct {
	rows      map[int64]*models.Student
	nextID    int64
	err       error
	insertErr error
	inserted  int
}

func newFakeStudents(students ...*models.Student) *fakeStudents {
	f := &fakeStudents{rows: map[int64]*models.Student{}}
	for _, s := range students {
		f.rows[s.ID] = s
		if s.ID > f.nextID {
			f.nextID = s.ID
		}
	}
	return f
}

func (f *fakeStudents) items() []*models.StudentListItem {
	out := make([]*models.StudentListItem, 0, len(f.rows))
	for _, s := range f.rows {
		out = append(out, &models.StudentListItem{Student: *s})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (f *fakeStudents) Insert(_ context.Context, s *models.Student) (int64, error) {
	if f.insertErr != nil {
		return 0, f.insertErr
	}
	f.inserted++
	f.nextID++
	cp := *s
	cp.ID = f.nextID
	f.rows[cp.ID] = &cp
	return cp.ID, nil
}

func (f *fakeStudents) Update(_ context.Context, s *models.Student) error {
	if _, ok := f.rows[s.ID]; !ok {
		return apperrors.ErrStudentNotFound
	}
	cp := *s
	f.rows[s.ID] = &cp
	return nil
}

func (f *fakeStudents) Delete(_ context.Context, id int64) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.rows[id]; !ok {
		return apperrors.ErrStudentNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeStudents) GetByID(_ context.Context, id int64) (*models.Student, error) {
	s, ok := f.rows[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeStudents) ListWithCourses(_ context.Context, limit, offset *int) ([]*models.StudentListItem, error) {
	all := f.items()
	if limit == nil || offset == nil {
		return all, f.err
	}
	start := *offset
	if start > len(all) {
		start = len(all)
	}
	end := start + *limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], f.err
}

func (f *fakeStudents) Search(_ context.Context, term string) ([]*models.StudentListItem, error) {
	out := []*models.StudentListItem{}
	for _, s := range f.items() {
		if containsFold(s.StudentID, term) || containsFold(s.FirstName, term) || containsFold(s.LastName, term) {
			out = append(out, s)
		}
	}
	return out, f.err
}

func (f *fakeStudents) Count(context.Context) (int64, error) {
	return int64(len(f.rows)), f.err
}

func (f *fakeStudents) ListCourses(context.Context) ([]*models.CourseOption, error) {
	return []*models.CourseOption{{ID: 3, Code: "BSCS"}}, f.err
}

func (f *fakeStudents) ListColleges(context.Context) ([]*models.CollegeOption, error) {
	return []*models.CollegeOption{{ID: 1, Name: "College of Engineering"}}, f.err
}

func (f *fakeStudents) IsUnique(_ context.Context, s *models.Student, excludeID *int64) (bool, error) {
	for id, o := range f.rows {
		if excludeID != nil && id == *excludeID {
			continue
		}
		if o.StudentID == s.StudentID && o.FirstName == s.FirstName && o.LastName == s.LastName &&
			o.Gender == s.Gender && o.Year == s.Year && sameID(o.CourseID, s.CourseID) && sameID(o.CollegeID, s.CollegeID) {
			return false, nil
		}
	}
	return true, f.err
}

type fakeImageHost struct {
	uploads []string
	folder  string
	err     error
}

func (h *fakeImageHost) Upload(_ context.Context, r io.Reader, filename, folder string) (string, error) {
	if h.err != nil {
		return "", h.err
	}
	if _, err := io.ReadAll(r); err != nil {
		return "", err
	}
	h.uploads = append(h.uploads, filename)
	h.folder = folder
	return "https://res.cloudinary.com/demo/image/upload/" + folder + "/" + filename, nil
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func sameID(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func ptr[T any](v T) *T {
	return &v
}
