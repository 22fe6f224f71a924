package repositories

import (
	"context"
	"strings"
	"testing"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/studentrecords/internal/app/models"
	"github.com/yigit/studentrecords/internal/pkg/apperrors"
)

var (
	courseCols            = []string{"id", "course_name", "course_code", "college_id", "college_code"}
	courseWithCollegeCols = []string{"id", "course_name", "course_code", "college_id", "college_name", "college_code"}
)

func TestCourseInsert(t *testing.T) {
	mock := newMockPool(t)
	repo := NewCourseRepository(mock)

	mock.ExpectQuery(exact(insertCourseSQL)).
		WithArgs("Computer Science", "BSCS", ptr(int64(2))).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(11)))

	id, err := repo.Insert(context.Background(), &models.Course{Name: "Computer Science", Code: "BSCS", CollegeID: ptr(int64(2))})
	require.NoError(t, err)
	assert.EqualValues(t, 11, id)
}

func TestCourseInsertUnknownCollege(t *testing.T) {
	mock := newMockPool(t)
	repo := NewCourseRepository(mock)

	mock.ExpectQuery(exact(insertCourseSQL)).
		WithArgs("Computer Science", "BSCS", ptr(int64(404))).
		WillReturnError(errForeignKey)

	_, err := repo.Insert(context.Background(), &models.Course{Name: "Computer Science", Code: "BSCS", CollegeID: ptr(int64(404))})
	assert.ErrorIs(t, err, apperrors.ErrCollegeNotFound)
}

func TestCourseUpdateDuplicate(t *testing.T) {
	mock := newMockPool(t)
	repo := NewCourseRepository(mock)

	mock.ExpectExec(exact(updateCourseSQL)).
		WithArgs("Computer Science", "BSCS", ptr(int64(2)), int64(3)).
		WillReturnError(errUnique)

	err := repo.Update(context.Background(), &models.Course{ID: 3, Name: "Computer Science", Code: "BSCS", CollegeID: ptr(int64(2))})
	assert.ErrorIs(t, err, apperrors.ErrCourseAlreadyExists)
}

func TestCourseDeleteDetachesStudents(t *testing.T) {
	mock := newMockPool(t)
	repo := NewCourseRepository(mock)

	mock.ExpectBegin()
	mock.ExpectExec(exact(detachStudentsFromCourseSQL)).WithArgs(int64(3)).WillReturnResult(pgxmock.NewResult("UPDATE", 40))
	mock.ExpectExec(exact(deleteCourseSQL)).WithArgs(int64(3)).WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), 3))
}

func TestCourseDeleteRollsBackWhenDetachFails(t *testing.T) {
	mock := newMockPool(t)
	repo := NewCourseRepository(mock)

	mock.ExpectBegin()
	mock.ExpectExec(exact(detachStudentsFromCourseSQL)).WithArgs(int64(3)).WillReturnError(errBroken)
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), 3)
	assert.ErrorIs(t, err, errBroken)
}

func TestCourseDeleteMissing(t *testing.T) {
	mock := newMockPool(t)
	repo := NewCourseRepository(mock)

	mock.ExpectBegin()
	mock.ExpectExec(exact(detachStudentsFromCourseSQL)).WithArgs(int64(9)).WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectExec(exact(deleteCourseSQL)).WithArgs(int64(9)).WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectRollback()

	assert.ErrorIs(t, repo.Delete(context.Background(), 9), apperrors.ErrCourseNotFound)
}

func TestCourseGetByID(t *testing.T) {
	mock := newMockPool(t)
	repo := NewCourseRepository(mock)

	mock.ExpectQuery(exact(getCourseByIDSQL)).
		WithArgs(int64(3)).
		WillReturnRows(pgxmock.NewRows(courseWithCollegeCols).
			AddRow(int64(3), "Computer Science", "BSCS", ptr(int64(2)), ptr("College of Engineering"), ptr("COE")))

	course, err := repo.GetByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "BSCS", course.Code)
	require.NotNil(t, course.CollegeID)
	assert.EqualValues(t, 2, *course.CollegeID)
	assert.Equal(t, "College of Engineering", *course.CollegeName)
}

func TestCourseCollegeIDOf(t *testing.T) {
	t.Run("detached course", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewCourseRepository(mock)

		mock.ExpectQuery(exact(getCourseCollegeIDSQL)).
			WithArgs(int64(3)).
			WillReturnRows(pgxmock.NewRows([]string{"college_id"}).AddRow((*int64)(nil)))

		collegeID, err := repo.CollegeIDOf(context.Background(), 3)
		require.NoError(t, err)
		assert.Nil(t, collegeID)
	})

	t.Run("unknown course", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewCourseRepository(mock)

		mock.ExpectQuery(exact(getCourseCollegeIDSQL)).
			WithArgs(int64(77)).
			WillReturnRows(pgxmock.NewRows([]string{"college_id"}))

		_, err := repo.CollegeIDOf(context.Background(), 77)
		assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
	})
}

func TestCourseListWithCollegePaginatedKeepsDetachedCourses(t *testing.T) {
	mock := newMockPool(t)
	repo := NewCourseRepository(mock)

	mock.ExpectQuery(exact(listCoursesWithCollegePageSQL)).
		WithArgs(10, 0).
		WillReturnRows(pgxmock.NewRows(courseWithCollegeCols).
			AddRow(int64(5), "Nursing", "BSN", (*int64)(nil), (*string)(nil), (*string)(nil)).
			AddRow(int64(4), "Computer Science", "BSCS", ptr(int64(2)), ptr("College of Engineering"), ptr("COE")))

	courses, err := repo.ListWithCollegePaginated(context.Background(), 0, 10)
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Nil(t, courses[0].CollegeID)
	assert.Nil(t, courses[0].CollegeName)
	assert.Equal(t, "COE", *courses[1].CollegeCode)
}

func TestCourseSearchPaginatedArgumentOrder(t *testing.T) {
	mock := newMockPool(t)
	repo := NewCourseRepository(mock)

	mock.ExpectQuery(exact(searchCoursesPageSQL)).
		WithArgs(`%50\%%`, 5, 10).
		WillReturnRows(pgxmock.NewRows(courseCols))

	courses, err := repo.SearchPaginated(context.Background(), "50%", 10, 5)
	require.NoError(t, err)
	assert.Empty(t, courses)
}

func TestCourseCountSearchUsesSearchFilter(t *testing.T) {
	assert.True(t, strings.HasSuffix(countCourseSearchSQL, courseSearchFilter))
	assert.Contains(t, searchCoursesPageSQL, courseSearchFilter)

	mock := newMockPool(t)
	repo := NewCourseRepository(mock)

	mock.ExpectQuery(exact(countCourseSearchSQL)).
		WithArgs("%coe%").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(7)))

	n, err := repo.CountSearch(context.Background(), "coe")
	require.NoError(t, err)
	assert.EqualValues(t, 7, n)
}

func TestCourseIsUnique(t *testing.T) {
	t.Run("same name code and college", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewCourseRepository(mock)

		mock.ExpectQuery(`SELECT EXISTS \( SELECT 1 FROM course WHERE course_code = \$1 AND course_name = \$2 AND college_id IS NOT DISTINCT FROM \$3 \)`).
			WithArgs("BSCS", "Computer Science", ptr(int64(2))).
			WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

		unique, err := repo.IsUnique(context.Background(), "Computer Science", "BSCS", ptr(int64(2)), nil)
		require.NoError(t, err)
		assert.False(t, unique)
	})

	t.Run("edit excludes itself", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewCourseRepository(mock)

		mock.ExpectQuery(`college_id IS NOT DISTINCT FROM \$3 AND id <> \$4`).
			WithArgs("BSCS", "Computer Science", (*int64)(nil), int64(3)).
			WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

		unique, err := repo.IsUnique(context.Background(), "Computer Science", "BSCS", nil, ptr(int64(3)))
		require.NoError(t, err)
		assert.True(t, unique)
	})
}

func TestCourseListColleges(t *testing.T) {
	mock := newMockPool(t)
	repo := NewCourseRepository(mock)

	mock.ExpectQuery(exact(listCollegeOptionsSQL)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "college_name"}).
			AddRow(int64(3), "College of Arts").
			AddRow(int64(1), "College of Engineering"))

	options, err := repo.ListColleges(context.Background())
	require.NoError(t, err)
	require.Len(t, options, 2)
	assert.Equal(t, "College of Arts", options[0].Name)
}

func TestCourseDeleteRollsBackWhenDeleteFails(t *testing.T) {
	mock := newMockPool(t)
	repo := NewCourseRepository(mock)

	mock.ExpectBegin()
	mock.ExpectExec(exact(detachStudentsFromCourseSQL)).WithArgs(int64(3)).WillReturnResult(pgxmock.NewResult("UPDATE", 40))
	mock.ExpectExec(exact(deleteCourseSQL)).WithArgs(int64(3)).WillReturnError(errBroken)
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), 3)
	assert.ErrorIs(t, err, errBroken)
	assert.NotErrorIs(t, err, apperrors.ErrCourseNotFound)
}

// Paginated with-college listing is the only one ordered newest first.
func TestCourseListOrdering(t *testing.T) {
	for _, sql := range []string{listCoursesSQL, listCoursesPageSQL, listCoursesWithCollegeSQL, searchCoursesSQL, searchCoursesPageSQL} {
		assert.Contains(t, sql, ` ORDER BY course.course_name ASC`)
		assert.NotContains(t, sql, `course.id DESC`)
	}
	assert.Contains(t, listCoursesWithCollegePageSQL, ` ORDER BY course.id DESC LIMIT $1 OFFSET $2`)
	assert.NotContains(t, listCoursesWithCollegePageSQL, `course_name ASC`)
}

func TestCourseListAll(t *testing.T) {
	mock := newMockPool(t)
	repo := NewCourseRepository(mock)

	mock.ExpectQuery(exact(listCoursesSQL)).
		WillReturnRows(pgxmock.NewRows(courseCols).
			AddRow(int64(4), "Computer Science", "BSCS", ptr(int64(2)), ptr("COE")).
			AddRow(int64(5), "Nursing", "BSN", (*int64)(nil), (*string)(nil)))

	courses, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, "Computer Science", courses[0].Name)
	assert.Equal(t, "COE", *courses[0].CollegeCode)
	assert.Nil(t, courses[0].CollegeName)
	assert.Nil(t, courses[1].CollegeCode)
}

func TestCourseListPaginated(t *testing.T) {
	mock := newMockPool(t)
	repo := NewCourseRepository(mock)

	mock.ExpectQuery(exact(listCoursesPageSQL)).
		WithArgs(10, 20).
		WillReturnRows(pgxmock.NewRows(courseCols).
			AddRow(int64(7), "Architecture", "BSA", ptr(int64(3)), ptr("CAD")))

	courses, err := repo.ListPaginated(context.Background(), 20, 10)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "BSA", courses[0].Code)
}

func TestCourseListWithCollege(t *testing.T) {
	mock := newMockPool(t)
	repo := NewCourseRepository(mock)

	mock.ExpectQuery(exact(listCoursesWithCollegeSQL)).
		WillReturnRows(pgxmock.NewRows(courseWithCollegeCols).
			AddRow(int64(4), "Computer Science", "BSCS", ptr(int64(2)), ptr("College of Engineering"), ptr("COE")))

	courses, err := repo.ListWithCollege(context.Background())
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "College of Engineering", *courses[0].CollegeName)
}

func TestCourseSearch(t *testing.T) {
	t.Run("college code only", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewCourseRepository(mock)

		mock.ExpectQuery(exact(searchCoursesSQL)).
			WithArgs("%coe%").
			WillReturnRows(pgxmock.NewRows(courseCols).
				AddRow(int64(4), "Computer Science", "BSCS", ptr(int64(2)), ptr("COE")))

		courses, err := repo.Search(context.Background(), "coe")
		require.NoError(t, err)
		require.Len(t, courses, 1)
		assert.Nil(t, courses[0].CollegeName)
	})

	t.Run("with college name", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewCourseRepository(mock)

		mock.ExpectQuery(exact(searchCoursesWithCollegeSQL)).
			WithArgs("%bs%").
			WillReturnRows(pgxmock.NewRows(courseWithCollegeCols).
				AddRow(int64(5), "Nursing", "BSN", (*int64)(nil), (*string)(nil), (*string)(nil)).
				AddRow(int64(4), "Computer Science", "BSCS", ptr(int64(2)), ptr("College of Engineering"), ptr("COE")))

		courses, err := repo.SearchWithCollege(context.Background(), "bs")
		require.NoError(t, err)
		require.Len(t, courses, 2)
		assert.Equal(t, "College of Engineering", *courses[1].CollegeName)
	})

	t.Run("query failure", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewCourseRepository(mock)

		mock.ExpectQuery(exact(searchCoursesSQL)).WithArgs("%x%").WillReturnError(errBroken)

		_, err := repo.Search(context.Background(), "x")
		assert.ErrorIs(t, err, errBroken)
	})
}
