package repositories

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/studentrecords/internal/app/migrations"
	"github.com/yigit/studentrecords/internal/app/models"
	"github.com/yigit/studentrecords/internal/pkg/apperrors"
)

// newTestPool connects to TEST_DATABASE_URL, migrates it and empties every table.
func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, migrations.NewMigrator(pool, zerolog.Nop()).Migrate(ctx))
	_, err = pool.Exec(ctx, `TRUNCATE student, course, college RESTART IDENTITY`)
	require.NoError(t, err)
	return pool
}

func TestIntegrationCollegeDeleteNullifiesReferences(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	repos := NewRepositories(pool)

	collegeID, err := repos.CollegeRepository.Insert(ctx, &models.College{Name: "College of Engineering", Code: "COE"})
	require.NoError(t, err)
	courseID, err := repos.CourseRepository.Insert(ctx, &models.Course{Name: "Computer Science", Code: "BSCS", CollegeID: &collegeID})
	require.NoError(t, err)
	student := &models.Student{StudentID: "2021-0001", FirstName: "Juan", LastName: "Dela Cruz", Gender: "Male", Year: 1, CourseID: &courseID}
	_, err = repos.StudentRepository.Insert(ctx, student)
	require.NoError(t, err)
	require.NotNil(t, student.CollegeID)
	assert.Equal(t, collegeID, *student.CollegeID)

	require.NoError(t, repos.CollegeRepository.Delete(ctx, collegeID))

	course, err := repos.CourseRepository.GetByID(ctx, courseID)
	require.NoError(t, err)
	assert.Nil(t, course.CollegeID)

	stored, err := repos.StudentRepository.GetByID(ctx, student.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.CollegeID)
	require.NotNil(t, stored.CourseID)
	assert.Equal(t, courseID, *stored.CourseID)

	_, err = repos.CollegeRepository.GetByID(ctx, collegeID)
	assert.ErrorIs(t, err, apperrors.ErrCollegeNotFound)
}

func TestIntegrationCourseDeleteKeepsStudents(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	repos := NewRepositories(pool)

	courseID, err := repos.CourseRepository.Insert(ctx, &models.Course{Name: "Nursing", Code: "BSN"})
	require.NoError(t, err)
	student := &models.Student{StudentID: "2021-0002", FirstName: "Maria", LastName: "Santos", Gender: "Female", Year: 3, CourseID: &courseID}
	_, err = repos.StudentRepository.Insert(ctx, student)
	require.NoError(t, err)
	assert.Nil(t, student.CollegeID)

	require.NoError(t, repos.CourseRepository.Delete(ctx, courseID))

	stored, err := repos.StudentRepository.GetByID(ctx, student.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.CourseID)

	items, err := repos.StudentRepository.ListWithCourses(ctx, nil, nil)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, " ()", items[0].CourseCollege)
}

func TestIntegrationPaginationCoversEveryRowOnce(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	repo := NewCollegeRepository(pool)

	for i := 1; i <= 23; i++ {
		_, err := repo.Insert(ctx, &models.College{Name: fmt.Sprintf("College %02d", i), Code: fmt.Sprintf("C%02d", i)})
		require.NoError(t, err)
	}

	seen := map[int64]bool{}
	for offset := 0; offset < 30; offset += 10 {
		page, err := repo.ListPaginated(ctx, offset, 10)
		require.NoError(t, err)
		for _, c := range page {
			assert.False(t, seen[c.ID], "college %d listed twice", c.ID)
			seen[c.ID] = true
		}
	}
	assert.Len(t, seen, 23)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 23, n)
}

func TestIntegrationSearchIsCaseInsensitiveAndLiteral(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	repo := NewCollegeRepository(pool)

	_, err := repo.Insert(ctx, &models.College{Name: "College of Engineering", Code: "COE"})
	require.NoError(t, err)
	_, err = repo.Insert(ctx, &models.College{Name: "College of 100% Arts", Code: "CAS"})
	require.NoError(t, err)

	found, err := repo.Search(ctx, "ENGINEER")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "COE", found[0].Code)

	found, err = repo.Search(ctx, "%")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "CAS", found[0].Code)
}

func TestIntegrationUniqueness(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	repos := NewRepositories(pool)

	collegeID, err := repos.CollegeRepository.Insert(ctx, &models.College{Name: "College of Engineering", Code: "COE"})
	require.NoError(t, err)

	// colleges conflict on either field
	unique, err := repos.CollegeRepository.IsUnique(ctx, "Other", "COE", nil)
	require.NoError(t, err)
	assert.False(t, unique)
	unique, err = repos.CollegeRepository.IsUnique(ctx, "College of Engineering", "COE", &collegeID)
	require.NoError(t, err)
	assert.True(t, unique)

	_, err = repos.CourseRepository.Insert(ctx, &models.Course{Name: "Computer Science", Code: "BSCS", CollegeID: &collegeID})
	require.NoError(t, err)

	// courses conflict only on all three fields
	unique, err = repos.CourseRepository.IsUnique(ctx, "Computer Science", "BSCS", nil, nil)
	require.NoError(t, err)
	assert.True(t, unique)
	unique, err = repos.CourseRepository.IsUnique(ctx, "Computer Science", "BSCS", &collegeID, nil)
	require.NoError(t, err)
	assert.False(t, unique)

	_, err = repos.CourseRepository.Insert(ctx, &models.Course{Name: "Computer Science", Code: "BSCS", CollegeID: &collegeID})
	assert.ErrorIs(t, err, apperrors.ErrCourseAlreadyExists)

	_, err = repos.CollegeRepository.Insert(ctx, &models.College{Name: "Another", Code: "COE"})
	assert.ErrorIs(t, err, apperrors.ErrCollegeAlreadyExists)
}
