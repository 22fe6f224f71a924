package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/studentrecords/internal/app/models"
	"github.com/yigit/studentrecords/internal/db"
	"github.com/yigit/studentrecords/internal/pkg/apperrors"
	"github.com/yigit/studentrecords/internal/pkg/dberrors"
	"github.com/yigit/studentrecords/internal/pkg/helpers"
	"github.com/yigit/studentrecords/internal/pkg/logger"
)

const (
	insertCourseSQL = `INSERT INTO course (course_name, course_code, college_id) VALUES ($1, $2, $3) RETURNING id`
	updateCourseSQL = `UPDATE course SET course_name = $1, course_code = $2, college_id = $3 WHERE id = $4`
	deleteCourseSQL = `DELETE FROM course WHERE id = $1`

	detachStudentsFromCourseSQL = `UPDATE student SET course_id = NULL WHERE course_id = $1`

	// course rows joined with the college code only
	selectCourseSQL = `SELECT course.id, course.course_name, course.course_code, course.college_id, college.college_code
FROM course LEFT JOIN college ON course.college_id = college.id`

	// course rows joined with the college name and code
	selectCourseWithCollegeSQL = `SELECT course.id, course.course_name, course.course_code, course.college_id, college.college_name, college.college_code
FROM course LEFT JOIN college ON course.college_id = college.id`

	courseSearchFilter = ` WHERE course.course_name ILIKE $1 ESCAPE '\' OR course.course_code ILIKE $1 ESCAPE '\' OR college.college_code ILIKE $1 ESCAPE '\'`

	getCourseByIDSQL              = selectCourseWithCollegeSQL + ` WHERE course.id = $1`
	listCoursesSQL                = selectCourseSQL + ` ORDER BY course.course_name ASC`
	listCoursesPageSQL            = selectCourseSQL + ` ORDER BY course.course_name ASC LIMIT $1 OFFSET $2`
	listCoursesWithCollegeSQL     = selectCourseWithCollegeSQL + ` ORDER BY course.course_name ASC`
	listCoursesWithCollegePageSQL = selectCourseWithCollegeSQL + ` ORDER BY course.id DESC LIMIT $1 OFFSET $2`
	searchCoursesSQL              = selectCourseSQL + courseSearchFilter + ` ORDER BY course.course_name ASC`
	searchCoursesWithCollegeSQL   = selectCourseWithCollegeSQL + courseSearchFilter + ` ORDER BY course.id DESC`
	searchCoursesPageSQL          = selectCourseSQL + courseSearchFilter + ` ORDER BY course.course_name ASC LIMIT $2 OFFSET $3`
	countCoursesSQL               = `SELECT COUNT(*) FROM course`
	countCourseSearchSQL          = `SELECT COUNT(*) FROM course LEFT JOIN college ON course.college_id = college.id` + courseSearchFilter
	getCourseCollegeIDSQL         = `SELECT college_id FROM course WHERE id = $1`
)

// CourseRepository handles course database operations
type CourseRepository struct {
	db db.Gateway
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(gw db.Gateway) *CourseRepository {
	return &CourseRepository{
		db: gw,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanCourse(row pgx.CollectableRow) (*models.CourseWithCollege, error) {
	c := &models.CourseWithCollege{}
	err := row.Scan(&c.ID, &c.Name, &c.Code, &c.CollegeID, &c.CollegeCode)
	return c, err
}

func scanCourseWithCollege(row pgx.CollectableRow) (*models.CourseWithCollege, error) {
	c := &models.CourseWithCollege{}
	err := row.Scan(&c.ID, &c.Name, &c.Code, &c.CollegeID, &c.CollegeName, &c.CollegeCode)
	return c, err
}

// Insert stores a new course and returns its generated id
func (r *CourseRepository) Insert(ctx context.Context, course *models.Course) (int64, error) {
	id, err := db.QueryScalar[int64](ctx, r.db, insertCourseSQL, course.Name, course.Code, course.CollegeID)
	if err != nil {
		return 0, r.writeError(err, "inserting", course)
	}
	return id, nil
}

// Update replaces every field of an existing course
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	n, err := db.Execute(ctx, r.db, updateCourseSQL, course.Name, course.Code, course.CollegeID, course.ID)
	if err != nil {
		return r.writeError(err, "updating", course)
	}
	if n == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

func (r *CourseRepository) writeError(err error, verb string, course *models.Course) error {
	switch {
	case dberrors.IsUniqueViolation(err):
		return apperrors.ErrCourseAlreadyExists
	case dberrors.IsForeignKeyViolation(err):
		return apperrors.ErrCollegeNotFound
	}
	logger.Error().Err(err).Int64("courseID", course.ID).Str("courseCode", course.Code).Msgf("Error %s course", verb)
	return fmt.Errorf("error %s course: %w", verb, err)
}

// Delete removes a course after detaching its students, in one transaction.
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, detachStudentsFromCourseSQL, id); err != nil {
			return fmt.Errorf("error detaching students: %w", err)
		}
		n, err := db.Execute(ctx, tx, deleteCourseSQL, id)
		if err != nil {
			return fmt.Errorf("error deleting course row: %w", err)
		}
		if n == 0 {
			return apperrors.ErrCourseNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrCourseNotFound) {
			return err
		}
		logger.Error().Err(err).Int64("courseID", id).Msg("Error deleting course")
		return fmt.Errorf("error deleting course: %w", err)
	}
	return nil
}

// GetByID retrieves a course joined with its college
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.CourseWithCollege, error) {
	rows, err := r.db.Query(ctx, getCourseByIDSQL, id)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", id).Msg("Error getting course")
		return nil, fmt.Errorf("error getting course by ID: %w", err)
	}
	course, err := pgx.CollectExactlyOneRow(rows, scanCourseWithCollege)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Int64("courseID", id).Msg("Error scanning course")
		return nil, fmt.Errorf("error getting course by ID: %w", err)
	}
	return course, nil
}

// CollegeIDOf returns the college a course belongs to (nil when detached).
func (r *CourseRepository) CollegeIDOf(ctx context.Context, courseID int64) (*int64, error) {
	var collegeID *int64
	err := r.db.QueryRow(ctx, getCourseCollegeIDSQL, courseID).Scan(&collegeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Int64("courseID", courseID).Msg("Error resolving course college")
		return nil, fmt.Errorf("error resolving course college: %w", err)
	}
	return collegeID, nil
}

func (r *CourseRepository) list(ctx context.Context, scan pgx.RowToFunc[*models.CourseWithCollege], op, sql string, args ...any) ([]*models.CourseWithCollege, error) {
	courses, err := db.QueryAll(ctx, r.db, scan, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("op", op).Msg("Error querying courses")
		return nil, fmt.Errorf("error %s: %w", op, err)
	}
	return courses, nil
}

// ListAll returns every course with its college code, ordered by name
func (r *CourseRepository) ListAll(ctx context.Context) ([]*models.CourseWithCollege, error) {
	return r.list(ctx, scanCourse, "listing courses", listCoursesSQL)
}

// ListPaginated returns one page of courses with their college code, ordered by name
func (r *CourseRepository) ListPaginated(ctx context.Context, offset, limit int) ([]*models.CourseWithCollege, error) {
	return r.list(ctx, scanCourse, "listing courses", listCoursesPageSQL, limit, offset)
}

// ListWithCollege returns every course with its college name and code, ordered by name
func (r *CourseRepository) ListWithCollege(ctx context.Context) ([]*models.CourseWithCollege, error) {
	return r.list(ctx, scanCourseWithCollege, "listing courses with college", listCoursesWithCollegeSQL)
}

// ListWithCollegePaginated returns one page of courses with their college, newest first
func (r *CourseRepository) ListWithCollegePaginated(ctx context.Context, offset, limit int) ([]*models.CourseWithCollege, error) {
	return r.list(ctx, scanCourseWithCollege, "listing courses with college", listCoursesWithCollegePageSQL, limit, offset)
}

// Search matches the term against course name, course code and college code
func (r *CourseRepository) Search(ctx context.Context, term string) ([]*models.CourseWithCollege, error) {
	return r.list(ctx, scanCourse, "searching courses", searchCoursesSQL, helpers.ContainsPattern(term))
}

// SearchWithCollege is Search with the college name included, newest first
func (r *CourseRepository) SearchWithCollege(ctx context.Context, term string) ([]*models.CourseWithCollege, error) {
	return r.list(ctx, scanCourseWithCollege, "searching courses with college", searchCoursesWithCollegeSQL, helpers.ContainsPattern(term))
}

// SearchPaginated returns one page of Search results
func (r *CourseRepository) SearchPaginated(ctx context.Context, term string, offset, limit int) ([]*models.CourseWithCollege, error) {
	return r.list(ctx, scanCourse, "searching courses", searchCoursesPageSQL, helpers.ContainsPattern(term), limit, offset)
}

// Count returns the number of courses
func (r *CourseRepository) Count(ctx context.Context) (int64, error) {
	n, err := db.QueryScalar[int64](ctx, r.db, countCoursesSQL)
	if err != nil {
		logger.Error().Err(err).Msg("Error counting courses")
		return 0, fmt.Errorf("error counting courses: %w", err)
	}
	return n, nil
}

// ListColleges returns the colleges a course can be attached to
func (r *CourseRepository) ListColleges(ctx context.Context) ([]*models.CollegeOption, error) {
	options, err := db.QueryAll(ctx, r.db, scanCollegeOption, listCollegeOptionsSQL)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing colleges for courses")
		return nil, fmt.Errorf("error listing colleges: %w", err)
	}
	return options, nil
}

// CountSearch counts the rows SearchPaginated pages over
func (r *CourseRepository) CountSearch(ctx context.Context, term string) (int64, error) {
	n, err := db.QueryScalar[int64](ctx, r.db, countCourseSearchSQL, helpers.ContainsPattern(term))
	if err != nil {
		logger.Error().Err(err).Str("term", term).Msg("Error counting course search")
		return 0, fmt.Errorf("error counting course search: %w", err)
	}
	return n, nil
}

// IsUnique reports whether no course other than excludeID has the same name, code and college.
// A missing college matches only other courses without a college.
func (r *CourseRepository) IsUnique(ctx context.Context, name, code string, collegeID, excludeID *int64) (bool, error) {
	q := r.sb.Select("1").
		From("course").
		Where(squirrel.Eq{"course_name": name, "course_code": code}).
		Where("college_id IS NOT DISTINCT FROM ?", collegeID)
	if excludeID != nil {
		q = q.Where(squirrel.NotEq{"id": *excludeID})
	}

	sql, args, err := q.Prefix("SELECT EXISTS (").Suffix(")").ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build course uniqueness query: %w", err)
	}

	exists, err := db.QueryScalar[bool](ctx, r.db, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("name", name).Str("code", code).Msg("Error checking course uniqueness")
		return false, fmt.Errorf("error checking course uniqueness: %w", err)
	}
	return !exists, nil
}
