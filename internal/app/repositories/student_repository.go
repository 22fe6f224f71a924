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

// college_id is always taken from the referenced course, whatever the caller holds.
const (
	insertStudentSQL = `INSERT INTO student (student_id, first_name, last_name, gender, year, course_id, college_id, cloudinary_url)
VALUES ($1, $2, $3, $4, $5, $6, (SELECT college_id FROM course WHERE id = $6), $7)
RETURNING id, college_id`

	updateStudentSQL = `UPDATE student SET student_id = $1, first_name = $2, last_name = $3, gender = $4, year = $5,
course_id = $6, college_id = (SELECT college_id FROM course WHERE id = $6), cloudinary_url = $7
WHERE id = $8
RETURNING college_id`

	deleteStudentSQL = `DELETE FROM student WHERE id = $1`

	selectStudentSQL  = `SELECT id, student_id, first_name, last_name, gender, year, course_id, college_id, cloudinary_url FROM student`
	getStudentByIDSQL = selectStudentSQL + ` WHERE id = $1`
	listStudentsSQL   = selectStudentSQL + ` ORDER BY id DESC`
	countStudentsSQL  = `SELECT COUNT(*) FROM student`

	listCourseOptsSQL = `SELECT course.id, course.course_code, course.college_id, college.college_name
FROM course LEFT JOIN college ON course.college_id = college.id
ORDER BY course.course_code ASC`

	selectStudentListSQL = `SELECT student.id, student.student_id, student.first_name, student.last_name, student.gender, student.year,
student.course_id, student.college_id, student.cloudinary_url, course.course_code, college.college_name,
COALESCE(course.course_code, '') || ' (' || COALESCE(college.college_name, '') || ')' AS course_college
FROM student
LEFT JOIN course ON student.course_id = course.id
LEFT JOIN college ON student.college_id = college.id`

	searchStudentsSQL = selectStudentListSQL + `
WHERE student.student_id ILIKE $1 ESCAPE '\'
OR student.first_name ILIKE $1 ESCAPE '\'
OR student.last_name ILIKE $1 ESCAPE '\'
OR student.gender ILIKE $1 ESCAPE '\'
OR CAST(student.year AS TEXT) ILIKE $1 ESCAPE '\'
OR course.course_code ILIKE $1 ESCAPE '\'
OR college.college_name ILIKE $1 ESCAPE '\'
ORDER BY student.id DESC`
)

// StudentRepository handles student database operations
type StudentRepository struct {
	db db.Gateway
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(gw db.Gateway) *StudentRepository {
	return &StudentRepository{
		db: gw,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanStudent(row pgx.CollectableRow) (*models.Student, error) {
	s := &models.Student{}
	err := row.Scan(&s.ID, &s.StudentID, &s.FirstName, &s.LastName, &s.Gender, &s.Year,
		&s.CourseID, &s.CollegeID, &s.PhotoURL)
	return s, err
}

func scanStudentListItem(row pgx.CollectableRow) (*models.StudentListItem, error) {
	s := &models.StudentListItem{}
	err := row.Scan(&s.ID, &s.StudentID, &s.FirstName, &s.LastName, &s.Gender, &s.Year,
		&s.CourseID, &s.CollegeID, &s.PhotoURL, &s.CourseCode, &s.CollegeName, &s.CourseCollege)
	return s, err
}

func scanCourseOption(row pgx.CollectableRow) (*models.CourseOption, error) {
	c := &models.CourseOption{}
	err := row.Scan(&c.ID, &c.Code, &c.CollegeID, &c.CollegeName)
	return c, err
}

// Insert stores a new student and returns its id. student.CollegeID is overwritten
// with the college derived from the course.
func (r *StudentRepository) Insert(ctx context.Context, student *models.Student) (int64, error) {
	var id int64
	var collegeID *int64
	err := r.db.QueryRow(ctx, insertStudentSQL,
		student.StudentID, student.FirstName, student.LastName, student.Gender, student.Year,
		student.CourseID, student.PhotoURL,
	).Scan(&id, &collegeID)
	if err != nil {
		return 0, r.writeError(err, "inserting", student)
	}
	student.ID = id
	student.CollegeID = collegeID
	return id, nil
}

// Update replaces every field of an existing student, re-deriving the college.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	var collegeID *int64
	err := r.db.QueryRow(ctx, updateStudentSQL,
		student.StudentID, student.FirstName, student.LastName, student.Gender, student.Year,
		student.CourseID, student.PhotoURL, student.ID,
	).Scan(&collegeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrStudentNotFound
		}
		return r.writeError(err, "updating", student)
	}
	student.CollegeID = collegeID
	return nil
}

func (r *StudentRepository) writeError(err error, verb string, student *models.Student) error {
	switch {
	case dberrors.IsUniqueViolation(err):
		return apperrors.ErrStudentAlreadyExists
	case dberrors.IsForeignKeyViolation(err):
		return apperrors.ErrCourseNotFound
	case dberrors.IsCheckViolation(err):
		return apperrors.NewValidationError("All fields are required.")
	}
	logger.Error().Err(err).Int64("id", student.ID).Str("studentID", student.StudentID).Msgf("Error %s student", verb)
	return fmt.Errorf("error %s student: %w", verb, err)
}

// Delete removes a student
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	n, err := db.Execute(ctx, r.db, deleteStudentSQL, id)
	if err != nil {
		logger.Error().Err(err).Int64("id", id).Msg("Error deleting student")
		return fmt.Errorf("error deleting student: %w", err)
	}
	if n == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// GetByID returns the editable fields of a student
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	rows, err := r.db.Query(ctx, getStudentByIDSQL, id)
	if err != nil {
		logger.Error().Err(err).Int64("id", id).Msg("Error getting student")
		return nil, fmt.Errorf("error getting student by ID: %w", err)
	}
	student, err := pgx.CollectExactlyOneRow(rows, scanStudent)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Int64("id", id).Msg("Error scanning student")
		return nil, fmt.Errorf("error getting student by ID: %w", err)
	}
	return student, nil
}

// ListAll returns every student, newest first
func (r *StudentRepository) ListAll(ctx context.Context) ([]*models.Student, error) {
	students, err := db.QueryAll(ctx, r.db, scanStudent, listStudentsSQL)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing students")
		return nil, fmt.Errorf("error listing students: %w", err)
	}
	return students, nil
}

// ListWithCourses returns students joined with course and college, newest first.
// The result is paginated only when both limit and offset are given.
func (r *StudentRepository) ListWithCourses(ctx context.Context, limit, offset *int) ([]*models.StudentListItem, error) {
	sql := selectStudentListSQL + ` ORDER BY student.id DESC`
	var args []any
	if limit != nil && offset != nil {
		sql += ` LIMIT $1 OFFSET $2`
		args = append(args, *limit, *offset)
	}

	students, err := db.QueryAll(ctx, r.db, scanStudentListItem, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing students with courses")
		return nil, fmt.Errorf("error listing students with courses: %w", err)
	}
	return students, nil
}

// Search matches the term against identifier, names, gender, year, course code and college name.
// Results are not paginated.
func (r *StudentRepository) Search(ctx context.Context, term string) ([]*models.StudentListItem, error) {
	students, err := db.QueryAll(ctx, r.db, scanStudentListItem, searchStudentsSQL, helpers.ContainsPattern(term))
	if err != nil {
		logger.Error().Err(err).Str("term", term).Msg("Error searching students")
		return nil, fmt.Errorf("error searching students: %w", err)
	}
	return students, nil
}

// Count returns the number of students
func (r *StudentRepository) Count(ctx context.Context) (int64, error) {
	n, err := db.QueryScalar[int64](ctx, r.db, countStudentsSQL)
	if err != nil {
		logger.Error().Err(err).Msg("Error counting students")
		return 0, fmt.Errorf("error counting students: %w", err)
	}
	return n, nil
}

// ListCourses returns the selectable courses with their college, ordered by code
func (r *StudentRepository) ListCourses(ctx context.Context) ([]*models.CourseOption, error) {
	courses, err := db.QueryAll(ctx, r.db, scanCourseOption, listCourseOptsSQL)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing course options")
		return nil, fmt.Errorf("error listing course options: %w", err)
	}
	return courses, nil
}

// ListColleges returns the selectable colleges ordered by name
func (r *StudentRepository) ListColleges(ctx context.Context) ([]*models.CollegeOption, error) {
	colleges, err := db.QueryAll(ctx, r.db, scanCollegeOption, listCollegeOptionsSQL)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing college options")
		return nil, fmt.Errorf("error listing college options: %w", err)
	}
	return colleges, nil
}

// IsUnique reports whether no student other than excludeID has all seven identifying fields equal.
func (r *StudentRepository) IsUnique(ctx context.Context, student *models.Student, excludeID *int64) (bool, error) {
	q := r.sb.Select("1").
		From("student").
		Where(squirrel.Eq{
			"student_id": student.StudentID,
			"first_name": student.FirstName,
			"last_name":  student.LastName,
			"gender":     student.Gender,
			"year":       student.Year,
		}).
		Where("course_id IS NOT DISTINCT FROM ?", student.CourseID).
		Where("college_id IS NOT DISTINCT FROM ?", student.CollegeID)
	if excludeID != nil {
		q = q.Where(squirrel.NotEq{"id": *excludeID})
	}

	sql, args, err := q.Prefix("SELECT EXISTS (").Suffix(")").ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build student uniqueness query: %w", err)
	}

	exists, err := db.QueryScalar[bool](ctx, r.db, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("studentID", student.StudentID).Msg("Error checking student uniqueness")
		return false, fmt.Errorf("error checking student uniqueness: %w", err)
	}
	return !exists, nil
}
