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
	insertCollegeSQL = `INSERT INTO college (college_name, college_code) VALUES ($1, $2) RETURNING id`
	updateCollegeSQL = `UPDATE college SET college_name = $1, college_code = $2 WHERE id = $3`
	deleteCollegeSQL = `DELETE FROM college WHERE id = $1`

	detachStudentsFromCollegeSQL = `UPDATE student SET college_id = NULL WHERE college_id = $1`
	detachCoursesFromCollegeSQL  = `UPDATE course SET college_id = NULL WHERE college_id = $1`

	selectCollegeSQL      = `SELECT id, college_name, college_code FROM college`
	getCollegeByIDSQL     = selectCollegeSQL + ` WHERE id = $1`
	listCollegesSQL       = selectCollegeSQL + ` ORDER BY college_name ASC`
	listCollegesPageSQL   = selectCollegeSQL + ` ORDER BY id DESC LIMIT $1 OFFSET $2`
	searchCollegesSQL     = selectCollegeSQL + ` WHERE college_name ILIKE $1 ESCAPE '\' OR college_code ILIKE $1 ESCAPE '\' ORDER BY college_name ASC`
	countCollegesSQL      = `SELECT COUNT(*) FROM college`
	listCollegeOptionsSQL = `SELECT id, college_name FROM college ORDER BY college_name ASC`
)

// CollegeRepository handles college database operations
type CollegeRepository struct {
	db db.Gateway
	sb squirrel.StatementBuilderType
}

// NewCollegeRepository creates a new CollegeRepository
func NewCollegeRepository(gw db.Gateway) *CollegeRepository {
	return &CollegeRepository{
		db: gw,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanCollege(row pgx.CollectableRow) (*models.College, error) {
	c := &models.College{}
	err := row.Scan(&c.ID, &c.Name, &c.Code)
	return c, err
}

func scanCollegeOption(row pgx.CollectableRow) (*models.CollegeOption, error) {
	c := &models.CollegeOption{}
	err := row.Scan(&c.ID, &c.Name)
	return c, err
}

// Insert stores a new college and returns its generated id
func (r *CollegeRepository) Insert(ctx context.Context, college *models.College) (int64, error) {
	id, err := db.QueryScalar[int64](ctx, r.db, insertCollegeSQL, college.Name, college.Code)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.ErrCollegeAlreadyExists
		}
		logger.Error().Err(err).Str("collegeCode", college.Code).Msg("Error inserting college")
		return 0, fmt.Errorf("error inserting college: %w", err)
	}
	return id, nil
}

// Update replaces the name and code of an existing college
func (r *CollegeRepository) Update(ctx context.Context, college *models.College) error {
	n, err := db.Execute(ctx, r.db, updateCollegeSQL, college.Name, college.Code, college.ID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrCollegeAlreadyExists
		}
		logger.Error().Err(err).Int64("collegeID", college.ID).Msg("Error updating college")
		return fmt.Errorf("error updating college: %w", err)
	}
	if n == 0 {
		return apperrors.ErrCollegeNotFound
	}
	return nil
}

// Delete removes a college after detaching its students and courses.
// The three statements run in one transaction.
func (r *CollegeRepository) Delete(ctx context.Context, id int64) error {
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, detachStudentsFromCollegeSQL, id); err != nil {
			return fmt.Errorf("error detaching students: %w", err)
		}
		if _, err := tx.Exec(ctx, detachCoursesFromCollegeSQL, id); err != nil {
			return fmt.Errorf("error detaching courses: %w", err)
		}
		n, err := db.Execute(ctx, tx, deleteCollegeSQL, id)
		if err != nil {
			return fmt.Errorf("error deleting college row: %w", err)
		}
		if n == 0 {
			return apperrors.ErrCollegeNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrCollegeNotFound) {
			return err
		}
		logger.Error().Err(err).Int64("collegeID", id).Msg("Error deleting college")
		return fmt.Errorf("error deleting college: %w", err)
	}
	return nil
}

// GetByID retrieves a college by id
func (r *CollegeRepository) GetByID(ctx context.Context, id int64) (*models.College, error) {
	c := &models.College{}
	err := r.db.QueryRow(ctx, getCollegeByIDSQL, id).Scan(&c.ID, &c.Name, &c.Code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCollegeNotFound
		}
		logger.Error().Err(err).Int64("collegeID", id).Msg("Error getting college")
		return nil, fmt.Errorf("error getting college by ID: %w", err)
	}
	return c, nil
}

// ListAll returns every college ordered by name
func (r *CollegeRepository) ListAll(ctx context.Context) ([]*models.College, error) {
	colleges, err := db.QueryAll(ctx, r.db, scanCollege, listCollegesSQL)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing colleges")
		return nil, fmt.Errorf("error listing colleges: %w", err)
	}
	return colleges, nil
}

// ListPaginated returns one page of colleges, newest first
func (r *CollegeRepository) ListPaginated(ctx context.Context, offset, limit int) ([]*models.College, error) {
	colleges, err := db.QueryAll(ctx, r.db, scanCollege, listCollegesPageSQL, limit, offset)
	if err != nil {
		logger.Error().Err(err).Int("offset", offset).Int("limit", limit).Msg("Error listing college page")
		return nil, fmt.Errorf("error listing colleges: %w", err)
	}
	return colleges, nil
}

// Search matches the term case-insensitively against name or code
func (r *CollegeRepository) Search(ctx context.Context, term string) ([]*models.College, error) {
	colleges, err := db.QueryAll(ctx, r.db, scanCollege, searchCollegesSQL, helpers.ContainsPattern(term))
	if err != nil {
		logger.Error().Err(err).Str("term", term).Msg("Error searching colleges")
		return nil, fmt.Errorf("error searching colleges: %w", err)
	}
	return colleges, nil
}

// Count returns the number of colleges
func (r *CollegeRepository) Count(ctx context.Context) (int64, error) {
	n, err := db.QueryScalar[int64](ctx, r.db, countCollegesSQL)
	if err != nil {
		logger.Error().Err(err).Msg("Error counting colleges")
		return 0, fmt.Errorf("error counting colleges: %w", err)
	}
	return n, nil
}

// IsUnique reports whether no college other than excludeID uses the name or the code.
func (r *CollegeRepository) IsUnique(ctx context.Context, name, code string, excludeID *int64) (bool, error) {
	q := r.sb.Select("1").
		From("college").
		Where(squirrel.Or{squirrel.Eq{"college_name": name}, squirrel.Eq{"college_code": code}})
	if excludeID != nil {
		q = q.Where(squirrel.NotEq{"id": *excludeID})
	}

	sql, args, err := q.Prefix("SELECT EXISTS (").Suffix(")").ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build college uniqueness query: %w", err)
	}

	exists, err := db.QueryScalar[bool](ctx, r.db, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("name", name).Str("code", code).Msg("Error checking college uniqueness")
		return false, fmt.Errorf("error checking college uniqueness: %w", err)
	}
	return !exists, nil
}
