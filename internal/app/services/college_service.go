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

// CollegeStore is the persistence needed by CollegeService.
// Implemented by *repositories.CollegeRepository.
type CollegeStore interface {
	Insert(ctx context.Context, college *models.College) (int64, error)
	Update(ctx context.Context, college *models.College) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*models.College, error)
	ListAll(ctx context.Context) ([]*models.College, error)
	ListPaginated(ctx context.Context, offset, limit int) ([]*models.College, error)
	Search(ctx context.Context, term string) ([]*models.College, error)
	Count(ctx context.Context) (int64, error)
	IsUnique(ctx context.Context, name, code string, excludeID *int64) (bool, error)
}

// CollegeService defines the interface for college operations
type CollegeService interface {
	ListColleges(ctx context.Context, page, size int) ([]*models.College, *dto.PaginationInfo, error)
	ListAllColleges(ctx context.Context) ([]*models.College, error)
	SearchColleges(ctx context.Context, query string) ([]*models.College, error)
	GetCollege(ctx context.Context, id int64) (*models.College, error)
	AddCollege(ctx context.Context, college *models.College) (*models.College, error)
	EditCollege(ctx context.Context, college *models.College) (*models.College, error)
	DeleteCollege(ctx context.Context, id int64) error
}

// collegeServiceImpl implements the CollegeService interface
type collegeServiceImpl struct {
	collegeRepo CollegeStore
}

// NewCollegeService creates a new college service
func NewCollegeService(collegeRepo CollegeStore) CollegeService {
	return &collegeServiceImpl{collegeRepo: collegeRepo}
}

// ListColleges returns one page of colleges, newest first
func (s *collegeServiceImpl) ListColleges(ctx context.Context, page, size int) ([]*models.College, *dto.PaginationInfo, error) {
	total, err := s.collegeRepo.Count(ctx)
	if err != nil {
		return nil, nil, storageError(err, "Error loading colleges.")
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	colleges, err := s.collegeRepo.ListPaginated(ctx, offset, limit)
	if err != nil {
		return nil, nil, storageError(err, "Error loading colleges.")
	}

	return colleges, helpers.NewPaginationInfo(total, page, limit), nil
}

// ListAllColleges returns every college ordered by name
func (s *collegeServiceImpl) ListAllColleges(ctx context.Context) ([]*models.College, error) {
	colleges, err := s.collegeRepo.ListAll(ctx)
	if err != nil {
		return nil, storageError(err, "Error loading colleges.")
	}
	return colleges, nil
}

// SearchColleges matches query against college names and codes
func (s *collegeServiceImpl) SearchColleges(ctx context.Context, query string) ([]*models.College, error) {
	colleges, err := s.collegeRepo.Search(ctx, strings.TrimSpace(query))
	if err != nil {
		return nil, storageError(err, "Error searching colleges.")
	}
	return colleges, nil
}

// GetCollege retrieves a college by id
func (s *collegeServiceImpl) GetCollege(ctx context.Context, id int64) (*models.College, error) {
	college, err := s.collegeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storageError(err, "Error loading college.")
	}
	return college, nil
}

func (s *collegeServiceImpl) validate(ctx context.Context, college *models.College, excludeID *int64) error {
	college.Name = strings.TrimSpace(college.Name)
	college.Code = strings.TrimSpace(college.Code)
	if blank(college.Name, college.Code) {
		return apperrors.NewValidationError("Name and code cannot be empty.")
	}

	unique, err := s.collegeRepo.IsUnique(ctx, college.Name, college.Code, excludeID)
	if err != nil {
		return err
	}
	if !unique {
		return apperrors.ErrCollegeAlreadyExists
	}
	return nil
}

// AddCollege validates and stores a new college
func (s *collegeServiceImpl) AddCollege(ctx context.Context, college *models.College) (*models.College, error) {
	if err := s.validate(ctx, college, nil); err != nil {
		return nil, storageError(err, "Error adding college.")
	}

	id, err := s.collegeRepo.Insert(ctx, college)
	if err != nil {
		return nil, storageError(err, "Error adding college.")
	}
	college.ID = id

	logger.Info().Int64("collegeID", id).Str("collegeCode", college.Code).Msg("College added")
	return college, nil
}

// EditCollege replaces the name and code of an existing college
func (s *collegeServiceImpl) EditCollege(ctx context.Context, college *models.College) (*models.College, error) {
	if _, err := s.collegeRepo.GetByID(ctx, college.ID); err != nil {
		return nil, storageError(err, "Error updating college.")
	}

	if err := s.validate(ctx, college, &college.ID); err != nil {
		return nil, storageError(err, "Error updating college.")
	}

	if err := s.collegeRepo.Update(ctx, college); err != nil {
		return nil, storageError(err, "Error updating college.")
	}

	logger.Info().Int64("collegeID", college.ID).Msg("College updated")
	return college, nil
}

// DeleteCollege removes a college; its courses and students are kept with no college
func (s *collegeServiceImpl) DeleteCollege(ctx context.Context, id int64) error {
	if err := s.collegeRepo.Delete(ctx, id); err != nil {
		return storageError(err, "Error deleting college.")
	}

	logger.Info().Int64("collegeID", id).Msg("College deleted")
	return nil
}
