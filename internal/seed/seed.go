package seed

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/yigit/studentrecords/internal/app/models"
	"github.com/yigit/studentrecords/internal/pkg/apperrors"
)

// CollegeWriter is the part of the college repository the seeder needs
type CollegeWriter interface {
	Insert(ctx context.Context, college *models.College) (int64, error)
	ListAll(ctx context.Context) ([]*models.College, error)
}

// CourseWriter is the part of the course repository the seeder needs
type CourseWriter interface {
	Insert(ctx context.Context, course *models.Course) (int64, error)
}

type defaultCollege struct {
	college models.College
	courses []models.Course
}

var defaults = []defaultCollege{
	{
		college: models.College{Name: "College of Engineering", Code: "COE"},
		courses: []models.Course{
			{Name: "Bachelor of Science in Civil Engineering", Code: "BSCE"},
			{Name: "Bachelor of Science in Computer Engineering", Code: "BSCpE"},
		},
	},
	{
		college: models.College{Name: "College of Science and Mathematics", Code: "CSM"},
		courses: []models.Course{
			{Name: "Bachelor of Science in Mathematics", Code: "BSMath"},
			{Name: "Bachelor of Science in Physics", Code: "BSPhys"},
		},
	},
	{
		college: models.College{Name: "College of Computer Studies", Code: "CCS"},
		courses: []models.Course{
			{Name: "Bachelor of Science in Computer Science", Code: "BSCS"},
			{Name: "Bachelor of Science in Information Technology", Code: "BSIT"},
		},
	},
}

// CreateDefaultData creates the demo colleges and their courses if they don't exist.
// Existing rows are left untouched; other failures are collected and returned together.
func CreateDefaultData(ctx context.Context, colleges CollegeWriter, courses CourseWriter, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data (Colleges/Courses)...")
	var finalErr error

	var existing []*models.College
	for _, d := range defaults {
		college := d.college
		collegeID, err := colleges.Insert(ctx, &college)
		if errors.Is(err, apperrors.ErrCollegeAlreadyExists) {
			if existing == nil {
				existing, err = colleges.ListAll(ctx)
				if err != nil {
					lgr.Error().Err(err).Msg("Error listing existing colleges")
					finalErr = errors.Join(finalErr, err)
					continue
				}
			}
			collegeID = findCollege(existing, college.Code)
		} else if err != nil {
			lgr.Error().Err(err).Str("collegeCode", college.Code).Msg("Error creating college")
			finalErr = errors.Join(finalErr, err)
			continue
		}

		if collegeID == 0 {
			lgr.Warn().Str("collegeCode", college.Code).Msg("College exists under a different code, skipping its courses")
			continue
		}

		for _, c := range d.courses {
			course := c
			course.CollegeID = &collegeID
			if _, err := courses.Insert(ctx, &course); err != nil && !errors.Is(err, apperrors.ErrCourseAlreadyExists) {
				lgr.Error().Err(err).Str("courseCode", course.Code).Msg("Error creating course")
				finalErr = errors.Join(finalErr, err)
			}
		}
	}

	lgr.Info().Msg("Default data check/creation finished.")
	return finalErr
}

func findCollege(colleges []*models.College, code string) int64 {
	for _, c := range colleges {
		if c.Code == code {
			return c.ID
		}
	}
	return 0
}
