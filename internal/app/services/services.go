package services

import (
	"errors"
	"strings"

	"github.com/yigit/studentrecords/internal/pkg/apperrors"
)

// Services defined in this package:
// - CollegeService: add, edit, delete, list and search colleges
// - CourseService: add, edit, delete, list and search courses
// - StudentService: add, edit, delete, list and search students, including the photo upload

// storageError keeps errors that already carry a user-facing message and wraps
// anything else as a storage failure with message.
func storageError(err error, message string) error {
	if apperrors.Is(err, apperrors.ErrValidationFailed, apperrors.ErrUniquenessConflict, apperrors.ErrResourceNotFound, apperrors.ErrUpload) {
		return err
	}
	return apperrors.NewStorageError(message, err)
}

// isNotFound reports whether err means the requested row does not exist
func isNotFound(err error) bool {
	return errors.Is(err, apperrors.ErrResourceNotFound)
}

func blank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}
