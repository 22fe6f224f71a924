package apperrors

import "errors"

// Error categories. Every error returned by the service layer wraps one of these.
var (
	ErrValidationFailed   = errors.New("validation failed")
	ErrUniquenessConflict = errors.New("uniqueness conflict")
	ErrResourceNotFound   = errors.New("resource not found")
	ErrStorage            = errors.New("storage error")
	ErrUpload             = errors.New("upload failed")
	ErrBadRequest         = errors.New("bad request")
)

// College errors
var (
	ErrCollegeNotFound      = NewCustomError(ErrResourceNotFound, "College not found.")
	ErrCollegeAlreadyExists = NewCustomError(ErrUniquenessConflict, "College with the same name or code already exists.")
)

// Course errors
var (
	ErrCourseNotFound      = NewCustomError(ErrResourceNotFound, "Course not found.")
	ErrCourseAlreadyExists = NewCustomError(ErrUniquenessConflict, "Course with the same name or code already exists for this college.")
)

// Student errors
var (
	ErrStudentNotFound      = NewCustomError(ErrResourceNotFound, "Student not found.")
	ErrStudentAlreadyExists = NewCustomError(ErrUniquenessConflict, "Student with the same ID already exists.")
)

// NewValidationError creates a validation error carrying a user-facing message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// NewStorageError wraps a persistence failure with a user-facing message
// such as "Error updating college."
func NewStorageError(message string, cause error) error {
	return &CustomError{
		Err:     ErrStorage,
		Message: message,
		Cause:   cause,
	}
}

// NewUploadError wraps a failure reported by the image host
func NewUploadError(cause error) error {
	return &CustomError{
		Err:     ErrUpload,
		Message: "Photo upload failed.",
		Cause:   cause,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// Is returns whether err matches target or any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// MessageOf returns the user-facing message of the first CustomError in err's chain,
// or fallback when there is none.
func MessageOf(err error, fallback string) string {
	var ce *CustomError
	if errors.As(err, &ce) && ce.Message != "" {
		return ce.Message
	}
	return fallback
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err       error
	Message   string
	StatusMsg string
	Code      string
	Cause     error
	Details   map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		if e.Cause != nil {
			return e.Message + ": " + e.Cause.Error()
		}
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap exposes both the category and the underlying cause to errors.Is / errors.As
func (e *CustomError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}
