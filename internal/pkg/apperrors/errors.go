package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrCardInactive       = errors.New("card is inactive")
	ErrSessionExpired     = errors.New("session expired")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionRevoked     = errors.New("session revoked")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidEmail     = errors.New("invalid email")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrBadRequest       = errors.New("bad request")
)

// Student errors
var (
	ErrStudentNotFound       = errors.New("student not found")
	ErrStudentCodeExists     = errors.New("student code already exists")
	ErrInvalidStudentCode    = errors.New("invalid student code format")
	ErrInvalidNationalID     = errors.New("invalid national id format")
	ErrExpiryDateUnparseable = errors.New("expiry date is not a recognized date")
	ErrExpiryDateInPast      = errors.New("expiry date is in the past")
)

// Staff errors
var (
	ErrStaffNotFound    = errors.New("staff member not found")
	ErrStaffEmailExists = errors.New("staff email already exists")
	ErrNonInstitutional = errors.New("email is not an institutional address")
)

// Loan errors
var (
	ErrLoanNotFound        = errors.New("loan not found")
	ErrLoanAlreadyReturned = errors.New("loan has already been returned")
	ErrInvalidLoanCategory = errors.New("invalid loan category")
	ErrItemTypeRequired    = errors.New("loan item type is required")
	ErrItemNotInCatalog    = errors.New("item is not part of the library catalog")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return NewCustomError(ErrResourceNotFound, message)
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return NewCustomError(ErrPermissionDenied, message)
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return NewCustomError(ErrBadRequest, message)
}

// Is returns whether target matches any of the errors in errList
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

// CustomError pairs a sentinel with a caller-supplied message. The sentinel
// keeps errors.Is matching intact, the message reaches the API response.
type CustomError struct {
	Err     error
	Message string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}
