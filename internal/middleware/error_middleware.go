package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/upac/carnet-backend/internal/app/models/dto"
	"github.com/upac/carnet-backend/internal/pkg/apperrors"
)

// HandleAPIError maps application errors to HTTP responses. Controllers call
// this instead of building error responses themselves so every endpoint
// speaks the same error dialect. The sentinel wrapped in the error decides
// the status and code; a CustomError in the chain contributes its message.
func HandleAPIError(c *gin.Context, err error) {
	detail := func(code dto.ErrorCode, fallback string) *dto.ErrorDetail {
		var customErr *apperrors.CustomError
		if errors.As(err, &customErr) && customErr.Message != "" {
			return dto.NewErrorDetail(code, customErr.Message)
		}
		return dto.NewErrorDetail(code, fallback)
	}

	switch {
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(401, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid credentials"),
		})
	case errors.Is(err, apperrors.ErrCardInactive):
		// Deliberately distinct from bad credentials: the portal tells the
		// student to visit the office instead of retrying the password.
		c.JSON(401, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeCardInactive, "Card is inactive"),
		})
	case errors.Is(err, apperrors.ErrSessionExpired), errors.Is(err, apperrors.ErrTokenExpired):
		c.JSON(401, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Session expired"),
		})
	case errors.Is(err, apperrors.ErrSessionNotFound), errors.Is(err, apperrors.ErrSessionRevoked),
		errors.Is(err, apperrors.ErrTokenInvalid):
		c.JSON(401, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid session"),
		})
	case errors.Is(err, apperrors.ErrPermissionDenied):
		c.JSON(403, dto.APIResponse{
			Error: detail(dto.ErrorCodeForbidden, "Permission denied"),
		})
	case errors.Is(err, apperrors.ErrStudentNotFound):
		c.JSON(404, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Student not found"),
		})
	case errors.Is(err, apperrors.ErrStaffNotFound):
		c.JSON(404, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Staff member not found"),
		})
	case errors.Is(err, apperrors.ErrLoanNotFound):
		c.JSON(404, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Loan not found"),
		})
	case errors.Is(err, apperrors.ErrResourceNotFound):
		c.JSON(404, dto.APIResponse{
			Error: detail(dto.ErrorCodeResourceNotFound, "Resource not found"),
		})
	case errors.Is(err, apperrors.ErrStudentCodeExists):
		c.JSON(409, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Student code already exists"),
		})
	case errors.Is(err, apperrors.ErrStaffEmailExists):
		c.JSON(409, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Staff email already exists"),
		})
	case errors.Is(err, apperrors.ErrLoanAlreadyReturned):
		c.JSON(409, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceConflict, "Loan has already been returned"),
		})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(409, dto.APIResponse{
			Error: detail(dto.ErrorCodeResourceConflict, "Conflict"),
		})
	case errors.Is(err, apperrors.ErrInvalidStudentCode):
		c.JSON(400, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Student code must be 6 to 12 digits"),
		})
	case errors.Is(err, apperrors.ErrInvalidNationalID):
		c.JSON(400, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "National id must be 8 to 10 digits"),
		})
	case errors.Is(err, apperrors.ErrExpiryDateUnparseable):
		c.JSON(400, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Expiry date is not a recognized date"),
		})
	case errors.Is(err, apperrors.ErrExpiryDateInPast):
		c.JSON(400, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Expiry date is in the past"),
		})
	case errors.Is(err, apperrors.ErrNonInstitutional):
		c.JSON(400, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidEmail, "Email must be an institutional address"),
		})
	case errors.Is(err, apperrors.ErrInvalidLoanCategory):
		c.JSON(400, dto.APIResponse{
			Error: detail(dto.ErrorCodeValidationFailed, "Loan category must be library or laboratory"),
		})
	case errors.Is(err, apperrors.ErrItemTypeRequired):
		c.JSON(400, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Loan item type is required"),
		})
	case errors.Is(err, apperrors.ErrItemNotInCatalog):
		c.JSON(400, dto.APIResponse{
			Error: detail(dto.ErrorCodeValidationFailed, "Item is not part of the library catalog"),
		})
	case errors.Is(err, apperrors.ErrInvalidPassword):
		c.JSON(400, dto.APIResponse{
			Error: detail(dto.ErrorCodeValidationFailed, "Password does not meet the minimum requirements"),
		})
	case errors.Is(err, apperrors.ErrValidationFailed), errors.Is(err, apperrors.ErrBadRequest):
		c.JSON(400, dto.APIResponse{
			Error: detail(dto.ErrorCodeValidationFailed, "Validation failed"),
		})
	default:
		c.JSON(500, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error"),
		})
	}
}
