package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/upac/carnet-backend/internal/pkg/apperrors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func handle(err error) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	HandleAPIError(c, err)
	return w
}

func TestHandleAPIErrorUsesCustomMessage(t *testing.T) {
	w := handle(apperrors.NewCustomError(apperrors.ErrItemNotInCatalog,
		`"Microscopio" is not part of the library catalog`))

	// The sentinel still decides status and code, the message comes from
	// the wrapping error
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VAL_001")
	assert.Contains(t, w.Body.String(), "Microscopio")
}

func TestHandleAPIErrorForbiddenMessage(t *testing.T) {
	w := handle(apperrors.NewForbiddenError("You may only access your own record"))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "You may only access your own record")
}

func TestHandleAPIErrorFallsBackToCanonicalMessage(t *testing.T) {
	w := handle(apperrors.ErrLoanNotFound)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Loan not found")
}

func TestHandleAPIErrorUnknownErrorIsInternal(t *testing.T) {
	w := handle(assert.AnError)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
