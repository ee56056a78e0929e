package handlers

import (
	"errors"
	"unicode"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/company-task-api/internal/errors"
	"github.com/yukikurage/company-task-api/internal/logging"
	"github.com/yukikurage/company-task-api/internal/services"
)

// respondError maps service errors onto the API error envelope.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrInactiveUser):
		apierrors.Unauthorized(c, "Incorrect username or password")
	case errors.Is(err, services.ErrTaskAccessDenied):
		apierrors.AccessDenied(c, "")
	case errors.Is(err, services.ErrCompanyNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, message(err))
	case errors.Is(err, services.ErrInvalidSortField),
		errors.Is(err, services.ErrPasswordTooShort):
		apierrors.InvalidInput(c, message(err))
	case errors.Is(err, services.ErrCompanyNameTaken),
		errors.Is(err, services.ErrUserExists),
		errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrRestrictedField),
		errors.Is(err, services.ErrTaskCreateForbidden),
		errors.Is(err, services.ErrTaskUpdateForbidden),
		errors.Is(err, services.ErrTaskReassign),
		errors.Is(err, services.ErrTaskSearchForbidden),
		errors.Is(err, services.ErrInProgressLimit):
		apierrors.BusinessRuleViolation(c, message(err))
	default:
		logging.FromContext(c.Request.Context()).Error("request failed", "error", err)
		_ = c.Error(err)
		apierrors.InternalError(c, "")
	}
}

// message turns a sentinel error text into a sentence-case API message.
func message(err error) string {
	text := err.Error()
	r, size := utf8.DecodeRuneInString(text)
	if r == utf8.RuneError {
		return text
	}
	return string(unicode.ToUpper(r)) + text[size:]
}
