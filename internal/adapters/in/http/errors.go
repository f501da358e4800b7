package http

import (
	"errors"
	"net/http"

	"docurgent/internal/core/application/usecases/commands"
	"docurgent/internal/core/application/usecases/queries"
	"docurgent/internal/core/domain/model/shipment"
	"docurgent/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// errorResponse translates application errors into HTTP status codes.
// Classification runs on sentinel errors via errors.Is, so wrapped causes
// keep working. The check-in path intentionally maps an unknown unique code
// to 400, not 404: that error also carries errs.ErrObjectNotFound, so the
// invalid-code check must run first.
func errorResponse(c echo.Context, err error) error {
	switch {
	case errors.Is(err, shipment.ErrInvalidCode):
		return writeError(c, http.StatusBadRequest, err)
	case errors.Is(err, errs.ErrObjectNotFound):
		return writeError(c, http.StatusNotFound, err)
	case errors.Is(err, commands.ErrNotAuthorized),
		errors.Is(err, queries.ErrNotAuthorized):
		return writeError(c, http.StatusForbidden, err)
	case errors.Is(err, shipment.ErrIllegalTransition),
		errors.Is(err, shipment.ErrTravelerAlreadyAssigned):
		return writeError(c, http.StatusConflict, err)
	case errors.Is(err, commands.ErrCodeIsRequired),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return writeError(c, http.StatusBadRequest, err)
	default:
		return c.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Internal server error",
		})
	}
}

// badRequest reports a malformed request body or parameter.
func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func writeError(c echo.Context, code int, err error) error {
	return c.JSON(code, Error{
		Code:    code,
		Message: err.Error(),
	})
}
