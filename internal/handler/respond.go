// Package handler implements the HTTP endpoints. Handlers stay thin: bind
// the request, call the domain, map the result. Every failure goes through
// writeError so the error envelope and status mapping are uniform.
package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/loan-ledger/internal/apperr"
)

// writeError renders a classified error. Unclassified faults are logged
// with their full detail and reported as a generic 500.
func writeError(c echo.Context, err error) error {
	if apperr.KindOf(err) == apperr.KindInternal {
		c.Logger().Error(err)
	}
	return c.JSON(apperr.Status(err), apperr.BodyOf(err))
}

func invalidBody(c echo.Context) error {
	return writeError(c, apperr.New(apperr.KindInvalidInput, "Invalid request body"))
}
