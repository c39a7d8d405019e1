package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health lets load balancers and monitoring verify the service is up.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
