package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/loan-ledger/internal/auth"
)

// AuthHandler bundles dependencies for the login endpoint.
type AuthHandler struct {
	Creds  *auth.Credentials
	Tokens *auth.Tokens
}

func NewAuthHandler(creds *auth.Credentials, tokens *auth.Tokens) *AuthHandler {
	return &AuthHandler{Creds: creds, Tokens: tokens}
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies credentials and returns a fresh session token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	userID, err := h.Creds.Verify(ctx, req.Email, req.Password)
	if err != nil {
		return writeError(c, err)
	}
	token, err := h.Tokens.Issue(userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"token": token})
}
