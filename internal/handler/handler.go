package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"blogapp/internal/auth"
	apperrors "blogapp/internal/errors"
	"blogapp/internal/middleware"
)

// OopsPath is where every failed page request ends up.
const OopsPath = "/oops"

// fail logs err at the route boundary and redirects to the failure page.
func fail(c echo.Context, log *slog.Logger, op string, err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	log.ErrorContext(c.Request().Context(), "request failed",
		"op", op,
		"code", httpErr.Code,
		"err", err,
		"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
	)
	return c.Redirect(http.StatusFound, OopsPath)
}

func currentUser(c echo.Context) *auth.Identity {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		return nil
	}
	return &id
}

func postIDParam(c echo.Context) (uint, error) {
	raw := c.Param("postId")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("post %q: %w", raw, apperrors.ErrNotFound)
	}
	return uint(id), nil
}
