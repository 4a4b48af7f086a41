package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"blogapp/internal/view"
)

// PageHandler serves the static informational pages.
type PageHandler struct{}

// NewPageHandler creates a new page handler.
func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

// Home godoc
// @Summary Landing page
// @Tags pages
// @Produce html
// @Success 200 {string} string "HTML page"
// @Router / [get]
func (h *PageHandler) Home(c echo.Context) error {
	return c.Render(http.StatusOK, view.PageHome, view.Data{User: currentUser(c)})
}

// Oops godoc
// @Summary Generic failure page
// @Tags pages
// @Produce html
// @Success 200 {string} string "HTML page"
// @Router /oops [get]
func (h *PageHandler) Oops(c echo.Context) error {
	return c.Render(http.StatusOK, view.PageOops, view.Data{User: currentUser(c)})
}
