package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"blogapp/internal/auth"
	apperrors "blogapp/internal/errors"
	"blogapp/internal/middleware"
	"blogapp/internal/service"
	"blogapp/internal/view"
)

// AccountHandler handles registration, login and logout.
type AccountHandler struct {
	accountService service.AccountService
	signer         *auth.CookieSigner
	log            *slog.Logger
}

// NewAccountHandler creates a new account handler.
func NewAccountHandler(accountService service.AccountService, signer *auth.CookieSigner, log *slog.Logger) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
		signer:         signer,
		log:            log,
	}
}

// RegisterRequest represents the registration form.
type RegisterRequest struct {
	Username string `form:"username"`
	Email    string `form:"email"`
	Password string `form:"password"`
}

// LoginRequest represents the login form.
type LoginRequest struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

// ValidationRequest represents a username availability check.
type ValidationRequest struct {
	Username string `form:"username" json:"username"`
}

// RegisterForm godoc
// @Summary Registration form
// @Tags accounts
// @Produce html
// @Success 200 {string} string "HTML page"
// @Router /register [get]
func (h *AccountHandler) RegisterForm(c echo.Context) error {
	return c.Render(http.StatusOK, view.PageRegister, view.Data{User: currentUser(c)})
}

// Register godoc
// @Summary Create an account
// @Tags accounts
// @Accept x-www-form-urlencoded
// @Param username formData string true "Username (2-150 characters)"
// @Param email formData string true "Email"
// @Param password formData string true "Password (at least 8 characters)"
// @Success 302 "Redirect to /login, or /oops on failure"
// @Router /register [post]
func (h *AccountHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, h.log, "register", err)
	}

	user, err := h.accountService.Register(c.Request().Context(), req.Username, req.Email, req.Password)
	if err != nil {
		return fail(c, h.log, "register", err)
	}

	h.log.InfoContext(c.Request().Context(), "user registered", "user_id", user.ID, "username", user.Username)
	return c.Redirect(http.StatusFound, "/login")
}

// Validation godoc
// @Summary Check whether a username is still free
// @Tags accounts
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "Username"
// @Success 200 {boolean} boolean "true when available"
// @Failure 500 {object} errors.ErrorResponse
// @Router /validation [post]
func (h *AccountHandler) Validation(c echo.Context) error {
	var req ValidationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}

	available, err := h.accountService.UsernameAvailable(c.Request().Context(), req.Username)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, available)
}

// LoginForm godoc
// @Summary Login form
// @Tags accounts
// @Produce html
// @Success 200 {string} string "HTML page"
// @Router /login [get]
func (h *AccountHandler) LoginForm(c echo.Context) error {
	return c.Render(http.StatusOK, view.PageLogin, view.Data{User: currentUser(c)})
}

// Login godoc
// @Summary Log in
// @Tags accounts
// @Accept x-www-form-urlencoded
// @Param email formData string true "Email"
// @Param password formData string true "Password"
// @Success 302 "Redirect to /post with the session cookie, or /oops on failure"
// @Router /login [post]
func (h *AccountHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, h.log, "login", err)
	}

	sess, err := h.accountService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return fail(c, h.log, "login", err)
	}

	token, err := h.signer.Sign(sess.ID)
	if err != nil {
		return fail(c, h.log, "login", err)
	}
	c.SetCookie(h.signer.Cookie(token))
	return c.Redirect(http.StatusFound, "/post")
}

// Logout godoc
// @Summary Log out
// @Tags accounts
// @Produce html
// @Success 200 {string} string "HTML page"
// @Failure 500 {object} errors.ErrorResponse
// @Router /logout [get]
func (h *AccountHandler) Logout(c echo.Context) error {
	// Store failures go to the framework error handler, not the oops page.
	if err := h.accountService.Logout(c.Request().Context(), middleware.CurrentSessionID(c)); err != nil {
		return err
	}
	c.SetCookie(h.signer.ExpiredCookie())
	return c.Render(http.StatusOK, view.PageLogout, view.Data{})
}
