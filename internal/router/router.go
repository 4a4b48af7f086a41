package router

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"blogapp/docs"
	"blogapp/internal/auth"
	"blogapp/internal/config"
	"blogapp/internal/handler"
	"blogapp/internal/logger"
	"blogapp/internal/metrics"
	session "blogapp/internal/middleware"
	"blogapp/internal/model"
	"blogapp/internal/view"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	log *slog.Logger,
	signer *auth.CookieSigner,
	sessions auth.SessionStore,
	pageHandler *handler.PageHandler,
	accountHandler *handler.AccountHandler,
	postHandler *handler.PostHandler,
) {
	metrics.Init()

	e.Use(middleware.RequestID())
	e.Use(logger.RequestLogger(log))
	e.Use(middleware.Recover())
	e.Use(metrics.Middleware)
	e.Use(session.SessionCookie(signer))
	e.Use(session.LoadSession(sessions, log))

	// Add validator
	e.Validator = &CustomValidator{}

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.StaticFS("/static", view.Static())

	// Public routes
	e.GET("/", pageHandler.Home)
	e.GET(handler.OopsPath, pageHandler.Oops)
	e.GET("/register", accountHandler.RegisterForm)
	e.POST("/register", accountHandler.Register)
	e.POST("/validation", accountHandler.Validation)
	e.GET("/login", accountHandler.LoginForm)
	e.POST("/login", accountHandler.Login)
	e.GET("/logout", accountHandler.Logout)

	// Secured routes (require a session)
	posts := e.Group("/post", session.RequireSession(handler.OopsPath))
	posts.GET("", postHandler.ListAll)
	posts.GET("/new", postHandler.NewForm)
	posts.POST("/new", postHandler.Create)
	posts.GET("/my", postHandler.ListMine)
	posts.GET("/:postId", postHandler.Detail)
	posts.POST("/:postId", postHandler.AddComment)
}

// CustomValidator adapts model validation to echo.
type CustomValidator struct{}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return model.Validate(i)
}
