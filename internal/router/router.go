package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"accessibleos/internal/auth"
	"accessibleos/internal/config"
	"accessibleos/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	userHandler *handler.UserHandler,
	taskHandler *handler.TaskHandler,
	categoryHandler *handler.CategoryHandler,
	accessibilityHandler *handler.AccessibilityHandler,
	adminHandler *handler.AdminHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Every /api route requires a resolvable identity: the stub in
	// development, verified JWTs otherwise.
	var identityMiddleware echo.MiddlewareFunc
	if cfg.AuthStub {
		identityMiddleware = auth.Stub()
	} else {
		identityMiddleware = echojwt.WithConfig(echojwt.Config{
			SigningKey:  []byte(cfg.JWTSecret),
			TokenLookup: "header:" + echo.HeaderAuthorization,
		})
	}

	api := e.Group("/api", identityMiddleware)

	api.POST("/users/sync", userHandler.SyncUser)
	api.GET("/users/me", userHandler.GetProfile)
	api.PUT("/users/me", userHandler.UpdateProfile)

	// Category routes are registered before /tasks/:id so the literal
	// segment wins route matching.
	api.GET("/tasks/categories", categoryHandler.ListCategories)
	api.POST("/tasks/categories", categoryHandler.CreateCategory)
	api.PUT("/tasks/categories/:id", categoryHandler.UpdateCategory)
	api.DELETE("/tasks/categories/:id", categoryHandler.DeleteCategory)

	api.GET("/tasks", taskHandler.ListTasks)
	api.POST("/tasks", taskHandler.CreateTask)
	api.GET("/tasks/:id", taskHandler.GetTask)
	api.PUT("/tasks/:id", taskHandler.UpdateTask)
	api.DELETE("/tasks/:id", taskHandler.DeleteTask)

	api.GET("/accessibility", accessibilityHandler.GetSettings)
	api.PUT("/accessibility", accessibilityHandler.UpdateSettings)

	api.POST("/admin/demo-reset", adminHandler.DemoReset)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
