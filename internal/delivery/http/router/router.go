// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"voyage/internal/delivery/http/middleware"
	"voyage/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler         *handler.AuthHandler
	GoogleHandler       *handler.GoogleHandler
	VerificationHandler *handler.VerificationHandler
	PasswordHandler     *handler.PasswordHandler
	BookmarkHandler     *handler.BookmarkHandler
	ItineraryHandler    *handler.ItineraryHandler
	AuthMiddleware      *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler         *handler.AuthHandler
	googleHandler       *handler.GoogleHandler
	verificationHandler *handler.VerificationHandler
	passwordHandler     *handler.PasswordHandler
	bookmarkHandler     *handler.BookmarkHandler
	itineraryHandler    *handler.ItineraryHandler
	authMiddleware      *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:         params.AuthHandler,
		googleHandler:       params.GoogleHandler,
		verificationHandler: params.VerificationHandler,
		passwordHandler:     params.PasswordHandler,
		bookmarkHandler:     params.BookmarkHandler,
		itineraryHandler:    params.ItineraryHandler,
		authMiddleware:      params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Browser-facing paths behind the session gate redirect to /login.
	e.Use(r.authMiddleware.GatePages)

	authGroup := e.Group("/api/auth")
	{
		authGroup.POST("/signup", r.authHandler.SignUp)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/logout", r.authHandler.Logout)
		authGroup.GET("/me", r.authHandler.Me)

		authGroup.GET("/google", r.googleHandler.Login)
		authGroup.GET("/google/callback", r.googleHandler.Callback)

		authGroup.POST("/email/send-code", r.verificationHandler.SendCode)
		authGroup.POST("/email/verify", r.verificationHandler.VerifyCode)

		authGroup.POST("/reset-password/request", r.passwordHandler.RequestReset)
		authGroup.POST("/reset-password/confirm", r.passwordHandler.ConfirmReset)
	}

	// Bookmark routes require a valid session cookie
	bookmarkGroup := e.Group("/api/bookmarks")
	bookmarkGroup.Use(r.authMiddleware.Authenticate)
	{
		bookmarkGroup.GET("", r.bookmarkHandler.List)
		bookmarkGroup.POST("", r.bookmarkHandler.Create)
		bookmarkGroup.DELETE("/:id", r.bookmarkHandler.Delete)
	}

	// AI trip planning routes
	e.POST("/api/recommend", r.itineraryHandler.Recommend)
	e.POST("/api/city/detail", r.itineraryHandler.CityDetail)
	e.POST("/api/city/modify", r.itineraryHandler.ModifyItinerary)
}
