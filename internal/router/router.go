// Package router wires handlers and middleware onto the Echo instance.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/hmsdev/hotel-frontdesk/internal/handler"
	"github.com/hmsdev/hotel-frontdesk/internal/middleware"
	"github.com/hmsdev/hotel-frontdesk/internal/model"
)

// RegisterRoutes registers the unauthenticated routes. Only the health
// check lives here; everything else requires a session.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the session endpoints under /v1/auth and the
// authenticated /v1/me profile endpoint. There is no self-service
// registration: accounts are created by administrators.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole(model.RoleAdmin, model.RoleManager, model.RoleStandard))
	auth.GET("/me", a.Me)
}
