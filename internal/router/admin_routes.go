package router

import (
	"github.com/labstack/echo/v4"

	"github.com/hmsdev/hotel-frontdesk/internal/handler"
	"github.com/hmsdev/hotel-frontdesk/internal/middleware"
	"github.com/hmsdev/hotel-frontdesk/internal/model"
)

// RegisterRegistry registers the guest directory, room inventory and
// product catalog. Reads are open to every role; the desk registers
// guests during check-in, so guest writes are too. Room, type and product
// writes are restricted to admins and managers.
func RegisterRegistry(e *echo.Echo, jwtSecret string,
	guests *handler.GuestHandler, rooms *handler.RoomHandler,
	cons *handler.ConsumptionHandler, cacheMW echo.MiddlewareFunc) {

	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RoleAdmin, model.RoleManager, model.RoleStandard))

	g.GET("/guests", guests.List, cacheMW)
	g.GET("/guests/find", guests.Find)
	g.GET("/guests/:id", guests.Get)
	g.POST("/guests", guests.Create)
	g.PUT("/guests/:id", guests.Update)

	g.GET("/room-types", rooms.ListTypes, cacheMW)
	g.GET("/rooms", rooms.List, cacheMW)
	g.GET("/rooms/:number", rooms.Get)

	g.GET("/products", cons.ListProducts, cacheMW)

	mg := e.Group("/v1")
	mg.Use(middleware.JWTAuth(jwtSecret))
	mg.Use(middleware.RequireRole(model.RoleAdmin, model.RoleManager))

	mg.DELETE("/guests/:id", guests.Delete)

	mg.POST("/room-types", rooms.CreateType)
	mg.PUT("/room-types/:id", rooms.UpdateType)
	mg.DELETE("/room-types/:id", rooms.DeleteType)

	mg.POST("/rooms", rooms.Create)
	mg.PUT("/rooms/:number", rooms.Update)
	mg.DELETE("/rooms/:number", rooms.Delete)

	mg.POST("/products", cons.CreateProduct)
	mg.PUT("/products/:id", cons.UpdateProduct)
	mg.DELETE("/products/:id", cons.DeleteProduct)
}

// RegisterUserAdmin registers account management under /v1/users for
// admins and managers. The handler enforces that managers cannot touch
// admin accounts.
func RegisterUserAdmin(e *echo.Echo, jwtSecret string, users *handler.UserAdminHandler) {
	g := e.Group("/v1/users")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RoleAdmin, model.RoleManager))

	g.GET("", users.List)
	g.POST("", users.Create)
	g.PUT("/:id", users.Update)
	g.DELETE("/:id", users.Delete)
}
