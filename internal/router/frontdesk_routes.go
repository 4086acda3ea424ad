package router

import (
	"github.com/labstack/echo/v4"

	"github.com/hmsdev/hotel-frontdesk/internal/handler"
	"github.com/hmsdev/hotel-frontdesk/internal/middleware"
	"github.com/hmsdev/hotel-frontdesk/internal/model"
)

// RegisterFrontDesk registers the stay workflow, the day views and the
// consumption ledger. Every route requires a session; all three roles may
// operate the desk. cacheMW is attached to the read-heavy listings and may
// be a pass-through when Redis is absent.
func RegisterFrontDesk(e *echo.Echo, jwtSecret string,
	stays *handler.StayHandler, desk *handler.FrontDeskHandler,
	cons *handler.ConsumptionHandler, cacheMW echo.MiddlewareFunc) {

	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RoleAdmin, model.RoleManager, model.RoleStandard))

	// stay workflow
	g.POST("/stays/check-in", stays.CheckIn)
	g.PUT("/stays/:id/check-out", stays.CheckOut)
	g.GET("/stays", stays.List, cacheMW)
	g.GET("/stays/occupancy", stays.Occupancy, cacheMW)
	g.GET("/stays/:id/bill", stays.Bill)
	g.DELETE("/stays/:id", stays.Delete)
	g.GET("/guests/:id/active-stay", stays.ActiveByGuest)
	g.GET("/rooms/:number/active-stay", stays.ActiveByRoom)

	// companions
	g.GET("/stays/:id/companions", stays.ListCompanions)
	g.POST("/stays/:id/companions", stays.AddCompanions)
	g.DELETE("/companions/:companionID", stays.DeleteCompanion)

	// day views for the reception dashboard
	g.GET("/frontdesk/arrivals", desk.Arrivals)
	g.GET("/frontdesk/departures", desk.Departures)
	g.GET("/frontdesk/in-house", desk.InHouse)
	g.GET("/frontdesk/overdue", desk.Overdue)

	// consumption ledger
	g.GET("/stays/:id/consumptions", cons.ListByStay)
	g.POST("/consumptions", cons.Add)
	g.DELETE("/consumptions/:consumptionID", cons.Delete)
}
