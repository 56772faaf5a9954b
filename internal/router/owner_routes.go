package router

import (
	"github.com/labstack/echo/v4"

	"github.com/stayease/pg-manager/internal/handler"
	"github.com/stayease/pg-manager/internal/middleware"
)

// RegisterOwner registers the owner-scoped endpoints under /v1.  All
// routes require a valid JWT with the OWNER role; extra middleware
// (response cache, rate limiting) can be passed through extra.
func RegisterOwner(e *echo.Echo, o *handler.OwnerHandler, jwtSecret string, extra ...echo.MiddlewareFunc) {
	mw := append([]echo.MiddlewareFunc{
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("OWNER"),
	}, extra...)
	g := e.Group("/v1", mw...)

	// ---- PGs ----
	g.POST("/pgs", o.CreatePG)
	g.GET("/pgs", o.ListPGs)
	g.GET("/pgs/:id", o.GetPG)
	g.DELETE("/pgs/:id", o.DeletePG)

	// ---- Rooms ----
	g.POST("/pgs/:id/rooms", o.CreateRoom)
	g.GET("/pgs/:id/rooms", o.ListRooms)
	g.DELETE("/rooms/:id", o.DeleteRoom)

	// ---- Beds ----
	g.POST("/rooms/:id/beds", o.CreateBed)
	g.GET("/rooms/:id/beds", o.ListBeds)
	g.PUT("/beds/:id", o.UpdateBed)
	g.DELETE("/beds/:id", o.DeleteBed)

	// ---- Tenants ----
	g.POST("/tenants", o.CheckInTenant)
	g.GET("/tenants", o.ListTenants)
	g.GET("/tenants/:id", o.GetTenant)
	g.POST("/tenants/:id/checkout", o.CheckOutTenant)
	g.DELETE("/tenants/:id", o.DeleteTenant)

	// ---- Rents ----
	g.GET("/rents", o.ListRents)
	g.POST("/rents/generate", o.GenerateRents)
	g.PUT("/rents/:id", o.UpdateRent)

	// ---- Dashboard ----
	g.GET("/dashboard/stats", o.DashboardStats)
}
