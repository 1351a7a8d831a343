package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/jihwan-dev/studyroom-reservation/internal/handler"
	"github.com/jihwan-dev/studyroom-reservation/internal/middleware"
	"github.com/jihwan-dev/studyroom-reservation/internal/model"
)

// RegisterRoutes registers routes that need no authentication: the health
// check used by monitoring, and the public seat map.  The caller may pass
// extra middleware (the Redis response cache) applied to the seat map only.
func RegisterRoutes(e *echo.Echo, seats *handler.SeatHandler, seatMapMW ...echo.MiddlewareFunc) {
	e.GET("/healthz", handler.Health)
	e.GET("/check", seats.Check, seatMapMW...)
}

// RegisterAuth wires signup, login and logout.  The paths live at the
// root rather than under a /v1 prefix; clients depend on them as-is.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler) {
	e.POST("/signup", a.Signup)
	e.POST("/login", a.Login)
	e.GET("/logout", a.Logout)
}

// RegisterReservation wires the authenticated reservation surface.  Every
// route here requires a valid access token; any role may reserve.
func RegisterReservation(e *echo.Echo, r *handler.ReservationHandler, act *handler.ActivityHandler, jwtSecret string) {
	g := e.Group("", middleware.JWTAuth(jwtSecret), middleware.RequireRole(model.RoleStudent, model.RoleAdmin))
	g.POST("/reserve", r.Reserve)
	g.GET("/info", r.Info)

	// activity logging
	g.POST("/reports", act.SubmitReport)
	g.POST("/votes", act.SubmitVote)
	g.GET("/votes/:subject", act.VoteTally)
	g.POST("/study-timer", act.StudyTimer)
}

// RegisterAdmin wires the destructive layout regeneration behind the
// ADMIN role.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, jwtSecret string) {
	g := e.Group("/admin", middleware.JWTAuth(jwtSecret), middleware.RequireRole(model.RoleAdmin))
	g.POST("/arrange", a.Arrange)
}
