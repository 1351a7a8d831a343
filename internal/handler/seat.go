package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jihwan-dev/studyroom-reservation/internal/repository"
)

// SeatHandler serves the public seat map.
type SeatHandler struct {
	Seats *repository.SeatRepo
}

func NewSeatHandler(seats *repository.SeatRepo) *SeatHandler {
	if seats == nil {
		panic("nil repository passed to NewSeatHandler")
	}
	return &SeatHandler{Seats: seats}
}

// Check handles GET /check?room_id=N and returns the seat map for a
// room.  Room 1 is assumed when the parameter is missing.  No
// authentication is required so students can inspect a room before
// logging in.
func (h *SeatHandler) Check(c echo.Context) error {
	roomID := uint32(1)
	if raw := c.QueryParam("room_id"); raw != "" {
		n, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || n == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room_id"})
		}
		roomID = uint32(n)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	seats, err := h.Seats.GetByRoom(ctx, roomID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"room_id": roomID,
		"seats":   seats,
	})
}
