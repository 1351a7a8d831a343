package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jihwan-dev/studyroom-reservation/internal/model"
	"github.com/jihwan-dev/studyroom-reservation/internal/repository"
)

// AdminHandler owns the destructive seat-layout regeneration.  Route
// registration guards it with RequireRole(ADMIN).
type AdminHandler struct {
	Seats        *repository.SeatRepo
	Reservations *repository.ReservationRepo
}

func NewAdminHandler(seats *repository.SeatRepo, reservations *repository.ReservationRepo) *AdminHandler {
	if seats == nil || reservations == nil {
		panic("nil repository passed to NewAdminHandler")
	}
	return &AdminHandler{Seats: seats, Reservations: reservations}
}

type arrangeReq struct {
	Rooms []model.RoomLayout `json:"rooms"`
}

// Arrange handles POST /admin/arrange.  It deletes every reservation and
// seat, then regenerates the grid, all in one transaction.  Reservations
// go first so no row can survive pointing at a deleted seat id.  A body
// with explicit room layouts overrides the fixed default grid; a body
// that fails to parse is rejected rather than treated as absent, since
// falling through to the default would wipe everything on a typo.
func (h *AdminHandler) Arrange(c echo.Context) error {
	var req arrangeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	layouts := req.Rooms
	if len(layouts) == 0 {
		layouts = model.DefaultLayout()
	}
	for _, l := range layouts {
		if l.RoomID == 0 || l.Rows == 0 || l.Cols == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_id, rows and cols must be positive"})
		}
		if l.Rows > 100 || l.Cols > 100 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "grid too large"})
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	tx, err := h.Reservations.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := h.Reservations.DeleteAllTx(ctx, tx); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to clear reservations"})
	}
	if err := h.Seats.DeleteAllTx(ctx, tx); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to clear seats"})
	}
	counts := make(map[uint32]uint32, len(layouts))
	for _, l := range layouts {
		if err := h.Seats.CreateGridTx(ctx, tx, l); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create seats"})
		}
		counts[l.RoomID] = l.Rows * l.Cols
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	return c.JSON(http.StatusOK, echo.Map{
		"message":        "seat layout regenerated",
		"seats_per_room": counts,
	})
}
