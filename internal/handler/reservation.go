package handler

import (
	"context"      // request-scoped timeouts for DB work
	"database/sql" // sentinel errors and transaction control
	"errors"       // errors.Is comparisons
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jihwan-dev/studyroom-reservation/internal/queue"
	"github.com/jihwan-dev/studyroom-reservation/internal/repository"
	publisher "github.com/jihwan-dev/studyroom-reservation/internal/service"
)

// ReservationHandler implements the reserve flow and the /info listing.
// The reserve flow runs inside a single transaction: releasing the
// caller's previous seat, the conditional occupy of the target seat and
// the insert of the new reservation commit or roll back together, so
// two callers can never end up holding the same seat.
type ReservationHandler struct {
	Users        *repository.UserRepo
	Seats        *repository.SeatRepo
	Reservations *repository.ReservationRepo
	PublishEvent func(context.Context, queue.SeatReservedEvent) error // nil disables publishing
}

// NewReservationHandler constructs the handler.  PublishEvent defaults to
// the RabbitMQ publisher; tests override it or leave it nil.
func NewReservationHandler(users *repository.UserRepo, seats *repository.SeatRepo, reservations *repository.ReservationRepo) *ReservationHandler {
	if users == nil || seats == nil || reservations == nil {
		panic("nil repository passed to NewReservationHandler")
	}
	return &ReservationHandler{
		Users:        users,
		Seats:        seats,
		Reservations: reservations,
		PublishEvent: publisher.PublishSeatReserved,
	}
}

type reserveReq struct {
	SeatID uint64 `json:"seat_id" form:"seat_id"`
}

// Reserve handles POST /reserve.  Steps, all inside one transaction:
// resolve the target seat, release any reservation the user already
// holds (old seat back to available, old row deleted), then a
// compare-and-swap on the target seat's availability and the insert of
// the new reservation.  A lost CAS surfaces as 409.
func (h *ReservationHandler) Reserve(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req reserveReq
	if err := c.Bind(&req); err != nil || req.SeatID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "seat_id required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
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

	seat, err := h.Seats.GetByIDTx(ctx, tx, req.SeatID)
	if err != nil {
		if errors.Is(err, repository.ErrSeatNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "seat not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	// Release the previous seat, if the user holds one.
	oldSeatID, err := h.Reservations.GetSeatByUserTx(ctx, tx, userID)
	switch {
	case err == nil:
		if oldSeatID == seat.ID {
			return c.JSON(http.StatusOK, echo.Map{"message": "seat already held", "seat_id": seat.ID})
		}
		if err := h.Seats.ReleaseTx(ctx, tx, oldSeatID); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to release previous seat"})
		}
		if err := h.Reservations.DeleteByUserTx(ctx, tx, userID); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to release previous seat"})
		}
	case errors.Is(err, sql.ErrNoRows):
		// first reservation for this user
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	if err := h.Seats.TryOccupyTx(ctx, tx, seat.ID); err != nil {
		if errors.Is(err, repository.ErrSeatUnavailable) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "seat unavailable"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	resID, err := h.Reservations.CreateTx(ctx, tx, userID, seat.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create reservation"})
	}

	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	reservedAt := time.Now().UTC()
	h.publishReserved(userID, resID, seat.ID, seat.RoomID, seat.Row, seat.Col, reservedAt)

	return c.JSON(http.StatusCreated, echo.Map{
		"reservation_id": resID,
		"seat_id":        seat.ID,
		"room_id":        seat.RoomID,
		"row":            seat.Row,
		"col":            seat.Col,
		"reserved_at":    reservedAt.Format(time.RFC3339),
	})
}

// publishReserved emits the seat.reserved event best-effort once the
// transaction has committed.  A broker outage must never fail a
// reservation, so errors are only logged.
func (h *ReservationHandler) publishReserved(userID, resID, seatID uint64, roomID, row, col uint32, at time.Time) {
	if h.PublishEvent == nil {
		return
	}
	studentID := ""
	lookupCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if u, err := h.Users.GetByID(lookupCtx, userID); err == nil {
		studentID = u.StudentID
	}
	ev := queue.NewSeatReservedEvent(resID, userID, studentID, seatID, roomID, row, col, at)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := h.PublishEvent(ctx, ev); err != nil {
			log.Printf("reserve: publish event failed: %v", err)
		}
	}()
}

// Info handles GET /info and returns the caller's reservation(s) with
// seat positions.  Under the one-seat invariant the list has at most one
// element.
func (h *ReservationHandler) Info(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	details, err := h.Reservations.ListByUser(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"reservations": details})
}
