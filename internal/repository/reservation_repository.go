package repository

import (
	"context"
	"database/sql"
	"time"
)

// ReservationRepo provides CRUD operations for reservations.  A
// reservation binds one user to one seat; the mutating methods run inside
// a caller-owned transaction so the release-and-acquire sequence of the
// reserve flow commits or rolls back as a unit.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// DB exposes the underlying handle so handlers can begin transactions.
func (r *ReservationRepo) DB() *sql.DB { return r.db }

// GetSeatByUserTx returns the seat id currently held by the user, or
// sql.ErrNoRows when the user holds no reservation.
func (r *ReservationRepo) GetSeatByUserTx(ctx context.Context, tx *sql.Tx, userID uint64) (uint64, error) {
	var seatID uint64
	err := tx.QueryRowContext(ctx,
		`SELECT seat_id FROM reservations WHERE user_id = ? LIMIT 1`,
		userID).Scan(&seatID)
	return seatID, err
}

// DeleteByUserTx removes the user's reservation row, if any.
func (r *ReservationRepo) DeleteByUserTx(ctx context.Context, tx *sql.Tx, userID uint64) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM reservations WHERE user_id = ?`, userID)
	return err
}

// CreateTx inserts a reservation for the user and seat and returns its id.
func (r *ReservationRepo) CreateTx(ctx context.Context, tx *sql.Tx, userID, seatID uint64) (uint64, error) {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO reservations (user_id, seat_id) VALUES (?, ?)`,
		userID, seatID)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// DeleteAllTx clears the reservations table.  The admin arrange flow calls
// this before regenerating seats so no reservation can point at a deleted
// seat id.
func (r *ReservationRepo) DeleteAllTx(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM reservations`)
	return err
}

// ReservationDetail is the user-facing view of a reservation: the seat's
// position joined onto the reservation row.
type ReservationDetail struct {
	ID         uint64    `json:"id"`
	SeatID     uint64    `json:"seat_id"`
	RoomID     uint32    `json:"room_id"`
	Row        uint32    `json:"row"`
	Col        uint32    `json:"col"`
	ReservedAt time.Time `json:"reserved_at"`
}

// ListByUser returns all reservations held by the user with seat details,
// newest first.  Under the one-seat-per-user invariant the slice has at
// most one element, but the listing shape is kept for the /info endpoint.
func (r *ReservationRepo) ListByUser(ctx context.Context, userID uint64) ([]ReservationDetail, error) {
	const q = `SELECT r.id, r.seat_id, s.room_id, s.row_num, s.col_num, r.reserved_at
	           FROM reservations r
	           JOIN seats s ON s.id = r.seat_id
	           WHERE r.user_id = ?
	           ORDER BY r.reserved_at DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	details := make([]ReservationDetail, 0)
	for rows.Next() {
		var d ReservationDetail
		if err := rows.Scan(&d.ID, &d.SeatID, &d.RoomID, &d.Row, &d.Col, &d.ReservedAt); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return details, nil
}

// CountByUser returns how many reservation rows reference the user.
func (r *ReservationRepo) CountByUser(ctx context.Context, userID uint64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM reservations WHERE user_id = ?`, userID).Scan(&n)
	return n, err
}
