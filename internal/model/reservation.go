package model

import "time"

// Reservation binds one user to one seat.  The schema enforces the
// two core invariants: a user holds at most one reservation
// (unique user_id) and a seat is referenced by at most one
// reservation (unique seat_id).
//
// Fields:
//  ID         – primary key identifier.
//  UserID     – user holding the reservation.
//  SeatID     – reserved seat.
//  ReservedAt – when the reservation was taken.
type Reservation struct {
	ID         uint64    // reservations.id
	UserID     uint64    // reservations.user_id
	SeatID     uint64    // reservations.seat_id
	ReservedAt time.Time // reservations.reserved_at
}
