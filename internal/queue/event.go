// Package queue defines message payloads exchanged over the message broker
// and the background consumer that processes them.
package queue

import (
	"time"

	"github.com/google/uuid"
)

// SeatReservedEvent is published after a reservation commits.  It carries
// enough information for downstream consumers to log or notify without
// querying the primary database.
type SeatReservedEvent struct {
	EventID       string `json:"event_id"`
	ReservationID uint64 `json:"reservation_id"`
	UserID        uint64 `json:"user_id"`
	StudentID     string `json:"student_id"`
	SeatID        uint64 `json:"seat_id"`
	RoomID        uint32 `json:"room_id"`
	Row           uint32 `json:"row"`
	Col           uint32 `json:"col"`
	ReservedAt    string `json:"reserved_at"`
}

// NewSeatReservedEvent stamps a fresh event id and formats the timestamp.
func NewSeatReservedEvent(reservationID, userID uint64, studentID string, seatID uint64, roomID, row, col uint32, at time.Time) SeatReservedEvent {
	return SeatReservedEvent{
		EventID:       uuid.NewString(),
		ReservationID: reservationID,
		UserID:        userID,
		StudentID:     studentID,
		SeatID:        seatID,
		RoomID:        roomID,
		Row:           row,
		Col:           col,
		ReservedAt:    at.UTC().Format(time.RFC3339),
	}
}
