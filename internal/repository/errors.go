// Package repository defines data access for the reservation service and
// the sentinel errors reused across repositories.  Handlers translate the
// sentinels into HTTP statuses: ErrStudentIDExists -> 409,
// ErrSeatNotFound -> 404, ErrSeatUnavailable -> 409.
package repository

import "errors"

// ErrStudentIDExists is returned when signup hits the unique constraint
// on users.student_id.
var ErrStudentIDExists = errors.New("student id already exists")

// ErrSeatNotFound is returned when a seat lookup yields no rows.
var ErrSeatNotFound = errors.New("seat not found")

// ErrSeatUnavailable is returned when the conditional occupy update
// matches no row, i.e. the seat was taken between the map view and the
// reserve call.
var ErrSeatUnavailable = errors.New("seat unavailable")
