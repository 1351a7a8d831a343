package repository // repository defines data access for seats

import (
	"context"      // context allows query cancellation and timeouts
	"database/sql" // sql provides DB primitives
	"errors"       // errors for sentinel comparisons

	"github.com/jihwan-dev/studyroom-reservation/internal/model"
)

// SeatRepo provides methods to work with seats in the database.
type SeatRepo struct {
	db *sql.DB
}

// NewSeatRepo constructs a SeatRepo with the given DB handle.
func NewSeatRepo(db *sql.DB) *SeatRepo {
	return &SeatRepo{db: db}
}

// GetByRoom retrieves all seats of a room ordered by row then column.
func (r *SeatRepo) GetByRoom(ctx context.Context, roomID uint32) ([]model.Seat, error) {
	const q = `SELECT id, room_id, row_num, col_num, is_available
	           FROM seats
	           WHERE room_id = ?
	           ORDER BY row_num, col_num`
	rows, err := r.db.QueryContext(ctx, q, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Seat
	for rows.Next() {
		var s model.Seat
		if err := rows.Scan(&s.ID, &s.RoomID, &s.Row, &s.Col, &s.IsAvailable); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByIDTx retrieves a seat by id inside a transaction.  The reserve flow
// uses it to resolve the target seat's room before mutating anything.
func (r *SeatRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Seat, error) {
	const q = `SELECT id, room_id, row_num, col_num, is_available FROM seats WHERE id = ?`
	var s model.Seat
	err := tx.QueryRowContext(ctx, q, id).Scan(&s.ID, &s.RoomID, &s.Row, &s.Col, &s.IsAvailable)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSeatNotFound
		}
		return nil, err
	}
	return &s, nil
}

// TryOccupyTx flips a seat to unavailable only when it is currently
// available.  Zero rows affected means another reservation won the seat
// first; ErrSeatUnavailable is returned so the caller can roll back.
func (r *SeatRepo) TryOccupyTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	const q = `UPDATE seats SET is_available = FALSE WHERE id = ? AND is_available = TRUE`
	res, err := tx.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSeatUnavailable
	}
	return nil
}

// ReleaseTx marks a seat available again.  Used when the holder moves to
// another seat.
func (r *SeatRepo) ReleaseTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	const q = `UPDATE seats SET is_available = TRUE WHERE id = ?`
	_, err := tx.ExecContext(ctx, q, id)
	return err
}

// DeleteAllTx removes every seat row.  Only the admin arrange flow calls
// this, after reservations have been cleared in the same transaction.
func (r *SeatRepo) DeleteAllTx(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM seats`)
	return err
}

// CreateGridTx bulk-inserts a rows x cols grid of available seats for a
// room in a single statement.
func (r *SeatRepo) CreateGridTx(ctx context.Context, tx *sql.Tx, layout model.RoomLayout) error {
	if layout.Rows == 0 || layout.Cols == 0 {
		return nil
	}
	query := `INSERT INTO seats (room_id, row_num, col_num, is_available) VALUES `
	args := make([]interface{}, 0, int(layout.Rows)*int(layout.Cols)*3)
	first := true
	for row := uint32(1); row <= layout.Rows; row++ {
		for col := uint32(1); col <= layout.Cols; col++ {
			if !first {
				query += ","
			}
			first = false
			query += "(?, ?, ?, TRUE)"
			args = append(args, layout.RoomID, row, col)
		}
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}
