package model

// Seat describes a physical seat in a study room.  Seats are
// identified by their room and their 1-based row and column position.
// IsAvailable is a plain flag flipped when a reservation is taken or
// released.
type Seat struct {
	ID          uint64 `json:"id"`           // seats.id
	RoomID      uint32 `json:"room_id"`      // seats.room_id
	Row         uint32 `json:"row"`          // seats.row_num
	Col         uint32 `json:"col"`          // seats.col_num
	IsAvailable bool   `json:"is_available"` // seats.is_available
}

// RoomLayout describes the grid dimensions used when the admin
// regenerates a room.  The default layout mirrors the physical
// study rooms: rooms 1 and 2 are 6x6, room 3 is 5x6.
type RoomLayout struct {
	RoomID uint32 `json:"room_id"`
	Rows   uint32 `json:"rows"`
	Cols   uint32 `json:"cols"`
}

// DefaultLayout returns the fixed two-6x6-plus-one-5x6 room grid.
func DefaultLayout() []RoomLayout {
	return []RoomLayout{
		{RoomID: 1, Rows: 6, Cols: 6},
		{RoomID: 2, Rows: 6, Cols: 6},
		{RoomID: 3, Rows: 5, Cols: 6},
	}
}
