package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupReservationRepo(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *ReservationRepo) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return db, mock, NewReservationRepo(db)
}

func TestReservationRepoGetSeatByUserTx(t *testing.T) {
	db, mock, repo := setupReservationRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT seat_id FROM reservations WHERE user_id = ? LIMIT 1`)).
		WithArgs(uint64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"seat_id"}).AddRow(12))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)
	seatID, err := repo.GetSeatByUserTx(context.Background(), tx, 9)
	require.NoError(t, err)
	assert.Equal(t, uint64(12), seatID)
	require.NoError(t, tx.Commit())
}

func TestReservationRepoGetSeatByUserTxNone(t *testing.T) {
	db, mock, repo := setupReservationRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT seat_id FROM reservations WHERE user_id = ? LIMIT 1`)).
		WithArgs(uint64(9)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	tx, err := db.Begin()
	require.NoError(t, err)
	_, err = repo.GetSeatByUserTx(context.Background(), tx, 9)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, tx.Rollback())
}

func TestReservationRepoCreateTx(t *testing.T) {
	db, mock, repo := setupReservationRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO reservations (user_id, seat_id) VALUES (?, ?)`)).
		WithArgs(uint64(9), uint64(12)).
		WillReturnResult(sqlmock.NewResult(31, 1))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)
	id, err := repo.CreateTx(context.Background(), tx, 9, 12)
	require.NoError(t, err)
	assert.Equal(t, uint64(31), id)
	require.NoError(t, tx.Commit())
}

func TestReservationRepoListByUser(t *testing.T) {
	db, mock, repo := setupReservationRepo(t)
	defer db.Close()

	at := time.Date(2025, 3, 2, 10, 30, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "seat_id", "room_id", "row_num", "col_num", "reserved_at"}).
		AddRow(31, 12, 1, 2, 2, at)
	mock.ExpectQuery("SELECT r.id, r.seat_id, s.room_id, s.row_num, s.col_num, r.reserved_at").
		WithArgs(uint64(9)).
		WillReturnRows(rows)

	details, err := repo.ListByUser(context.Background(), 9)
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, uint64(12), details[0].SeatID)
	assert.Equal(t, uint32(2), details[0].Row)
	assert.Equal(t, at, details[0].ReservedAt)
}

func TestReservationRepoListByUserEmpty(t *testing.T) {
	db, mock, repo := setupReservationRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT r.id, r.seat_id, s.room_id, s.row_num, s.col_num, r.reserved_at").
		WithArgs(uint64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "seat_id", "room_id", "row_num", "col_num", "reserved_at"}))

	details, err := repo.ListByUser(context.Background(), 9)
	require.NoError(t, err)
	assert.Empty(t, details)
	assert.NotNil(t, details)
}
