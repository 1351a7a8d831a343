package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jihwan-dev/studyroom-reservation/internal/repository"
)

func setupSeatHandler(t *testing.T) (sqlmock.Sqlmock, *SeatHandler) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return mock, NewSeatHandler(repository.NewSeatRepo(db))
}

func TestCheck(t *testing.T) {
	mock, h := setupSeatHandler(t)
	mock.ExpectQuery("SELECT id, room_id, row_num, col_num, is_available").
		WithArgs(uint32(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "room_id", "row_num", "col_num", "is_available"}).
			AddRow(37, 2, 1, 1, true).
			AddRow(38, 2, 1, 2, false))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/check?room_id=2", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.Check(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"room_id":2`)
	assert.Contains(t, rec.Body.String(), `"is_available":false`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckDefaultsToRoomOne(t *testing.T) {
	mock, h := setupSeatHandler(t)
	mock.ExpectQuery("SELECT id, room_id, row_num, col_num, is_available").
		WithArgs(uint32(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "room_id", "row_num", "col_num", "is_available"}))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/check", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.Check(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckInvalidRoomID(t *testing.T) {
	_, h := setupSeatHandler(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/check?room_id=abc", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.Check(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
