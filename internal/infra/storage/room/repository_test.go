package room

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	"github.com/m04kA/SMC-HotelBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-HotelBookingService/pkg/ptr"
)

var created = time.Date(2026, 2, 1, 9, 30, 0, 0, time.UTC)

func newMock(t *testing.T) (*Repository, *sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return NewRepository(db), db, mock
}

func roomRow(id int64, kind string, parent *int64, number, status string, version int) []driver.Value {
	var p driver.Value
	if parent != nil {
		p = *parent
	}
	return []driver.Value{id, kind, p, number, status, nil, int64(version), created, created}
}

func roomRows(rows ...[]driver.Value) *sqlmock.Rows {
	result := sqlmock.NewRows(columns)
	for _, r := range rows {
		result.AddRow(r...)
	}
	return result
}

func TestCreate(t *testing.T) {
	repo, _, mock := newMock(t)

	mock.ExpectQuery(`INSERT INTO rooms \(kind,parent_room_id,number,status,status_reason\) VALUES \(\$1,\$2,\$3,\$4,\$5\) RETURNING id, version, created_at, updated_at`).
		WithArgs("bed", int64(4), "4-A", "available", nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "version", "created_at", "updated_at"}).
			AddRow(int64(12), int64(1), created, created))

	room, err := repo.Create(context.Background(), &domain.Room{
		Kind:         domain.KindBed,
		ParentRoomID: ptr.Ptr(int64(4)),
		Number:       "4-A",
		Status:       domain.RoomAvailable,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(12), room.ID)
	assert.Equal(t, 1, room.Version)
	assert.Equal(t, created, room.UpdatedAt)
}

func TestCreate_DuplicateNumber(t *testing.T) {
	repo, _, mock := newMock(t)

	mock.ExpectQuery(`INSERT INTO rooms`).WillReturnError(&pq.Error{Code: "23505"})

	_, err := repo.Create(context.Background(), &domain.Room{Kind: domain.KindRoom, Number: "101", Status: domain.RoomAvailable})
	assert.ErrorIs(t, err, ErrDuplicateNumber)
}

func TestCreate_OtherError(t *testing.T) {
	repo, _, mock := newMock(t)

	mock.ExpectQuery(`INSERT INTO rooms`).WillReturnError(errors.New("connection reset"))

	_, err := repo.Create(context.Background(), &domain.Room{Kind: domain.KindRoom, Number: "101", Status: domain.RoomAvailable})
	assert.ErrorIs(t, err, ErrExecQuery)
}

func TestGetByID(t *testing.T) {
	repo, _, mock := newMock(t)

	mock.ExpectQuery(`FROM rooms WHERE id = \$1$`).
		WithArgs(int64(4)).
		WillReturnRows(roomRows(roomRow(4, "room", nil, "101", "occupied", 3)))

	room, err := repo.GetByID(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, domain.KindRoom, room.Kind)
	assert.Nil(t, room.ParentRoomID)
	assert.Equal(t, domain.RoomOccupied, room.Status)
	assert.Equal(t, 3, room.Version)

	mock.ExpectQuery(`FROM rooms WHERE id = \$1`).WillReturnRows(roomRows())

	_, err = repo.GetByID(context.Background(), 5)
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestGetByIDForUpdate_InTransaction(t *testing.T) {
	repo, db, mock := newMock(t)

	mock.ExpectBegin()
	tx, err := db.Begin()
	require.NoError(t, err)

	mock.ExpectQuery(`FROM rooms WHERE id = \$1 FOR UPDATE$`).
		WillReturnRows(roomRows(roomRow(4, "room", nil, "101", "available", 1)))
	mock.ExpectCommit()

	_, err = repo.GetByIDForUpdate(dbmetrics.WithTx(context.Background(), tx), 4)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())
}

func TestGetBeds(t *testing.T) {
	repo, _, mock := newMock(t)

	mock.ExpectQuery(`FROM rooms WHERE kind = \$1 AND parent_room_id = \$2 ORDER BY number ASC`).
		WithArgs("bed", int64(4)).
		WillReturnRows(roomRows(
			roomRow(11, "bed", ptr.Ptr(int64(4)), "4-A", "available", 1),
			roomRow(12, "bed", ptr.Ptr(int64(4)), "4-B", "occupied", 2),
		))

	beds, err := repo.GetBeds(context.Background(), 4)
	require.NoError(t, err)
	require.Len(t, beds, 2)
	assert.Equal(t, "4-A", beds[0].Number)
	assert.Equal(t, int64(4), *beds[1].ParentRoomID)
	assert.True(t, beds[1].IsBed())
}

func TestUpdateStatus(t *testing.T) {
	repo, _, mock := newMock(t)

	mock.ExpectQuery(`UPDATE rooms SET status = \$1, status_reason = \$2, version = version \+ 1, updated_at = NOW\(\) WHERE id = \$3 AND version = \$4 RETURNING id, kind`).
		WithArgs("maintenance", "broken heater", int64(4), int64(2)).
		WillReturnRows(roomRows(roomRow(4, "room", nil, "101", "maintenance", 3)))

	room, err := repo.UpdateStatus(context.Background(), 4, domain.RoomMaintenance, ptr.Ptr("broken heater"), 2)
	require.NoError(t, err)
	assert.Equal(t, domain.RoomMaintenance, room.Status)
	assert.Equal(t, 3, room.Version)
}

func TestUpdateStatus_VersionConflict(t *testing.T) {
	repo, _, mock := newMock(t)

	mock.ExpectQuery(`UPDATE rooms SET`).WillReturnRows(roomRows())

	_, err := repo.UpdateStatus(context.Background(), 4, domain.RoomAvailable, nil, 2)
	assert.ErrorIs(t, err, ErrVersionConflict)
}
