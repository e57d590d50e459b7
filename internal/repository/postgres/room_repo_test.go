package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talkcatalog/internal/domain"
)

func TestRoomRepository_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		room    *domain.Room
		mock    func(mock sqlmock.Sqlmock)
		wantID  int64
		wantErr error
	}{
		{
			name: "success",
			room: domain.NewRoom("Main Hall", 500, -1),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO rooms \(room_name, room_capacity, room_floor\)`).
					WithArgs("Main Hall", int64(500), -1).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
			},
			wantID: 1,
		},
		{
			name: "negative capacity rejected by check",
			room: domain.NewRoom("Closet", -5, 0),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO rooms`).
					WithArgs("Closet", int64(-5), 0).
					WillReturnError(&pq.Error{Code: codeCheckViolation, Message: "room_capacity_check"})
			},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name: "db error",
			room: domain.NewRoom("A", 1, 1),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO rooms`).
					WithArgs("A", int64(1), 1).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: sql.ErrConnDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			tt.mock(mock)
			err = NewRoomRepository(db).Create(ctx, tt.room)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, tt.room.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRoomRepository_SaveUpdates(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`UPDATE rooms SET room_name = \$2, room_capacity = \$3, room_floor = \$4 WHERE id = \$1`).
		WithArgs(int64(4), "Annex", int64(40), 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE rooms`).
		WithArgs(int64(5), "Gone", int64(1), 0).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewRoomRepository(db)
	require.NoError(t, repo.Save(ctx, &domain.Room{ID: 4, Name: "Annex", Capacity: 40, Floor: 2}))
	require.ErrorIs(t, repo.Save(ctx, &domain.Room{ID: 5, Name: "Gone", Capacity: 1}), domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomRepository_GetByIDAndList(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	cols := []string{"id", "room_name", "room_capacity", "room_floor"}
	mock.ExpectQuery(`SELECT id, room_name, room_capacity, room_floor FROM rooms WHERE id = \$1`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(int64(1), "Main", int64(300), 0))
	mock.ExpectQuery(`FROM rooms WHERE id = \$1`).
		WithArgs(int64(2)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(`SELECT id, room_name, room_capacity, room_floor FROM rooms ORDER BY id`).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(int64(1), "Main", int64(300), 0).
			AddRow(int64(3), "Basement", int64(20), -2))

	repo := NewRoomRepository(db)
	room, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, &domain.Room{ID: 1, Name: "Main", Capacity: 300, Floor: 0}, room)

	_, err = repo.GetByID(ctx, 2)
	require.ErrorIs(t, err, domain.ErrNotFound)

	rooms, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	assert.Equal(t, -2, rooms[1].Floor)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomRepository_Delete(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "deleted",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM rooms WHERE id = \$1`).
					WithArgs(int64(2)).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "talks still reference the room",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM rooms WHERE id = \$1`).
					WithArgs(int64(2)).
					WillReturnError(&pq.Error{Code: codeForeignKeyViolation})
			},
			wantErr: domain.ErrHasDependents,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			tt.mock(mock)
			err = NewRoomRepository(db).Delete(ctx, 2)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRoomRepository_DeleteAll(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM rooms`).WillReturnResult(sqlmock.NewResult(0, 2))

	n, err := NewRoomRepository(db).DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	require.NoError(t, mock.ExpectationsWereMet())
}
