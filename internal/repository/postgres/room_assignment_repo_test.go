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

func TestRoomAssignmentRepository_Reassign(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name         string
		roomID       *int64
		mock         func(mock sqlmock.Sqlmock)
		wantPrevious *int64
		wantErr      error
	}{
		{
			name:   "move between rooms returns previous room",
			roomID: int64Ptr(2),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`UPDATE talks t SET room_id = \$2 FROM \(SELECT id, room_id FROM talks WHERE id = \$1 FOR UPDATE\) prev`).
					WithArgs(int64(10), int64(2)).
					WillReturnRows(sqlmock.NewRows([]string{"room_id"}).AddRow(int64(1)))
			},
			wantPrevious: int64Ptr(1),
		},
		{
			name:   "attach a tutorial",
			roomID: int64Ptr(2),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`UPDATE talks t SET room_id`).
					WithArgs(int64(10), int64(2)).
					WillReturnRows(sqlmock.NewRows([]string{"room_id"}).AddRow(nil))
			},
			wantPrevious: nil,
		},
		{
			name:   "detach",
			roomID: nil,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`UPDATE talks t SET room_id`).
					WithArgs(int64(10), nil).
					WillReturnRows(sqlmock.NewRows([]string{"room_id"}).AddRow(int64(3)))
			},
			wantPrevious: int64Ptr(3),
		},
		{
			name:   "missing talk",
			roomID: int64Ptr(2),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`UPDATE talks t SET room_id`).
					WithArgs(int64(10), int64(2)).
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name:   "missing room",
			roomID: int64Ptr(99),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`UPDATE talks t SET room_id`).
					WithArgs(int64(10), int64(99)).
					WillReturnError(&pq.Error{Code: codeForeignKeyViolation})
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			tt.mock(mock)
			got, err := NewRoomAssignmentRepository(db).Reassign(ctx, 10, tt.roomID)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPrevious, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRoomAssignmentRepository_CountAndDelete(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM talks WHERE room_id = \$1`).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectExec(`DELETE FROM talks WHERE room_id = \$1`).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM talks WHERE room_id IS NOT NULL`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(6))
	mock.ExpectExec(`DELETE FROM talks WHERE room_id IS NOT NULL`).
		WillReturnResult(sqlmock.NewResult(0, 6))

	repo := NewRoomAssignmentRepository(db)
	n, err := repo.CountTalks(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	deleted, err := repo.DeleteTalks(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	n, err = repo.CountAssigned(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	deleted, err = repo.DeleteAssigned(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(6), deleted)
	require.NoError(t, mock.ExpectationsWereMet())
}
