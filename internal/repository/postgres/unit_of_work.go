package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"talkcatalog/internal/domain"
)

// UnitOfWork hands out repositories bound either to the pool or to one transaction.
type UnitOfWork struct {
	db *sql.DB
	q  DBTX
}

// NewUnitOfWork returns a domain.UnitOfWork whose repositories run on db outside Execute.
func NewUnitOfWork(db *sql.DB) *UnitOfWork {
	return &UnitOfWork{db: db, q: db}
}

func (u *UnitOfWork) Speakers() domain.SpeakerRepository { return NewSpeakerRepository(u.q) }

func (u *UnitOfWork) Talks() domain.TalkRepository { return NewTalkRepository(u.q) }

func (u *UnitOfWork) Rooms() domain.RoomRepository { return NewRoomRepository(u.q) }

func (u *UnitOfWork) Assignments() domain.RoomAssignmentRepository {
	return NewRoomAssignmentRepository(u.q)
}

func (u *UnitOfWork) Projections() domain.ProjectionRepository { return NewProjectionRepository(u.q) }

func (u *UnitOfWork) Execute(ctx context.Context, fn func(repos domain.Repositories) error) error {
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(&UnitOfWork{db: u.db, q: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
