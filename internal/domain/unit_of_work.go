package domain

import "context"

// Repositories groups the repositories bound to one database handle.
type Repositories interface {
	Speakers() SpeakerRepository
	Talks() TalkRepository
	Rooms() RoomRepository
	Assignments() RoomAssignmentRepository
	Projections() ProjectionRepository
}

// UnitOfWork runs a group of repository calls atomically.
type UnitOfWork interface {
	Repositories
	// Execute runs fn inside a transaction. The transaction is committed when fn returns nil
	// and rolled back otherwise. Calls nested inside fn join the outer transaction.
	Execute(ctx context.Context, fn func(repos Repositories) error) error
}
