package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"talkcatalog/internal/domain"
)

type roomService struct {
	uow            domain.UnitOfWork
	deletePolicy   domain.RoomDeletePolicy
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewRoomService returns a domain.RoomService that deletes rooms according to policy.
// An unknown policy is treated as domain.RoomDeleteReject.
func NewRoomService(uow domain.UnitOfWork, policy domain.RoomDeletePolicy, logger *slog.Logger, timeout time.Duration) domain.RoomService {
	if !policy.Valid() {
		policy = domain.RoomDeleteReject
	}
	return &roomService{
		uow:            uow,
		deletePolicy:   policy,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func validateRoom(r *domain.Room) error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("%w: room_name is required", domain.ErrInvalidInput)
	}
	if r.Capacity < 0 {
		return fmt.Errorf("%w: room_capacity must not be negative", domain.ErrInvalidInput)
	}
	return nil
}

func (s *roomService) Create(ctx context.Context, room *domain.Room) error {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := validateRoom(room); err != nil {
		return err
	}
	room.ID = 0
	if err := s.uow.Rooms().Save(ctx, room); err != nil {
		return fmt.Errorf("create room: %w", err)
	}
	return nil
}

func (s *roomService) Get(ctx context.Context, id int64) (*domain.Room, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	room, err := s.uow.Rooms().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get room: %w", err)
	}
	return room, nil
}

func (s *roomService) List(ctx context.Context) ([]*domain.Room, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	rooms, err := s.uow.Rooms().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	if rooms == nil {
		rooms = []*domain.Room{}
	}
	return rooms, nil
}

func (s *roomService) ListTalks(ctx context.Context, id int64) ([]*domain.Talk, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.uow.Rooms().GetByID(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get room: %w", err)
	}
	talks, err := s.uow.Talks().ListByRoomID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list room talks: %w", err)
	}
	return nonNilTalks(talks), nil
}

func (s *roomService) Update(ctx context.Context, id int64, update domain.RoomUpdate) (*domain.Room, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	var out *domain.Room
	err := s.uow.Execute(ctx, func(repos domain.Repositories) error {
		room, err := repos.Rooms().GetByID(ctx, id)
		if err != nil {
			return err
		}
		room.Name = update.Name
		room.Capacity = update.Capacity
		room.Floor = update.Floor
		if err := validateRoom(room); err != nil {
			return err
		}
		if err := repos.Rooms().Save(ctx, room); err != nil {
			return err
		}
		out = room
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update room: %w", err)
	}
	return out, nil
}

func (s *roomService) Delete(ctx context.Context, id int64) error {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	err := s.uow.Execute(ctx, func(repos domain.Repositories) error {
		n, err := repos.Assignments().CountTalks(ctx, id)
		if err != nil {
			return fmt.Errorf("count room talks: %w", err)
		}
		if n > 0 {
			if s.deletePolicy != domain.RoomDeleteCascade {
				return fmt.Errorf("room %d has %d talks: %w", id, n, domain.ErrHasDependents)
			}
			deleted, err := repos.Assignments().DeleteTalks(ctx, id)
			if err != nil {
				return fmt.Errorf("delete room talks: %w", err)
			}
			s.logger.InfoContext(ctx, "room talks deleted with room", "room_id", id, "talks", deleted)
		}
		return repos.Rooms().Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("delete room: %w", err)
	}
	return nil
}

func (s *roomService) DeleteAll(ctx context.Context) (int64, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	var removed int64
	err := s.uow.Execute(ctx, func(repos domain.Repositories) error {
		n, err := repos.Assignments().CountAssigned(ctx)
		if err != nil {
			return fmt.Errorf("count assigned talks: %w", err)
		}
		if n > 0 {
			if s.deletePolicy != domain.RoomDeleteCascade {
				return fmt.Errorf("%d talks are in rooms: %w", n, domain.ErrHasDependents)
			}
			deleted, err := repos.Assignments().DeleteAssigned(ctx)
			if err != nil {
				return fmt.Errorf("delete assigned talks: %w", err)
			}
			s.logger.InfoContext(ctx, "talks deleted with all rooms", "talks", deleted)
		}
		removed, err = repos.Rooms().DeleteAll(ctx)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("delete all rooms: %w", err)
	}
	return removed, nil
}
