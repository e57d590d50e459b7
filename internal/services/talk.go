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

type talkService struct {
	uow            domain.UnitOfWork
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewTalkService returns a domain.TalkService.
func NewTalkService(uow domain.UnitOfWork, logger *slog.Logger, timeout time.Duration) domain.TalkService {
	return &talkService{
		uow:            uow,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func validateTalk(t *domain.Talk) error {
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	return nil
}

func (s *talkService) CreateTalk(ctx context.Context, talk *domain.Talk) error {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	if talk.SpeakerID == 0 || talk.RoomID == nil || *talk.RoomID == 0 {
		return domain.ErrMissingReference
	}
	return s.create(ctx, talk)
}

func (s *talkService) CreateTutorial(ctx context.Context, talk *domain.Talk) error {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	if talk.SpeakerID == 0 {
		return domain.ErrMissingReference
	}
	talk.RoomID = nil
	return s.create(ctx, talk)
}

// create checks the speaker and then the room before inserting.
func (s *talkService) create(ctx context.Context, talk *domain.Talk) error {
	if err := validateTalk(talk); err != nil {
		return err
	}
	talk.ID = 0
	err := s.uow.Execute(ctx, func(repos domain.Repositories) error {
		if _, err := repos.Speakers().GetByID(ctx, talk.SpeakerID); err != nil {
			return fmt.Errorf("speaker %d: %w", talk.SpeakerID, err)
		}
		if talk.RoomID != nil {
			if _, err := repos.Rooms().GetByID(ctx, *talk.RoomID); err != nil {
				return fmt.Errorf("room %d: %w", *talk.RoomID, err)
			}
		}
		return repos.Talks().Create(ctx, talk)
	})
	if err != nil {
		return fmt.Errorf("create talk: %w", err)
	}
	return nil
}

func (s *talkService) Get(ctx context.Context, id int64) (*domain.Talk, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	talk, err := s.uow.Talks().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get talk: %w", err)
	}
	return talk, nil
}

func (s *talkService) List(ctx context.Context, titleContains string) ([]*domain.Talk, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	var (
		talks []*domain.Talk
		err   error
	)
	if titleContains == "" {
		talks, err = s.uow.Talks().List(ctx)
	} else {
		talks, err = s.uow.Talks().ListByTitleContaining(ctx, titleContains)
	}
	if err != nil {
		return nil, fmt.Errorf("list talks: %w", err)
	}
	return nonNilTalks(talks), nil
}

func (s *talkService) ListPublished(ctx context.Context, published bool) ([]*domain.Talk, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	talks, err := s.uow.Talks().ListByPublished(ctx, published)
	if err != nil {
		return nil, fmt.Errorf("list published talks: %w", err)
	}
	return nonNilTalks(talks), nil
}

func (s *talkService) ListWithFunction(ctx context.Context) ([]*domain.Talk, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	talks, err := s.uow.Talks().ListWithFunction(ctx)
	if err != nil {
		return nil, fmt.Errorf("list talks with function: %w", err)
	}
	return nonNilTalks(talks), nil
}

func (s *talkService) Update(ctx context.Context, id int64, update domain.TalkUpdate) (*domain.Talk, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	var out *domain.Talk
	err := s.uow.Execute(ctx, func(repos domain.Repositories) error {
		talk, err := repos.Talks().GetByID(ctx, id)
		if err != nil {
			return err
		}
		talk.Title = update.Title
		talk.Description = update.Description
		talk.Published = update.Published
		if err := validateTalk(talk); err != nil {
			return err
		}

		if update.SpeakerID != nil {
			current, err := repos.Talks().SpeakerIDOf(ctx, id)
			if err != nil {
				return err
			}
			if *update.SpeakerID != current {
				if _, err := repos.Speakers().GetByID(ctx, *update.SpeakerID); err != nil {
					return fmt.Errorf("speaker %d: %w", *update.SpeakerID, err)
				}
				talk.SpeakerID = *update.SpeakerID
				s.logger.InfoContext(ctx, "talk moved to another speaker",
					"talk_id", id, "from_speaker_id", current, "to_speaker_id", talk.SpeakerID)
			}
		}
		if err := repos.Talks().Update(ctx, talk); err != nil {
			return err
		}

		if update.Room != nil {
			if err := s.reassign(ctx, repos, id, update.Room.RoomID); err != nil {
				return err
			}
			talk.RoomID = update.Room.RoomID
		}
		out = talk
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update talk: %w", err)
	}
	return out, nil
}

func (s *talkService) AssignRoom(ctx context.Context, talkID int64, roomID *int64) (*domain.Talk, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	var out *domain.Talk
	err := s.uow.Execute(ctx, func(repos domain.Repositories) error {
		if err := s.reassign(ctx, repos, talkID, roomID); err != nil {
			return err
		}
		talk, err := repos.Talks().GetByID(ctx, talkID)
		if err != nil {
			return err
		}
		out = talk
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("assign room: %w", err)
	}
	return out, nil
}

// reassign is the only path that changes the room of an existing talk.
func (s *talkService) reassign(ctx context.Context, repos domain.Repositories, talkID int64, roomID *int64) error {
	if roomID != nil {
		if _, err := repos.Rooms().GetByID(ctx, *roomID); err != nil {
			return fmt.Errorf("room %d: %w", *roomID, err)
		}
	}
	previous, err := repos.Assignments().Reassign(ctx, talkID, roomID)
	if err != nil {
		return fmt.Errorf("talk %d: %w", talkID, err)
	}
	s.logger.DebugContext(ctx, "talk room changed",
		"talk_id", talkID, "from_room_id", roomAttr(previous), "to_room_id", roomAttr(roomID))
	return nil
}

func (s *talkService) Delete(ctx context.Context, id int64) error {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.uow.Talks().Delete(ctx, id); err != nil {
		return fmt.Errorf("delete talk: %w", err)
	}
	return nil
}

func (s *talkService) DeleteAll(ctx context.Context) (int64, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	n, err := s.uow.Talks().DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("delete all talks: %w", err)
	}
	return n, nil
}

// roomAttr renders an optional room id for logging; 0 means no room.
func roomAttr(id *int64) int64 {
	if id == nil {
		return 0
	}
	return *id
}

func nonNilTalks(talks []*domain.Talk) []*domain.Talk {
	if talks == nil {
		return []*domain.Talk{}
	}
	return talks
}
