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

type speakerService struct {
	uow            domain.UnitOfWork
	orm            domain.SpeakerTalkFinder
	fallback       FallbackPolicy
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewSpeakerService returns a domain.SpeakerService. orm computes the ORM variant of the
// speaker/talk join; fallback decides who inherits the talks of a deleted speaker.
func NewSpeakerService(uow domain.UnitOfWork,
	orm domain.SpeakerTalkFinder,
	fallback FallbackPolicy,
	logger *slog.Logger,
	timeout time.Duration,
) domain.SpeakerService {
	return &speakerService{
		uow:            uow,
		orm:            orm,
		fallback:       fallback,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func validateSpeaker(s *domain.Speaker) error {
	if strings.TrimSpace(s.FirstName) == "" {
		return fmt.Errorf("%w: first_name is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(s.LastName) == "" {
		return fmt.Errorf("%w: last_name is required", domain.ErrInvalidInput)
	}
	return nil
}

func (s *speakerService) Create(ctx context.Context, speaker *domain.Speaker) error {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := validateSpeaker(speaker); err != nil {
		return err
	}
	speaker.ID = 0
	if err := s.uow.Speakers().Save(ctx, speaker); err != nil {
		return fmt.Errorf("create speaker: %w", err)
	}
	return nil
}

func (s *speakerService) Get(ctx context.Context, id int64) (*domain.Speaker, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	speaker, err := s.uow.Speakers().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get speaker: %w", err)
	}
	return speaker, nil
}

func (s *speakerService) Update(ctx context.Context, id int64, update domain.SpeakerUpdate) (*domain.Speaker, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	var out *domain.Speaker
	err := s.uow.Execute(ctx, func(repos domain.Repositories) error {
		speaker, err := repos.Speakers().GetByID(ctx, id)
		if err != nil {
			return err
		}
		speaker.FirstName = update.FirstName
		speaker.LastName = update.LastName
		speaker.Age = update.Age
		if err := validateSpeaker(speaker); err != nil {
			return err
		}
		if err := repos.Speakers().Save(ctx, speaker); err != nil {
			return err
		}
		out = speaker
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update speaker: %w", err)
	}
	return out, nil
}

func (s *speakerService) Delete(ctx context.Context, id int64) error {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	err := s.uow.Execute(ctx, func(repos domain.Repositories) error {
		talks, err := repos.Talks().ListBySpeakerID(ctx, id)
		if err != nil {
			return fmt.Errorf("list talks: %w", err)
		}
		if len(talks) > 0 {
			fallback, err := s.fallback.Select(ctx, repos.Speakers(), id)
			if err != nil {
				return err
			}
			ids := make([]int64, 0, len(talks))
			for _, t := range talks {
				ids = append(ids, t.ID)
			}
			if _, err := repos.Talks().ReassignSpeaker(ctx, ids, fallback.ID); err != nil {
				return fmt.Errorf("reassign talks: %w", err)
			}
			s.logger.InfoContext(ctx, "talks reassigned to fallback speaker",
				"speaker_id", id,
				"fallback_speaker_id", fallback.ID,
				"talks", len(ids),
			)
		}
		return repos.Speakers().Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("delete speaker: %w", err)
	}
	return nil
}

func (s *speakerService) DeleteAll(ctx context.Context) (int64, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	n, err := s.uow.Speakers().DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("delete all speakers: %w", err)
	}
	return n, nil
}

func (s *speakerService) List(ctx context.Context, sort domain.Sort) ([]*domain.Speaker, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	speakers, err := s.uow.Speakers().List(ctx, sort)
	if err != nil {
		return nil, fmt.Errorf("list speakers: %w", err)
	}
	if speakers == nil {
		speakers = []*domain.Speaker{}
	}
	return speakers, nil
}

func (s *speakerService) ListPage(ctx context.Context, page domain.PageRequest) (*domain.Page[*domain.Speaker], error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	if page.Page < 0 || page.Size <= 0 {
		return nil, fmt.Errorf("%w: page must be >= 0 and size > 0", domain.ErrInvalidInput)
	}
	speakers, total, err := s.uow.Speakers().ListPage(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("list speakers page: %w", err)
	}
	return domain.NewPage(speakers, page, total), nil
}

func (s *speakerService) ListByFirstName(ctx context.Context, firstName string) ([]*domain.SpeakerSummary, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	out, err := s.uow.Speakers().ListByFirstName(ctx, firstName)
	if err != nil {
		return nil, fmt.Errorf("list speakers by first name: %w", err)
	}
	if out == nil {
		out = []*domain.SpeakerSummary{}
	}
	return out, nil
}

func (s *speakerService) ListTalks(ctx context.Context, id int64) ([]*domain.Talk, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.uow.Speakers().GetByID(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get speaker: %w", err)
	}
	talks, err := s.uow.Talks().ListBySpeakerID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list speaker talks: %w", err)
	}
	if talks == nil {
		talks = []*domain.Talk{}
	}
	return talks, nil
}

func (s *speakerService) SpeakerTalks(ctx context.Context, id int64, source domain.ProjectionSource) ([]*domain.SpeakerTalk, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	var finder domain.SpeakerTalkFinder
	switch source {
	case domain.ProjectionNative, "":
		finder = s.uow.Projections()
	case domain.ProjectionORM:
		finder = s.orm
	default:
		return nil, fmt.Errorf("%w: unknown projection source %q", domain.ErrInvalidInput, source)
	}
	out, err := finder.SpeakerTalks(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("speaker talks: %w", err)
	}
	return nonNil(out), nil
}

func (s *speakerService) AllSpeakerTalks(ctx context.Context) ([]*domain.SpeakerTalk, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	out, err := s.uow.Projections().AllSpeakerTalks(ctx)
	if err != nil {
		return nil, fmt.Errorf("all speaker talks: %w", err)
	}
	return nonNil(out), nil
}

func (s *speakerService) TalkCounts(ctx context.Context, titlePrefix string) ([]*domain.SpeakerTalk, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	out, err := s.uow.Projections().TalkCounts(ctx, titlePrefix)
	if err != nil {
		return nil, fmt.Errorf("talk counts: %w", err)
	}
	return nonNil(out), nil
}

func nonNil(rows []*domain.SpeakerTalk) []*domain.SpeakerTalk {
	if rows == nil {
		return []*domain.SpeakerTalk{}
	}
	return rows
}
