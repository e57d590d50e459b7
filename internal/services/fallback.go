package services

import (
	"context"
	"errors"
	"fmt"

	"talkcatalog/internal/domain"
)

// FallbackPolicy picks the speaker that takes over the talks of a deleted speaker.
// It returns domain.ErrNoFallbackSpeaker when nobody qualifies.
type FallbackPolicy interface {
	Select(ctx context.Context, speakers domain.SpeakerRepository, deletedID int64) (*domain.Speaker, error)
}

// NewFallbackPolicy returns DefaultSpeakerFallback when defaultSpeakerID is set and
// LowestIDFallback otherwise.
func NewFallbackPolicy(defaultSpeakerID int64) FallbackPolicy {
	if defaultSpeakerID > 0 {
		return DefaultSpeakerFallback{SpeakerID: defaultSpeakerID}
	}
	return LowestIDFallback{}
}

// LowestIDFallback selects the remaining speaker with the numerically lowest id.
type LowestIDFallback struct{}

func (LowestIDFallback) Select(ctx context.Context, speakers domain.SpeakerRepository, deletedID int64) (*domain.Speaker, error) {
	s, err := speakers.LowestIDExcept(ctx, deletedID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNoFallbackSpeaker
		}
		return nil, fmt.Errorf("find fallback speaker: %w", err)
	}
	return s, nil
}

// DefaultSpeakerFallback always selects SpeakerID. The configured speaker cannot take over its
// own talks, so deleting it while it has talks is rejected.
type DefaultSpeakerFallback struct {
	SpeakerID int64
}

func (p DefaultSpeakerFallback) Select(ctx context.Context, speakers domain.SpeakerRepository, deletedID int64) (*domain.Speaker, error) {
	if p.SpeakerID == deletedID {
		return nil, domain.ErrNoFallbackSpeaker
	}
	s, err := speakers.GetByID(ctx, p.SpeakerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNoFallbackSpeaker
		}
		return nil, fmt.Errorf("get fallback speaker: %w", err)
	}
	return s, nil
}
