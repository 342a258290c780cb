package settings

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/colonyops/tasks/internal/core/eventbus"
	"github.com/colonyops/tasks/internal/core/kv"
	"github.com/colonyops/tasks/pkg/replay"
)

const (
	namespace = "app"
	themeKey  = "theme"
)

// Service stores preferences in a KV store and broadcasts changes to
// subscribers. ThemeSystem is stored as an absent key.
type Service struct {
	themes *kv.TypedKV[Theme]
	bus    *eventbus.EventBus
	log    zerolog.Logger

	// mu orders writes against the first subscriber's seed read.
	mu    sync.Mutex
	topic replay.Topic[Theme]
}

// NewService creates a preference service. bus may be nil.
func NewService(store kv.KV, bus *eventbus.EventBus, logger zerolog.Logger) *Service {
	return &Service{
		themes: kv.Scoped[Theme](store, namespace),
		bus:    bus,
		log:    logger,
	}
}

// Theme returns the stored theme, ThemeSystem when unset.
func (s *Service) Theme(ctx context.Context) (Theme, error) {
	t, err := s.themes.GetOr(ctx, themeKey, ThemeSystem)
	if err != nil {
		return ThemeSystem, fmt.Errorf("read theme: %w", err)
	}
	if _, err := ParseTheme(string(t)); err != nil {
		s.log.Warn().Str("theme", string(t)).Msg("ignoring unknown stored theme")
		return ThemeSystem, nil
	}
	return t, nil
}

// SetTheme persists t and notifies subscribers.
func (s *Service) SetTheme(ctx context.Context, t Theme) error {
	if _, err := ParseTheme(string(t)); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	if t == ThemeSystem {
		err = s.themes.Delete(ctx, themeKey)
	} else {
		err = s.themes.Set(ctx, themeKey, t)
	}
	if err != nil {
		return fmt.Errorf("store theme: %w", err)
	}

	s.log.Debug().Str("theme", string(t)).Msg("theme changed")
	s.topic.Publish(t)
	if s.bus != nil {
		s.bus.PublishThemeChanged(eventbus.ThemeChangedPayload{Theme: string(t)})
	}
	return nil
}

// Subscribe returns a channel that yields the current theme immediately and
// every later change. The channel closes when ctx is done.
func (s *Service) Subscribe(ctx context.Context) <-chan Theme {
	s.mu.Lock()
	if _, ok := s.topic.Latest(); !ok {
		t, err := s.Theme(ctx)
		if err != nil {
			s.log.Error().Err(err).Msg("failed to load theme; using system")
		}
		s.topic.Publish(t)
	}
	s.mu.Unlock()

	return s.topic.Subscribe(ctx)
}
