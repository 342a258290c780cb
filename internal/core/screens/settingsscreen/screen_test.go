package settingsscreen

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/tasks/internal/core/eventbus"
	"github.com/colonyops/tasks/internal/core/eventbus/testbus"
	"github.com/colonyops/tasks/internal/core/settings"
	"github.com/colonyops/tasks/internal/data/db"
	"github.com/colonyops/tasks/internal/data/stores"
)

const waitTimeout = 2 * time.Second

func waitState(t *testing.T, ctx context.Context, s *Screen, pred func(State) bool) State {
	t.Helper()
	ctx, cancel := context.WithTimeout(ctx, waitTimeout)
	defer cancel()

	for st := range s.Subscribe(ctx) {
		if pred(st) {
			return st
		}
	}
	require.FailNow(t, "state never matched", "last state: %+v", s.State())
	return State{}
}

func TestScreen_ThemeChangePersists(t *testing.T) {
	database, err := db.Open(t.TempDir(), db.DefaultOpenOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	bus := testbus.New(t)
	prefs := settings.NewService(stores.NewKVStore(database), bus.EventBus, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := New(prefs, zerolog.Nop())
	go func() { _ = s.Run(ctx) }()

	assert.Equal(t, settings.ThemeSystem, s.State().Theme)

	require.NoError(t, s.Send(ctx, ThemeChange{Theme: settings.ThemeDark}))
	waitState(t, ctx, s, func(st State) bool { return st.Theme == settings.ThemeDark })

	stored, err := prefs.Theme(ctx)
	require.NoError(t, err)
	assert.Equal(t, settings.ThemeDark, stored)
	require.True(t, bus.WaitFor(eventbus.EventThemeChanged, waitTimeout))

	// Another writer is reflected on the screen.
	require.NoError(t, prefs.SetTheme(ctx, settings.ThemeLight))
	waitState(t, ctx, s, func(st State) bool { return st.Theme == settings.ThemeLight })

	require.NoError(t, s.Send(ctx, Back{}))
	select {
	case e := <-s.Events():
		assert.Equal(t, NavigateBack{}, e)
	case <-time.After(waitTimeout):
		t.Fatal("no navigate event")
	}
}

type brokenPrefs struct {
	ch chan settings.Theme
}

func (b brokenPrefs) SetTheme(context.Context, settings.Theme) error {
	return errors.New("read-only database")
}

func (b brokenPrefs) Subscribe(context.Context) <-chan settings.Theme { return b.ch }

func TestScreen_ThemeChangeFailure(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := New(brokenPrefs{ch: make(chan settings.Theme)}, zerolog.Nop())
	go func() { _ = s.Run(ctx) }()

	require.NoError(t, s.Send(ctx, ThemeChange{Theme: settings.ThemeLight}))
	st := waitState(t, ctx, s, func(st State) bool { return st.Error != "" })
	assert.Equal(t, settings.ThemeSystem, st.Theme)
	assert.Contains(t, st.Error, "read-only")
}
