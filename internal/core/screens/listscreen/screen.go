package listscreen

import (
	"context"
	"maps"

	"github.com/rs/zerolog"

	"github.com/colonyops/tasks/internal/core/reducer"
	"github.com/colonyops/tasks/internal/core/task"
	"github.com/colonyops/tasks/internal/core/tasklist"
)

// Source is the live task query the screen renders.
type Source interface {
	Watch(ctx context.Context) <-chan task.Snapshot
}

// Options sets the initial sort and expanded section.
type Options struct {
	SortBy   task.SortBy
	FilterBy task.Status
}

// Screen is the task list state machine.
type Screen struct {
	machine *reducer.Machine[State, Action, Event]
	source  Source
	log     zerolog.Logger

	// Owned by the Run goroutine.
	last    *task.Snapshot
	matcher tasklist.Matcher
}

// New creates a list screen in the Loading state.
func New(source Source, opts Options, log zerolog.Logger) *Screen {
	if opts.SortBy == "" {
		opts.SortBy = task.SortDueDate
	}
	if opts.FilterBy == "" {
		opts.FilterBy = task.StatusPending
	}

	log = log.With().Str("component", "list-screen").Logger()
	initial := State{
		View:     Loading{},
		SortBy:   opts.SortBy,
		FilterBy: opts.FilterBy,
	}

	return &Screen{
		machine: reducer.New[State, Action, Event](initial, log),
		source:  source,
		log:     log,
	}
}

// State returns the current state.
func (s *Screen) State() State { return s.machine.State() }

// Subscribe streams states, starting with the current one.
func (s *Screen) Subscribe(ctx context.Context) <-chan State { return s.machine.Subscribe(ctx) }

// Events streams one-shot navigation events.
func (s *Screen) Events() <-chan Event { return s.machine.Events() }

// Send queues an action for Run.
func (s *Screen) Send(ctx context.Context, a Action) error { return s.machine.Send(ctx, a) }

// Run subscribes to the source and applies snapshots and actions in arrival
// order until ctx is done.
func (s *Screen) Run(ctx context.Context) error {
	snapshots := s.source.Watch(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil

		case snap, ok := <-snapshots:
			if !ok {
				return nil
			}
			s.last = &snap
			s.machine.Update(s.recompute)

		case a := <-s.machine.Actions():
			s.handle(a)
		}
	}
}

func (s *Screen) handle(a Action) {
	switch a := a.(type) {
	case SortChange:
		s.machine.Update(func(st State) State {
			st.ShowSortDialog = false
			st.SortBy = a.SortBy
			st.View = Loading{}
			return st
		})
		if s.last != nil {
			s.machine.Update(s.recompute)
		}

	case ItemClick:
		t, ok := s.find(a.ID)
		if !ok {
			s.log.Debug().Int64("id", a.ID).Msg("click on unknown task ignored")
			return
		}
		if t.Status == task.StatusPending {
			s.machine.Emit(NavigateToEdit{ID: t.ID})
		} else {
			s.machine.Emit(NavigateToDelete{ID: t.ID})
		}

	case AddTask:
		s.machine.Emit(NavigateToCreate{})

	case ShowSettings:
		s.machine.Emit(NavigateToSettings{})

	case FilterChange:
		s.machine.Update(func(st State) State {
			st.FilterBy = a.Status
			st.Toggled = nil
			return s.recompute(st)
		})

	case ShowSortDialog:
		s.machine.Update(func(st State) State {
			st.ShowSortDialog = true
			return st
		})

	case DismissSortDialog:
		s.machine.Update(func(st State) State {
			st.ShowSortDialog = false
			return st
		})

	case ToggleSection:
		s.machine.Update(func(st State) State {
			toggled := maps.Clone(st.Toggled)
			if toggled == nil {
				toggled = make(map[task.Status]bool)
			}
			if toggled[a.Status] {
				delete(toggled, a.Status)
			} else {
				toggled[a.Status] = true
			}
			st.Toggled = toggled
			return s.recompute(st)
		})

	case MatchChange:
		matcher, err := tasklist.NewMatcher(a.Pattern)
		s.machine.Update(func(st State) State {
			st.Match = a.Pattern
			if err != nil {
				st.MatchErr = err.Error()
				return st
			}
			st.MatchErr = ""
			s.matcher = matcher
			return s.recompute(st)
		})

	default:
		s.log.Warn().Type("action", a).Msg("unhandled action")
	}
}

// recompute derives the view from the last snapshot. Before the first
// snapshot the view is left as is.
func (s *Screen) recompute(st State) State {
	if s.last == nil {
		return st
	}

	switch {
	case s.last.Err != nil:
		st.View = Error{Message: s.last.Err.Error()}
	case len(s.last.Tasks) == 0:
		st.View = NoItems{}
	default:
		overview := tasklist.Aggregate(s.matcher.Filter(s.last.Tasks), st.SortBy, st.FilterBy)
		// Progress always covers the whole snapshot, matched or not.
		overview.Progress = tasklist.ProgressOf(s.last.Tasks)
		for i := range overview.Sections {
			if st.Toggled[overview.Sections[i].Status] {
				overview.Sections[i].Expanded = !overview.Sections[i].Expanded
			}
		}
		st.View = Content{Overview: overview}
	}
	return st
}

func (s *Screen) find(id int64) (task.Task, bool) {
	if s.last == nil {
		return task.Task{}, false
	}
	for _, t := range s.last.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return task.Task{}, false
}
