package editscreen

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/colonyops/tasks/internal/core/reducer"
	"github.com/colonyops/tasks/internal/core/task"
	"github.com/colonyops/tasks/internal/core/validate"
)

// Service is the task surface the form writes through.
type Service interface {
	Create(ctx context.Context, t task.Task) (task.Task, error)
	Update(ctx context.Context, t task.Task) error
	Complete(ctx context.Context, id int64) error
	Remove(ctx context.Context, id int64) error
	WatchTask(ctx context.Context, id int64) <-chan task.Result
}

// Screen is the create/edit form state machine.
type Screen struct {
	machine *reducer.Machine[State, Action, Event]
	svc     Service
	log     zerolog.Logger

	removed bool
}

// NewCreate opens an empty form prefilled from defaults.
func NewCreate(svc Service, defaults task.Task, log zerolog.Logger) *Screen {
	if defaults.Priority == 0 {
		defaults.Priority = task.PriorityLow
	}
	return newScreen(svc, State{
		Priority:    defaults.Priority,
		DueDate:     defaults.DueDate,
		Description: defaults.Description,
		Title:       defaults.Title,
		Mode:        Create{},
		View:        Ready{},
		Loaded:      true,
	}, log)
}

// NewEdit opens the form for task id. Fields fill in once Run loads the task.
func NewEdit(svc Service, id int64, log zerolog.Logger) *Screen {
	return newScreen(svc, State{
		Priority: task.PriorityLow,
		Mode:     Edit{ID: id},
		View:     Ready{},
	}, log)
}

func newScreen(svc Service, initial State, log zerolog.Logger) *Screen {
	log = log.With().Str("component", "edit-screen").Logger()
	return &Screen{
		machine: reducer.New[State, Action, Event](initial, log),
		svc:     svc,
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

// Run loads the edited task, if any, and applies actions until ctx is done.
func (s *Screen) Run(ctx context.Context) error {
	var results <-chan task.Result
	if edit, ok := s.State().Mode.(Edit); ok {
		results = s.svc.WatchTask(ctx, edit.ID)
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case res, ok := <-results:
			if !ok {
				results = nil
				continue
			}
			s.load(res)

		case a := <-s.machine.Actions():
			s.handle(ctx, a)
		}
	}
}

// load copies the watched task into the form once. Later emissions are
// ignored so they do not overwrite edits in progress.
func (s *Screen) load(res task.Result) {
	if s.removed || s.State().Loaded {
		return
	}

	if res.Err != nil {
		msg := res.Err.Error()
		if errors.Is(res.Err, task.ErrNotFound) {
			msg = "task not found"
		}
		s.machine.Update(func(st State) State {
			st.View = Error{Message: msg}
			return st
		})
		return
	}

	if res.Task.IsBlank() {
		s.log.Debug().Int64("id", res.Task.ID).Msg("blank task not loaded into form")
		return
	}

	s.machine.Update(func(st State) State {
		st.Title = res.Task.Title
		st.Description = res.Task.Description
		st.Priority = res.Task.Priority
		st.DueDate = res.Task.DueDate
		st.Loaded = true
		st.View = Ready{}
		return st
	})
}

func (s *Screen) handle(ctx context.Context, a Action) {
	switch a := a.(type) {
	case TitleChange:
		s.edit(func(st *State) { st.Title = a.Title })
	case DescriptionChange:
		s.edit(func(st *State) { st.Description = a.Description })
	case PriorityChange:
		if !a.Priority.Valid() {
			s.fail("unknown priority")
			return
		}
		s.edit(func(st *State) { st.Priority = a.Priority })
	case DueDateChange:
		s.edit(func(st *State) { st.DueDate = a.DueDate })

	case Save:
		s.save(ctx)

	case MarkDone:
		edit, ok := s.State().Mode.(Edit)
		if !ok {
			return
		}
		s.persist(func() error { return s.svc.Complete(ctx, edit.ID) })

	case Delete:
		edit, ok := s.State().Mode.(Edit)
		if !ok {
			s.machine.Emit(NavigateBack{})
			return
		}
		s.setView(Saving{})
		s.removed = true
		if err := s.svc.Remove(ctx, edit.ID); err != nil {
			s.removed = false
			s.fail(err.Error())
			return
		}
		s.setView(Ready{})
		s.machine.Emit(NavigateBack{})

	case AcknowledgeSuccess:
		s.machine.Update(func(st State) State {
			st.ShowSuccess = false
			return st
		})
		s.machine.Emit(NavigateBack{})

	default:
		s.log.Warn().Type("action", a).Msg("unhandled action")
	}
}

func (s *Screen) save(ctx context.Context) {
	st := s.State()
	if err := validate.Title(st.Title); err != nil {
		s.fail(err.Error())
		return
	}

	t := task.Task{
		Title:       strings.TrimSpace(st.Title),
		Description: st.Description,
		Priority:    st.Priority,
		DueDate:     st.DueDate,
	}

	switch mode := st.Mode.(type) {
	case Create:
		s.persist(func() error {
			_, err := s.svc.Create(ctx, t)
			return err
		})
	case Edit:
		t.ID = mode.ID
		s.persist(func() error { return s.svc.Update(ctx, t) })
	}
}

// persist runs fn between the Saving view and either a success banner or
// the error view.
func (s *Screen) persist(fn func() error) {
	s.setView(Saving{})
	if err := fn(); err != nil {
		s.log.Error().Err(err).Msg("save failed")
		s.fail(err.Error())
		return
	}
	s.machine.Update(func(st State) State {
		st.View = Ready{}
		st.ShowSuccess = true
		return st
	})
}

// edit applies a field change and clears a previous error.
func (s *Screen) edit(fn func(*State)) {
	s.machine.Update(func(st State) State {
		fn(&st)
		if _, ok := st.View.(Error); ok {
			st.View = Ready{}
		}
		return st
	})
}

func (s *Screen) setView(v View) {
	s.machine.Update(func(st State) State {
		st.View = v
		return st
	})
}

func (s *Screen) fail(msg string) {
	s.setView(Error{Message: msg})
}
