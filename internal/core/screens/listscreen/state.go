// Package listscreen holds the task list screen: the tasks grouped into
// status sections, a sort picker, a title filter and navigation to the edit,
// delete, create and settings screens.
package listscreen

import (
	"github.com/colonyops/tasks/internal/core/task"
	"github.com/colonyops/tasks/internal/core/tasklist"
)

// View is the display variant of the list screen. Exactly one of Loading,
// Content, NoItems or Error.
type View interface{ isView() }

// Loading is shown until the first snapshot arrives and after a sort change.
type Loading struct{}

// Content carries the aggregated tasks.
type Content struct {
	Overview tasklist.Overview
}

// NoItems is shown when the store holds no tasks at all.
type NoItems struct{}

// Error is shown when the store could not be read.
type Error struct {
	Message string
}

func (Loading) isView() {}
func (Content) isView() {}
func (NoItems) isView() {}
func (Error) isView()   {}

// State is the full list screen state.
type State struct {
	View           View
	SortBy         task.SortBy
	FilterBy       task.Status
	ShowSortDialog bool

	// Match is the title filter as typed; MatchErr is set when it does not
	// compile, in which case the previous filter stays in effect.
	Match    string
	MatchErr string

	// Toggled holds sections whose expand flag the user flipped since the
	// last FilterChange.
	Toggled map[task.Status]bool
}

// Action is a user intent submitted to the screen.
type Action interface{ isAction() }

type (
	SortChange        struct{ SortBy task.SortBy }
	ItemClick         struct{ ID int64 }
	AddTask           struct{}
	FilterChange      struct{ Status task.Status }
	ShowSortDialog    struct{}
	DismissSortDialog struct{}
	ToggleSection     struct{ Status task.Status }
	ShowSettings      struct{}
	MatchChange       struct{ Pattern string }
)

func (SortChange) isAction()        {}
func (ItemClick) isAction()         {}
func (AddTask) isAction()           {}
func (FilterChange) isAction()      {}
func (ShowSortDialog) isAction()    {}
func (DismissSortDialog) isAction() {}
func (ToggleSection) isAction()     {}
func (ShowSettings) isAction()      {}
func (MatchChange) isAction()       {}

// Event is a one-shot side effect for the presentation layer.
type Event interface{ isEvent() }

type (
	NavigateToEdit     struct{ ID int64 }
	NavigateToDelete   struct{ ID int64 }
	NavigateToCreate   struct{}
	NavigateToSettings struct{}
)

func (NavigateToEdit) isEvent()     {}
func (NavigateToDelete) isEvent()   {}
func (NavigateToCreate) isEvent()   {}
func (NavigateToSettings) isEvent() {}
