// Package editscreen holds the create/edit task form.
package editscreen

import (
	"time"

	"github.com/colonyops/tasks/internal/core/task"
)

// Mode says whether the form creates a new task or edits an existing one.
type Mode interface{ isMode() }

// Create is the mode for a new task.
type Create struct{}

// Edit is the mode for an existing task.
type Edit struct{ ID int64 }

func (Create) isMode() {}
func (Edit) isMode()   {}

// View is the display variant of the form.
type View interface{ isView() }

type (
	Ready  struct{}
	Saving struct{}
	Error  struct{ Message string }
)

func (Ready) isView()  {}
func (Saving) isView() {}
func (Error) isView()  {}

// State is the full form state.
type State struct {
	Title       string
	Description string
	Priority    task.Priority
	DueDate     time.Time
	Mode        Mode
	View        View

	// ShowSuccess is set after a save or completion until acknowledged.
	ShowSuccess bool
	// Loaded is set once an edited task has been copied into the form.
	Loaded bool
}

// Action is a user intent submitted to the form.
type Action interface{ isAction() }

type (
	TitleChange        struct{ Title string }
	DescriptionChange  struct{ Description string }
	PriorityChange     struct{ Priority task.Priority }
	DueDateChange      struct{ DueDate time.Time }
	Save               struct{}
	MarkDone           struct{}
	Delete             struct{}
	AcknowledgeSuccess struct{}
)

func (TitleChange) isAction()        {}
func (DescriptionChange) isAction()  {}
func (PriorityChange) isAction()     {}
func (DueDateChange) isAction()      {}
func (Save) isAction()               {}
func (MarkDone) isAction()           {}
func (Delete) isAction()             {}
func (AcknowledgeSuccess) isAction() {}

// Event is a one-shot side effect for the presentation layer.
type Event interface{ isEvent() }

// NavigateBack asks the presentation layer to leave the form.
type NavigateBack struct{}

func (NavigateBack) isEvent() {}
