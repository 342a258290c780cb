// Package task defines the task domain model: a titled to-do item with a
// priority, a due date, and a pending/completed status.
package task

import (
	"fmt"
	"strings"
	"time"
)

// Status represents the lifecycle state of a task.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// Label returns the display name used for section headers.
func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusCompleted:
		return "Completed"
	default:
		return string(s)
	}
}

// ParseStatus parses a status string, case-insensitively.
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusPending:
		return StatusPending, nil
	case StatusCompleted:
		return StatusCompleted, nil
	}
	return "", fmt.Errorf("%w: unknown status %q", ErrInvalid, s)
}

// Priority is an ordered importance level. Higher values sort first when
// ordering by priority.
type Priority int

const (
	PriorityLow    Priority = 1
	PriorityMedium Priority = 2
	PriorityHigh   Priority = 3
)

// Priorities lists all priorities from lowest to highest.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	default:
		return fmt.Sprintf("Priority(%d)", int(p))
	}
}

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	return p >= PriorityLow && p <= PriorityHigh
}

// ParsePriority accepts a priority name ("low", "Medium") or its ordinal ("1".."3").
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low", "1":
		return PriorityLow, nil
	case "medium", "med", "2":
		return PriorityMedium, nil
	case "high", "3":
		return PriorityHigh, nil
	}
	return 0, fmt.Errorf("%w: unknown priority %q", ErrInvalid, s)
}

// Task is a single to-do item.
type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Priority    Priority  `json:"priority"`
	DueDate     time.Time `json:"due_date"`
	Status      Status    `json:"status"`
}

// New returns a pending task with the default priority and a due date of now.
func New(title string, now time.Time) Task {
	return Task{
		Title:    title,
		Priority: PriorityLow,
		DueDate:  now,
		Status:   StatusPending,
	}
}

// IsBlank reports whether the title has no visible characters.
func (t Task) IsBlank() bool {
	return strings.TrimSpace(t.Title) == ""
}

// DueDay returns the calendar date of the due date in its own location,
// truncated to midnight.
func (t Task) DueDay() time.Time {
	y, m, d := t.DueDate.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SortBy selects the ordering applied within each status section.
type SortBy string

const (
	SortDueDate  SortBy = "due_date"
	SortAlphabet SortBy = "alphabet"
	SortPriority SortBy = "priority"
)

// SortOptions lists the selectable sort criteria in menu order.
var SortOptions = []SortBy{SortDueDate, SortAlphabet, SortPriority}

// Label returns the display name of the sort criterion.
func (s SortBy) Label() string {
	switch s {
	case SortDueDate:
		return "Due date"
	case SortAlphabet:
		return "Alphabet"
	case SortPriority:
		return "Priority"
	default:
		return string(s)
	}
}

// ParseSortBy parses a sort criterion name. "due", "date" and "title" are
// accepted as shorthands.
func ParseSortBy(s string) (SortBy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "due_date", "due", "date", "duedate":
		return SortDueDate, nil
	case "alphabet", "title", "alpha":
		return SortAlphabet, nil
	case "priority":
		return SortPriority, nil
	}
	return "", fmt.Errorf("%w: unknown sort %q", ErrInvalid, s)
}
