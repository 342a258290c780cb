// Package tasklist turns a flat task snapshot into display sections grouped
// by status, with an overall completion figure.
package tasklist

import (
	"cmp"
	"slices"

	"github.com/colonyops/tasks/internal/core/task"
)

// Section is a group of tasks sharing one status.
type Section struct {
	Status   task.Status `json:"status"`
	Tasks    []task.Task `json:"tasks"`
	Count    int         `json:"count"`
	Expanded bool        `json:"expanded"`
}

// Label returns the section header text.
func (s Section) Label() string {
	return s.Status.Label()
}

// Progress is the share of all tasks that are completed.
type Progress struct {
	Completed int     `json:"completed"`
	Total     int     `json:"total"`
	Percent   float64 `json:"percent"`
}

// Overview is the aggregated form of one snapshot.
type Overview struct {
	Sections []Section `json:"sections"`
	// Progress is nil unless at least one task is completed.
	Progress *Progress `json:"progress,omitempty"`
}

// Empty reports whether the overview has no sections.
func (o Overview) Empty() bool {
	return len(o.Sections) == 0
}

// Section returns the section for a status, if present.
func (o Overview) Section(status task.Status) (Section, bool) {
	for _, s := range o.Sections {
		if s.Status == status {
			return s, true
		}
	}
	return Section{}, false
}

// Aggregate groups tasks by status and orders each group by sortBy. Sections
// appear in the order their status is first seen in tasks. A section is
// marked expanded when its status equals expand.
//
// The input slice is not modified.
func Aggregate(tasks []task.Task, sortBy task.SortBy, expand task.Status) Overview {
	var (
		order  []task.Status
		groups = make(map[task.Status][]task.Task)
	)

	for _, t := range tasks {
		if _, seen := groups[t.Status]; !seen {
			order = append(order, t.Status)
		}
		groups[t.Status] = append(groups[t.Status], t)
	}

	sections := make([]Section, 0, len(order))
	for _, status := range order {
		items := groups[status]
		Sort(items, sortBy)
		sections = append(sections, Section{
			Status:   status,
			Tasks:    items,
			Count:    len(items),
			Expanded: status == expand,
		})
	}

	return Overview{Sections: sections, Progress: ProgressOf(tasks)}
}

// ProgressOf counts completed tasks against all of tasks. It returns nil when
// none are completed.
func ProgressOf(tasks []task.Task) *Progress {
	completed := 0
	for _, t := range tasks {
		if t.Status == task.StatusCompleted {
			completed++
		}
	}
	if completed == 0 {
		return nil
	}
	return &Progress{
		Completed: completed,
		Total:     len(tasks),
		Percent:   float64(completed) / float64(len(tasks)) * 100,
	}
}

// Sort orders tasks in place. Ties keep their input order.
//
//   - SortDueDate: latest calendar day first; time of day is ignored.
//   - SortAlphabet: ascending id. The name suggests title order, but existing
//     users see id order and no title comparator has ever shipped.
//   - anything else: highest priority first.
func Sort(tasks []task.Task, sortBy task.SortBy) {
	switch sortBy {
	case task.SortDueDate:
		slices.SortStableFunc(tasks, func(a, b task.Task) int {
			return b.DueDay().Compare(a.DueDay())
		})
	case task.SortAlphabet:
		slices.SortStableFunc(tasks, func(a, b task.Task) int {
			return cmp.Compare(a.ID, b.ID)
		})
	default:
		slices.SortStableFunc(tasks, func(a, b task.Task) int {
			return cmp.Compare(b.Priority, a.Priority)
		})
	}
}
