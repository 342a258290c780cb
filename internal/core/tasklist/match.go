package tasklist

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/colonyops/tasks/internal/core/task"
)

// Matcher filters tasks by a case-insensitive glob on the title.
// A pattern without glob metacharacters matches as a substring.
type Matcher struct {
	pattern string
}

// NewMatcher compiles pattern. An empty pattern matches everything.
func NewMatcher(pattern string) (Matcher, error) {
	pattern = strings.ToLower(strings.TrimSpace(pattern))
	if pattern == "" {
		return Matcher{}, nil
	}

	if !strings.ContainsAny(pattern, "*?[{") {
		pattern = "*" + pattern + "*"
	}

	if !doublestar.ValidatePattern(pattern) {
		return Matcher{}, fmt.Errorf("invalid match pattern %q", pattern)
	}

	return Matcher{pattern: pattern}, nil
}

// Pattern returns the compiled pattern, empty when matching everything.
func (m Matcher) Pattern() string {
	return m.pattern
}

// Match reports whether the task title matches.
func (m Matcher) Match(t task.Task) bool {
	if m.pattern == "" {
		return true
	}
	// '/' is a path separator for doublestar; titles are not paths.
	title := strings.ReplaceAll(strings.ToLower(t.Title), "/", " ")
	ok, err := doublestar.Match(m.pattern, title)
	return err == nil && ok
}

// Filter returns the tasks that match, preserving order.
func (m Matcher) Filter(tasks []task.Task) []task.Task {
	if m.pattern == "" {
		return tasks
	}
	out := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		if m.Match(t) {
			out = append(out, t)
		}
	}
	return out
}
