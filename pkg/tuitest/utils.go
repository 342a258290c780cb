// Package tuitest provides testing utilities for TUI components.
package tuitest

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
)

// StripANSI removes ANSI escape codes and trailing whitespace so rendered
// views can be compared as plain text.
func StripANSI(s string) string {
	s = ansi.Strip(s)
	lines := strings.Split(s, "\n")
	result := make([]string, 0, len(lines))
	for _, line := range lines {
		result = append(result, strings.TrimRight(line, " "))
	}
	return strings.TrimRight(strings.Join(result, "\n"), "\n")
}

// KeyPress creates a key press message for a single printable rune.
func KeyPress(key rune) tea.KeyPressMsg {
	return tea.KeyPressMsg(tea.Key{Code: key, Text: string(key)})
}

// Type returns one key press per rune of s.
func Type(s string) []tea.KeyPressMsg {
	msgs := make([]tea.KeyPressMsg, 0, len(s))
	for _, r := range s {
		msgs = append(msgs, KeyPress(r))
	}
	return msgs
}

// KeyCtrl creates a ctrl+<key> press message.
func KeyCtrl(key rune) tea.KeyPressMsg {
	return tea.KeyPressMsg(tea.Key{Code: key, Mod: tea.ModCtrl})
}

func KeyDown() tea.KeyPressMsg  { return tea.KeyPressMsg(tea.Key{Code: tea.KeyDown}) }
func KeyUp() tea.KeyPressMsg    { return tea.KeyPressMsg(tea.Key{Code: tea.KeyUp}) }
func KeyEnter() tea.KeyPressMsg { return tea.KeyPressMsg(tea.Key{Code: tea.KeyEnter}) }
func KeyEsc() tea.KeyPressMsg   { return tea.KeyPressMsg(tea.Key{Code: tea.KeyEscape}) }
func KeyTab() tea.KeyPressMsg   { return tea.KeyPressMsg(tea.Key{Code: tea.KeyTab}) }

// WindowSize creates a window size message.
func WindowSize(w, h int) tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: w, Height: h}
}
