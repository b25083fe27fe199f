// Package menu holds the list of launchable entries and the focus within it.
package menu

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Entry is one line of the menu.
type Entry struct {
	Title   string
	Command []string
}

// Menu is a scrolling list with one focused entry. At most rows entries are visible.
type Menu struct {
	entries []Entry
	focus   int
	top     int
	rows    int
}

// Load reads entries in the form "Title=command arg arg". Lines without a command are skipped.
func Load(r io.Reader, rows int) *Menu {
	if rows < 1 {
		rows = 1
	}
	m := &Menu{rows: rows}

	s := bufio.NewScanner(r)
	for s.Scan() {
		title, cmd, ok := strings.Cut(strings.TrimRight(s.Text(), "\r"), "=")
		if !ok || cmd == "" {
			continue
		}
		m.entries = append(m.entries, Entry{
			Title:   title,
			Command: strings.Split(cmd, " "),
		})
	}
	return m
}

func (m *Menu) Len() int {
	return len(m.entries)
}

// Up moves the focus one entry up, scrolling if needed.
func (m *Menu) Up() {
	if m.focus > 0 {
		m.moveFocus(m.focus - 1)
	}
}

// Down moves the focus one entry down, scrolling if needed.
func (m *Menu) Down() {
	if m.focus < len(m.entries)-1 {
		m.moveFocus(m.focus + 1)
	}
}

func (m *Menu) moveFocus(idx int) {
	m.focus = idx
	if m.focus < m.top {
		m.top = m.focus
	}
	if m.focus >= m.top+m.rows {
		m.top = m.focus - m.rows + 1
	}
}

// Focused returns the entry that a select would launch.
func (m *Menu) Focused() (Entry, bool) {
	if m.focus >= len(m.entries) {
		return Entry{}, false
	}
	return m.entries[m.focus], true
}

// Lines renders the visible part of the menu, marking the focused entry.
func (m *Menu) Lines() []string {
	end := m.top + m.rows
	if end > len(m.entries) {
		end = len(m.entries)
	}

	lines := make([]string, 0, end-m.top)
	for i := m.top; i < end; i++ {
		marker := " "
		if i == m.focus {
			marker = ">"
		}
		lines = append(lines, fmt.Sprintf("%s%s", marker, m.entries[i].Title))
	}
	return lines
}
