package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kmctl-dev/kmctl/internal/cli/tui/theme"
)

// choiceItem is a single selectable line.
type choiceItem struct {
	title string
}

func (i choiceItem) Title() string       { return i.title }
func (i choiceItem) FilterValue() string { return i.title }

// choiceDelegate renders choiceItems one per line with a cursor.
type choiceDelegate struct{}

func (choiceDelegate) Height() int                             { return 1 }
func (choiceDelegate) Spacing() int                            { return 0 }
func (choiceDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (choiceDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(choiceItem)
	if !ok {
		return
	}
	if index == m.Index() {
		fmt.Fprint(w, theme.SelectedStyle().Render("> "+it.title))
		return
	}
	fmt.Fprint(w, "  "+it.title)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func lineCount(s string) int {
	if s == "" {
		return 0
	}
	return strings.Count(s, "\n") + 1
}
