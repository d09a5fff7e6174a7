package tui

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kmctl-dev/kmctl/internal/cli/tui/theme"
)

// ConfirmDialog asks a yes/no question. Anything but an explicit yes is a no.
type ConfirmDialog struct {
	message   string
	confirmed bool
	done      bool
}

// NewConfirmDialog returns a dialog showing message.
func NewConfirmDialog(message string) *ConfirmDialog {
	return &ConfirmDialog{message: message}
}

func (d *ConfirmDialog) Confirmed() bool { return d.confirmed }

func (d *ConfirmDialog) Init() tea.Cmd { return nil }

func (d *ConfirmDialog) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return d, nil
	}
	switch key.String() {
	case "y", "Y":
		d.confirmed = true
		d.done = true
		return d, tea.Quit
	case "n", "N", "esc", "q", "ctrl+c", "enter":
		d.done = true
		return d, tea.Quit
	}
	return d, nil
}

func (d *ConfirmDialog) View() string {
	if d.done {
		return ""
	}
	return theme.HeadingStyle().Render(d.message) + " " + theme.StatusStyle().Render("[y/N]") + "\n"
}

// Confirm shows message and waits for y or n.
func Confirm(in io.Reader, out io.Writer, message string) (bool, error) {
	d := NewConfirmDialog(message)
	if _, err := tea.NewProgram(d, tea.WithInput(in), tea.WithOutput(out)).Run(); err != nil {
		return false, fmt.Errorf("confirmation prompt failed: %w", err)
	}
	return d.Confirmed(), nil
}
