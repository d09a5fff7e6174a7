package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kmctl-dev/kmctl/internal/cli/tui/theme"
)

// NamespaceLister fetches namespace names.
type NamespaceLister interface {
	ListNamespaces(ctx context.Context) ([]string, error)
}

type pickerStep int

const (
	stepLoading pickerStep = iota
	stepSelect
)

// NamespacePicker lets the user choose a namespace from the backend's list.
type NamespacePicker struct {
	ctx    context.Context
	lister NamespaceLister
	width  int
	height int

	step   pickerStep
	list   list.Model
	result string
	ok     bool
	errMsg string
}

type fetchNamespacesMsg struct {
	namespaces []string
	err        error
}

// NewNamespacePicker returns a picker that loads namespaces from lister.
func NewNamespacePicker(ctx context.Context, lister NamespaceLister) *NamespacePicker {
	l := list.New([]list.Item{}, choiceDelegate{}, 50, 12)
	l.Title = "Select namespace"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = theme.HeadingStyle()
	l.Styles.PaginationStyle = list.DefaultStyles().PaginationStyle.PaddingLeft(2)

	return &NamespacePicker{ctx: ctx, lister: lister, list: l}
}

func (p *NamespacePicker) Ok() bool       { return p.ok }
func (p *NamespacePicker) Result() string { return p.result }

func (p *NamespacePicker) Init() tea.Cmd {
	return p.fetchNamespaces()
}

func (p *NamespacePicker) fetchNamespaces() tea.Cmd {
	return func() tea.Msg {
		namespaces, err := p.lister.ListNamespaces(p.ctx)
		return fetchNamespacesMsg{namespaces: namespaces, err: err}
	}
}

// Update handles Bubble Tea messages.
func (p *NamespacePicker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		p.width, p.height = m.Width, m.Height
		p.list.SetSize(maxInt(50, m.Width-20), maxInt(12, m.Height-10))
		return p, nil
	case fetchNamespacesMsg:
		if m.err != nil {
			p.errMsg = fmt.Sprintf("Failed to load namespaces: %v", m.err)
			return p, nil
		}
		if len(m.namespaces) == 0 {
			p.errMsg = "The backend returned no namespaces"
			return p, nil
		}
		items := make([]list.Item, len(m.namespaces))
		for i, ns := range m.namespaces {
			items[i] = choiceItem{ns}
		}
		p.list.SetItems(items)
		p.step = stepSelect
		return p, nil
	case tea.KeyMsg:
		if p.list.FilterState() == list.Filtering {
			break
		}
		switch m.String() {
		case "esc", "q", "ctrl+c":
			return p, tea.Quit
		case "enter":
			if it, ok := p.list.SelectedItem().(choiceItem); ok && p.step == stepSelect {
				p.result = it.Title()
				p.ok = true
				return p, tea.Quit
			}
			return p, nil
		}
	}

	if p.step != stepSelect {
		return p, nil
	}
	var cmd tea.Cmd
	p.list, cmd = p.list.Update(msg)
	return p, cmd
}

// View renders the picker.
func (p *NamespacePicker) View() string {
	var body string
	switch p.step {
	case stepLoading:
		body = theme.StatusStyle().Render("Loading namespaces...")
	case stepSelect:
		body = p.list.View()
	}
	if strings.TrimSpace(p.errMsg) != "" {
		body += theme.ErrorStyle().Render("\nError: " + p.errMsg)
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(body)
}

// PickNamespace runs the picker and returns the chosen namespace. ok is false
// when the user quit without choosing.
func PickNamespace(ctx context.Context, lister NamespaceLister) (string, bool, error) {
	picker := NewNamespacePicker(ctx, lister)
	if _, err := tea.NewProgram(picker).Run(); err != nil {
		return "", false, fmt.Errorf("namespace picker failed: %w", err)
	}
	return picker.Result(), picker.Ok(), nil
}
