// Package theme holds the lipgloss palettes for the dark and light themes.
package theme

import (
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/kmctl-dev/kmctl/internal/settings"
	"github.com/kmctl-dev/kmctl/pkg/printer"
)

// Palette is the set of colors one theme uses.
type Palette struct {
	Name     settings.Theme
	Heading  lipgloss.Color
	Accent   lipgloss.Color
	Selected lipgloss.Color
	Muted    lipgloss.Color
	Success  lipgloss.Color
	Warning  lipgloss.Color
	Error    lipgloss.Color
}

var palettes = map[settings.Theme]Palette{
	settings.ThemeDark: {
		Name:     settings.ThemeDark,
		Heading:  lipgloss.Color("117"),
		Accent:   lipgloss.Color("45"),
		Selected: lipgloss.Color("57"),
		Muted:    lipgloss.Color("244"),
		Success:  lipgloss.Color("42"),
		Warning:  lipgloss.Color("214"),
		Error:    lipgloss.Color("196"),
	},
	settings.ThemeLight: {
		Name:     settings.ThemeLight,
		Heading:  lipgloss.Color("24"),
		Accent:   lipgloss.Color("25"),
		Selected: lipgloss.Color("153"),
		Muted:    lipgloss.Color("240"),
		Success:  lipgloss.Color("28"),
		Warning:  lipgloss.Color("130"),
		Error:    lipgloss.Color("160"),
	},
}

var (
	mu      sync.RWMutex
	current = palettes[settings.DefaultTheme]
)

// For returns the palette of t, falling back to the default theme.
func For(t settings.Theme) Palette {
	if p, ok := palettes[t]; ok {
		return p
	}
	return palettes[settings.DefaultTheme]
}

// Apply makes t the active palette for prompts and printed status lines.
func Apply(t settings.Theme) {
	p := For(t)
	mu.Lock()
	current = p
	mu.Unlock()

	printer.SetStyles(printer.Styles{
		Info:    lipgloss.NewStyle().Foreground(p.Accent),
		Success: lipgloss.NewStyle().Foreground(p.Success),
		Warning: lipgloss.NewStyle().Foreground(p.Warning),
		Error:   lipgloss.NewStyle().Foreground(p.Error),
	})
}

// Current returns the active palette.
func Current() Palette {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

func HeadingStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(Current().Heading)
}

func StatusStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Current().Muted)
}

func ErrorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Current().Error)
}

func SelectedStyle() lipgloss.Style {
	p := Current()
	return lipgloss.NewStyle().Bold(true).Foreground(p.Accent).Background(p.Selected)
}
