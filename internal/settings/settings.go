// Package settings persists user preferences such as the color theme.
package settings

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Theme is the color palette of the terminal UI.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// DefaultTheme is used when nothing valid is stored.
const DefaultTheme = ThemeDark

// ParseTheme accepts "dark" or "light", case-insensitively.
func ParseTheme(s string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeDark:
		return ThemeDark, nil
	case ThemeLight:
		return ThemeLight, nil
	}
	return "", fmt.Errorf("unknown theme %q, expected dark or light", s)
}

// Toggled returns the other theme.
func (t Theme) Toggled() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

// Settings is the persisted document.
type Settings struct {
	Theme Theme `yaml:"theme"`
}

// Store loads and saves Settings.
type Store interface {
	Load() (Settings, error)
	Save(Settings) error
}

// Manager owns the current settings. It reads the store once on creation and
// writes back on every change.
type Manager struct {
	mu      sync.Mutex
	store   Store
	logger  *zap.Logger
	current Settings
}

// NewManager loads the stored settings. A missing or unreadable document, or
// an unknown theme, yields the defaults.
func NewManager(store Store, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Manager{
		store:   store,
		logger:  logger.Named("settings"),
		current: Settings{Theme: DefaultTheme},
	}

	loaded, err := store.Load()
	if err != nil {
		m.logger.Warn("failed to load settings, using defaults", zap.Error(err))
		return m
	}
	if theme, err := ParseTheme(string(loaded.Theme)); err == nil {
		m.current.Theme = theme
	} else if loaded.Theme != "" {
		m.logger.Warn("ignoring stored theme", zap.String("theme", string(loaded.Theme)))
	}
	return m
}

// Theme returns the current theme.
func (m *Manager) Theme() Theme {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current.Theme
}

// SetTheme changes the theme and saves it. Setting the current theme again
// does not write.
func (m *Manager) SetTheme(theme Theme) error {
	if _, err := ParseTheme(string(theme)); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current.Theme == theme {
		return nil
	}
	next := m.current
	next.Theme = theme
	if err := m.store.Save(next); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	m.current = next
	m.logger.Debug("theme changed", zap.String("theme", string(theme)))
	return nil
}

// ToggleTheme switches between dark and light and returns the new theme.
func (m *Manager) ToggleTheme() (Theme, error) {
	next := m.Theme().Toggled()
	if err := m.SetTheme(next); err != nil {
		return m.Theme(), err
	}
	return next, nil
}
