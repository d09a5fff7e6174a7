package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLister struct {
	namespaces []string
	err        error
}

func (s stubLister) ListNamespaces(context.Context) ([]string, error) {
	return s.namespaces, s.err
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestConfirmDialog(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{key: "y", want: true},
		{key: "n", want: false},
		{key: "esc", want: false},
		{key: "enter", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			d := NewConfirmDialog("Delete pod web-1?")
			assert.Contains(t, d.View(), "Delete pod web-1?")
			_, cmd := d.Update(key(tt.key))
			require.NotNil(t, cmd)
			assert.Equal(t, tt.want, d.Confirmed())
		})
	}
}

func TestConfirmDialog_IgnoresOtherKeys(t *testing.T) {
	d := NewConfirmDialog("Delete?")
	_, cmd := d.Update(key("x"))
	assert.Nil(t, cmd)
	assert.False(t, d.Confirmed())
}

func TestNamespacePicker_SelectsNamespace(t *testing.T) {
	p := NewNamespacePicker(context.Background(), stubLister{namespaces: []string{"default", "apps"}})
	msg := p.Init()()
	p.Update(msg)
	p.Update(key("down"))
	_, cmd := p.Update(key("enter"))

	require.NotNil(t, cmd)
	assert.True(t, p.Ok())
	assert.Equal(t, "apps", p.Result())
}

func TestNamespacePicker_ShowsLoadError(t *testing.T) {
	p := NewNamespacePicker(context.Background(), stubLister{err: errors.New("connection refused")})
	p.Update(p.Init()())

	assert.Contains(t, p.View(), "connection refused")
	p.Update(key("enter"))
	assert.False(t, p.Ok())
}
