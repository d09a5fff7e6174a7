package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmctl-dev/kmctl/internal/settings"
	"github.com/kmctl-dev/kmctl/pkg/printer"
)

type stubLister struct {
	namespaces []string
	err        error
}

func (s stubLister) ListNamespaces(context.Context) ([]string, error) {
	if s.namespaces == nil {
		return []string{}, s.err
	}
	return s.namespaces, s.err
}

func capturePrinter(t *testing.T) *bytes.Buffer {
	t.Helper()
	var stdout, stderr bytes.Buffer
	printer.SetOutput(&stdout, &stderr)
	t.Cleanup(func() { printer.SetOutput(nil, nil) })
	return &stdout
}

func TestNamespacesCmd(t *testing.T) {
	out := capturePrinter(t)
	SetAPIClient(stubLister{namespaces: []string{"default", "apps"}})
	t.Cleanup(func() { SetAPIClient(nil) })

	namespacesOutputFormat = "json"
	t.Cleanup(func() { namespacesOutputFormat = "table" })

	require.NoError(t, runNamespaces(NamespacesCmd, nil))
	var got []string
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, []string{"default", "apps"}, got)
}

func TestNamespacesCmd_Error(t *testing.T) {
	capturePrinter(t)
	SetAPIClient(stubLister{err: errors.New("connection refused")})
	t.Cleanup(func() { SetAPIClient(nil) })

	require.Error(t, runNamespaces(NamespacesCmd, nil))
}

func TestThemeCmd(t *testing.T) {
	out := capturePrinter(t)
	store := settings.NewMemoryStore(settings.Settings{})
	SetSettings(settings.NewManager(store, nil))
	t.Cleanup(func() { SetSettings(nil) })

	require.NoError(t, runTheme(ThemeCmd, nil))
	assert.Contains(t, out.String(), "Current theme: dark")

	require.NoError(t, runTheme(ThemeCmd, []string{"toggle"}))
	assert.Contains(t, out.String(), "Theme set to light")
	assert.Equal(t, 1, store.Saves)

	require.NoError(t, runTheme(ThemeCmd, []string{"dark"}))
	saved, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, settings.ThemeDark, saved.Theme)

	require.Error(t, runTheme(ThemeCmd, []string{"purple"}))
}

func TestVersionCmd(t *testing.T) {
	var buf bytes.Buffer
	VersionCmd.SetOut(&buf)
	t.Cleanup(func() { VersionCmd.SetOut(nil) })

	require.NoError(t, VersionCmd.RunE(VersionCmd, nil))
	assert.Contains(t, buf.String(), "kmctl version dev")
}
