package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kmctl-dev/kmctl/internal/settings"
)

func TestApply(t *testing.T) {
	t.Cleanup(func() { Apply(settings.DefaultTheme) })

	Apply(settings.ThemeLight)
	assert.Equal(t, settings.ThemeLight, Current().Name)

	Apply("neon")
	assert.Equal(t, settings.ThemeDark, Current().Name)
}

func TestPalettesDiffer(t *testing.T) {
	assert.NotEqual(t, For(settings.ThemeDark).Heading, For(settings.ThemeLight).Heading)
}
