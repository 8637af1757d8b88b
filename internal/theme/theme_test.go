package theme_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsanders-rh/exopolicy/internal/theme"
)

func intPtr(v int) *int { return &v }

func rgb(r, g, b int) *theme.RGBOverride {
	return &theme.RGBOverride{R: intPtr(r), G: intPtr(g), B: intPtr(b)}
}

func TestResolve(t *testing.T) {
	t.Run("nil override resolves to default", func(t *testing.T) {
		resolved, warnings := theme.Resolve(nil)
		assert.Equal(t, theme.Default(), resolved)
		assert.Empty(t, warnings)
	})

	t.Run("valid override replaces colours", func(t *testing.T) {
		resolved, warnings := theme.Resolve(&theme.Theme{
			Light: &theme.PaletteOverride{Primary: rgb(1, 2, 3)},
			Dark:  &theme.PaletteOverride{Secondary: rgb(255, 0, 255)},
		})
		assert.Empty(t, warnings)
		assert.Equal(t, theme.RGB{R: 1, G: 2, B: 3}, resolved.Light.Primary)
		assert.Equal(t, theme.Default().Light.Secondary, resolved.Light.Secondary)
		assert.Equal(t, theme.Default().Dark.Primary, resolved.Dark.Primary)
		assert.Equal(t, theme.RGB{R: 255, G: 0, B: 255}, resolved.Dark.Secondary)
	})

	t.Run("out of range channel falls back with warning", func(t *testing.T) {
		resolved, warnings := theme.Resolve(&theme.Theme{
			Light: &theme.PaletteOverride{
				Primary:   rgb(300, 10, 10),
				Secondary: rgb(5, 6, 7),
			},
		})
		assert.Equal(t, theme.Default().Light.Primary, resolved.Light.Primary)
		assert.Equal(t, theme.RGB{R: 5, G: 6, B: 7}, resolved.Light.Secondary)

		require.Len(t, warnings, 1)
		assert.Equal(t, theme.PaletteChannelOutOfRange, warnings[0].Kind)
		assert.Equal(t, "light", warnings[0].Mode)
		assert.Equal(t, "primary", warnings[0].Role)
		assert.Equal(t, "r", warnings[0].Channel)
		require.NotNil(t, warnings[0].Value)
		assert.Equal(t, 300, *warnings[0].Value)
		assert.Contains(t, warnings[0].String(), "outside [0,255]")
	})

	t.Run("missing channel falls back with warning", func(t *testing.T) {
		resolved, warnings := theme.Resolve(&theme.Theme{
			Dark: &theme.PaletteOverride{
				Primary: &theme.RGBOverride{R: intPtr(1), B: intPtr(3)},
			},
		})
		assert.Equal(t, theme.Default().Dark.Primary, resolved.Dark.Primary)
		require.Len(t, warnings, 1)
		assert.Equal(t, "g", warnings[0].Channel)
		assert.Nil(t, warnings[0].Value)
		assert.Contains(t, warnings[0].String(), "missing")
	})

	t.Run("negative channels are reported individually", func(t *testing.T) {
		_, warnings := theme.Resolve(&theme.Theme{
			Light: &theme.PaletteOverride{Secondary: rgb(-1, -2, 0)},
		})
		assert.Len(t, warnings, 2)
	})
}

func TestRGB_Hex(t *testing.T) {
	assert.Equal(t, "#006ca3", theme.Default().Light.Primary.Hex())
}
