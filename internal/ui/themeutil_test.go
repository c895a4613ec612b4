package ui

import (
	"testing"

	"fyne.io/fyne/v2/theme"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeThemeMode(t *testing.T) {
	assert.Equal(t, "light", normalizeThemeMode(" Light "))
	assert.Equal(t, "dark", normalizeThemeMode("dark"))
	assert.Equal(t, "system", normalizeThemeMode(""))
	assert.Equal(t, "system", normalizeThemeMode("neon"))
}

func TestIndicatorColorsDiffer(t *testing.T) {
	assert.NotEqual(t, validColor(theme.VariantLight), invalidColor(theme.VariantLight))
	assert.NotEqual(t, validColor(theme.VariantDark), invalidColor(theme.VariantDark))
	assert.NotEqual(t, validColor(theme.VariantLight), validColor(theme.VariantDark))
}

func TestIsDarkStyle(t *testing.T) {
	tests := []struct {
		out  string
		want bool
	}{
		{"Dark\n", true},
		{"dark", true},
		{"", false},
		{"Light\n", false},
		{"Darker", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isDarkStyle(tt.out), "%q", tt.out)
	}
}

func TestDetectSystemDarkHonorsFyneTheme(t *testing.T) {
	t.Setenv("FYNE_THEME", " Dark ")
	dark, known := detectSystemDark()
	assert.True(t, dark)
	assert.True(t, known)

	t.Setenv("FYNE_THEME", "light")
	dark, known = detectSystemDark()
	assert.False(t, dark)
	assert.True(t, known)
}
