package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// validColor is the ✓ indicator color, darker on light backgrounds.
func validColor(variant fyne.ThemeVariant) color.Color {
	if variant == theme.VariantLight {
		return color.NRGBA{R: 0, G: 140, B: 60, A: 255}
	}
	return color.NRGBA{R: 90, G: 210, B: 120, A: 255}
}

// invalidColor is the ✗ indicator color.
func invalidColor(variant fyne.ThemeVariant) color.Color {
	if variant == theme.VariantLight {
		return color.NRGBA{R: 200, G: 30, B: 30, A: 255}
	}
	return color.NRGBA{R: 255, G: 110, B: 110, A: 255}
}
