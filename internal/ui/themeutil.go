package ui

import (
	"os"
	"os/exec"
	"runtime"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// detectSystemDark reports whether the OS prefers a dark theme. known is
// false when there is no answer and fyne should follow the OS itself.
func detectSystemDark() (dark, known bool) {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("FYNE_THEME"))) {
	case "dark":
		return true, true
	case "light":
		return false, true
	}
	if runtime.GOOS != "darwin" {
		return false, false
	}
	// The key is absent in light mode, so a failed read means light.
	out, err := exec.Command("defaults", "read", "-g", "AppleInterfaceStyle").Output()
	return err == nil && isDarkStyle(string(out)), true
}

func isDarkStyle(out string) bool {
	return strings.EqualFold(strings.TrimSpace(out), "dark")
}

// normalizeThemeMode maps stored values to "system", "light" or "dark".
func normalizeThemeMode(mode string) string {
	switch m := strings.ToLower(strings.TrimSpace(mode)); m {
	case "light", "dark":
		return m
	default:
		return "system"
	}
}

// ApplyThemeMode applies the theme based on mode: "light", "dark", "system".
func ApplyThemeMode(app fyne.App, mode string) {
	if app == nil {
		return
	}
	set := func(th fyne.Theme) {
		app.Settings().SetTheme(th)
	}
	switch normalizeThemeMode(mode) {
	case "light":
		set(theme.LightTheme())
	case "dark":
		set(theme.DarkTheme())
	default:
		if dark, known := detectSystemDark(); known {
			if dark {
				set(theme.DarkTheme())
			} else {
				set(theme.LightTheme())
			}
			return
		}
		// Let fyne follow the OS on its own.
		set(theme.DefaultTheme())
	}
}
