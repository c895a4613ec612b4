// Package gui starts the fyne application hosting the connection window.
package gui

import (
	"adb-connect/internal/session"
	"adb-connect/internal/ui"

	"fyne.io/fyne/v2/app"
	"go.uber.org/zap"
)

// Launcher returns a function that opens the window under the given app ID.
// The App ID must be stable for fyne's preferences and packaging to work.
func Launcher(appID string) func(*session.Controller, *zap.Logger) error {
	return func(ctrl *session.Controller, log *zap.Logger) error {
		a := app.NewWithID(appID)

		// Apply theme from settings (system by default)
		ui.ApplyThemeMode(a, ctrl.Settings().ThemeMode)

		w := a.NewWindow("ADB Connect")
		w.Resize(ui.DefaultWindowSize())

		ui.BuildUI(w, a, ctrl, log)
		log.Info("window opened")
		w.ShowAndRun()
		return nil
	}
}
