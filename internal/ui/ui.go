package ui

import (
	"image/color"
	"strings"

	"adb-connect/internal/adb"
	"adb-connect/internal/i18n"
	"adb-connect/internal/session"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"
)

// coloredLabel is a custom widget for displaying colored text
type coloredLabel struct {
	widget.BaseWidget
	text  string
	color color.Color
}

func newColoredLabel(text string, color color.Color) *coloredLabel {
	l := &coloredLabel{text: text, color: color}
	l.ExtendBaseWidget(l)
	return l
}

func (l *coloredLabel) Set(text string, c color.Color) {
	l.text = text
	l.color = c
	l.Refresh()
}

func (l *coloredLabel) CreateRenderer() fyne.WidgetRenderer {
	text := canvas.NewText(l.text, l.color)
	text.TextStyle = fyne.TextStyle{Bold: true}
	return &coloredLabelRenderer{
		label: l,
		text:  text,
	}
}

type coloredLabelRenderer struct {
	label *coloredLabel
	text  *canvas.Text
}

func (r *coloredLabelRenderer) Layout(size fyne.Size) {
	r.text.Resize(size)
}

func (r *coloredLabelRenderer) MinSize() fyne.Size {
	return r.text.MinSize()
}

func (r *coloredLabelRenderer) Refresh() {
	r.text.Text = r.label.text
	r.text.Color = r.label.color
	r.text.Refresh()
}

func (r *coloredLabelRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.text}
}

func (r *coloredLabelRenderer) Destroy() {}

// DefaultWindowSize returns the preferred initial window size.
func DefaultWindowSize() fyne.Size {
	return fyne.NewSize(400, 220)
}

// view holds the widgets that are relabelled on a language switch.
type view struct {
	w    fyne.Window
	a    fyne.App
	ctrl *session.Controller
	log  *zap.Logger

	lang i18n.Language
	text *i18n.Strings

	ipLabel, portLabel *widget.Label
	ipEntry, portEntry *widget.Entry
	indicator          *coloredLabel
	connectBtn         *widget.Button
	disconnectBtn      *widget.Button
	status             *widget.Label

	// busy is true while an action runs; only touched on the UI goroutine.
	busy bool
}

// BuildUI constructs the connection form:
// - Settings menu (adb path, language, theme)
// - IP and port entries with a live validity indicator
// - Connect / Disconnect buttons and a status line
func BuildUI(w fyne.Window, a fyne.App, ctrl *session.Controller, log *zap.Logger) {
	newView(w, a, ctrl, log)
}

func newView(w fyne.Window, a fyne.App, ctrl *session.Controller, log *zap.Logger) *view {
	settings := ctrl.Settings()
	v := &view{w: w, a: a, ctrl: ctrl, log: log.Named("ui")}
	v.lang = i18n.Resolve(settings.Language)
	v.text = i18n.For(v.lang)

	lastIP, lastPort := settings.LastEndpoint()

	v.ipLabel = widget.NewLabel("")
	v.portLabel = widget.NewLabel("")
	v.ipEntry = widget.NewEntry()
	v.ipEntry.SetPlaceHolder("192.168.1.5")
	v.ipEntry.SetText(lastIP)
	v.portEntry = widget.NewEntry()
	v.portEntry.SetPlaceHolder("5555")
	v.portEntry.SetText(lastPort)

	// Hidden until the user edits a field.
	v.indicator = newColoredLabel("", color.Transparent)
	v.ipEntry.OnChanged = func(string) { v.refreshIndicator() }
	v.portEntry.OnChanged = func(string) { v.refreshIndicator() }
	v.ipEntry.OnSubmitted = func(string) { v.connect() }
	v.portEntry.OnSubmitted = func(string) { v.connect() }

	v.connectBtn = widget.NewButton("", v.connect)
	v.connectBtn.Importance = widget.HighImportance
	v.disconnectBtn = widget.NewButton("", v.disconnect)
	v.status = widget.NewLabel("")
	v.status.Wrapping = fyne.TextWrapWord

	fields := container.New(layout.NewFormLayout(),
		v.ipLabel, v.ipEntry,
		v.portLabel, container.NewBorder(nil, nil, nil, v.indicator, v.portEntry),
	)
	buttons := container.NewGridWithColumns(2, v.connectBtn, v.disconnectBtn)

	root := container.NewBorder(nil, v.status, nil, nil, container.NewVBox(fields, buttons))
	w.SetContent(container.NewPadded(root))

	v.relabel()
	v.setStatus(v.text.StatusReady)
	return v
}

// relabel applies the current language to the window, menus and widgets.
func (v *view) relabel() {
	t := v.text
	v.w.SetTitle(t.Title)
	v.w.SetMainMenu(v.buildMainMenu())
	v.ipLabel.SetText(t.IP)
	v.portLabel.SetText(t.Port)
	v.connectBtn.SetText(t.Connect)
	v.disconnectBtn.SetText(t.Disconnect)
}

func (v *view) buildMainMenu() *fyne.MainMenu {
	t := v.text
	settings := v.ctrl.Settings()

	setPath := fyne.NewMenuItem(t.SetADBPath, v.chooseADBPath)
	detect := fyne.NewMenuItem(t.Detect, v.detectADB)

	var langItems []*fyne.MenuItem
	for _, l := range i18n.All {
		l := l
		item := fyne.NewMenuItem(t.LanguageNames[l], func() { v.changeLanguage(l) })
		item.Checked = l == v.lang
		langItems = append(langItems, item)
	}
	language := fyne.NewMenuItem(t.Language, nil)
	language.ChildMenu = fyne.NewMenu("", langItems...)

	mode := normalizeThemeMode(settings.ThemeMode)
	var themeItems []*fyne.MenuItem
	for _, m := range []struct{ mode, label string }{
		{"system", t.ThemeSystem},
		{"light", t.ThemeLight},
		{"dark", t.ThemeDark},
	} {
		m := m
		item := fyne.NewMenuItem(m.label, func() { v.changeTheme(m.mode) })
		item.Checked = m.mode == mode
		themeItems = append(themeItems, item)
	}
	themeMenu := fyne.NewMenuItem(t.Theme, nil)
	themeMenu.ChildMenu = fyne.NewMenu("", themeItems...)

	settingsMenu := fyne.NewMenu(t.Settings, setPath, detect, fyne.NewMenuItemSeparator(), language, themeMenu)
	return fyne.NewMainMenu(settingsMenu)
}

func (v *view) refreshIndicator() {
	valid := v.ctrl.ValidateFields(v.ipEntry.Text, v.portEntry.Text)
	variant := v.a.Settings().ThemeVariant()
	if valid.OK() {
		v.indicator.Set("✓", validColor(variant))
	} else {
		v.indicator.Set("✗", invalidColor(variant))
	}
}

func (v *view) setStatus(s string) {
	v.status.SetText(s)
}

func (v *view) setBusy(busy bool) {
	v.busy = busy
	if busy {
		v.connectBtn.Disable()
		v.disconnectBtn.Disable()
		v.setStatus(v.text.StatusWorking)
		return
	}
	v.connectBtn.Enable()
	v.disconnectBtn.Enable()
}

func (v *view) showError(msg string) {
	dialog.ShowInformation(v.text.Error, msg, v.w)
}

// run executes a controller action off the UI goroutine and hands the result back.
// Requests arriving while another action runs, such as Enter in an entry, are dropped.
func (v *view) run(action func(), done func()) {
	if v.busy {
		v.log.Debug("action ignored while busy")
		return
	}
	v.setBusy(true)
	go func() {
		action()
		fyne.Do(func() {
			v.setBusy(false)
			done()
		})
	}()
}

func (v *view) connect() {
	ip, port := v.ipEntry.Text, v.portEntry.Text
	target := strings.TrimSpace(ip) + ":" + strings.TrimSpace(port)
	var out session.Outcome
	v.run(func() { out = v.ctrl.Connect(ip, port) }, func() {
		if out.Kind == session.Connected {
			target = out.Endpoint.String()
			v.setStatus(v.text.ConnectedTo(target))
			if out.Err != nil {
				v.showError(v.text.Message(out.Err, target))
			}
			return
		}
		v.setStatus(v.text.StatusReady)
		v.showError(v.text.Message(out.Err, target))
	})
}

func (v *view) disconnect() {
	var out session.Outcome
	v.run(func() { out = v.ctrl.Disconnect() }, func() {
		if out.Kind == session.Disconnected {
			v.setStatus(v.text.Disconnected)
			return
		}
		v.setStatus(v.text.StatusReady)
		v.showError(v.text.Message(out.Err, ""))
	})
}

func (v *view) chooseADBPath() {
	fd := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, v.w)
			return
		}
		if rc == nil {
			return
		}
		p := rc.URI().Path()
		rc.Close()
		if strings.TrimSpace(p) == "" {
			return
		}
		v.saveADBPath(p)
	}, v.w)
	fd.Show()
}

func (v *view) detectADB() {
	p := adb.AutoDetect()
	if p == "" {
		dialog.ShowInformation(v.text.Detect, v.text.ADBNotDetected, v.w)
		return
	}
	v.saveADBPath(p)
}

func (v *view) saveADBPath(p string) {
	var err error
	v.run(func() { err = v.ctrl.SetBridgePath(p) }, func() {
		v.setStatus(v.text.StatusReady)
		if err != nil {
			v.showError(v.text.Message(err, ""))
			return
		}
		dialog.ShowInformation(v.text.Success, v.text.ADBPathSaved+"\n"+p, v.w)
	})
}

func (v *view) changeLanguage(l i18n.Language) {
	if err := v.ctrl.SetLanguage(l.Tag()); err != nil {
		v.log.Warn("language not persisted", zap.Error(err))
		v.showError(v.text.Message(err, ""))
	}
	v.lang = l
	v.text = i18n.For(l)
	v.relabel()
	v.setStatus(v.text.StatusReady)
}

func (v *view) changeTheme(mode string) {
	if err := v.ctrl.SetThemeMode(mode); err != nil {
		v.showError(v.text.Message(err, ""))
		return
	}
	ApplyThemeMode(v.a, mode)
	v.w.SetMainMenu(v.buildMainMenu())
	if v.indicator.text != "" {
		v.refreshIndicator()
	}
}
