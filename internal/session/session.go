// Package session drives adb wireless connections: it validates the target
// endpoint, runs adb connect/disconnect, decides whether the call worked and
// records the result in the persisted settings.
package session

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"adb-connect/internal/adb"
	"adb-connect/internal/config"
	"adb-connect/internal/endpoint"

	"go.uber.org/zap"
)

var (
	ErrNoBridgeConfigured = errors.New("adb path not set")
	ErrMissingInput       = errors.New("ip address and port are required")
	ErrInvalidEndpoint    = errors.New("invalid ip address or port")
	ErrBridgeInvalid      = errors.New("not a valid adb executable")
	ErrConnectFailed      = errors.New("connect failed")
	ErrDisconnectFailed   = errors.New("disconnect failed")
	ErrSettingsSave       = errors.New("saving settings failed")
	ErrBusy               = errors.New("another adb command is still running")
)

// connectedMarker must appear in adb's stdout for a connect to count; adb may
// exit zero while reporting a refused connection.
const connectedMarker = "connected"

// Bridge is the adb surface the controller needs. *adb.Manager satisfies it.
type Bridge interface {
	Probe(path string) bool
	SetPath(path string)
	Connect(endpoint string) adb.Result
	Disconnect() adb.Result
}

// Kind tags an Outcome.
type Kind int

const (
	Failed Kind = iota
	Connected
	Disconnected
)

// Outcome is what a Connect or Disconnect produced.
// Err is set for Failed outcomes, and for a Connected outcome whose endpoint
// could not be persisted.
type Outcome struct {
	Kind     Kind
	Endpoint endpoint.Endpoint
	Err      error
}

// Reason returns a stable code for the outcome's error, empty when there is none.
func (o Outcome) Reason() string {
	switch {
	case o.Err == nil:
		return ""
	case errors.Is(o.Err, ErrNoBridgeConfigured):
		return "set_adb_first"
	case errors.Is(o.Err, ErrMissingInput):
		return "enter_ip_port"
	case errors.Is(o.Err, ErrInvalidEndpoint):
		return "invalid_ip_port"
	case errors.Is(o.Err, ErrConnectFailed):
		return "connect_failed"
	case errors.Is(o.Err, ErrDisconnectFailed):
		return "disconnect_failed"
	case errors.Is(o.Err, ErrSettingsSave):
		return "settings_save_failed"
	case errors.Is(o.Err, ErrBusy):
		return "busy"
	}
	return "error"
}

// FieldValidity drives the live input indicators.
type FieldValidity struct {
	IP   bool
	Port bool
}

// OK reports whether both fields are valid.
func (v FieldValidity) OK() bool {
	return v.IP && v.Port
}

// Controller runs one adb action at a time against the configured bridge.
type Controller struct {
	store  *config.Store
	bridge Bridge
	log    *zap.Logger

	// busy admits a single action; callers racing it get ErrBusy.
	busy sync.Mutex
}

func New(store *config.Store, bridge Bridge, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	bridge.SetPath(store.Settings().ADBPath)
	return &Controller{store: store, bridge: bridge, log: log.Named("session")}
}

// Settings returns a snapshot of the persisted settings.
func (c *Controller) Settings() config.Settings {
	return c.store.Settings()
}

// ValidateFields reports the validity of each form field independently.
func (c *Controller) ValidateFields(ip, port string) FieldValidity {
	return FieldValidity{
		IP:   endpoint.ValidateIP(ip),
		Port: endpoint.ValidatePort(port),
	}
}

// SetBridgePath probes path and, if it is a genuine adb, persists it and
// points the bridge at it. The probe blocks for at most adb.DefaultProbeTimeout.
func (c *Controller) SetBridgePath(path string) error {
	if !c.busy.TryLock() {
		return ErrBusy
	}
	defer c.busy.Unlock()

	path = strings.TrimSpace(path)
	if path == "" || !c.bridge.Probe(path) {
		c.log.Info("rejected adb path", zap.String("path", path))
		return fmt.Errorf("%w: %s", ErrBridgeInvalid, path)
	}
	if err := c.store.Update(func(s *config.Settings) { s.ADBPath = path }); err != nil {
		return fmt.Errorf("%w: %v", ErrSettingsSave, err)
	}
	c.bridge.SetPath(path)
	c.log.Info("adb path saved", zap.String("path", path))
	return nil
}

// Connect validates ip and port, runs adb connect and persists the endpoint
// when adb both exits zero and reports the connection in its output.
func (c *Controller) Connect(ip, port string) Outcome {
	if !c.busy.TryLock() {
		return Outcome{Kind: Failed, Err: ErrBusy}
	}
	defer c.busy.Unlock()

	if c.store.Settings().ADBPath == "" {
		return Outcome{Kind: Failed, Err: ErrNoBridgeConfigured}
	}
	ip = strings.TrimSpace(ip)
	port = strings.TrimSpace(port)
	if ip == "" || port == "" {
		return Outcome{Kind: Failed, Err: ErrMissingInput}
	}
	ep, err := endpoint.New(ip, port)
	if err != nil {
		return Outcome{Kind: Failed, Err: fmt.Errorf("%w: %v", ErrInvalidEndpoint, err)}
	}

	target := ep.String()
	res := c.bridge.Connect(target)
	if !res.OK() || !strings.Contains(strings.ToLower(res.Stdout), connectedMarker) {
		c.log.Warn("adb connect failed",
			zap.String("endpoint", target),
			zap.Stringer("status", res.Status),
			zap.String("stdout", strings.TrimSpace(res.Stdout)),
			zap.String("stderr", strings.TrimSpace(res.Stderr)),
			zap.Error(res.Err),
		)
		return Outcome{Kind: Failed, Endpoint: ep, Err: fmt.Errorf("%w: %s", ErrConnectFailed, target)}
	}

	c.log.Info("connected", zap.String("endpoint", target))
	out := Outcome{Kind: Connected, Endpoint: ep}
	if err := c.store.Update(func(s *config.Settings) { s.LastIPPort = target }); err != nil {
		out.Err = fmt.Errorf("%w: %v", ErrSettingsSave, err)
	}
	return out
}

// Disconnect runs adb disconnect.
func (c *Controller) Disconnect() Outcome {
	if !c.busy.TryLock() {
		return Outcome{Kind: Failed, Err: ErrBusy}
	}
	defer c.busy.Unlock()

	if c.store.Settings().ADBPath == "" {
		return Outcome{Kind: Failed, Err: ErrNoBridgeConfigured}
	}
	res := c.bridge.Disconnect()
	if !res.OK() {
		c.log.Warn("adb disconnect failed", zap.Stringer("status", res.Status), zap.Error(res.Err))
		return Outcome{Kind: Failed, Err: ErrDisconnectFailed}
	}
	c.log.Info("disconnected")
	return Outcome{Kind: Disconnected}
}

// SetLanguage persists the UI language tag. It does not affect adb handling.
func (c *Controller) SetLanguage(tag string) error {
	if err := c.store.Update(func(s *config.Settings) { s.Language = tag }); err != nil {
		return fmt.Errorf("%w: %v", ErrSettingsSave, err)
	}
	return nil
}

// SetThemeMode persists the theme preference ("system", "light" or "dark").
func (c *Controller) SetThemeMode(mode string) error {
	if err := c.store.Update(func(s *config.Settings) { s.ThemeMode = mode }); err != nil {
		return fmt.Errorf("%w: %v", ErrSettingsSave, err)
	}
	return nil
}
