package adb

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Banner is the text every genuine adb prints from "adb version".
const Banner = "Android Debug Bridge"

// DefaultProbeTimeout bounds the "adb version" sanity check.
const DefaultProbeTimeout = 2500 * time.Millisecond

// waitDelay caps how long Wait blocks on inherited pipes after the process is gone.
const waitDelay = time.Second

// Status classifies how a single adb invocation ended.
type Status int

const (
	Success Status = iota
	NonZeroExit
	NotFound
	TimedOut
	StartFailed
)

func (s Status) String() string {
	switch s {
	case Success:
		return "success"
	case NonZeroExit:
		return "non-zero exit"
	case NotFound:
		return "not found"
	case TimedOut:
		return "timed out"
	default:
		return "start failed"
	}
}

// Result is the outcome of one adb invocation.
type Result struct {
	Status Status
	Stdout string
	Stderr string
	Err    error
}

// OK reports whether the process ran and exited zero.
func (r Result) OK() bool {
	return r.Status == Success
}

// Manager runs the adb executable at Path.
type Manager struct {
	Path         string
	ProbeTimeout time.Duration

	log *zap.Logger
}

func NewManager(path string, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		Path:         path,
		ProbeTimeout: DefaultProbeTimeout,
		log:          log.Named("adb"),
	}
}

// SetPath points the manager at a different adb executable.
func (m *Manager) SetPath(path string) {
	m.Path = path
}

// Exec runs adb with the provided args and waits for it to exit.
// A zero timeout means no deadline beyond the process's own lifetime.
func (m *Manager) Exec(timeout time.Duration, args ...string) Result {
	return m.run(m.Path, timeout, args...)
}

func (m *Manager) run(bin string, timeout time.Duration, args ...string) Result {
	if strings.TrimSpace(bin) == "" {
		return Result{Status: NotFound, Err: errors.New("adb path not set")}
	}
	ctx := context.Background()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Env = os.Environ()
	cmd.WaitDelay = waitDelay
	hideConsoleWindow(cmd)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	res := Result{
		Status: classify(ctx, err),
		Stdout: stdout.String(),
		Stderr: stderr.String(),
		Err:    err,
	}
	m.log.Debug("adb invocation finished",
		zap.String("bin", bin),
		zap.Strings("args", args),
		zap.Stringer("status", res.Status),
		zap.Duration("elapsed", time.Since(start)),
		zap.Error(err),
	)
	return res
}

func classify(ctx context.Context, err error) Status {
	if err == nil {
		return Success
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return TimedOut
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return NonZeroExit
	}
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		return NotFound
	}
	return StartFailed
}

// Probe runs "<path> version" and reports whether path is a genuine adb binary.
// Every failure, including timeouts, is reported as false.
func (m *Manager) Probe(path string) bool {
	res := m.run(path, m.ProbeTimeout, "version")
	if !res.OK() {
		m.log.Info("adb probe failed", zap.String("path", path), zap.Stringer("status", res.Status), zap.Error(res.Err))
		return false
	}
	if !strings.Contains(res.Stdout, Banner) {
		m.log.Info("adb probe: banner missing", zap.String("path", path), zap.String("stdout", firstLine(res.Stdout)))
		return false
	}
	return true
}

// Version returns the first line of "adb version" for display.
func (m *Manager) Version() (string, error) {
	res := m.Exec(m.ProbeTimeout, "version")
	if !res.OK() {
		return "", res.Err
	}
	return firstLine(res.Stdout), nil
}

// Connect runs "adb connect <endpoint>". No timeout is applied.
func (m *Manager) Connect(endpoint string) Result {
	return m.Exec(0, "connect", endpoint)
}

// Disconnect runs "adb disconnect", dropping every wireless connection.
func (m *Manager) Disconnect() Result {
	return m.Exec(0, "disconnect")
}

// AutoDetect returns the first adb found in PATH, an Android SDK
// platform-tools directory or a usual install location, or "" if none exists.
func AutoDetect() string {
	exe := adbExecutableName()
	if p, err := exec.LookPath(exe); err == nil {
		return p
	}
	for _, c := range adbCandidates(exe) {
		if fileExists(c) {
			return c
		}
	}
	return ""
}

// adbCandidates lists install locations in search order: SDK roots from the
// environment first, then the per-OS defaults.
func adbCandidates(exe string) []string {
	var dirs []string
	for _, env := range []string{"ANDROID_SDK_ROOT", "ANDROID_HOME"} {
		if root := os.Getenv(env); root != "" {
			dirs = append(dirs, filepath.Join(root, "platform-tools"))
		}
	}
	home, _ := os.UserHomeDir()
	switch runtime.GOOS {
	case "windows":
		if local := os.Getenv("LOCALAPPDATA"); local != "" {
			dirs = append(dirs, filepath.Join(local, "Android", "Sdk", "platform-tools"))
		}
		dirs = append(dirs, `C:\Android\platform-tools`)
	case "darwin":
		if home != "" {
			dirs = append(dirs, filepath.Join(home, "Library", "Android", "sdk", "platform-tools"))
		}
		dirs = append(dirs, "/opt/homebrew/bin", "/usr/local/bin")
	default:
		if home != "" {
			dirs = append(dirs, filepath.Join(home, "Android", "Sdk", "platform-tools"))
		}
		dirs = append(dirs, "/usr/bin", "/usr/local/bin")
	}
	out := make([]string, len(dirs))
	for i, d := range dirs {
		out[i] = filepath.Join(d, exe)
	}
	return out
}

func adbExecutableName() string {
	if runtime.GOOS == "windows" {
		return "adb.exe"
	}
	return "adb"
}

func fileExists(p string) bool {
	if p == "" {
		return false
	}
	st, err := os.Stat(p)
	if err != nil {
		return false
	}
	return !st.IsDir()
}

// ResolvePath normalizes a user-supplied adb path. A bare "adb" or "adb.exe"
// is looked up in PATH; anything else must name an existing file.
func ResolvePath(p string) (string, error) {
	p = strings.TrimSpace(p)
	if p == "" {
		return "", errors.New("empty path")
	}
	if fileExists(p) {
		return p, nil
	}
	if base := filepath.Base(p); p == base && (base == "adb" || base == "adb.exe") {
		if q, err := exec.LookPath(base); err == nil {
			return q, nil
		}
	}
	return "", errors.New("adb not found at path")
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return strings.TrimSpace(s)
}
