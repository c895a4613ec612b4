package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"adb-connect/internal/endpoint"

	"go.uber.org/zap"
)

const (
	appName  = "adb-connect"
	fileName = "settings.json"
)

// Persisted keys.
const (
	keyADBPath    = "adb_path"
	keyLastIPPort = "last_ip_port"
	keyLanguage   = "language"
	keyThemeMode  = "theme_mode"
)

// Settings holds user preferences and paths persisted to disk.
type Settings struct {
	ADBPath    string `json:"adb_path,omitempty"`
	LastIPPort string `json:"last_ip_port,omitempty"`
	Language   string `json:"language,omitempty"`
	ThemeMode  string `json:"theme_mode,omitempty"` // "system" (default), "light", "dark"

	// extra keeps keys written by other versions so a save does not drop them.
	extra map[string]json.RawMessage
}

// LastEndpoint splits LastIPPort on the first colon for pre-filling the form.
// Both parts are empty when nothing usable was stored.
func (s *Settings) LastEndpoint() (ip, port string) {
	ip, port, _ = endpoint.Split(s.LastIPPort)
	return ip, port
}

func (s *Settings) clone() *Settings {
	c := *s
	if s.extra != nil {
		c.extra = make(map[string]json.RawMessage, len(s.extra))
		for k, v := range s.extra {
			c.extra[k] = v
		}
	}
	return &c
}

// MarshalJSON writes the known keys over the preserved unknown ones.
func (s *Settings) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(s.extra)+4)
	for k, v := range s.extra {
		out[k] = v
	}
	set := func(key, val string) {
		if val != "" {
			out[key] = val
		} else {
			delete(out, key)
		}
	}
	set(keyADBPath, s.ADBPath)
	set(keyLastIPPort, s.LastIPPort)
	set(keyLanguage, s.Language)
	set(keyThemeMode, s.ThemeMode)
	return json.Marshal(out)
}

// UnmarshalJSON reads the known keys and stashes everything else. A known key
// holding a non-string value is treated as unset.
func (s *Settings) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw == nil {
		return errors.New("settings must be a JSON object")
	}
	*s = Settings{}
	str := func(key string) string {
		v, ok := raw[key]
		if !ok {
			return ""
		}
		delete(raw, key)
		var out string
		_ = json.Unmarshal(v, &out)
		return out
	}
	s.ADBPath = str(keyADBPath)
	s.LastIPPort = str(keyLastIPPort)
	s.Language = str(keyLanguage)
	s.ThemeMode = str(keyThemeMode)
	if len(raw) > 0 {
		s.extra = raw
	}
	return nil
}

// DefaultPath returns settings.json next to the running executable, falling
// back to the user config directory when the executable cannot be located.
func DefaultPath() (string, error) {
	if exe, err := os.Executable(); err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		return filepath.Join(filepath.Dir(exe), fileName), nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName, fileName), nil
}

// Load reads the settings file. It never fails: a missing or unreadable file
// yields empty defaults, and err reports why so the caller can log it.
func Load(path string) (*Settings, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// No settings yet; return defaults
			return &Settings{}, nil
		}
		return &Settings{}, fmt.Errorf("read settings %q: %w", path, err)
	}
	var s Settings
	if err := json.Unmarshal(b, &s); err != nil {
		return &Settings{}, fmt.Errorf("parse settings %q: %w", path, err)
	}
	return &s, nil
}

// Save writes the full settings file, creating the directory as needed.
// The data goes to a temp file first so a failed write leaves the old file intact.
func Save(path string, s *Settings) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+fileName+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// Store owns the process's single Settings record and its file.
type Store struct {
	mu       sync.Mutex
	path     string
	settings *Settings
	log      *zap.Logger
}

// Open loads the settings at path. Load problems are logged and replaced by defaults.
func Open(path string, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("config")
	s, err := Load(path)
	if err != nil {
		log.Warn("settings unreadable, using defaults", zap.String("path", path), zap.Error(err))
	}
	return &Store{path: path, settings: s, log: log}
}

// Path returns the settings file location.
func (st *Store) Path() string {
	return st.path
}

// Settings returns a snapshot of the current settings.
func (st *Store) Settings() Settings {
	st.mu.Lock()
	defer st.mu.Unlock()
	return *st.settings.clone()
}

// Update applies fn to a copy of the settings and saves it. The in-memory
// record changes only if the save succeeds.
func (st *Store) Update(fn func(*Settings)) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	next := st.settings.clone()
	fn(next)
	if err := Save(st.path, next); err != nil {
		st.log.Error("saving settings failed", zap.String("path", st.path), zap.Error(err))
		return err
	}
	st.settings = next
	return nil
}
