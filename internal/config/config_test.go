package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFile(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "settings.json"))
	require.NoError(t, err)
	assert.Equal(t, Settings{}, *s)
}

func TestLoadCorruptFile(t *testing.T) {
	for name, body := range map[string]string{
		"garbage": "{not json",
		"array":   `["a"]`,
	} {
		t.Run(name, func(t *testing.T) {
			p := filepath.Join(t.TempDir(), "settings.json")
			require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
			s, err := Load(p)
			assert.Error(t, err)
			require.NotNil(t, s)
			assert.Equal(t, Settings{}, *s)
		})
	}
}

func TestLoadWrongTypedKey(t *testing.T) {
	p := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"adb_path": 42, "language": "en"}`), 0o644))
	s, err := Load(p)
	require.NoError(t, err)
	assert.Empty(t, s.ADBPath)
	assert.Equal(t, "en", s.Language)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nested", "settings.json")
	in := &Settings{
		ADBPath:    "/opt/platform-tools/adb",
		LastIPPort: "10.0.0.2:5555",
		Language:   "zh_CN",
		ThemeMode:  "dark",
	}
	require.NoError(t, Save(p, in))

	out, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, in.ADBPath, out.ADBPath)
	assert.Equal(t, in.LastIPPort, out.LastIPPort)
	assert.Equal(t, in.Language, out.Language)
	assert.Equal(t, in.ThemeMode, out.ThemeMode)

	// Saving what was loaded reproduces the same file.
	first, err := os.ReadFile(p)
	require.NoError(t, err)
	require.NoError(t, Save(p, out))
	second, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestUnknownKeysPreserved(t *testing.T) {
	p := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(p, []byte(`{
		"adb_path": "/usr/bin/adb",
		"window": {"w": 400, "h": 300},
		"future_flag": true
	}`), 0o644))

	st := Open(p, nil)
	require.NoError(t, st.Update(func(s *Settings) { s.Language = "en" }))

	b, err := os.ReadFile(p)
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(b, &raw))
	assert.Equal(t, "/usr/bin/adb", raw["adb_path"])
	assert.Equal(t, "en", raw["language"])
	assert.Equal(t, true, raw["future_flag"])
	assert.Equal(t, map[string]any{"w": float64(400), "h": float64(300)}, raw["window"])
}

func TestClearedKeyIsRemoved(t *testing.T) {
	p := filepath.Join(t.TempDir(), "settings.json")
	st := Open(p, nil)
	require.NoError(t, st.Update(func(s *Settings) { s.LastIPPort = "1.2.3.4:5555" }))
	require.NoError(t, st.Update(func(s *Settings) { s.LastIPPort = "" }))

	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "last_ip_port")
}

func TestStoreUpdateRollsBackOnSaveFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	// The parent of the settings file is a regular file, so every save fails.
	st := Open(filepath.Join(blocker, "settings.json"), nil)
	err := st.Update(func(s *Settings) { s.ADBPath = "/usr/bin/adb" })
	assert.Error(t, err)
	assert.Empty(t, st.Settings().ADBPath)
}

func TestStoreSnapshotIsolation(t *testing.T) {
	st := Open(filepath.Join(t.TempDir(), "settings.json"), nil)
	snap := st.Settings()
	snap.ADBPath = "/tmp/adb"
	assert.Empty(t, st.Settings().ADBPath)
}

func TestLastEndpoint(t *testing.T) {
	s := Settings{LastIPPort: "192.168.1.5:5555"}
	ip, port := s.LastEndpoint()
	assert.Equal(t, "192.168.1.5", ip)
	assert.Equal(t, "5555", port)

	s = Settings{LastIPPort: "garbage"}
	ip, port = s.LastEndpoint()
	assert.Empty(t, ip)
	assert.Empty(t, port)
}

func TestDefaultPath(t *testing.T) {
	p, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, "settings.json", filepath.Base(p))
}
