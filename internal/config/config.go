// Package config handles configuration loading and notes file resolution.
package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultNotesFile is used when no flag, env var or config names a file.
const DefaultNotesFile = "notes.json"

// ---------------------------------------------------------------------------
// Config types
// ---------------------------------------------------------------------------

// StorageConfig controls the backing file.
type StorageConfig struct {
	File        string `yaml:"file"`
	AtomicWrite bool   `yaml:"atomic_write"` // temp file + rename instead of in-place rewrite
}

// LogConfig controls the slog handler installed by the CLI.
type LogConfig struct {
	Level string `yaml:"level"` // "debug" | "info" | "warn" | "error"
}

// NotesConfig is the root configuration.
type NotesConfig struct {
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

// Default returns a NotesConfig populated with defaults. Storage.File is
// left empty so that resolution can tell "unset" from "set to the default".
func Default() *NotesConfig {
	return &NotesConfig{
		Log: LogConfig{Level: "warn"},
	}
}

// Load reads config.yaml from path.
// If the file does not exist it returns Default() with no error.
// Missing keys retain their default values.
func Load(path string) (*NotesConfig, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	// Unmarshal into a plain map so we can apply only the keys that are present.
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	if st, ok := raw["storage"].(map[string]any); ok {
		if v, ok := st["file"].(string); ok {
			cfg.Storage.File = strings.TrimSpace(v)
		}
		if v, ok := st["atomic_write"].(bool); ok {
			cfg.Storage.AtomicWrite = v
		}
	}

	if lg, ok := raw["log"].(map[string]any); ok {
		if v, ok := lg["level"].(string); ok && v != "" {
			cfg.Log.Level = v
		}
	}

	return cfg, nil
}

// ParseLevel maps a config level name to a slog.Level. Unknown names fall
// back to slog.LevelWarn and report false.
func ParseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelWarn, false
}

// ---------------------------------------------------------------------------
// Path resolution
// ---------------------------------------------------------------------------

// Path returns the global config file path: $NOTES_CONFIG when set,
// otherwise ~/.config/notekeeper/config.yaml.
func Path() (string, error) {
	if env := os.Getenv("NOTES_CONFIG"); env != "" {
		return normalizePath(env)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "notekeeper", "config.yaml"), nil
}

// normalizePath expands ~ and env vars and makes the path absolute.
func normalizePath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[2:])
	}
	return filepath.Abs(os.ExpandEnv(path))
}

// ResolveNotesFile returns the backing file path and the source of the
// resolution. Priority: flag → NOTES_FILE env → storage.file in cfg →
// DefaultNotesFile in the working directory.
// source is one of "flag", "env", "config", or "default".
func ResolveNotesFile(flag string, cfg *NotesConfig) (path, source string) {
	if flag != "" {
		if p, err := normalizePath(flag); err == nil {
			return p, "flag"
		}
	}

	if env := os.Getenv("NOTES_FILE"); env != "" {
		if p, err := normalizePath(env); err == nil {
			return p, "env"
		}
	}

	if cfg != nil && cfg.Storage.File != "" {
		if p, err := normalizePath(cfg.Storage.File); err == nil {
			return p, "config"
		}
	}

	return DefaultNotesFile, "default"
}

// ---------------------------------------------------------------------------
// Persisted settings
// ---------------------------------------------------------------------------

// readRaw loads the global config as a plain map. A missing file yields an
// empty map.
func readRaw(cfgPath string) (map[string]any, error) {
	raw := make(map[string]any)
	data, err := os.ReadFile(cfgPath)
	if os.IsNotExist(err) {
		return raw, nil
	}
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		raw = make(map[string]any)
	}
	return raw, nil
}

// SetPersistedNotesFile normalizes path and stores it as storage.file in the
// global config, preserving any other keys. Returns the normalized path.
func SetPersistedNotesFile(path string) (string, error) {
	normalized, err := normalizePath(path)
	if err != nil {
		return "", err
	}

	cfgPath, err := Path()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(cfgPath), 0o755); err != nil {
		return "", err
	}

	raw, err := readRaw(cfgPath)
	if err != nil {
		return "", err
	}
	storage, _ := raw["storage"].(map[string]any)
	if storage == nil {
		storage = make(map[string]any)
	}
	storage["file"] = normalized
	raw["storage"] = storage

	out, err := yaml.Marshal(raw)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(cfgPath, out, 0o600); err != nil {
		return "", err
	}
	return normalized, nil
}

// ClearPersistedNotesFile removes storage.file from the global config.
// Returns true if the key was present and removed.
// If the file becomes empty after removal it is deleted.
func ClearPersistedNotesFile() (bool, error) {
	cfgPath, err := Path()
	if err != nil {
		return false, err
	}

	raw, err := readRaw(cfgPath)
	if err != nil {
		return false, err
	}
	storage, _ := raw["storage"].(map[string]any)
	if _, ok := storage["file"]; !ok {
		return false, nil
	}
	delete(storage, "file")
	if len(storage) == 0 {
		delete(raw, "storage")
	}

	if len(raw) == 0 {
		_ = os.Remove(cfgPath)
		return true, nil
	}

	out, err := yaml.Marshal(raw)
	if err != nil {
		return false, err
	}
	return true, os.WriteFile(cfgPath, out, 0o600)
}
