// internal/config/config.go
//
// This package handles configuration and the .lens directory structure.
// Every project that uses lens gets a .lens/ folder created in its root.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// LensDir is the name of the directory we create in each project
	LensDir = ".lens"

	defaultStoreBackend = "yaml"
	defaultStorePath    = "state/inputs.yaml"
	defaultSQLitePath   = "state/lens.db"
	defaultDebounceMS   = 250
	defaultLogLevel     = "info"
	defaultHighlight    = "#FFD166"
	defaultActive       = "#FF6B6B"

	// InteractiveFeedback limits hover to the feedback section panels.
	InteractiveFeedback = "feedback"
	// InteractiveAll lets every panel start a hover.
	InteractiveAll = "all"
)

// ErrUnsupportedVersion is returned for config files newer than this build.
var ErrUnsupportedVersion = errors.New("config: unsupported version")

const defaultProjectConfigYAML = `# lens project configuration
version: 1

# Where exercise texts (original, user, ai, feedback) are read from when they
# are not passed on the command line. backend: yaml | sqlite
store:
  backend: yaml
  path: state/inputs.yaml

# Which panels start a hover. feedback = the six feedback sections only, all = every panel.
highlight:
  interactive: feedback

theme:
  highlight: "#FFD166"
  active: "#FF6B6B"

# Reload the view when the store file changes on disk.
watch:
  enabled: true
  debounce_ms: 250

log:
  level: info
`

// StoreConfig selects the fallback key-value store.
type StoreConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
}

// HighlightConfig controls which panels accept hovers.
type HighlightConfig struct {
	Interactive string `yaml:"interactive"`
}

// ThemeConfig holds the colours used for phrases.
type ThemeConfig struct {
	Highlight string `yaml:"highlight"`
	Active    string `yaml:"active"`
}

// WatchConfig controls file watching.
type WatchConfig struct {
	Enabled    *bool `yaml:"enabled,omitempty"`
	DebounceMS int   `yaml:"debounce_ms"`
}

// LogConfig controls the diagnostic log.
type LogConfig struct {
	Level string `yaml:"level"`
}

// ProjectConfig models .lens/config.yaml.
type ProjectConfig struct {
	Version   int             `yaml:"version"`
	Store     StoreConfig     `yaml:"store"`
	Highlight HighlightConfig `yaml:"highlight"`
	Theme     ThemeConfig     `yaml:"theme"`
	Watch     WatchConfig     `yaml:"watch"`
	Log       LogConfig       `yaml:"log"`
}

// Config holds the runtime configuration for lens.
type Config struct {
	// ProjectDir is the directory where the user ran `lens` from
	ProjectDir string

	// LensProjectDir is ProjectDir/.lens
	LensProjectDir string

	Project ProjectConfig
}

// InitLensDir creates the .lens directory structure in the given project directory.
//
// Structure created:
// .lens/
// ├── config.yaml
// ├── logs/         <- lens.log (diagnostics) and session.log (journey)
// └── state/        <- the fallback input store
func InitLensDir(projectDir string) error {
	lensDir := filepath.Join(projectDir, LensDir)
	dirs := []string{
		filepath.Join(lensDir, "logs"),
		filepath.Join(lensDir, "state"),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return ensureProjectConfig(filepath.Join(lensDir, "config.yaml"))
}

// NewConfig creates a new Config instance populated with project settings.
func NewConfig(projectDir string) (*Config, error) {
	cfg := &Config{
		ProjectDir:     projectDir,
		LensProjectDir: filepath.Join(projectDir, LensDir),
		Project:        defaultProjectConfig(),
	}
	if err := cfg.loadProjectConfig(); err != nil {
		return nil, err
	}
	cfg.applyEnvOverrides()
	return cfg, nil
}

// LogsDir returns the path to the logs directory
func (c *Config) LogsDir() string {
	return filepath.Join(c.LensProjectDir, "logs")
}

// StateDir returns the path to the state directory
func (c *Config) StateDir() string {
	return filepath.Join(c.LensProjectDir, "state")
}

// SessionLogPath returns the journey log shown in the TUI.
func (c *Config) SessionLogPath() string {
	return filepath.Join(c.LogsDir(), "session.log")
}

// ProjectConfigPath returns the on-disk location for the project config file.
func (c *Config) ProjectConfigPath() string {
	return filepath.Join(c.LensProjectDir, "config.yaml")
}

// StoreBackend returns the configured store backend name.
func (c *Config) StoreBackend() string {
	return c.Project.Store.Backend
}

// StorePath returns the absolute path of the fallback store.
func (c *Config) StorePath() string {
	return resolvePath(c.LensProjectDir, c.Project.Store.Path)
}

// InteractiveAll reports whether every panel may start a hover.
func (c *Config) InteractiveAll() bool {
	return c.Project.Highlight.Interactive == InteractiveAll
}

// WatchEnabled reports whether the TUI reloads on store changes.
func (c *Config) WatchEnabled() bool {
	return c.Project.Watch.Enabled == nil || *c.Project.Watch.Enabled
}

// LogLevel returns the diagnostic log level.
func (c *Config) LogLevel() string {
	return c.Project.Log.Level
}

// SetStoreBackend switches the store backend and persists the choice back to
// .lens/config.yaml. A path left at the other backend's default follows the
// switch.
func (c *Config) SetStoreBackend(backend string) error {
	backend = normalizeName(backend)
	if backend == "" {
		return fmt.Errorf("config: store backend is required")
	}
	path := c.Project.Store.Path
	if path == "" || path == defaultStorePath || path == defaultSQLitePath {
		path = defaultPathFor(backend)
	}
	c.Project.Store = StoreConfig{Backend: backend, Path: path}
	return c.saveProjectConfig()
}

func (c *Config) loadProjectConfig() error {
	path := c.ProjectConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var parsed ProjectConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	parsed.applyDefaults()
	parsed.normalize()
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	c.Project = parsed
	return nil
}

func (c *Config) applyEnvOverrides() {
	if backend := normalizeName(os.Getenv("LENS_STORE_BACKEND")); backend == "yaml" || backend == "sqlite" {
		if c.Project.Store.Path == defaultPathFor(c.Project.Store.Backend) {
			c.Project.Store.Path = defaultPathFor(backend)
		}
		c.Project.Store.Backend = backend
	}
	if path := strings.TrimSpace(os.Getenv("LENS_STORE_PATH")); path != "" {
		c.Project.Store.Path = path
	}
	switch level := normalizeName(os.Getenv("LENS_LOG_LEVEL")); level {
	case "debug", "info", "warn", "error":
		c.Project.Log.Level = level
	}
}

func defaultProjectConfig() ProjectConfig {
	pc := ProjectConfig{Version: 1}
	pc.applyDefaults()
	return pc
}

func defaultPathFor(backend string) string {
	if backend == "sqlite" {
		return defaultSQLitePath
	}
	return defaultStorePath
}

func (pc *ProjectConfig) applyDefaults() {
	if pc.Version == 0 {
		pc.Version = 1
	}
	if strings.TrimSpace(pc.Store.Backend) == "" {
		pc.Store.Backend = defaultStoreBackend
	}
	if strings.TrimSpace(pc.Store.Path) == "" {
		pc.Store.Path = defaultPathFor(normalizeName(pc.Store.Backend))
	}
	if strings.TrimSpace(pc.Highlight.Interactive) == "" {
		pc.Highlight.Interactive = InteractiveFeedback
	}
	if strings.TrimSpace(pc.Theme.Highlight) == "" {
		pc.Theme.Highlight = defaultHighlight
	}
	if strings.TrimSpace(pc.Theme.Active) == "" {
		pc.Theme.Active = defaultActive
	}
	if pc.Watch.DebounceMS <= 0 {
		pc.Watch.DebounceMS = defaultDebounceMS
	}
	if strings.TrimSpace(pc.Log.Level) == "" {
		pc.Log.Level = defaultLogLevel
	}
}

func (pc *ProjectConfig) normalize() {
	pc.Store.Backend = normalizeName(pc.Store.Backend)
	pc.Store.Path = strings.TrimSpace(pc.Store.Path)
	pc.Highlight.Interactive = normalizeName(pc.Highlight.Interactive)
	pc.Theme.Highlight = strings.TrimSpace(pc.Theme.Highlight)
	pc.Theme.Active = strings.TrimSpace(pc.Theme.Active)
	pc.Log.Level = normalizeName(pc.Log.Level)
}

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

func (pc *ProjectConfig) validate() error {
	if pc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	if pc.Version > 1 {
		return fmt.Errorf("%w: %d", ErrUnsupportedVersion, pc.Version)
	}
	switch pc.Store.Backend {
	case "yaml", "sqlite":
	default:
		return fmt.Errorf("store.backend must be 'yaml' or 'sqlite'")
	}
	switch pc.Highlight.Interactive {
	case InteractiveFeedback, InteractiveAll:
	default:
		return fmt.Errorf("highlight.interactive must be 'feedback' or 'all'")
	}
	if !hexColor.MatchString(pc.Theme.Highlight) {
		return fmt.Errorf("theme.highlight must be a hex colour")
	}
	if !hexColor.MatchString(pc.Theme.Active) {
		return fmt.Errorf("theme.active must be a hex colour")
	}
	switch pc.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error")
	}
	return nil
}

func normalizeName(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func resolvePath(base, candidate string) string {
	trimmed := strings.TrimSpace(candidate)
	if trimmed == "" {
		return ""
	}
	if filepath.IsAbs(trimmed) {
		return filepath.Clean(trimmed)
	}
	return filepath.Clean(filepath.Join(base, trimmed))
}

func ensureProjectConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultProjectConfigYAML), 0o644)
}

func (c *Config) saveProjectConfig() error {
	if c == nil {
		return fmt.Errorf("config: nil receiver")
	}
	c.Project.applyDefaults()
	c.Project.normalize()
	if err := c.Project.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := os.MkdirAll(c.LensProjectDir, 0o755); err != nil {
		return fmt.Errorf("config: ensure lens dir: %w", err)
	}
	data, err := yaml.Marshal(c.Project)
	if err != nil {
		return fmt.Errorf("config: encode config: %w", err)
	}
	if err := os.WriteFile(c.ProjectConfigPath(), data, 0o644); err != nil {
		return fmt.Errorf("config: write project config: %w", err)
	}
	return nil
}
