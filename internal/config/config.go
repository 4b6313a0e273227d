// internal/config/config.go
//
// This package handles configuration and the .patro directory structure.
// Every directory patro runs in gets a .patro/ folder holding config.yaml
// and the activity log.

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// PatroDir is the name of the directory we create in each project
	PatroDir = ".patro"

	ThemeLight = "light"
	ThemeDark  = "dark"

	defaultMonthDelayMS  = 160
	defaultJumpDelayMS   = 160
	defaultSettleDelayMS = 200
	maxDelayMS           = 5000

	defaultAPIHost = "127.0.0.1"
	defaultAPIPort = 8080
)

// Environment variables that override config.yaml. They are read from the
// process environment first and then from a .env file next to .patro/.
const (
	EnvAPIHost       = "PATRO_API_HOST"
	EnvAPIPort       = "PATRO_API_PORT"
	EnvLogLevel      = "PATRO_LOG_LEVEL"
	EnvLogFormat     = "PATRO_LOG_FORMAT"
	EnvFestivalsFile = "PATRO_FESTIVALS_FILE"
)

const defaultProjectConfigYAML = `# patro configuration
version: 1

# Animation windows for the calendar, in milliseconds.
calendar:
  month_delay_ms: 160
  jump_delay_ms: 160
  settle_delay_ms: 200

# Leave file empty to use the bundled festival list.
festivals:
  file: ""
  prefer_remote_images: false

ui:
  theme: dark

api:
  host: 127.0.0.1
  port: 8080

log:
  level: info
  format: text
`

// CalendarConfig holds the navigation animation windows.
type CalendarConfig struct {
	MonthDelayMS  int `yaml:"month_delay_ms"`
	JumpDelayMS   int `yaml:"jump_delay_ms"`
	SettleDelayMS int `yaml:"settle_delay_ms"`
}

// FestivalsConfig points at an optional festival data file.
type FestivalsConfig struct {
	File               string `yaml:"file"`
	PreferRemoteImages bool   `yaml:"prefer_remote_images"`
}

type UIConfig struct {
	Theme string `yaml:"theme"`
}

type APIConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ProjectConfig models .patro/config.yaml.
type ProjectConfig struct {
	Version   int             `yaml:"version"`
	Calendar  CalendarConfig  `yaml:"calendar"`
	Festivals FestivalsConfig `yaml:"festivals"`
	UI        UIConfig        `yaml:"ui"`
	API       APIConfig       `yaml:"api"`
	Log       LogConfig       `yaml:"log"`
}

// Config holds the runtime configuration for patro.
type Config struct {
	// ProjectDir is the directory patro was started from
	ProjectDir string

	// PatroProjectDir is ProjectDir/.patro
	PatroProjectDir string

	Project ProjectConfig
}

// InitDir creates the .patro directory structure in the given directory and
// writes a default config.yaml when none exists.
//
// Structure created:
// .patro/
// ├── config.yaml
// └── logs/         <- patro.log lives here
func InitDir(projectDir string) error {
	patroDir := filepath.Join(projectDir, PatroDir)
	if err := os.MkdirAll(filepath.Join(patroDir, "logs"), 0o755); err != nil {
		return fmt.Errorf("config: create %s: %w", patroDir, err)
	}
	return ensureProjectConfig(filepath.Join(patroDir, "config.yaml"))
}

// NewConfig loads .patro/config.yaml from projectDir, applies environment
// overrides and validates the result. A missing file yields the defaults.
func NewConfig(projectDir string) (*Config, error) {
	cfg := &Config{
		ProjectDir:      projectDir,
		PatroProjectDir: filepath.Join(projectDir, PatroDir),
		Project:         defaultProjectConfig(),
	}
	if err := cfg.loadProjectConfig(); err != nil {
		return nil, err
	}
	env, err := loadEnv(filepath.Join(projectDir, ".env"))
	if err != nil {
		return nil, err
	}
	cfg.Project.applyEnv(env)
	cfg.Project.normalize(projectDir)
	if err := cfg.Project.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// LogsDir returns the path to the logs directory
func (c *Config) LogsDir() string {
	return filepath.Join(c.PatroProjectDir, "logs")
}

// ProjectConfigPath returns the on-disk location for the project config file.
func (c *Config) ProjectConfigPath() string {
	return filepath.Join(c.PatroProjectDir, "config.yaml")
}

func (c *Config) MonthDelay() time.Duration {
	return time.Duration(c.Project.Calendar.MonthDelayMS) * time.Millisecond
}

func (c *Config) JumpDelay() time.Duration {
	return time.Duration(c.Project.Calendar.JumpDelayMS) * time.Millisecond
}

func (c *Config) SettleDelay() time.Duration {
	return time.Duration(c.Project.Calendar.SettleDelayMS) * time.Millisecond
}

// FestivalsFile returns the absolute path of the festival override file, or
// "" when the bundled list should be used.
func (c *Config) FestivalsFile() string {
	return c.Project.Festivals.File
}

// Theme returns the configured colour theme.
func (c *Config) Theme() string {
	return c.Project.UI.Theme
}

// APIAddr returns host:port for the HTTP server.
func (c *Config) APIAddr() string {
	return net.JoinHostPort(c.Project.API.Host, strconv.Itoa(c.Project.API.Port))
}

// SetTheme updates the colour theme and persists it back to
// .patro/config.yaml. Only ui.theme changes on disk.
func (c *Config) SetTheme(theme string) error {
	theme = strings.ToLower(strings.TrimSpace(theme))
	if theme != ThemeLight && theme != ThemeDark {
		return fmt.Errorf("config: theme must be %q or %q", ThemeLight, ThemeDark)
	}
	if err := c.saveTheme(theme); err != nil {
		return err
	}
	c.Project.UI.Theme = theme
	return nil
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

	parsed := defaultProjectConfig()
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	parsed.applyDefaults()
	c.Project = parsed
	return nil
}

func defaultProjectConfig() ProjectConfig {
	pc := ProjectConfig{}
	pc.applyDefaults()
	return pc
}

func (pc *ProjectConfig) applyDefaults() {
	if pc.Version == 0 {
		pc.Version = 1
	}
	if pc.Calendar.MonthDelayMS == 0 {
		pc.Calendar.MonthDelayMS = defaultMonthDelayMS
	}
	if pc.Calendar.JumpDelayMS == 0 {
		pc.Calendar.JumpDelayMS = defaultJumpDelayMS
	}
	if pc.Calendar.SettleDelayMS == 0 {
		pc.Calendar.SettleDelayMS = defaultSettleDelayMS
	}
	if pc.UI.Theme == "" {
		pc.UI.Theme = ThemeDark
	}
	if pc.API.Host == "" {
		pc.API.Host = defaultAPIHost
	}
	if pc.API.Port == 0 {
		pc.API.Port = defaultAPIPort
	}
	if pc.Log.Level == "" {
		pc.Log.Level = "info"
	}
	if pc.Log.Format == "" {
		pc.Log.Format = "text"
	}
}

// applyEnv overlays environment values. An unparseable port is kept as -1 so
// validate reports it instead of silently falling back.
func (pc *ProjectConfig) applyEnv(env func(string) string) {
	if v := env(EnvAPIHost); v != "" {
		pc.API.Host = v
	}
	if v := env(EnvAPIPort); v != "" {
		port, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			port = -1
		}
		pc.API.Port = port
	}
	if v := env(EnvLogLevel); v != "" {
		pc.Log.Level = v
	}
	if v := env(EnvLogFormat); v != "" {
		pc.Log.Format = v
	}
	if v := env(EnvFestivalsFile); v != "" {
		pc.Festivals.File = v
	}
}

func (pc *ProjectConfig) normalize(base string) {
	pc.UI.Theme = normalizeWord(pc.UI.Theme)
	pc.Log.Level = normalizeWord(pc.Log.Level)
	pc.Log.Format = normalizeWord(pc.Log.Format)
	pc.API.Host = strings.TrimSpace(pc.API.Host)
	pc.Festivals.File = resolvePath(base, pc.Festivals.File)
}

func (pc *ProjectConfig) validate() error {
	var errs []error
	if pc.Version < 1 {
		errs = append(errs, fmt.Errorf("config version must be >= 1"))
	}
	delays := []struct {
		name  string
		value int
	}{
		{"calendar.month_delay_ms", pc.Calendar.MonthDelayMS},
		{"calendar.jump_delay_ms", pc.Calendar.JumpDelayMS},
		{"calendar.settle_delay_ms", pc.Calendar.SettleDelayMS},
	}
	for _, d := range delays {
		if d.value < 0 || d.value > maxDelayMS {
			errs = append(errs, fmt.Errorf("%s must be between 0 and %d, got %d", d.name, maxDelayMS, d.value))
		}
	}
	switch pc.UI.Theme {
	case ThemeLight, ThemeDark:
	default:
		errs = append(errs, fmt.Errorf("ui.theme must be one of: light, dark; got %q", pc.UI.Theme))
	}
	if pc.API.Host == "" {
		errs = append(errs, errors.New("api.host is required"))
	}
	if pc.API.Port < 1 || pc.API.Port > 65535 {
		errs = append(errs, fmt.Errorf("api.port must be between 1 and 65535, got %d", pc.API.Port))
	}
	switch pc.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level must be one of: debug, info, warn, error; got %q", pc.Log.Level))
	}
	switch pc.Log.Format {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("log.format must be one of: json, text; got %q", pc.Log.Format))
	}
	return errors.Join(errs...)
}

// loadEnv returns a lookup that prefers the process environment and falls
// back to the values in path. A missing .env file is not an error.
func loadEnv(path string) (func(string) string, error) {
	fileValues, err := godotenv.Read(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		fileValues = map[string]string{}
	}
	return func(key string) string {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			return v
		}
		return strings.TrimSpace(fileValues[key])
	}, nil
}

func normalizeWord(value string) string {
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

// saveTheme rewrites ui.theme in config.yaml. The file is patched as a YAML
// document so other keys, comments and anything supplied through the
// environment stay exactly as they are on disk.
func (c *Config) saveTheme(theme string) error {
	if c == nil {
		return fmt.Errorf("config: nil receiver")
	}
	path := c.ProjectConfigPath()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		data = []byte(defaultProjectConfigYAML)
	} else if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	if doc.Kind == 0 {
		doc = yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{mappingNode()}}
	}
	if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return fmt.Errorf("config: %s is not a mapping", path)
	}
	setScalar(doc.Content[0], theme, "ui", "theme")

	if err := os.MkdirAll(c.PatroProjectDir, 0o755); err != nil {
		return fmt.Errorf("config: ensure patro dir: %w", err)
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("config: encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("config: encode config: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("config: write project config: %w", err)
	}
	return nil
}

// setScalar sets the string at path inside mapping m, creating missing
// mappings on the way.
func setScalar(m *yaml.Node, value string, path ...string) {
	key, rest := path[0], path[1:]
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value != key {
			continue
		}
		child := m.Content[i+1]
		if len(rest) == 0 {
			child.Kind, child.Tag, child.Style = yaml.ScalarNode, "!!str", 0
			child.Value, child.Content = value, nil
			return
		}
		if child.Kind != yaml.MappingNode {
			child.Kind, child.Tag, child.Value, child.Content = yaml.MappingNode, "!!map", "", nil
		}
		setScalar(child, value, rest...)
		return
	}
	keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}
	if len(rest) == 0 {
		m.Content = append(m.Content, keyNode, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value})
		return
	}
	child := mappingNode()
	setScalar(child, value, rest...)
	m.Content = append(m.Content, keyNode, child)
}

func mappingNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}
