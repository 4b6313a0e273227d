package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvAPIHost, EnvAPIPort, EnvLogLevel, EnvLogFormat, EnvFestivalsFile} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, projectDir, body string) {
	t.Helper()
	patroDir := filepath.Join(projectDir, PatroDir)
	if err := os.MkdirAll(patroDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(patroDir, "config.yaml"), []byte(strings.TrimSpace(body)), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestNewConfigDefaultsWhenMissing(t *testing.T) {
	clearEnv(t)
	projectDir := t.TempDir()
	c, err := NewConfig(projectDir)
	if err != nil {
		t.Fatalf("NewConfig returned error: %v", err)
	}
	if c.Project.Version != 1 {
		t.Fatalf("expected default version == 1, got %d", c.Project.Version)
	}
	if c.MonthDelay() != 160*time.Millisecond || c.JumpDelay() != 160*time.Millisecond || c.SettleDelay() != 200*time.Millisecond {
		t.Fatalf("unexpected delays %s %s %s", c.MonthDelay(), c.JumpDelay(), c.SettleDelay())
	}
	if c.Theme() != ThemeDark {
		t.Fatalf("expected dark theme, got %q", c.Theme())
	}
	if c.APIAddr() != "127.0.0.1:8080" {
		t.Fatalf("wrong api addr %q", c.APIAddr())
	}
	if c.FestivalsFile() != "" {
		t.Fatalf("expected bundled festivals, got %q", c.FestivalsFile())
	}
}

func TestInitDirWritesDefaultConfig(t *testing.T) {
	clearEnv(t)
	projectDir := t.TempDir()
	if err := InitDir(projectDir); err != nil {
		t.Fatalf("InitDir: %v", err)
	}
	if info, err := os.Stat(filepath.Join(projectDir, PatroDir, "logs")); err != nil || !info.IsDir() {
		t.Fatalf("logs dir missing: %v", err)
	}
	c, err := NewConfig(projectDir)
	if err != nil {
		t.Fatalf("default config does not load: %v", err)
	}
	if c.Project.Log.Level != "info" || c.Project.Log.Format != "text" {
		t.Fatalf("unexpected log config %+v", c.Project.Log)
	}

	// A second init must not clobber edits.
	writeConfig(t, projectDir, "version: 1\nui:\n  theme: light\n")
	if err := InitDir(projectDir); err != nil {
		t.Fatalf("InitDir: %v", err)
	}
	c, err = NewConfig(projectDir)
	if err != nil {
		t.Fatal(err)
	}
	if c.Theme() != ThemeLight {
		t.Fatalf("InitDir overwrote existing config, theme %q", c.Theme())
	}
}

func TestNewConfigParsesYaml(t *testing.T) {
	clearEnv(t)
	projectDir := t.TempDir()
	writeConfig(t, projectDir, `
version: 1
calendar:
  month_delay_ms: 90
  jump_delay_ms: 120
  settle_delay_ms: 300
festivals:
  file: data/festivals.yaml
  prefer_remote_images: true
ui:
  theme: " Light "
api:
  host: 0.0.0.0
  port: 9090
log:
  level: DEBUG
  format: json
`)
	c, err := NewConfig(projectDir)
	if err != nil {
		t.Fatalf("NewConfig returned error: %v", err)
	}
	if c.MonthDelay() != 90*time.Millisecond || c.JumpDelay() != 120*time.Millisecond || c.SettleDelay() != 300*time.Millisecond {
		t.Fatalf("unexpected delays %+v", c.Project.Calendar)
	}
	if want := filepath.Join(projectDir, "data", "festivals.yaml"); c.FestivalsFile() != want {
		t.Fatalf("festivals file = %q, want %q", c.FestivalsFile(), want)
	}
	if !c.Project.Festivals.PreferRemoteImages {
		t.Fatalf("prefer_remote_images not parsed")
	}
	if c.Theme() != ThemeLight {
		t.Fatalf("theme not normalized: %q", c.Theme())
	}
	if c.APIAddr() != "0.0.0.0:9090" {
		t.Fatalf("wrong api addr %q", c.APIAddr())
	}
	if c.Project.Log.Level != "debug" || c.Project.Log.Format != "json" {
		t.Fatalf("unexpected log config %+v", c.Project.Log)
	}
}

func TestNewConfigValidation(t *testing.T) {
	clearEnv(t)
	projectDir := t.TempDir()
	writeConfig(t, projectDir, `
version: 1
calendar:
  month_delay_ms: 9000
ui:
  theme: sepia
api:
  port: 70000
log:
  format: xml
`)
	_, err := NewConfig(projectDir)
	if err == nil {
		t.Fatalf("expected validation error but got none")
	}
	for _, fragment := range []string{"calendar.month_delay_ms", "ui.theme", "api.port", "log.format"} {
		if !strings.Contains(err.Error(), fragment) {
			t.Fatalf("error %q does not mention %s", err, fragment)
		}
	}
}

func TestNewConfigRejectsBadYaml(t *testing.T) {
	clearEnv(t)
	projectDir := t.TempDir()
	writeConfig(t, projectDir, "calendar: [1, 2")
	if _, err := NewConfig(projectDir); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	clearEnv(t)
	projectDir := t.TempDir()
	writeConfig(t, projectDir, "version: 1\napi:\n  port: 9090\n")
	envFile := "PATRO_API_PORT=7070\nPATRO_LOG_LEVEL=warn\nPATRO_FESTIVALS_FILE=extra.yaml\n"
	if err := os.WriteFile(filepath.Join(projectDir, ".env"), []byte(envFile), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := NewConfig(projectDir)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	if c.Project.API.Port != 7070 {
		t.Fatalf(".env port not applied, got %d", c.Project.API.Port)
	}
	if c.Project.Log.Level != "warn" {
		t.Fatalf(".env log level not applied, got %q", c.Project.Log.Level)
	}
	if want := filepath.Join(projectDir, "extra.yaml"); c.FestivalsFile() != want {
		t.Fatalf("festivals file = %q, want %q", c.FestivalsFile(), want)
	}

	t.Setenv(EnvAPIPort, "6060")
	t.Setenv(EnvAPIHost, "localhost")
	c, err = NewConfig(projectDir)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	if c.APIAddr() != "localhost:6060" {
		t.Fatalf("process env should win over .env, got %q", c.APIAddr())
	}

	t.Setenv(EnvAPIPort, "eighty")
	if _, err := NewConfig(projectDir); err == nil || !strings.Contains(err.Error(), "api.port") {
		t.Fatalf("expected api.port error, got %v", err)
	}
}

func TestSetThemePersists(t *testing.T) {
	clearEnv(t)
	projectDir := t.TempDir()
	if err := InitDir(projectDir); err != nil {
		t.Fatal(err)
	}
	c, err := NewConfig(projectDir)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.SetTheme("neon"); err == nil {
		t.Fatalf("expected error for unknown theme")
	}
	if err := c.SetTheme("LIGHT"); err != nil {
		t.Fatalf("SetTheme: %v", err)
	}
	reloaded, err := NewConfig(projectDir)
	if err != nil {
		t.Fatal(err)
	}
	if reloaded.Theme() != ThemeLight {
		t.Fatalf("theme not persisted, got %q", reloaded.Theme())
	}
}

func TestSetThemeKeepsEnvironmentOutOfFile(t *testing.T) {
	clearEnv(t)
	projectDir := t.TempDir()
	if err := InitDir(projectDir); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(projectDir, PatroDir, "config.yaml")
	yamlBody := `version: 1
festivals:
  file: data/fest.yaml # relative to the project
api:
  port: 8181
log:
  level: warn
`
	if err := os.WriteFile(path, []byte(yamlBody), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvAPIPort, "9999")
	t.Setenv(EnvLogLevel, "debug")

	c, err := NewConfig(projectDir)
	if err != nil {
		t.Fatal(err)
	}
	if c.Project.API.Port != 9999 || !filepath.IsAbs(c.FestivalsFile()) {
		t.Fatalf("overrides not applied: port %d, file %q", c.Project.API.Port, c.FestivalsFile())
	}
	if err := c.SetTheme(ThemeLight); err != nil {
		t.Fatalf("SetTheme: %v", err)
	}
	if c.Theme() != ThemeLight {
		t.Fatalf("in-memory theme = %q", c.Theme())
	}

	saved, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	text := string(saved)
	for _, want := range []string{"theme: light", "port: 8181", "level: warn", "file: data/fest.yaml", "# relative to the project"} {
		if !strings.Contains(text, want) {
			t.Fatalf("saved config missing %q:\n%s", want, text)
		}
	}
	for _, leaked := range []string{"9999", "debug", projectDir} {
		if strings.Contains(text, leaked) {
			t.Fatalf("saved config leaked %q:\n%s", leaked, text)
		}
	}

	clearEnv(t)
	reloaded, err := NewConfig(projectDir)
	if err != nil {
		t.Fatal(err)
	}
	if reloaded.Project.API.Port != 8181 || reloaded.Project.Log.Level != "warn" || reloaded.Theme() != ThemeLight {
		t.Fatalf("reloaded = %+v", reloaded.Project)
	}
}
