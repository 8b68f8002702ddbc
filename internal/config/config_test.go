package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("EXTREG_HOME", home)
	t.Setenv("EXTREG_MODULES", "")
	t.Setenv("EXTREG_HOST", "")
	t.Setenv("EXTREG_MODULE_PATHS", "")
	t.Setenv("EXTREG_LOG_FORMAT", "")
	t.Setenv("EXTREG_LOG_LEVEL", "")
	return home
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(file, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return file
}

func TestLoad_Defaults(t *testing.T) {
	home := isolate(t)

	s, err := New("").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if s.Host != "Host" {
		t.Errorf("host = %q, want Host", s.Host)
	}
	if want := []string{filepath.Join(home, "modules")}; !slices.Equal(s.ModulePaths, want) {
		t.Errorf("module paths = %v, want %v", s.ModulePaths, want)
	}
	if s.LogFormat != "text" {
		t.Errorf("log format = %q, want text", s.LogFormat)
	}
	if s.LogLevel != "info" {
		t.Errorf("log level = %q, want info", s.LogLevel)
	}
	if len(s.Loaded) != 0 {
		t.Errorf("expected no loaded modules, got %v", s.Loaded)
	}
}

func TestFilePath_UnderHome(t *testing.T) {
	home := isolate(t)
	if want := filepath.Join(home, "config.yaml"); FilePath() != want {
		t.Errorf("FilePath = %s, want %s", FilePath(), want)
	}
	if got := New("").File(); got != FilePath() {
		t.Errorf("File = %s, want %s", got, FilePath())
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	isolate(t)
	file := writeConfig(t, `host: Core
module_paths:
  - /opt/modules
  - /usr/share/modules
loaded:
  - name: Core
    version: "7.2"
    path: /opt/core
log_format: json
`)

	s, err := New(file).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if s.Host != "Core" {
		t.Errorf("host = %q, want Core", s.Host)
	}
	if want := []string{"/opt/modules", "/usr/share/modules"}; !slices.Equal(s.ModulePaths, want) {
		t.Errorf("module paths = %v, want %v", s.ModulePaths, want)
	}
	if want := []LoadedModule{{Name: "Core", Version: "7.2", Path: "/opt/core"}}; !slices.Equal(s.Loaded, want) {
		t.Errorf("loaded = %v, want %v", s.Loaded, want)
	}
	if s.LogFormat != "json" {
		t.Errorf("log format = %q, want json", s.LogFormat)
	}
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	isolate(t)
	file := writeConfig(t, "host: Core\n")

	paths := strings.Join([]string{"/a", "/b"}, string(os.PathListSeparator))
	t.Setenv("EXTREG_HOST", "Other")
	t.Setenv("EXTREG_MODULE_PATHS", paths)

	s, err := New(file).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.Host != "Other" {
		t.Errorf("host = %q, want Other", s.Host)
	}
	if want := []string{"/a", "/b"}; !slices.Equal(s.ModulePaths, want) {
		t.Errorf("module paths = %v, want %v", s.ModulePaths, want)
	}
}

func TestLoad_FlagsOverrideEverything(t *testing.T) {
	isolate(t)
	t.Setenv("EXTREG_HOST", "FromEnv")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("host", "", "")
	flags.StringSlice("module-path", nil, "")
	flags.String("log-level", "", "")
	args := []string{"--host", "FromFlag", "--module-path", "/x", "--module-path", "/y", "--log-level", "debug"}
	if err := flags.Parse(args); err != nil {
		t.Fatal(err)
	}

	c := New(filepath.Join(t.TempDir(), "config.yaml"))
	if err := c.BindFlags(flags); err != nil {
		t.Fatalf("BindFlags failed: %v", err)
	}

	s, err := c.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.Host != "FromFlag" {
		t.Errorf("host = %q, want FromFlag", s.Host)
	}
	if want := []string{"/x", "/y"}; !slices.Equal(s.ModulePaths, want) {
		t.Errorf("module paths = %v, want %v", s.ModulePaths, want)
	}
	if s.LogLevel != "debug" {
		t.Errorf("log level = %q, want debug", s.LogLevel)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	isolate(t)
	file := writeConfig(t, "host: [unclosed\n")

	if _, err := New(file).Load(); err == nil {
		t.Fatal("expected error for malformed config")
	}
}

func TestSet_PersistsOnlyFileValues(t *testing.T) {
	isolate(t)
	t.Setenv("EXTREG_LOG_LEVEL", "debug")
	file := filepath.Join(t.TempDir(), "nested", "config.yaml")

	c := New(file)
	if err := c.Set(KeyHost, "Core"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if got := c.Get(KeyHost); got != "Core" {
		t.Errorf("Get(host) = %q, want Core", got)
	}

	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "host: Core") {
		t.Errorf("config file missing host:\n%s", data)
	}
	if strings.Contains(string(data), "log_level") {
		t.Errorf("environment value leaked into config file:\n%s", data)
	}

	s, err := New(file).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.Host != "Core" {
		t.Errorf("host = %q, want Core", s.Host)
	}
}

func TestSet_ModulePathsSplitsPathList(t *testing.T) {
	isolate(t)
	file := filepath.Join(t.TempDir(), "config.yaml")
	value := strings.Join([]string{"/a", "/b"}, string(os.PathListSeparator))

	c := New(file)
	if err := c.Set(KeyModulePaths, value); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if got := c.Get(KeyModulePaths); got != value {
		t.Errorf("Get(module_paths) = %q, want %q", got, value)
	}

	s, err := New(file).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if want := []string{"/a", "/b"}; !slices.Equal(s.ModulePaths, want) {
		t.Errorf("module paths = %v, want %v", s.ModulePaths, want)
	}
}

func TestSet_UnknownKey(t *testing.T) {
	isolate(t)
	c := New(filepath.Join(t.TempDir(), "config.yaml"))

	err := c.Set("loaded", "x")
	if err == nil {
		t.Fatal("expected error for unknown key")
	}
	if !strings.Contains(err.Error(), "unknown config key") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestSplitPaths(t *testing.T) {
	sep := string(os.PathListSeparator)
	got := splitPaths([]string{"/a" + sep + " " + sep + "/b", "", "/c"})
	if want := []string{"/a", "/b", "/c"}; !slices.Equal(got, want) {
		t.Errorf("splitPaths = %v, want %v", got, want)
	}
}
