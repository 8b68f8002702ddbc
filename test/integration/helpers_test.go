//go:build integration

package integration_test

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/agentx-labs/extreg/internal/catalog"
	"github.com/agentx-labs/extreg/internal/config"
	"github.com/agentx-labs/extreg/internal/registry"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir    string // EXTREG_HOME, holds config.yaml
	ModulesDir string // EXTREG_MODULES, default module search path
	SystemDir  string // a second search path, e.g. a system-wide install
}

// setupTestEnv creates isolated temp directories and sets environment variables
// so all registry operations are sandboxed. The env vars are restored after the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir:    t.TempDir(),
		ModulesDir: t.TempDir(),
		SystemDir:  t.TempDir(),
	}

	t.Setenv("EXTREG_HOME", env.HomeDir)
	t.Setenv("EXTREG_MODULES", env.ModulesDir)
	t.Setenv("EXTREG_HOST", "")
	t.Setenv("EXTREG_MODULE_PATHS", "")

	return env
}

// newRegistry loads settings the way the CLI does and builds a Registry
// over the loaded modules and the configured search paths.
func newRegistry(t *testing.T, env *testEnv) *registry.Registry {
	t.Helper()

	settings, err := config.New(filepath.Join(env.HomeDir, "config.yaml")).Load()
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	loaded := catalog.NewLoaded()
	for _, m := range settings.Loaded {
		loaded.Register(catalog.Candidate{Name: m.Name, Version: m.Version, BasePath: m.Path})
	}
	disk := catalog.NewDisk(settings.ModulePaths, catalog.WithDiskLogger(logger))

	return registry.New(
		registry.WithHost(settings.Host),
		registry.WithCatalog(catalog.Compose(loaded, disk)),
		registry.WithLogger(logger),
	)
}

// installModule writes <searchPath>/<name>/<version>/module.yaml and returns
// the install directory.
func installModule(t *testing.T, searchPath, name, version, extra string) string {
	t.Helper()
	dir := filepath.Join(searchPath, name, version)
	writeFile(t, filepath.Join(dir, "module.yaml"), "name: "+name+"\nversion: \""+version+"\"\n"+extra)
	return dir
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// readFile returns the content of path or fails the test.
func readFile(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return data
}

// listDir returns the entry names in dir; a missing dir yields nil.
func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatalf("reading dir %s: %v", dir, err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertCode fails the test unless err carries code.
func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	if !registry.IsCode(err, code) {
		t.Fatalf("expected %s error, got: %v", code, err)
	}
}
