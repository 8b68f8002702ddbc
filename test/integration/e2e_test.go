//go:build integration

package integration_test

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"slices"
	"sync"
	"testing"

	"github.com/agentx-labs/extreg/internal/config"
	"github.com/agentx-labs/extreg/internal/registry"
)

// TestFullFlowEnableGetDisable tests the complete lifecycle:
// install host and extensions -> enable -> get -> disable -> get.
func TestFullFlowEnableGetDisable(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	installModule(t, env.ModulesDir, "Host", "1.0", "")
	hostDir := installModule(t, env.ModulesDir, "Host", "1.1", "")
	fooDir := installModule(t, env.ModulesDir, "Foo", "1.0", "")
	installModule(t, env.ModulesDir, "Foo", "2.0", "")
	barDir := installModule(t, env.ModulesDir, "Bar", "0.3", "")

	reg := newRegistry(t, env)

	// Step 1: Enable a pinned Foo and the default Bar.
	if _, err := reg.Enable(ctx, registry.Request{Module: "Foo", ModuleVersion: "1.0"}); err != nil {
		t.Fatalf("Enable(Foo): %v", err)
	}
	if _, err := reg.Enable(ctx, registry.Request{Module: "Bar"}); err != nil {
		t.Fatalf("Enable(Bar): %v", err)
	}

	root := filepath.Join(hostDir, "EXT")
	if got := listDir(t, root); !slices.Equal(got, []string{"Bar.extlnk", "Foo.extlnk"}) {
		t.Fatalf("registry root entries = %v", got)
	}

	// Step 2: The link file is the documented JSON shape.
	var doc map[string]string
	if err := json.Unmarshal(readFile(t, filepath.Join(root, "Foo.extlnk")), &doc); err != nil {
		t.Fatalf("decoding link file: %v", err)
	}
	if doc["Path"] != fooDir || doc["Version"] != "1.0" {
		t.Errorf("link file = %v, want Path=%s Version=1.0", doc, fooDir)
	}

	// Step 3: Get reports both, sorted by name.
	links, err := reg.Get(ctx, "")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	want := []registry.Link{
		{Name: "Bar", Version: "0.3", Path: barDir},
		{Name: "Foo", Version: "1.0", Path: fooDir},
	}
	if !slices.Equal(links, want) {
		t.Errorf("Get() = %v, want %v", links, want)
	}

	// Step 4: Re-enabling leaves the record byte-identical.
	before := readFile(t, filepath.Join(root, "Foo.extlnk"))
	_, err = reg.Enable(ctx, registry.Request{Module: "Foo"})
	assertCode(t, err, registry.CodeAlreadyEnabled)
	if after := readFile(t, filepath.Join(root, "Foo.extlnk")); !bytes.Equal(before, after) {
		t.Errorf("link file changed after failed enable:\nbefore: %s\nafter:  %s", before, after)
	}

	// Step 5: Disable Foo; Bar stays.
	if _, err := reg.Disable(ctx, registry.Request{Module: "Foo"}); err != nil {
		t.Fatalf("Disable(Foo): %v", err)
	}
	assertFileNotExists(t, filepath.Join(root, "Foo.extlnk"))
	assertFileExists(t, filepath.Join(root, "Bar.extlnk"))

	links, err = reg.Get(ctx, "Foo")
	if err != nil {
		t.Fatalf("Get(Foo): %v", err)
	}
	if len(links) != 0 {
		t.Errorf("Get(Foo) after disable = %v, want empty", links)
	}

	// Step 6: Disabling again reports NOT_ENABLED and touches nothing.
	_, err = reg.Disable(ctx, registry.Request{Module: "Foo"})
	assertCode(t, err, registry.CodeNotEnabled)
	if got := listDir(t, root); !slices.Equal(got, []string{"Bar.extlnk"}) {
		t.Errorf("registry root entries after failed disable = %v", got)
	}
}

// TestHostVersionSelectsRegistryRoot checks that each host installation has
// its own registry root.
func TestHostVersionSelectsRegistryRoot(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	oldHost := installModule(t, env.ModulesDir, "Host", "1.0", "")
	newHost := installModule(t, env.ModulesDir, "Host", "2.0", "")
	installModule(t, env.ModulesDir, "Foo", "1.0", "")

	reg := newRegistry(t, env)
	if _, err := reg.Enable(ctx, registry.Request{Module: "Foo", HostVersion: "1.*"}); err != nil {
		t.Fatalf("Enable(Foo, host 1.*): %v", err)
	}

	assertFileExists(t, filepath.Join(oldHost, "EXT", "Foo.extlnk"))
	assertFileNotExists(t, filepath.Join(newHost, "EXT"))

	// Get always uses the default host, which is the newest install.
	links, err := reg.Get(ctx, "")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(links) != 0 {
		t.Errorf("Get() against host 2.0 = %v, want empty", links)
	}
}

// TestConfigDrivesSearchPathsAndLoadedModules checks settings persisted with
// config.Set and loaded modules declared in the config file.
func TestConfigDrivesSearchPathsAndLoadedModules(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	installModule(t, env.SystemDir, "Host", "3.0", "")
	loadedHost := t.TempDir()
	fooDir := installModule(t, env.SystemDir, "Foo", "1.0", "host: \">= 3.0\"\n")

	cfgFile := filepath.Join(env.HomeDir, "config.yaml")
	writeFile(t, cfgFile, "loaded:\n  - name: Host\n    version: \"2.5\"\n    path: "+loadedHost+"\n")
	if err := config.New(cfgFile).Set(config.KeyModulePaths, env.SystemDir); err != nil {
		t.Fatalf("config set: %v", err)
	}

	reg := newRegistry(t, env)

	// The loaded host (2.5) wins over the newer install and fails the constraint.
	_, err := reg.Enable(ctx, registry.Request{Module: "Foo"})
	assertCode(t, err, registry.CodeIncompatibleHost)
	assertFileNotExists(t, filepath.Join(loadedHost, "EXT"))

	// Pinning the installed host satisfies it.
	res, err := reg.Enable(ctx, registry.Request{Module: "Foo", HostVersion: "3.0"})
	if err != nil {
		t.Fatalf("Enable(Foo, host 3.0): %v", err)
	}
	if res.Extension.BasePath != fooDir {
		t.Errorf("extension path = %s, want %s", res.Extension.BasePath, fooDir)
	}
	assertFileExists(t, res.LinkPath)
}

// TestConcurrentEnableWritesOnce races several Enable calls for the same
// extension; exactly one wins and the rest report ALREADY_ENABLED.
func TestConcurrentEnableWritesOnce(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	hostDir := installModule(t, env.ModulesDir, "Host", "1.0", "")
	installModule(t, env.ModulesDir, "Foo", "1.0", "")
	reg := newRegistry(t, env)

	const callers = 8
	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = reg.Enable(ctx, registry.Request{Module: "Foo"})
		}()
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assertCode(t, err, registry.CodeAlreadyEnabled)
	}
	if succeeded != 1 {
		t.Errorf("successful enables = %d, want 1", succeeded)
	}
	if got := listDir(t, filepath.Join(hostDir, "EXT")); !slices.Equal(got, []string{"Foo.extlnk"}) {
		t.Errorf("registry root entries = %v, want only Foo.extlnk", got)
	}
}
