package userdata

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetHomeRoot_EnvOverride(t *testing.T) {
	t.Setenv("EXTREG_HOME", "/tmp/test-home")
	root, err := GetHomeRoot()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if root != "/tmp/test-home" {
		t.Errorf("expected /tmp/test-home, got %s", root)
	}
}

func TestGetHomeRoot_Default(t *testing.T) {
	t.Setenv("EXTREG_HOME", "")
	root, err := GetHomeRoot()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".extreg")
	if root != expected {
		t.Errorf("expected %s, got %s", expected, root)
	}
}

func TestGetModulesRoot(t *testing.T) {
	t.Setenv("EXTREG_MODULES", "")
	t.Setenv("EXTREG_HOME", "/tmp/h")
	root, err := GetModulesRoot()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := filepath.Join("/tmp/h", "modules"); root != want {
		t.Errorf("expected %s, got %s", want, root)
	}

	t.Setenv("EXTREG_MODULES", "/opt/modules")
	root, err = GetModulesRoot()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if root != "/opt/modules" {
		t.Errorf("expected /opt/modules, got %s", root)
	}
}

func TestGetModuleDir(t *testing.T) {
	want := filepath.Join("/opt/modules", "Foo")
	if got := GetModuleDir("/opt/modules", "Foo"); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}
