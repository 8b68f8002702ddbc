package userdata

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/agentx-labs/extreg/internal/branding"
)

// Directory and file name constants for the userdata convention.
const (
	ModulesDir   = "modules"
	ManifestFile = "module.yaml"
)

// Permission constants.
const (
	DirPermNormal  os.FileMode = 0755
	FilePermNormal os.FileMode = 0644
)

// GetHomeRoot returns the CLI home directory.
// It checks the EXTREG_HOME environment variable first,
// then falls back to ~/.extreg.
func GetHomeRoot() (string, error) {
	if v := os.Getenv(branding.EnvVar("HOME")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, branding.HomeDir()), nil
}

// GetModulesRoot returns the default module search path.
// It checks the EXTREG_MODULES environment variable first,
// then falls back to <home>/modules.
func GetModulesRoot() (string, error) {
	if v := os.Getenv(branding.EnvVar("MODULES")); v != "" {
		return v, nil
	}
	root, err := GetHomeRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, ModulesDir), nil
}

// GetModuleDir returns the directory a module named name would occupy
// under a search path. Versioned installs live one level below it.
func GetModuleDir(searchPath, name string) string {
	return filepath.Join(searchPath, name)
}
