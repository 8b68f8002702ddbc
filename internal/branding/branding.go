// Package branding provides compile-time identity values for the CLI.
//
// Forkers edit branding.yaml in this package before building; Go's
// //go:embed bakes it into the binary.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName     string `yaml:"cli_name"`
	DisplayName string `yaml:"display_name"`
	Description string `yaml:"description"`
	HomeDir     string `yaml:"home_dir"`
	EnvPrefix   string `yaml:"env_prefix"`
	HostModule  string `yaml:"host_module"`
	RegistryDir string `yaml:"registry_dir"`
	LinkSuffix  string `yaml:"link_suffix"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing or empty.
		defaults = brand{
			CLIName:     "extreg",
			DisplayName: "ExtReg",
			Description: "Extension module registry for pluggable hosts",
			HomeDir:     ".extreg",
			EnvPrefix:   "EXTREG",
			HostModule:  "Host",
			RegistryDir: "EXT",
			LinkSuffix:  ".extlnk",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "extreg").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".extreg").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "EXTREG").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// HostModule returns the default name of the host module whose installation
// anchors the registry root.
func HostModule() string { load(); return defaults.HostModule }

// RegistryDir returns the name of the registry directory nested under the
// host's base path (e.g., "EXT").
func RegistryDir() string { load(); return defaults.RegistryDir }

// LinkSuffix returns the file suffix of link records, including the dot.
func LinkSuffix() string { load(); return defaults.LinkSuffix }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("HOME") → "EXTREG_HOME".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
