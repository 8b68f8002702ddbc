package manifest

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"
)

// Parse reads a module.yaml file and returns the decoded manifest.
// It does not validate against the schema; see Load for that.
func Parse(path string) (*ModuleManifest, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return ParseBytes(data, path)
}

// ParseBytes decodes manifest YAML. path is only used in error messages.
func ParseBytes(data []byte, path string) (*ModuleManifest, error) {
	var m ModuleManifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	m.Name = strings.TrimSpace(m.Name)
	m.Version = strings.TrimSpace(m.Version)
	return &m, nil
}

// Load reads, validates, and parses a module.yaml file. Schema violations
// are reported as a single error listing every issue.
func Load(path string) (*ModuleManifest, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	result, err := Validate(data)
	if err != nil {
		return nil, fmt.Errorf("validating manifest %s: %w", path, err)
	}
	if !result.Valid {
		return nil, fmt.Errorf("invalid manifest %s: %s", path, result.Summary())
	}

	return ParseBytes(data, path)
}

// readFile reads the contents of a file at the given path.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
