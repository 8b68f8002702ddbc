package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentx-labs/extreg/internal/manifest"
	"github.com/agentx-labs/extreg/internal/userdata"
)

// Disk discovers modules installed under a list of search paths. A module
// named Foo is found at either <path>/Foo/module.yaml or, for side-by-side
// versions, <path>/Foo/<version>/module.yaml. Directory names match
// case-insensitively; the manifest is authoritative for the version.
type Disk struct {
	paths  []string
	logger *slog.Logger
}

// DiskOption configures a Disk catalog.
type DiskOption func(*Disk)

// WithDiskLogger sets the logger used to report skipped modules.
func WithDiskLogger(l *slog.Logger) DiskOption {
	return func(d *Disk) {
		d.logger = l
	}
}

// NewDisk creates a catalog over the given search paths, searched in order.
func NewDisk(paths []string, opts ...DiskOption) *Disk {
	d := &Disk{
		paths:  append([]string(nil), paths...),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Candidates scans every search path for installs of the named module.
// Missing search paths and invalid manifests are skipped.
func (d *Disk) Candidates(ctx context.Context, name string) ([]Candidate, error) {
	var result []Candidate
	for _, root := range d.paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		dirs, err := d.moduleDirs(root, name)
		if err != nil {
			return nil, err
		}
		for _, dir := range dirs {
			result = append(result, d.scanModuleDir(dir, name)...)
		}
	}
	return result, nil
}

// moduleDirs returns the directories under root whose name equals name,
// ignoring case.
func (d *Disk) moduleDirs(root, name string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading module path %s: %w", root, err)
	}

	var dirs []string
	for _, entry := range entries {
		if entry.IsDir() && strings.EqualFold(entry.Name(), name) {
			dirs = append(dirs, userdata.GetModuleDir(root, entry.Name()))
		}
	}
	return dirs, nil
}

// scanModuleDir returns the unversioned install in dir (if any) followed by
// each versioned install in its child directories.
func (d *Disk) scanModuleDir(dir, name string) []Candidate {
	var result []Candidate

	if c, ok := d.candidateAt(dir, name); ok {
		result = append(result, c)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		d.logger.Warn("skipping unreadable module directory",
			"dir", dir,
			"error", err)
		return result
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if c, ok := d.candidateAt(filepath.Join(dir, entry.Name()), name); ok {
			result = append(result, c)
		}
	}
	return result
}

// candidateAt loads base/module.yaml and converts it to a Candidate.
func (d *Disk) candidateAt(base, name string) (Candidate, bool) {
	manifestPath := filepath.Join(base, userdata.ManifestFile)
	if _, err := os.Stat(manifestPath); err != nil {
		return Candidate{}, false
	}

	m, err := manifest.Load(manifestPath)
	if err != nil {
		d.logger.Warn("skipping module with invalid manifest",
			"dir", base,
			"error", err)
		return Candidate{}, false
	}
	if !strings.EqualFold(m.Name, name) {
		d.logger.Warn("skipping module whose manifest names another module",
			"dir", base,
			"want", name,
			"manifest_name", m.Name)
		return Candidate{}, false
	}

	abs, err := filepath.Abs(base)
	if err != nil {
		abs = base
	}
	return Candidate{
		Name:           m.Name,
		Version:        m.Version,
		BasePath:       abs,
		HostConstraint: m.Host,
	}, true
}
