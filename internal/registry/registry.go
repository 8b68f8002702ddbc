package registry

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/agentx-labs/extreg/internal/branding"
	"github.com/agentx-labs/extreg/internal/catalog"
	"github.com/agentx-labs/extreg/internal/linkstore"
	"github.com/agentx-labs/extreg/internal/resolver"
)

// Registry resolves extension modules against a host module and manages
// the host's link records.
type Registry struct {
	host    string
	catalog catalog.Catalog
	logger  *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithHost sets the host module name. Defaults to the branded host module.
func WithHost(name string) Option {
	return func(r *Registry) {
		r.host = name
	}
}

// WithCatalog sets the catalog used for both host and extension lookups.
func WithCatalog(c catalog.Catalog) Option {
	return func(r *Registry) {
		r.catalog = c
	}
}

// WithLogger sets the logger for status messages.
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = l
	}
}

// New creates a Registry. Without WithCatalog no module can be resolved.
func New(opts ...Option) *Registry {
	r := &Registry{
		host:    branding.HostModule(),
		catalog: catalog.Compose(),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Host returns the host module name.
func (r *Registry) Host() string {
	return r.host
}

// Request names an extension module and optional version patterns for the
// extension and the host. Empty patterns select the resolver default.
type Request struct {
	Module        string
	ModuleVersion string
	HostVersion   string
}

// Resolution is the outcome of resolving a Request.
type Resolution struct {
	Host         catalog.Candidate
	Extension    catalog.Candidate
	RegistryRoot string
	LinkPath     string
}

// Link is one enabled extension as recorded in the registry root.
type Link struct {
	Name    string `json:"Name"`
	Version string `json:"Version"`
	Path    string `json:"Path"`
}

// Resolve picks the host and extension candidates for req and computes
// where the link record lives. An existing record whose name differs only
// in case is reported as the link. Resolve has no side effects.
func (r *Registry) Resolve(ctx context.Context, req Request) (*Resolution, error) {
	if err := linkstore.ValidateName(req.Module); err != nil {
		return nil, classify("resolve extension", err)
	}

	host, err := r.resolveHost(ctx, req.HostVersion)
	if err != nil {
		return nil, err
	}

	ext, err := r.resolveCandidate(ctx, req.Module, req.ModuleVersion)
	if err != nil {
		if errors.Is(err, resolver.ErrNotFound) {
			return nil, ErrExtensionNotFound(req.Module, req.ModuleVersion, err)
		}
		return nil, err
	}
	if err := checkBasePath(CodeExtensionNotFound, "extension", ext); err != nil {
		return nil, err
	}

	store := r.store(host)
	linkName, _, err := store.Lookup(ext.Name)
	if err != nil {
		return nil, classify("locate link record", err)
	}
	if linkName == "" {
		linkName = ext.Name
	}
	return &Resolution{
		Host:         host,
		Extension:    ext,
		RegistryRoot: store.Root(),
		LinkPath:     store.Path(linkName),
	}, nil
}

// Get lists the link records of the host, sorted by name. A non-empty name
// narrows the result to that extension (compared case-insensitively). No
// version pattern is applied; Get reports whatever is recorded.
func (r *Registry) Get(ctx context.Context, name string) ([]Link, error) {
	host, err := r.resolveHost(ctx, "")
	if err != nil {
		return nil, err
	}

	records, err := r.store(host).ReadAll()
	if err != nil {
		return nil, ioError("list link records", err)
	}

	var links []Link
	for linkName, rec := range records {
		if name != "" && !strings.EqualFold(linkName, name) {
			continue
		}
		links = append(links, Link{Name: linkName, Version: rec.Version, Path: rec.Path})
	}
	slices.SortFunc(links, func(a, b Link) int {
		return strings.Compare(a.Name, b.Name)
	})
	return links, nil
}

// Enable resolves req and writes the extension's link record. An existing
// record is never replaced.
func (r *Registry) Enable(ctx context.Context, req Request) (*Resolution, error) {
	res, err := r.Resolve(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := checkHostCompatibility(res.Extension, res.Host); err != nil {
		return nil, err
	}

	store := r.store(res.Host)
	if err := store.EnsureRoot(); err != nil {
		return nil, ioError("create registry root", err)
	}

	rec := linkstore.Record{Path: res.Extension.BasePath, Version: res.Extension.Version}
	if err := store.Write(res.Extension.Name, rec); err != nil {
		if errors.Is(err, linkstore.ErrAlreadyExists) {
			return nil, ErrAlreadyEnabled(res.Extension.Name, res.LinkPath, err)
		}
		return nil, classify("write link record", err)
	}

	r.logger.InfoContext(ctx, "enabled extension module",
		"module", res.Extension.Name,
		"version", res.Extension.Version,
		"path", res.Extension.BasePath,
		"registry", res.RegistryRoot)
	return res, nil
}

// Disable resolves req and removes the extension's link record.
func (r *Registry) Disable(ctx context.Context, req Request) (*Resolution, error) {
	res, err := r.Resolve(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := r.store(res.Host).Delete(res.Extension.Name); err != nil {
		if errors.Is(err, linkstore.ErrNotPresent) {
			return nil, ErrNotEnabled(res.Extension.Name, res.LinkPath, err)
		}
		return nil, classify("remove link record", err)
	}

	r.logger.InfoContext(ctx, "disabled extension module",
		"module", res.Extension.Name,
		"version", res.Extension.Version,
		"path", res.Extension.BasePath,
		"registry", res.RegistryRoot)
	return res, nil
}

// Candidates lists the candidates for name in resolution order.
func (r *Registry) Candidates(ctx context.Context, name string) ([]catalog.Candidate, error) {
	found, err := r.catalog.Candidates(ctx, name)
	if err != nil {
		return nil, ioError("list candidates", err)
	}
	return resolver.Order(found), nil
}

func (r *Registry) resolveHost(ctx context.Context, pattern string) (catalog.Candidate, error) {
	host, err := r.resolveCandidate(ctx, r.host, pattern)
	if err != nil {
		if errors.Is(err, resolver.ErrNotFound) {
			return catalog.Candidate{}, ErrHostNotFound(r.host, pattern, err)
		}
		return catalog.Candidate{}, err
	}
	if err := checkBasePath(CodeHostNotFound, "host", host); err != nil {
		return catalog.Candidate{}, err
	}
	return host, nil
}

func (r *Registry) resolveCandidate(ctx context.Context, name, pattern string) (catalog.Candidate, error) {
	p, err := resolver.CompilePattern(pattern)
	if err != nil {
		return catalog.Candidate{}, classify("compile version pattern", err)
	}
	found, err := r.catalog.Candidates(ctx, name)
	if err != nil {
		return catalog.Candidate{}, ioError("list candidates", err)
	}
	return resolver.ResolvePattern(found, p)
}

func (r *Registry) store(host catalog.Candidate) *linkstore.Store {
	root := filepath.Join(host.BasePath, branding.RegistryDir())
	return linkstore.Open(root, linkstore.WithLogger(r.logger))
}

// checkBasePath fails with code when the candidate's base path is missing.
func checkBasePath(code, kind string, c catalog.Candidate) error {
	if c.BasePath == "" {
		return ErrMissingBasePath(code, kind, c.Name, c.BasePath)
	}
	if _, err := os.Stat(c.BasePath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrMissingBasePath(code, kind, c.Name, c.BasePath)
		}
		return ioError("stat base path", err)
	}
	return nil
}

// checkHostCompatibility applies the extension's host constraint to the
// resolved host version.
func checkHostCompatibility(ext, host catalog.Candidate) error {
	if ext.HostConstraint == "" {
		return nil
	}
	constraint, err := semver.NewConstraint(ext.HostConstraint)
	if err != nil {
		return ErrIncompatibleHost(ext.Name, ext.HostConstraint, host.Version, err)
	}
	version, err := semver.NewVersion(host.Version)
	if err != nil {
		return ErrIncompatibleHost(ext.Name, ext.HostConstraint, host.Version, err)
	}
	if !constraint.Check(version) {
		return ErrIncompatibleHost(ext.Name, ext.HostConstraint, host.Version, nil)
	}
	return nil
}
