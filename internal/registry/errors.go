package registry

import (
	"errors"

	"github.com/samber/oops"

	"github.com/agentx-labs/extreg/internal/errutil"
	"github.com/agentx-labs/extreg/internal/linkstore"
	"github.com/agentx-labs/extreg/internal/resolver"
)

// Error codes for registry operation failures.
const (
	CodeHostNotFound      = "HOST_NOT_FOUND"
	CodeExtensionNotFound = "EXTENSION_NOT_FOUND"
	CodeAlreadyEnabled    = "ALREADY_ENABLED"
	CodeNotEnabled        = "NOT_ENABLED"
	CodeIOError           = "IO_ERROR"
	CodeInvalidName       = "INVALID_NAME"
	CodeInvalidPattern    = "INVALID_PATTERN"
	CodeIncompatibleHost  = "INCOMPATIBLE_HOST"
)

// IsCode reports whether err is an oops error carrying code.
func IsCode(err error, code string) bool {
	return code != "" && errutil.Code(err) == code
}

// ErrHostNotFound creates an error for an unresolvable host module.
func ErrHostNotFound(host, pattern string, cause error) error {
	return oops.Code(CodeHostNotFound).
		With("host", host).
		With("host_version", pattern).
		Wrapf(cause, "host module %s not found", describe(host, pattern))
}

// ErrExtensionNotFound creates an error for an unresolvable extension module.
func ErrExtensionNotFound(module, pattern string, cause error) error {
	return oops.Code(CodeExtensionNotFound).
		With("module", module).
		With("module_version", pattern).
		Wrapf(cause, "extension module %s not found", describe(module, pattern))
}

// ErrMissingBasePath creates the not-found error for a candidate whose base
// path is gone from disk.
func ErrMissingBasePath(code, kind, name, path string) error {
	return oops.Code(code).
		With("module", name).
		With("path", path).
		Errorf("%s module %s: base path %s does not exist", kind, name, path)
}

// ErrAlreadyEnabled creates an error for an extension that already has a
// link record.
func ErrAlreadyEnabled(module, linkPath string, cause error) error {
	return oops.Code(CodeAlreadyEnabled).
		With("module", module).
		With("link", linkPath).
		Wrapf(cause, "extension module %s is already enabled", module)
}

// ErrNotEnabled creates an error for an extension without a link record.
func ErrNotEnabled(module, linkPath string, cause error) error {
	return oops.Code(CodeNotEnabled).
		With("module", module).
		With("link", linkPath).
		Wrapf(cause, "extension module %s is not enabled", module)
}

// ErrIncompatibleHost creates an error for an extension whose manifest
// rejects the resolved host version.
func ErrIncompatibleHost(module, constraint, hostVersion string, cause error) error {
	b := oops.Code(CodeIncompatibleHost).
		With("module", module).
		With("constraint", constraint).
		With("host_version", hostVersion)
	if cause != nil {
		return b.Wrapf(cause, "extension module %s requires host %s", module, constraint)
	}
	return b.Errorf("extension module %s requires host %s, resolved host is %s", module, constraint, hostVersion)
}

// ioError wraps a filesystem or catalog failure.
func ioError(op string, cause error) error {
	return oops.Code(CodeIOError).
		With("op", op).
		Wrapf(cause, "%s", op)
}

// classify maps package-level sentinels from the resolver and linkstore to
// registry codes. Anything unrecognised is an I/O error.
func classify(op string, err error) error {
	switch {
	case errors.Is(err, resolver.ErrInvalidPattern):
		return oops.Code(CodeInvalidPattern).With("op", op).Wrap(err)
	case errors.Is(err, linkstore.ErrInvalidName):
		return oops.Code(CodeInvalidName).With("op", op).Wrap(err)
	default:
		return ioError(op, err)
	}
}

func describe(name, pattern string) string {
	if pattern == "" {
		return name
	}
	return name + " (version " + pattern + ")"
}
