// Package catalog enumerates the installed and in-process candidates for a
// module name. Two providers exist: Loaded, for modules already active in the
// host process, and Disk, which scans module search paths for module.yaml
// manifests. Callers compose them explicitly with Compose.
package catalog
