// Package manifest handles parsing and validation of module.yaml manifests,
// the descriptor every installed module (host or extension) carries in its
// base directory. Validation runs against an embedded JSON Schema.
package manifest
