// Package platform provides cross-platform filesystem operations for
// publishing registry files: permission changes and no-overwrite file
// publication. On Unix systems it uses hard links and chmod directly. Where
// hard links are unavailable it falls back to an exclusive-create copy.
package platform
