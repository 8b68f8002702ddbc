// Package linkstore persists link records: one small JSON file per enabled
// extension, named <name><suffix> inside a registry root directory. The file
// name is authoritative for the extension name; the document holds only the
// resolved path and exact version.
//
// Writes never overwrite an existing record and never leave a truncated file
// behind. Concurrent writers for the same name race benignly: exactly one
// succeeds, the others observe ErrAlreadyExists.
package linkstore
