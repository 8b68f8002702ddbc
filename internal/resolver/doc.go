// Package resolver picks one module candidate from a catalog result.
//
// Candidates already loaded in the host process come first, in the order the
// catalog reported them. Installed candidates follow, newest version first.
// An optional version pattern narrows the sequence before the first
// candidate is taken.
//
// Patterns are either an exact version or a wildcard expression:
//   - '*' matches any run of characters, including dots
//   - '?' matches exactly one character
//
// Matching ignores case.
package resolver
