// Package registry enables and disables extension modules against a host
// installation.
//
// Resolution picks one host candidate and one extension candidate from a
// catalog.Catalog using the resolver package. The host's base path anchors
// the registry root (<host>/EXT), where every enabled extension has exactly
// one link record managed by the linkstore package. Enable creates that
// record, Disable removes it and Get lists what is recorded.
//
// Failures are oops errors carrying one of the Code* constants; use IsCode
// to test for them.
package registry
