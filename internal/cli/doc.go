// Package cli defines the Cobra command tree for the extreg CLI. Each file
// in this package registers one or two top-level commands (resolve, get,
// enable, disable, candidates, validate, config, version) with the root command.
// Commands build a registry.Registry from the loaded settings and only
// handle flag parsing and output formatting.
package cli
