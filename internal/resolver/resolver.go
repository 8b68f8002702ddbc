package resolver

import (
	"errors"

	"github.com/samber/oops"

	"github.com/agentx-labs/extreg/internal/catalog"
)

// Sentinel errors returned by this package.
var (
	ErrNotFound       = errors.New("no matching module candidate")
	ErrInvalidPattern = errors.New("invalid version pattern")
)

// Resolve returns the first candidate in resolution order whose version
// matches pattern. An empty pattern matches every version.
func Resolve(candidates []catalog.Candidate, pattern string) (catalog.Candidate, error) {
	p, err := CompilePattern(pattern)
	if err != nil {
		return catalog.Candidate{}, err
	}
	return ResolvePattern(candidates, p)
}

// ResolvePattern is Resolve with a precompiled pattern.
func ResolvePattern(candidates []catalog.Candidate, p Pattern) (catalog.Candidate, error) {
	matches := Filter(Order(candidates), p)
	if len(matches) == 0 {
		return catalog.Candidate{}, oops.
			In("resolver").
			With("pattern", p.String()).
			With("candidates", len(candidates)).
			Wrap(ErrNotFound)
	}
	return matches[0], nil
}
