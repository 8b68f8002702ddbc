package catalog

import (
	"context"
	"fmt"
)

// Candidate is one discoverable instance of a module, either active in the
// running host process or installed on disk. Candidates are produced fresh
// on every lookup and never persisted.
type Candidate struct {
	Name     string
	Version  string
	BasePath string
	IsLoaded bool
	// HostConstraint is the semver constraint from the module manifest that
	// the host version must satisfy. Empty means unconstrained.
	HostConstraint string
}

// String renders the candidate as name@version (path).
func (c Candidate) String() string {
	return fmt.Sprintf("%s@%s (%s)", c.Name, c.Version, c.BasePath)
}

// Catalog returns the candidates for a module name.
type Catalog interface {
	Candidates(ctx context.Context, name string) ([]Candidate, error)
}

// Func adapts an ordinary function to the Catalog interface.
type Func func(ctx context.Context, name string) ([]Candidate, error)

// Candidates calls f(ctx, name).
func (f Func) Candidates(ctx context.Context, name string) ([]Candidate, error) {
	return f(ctx, name)
}

type composite []Catalog

// Compose returns a Catalog that concatenates the results of catalogs in
// argument order. Nil catalogs are ignored. The first failing catalog
// aborts the lookup.
func Compose(catalogs ...Catalog) Catalog {
	var c composite
	for _, cat := range catalogs {
		if cat != nil {
			c = append(c, cat)
		}
	}
	return c
}

func (c composite) Candidates(ctx context.Context, name string) ([]Candidate, error) {
	var result []Candidate
	for _, cat := range c {
		found, err := cat.Candidates(ctx, name)
		if err != nil {
			return nil, err
		}
		result = append(result, found...)
	}
	return result, nil
}
