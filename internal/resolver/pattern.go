package resolver

import (
	"strings"

	"github.com/gobwas/glob"
	"github.com/samber/oops"
)

// wildcards are the only metacharacters a version pattern understands.
const wildcards = "*?"

// Pattern matches version strings. The zero value matches everything.
type Pattern struct {
	raw  string
	glob glob.Glob
}

// CompilePattern parses a version pattern. An empty string yields a pattern
// that matches every version.
func CompilePattern(raw string) (Pattern, error) {
	raw = strings.TrimSpace(raw)
	p := Pattern{raw: raw}
	if raw == "" || !strings.ContainsAny(raw, wildcards) {
		return p, nil
	}

	// No separators: '*' must cross the dots of a version string.
	g, err := glob.Compile(quoteLiterals(strings.ToLower(raw)))
	if err != nil {
		return Pattern{}, oops.
			In("resolver").
			With("pattern", raw).
			Wrapf(ErrInvalidPattern, "compile %q: %v", raw, err)
	}
	p.glob = g
	return p, nil
}

// MustCompilePattern is like CompilePattern but panics on error.
func MustCompilePattern(raw string) Pattern {
	p, err := CompilePattern(raw)
	if err != nil {
		panic(err)
	}
	return p
}

// IsZero reports whether the pattern matches everything.
func (p Pattern) IsZero() bool {
	return p.raw == ""
}

// String returns the pattern as given.
func (p Pattern) String() string {
	return p.raw
}

// Match reports whether version satisfies the pattern.
func (p Pattern) Match(version string) bool {
	if p.raw == "" {
		return true
	}
	if strings.EqualFold(p.raw, version) {
		return true
	}
	if p.glob == nil {
		return false
	}
	return p.glob.Match(strings.ToLower(version))
}

// quoteLiterals escapes every glob metacharacter except the wildcards, so
// brackets and braces in a version are matched literally.
func quoteLiterals(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if strings.ContainsRune(wildcards, r) {
			b.WriteRune(r)
			continue
		}
		b.WriteString(glob.QuoteMeta(string(r)))
	}
	return b.String()
}
