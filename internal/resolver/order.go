package resolver

import (
	"cmp"
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/agentx-labs/extreg/internal/catalog"
)

// CompareVersions orders two version strings. It returns a negative number
// when a sorts before b, zero when they are equal, and a positive number
// otherwise.
//
// Two semver versions compare by precedence. Otherwise the leading dotted
// numeric parts are compared component by component, with missing
// components counting as zero, so four-part versions like 1.0.0.10 order
// numerically. On a tie the version without a suffix ranks higher, as a
// release does over its prerelease. A version with a numeric part ranks
// above one without, and anything left compares as case-folded strings.
func CompareVersions(a, b string) int {
	va, errA := parseVersion(a)
	vb, errB := parseVersion(b)
	if errA == nil && errB == nil {
		return va.Compare(vb)
	}

	numA, restA := splitNumeric(a)
	numB, restB := splitNumeric(b)
	switch {
	case len(numA) > 0 && len(numB) > 0:
		if c := compareNumeric(numA, numB); c != 0 {
			return c
		}
		switch {
		case restA == "" && restB != "":
			return 1
		case restA != "" && restB == "":
			return -1
		}
		return strings.Compare(strings.ToLower(restA), strings.ToLower(restB))
	case len(numA) > 0:
		return 1
	case len(numB) > 0:
		return -1
	default:
		return strings.Compare(strings.ToLower(a), strings.ToLower(b))
	}
}

// parseVersion accepts the loose forms "1.0" and "v1.2.3".
func parseVersion(v string) (*semver.Version, error) {
	return semver.NewVersion(strings.TrimSpace(v))
}

// splitNumeric splits "v1.0.0.10-beta" into ["1" "0" "0" "10"] and "-beta".
// A version that does not start with a digit (after an optional v) has no
// numeric part.
func splitNumeric(v string) ([]string, string) {
	v = strings.TrimSpace(v)
	rest := strings.TrimPrefix(strings.TrimPrefix(v, "v"), "V")

	var parts []string
	for {
		i := 0
		for i < len(rest) && rest[i] >= '0' && rest[i] <= '9' {
			i++
		}
		if i == 0 {
			break
		}
		parts = append(parts, rest[:i])
		rest = rest[i:]
		if len(rest) < 2 || rest[0] != '.' || rest[1] < '0' || rest[1] > '9' {
			break
		}
		rest = rest[1:]
	}
	if len(parts) == 0 {
		return nil, v
	}
	return parts, rest
}

// compareNumeric compares digit strings component by component without
// converting them, so arbitrarily long components cannot overflow.
func compareNumeric(a, b []string) int {
	for i := range max(len(a), len(b)) {
		x, y := "0", "0"
		if i < len(a) {
			x = a[i]
		}
		if i < len(b) {
			y = b[i]
		}
		x = strings.TrimLeft(x, "0")
		y = strings.TrimLeft(y, "0")
		if c := cmp.Compare(len(x), len(y)); c != 0 {
			return c
		}
		if c := strings.Compare(x, y); c != 0 {
			return c
		}
	}
	return 0
}

// Order returns the candidates in resolution order: loaded candidates first,
// as supplied, then installed candidates by version descending. The sort is
// stable, so equal versions keep their catalog order. The input slice is not
// modified.
func Order(candidates []catalog.Candidate) []catalog.Candidate {
	ordered := make([]catalog.Candidate, 0, len(candidates))
	var installed []catalog.Candidate
	for _, c := range candidates {
		if c.IsLoaded {
			ordered = append(ordered, c)
			continue
		}
		installed = append(installed, c)
	}

	slices.SortStableFunc(installed, func(a, b catalog.Candidate) int {
		return CompareVersions(b.Version, a.Version)
	})
	return append(ordered, installed...)
}

// Filter keeps the candidates whose version matches p, preserving order.
func Filter(candidates []catalog.Candidate, p Pattern) []catalog.Candidate {
	if p.IsZero() {
		return candidates
	}
	var result []catalog.Candidate
	for _, c := range candidates {
		if p.Match(c.Version) {
			result = append(result, c)
		}
	}
	return result
}
