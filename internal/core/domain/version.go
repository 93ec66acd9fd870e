package domain

import (
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Version is a dedicated total order over version strings, used for
// dependency conflict resolution and for matching a requested SDK revision
// (plugin "@latest" tag selection orders tags with semver directly, not
// through this type). It prefers semver and falls back to a
// dotted-numeric comparison (missing components treated as zero, pre-release
// suffixes compared lexicographically) for Maven-style coordinates and SDK
// quads that semver rejects.
type Version struct {
	raw  string
	sem  *semver.Version
	quad []string
}

// ParseVersion parses a version string into a Version usable with Compare.
func ParseVersion(s string) Version {
	v := Version{raw: s}
	if sv, err := semver.NewVersion(s); err == nil {
		v.sem = sv
		return v
	}
	v.quad = strings.Split(s, ".")
	return v
}

// String returns the original version string.
func (v Version) String() string {
	return v.raw
}

// Compare returns -1, 0 or 1 if v is less than, equal to, or greater than other.
func (v Version) Compare(other Version) int {
	if v.sem != nil && other.sem != nil {
		return v.sem.Compare(other.sem)
	}
	return compareDotted(v.componentsOrRaw(), other.componentsOrRaw())
}

func (v Version) componentsOrRaw() []string {
	if v.quad != nil {
		return v.quad
	}
	return strings.Split(v.raw, ".")
}

// compareDotted implements the fallback comparator: missing trailing
// components are treated as zero, numeric components compare numerically,
// non-numeric (pre-release) components compare lexicographically.
func compareDotted(a, b []string) int {
	n := max(len(a), len(b))
	for i := 0; i < n; i++ {
		ca, cb := "0", "0"
		if i < len(a) {
			ca = a[i]
		}
		if i < len(b) {
			cb = b[i]
		}
		if c := compareComponent(ca, cb); c != 0 {
			return c
		}
	}
	return 0
}

func compareComponent(a, b string) int {
	na, erra := strconv.Atoi(a)
	nb, errb := strconv.Atoi(b)
	if erra == nil && errb == nil {
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(a, b)
}

// Quad holds the four-component version used by SDK package revisions.
type Quad struct {
	Major   int
	Minor   int
	Micro   int
	Preview int
}

// String renders the quad as major.minor.micro, always with all three
// components (zeros included), followed by " rcN" when Preview is non-zero.
func (q Quad) String() string {
	s := strconv.Itoa(q.Major) + "." + strconv.Itoa(q.Minor) + "." + strconv.Itoa(q.Micro)
	if q.Preview > 0 {
		s += " rc" + strconv.Itoa(q.Preview)
	}
	return s
}

// Version converts the quad to a domain.Version for use with Compare.
func (q Quad) Version() Version {
	return ParseVersion(strconv.Itoa(q.Major) + "." + strconv.Itoa(q.Minor) + "." +
		strconv.Itoa(q.Micro) + "." + strconv.Itoa(q.Preview))
}
