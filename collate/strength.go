// Package collate wraps golang.org/x/text/collate to produce cached
// collation keys and the exact/prefix comparators the lookup and merge
// paths compare refs with (§4.6).
package collate

// Strength is a Unicode collation level, optionally in its prefix variant.
// The five levels and their two variants form a fixed, closed set.
type Strength int

const (
	Primary Strength = iota
	Secondary
	Tertiary
	Quaternary
	Identical

	PrimaryPrefix
	SecondaryPrefix
	TertiaryPrefix
	QuaternaryPrefix
)

// IsPrefix reports whether s is a prefix-matching variant.
func (s Strength) IsPrefix() bool {
	switch s {
	case PrimaryPrefix, SecondaryPrefix, TertiaryPrefix, QuaternaryPrefix:
		return true
	default:
		return false
	}
}

// level returns the non-prefix strength this variant collates at.
func (s Strength) level() Strength {
	switch s {
	case PrimaryPrefix:
		return Primary
	case SecondaryPrefix:
		return Secondary
	case TertiaryPrefix:
		return Tertiary
	case QuaternaryPrefix:
		return Quaternary
	default:
		return s
	}
}

// Rank orders strengths from weakest (0) to strongest for the merge's
// strength-cascade and its tie-breaking rule (§4.8 rule 3). Every prefix
// variant ranks strictly below every exact level: a PRIMARY exact match is
// a stronger result than a QUATERNARY_PREFIX match, even though PRIMARY is
// the weakest exact level. Within a band (exact or prefix), rank follows
// the same PRIMARY < SECONDARY < TERTIARY < QUATERNARY ordering.
func (s Strength) Rank() int {
	switch s {
	case PrimaryPrefix:
		return 0
	case SecondaryPrefix:
		return 1
	case TertiaryPrefix:
		return 2
	case QuaternaryPrefix:
		return 3
	case Primary:
		return 4
	case Secondary:
		return 5
	case Tertiary:
		return 6
	case Quaternary:
		return 7
	case Identical:
		return 8
	default:
		return -1
	}
}

func (s Strength) String() string {
	names := map[Strength]string{
		Primary: "PRIMARY", Secondary: "SECONDARY", Tertiary: "TERTIARY",
		Quaternary: "QUATERNARY", Identical: "IDENTICAL",
		PrimaryPrefix: "PRIMARY_PREFIX", SecondaryPrefix: "SECONDARY_PREFIX",
		TertiaryPrefix: "TERTIARY_PREFIX", QuaternaryPrefix: "QUATERNARY_PREFIX",
	}
	if n, ok := names[s]; ok {
		return n
	}

	return "UNKNOWN"
}
