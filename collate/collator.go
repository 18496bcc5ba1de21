package collate

import (
	"sync"

	xcollate "golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/mdict/slob/internal/cache"
)

// cacheCapacity bounds each of the five per-strength collation-key caches
// (§3, §4.6). They are process-global: many archives share the same
// linguistic ordering, so a key computed for one archive is reusable by
// another.
const cacheCapacity = 4096

var strengthCaches = map[Strength]*cache.Cache[string, []byte]{
	Primary:    cache.New[string, []byte](cacheCapacity),
	Secondary:  cache.New[string, []byte](cacheCapacity),
	Tertiary:   cache.New[string, []byte](cacheCapacity),
	Quaternary: cache.New[string, []byte](cacheCapacity),
	Identical:  cache.New[string, []byte](cacheCapacity),
}

// Collator adapts golang.org/x/text/collate into the fixed strength
// levels the archive format collates under (root locale, alternate
// handling shifted: punctuation is quaternary-significant, not ignored).
type Collator struct {
	mu   sync.Mutex
	byLv map[Strength]*xcollate.Collator
	buf  xcollate.Buffer
}

// rootShifted is the root locale with alternate handling set to shifted.
var rootShifted = language.MustParse("und-u-ka-shifted")

// New returns a Collator configured for the root locale with shifted
// alternate handling.
func New() *Collator {
	c := &Collator{byLv: make(map[Strength]*xcollate.Collator, 5)}
	c.byLv[Primary] = xcollate.New(rootShifted, xcollate.Loose)
	c.byLv[Secondary] = xcollate.New(rootShifted, xcollate.IgnoreCase)
	c.byLv[Tertiary] = xcollate.New(rootShifted)
	c.byLv[Quaternary] = xcollate.New(rootShifted, xcollate.Force)
	c.byLv[Identical] = xcollate.New(rootShifted, xcollate.Force)

	return c
}

// Key returns the cached collation-key bytes for s at the non-prefix
// variant of strength. IDENTICAL additionally appends the raw string
// bytes so that no two distinct strings ever share a key at that level.
func (c *Collator) Key(s string, strength Strength) []byte {
	level := strength.level()
	keys := strengthCaches[level]
	if key, ok := keys.Get(s); ok {
		return key
	}

	c.mu.Lock()
	c.buf.Reset()
	key := c.byLv[level].KeyFromString(&c.buf, s)
	out := make([]byte, len(key))
	copy(out, key)
	c.mu.Unlock()

	if level == Identical {
		out = append(out, []byte(s)...)
	}

	keys.Add(s, out)

	return out
}

// Exact compares a and b at strength's non-prefix level, by collation-key
// byte order.
func (c *Collator) Exact(a, b string, strength Strength) int {
	ka, kb := c.Key(a, strength), c.Key(b, strength)

	return compareBytes(ka, kb)
}

// Prefix reports the ordering of a's collation key against target's,
// treating target as a prefix pattern (§4.6): the comparison stops with a
// match at the first zero byte of target's key (the library separates key
// levels with zero bytes) or when target's key is exhausted, so every
// string whose key begins with those bytes compares equal to it. Where a's
// key has a zero byte or ends while target's byte is non-zero, a sorts
// first.
func (c *Collator) Prefix(a, target string, strength Strength) int {
	ka, kt := c.Key(a, strength), c.Key(target, strength)
	for i := 0; i < len(kt); i++ {
		if kt[i] == 0 {
			return 0
		}
		if i >= len(ka) || ka[i] == 0 {
			return -1
		}
		if ka[i] != kt[i] {
			if ka[i] < kt[i] {
				return -1
			}

			return 1
		}
	}

	return 0
}

// Compare dispatches to Exact or Prefix depending on whether strength is a
// prefix variant, comparing candidate against target.
func (c *Collator) Compare(candidate, target string, strength Strength) int {
	if strength.IsPrefix() {
		return c.Prefix(candidate, target, strength)
	}

	return c.Exact(candidate, target, strength)
}

func compareBytes(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}

			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}
