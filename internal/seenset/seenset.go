// Package seenset provides a hash-then-verify membership set for the
// multi-archive merge's dedup key (§4.8).
//
// Dedup keys are "<archive-uuid>:<blob-id>#<fragment>" strings. Hashing them
// with xxhash64 keeps the steady-state membership check to a fixed-width
// comparison; the original string is still stored alongside the hash and
// compared on a hash hit, so a 64-bit collision between two distinct dedup
// keys costs an extra string comparison rather than a missed or duplicated
// result. This mirrors the hash-with-collision-detection shape used
// elsewhere in this codebase for hash-identified lookups.
package seenset

import "github.com/cespare/xxhash/v2"

// Set tracks dedup keys seen so far during one multi-archive merge.
// A Set is not safe for concurrent use; the merge iterator that owns it is
// itself single-goroutine per §5.
type Set struct {
	byHash map[uint64][]string
}

// New returns an empty Set.
func New() *Set {
	return &Set{byHash: make(map[uint64][]string)}
}

// Contains reports whether key has already been recorded.
func (s *Set) Contains(key string) bool {
	h := xxhash.Sum64String(key)
	for _, existing := range s.byHash[h] {
		if existing == key {
			return true
		}
	}

	return false
}

// Add records key as seen. Add is a no-op if key is already present.
func (s *Set) Add(key string) {
	h := xxhash.Sum64String(key)
	for _, existing := range s.byHash[h] {
		if existing == key {
			return
		}
	}
	s.byHash[h] = append(s.byHash[h], key)
}

// Len returns the number of distinct keys recorded.
func (s *Set) Len() int {
	n := 0
	for _, bucket := range s.byHash {
		n += len(bucket)
	}

	return n
}
