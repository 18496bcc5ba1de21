// Package merge implements the multi-archive match iterator (C8, §4.8):
// per-archive strength-cascading lookups folded through a one-slot-per-
// archive buffer, ordered by a preference- and strength-aware total
// order, deduplicated by blob identity.
package merge

import (
	"context"

	"github.com/mdict/slob/archive"
	"github.com/mdict/slob/collate"
	"github.com/mdict/slob/internal/options"
	"github.com/mdict/slob/internal/seenset"
)

type archiveState struct {
	idx  int
	iter *archive.Iterator
}

type pending struct {
	blob     *archive.Blob
	strength collate.Strength
}

// Merge is a peekable, single-pass iterator over matches across many
// archives (§4.8).
type Merge struct {
	key       string
	archives  []*archive.Archive
	collator  *collate.Collator
	preferred *archive.Archive
	upToIdx   int
	logger    archive.Logger
	seen      *seenset.Set

	states map[*archive.Archive]*archiveState
	slots  map[*archive.Archive]*pending
}

// New constructs a Merge that looks up key against every archive in
// archives, starting the cascade at QUATERNARY.
func New(ctx context.Context, key string, archives []*archive.Archive, opts ...Option) (*Merge, error) {
	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	m := &Merge{
		key:       key,
		archives:  archives,
		collator:  collate.New(),
		preferred: cfg.preferred,
		upToIdx:   cfg.upToIdx,
		logger:    cfg.logger,
		seen:      seenset.New(),
		states:    make(map[*archive.Archive]*archiveState, len(archives)),
		slots:     make(map[*archive.Archive]*pending, len(archives)),
	}

	for _, a := range archives {
		m.states[a] = &archiveState{idx: 0}
		if err := m.refill(ctx, a); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// HasNext reports whether any archive still has a buffered candidate.
func (m *Merge) HasNext() bool {
	for _, p := range m.slots {
		if p != nil {
			return true
		}
	}

	return false
}

// Peek returns the current minimum candidate without consuming it.
func (m *Merge) Peek() (*archive.Blob, bool) {
	a, p := m.minSlot()
	if a == nil {
		return nil, false
	}

	return p.blob, true
}

// Next removes and returns the current minimum candidate, then refills
// that archive's slot from its current iterator (advancing strength and
// recursing as needed), and marks the blob's dedup key as seen.
func (m *Merge) Next(ctx context.Context) (*archive.Blob, bool, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, false, err
		}

		a, p := m.minSlot()
		if a == nil {
			return nil, false, nil
		}

		// Two archives can buffer the same dedup key before either is
		// popped (e.g. the same content mirrored under a shared uuid). Guard
		// the emitted stream rather than only the refill path.
		if m.seen.Contains(p.blob.DedupKey()) {
			m.slots[a] = nil
			if err := m.refill(ctx, a); err != nil {
				return nil, false, err
			}

			continue
		}

		m.seen.Add(p.blob.DedupKey())
		m.slots[a] = nil
		if err := m.refill(ctx, a); err != nil {
			return nil, false, err
		}

		// Refill any other slot still buffering the key just emitted, so
		// HasNext never reports a candidate that Next would only skip.
		for other, q := range m.slots {
			if q != nil && m.seen.Contains(q.blob.DedupKey()) {
				m.slots[other] = nil
				if err := m.refill(ctx, other); err != nil {
					return nil, false, err
				}
			}
		}

		return p.blob, true, nil
	}
}

// minSlot returns the archive and pending candidate that sorts first
// under the total order ≺ (§4.8), or (nil, nil) if the buffer is empty.
func (m *Merge) minSlot() (*archive.Archive, *pending) {
	var bestA *archive.Archive
	var best *pending
	for a, p := range m.slots {
		if p == nil {
			continue
		}
		if best == nil || m.less(a, p, bestA, best) {
			bestA, best = a, p
		}
	}

	return bestA, best
}

// less implements x ≺ y (§4.8 rules 1-3) for x = (ax, xp) and y = (ay, yp).
func (m *Merge) less(ax *archive.Archive, xp *pending, ay *archive.Archive, yp *pending) bool {
	if m.preferred != nil && !xp.strength.IsPrefix() && !yp.strength.IsPrefix() && ax != ay {
		switch {
		case ax == m.preferred:
			return true
		case ay == m.preferred:
			return false
		}
		xMatch := ax.URI() == m.preferred.URI()
		yMatch := ay.URI() == m.preferred.URI()
		if xMatch != yMatch {
			return xMatch
		}
	}

	if xp.strength == yp.strength {
		return m.collator.Exact(xp.blob.Key, yp.blob.Key, xp.strength) < 0
	}

	return xp.strength.Rank() > yp.strength.Rank()
}

// refill pulls the next non-duplicate candidate for a, opening a fresh
// single-archive lookup and advancing the cascade as each iterator drains
// (§4.8). A lookup failure on one archive is logged and that archive is
// skipped for the strength that failed (§7).
func (m *Merge) refill(ctx context.Context, a *archive.Archive) error {
	state := m.states[a]

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if state.iter == nil {
			if state.idx > m.upToIdx {
				m.slots[a] = nil

				return nil
			}

			it, err := a.Find(ctx, m.key, cascade[state.idx])
			if err != nil {
				m.logger.Warnf("merge: lookup failed on archive %s at %s: %v", a.URI(), cascade[state.idx], err)
				state.idx++

				continue
			}
			state.iter = it
		}

		blob, ok, err := state.iter.Next(ctx)
		if err != nil {
			m.logger.Warnf("merge: scan failed on archive %s at %s: %v", a.URI(), cascade[state.idx], err)
			state.iter = nil
			state.idx++

			continue
		}
		if !ok {
			state.iter = nil
			state.idx++

			continue
		}

		if m.seen.Contains(blob.DedupKey()) {
			continue
		}

		m.slots[a] = &pending{blob: blob, strength: cascade[state.idx]}

		return nil
	}
}
