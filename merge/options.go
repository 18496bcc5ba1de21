package merge

import (
	"github.com/mdict/slob/archive"
	"github.com/mdict/slob/collate"
	"github.com/mdict/slob/internal/options"
)

type config struct {
	preferred *archive.Archive
	upToIdx   int
	logger    archive.Logger
}

type noopLogger struct{}

func (noopLogger) Debugf(string, ...any) {}
func (noopLogger) Warnf(string, ...any)  {}

func defaultConfig() *config {
	return &config{
		upToIdx: len(cascade) - 1, // PRIMARY_PREFIX: walk the whole cascade by default
		logger:  noopLogger{},
	}
}

// Option configures a Merge at construction time.
type Option = options.Option[*config]

// WithPreferred marks preferred as the archive whose exact matches sort
// first, ahead of archives merely sharing its URI (§4.8 rule 1).
func WithPreferred(preferred *archive.Archive) Option {
	return options.NoError[*config](func(c *config) { c.preferred = preferred })
}

// WithUpToStrength bounds the cascade at strength, inclusive. The default
// walks the full cascade down to PRIMARY_PREFIX.
func WithUpToStrength(strength collate.Strength) Option {
	return options.NoError[*config](func(c *config) {
		if idx := cascadeIndex(strength); idx >= 0 {
			c.upToIdx = idx
		}
	})
}

// WithLogger injects a Logger for per-archive lookup failures (§4.11,
// §7). The default is a no-op logger.
func WithLogger(l archive.Logger) Option {
	return options.NoError[*config](func(c *config) { c.logger = l })
}
