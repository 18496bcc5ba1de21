package archive

import (
	"github.com/mdict/slob/collate"
	"github.com/mdict/slob/compress"
	"github.com/mdict/slob/internal/options"
	"github.com/mdict/slob/refs"
	"github.com/mdict/slob/store"
)

// config holds everything a functional option can set before an archive
// is opened (§2A: cache capacities, logger, collator, codec registry are
// programmatic configuration, not a config struct with exported fields or
// environment variables).
type config struct {
	logger             Logger
	collator           *collate.Collator
	registry           *compress.Registry
	refCacheCapacity   int
	keyCacheCapacity   int
	storeCacheCapacity int
}

func defaultConfig() *config {
	return &config{
		logger:             noopLogger{},
		collator:           collate.New(),
		registry:           compress.NewRegistry(),
		refCacheCapacity:   refs.DefaultRefListCacheCapacity,
		keyCacheCapacity:   refs.DefaultKeyListCacheCapacity,
		storeCacheCapacity: store.DefaultCacheCapacity,
	}
}

// Option configures an Archive at Open time.
type Option = options.Option[*config]

// WithLogger injects a Logger for diagnostics (§4.11). The default is a
// no-op logger.
func WithLogger(l Logger) Option {
	return options.NoError[*config](func(c *config) { c.logger = l })
}

// WithCollator injects a pre-built Collator, useful for sharing one
// across many archives. The default constructs a fresh root-locale
// Collator per archive.
func WithCollator(c *collate.Collator) Option {
	return options.NoError[*config](func(cfg *config) { cfg.collator = c })
}

// WithCodec registers an additional or replacement decompressor under
// name, extending the compression registry beyond the built-ins (§4.10).
func WithCodec(name string, d compress.Decompressor) Option {
	return options.NoError[*config](func(c *config) { c.registry.Register(name, d) })
}

// WithCacheCapacities overrides the default per-archive LRU sizes (§3):
// refs (default 256), keys (default 256), store items (default 4). A
// zero value leaves the corresponding default unchanged.
func WithCacheCapacities(refCapacity, keyCapacity, storeCapacity int) Option {
	return options.NoError[*config](func(c *config) {
		if refCapacity > 0 {
			c.refCacheCapacity = refCapacity
		}
		if keyCapacity > 0 {
			c.keyCacheCapacity = keyCapacity
		}
		if storeCapacity > 0 {
			c.storeCacheCapacity = storeCapacity
		}
	})
}
