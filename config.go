// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package decido

import (
	"sync"

	"github.com/rs/zerolog"
)

// Config holds the recognized configuration fields. It is built with
// functional options, but collected into a single exported struct so it can
// also be constructed declaratively and so LogStatisticsOnShutdown has
// somewhere to live.
type Config struct {
	// InitialSize is the initial slot count of the node table. Zero means
	// "big enough for the two constants and every declared variable".
	InitialSize int

	// GrowthFactor is the multiplicative growth factor applied to the node
	// table when it must be extended. The default is 2 (double).
	GrowthFactor float64

	// MinimumFreeNodePercentageAfterGC is the GC-vs-grow decision threshold:
	// when a garbage collection leaves this percentage of free slots or
	// fewer, the table grows right after that collection.
	MinimumFreeNodePercentageAfterGC int

	// UseGarbageCollection disables reclamation entirely when false: the
	// table always grows instead, trading memory for the absence of GC
	// pauses.
	UseGarbageCollection bool

	// MaxNodeSize caps the total number of nodes (0 means unlimited).
	MaxNodeSize int

	// MaxNodeIncrease caps the number of nodes added in a single resize (0
	// means unlimited).
	MaxNodeIncrease int

	// CacheApplyDivider, CacheIteDivider, CacheComposeDivider and
	// CacheQuantDivider set each cache family's slot count to
	// nextPrime(tableSize / divider).
	CacheApplyDivider   int
	CacheIteDivider     int
	CacheComposeDivider int
	CacheQuantDivider   int

	// LogStatisticsOnShutdown, when true, registers the engine so that
	// Shutdown (or the package-level ShutdownAll) logs Statistics() before
	// the engine becomes unreachable, replacing the "global mutable
	// shutdown hook" the design notes ask to avoid.
	LogStatisticsOnShutdown bool

	// Logger receives the engine's structured diagnostics. The zero value
	// (zerolog.Nop()) disables logging entirely.
	Logger zerolog.Logger

	// CheckAccess records a request for a reentrancy/concurrency guard. No
	// entry point reads it: setting it does not change any behaviour, and
	// calls made while another call on the same engine is in flight are not
	// detected.
	CheckAccess bool
}

// Option configures a Config; pass any number to New.
type Option func(*Config)

func defaultConfig() Config {
	return Config{
		GrowthFactor:                      2,
		MinimumFreeNodePercentageAfterGC:  _MINFREENODES,
		UseGarbageCollection:              true,
		MaxNodeIncrease:                   _DEFAULTMAXNODEINC,
		CacheApplyDivider:                 3,
		CacheIteDivider:                   3,
		CacheComposeDivider:               6,
		CacheQuantDivider:                 6,
		Logger:                            zerolog.Nop(),
	}
}

func buildConfig(opts []Option) Config {
	c := defaultConfig()
	for _, o := range opts {
		o(&c)
	}
	return c
}

// initialSize returns the configured InitialSize, or a table large enough to
// hold the two constants plus the helper nodes of every variable.
func (c Config) initialSize(varnum int) int {
	if c.InitialSize >= 2*varnum+2 {
		return c.InitialSize
	}
	return 2*varnum + 2
}

// cacheSize applies a family's divider to the current table size.
func (c Config) cacheSize(tableSize, divider int) int {
	if divider <= 0 {
		divider = 1
	}
	size := tableSize / divider
	if size < 1 {
		size = 1
	}
	return primeGte(size)
}

// WithInitialSize sets the initial number of slots in the node table.
func WithInitialSize(size int) Option {
	return func(c *Config) { c.InitialSize = size }
}

// WithGrowthFactor sets the multiplicative growth factor used when resizing
// the node table.
func WithGrowthFactor(factor float64) Option {
	return func(c *Config) { c.GrowthFactor = factor }
}

// WithMinimumFreeNodePercentageAfterGC sets the GC-vs-grow decision
// threshold (percentage of free nodes required after a GC pass).
func WithMinimumFreeNodePercentageAfterGC(pct int) Option {
	return func(c *Config) { c.MinimumFreeNodePercentageAfterGC = pct }
}

// WithoutGarbageCollection disables reclamation: the table always grows.
func WithoutGarbageCollection() Option {
	return func(c *Config) { c.UseGarbageCollection = false }
}

// WithMaxNodeSize caps the total number of nodes the table may grow to.
func WithMaxNodeSize(size int) Option {
	return func(c *Config) { c.MaxNodeSize = size }
}

// WithMaxNodeIncrease caps the number of nodes added per resize.
func WithMaxNodeIncrease(size int) Option {
	return func(c *Config) { c.MaxNodeIncrease = size }
}

// WithCacheDividers sets the per-family divider parameters used to size the
// apply, ite, compose and quantification caches relative to the node table.
func WithCacheDividers(apply, ite, compose, quant int) Option {
	return func(c *Config) {
		c.CacheApplyDivider = apply
		c.CacheIteDivider = ite
		c.CacheComposeDivider = compose
		c.CacheQuantDivider = quant
	}
}

// WithLogger attaches a zerolog.Logger that receives the engine's internal
// diagnostics (GC start and end, node-table resize, failed operations).
func WithLogger(l zerolog.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

// WithLogStatisticsOnShutdown registers the engine in the process-wide
// shutdown registry so that Shutdown/ShutdownAll logs Statistics().
func WithLogStatisticsOnShutdown() Option {
	return func(c *Config) { c.LogStatisticsOnShutdown = true }
}

// WithAccessCheck sets Config.CheckAccess, which no entry point reads; it
// does not enable any access detection.
func WithAccessCheck() Option {
	return func(c *Config) { c.CheckAccess = true }
}

// shutdownRegistry backs LogStatisticsOnShutdown: a process-wide, explicitly
// initialised collection of engines to summarize at shutdown.
type shutdownRegistry struct {
	mu       sync.Mutex
	entries  []shutdownEntry
}

type shutdownEntry struct {
	name string
	stat func() string
}

var globalShutdownRegistry = &shutdownRegistry{}

func (r *shutdownRegistry) register(name string, stat func() string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, shutdownEntry{name: name, stat: stat})
}

// ShutdownAll logs Statistics() for every engine created with
// WithLogStatisticsOnShutdown, in creation order. Call it once, typically
// deferred from main, instead of relying on runtime finalization.
func ShutdownAll(logger zerolog.Logger) {
	globalShutdownRegistry.mu.Lock()
	defer globalShutdownRegistry.mu.Unlock()
	for _, e := range globalShutdownRegistry.entries {
		logger.Info().Str("engine", e.name).Msg("\n" + e.stat())
	}
}
