package archon

import "fmt"

// WorldStorageMode mirrors spec §6's WORLD_STORAGE knob (worlds stored by
// value vs by reference in the multi-world table). Go's garbage collector
// makes "store the struct by value to avoid an allocation" mostly moot —
// there is no manual-lifetime win the way there is in the original design
// — so both modes are accepted and implemented identically, by pointer.
type WorldStorageMode int

const (
	WorldStorageValue WorldStorageMode = iota
	WorldStorageReference
)

// Config holds the build-time knobs of spec §6. It is read once: the
// first Registry or World construction locks it, and Configure panics if
// called afterward, mirroring the original's compile-time-constant
// semantics as closely as a runtime-configured Go library reasonably can.
type Config struct {
	// BucketSize is B, the number of entities per bucket (default 64).
	BucketSize int
	// WorldBits is W, bits of the entity handle reserved for the world
	// index (default 8).
	WorldBits uint32
	// WorldStorage selects how the multi-world table holds worlds.
	WorldStorage WorldStorageMode
	// WorldMaxFixed, if nonzero, is a hard cap on live worlds; must fit
	// in WorldBits. Default 1.
	WorldMaxFixed int
	// ArchetypeMaxFixed, if nonzero, caps the archetype list per world.
	// Default 0 (unbounded).
	ArchetypeMaxFixed int
}

var activeConfig = Config{
	BucketSize:        64,
	WorldBits:         8,
	WorldStorage:      WorldStorageValue,
	WorldMaxFixed:     1,
	ArchetypeMaxFixed: 0,
}

var configured bool

// ConfigOption customizes a Configure call.
type ConfigOption func(*Config)

// WithBucketSize overrides BucketSize.
func WithBucketSize(n int) ConfigOption { return func(c *Config) { c.BucketSize = n } }

// WithWorldBits overrides WorldBits.
func WithWorldBits(n uint32) ConfigOption { return func(c *Config) { c.WorldBits = n } }

// WithWorldStorage overrides WorldStorage.
func WithWorldStorage(mode WorldStorageMode) ConfigOption {
	return func(c *Config) { c.WorldStorage = mode }
}

// WithWorldMaxFixed overrides WorldMaxFixed.
func WithWorldMaxFixed(n int) ConfigOption { return func(c *Config) { c.WorldMaxFixed = n } }

// WithArchetypeMaxFixed overrides ArchetypeMaxFixed.
func WithArchetypeMaxFixed(n int) ConfigOption {
	return func(c *Config) { c.ArchetypeMaxFixed = n }
}

// Configure applies opts to the package-wide Config. It must be called
// before the first Registry or World is constructed in the process.
func Configure(opts ...ConfigOption) {
	if configured {
		panic(fmt.Errorf("archon: Configure called after a Registry or World already locked the configuration"))
	}
	for _, opt := range opts {
		opt(&activeConfig)
	}
}

func lockConfig() { configured = true }
