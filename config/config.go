// Package config holds the ambient tunables of the container core that
// are otherwise hardcoded per-package constants (§6: the core itself
// has no configuration surface — no env vars, no CLI, no wire format).
// cmd/cocadactl is the only consumer; it overrides Defaults() with
// urfave/cli flag values before constructing any container.
package config

// Tunables collects the library-wide default constants named across
// spec.md §3 (Vec/Deque growth policy, Roaring's THR, skip-list's p).
// The container packages themselves keep their own defaults as internal
// constants per DESIGN.md; of these fields, cmd/cocadactl reads only
// GKEpsilon and KLLEpsilon, which its gk-epsilon and kll-epsilon flags
// override.
type Tunables struct {
	// GrowthFactor is vec/deque's geometric growth factor G, nominally ~1.62.
	GrowthFactor float64
	// ShrinkLoad is vec/deque's shrink-below load L, nominally ~0.5.
	ShrinkLoad float64
	// CapMin is the floor below which vec/deque never shrink.
	CapMin int
	// HashMapGrowLoad is container/hashmap's rehash-grow load threshold.
	HashMapGrowLoad float64
	// HashMapShrinkLoad is container/hashmap's auto-shrink load threshold.
	HashMapShrinkLoad float64
	// RoaringThreshold is THR, the array<->bitmap mode-switch cardinality.
	RoaringThreshold int
	// SkipListP is the skip list's level-sampling probability p.
	SkipListP float64
	// GKEpsilon is the default target rank error for sketch/gk.Summary.
	GKEpsilon float64
	// KLLEpsilon is the default target rank error for sketch/kll.Sketch.
	KLLEpsilon float64
}

// Defaults returns the library-wide default Tunables, matching the
// hardcoded constants each container package uses internally.
func Defaults() Tunables {
	return Tunables{
		GrowthFactor:      1.62,
		ShrinkLoad:        0.5,
		CapMin:            4,
		HashMapGrowLoad:   0.75,
		HashMapShrinkLoad: 0.25,
		RoaringThreshold:  4096,
		SkipListP:         0.5,
		GKEpsilon:         0.01,
		KLLEpsilon:        0.01,
	}
}
