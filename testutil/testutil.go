// Package testutil provides testing and benchmarking utilities for
// spatialstore.
//
// This package is intended for use in tests and the bench harness only. It
// provides a seeded RNG, deterministic point-distribution generators, and
// coordinate-set helpers for comparing engine results.
//
// # Deterministic Workloads
//
//	rng := testutil.NewRNG(seed)
//	entries := testutil.Uniform(rng, 10_000, storage.DefaultMaxCoordinate)
//
// Given the same seed, every generator returns the same (x, y, label)
// sequence, so failures reproduce exactly.
//
// # Result Comparison
//
//	set := testutil.NewCoordSet(results)
//	require.True(t, set.Equal(testutil.NewCoordSet(oracle)))
package testutil

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/vmikhailov/spatialstore/storage"
)

// RNG encapsulates a seeded random number generator. It is safe for
// concurrent use.
type RNG struct {
	mu   sync.Mutex
	rand *rand.Rand
	seed int64
}

// NewRNG creates an RNG with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset rewinds the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the seed the RNG was created with.
func (r *RNG) Seed() int64 { return r.seed }

// Intn returns a deterministic pseudo-random int in [0, n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// NormFloat64 returns a deterministic standard-normal sample.
func (r *RNG) NormFloat64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.NormFloat64()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func label(tag string, i int) string {
	return fmt.Sprintf("%s-%d", tag, i)
}

// Uniform generates n entries uniformly distributed over [0, maxCoord)².
func Uniform(rng *RNG, n, maxCoord int) []storage.Entry {
	out := make([]storage.Entry, n)
	for i := range out {
		out[i] = storage.Entry{
			X:     rng.Intn(maxCoord),
			Y:     rng.Intn(maxCoord),
			Label: label("uniform", i),
		}
	}
	return out
}

// GridPattern generates n entries snapped to a regular lattice of about
// 100×100 cells. Many entries land on identical coordinates, exercising
// update-in-place paths.
func GridPattern(rng *RNG, n, maxCoord int) []storage.Entry {
	step := maxCoord / 100
	if step < 1 {
		step = 1
	}
	cells := maxCoord / step
	out := make([]storage.Entry, n)
	for i := range out {
		out[i] = storage.Entry{
			X:     rng.Intn(cells) * step,
			Y:     rng.Intn(cells) * step,
			Label: label("grid", i),
		}
	}
	return out
}

// EdgeCases generates n entries concentrated on the extremes of the space:
// the corners, the axes, and coordinates one unit inside the bound. These
// are the points where off-by-one bugs in bounds checks and tile math
// surface.
func EdgeCases(rng *RNG, n, maxCoord int) []storage.Entry {
	last := maxCoord - 1
	extremes := []int{0, 1, last - 1, last}
	if maxCoord < 4 {
		extremes = []int{0, last}
	}
	out := make([]storage.Entry, n)
	for i := range out {
		var x, y int
		switch rng.Intn(3) {
		case 0: // both coordinates extreme
			x = extremes[rng.Intn(len(extremes))]
			y = extremes[rng.Intn(len(extremes))]
		case 1: // near the x axis
			x = rng.Intn(maxCoord)
			y = extremes[rng.Intn(len(extremes))]
		default: // near the y axis
			x = extremes[rng.Intn(len(extremes))]
			y = rng.Intn(maxCoord)
		}
		out[i] = storage.Entry{X: x, Y: y, Label: label("edge", i)}
	}
	return out
}

// RadialCluster generates n entries normally distributed around a handful
// of random cluster centers, producing the dense spots that trigger
// adaptive-tile splitting and grid fast paths.
func RadialCluster(rng *RNG, n, maxCoord int) []storage.Entry {
	const clusters = 8
	centers := make([][2]int, clusters)
	for i := range centers {
		centers[i] = [2]int{rng.Intn(maxCoord), rng.Intn(maxCoord)}
	}
	spread := float64(maxCoord) / 200

	out := make([]storage.Entry, n)
	for i := range out {
		c := centers[rng.Intn(clusters)]
		out[i] = storage.Entry{
			X:     clamp(c[0]+int(rng.NormFloat64()*spread), 0, maxCoord-1),
			Y:     clamp(c[1]+int(rng.NormFloat64()*spread), 0, maxCoord-1),
			Label: label("cluster", i),
		}
	}
	return out
}

// Mixed interleaves the other distributions: half uniform, the rest split
// between grid, edge and cluster points, deterministically shuffled.
func Mixed(rng *RNG, n, maxCoord int) []storage.Entry {
	uniform := Uniform(rng, n/2, maxCoord)
	grid := GridPattern(rng, n/6, maxCoord)
	edge := EdgeCases(rng, n/6, maxCoord)
	cluster := RadialCluster(rng, n-n/2-2*(n/6), maxCoord)

	out := make([]storage.Entry, 0, n)
	out = append(out, uniform...)
	out = append(out, grid...)
	out = append(out, edge...)
	out = append(out, cluster...)

	for i := len(out) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Distributions maps distribution names to generators, for harness flag
// dispatch.
var Distributions = map[string]func(rng *RNG, n, maxCoord int) []storage.Entry{
	"uniform": Uniform,
	"grid":    GridPattern,
	"edge":    EdgeCases,
	"cluster": RadialCluster,
	"mixed":   Mixed,
}
