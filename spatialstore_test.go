package spatialstore_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmikhailov/spatialstore"
	"github.com/vmikhailov/spatialstore/testutil"
)

// forEachKind runs fn as a subtest per registered engine.
func forEachKind(t *testing.T, fn func(t *testing.T, st spatialstore.Storage)) {
	t.Helper()
	for _, kind := range spatialstore.Kinds() {
		t.Run(string(kind), func(t *testing.T) {
			st, err := spatialstore.New(kind)
			require.NoError(t, err)
			fn(t, st)
		})
	}
}

func TestAllKindsRegistered(t *testing.T) {
	assert.ElementsMatch(t, []spatialstore.Kind{
		spatialstore.KindHashMap,
		spatialstore.KindStringHashMap,
		spatialstore.KindBST,
		spatialstore.KindSortedArray,
		spatialstore.KindOrderedMap,
		spatialstore.KindGrid,
		spatialstore.KindAdaptive,
	}, spatialstore.Kinds())
}

func TestContractBasics(t *testing.T) {
	forEachKind(t, func(t *testing.T, st spatialstore.Storage) {
		t.Run("AddIdempotenceOnLabel", func(t *testing.T) {
			added, err := st.Add(spatialstore.Entry{X: 42, Y: 42, Label: "first"})
			require.NoError(t, err)
			assert.True(t, added)

			e, err := st.Get(42, 42)
			require.NoError(t, err)
			assert.Equal(t, "first", e.Label)

			added, err = st.Add(spatialstore.Entry{X: 42, Y: 42, Label: "second"})
			require.NoError(t, err)
			assert.False(t, added)

			e, err = st.Get(42, 42)
			require.NoError(t, err)
			assert.Equal(t, "second", e.Label)
			assert.Equal(t, 1, st.Count())
		})

		t.Run("RoundTrip", func(t *testing.T) {
			before := st.Count()

			_, err := st.Add(spatialstore.Entry{X: 7, Y: 9, Label: "tmp"})
			require.NoError(t, err)

			removed, err := st.Remove(7, 9)
			require.NoError(t, err)
			assert.True(t, removed)

			_, err = st.Get(7, 9)
			assert.ErrorIs(t, err, spatialstore.ErrNotFound)
			assert.Equal(t, before, st.Count())
		})

		t.Run("RemoveAbsent", func(t *testing.T) {
			removed, err := st.Remove(123_456, 654_321)
			require.NoError(t, err)
			assert.False(t, removed)
		})
	})
}

func TestBoundarySemantics(t *testing.T) {
	forEachKind(t, func(t *testing.T, st spatialstore.Storage) {
		t.Run("RegionInclusive", func(t *testing.T) {
			// Entries exactly on the region corners are included; one unit
			// outside any bound is excluded.
			for _, p := range [][2]int{
				{100, 100}, {200, 200}, // corners
				{99, 100}, {100, 99}, {201, 200}, {200, 201}, // one unit out
			} {
				_, err := st.Add(spatialstore.Entry{X: p[0], Y: p[1]})
				require.NoError(t, err)
			}

			got, err := st.InRegion(100, 100, 200, 200)
			require.NoError(t, err)
			set := testutil.NewCoordSet(got)
			assert.Equal(t, 2, set.Len())
			assert.True(t, set.Contains(100, 100))
			assert.True(t, set.Contains(200, 200))
		})

		t.Run("RadiusBoundaryAsymmetry", func(t *testing.T) {
			st.Clear()
			// (300,400) is at exactly distance 500 from the origin.
			_, err := st.Add(spatialstore.Entry{X: 300, Y: 400, Label: "boundary"})
			require.NoError(t, err)

			// Origin form is strict: the boundary point is excluded.
			got, err := st.WithinRadius(500)
			require.NoError(t, err)
			assert.Empty(t, got)

			got, err = st.WithinRadius(501)
			require.NoError(t, err)
			assert.Len(t, got, 1)

			// Centered form is inclusive: the same point at distance 500
			// from (0,0) is included.
			got, err = st.WithinRadiusOf(0, 0, 500)
			require.NoError(t, err)
			assert.Len(t, got, 1)
		})
	})
}

func TestKeyCollisions(t *testing.T) {
	forEachKind(t, func(t *testing.T, st spatialstore.Storage) {
		// All three share key 25 and must remain distinct entries.
		for _, e := range []spatialstore.Entry{
			{X: 3, Y: 4, Label: "a"},
			{X: 4, Y: 3, Label: "b"},
			{X: 5, Y: 0, Label: "c"},
		} {
			added, err := st.Add(e)
			require.NoError(t, err)
			assert.True(t, added)
		}
		assert.Equal(t, 3, st.Count())

		e, err := st.Get(4, 3)
		require.NoError(t, err)
		assert.Equal(t, "b", e.Label)

		removed, err := st.Remove(3, 4)
		require.NoError(t, err)
		assert.True(t, removed)
		assert.Equal(t, 2, st.Count())

		for _, p := range [][2]int{{4, 3}, {5, 0}} {
			ok, err := st.Contains(p[0], p[1])
			require.NoError(t, err)
			assert.True(t, ok)
		}
	})
}

func TestSampleScenario(t *testing.T) {
	forEachKind(t, func(t *testing.T, st spatialstore.Storage) {
		for _, e := range []spatialstore.Entry{
			{X: 1, Y: 1, Label: "label1"},
			{X: 200, Y: 3400, Label: "label2"},
			{X: 999_999, Y: 999_999, Label: "corner"},
			{X: 500_000, Y: 500_000, Label: "center"},
		} {
			added, err := st.Add(e)
			require.NoError(t, err)
			require.True(t, added)
		}

		e, err := st.Get(1, 1)
		require.NoError(t, err)
		assert.Equal(t, "label1", e.Label)

		_, err = st.Get(100, 100)
		assert.ErrorIs(t, err, spatialstore.ErrNotFound)

		got, err := st.InRegion(0, 0, 1000, 5000)
		require.NoError(t, err)
		labels := entryLabels(got)
		assert.ElementsMatch(t, []string{"label1", "label2"}, labels)

		// 500000² + 500000² = 5·10¹¹ ≥ 600000² = 3.6·10¹¹, so the center
		// point falls outside the origin circle.
		got, err = st.WithinRadius(600_000)
		require.NoError(t, err)
		labels = entryLabels(got)
		assert.ElementsMatch(t, []string{"label1", "label2"}, labels)

		before := st.Count()
		removed, err := st.Remove(1, 1)
		require.NoError(t, err)
		assert.True(t, removed)
		assert.Equal(t, before-1, st.Count())
	})
}

func entryLabels(entries []spatialstore.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Label)
	}
	return out
}

// TestConformance replays seeded workloads on every engine and requires
// result-set equality with the hash-map oracle for every operation class.
func TestConformance(t *testing.T) {
	const (
		seed     = 1337
		n        = 2000
		maxCoord = 10_000
		queries  = 50
	)

	for name, gen := range testutil.Distributions {
		t.Run(name, func(t *testing.T) {
			entries := gen(testutil.NewRNG(seed), n, maxCoord)

			for _, kind := range spatialstore.Kinds() {
				if kind == spatialstore.KindHashMap {
					continue
				}
				t.Run(string(kind), func(t *testing.T) {
					oracle := loadStore(t, spatialstore.KindHashMap, entries, maxCoord)
					st := loadStore(t, kind, entries, maxCoord)

					assert.Equal(t, oracle.Count(), st.Count())
					requireSameEntries(t, oracle.ListAll(), st.ListAll())

					rng := testutil.NewRNG(seed + 1)
					for range queries {
						x := rng.Intn(maxCoord / 2)
						y := rng.Intn(maxCoord / 2)
						w := 1 + rng.Intn(maxCoord/2-1)

						want, err := oracle.InRegion(x, y, x+w, y+w)
						require.NoError(t, err)
						got, err := st.InRegion(x, y, x+w, y+w)
						require.NoError(t, err)
						requireSameEntries(t, want, got)

						r := rng.Intn(maxCoord)
						want, err = oracle.WithinRadius(r)
						require.NoError(t, err)
						got, err = st.WithinRadius(r)
						require.NoError(t, err)
						requireSameEntries(t, want, got)

						cx := rng.Intn(maxCoord)
						cy := rng.Intn(maxCoord)
						want, err = oracle.WithinRadiusOf(cx, cy, r/2)
						require.NoError(t, err)
						got, err = st.WithinRadiusOf(cx, cy, r/2)
						require.NoError(t, err)
						requireSameEntries(t, want, got)
					}

					// Removing every other oracle entry must keep the
					// engines in lockstep.
					all := oracle.ListAll()
					for i := 0; i < len(all); i += 2 {
						wantRemoved, err := oracle.Remove(all[i].X, all[i].Y)
						require.NoError(t, err)
						gotRemoved, err := st.Remove(all[i].X, all[i].Y)
						require.NoError(t, err)
						assert.Equal(t, wantRemoved, gotRemoved)
					}
					assert.Equal(t, oracle.Count(), st.Count())
					requireSameEntries(t, oracle.ListAll(), st.ListAll())
				})
			}
		})
	}
}

func loadStore(t *testing.T, kind spatialstore.Kind, entries []spatialstore.Entry, maxCoord int) spatialstore.Storage {
	t.Helper()
	st, err := spatialstore.New(kind, spatialstore.WithMaxCoordinate(maxCoord))
	require.NoError(t, err)
	for _, e := range entries {
		_, err := st.Add(e)
		require.NoError(t, err)
	}
	return st
}

// requireSameEntries compares two result sets ignoring order, checking both
// coordinates and labels.
func requireSameEntries(t *testing.T, want, got []spatialstore.Entry) {
	t.Helper()
	require.Equal(t, len(want), len(got))
	require.True(t, testutil.NewCoordSet(want).Equal(testutil.NewCoordSet(got)),
		"coordinate sets differ")

	labels := make(map[string]string, len(want))
	for _, e := range want {
		labels[fmt.Sprintf("%d,%d", e.X, e.Y)] = e.Label
	}
	for _, e := range got {
		require.Equal(t, labels[fmt.Sprintf("%d,%d", e.X, e.Y)], e.Label)
	}
}

func TestUniquenessInvariant(t *testing.T) {
	forEachKind(t, func(t *testing.T, st spatialstore.Storage) {
		rng := testutil.NewRNG(7)
		distinct := testutil.NewCoordSet(nil)
		for i := range 500 {
			// A small coordinate domain forces many duplicate adds.
			x := rng.Intn(20)
			y := rng.Intn(20)
			_, err := st.Add(spatialstore.Entry{X: x, Y: y, Label: fmt.Sprintf("v%d", i)})
			require.NoError(t, err)
			distinct.Add(x, y)
			require.Equal(t, distinct.Len(), st.Count())
		}
		assert.Equal(t, distinct.Len(), len(st.ListAll()))
	})
}
