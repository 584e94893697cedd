package spatialstore_test

import (
	"fmt"
	"testing"

	"github.com/vmikhailov/spatialstore"
	"github.com/vmikhailov/spatialstore/storage"
	"github.com/vmikhailov/spatialstore/testutil"
)

const benchSeed = 99

func benchEntries(n int) []spatialstore.Entry {
	return testutil.Uniform(testutil.NewRNG(benchSeed), n, storage.DefaultMaxCoordinate)
}

func BenchmarkAdd(b *testing.B) {
	entries := benchEntries(100_000)
	for _, kind := range spatialstore.Kinds() {
		b.Run(string(kind), func(b *testing.B) {
			st, err := spatialstore.New(kind)
			if err != nil {
				b.Fatal(err)
			}
			b.ResetTimer()
			for i := 0; b.Loop(); i++ {
				if _, err := st.Add(entries[i%len(entries)]); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkGet(b *testing.B) {
	entries := benchEntries(100_000)
	for _, kind := range spatialstore.Kinds() {
		b.Run(string(kind), func(b *testing.B) {
			st, err := spatialstore.New(kind)
			if err != nil {
				b.Fatal(err)
			}
			for _, e := range entries {
				if _, err := st.Add(e); err != nil {
					b.Fatal(err)
				}
			}
			b.ResetTimer()
			for i := 0; b.Loop(); i++ {
				e := entries[i%len(entries)]
				if _, err := st.Get(e.X, e.Y); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkWithinRadius(b *testing.B) {
	for _, n := range []int{10_000, 100_000} {
		entries := benchEntries(n)
		for _, kind := range spatialstore.Kinds() {
			b.Run(fmt.Sprintf("%s/n=%d", kind, n), func(b *testing.B) {
				st, err := spatialstore.New(kind)
				if err != nil {
					b.Fatal(err)
				}
				for _, e := range entries {
					if _, err := st.Add(e); err != nil {
						b.Fatal(err)
					}
				}
				b.ResetTimer()
				for i := 0; b.Loop(); i++ {
					radius := 1000 * (1 + i%500)
					if _, err := st.WithinRadius(radius); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}

func BenchmarkInRegion(b *testing.B) {
	entries := benchEntries(100_000)
	for _, kind := range spatialstore.Kinds() {
		b.Run(string(kind), func(b *testing.B) {
			st, err := spatialstore.New(kind)
			if err != nil {
				b.Fatal(err)
			}
			for _, e := range entries {
				if _, err := st.Add(e); err != nil {
					b.Fatal(err)
				}
			}
			b.ResetTimer()
			for i := 0; b.Loop(); i++ {
				origin := (i % 90) * 10_000
				if _, err := st.InRegion(origin, origin, origin+50_000, origin+50_000); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
