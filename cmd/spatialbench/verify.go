package main

import (
	"flag"
	"fmt"
	"log/slog"

	"github.com/vmikhailov/spatialstore"
	"github.com/vmikhailov/spatialstore/storage"
	"github.com/vmikhailov/spatialstore/testutil"
)

// verifyCmd replays one seeded workload on every engine and checks each one
// against the hash-map oracle: the stored entry set after loading, and the
// result sets of seeded region and radius queries.
func verifyCmd(args []string) error {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	var (
		kindsArg = fs.String("kinds", "all", "comma-separated engine kinds, or 'all'")
		n        = fs.Int("n", 10_000, "entries to load per engine")
		queries  = fs.Int("queries", 200, "queries per operation class")
		seed     = fs.Int64("seed", 42, "workload seed")
		dist     = fs.String("dist", "mixed", "distribution: uniform|grid|edge|cluster|mixed")
		maxCoord = fs.Int("max", storage.DefaultMaxCoordinate, "coordinate bound")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	kinds, err := parseKinds(*kindsArg)
	if err != nil {
		return err
	}
	gen, ok := testutil.Distributions[*dist]
	if !ok {
		return fmt.Errorf("unknown distribution %q", *dist)
	}

	logger := spatialstore.NewTextLogger(slog.LevelInfo).WithSeed(*seed).WithCount(*n)

	entries := gen(testutil.NewRNG(*seed), *n, *maxCoord)
	oracle, err := loadEngine(storage.KindHashMap, entries, *maxCoord)
	if err != nil {
		return err
	}

	failures := 0
	for _, kind := range kinds {
		if kind == storage.KindHashMap {
			continue
		}
		st, err := loadEngine(kind, entries, *maxCoord)
		if err != nil {
			return err
		}
		mismatches := compareEngines(oracle, st, *queries, *seed+1, *maxCoord)
		if mismatches == 0 {
			logger.WithKind(kind).Info("verify passed")
		} else {
			logger.WithKind(kind).Error("verify failed", "mismatches", mismatches)
			failures++
		}
	}

	if failures > 0 {
		return fmt.Errorf("%d engine(s) disagree with the oracle", failures)
	}
	fmt.Println("all engines agree with the oracle")
	return nil
}

func loadEngine(kind storage.Kind, entries []storage.Entry, maxCoord int) (storage.Storage, error) {
	st, err := spatialstore.New(kind, spatialstore.WithMaxCoordinate(maxCoord))
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if _, err := st.Add(e); err != nil {
			return nil, err
		}
	}
	return st, nil
}

// compareEngines counts disagreements between an engine and the oracle over
// the stored set and a seeded query mix.
func compareEngines(oracle, st storage.Storage, queries int, querySeed int64, maxCoord int) int {
	mismatches := 0

	if st.Count() != oracle.Count() {
		mismatches++
	}
	if !testutil.NewCoordSet(st.ListAll()).Equal(testutil.NewCoordSet(oracle.ListAll())) {
		mismatches++
	}

	rng := testutil.NewRNG(querySeed)
	span := maxCoord / 100

	for range queries {
		x := rng.Intn(maxCoord - span)
		y := rng.Intn(maxCoord - span)
		want, err1 := oracle.InRegion(x, y, x+span, y+span)
		got, err2 := st.InRegion(x, y, x+span, y+span)
		if err1 != nil || err2 != nil || !testutil.NewCoordSet(got).Equal(testutil.NewCoordSet(want)) {
			mismatches++
		}
	}

	for range queries {
		r := rng.Intn(maxCoord)
		want, err1 := oracle.WithinRadius(r)
		got, err2 := st.WithinRadius(r)
		if err1 != nil || err2 != nil || !testutil.NewCoordSet(got).Equal(testutil.NewCoordSet(want)) {
			mismatches++
		}
	}

	for range queries {
		cx := rng.Intn(maxCoord)
		cy := rng.Intn(maxCoord)
		want, err1 := oracle.WithinRadiusOf(cx, cy, span)
		got, err2 := st.WithinRadiusOf(cx, cy, span)
		if err1 != nil || err2 != nil || !testutil.NewCoordSet(got).Equal(testutil.NewCoordSet(want)) {
			mismatches++
		}
	}

	return mismatches
}
