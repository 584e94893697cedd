package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/vmikhailov/spatialstore"
	"github.com/vmikhailov/spatialstore/internal/deepsize"
	"github.com/vmikhailov/spatialstore/storage"
	"github.com/vmikhailov/spatialstore/testutil"
)

// benchResult aggregates one engine's measurements. Durations are totals
// over opCount operations of each class.
type benchResult struct {
	kind     storage.Kind
	entries  int
	add      time.Duration
	get      time.Duration
	listAll  time.Duration
	region   time.Duration
	radius   time.Duration
	centered time.Duration
	remove   time.Duration
	bytes    int64
}

func benchCmd(args []string) error {
	fs := flag.NewFlagSet("bench", flag.ExitOnError)
	var (
		kindsArg = fs.String("kinds", "all", "comma-separated engine kinds, or 'all'")
		n        = fs.Int("n", 100_000, "entries to load per engine")
		queries  = fs.Int("queries", 1000, "queries per operation class")
		seed     = fs.Int64("seed", 42, "workload seed")
		dist     = fs.String("dist", "uniform", "distribution: uniform|grid|edge|cluster|mixed")
		maxCoord = fs.Int("max", storage.DefaultMaxCoordinate, "coordinate bound")
		parallel = fs.Int("parallel", 1, "engines benchmarked concurrently")
		verbose  = fs.Bool("v", false, "debug logging")
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

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := spatialstore.NewTextLogger(level).WithSeed(*seed).WithCount(*n)

	runID := uuid.NewString()
	logger.Info("bench run starting",
		"run_id", runID,
		"dist", *dist,
		"engines", len(kinds),
	)

	// Every engine gets an identical workload: same seed, same sequence.
	entries := gen(testutil.NewRNG(*seed), *n, *maxCoord)
	querySeed := *seed + 1

	results := make([]benchResult, len(kinds))
	var mu sync.Mutex

	// Engines are independent and single-threaded, so each one runs
	// confined to its own goroutine.
	var g errgroup.Group
	g.SetLimit(*parallel)
	for i, kind := range kinds {
		g.Go(func() error {
			st, err := spatialstore.New(kind, spatialstore.WithMaxCoordinate(*maxCoord))
			if err != nil {
				return err
			}
			logger.WithKind(kind).Debug("engine starting")
			res, err := runBench(st, entries, *queries, *maxCoord, querySeed)
			if err != nil {
				return fmt.Errorf("%s: %w", kind, err)
			}
			logger.WithKind(kind).Debug("engine finished")
			mu.Lock()
			results[i] = res
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	printReport(runID, results)
	return nil
}

func runBench(st storage.Storage, entries []storage.Entry, queries, maxCoord int, querySeed int64) (benchResult, error) {
	res := benchResult{kind: st.Kind(), entries: len(entries)}

	start := time.Now()
	for _, e := range entries {
		if _, err := st.Add(e); err != nil {
			return res, err
		}
	}
	res.add = time.Since(start)

	// Query coordinates are drawn from a dedicated RNG so changing the
	// query count never perturbs the dataset.
	rng := testutil.NewRNG(querySeed)

	start = time.Now()
	for range queries {
		e := entries[rng.Intn(len(entries))]
		if _, err := st.Get(e.X, e.Y); err != nil {
			return res, err
		}
	}
	res.get = time.Since(start)

	start = time.Now()
	_ = st.ListAll()
	res.listAll = time.Since(start)

	span := maxCoord / 100
	start = time.Now()
	for range queries {
		x := rng.Intn(maxCoord - span)
		y := rng.Intn(maxCoord - span)
		if _, err := st.InRegion(x, y, x+span, y+span); err != nil {
			return res, err
		}
	}
	res.region = time.Since(start)

	start = time.Now()
	for range queries {
		if _, err := st.WithinRadius(rng.Intn(maxCoord)); err != nil {
			return res, err
		}
	}
	res.radius = time.Since(start)

	start = time.Now()
	for range queries {
		cx := rng.Intn(maxCoord)
		cy := rng.Intn(maxCoord)
		if _, err := st.WithinRadiusOf(cx, cy, span); err != nil {
			return res, err
		}
	}
	res.centered = time.Since(start)

	res.bytes = deepsize.Of(st)

	start = time.Now()
	for i := 0; i < len(entries); i += 2 {
		if _, err := st.Remove(entries[i].X, entries[i].Y); err != nil {
			return res, err
		}
	}
	res.remove = time.Since(start)

	return res, nil
}

func printReport(runID string, results []benchResult) {
	fmt.Printf("run %s\n\n", runID)
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "kind\tadd\tget\tlistall\tregion\tradius\tcentered\tremove\tmem")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%v\t%v\t%v\t%v\t%v\t%v\t%v\t%s\n",
			r.kind, r.add, r.get, r.listAll, r.region, r.radius, r.centered, r.remove,
			formatBytes(r.bytes),
		)
	}
	w.Flush()
}

func formatBytes(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1fMiB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1fKiB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%dB", n)
	}
}
