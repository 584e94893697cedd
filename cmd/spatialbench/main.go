// cmd/spatialbench exercises every spatial storage engine through the
// shared contract, either timing the core operations at a configurable
// scale (bench) or replaying one seeded workload on all engines and
// comparing results against the hash-map oracle (verify).
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/vmikhailov/spatialstore"
	"github.com/vmikhailov/spatialstore/storage"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "bench":
		err = benchCmd(os.Args[2:])
	case "verify":
		err = verifyCmd(os.Args[2:])
	case "kinds":
		for _, k := range spatialstore.Kinds() {
			fmt.Println(k)
		}
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`spatialbench - compare spatial label-storage engines

Usage:
  spatialbench <command> [options]

Commands:
  bench       Time Add/Get/ListAll/InRegion/WithinRadius/Remove per engine
  verify      Replay one seeded workload on all engines against the oracle
  kinds       List registered engine kinds
  help        Show this help

Run 'spatialbench <command> -h' for command options.`)
}

// parseKinds resolves a comma-separated kind list, with "all" meaning every
// registered kind.
func parseKinds(arg string) ([]storage.Kind, error) {
	if arg == "" || arg == "all" {
		return spatialstore.Kinds(), nil
	}
	registered := spatialstore.Kinds()
	var kinds []storage.Kind
	for _, name := range strings.Split(arg, ",") {
		kind := storage.Kind(strings.TrimSpace(name))
		found := false
		for _, k := range registered {
			if k == kind {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("unknown kind %q (see 'spatialbench kinds')", kind)
		}
		kinds = append(kinds, kind)
	}
	return kinds, nil
}
