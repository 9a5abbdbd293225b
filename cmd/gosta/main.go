// Command gosta runs a static timing analysis of a gate-level circuit
// against a cell library and writes the resulting timing report.
//
// Usage:
//
//	gosta <library-file> <netlist-file> <output-file> [config-file]
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/khho/gosta"
	"github.com/khho/gosta/config"
)

func main() {
	if len(os.Args) < 4 || len(os.Args) > 5 {
		log.Fatalf("usage: gosta <library-file> <netlist-file> <output-file> [config-file]")
	}

	libPath, netPath, outPath := os.Args[1], os.Args[2], os.Args[3]

	cfg := config.Default()
	if len(os.Args) == 5 {
		var err error
		cfg, err = config.Load(os.Args[4])
		if err != nil {
			fatal(fmt.Errorf("loading config: %w", err))
		}
	}
	sta.Epsilon = cfg.Epsilon
	sta.ReportDecimals = cfg.ReportDecimals

	lib, err := sta.LoadCellLibrary(libPath)
	if err != nil {
		fatal(fmt.Errorf("loading cell library: %w", err))
	}

	circuit, err := sta.LoadCircuit(netPath, lib)
	if err != nil {
		fatal(fmt.Errorf("loading netlist: %w", err))
	}

	sta.InjectWiringEffects(circuit)

	if cfg.DumpTopology {
		circuit.DumpTopology(os.Stderr)
	}

	sta.Run(circuit)

	if err := circuit.WriteTimingReport(outPath); err != nil {
		fatal(fmt.Errorf("writing timing report: %w", err))
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
