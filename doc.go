// Package sta implements a static timing analyzer for gate-level digital
// circuits: cell libraries, netlists with RC-tree parasitics, the data
// model they populate, and the wiring, forward-STA, backward-STA and
// sequential-glue sweeps that operate directly on that data model.
//
// Basic usage:
//
//	lib, err := sta.LoadCellLibrary("cells.lib")
//	if err != nil {
//		log.Fatalf("loading cell library: %v", err)
//	}
//
//	circuit, err := sta.LoadCircuit("design.net", lib)
//	if err != nil {
//		log.Fatalf("loading netlist: %v", err)
//	}
//
//	sta.InjectWiringEffects(circuit)
//	sta.Run(circuit)
//
//	if err := circuit.WriteTimingReport("design.rpt"); err != nil {
//		log.Fatalf("writing report: %v", err)
//	}
package sta
