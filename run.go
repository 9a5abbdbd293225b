package sta

// Run performs the complete static timing analysis of a loaded, wired
// circuit: defect resistance, forward propagation (two-phase if the
// circuit is sequential), required-time injection, and the backward
// sweep. InjectWiringEffects must already have run. Brackets the whole
// analysis with the visited-pin-node assertions spec.md §4.3/§8 require
// whenever a backward sweep runs. Grounded on
// original_source/STA/runSTA.cpp's runSTA.
func Run(c *Circuit) {
	assertNoPinNodesVisited(c)

	ResistDefectPinNodes(c)
	ResistDefectGates(c)

	if c.IsSequential {
		RunSequentialForwardSTA(c)
		InjectExternalRATConstraints(c)
		InjectSequentialConstraints(c)
		RunBackwardSTA(c)
		assertAllPinNodesVisited(c)
		return
	}

	RunForwardSTA(c)
	if len(c.RATs) > 0 {
		InjectExternalRATConstraints(c)
		RunBackwardSTA(c)
		assertAllPinNodesVisited(c)
	}
}
