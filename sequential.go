package sta

// RunSequentialForwardSTA runs the two-phase forward sweep spec.md §4.3
// requires for a sequential circuit: ordinary combinational propagation
// from every primary input up to (but not through) every flip-flop,
// then an explicit clock-to-Q step for every flip-flop, then a second
// combinational phase from the flip-flops' Q outputs onward. Grounded on
// original_source/STA/runSeqSTA.cpp's runSeqForwardSTA.
func RunSequentialForwardSTA(c *Circuit) {
	phase1 := append([]int(nil), c.PIs...)
	runForwardWavefront(c, &phase1)

	seq := sequentialGateIndices(c)
	for _, gateIdx := range seq {
		cell := c.cellOf(&c.Gates[gateIdx])
		propagateSignalForInput(c, gateIdx, cell.ClockPin)
	}

	phase2 := append([]int(nil), seq...)
	runForwardWavefront(c, &phase2)
}

func sequentialGateIndices(c *Circuit) []int {
	var seq []int
	for i := range c.Gates {
		g := &c.Gates[i]
		if g.HasCell() && !g.IsNonClocked {
			seq = append(seq, i)
		}
	}
	return seq
}

// InjectSequentialConstraints seeds the backward sweep's flip-flop
// boundary: every clock pin node and data input pin node of every
// flip-flop becomes a backward leaf exactly like a primary output, and
// every data input with setup/hold coefficients gets its required times
// constrained from the clock period and the clock's own arrival/slew.
// Grounded on original_source/STA/runSeqSTA.cpp's injectFFsRATData; call
// before RunBackwardSTA on a sequential circuit.
func InjectSequentialConstraints(c *Circuit) {
	period := c.ClockPeriod

	for _, gateIdx := range sequentialGateIndices(c) {
		gate := &c.Gates[gateIdx]
		cell := c.cellOf(gate)
		clockPinIdx := cell.ClockPin

		clkFaninIdx := gate.Inputs[clockPinIdx].FaninPinNode
		if clkFaninIdx < 0 {
			continue
		}
		clk := &c.PinNodes[clkFaninIdx]
		notifyPinNodeResolved(c, clkFaninIdx)

		for j := range gate.Inputs {
			if j == clockPinIdx || gate.Inputs[j].FaninPinNode < 0 {
				continue
			}
			dataIdx := gate.Inputs[j].FaninPinNode
			data := &c.PinNodes[dataIdx]

			if cp := cell.ClockParamsByInput[j]; cp != nil {
				injectSetupHold(cp, clk, data, period)
			}

			notifyPinNodeResolved(c, dataIdx)
		}
	}
}

func injectSetupHold(cp *ClockParams, clk, data *PinNode, period float64) {
	clockSetupSlew, clockSetupArr := clk.FastRiseSlew, clk.FastRiseArr
	if cp.SetupEdge == Falling {
		clockSetupSlew, clockSetupArr = clk.FastFallSlew, clk.FastFallArr
	}
	fallSetup := cp.FallSetup(clockSetupSlew, data.SlowFallSlew)
	riseSetup := cp.RiseSetup(clockSetupSlew, data.SlowRiseSlew)
	data.SetSlowFallReq(period + clockSetupArr - fallSetup)
	data.SetSlowRiseReq(period + clockSetupArr - riseSetup)

	clockHoldSlew, clockHoldArr := clk.SlowRiseSlew, clk.SlowRiseArr
	if cp.HoldEdge == Falling {
		clockHoldSlew, clockHoldArr = clk.SlowFallSlew, clk.SlowFallArr
	}
	fallHold := cp.FallHold(clockHoldSlew, data.FastFallSlew)
	riseHold := cp.RiseHold(clockHoldSlew, data.FastRiseSlew)
	data.SetFastFallReq(clockHoldArr + fallHold)
	data.SetFastRiseReq(clockHoldArr + riseHold)
}
