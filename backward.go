package sta

import "fmt"

// RunBackwardSTA runs the reverse counterpart of the forward wavefront
// (spec.md §4.2): seeded from every primary output, it backtraces each
// gate's required times onto its inputs once every one of the gate's
// outputs has had its own required time finalized by its consumers.
// Grounded on original_source/STA/runComSTA.cpp's runComBackwardSTA.
func RunBackwardSTA(c *Circuit) {
	// A pin node with no fanout has nothing to contribute to the backward
	// sweep (its driver's visited count was already bumped by the defect
	// pre-pass); it is trivially visited rather than left dangling, so
	// that Run's closing assertAllPinNodesVisited holds.
	for i := range c.PinNodes {
		if len(c.PinNodes[i].Fanouts) == 0 {
			c.PinNodes[i].Visited = true
		}
	}

	for _, poIdx := range c.POs {
		po := &c.Gates[poIdx]
		notifyPinNodeResolved(c, po.Inputs[0].FaninPinNode)
	}
}

// assertNoPinNodesVisited and assertAllPinNodesVisited bracket a full
// Run, mirroring original_source/STA/runSTA.cpp's
// areAllPinNodesNonVisited/areAllPinNodesVisited asserts (spec.md §4.3/
// §8's "every pin node must be marked visited" property).
func assertNoPinNodesVisited(c *Circuit) {
	for i := range c.PinNodes {
		if c.PinNodes[i].Visited {
			panic(fmt.Sprintf("pin node %q already visited before analysis started", c.PinNodes[i].Name))
		}
	}
}

func assertAllPinNodesVisited(c *Circuit) {
	for i := range c.PinNodes {
		if !c.PinNodes[i].Visited {
			panic(fmt.Sprintf("pin node %q was never visited by the backward sweep", c.PinNodes[i].Name))
		}
	}
}

// notifyPinNodeResolved records one more of pinIdx's fanouts as having
// contributed a required-time candidate. Once every fanout has
// contributed, this node's own required time is finalized, it is marked
// visited, and it gets propagated one hop further upstream.
func notifyPinNodeResolved(c *Circuit, pinIdx int) {
	p := &c.PinNodes[pinIdx]
	p.ReqVisitedCount++
	if p.ReqVisitedCount < len(p.Fanouts) {
		return
	}
	p.Visited = true
	propagateReqUpstream(c, pinIdx)
}

// propagateReqUpstream sends a finalized pin node's required time to
// whatever drives it: across a wire (subtracting the Elmore delay) if
// it is an RC-tree leaf, or directly into the driving gate's output
// bookkeeping if it is itself wired straight to a gate output.
func propagateReqUpstream(c *Circuit, pinIdx int) {
	p := &c.PinNodes[pinIdx]
	switch p.Fanin.Kind {
	case EndpointPinNode:
		root := &c.PinNodes[p.Fanin.PinIndex]
		root.SetFastFallReq(p.FastFallReq - p.FallWireDelay)
		root.SetFastRiseReq(p.FastRiseReq - p.RiseWireDelay)
		root.SetSlowFallReq(p.SlowFallReq - p.FallWireDelay)
		root.SetSlowRiseReq(p.SlowRiseReq - p.RiseWireDelay)
		notifyPinNodeResolved(c, p.Fanin.PinIndex)

	case EndpointGOutPin:
		notifyOutputResolved(c, p.Fanin.GateIndex, p.Fanin.PinIndex)
	}
}

// notifyOutputResolved marks one output of a gate as finalized and, once
// every output is, backtraces the gate.
func notifyOutputResolved(c *Circuit, gateIdx, outIdx int) {
	gate := &c.Gates[gateIdx]
	out := &gate.Outputs[outIdx]
	out.VisitedCount++
	for i := range gate.Outputs {
		if gate.Outputs[i].VisitedCount < 1 {
			return
		}
	}
	if !gate.HasCell() || !gate.IsNonClocked {
		return // primary input, or a flip-flop whose D/clock pins are
		// already backward leaves via InjectSequentialConstraints
	}
	backtraceSignal(c, gateIdx)
}

// backtraceSignal computes, for every active (input, output) arc of the
// gate at gateIdx, the required-time candidate it implies for that input,
// folding multiple outputs' candidates into each input's driving pin node
// via the monotone setters (spec.md §3). A pin node fanning out to more
// than one gate input receives one such fold per consumer, which is how
// a branch join's extra candidates accumulate without special-casing.
// Grounded on original_source/STA/backtraceSignal.cpp.
func backtraceSignal(c *Circuit, gateIdx int) {
	gate := &c.Gates[gateIdx]
	cell := c.cellOf(gate)

	for ii := range gate.Inputs {
		in := &gate.Inputs[ii]
		if in.FaninPinNode < 0 {
			continue
		}
		driving := &c.PinNodes[in.FaninPinNode]

		for oi := range gate.Outputs {
			out := &gate.Outputs[oi]
			if out.FanoutPinNode < 0 {
				continue
			}
			sense := cell.Timing[ii][oi].Sense
			if sense == UnknownUnate {
				continue
			}
			outNode := &c.PinNodes[out.FanoutPinNode]
			backtraceArc(driving, outNode, &out.FastDelayData[ii], sense, true)
			backtraceArc(driving, outNode, &out.SlowDelayData[ii], sense, false)
		}

		notifyPinNodeResolved(c, in.FaninPinNode)
	}
}

// backtraceArc folds one (input, output) arc's contribution to the
// input's required time, dispatching on the arc's unateness exactly as
// evalArc did going forward, only subtracting instead of adding. sense
// disambiguates DelayDataUnate, whose Kind alone does not distinguish
// positive from negative unate (forward.go tags both the same way).
func backtraceArc(driving, outNode *PinNode, dd *DelayData, sense PinTimingSense, useFast bool) {
	outFallReq, outRiseReq := outNode.FastFallReq, outNode.FastRiseReq
	setFall, setRise := driving.SetFastFallReq, driving.SetFastRiseReq
	if !useFast {
		outFallReq, outRiseReq = outNode.SlowFallReq, outNode.SlowRiseReq
		setFall, setRise = driving.SetSlowFallReq, driving.SetSlowRiseReq
	}

	switch dd.Kind {
	case DelayDataUnate:
		if sense == NegativeUnate {
			// input-fall landed on output-rise; input-rise landed on output-fall.
			setFall(outRiseReq - dd.DelayFromInputFall)
			setRise(outFallReq - dd.DelayFromInputRise)
		} else {
			setFall(outFallReq - dd.DelayFromInputFall)
			setRise(outRiseReq - dd.DelayFromInputRise)
		}

	case DelayDataNonUnate:
		setFall(outFallReq - dd.InputFallOutputFallDelay)
		setFall(outRiseReq - dd.InputFallOutputRiseDelay)
		setRise(outFallReq - dd.InputRiseOutputFallDelay)
		setRise(outRiseReq - dd.InputRiseOutputRiseDelay)
	}
}
