package sta

// ResistDefectPinNodes makes the forward and backward wavefronts tolerate
// two kinds of defect nets that show up in some benchmark circuits
// (spec.md §9's Open Question on malformed-but-tolerated topology):
//
//   - An undriven pin node (no fanin) still needs its consumers' input-
//     visited counts bumped, or those gates would never reach their
//     admission threshold; propagateVirtualSignal does that without
//     inventing an arrival value.
//   - A dead-end pin node (no fanout) would otherwise leave its own
//     driver's gate-output visited count permanently one short; walking
//     up to that output and bumping its count directly lets the output
//     still reach saturation without inventing a required time or
//     running the backward sweep early.
//
// Grounded on original_source/STA/runSTA.cpp's resistDefectPinNodes.
func ResistDefectPinNodes(c *Circuit) {
	for i := range c.PinNodes {
		p := &c.PinNodes[i]
		if p.Fanin.IsZero() {
			propagateVirtualSignal(c, i)
		}
		if len(p.Fanouts) == 0 {
			resistDeadEndPinNode(c, i)
		}
	}
}

// resistDeadEndPinNode walks pinIdx's Fanin chain up through any pure
// pin-node-to-pin-node links to the driving gate output, and increments
// only that output's VisitedCount. This runs before the forward pass, so
// the gate's FastDelayData/SlowDelayData slices are not yet allocated;
// incrementing VisitedCount (rather than invoking the full backward
// primitive) is the only safe bookkeeping available this early.
// Grounded on original_source/STA/runSTA.cpp's resistDefectPinNodes.
func resistDeadEndPinNode(c *Circuit, pinIdx int) {
	for {
		fanin := c.PinNodes[pinIdx].Fanin
		switch fanin.Kind {
		case EndpointPinNode:
			pinIdx = fanin.PinIndex
		case EndpointGOutPin:
			c.Gates[fanin.GateIndex].Outputs[fanin.PinIndex].VisitedCount++
			return
		default:
			return
		}
	}
}

func propagateVirtualSignal(c *Circuit, pinIdx int) {
	for _, fo := range c.PinNodes[pinIdx].Fanouts {
		switch fo.Kind {
		case EndpointGInPin:
			g := &c.Gates[fo.GateIndex]
			g.InputVisitedCount++
			if g.InputVisitedCount >= len(g.Inputs) {
				panic("propagateVirtualSignal: every input of a gate is virtual-driven")
			}
		case EndpointPinNode:
			propagateVirtualSignal(c, fo.PinIndex)
		}
	}
}

// ResistDefectGates bumps the input-visited count of every combinational
// gate input that references no pin node at all (an entirely omitted
// instance binding), so a partially-bound instance still reaches its
// admission threshold on its remaining real inputs. Grounded on
// original_source/STA/runSTA.cpp's resistDefectGates.
func ResistDefectGates(c *Circuit) {
	for i := range c.Gates {
		g := &c.Gates[i]
		if !g.HasCell() || !g.IsNonClocked {
			continue
		}
		for j := range g.Inputs {
			if g.Inputs[j].FaninPinNode < 0 {
				g.InputVisitedCount++
			}
		}
	}
}
