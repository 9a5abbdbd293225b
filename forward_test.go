package sta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildInverter returns a two-pin-node circuit holding a single
// negative-unate inverter gate, per spec.md §8 scenario 1.
func buildInverter(t *testing.T) (*Circuit, int, *PinNode, *PinNode) {
	t.Helper()
	lib := newCellLibrary()
	cell := newCell("INV")
	cell.InputPins = []CellPin{{Name: "A", Dir: DirInput}}
	cell.OutputPins = []CellPin{{Name: "Y", Dir: DirOutput}}
	cell.Timing = [][]InputTiming{{{
		Sense:      NegativeUnate,
		FallDelayA: 0.1, FallDelayB: 0.2, FallDelayC: 0.3,
	}}}
	lib.addCell(cell)

	c := newCircuit(lib)
	aIdx := c.getOrCreatePinNode("a")
	yIdx := c.getOrCreatePinNode("y")

	gate := Gate{
		CellIndex:    0,
		IsNonClocked: true,
		Inputs:       []GInPin{{FaninPinNode: aIdx}},
		Outputs:      []GOutPin{{FanoutPinNode: yIdx, FallLoad: 1.0}},
	}
	gateIdx := c.addGate(gate)

	return c, gateIdx, &c.PinNodes[aIdx], &c.PinNodes[yIdx]
}

func TestPropagateSignal_InverterFallDelay(t *testing.T) {
	c, gateIdx, a, y := buildInverter(t)
	a.FastRiseArr, a.SlowRiseArr = 0, 0
	a.FastRiseSlew, a.SlowRiseSlew = 0, 0

	propagateSignal(c, gateIdx)

	assert.InDelta(t, 0.3, y.FastFallArr, 1e-12)
	assert.InDelta(t, 0.3, y.SlowFallArr, 1e-12)
}

// buildANDPositiveUnate is scenario 2: a two-input AND gate, both arcs
// positive unate, with distinct per-input rise delays.
func buildANDPositiveUnate(t *testing.T) (*Circuit, int, *PinNode) {
	t.Helper()
	lib := newCellLibrary()
	cell := newCell("AND2")
	cell.InputPins = []CellPin{{Name: "A", Dir: DirInput}, {Name: "B", Dir: DirInput}}
	cell.OutputPins = []CellPin{{Name: "Y", Dir: DirOutput}}
	cell.Timing = [][]InputTiming{
		{{Sense: PositiveUnate, RiseDelayA: 0.3}},
		{{Sense: PositiveUnate, RiseDelayA: 0.4}},
	}
	lib.addCell(cell)

	c := newCircuit(lib)
	aIdx := c.getOrCreatePinNode("a")
	bIdx := c.getOrCreatePinNode("b")
	yIdx := c.getOrCreatePinNode("y")

	gate := Gate{
		CellIndex: 0,
		Inputs:    []GInPin{{FaninPinNode: aIdx}, {FaninPinNode: bIdx}},
		Outputs:   []GOutPin{{FanoutPinNode: yIdx}},
	}
	gateIdx := c.addGate(gate)

	c.PinNodes[aIdx].FastRiseArr, c.PinNodes[aIdx].SlowRiseArr = 1.0, 1.0
	c.PinNodes[bIdx].FastRiseArr, c.PinNodes[bIdx].SlowRiseArr = 0.5, 0.5

	return c, gateIdx, &c.PinNodes[yIdx]
}

func TestPropagateSignal_ANDReducesAcrossInputs(t *testing.T) {
	c, gateIdx, y := buildANDPositiveUnate(t)

	propagateSignal(c, gateIdx)

	assert.InDelta(t, 1.3, y.SlowRiseArr, 1e-12, "slow (max) rise arrival")
	assert.InDelta(t, 0.9, y.FastRiseArr, 1e-12, "fast (min) rise arrival")
}

// TestPropagateSignal_NonUnateReducesFourCandidates is scenario 3: a
// non-unate arc with symmetric delay coefficients and equal input
// arrivals/slews on fall and rise, so the slow-mode reduction at each
// output edge takes the max of its two feeding candidates.
func TestPropagateSignal_NonUnateReducesFourCandidates(t *testing.T) {
	lib := newCellLibrary()
	cell := newCell("XOR2")
	cell.InputPins = []CellPin{{Name: "A", Dir: DirInput}}
	cell.OutputPins = []CellPin{{Name: "Y", Dir: DirOutput}}
	cell.Timing = [][]InputTiming{{{
		Sense:      NonUnate,
		FallDelayA: 0.2,
		RiseDelayA: 0.5,
	}}}
	lib.addCell(cell)

	c := newCircuit(lib)
	aIdx := c.getOrCreatePinNode("a")
	yIdx := c.getOrCreatePinNode("y")
	c.PinNodes[aIdx].FastFallArr, c.PinNodes[aIdx].SlowFallArr = 1.0, 1.0
	c.PinNodes[aIdx].FastRiseArr, c.PinNodes[aIdx].SlowRiseArr = 1.0, 1.0

	gate := Gate{
		CellIndex: 0,
		Inputs:    []GInPin{{FaninPinNode: aIdx}},
		Outputs:   []GOutPin{{FanoutPinNode: yIdx}},
	}
	gateIdx := c.addGate(gate)

	propagateSignal(c, gateIdx)

	y := &c.PinNodes[yIdx]
	require.Equal(t, DelayDataNonUnate, c.Gates[gateIdx].Outputs[0].SlowDelayData[0].Kind)
	assert.InDelta(t, 1.2, y.SlowFallArr, 1e-12, "max of input-fall/input-rise candidates on the fall edge")
	assert.InDelta(t, 1.5, y.SlowRiseArr, 1e-12, "max of input-fall/input-rise candidates on the rise edge")
}
