package sta

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestInjectSetupHold_RisingSetup is spec.md §8 scenario 5: SetupEdge
// rising, G=0.1/H=0/J=0, clock period 10, clock fast-rise arrival 2 ->
// D-pin slow_fall_req = 10 + 2 - 0.1 = 11.9.
func TestInjectSetupHold_RisingSetup(t *testing.T) {
	cp := &ClockParams{SetupEdge: Rising, FallSetupG: 0.1}
	clk := newPinNode("clk")
	clk.FastRiseArr = 2.0

	data := newPinNode("d")

	injectSetupHold(cp, clk, data, 10.0)

	assert.InDelta(t, 11.9, data.SlowFallReq, 1e-12)
}

// TestInjectSequentialConstraints_BoundaryMarking exercises the full
// flip-flop boundary wiring: a clock pin and a data pin, each receiving
// one notifyPinNodeResolved call for its flip-flop fanout (the same way a
// primary output notifies its pin node), matching injectFFsRATData's
// upstream-notify loop.
func TestInjectSequentialConstraints_BoundaryMarking(t *testing.T) {
	lib := newCellLibrary()
	dff := newCell("DFF")
	dff.InputPins = []CellPin{{Name: "CK", Dir: DirClock}, {Name: "D", Dir: DirInput}}
	dff.OutputPins = []CellPin{{Name: "Q", Dir: DirOutput}}
	dff.IsClocked = true
	dff.ClockPin = 0
	dff.ClockParamsByInput = []*ClockParams{nil, {SetupEdge: Rising, FallSetupG: 0.1, RiseSetupG: 0.1}}
	lib.addCell(dff)

	c := newCircuit(lib)
	c.IsSequential = true
	c.ClockPeriod = 10.0

	clkIdx := c.getOrCreatePinNode("clk")
	dIdx := c.getOrCreatePinNode("d")
	qIdx := c.getOrCreatePinNode("q")
	c.PinNodes[clkIdx].FastRiseArr = 2.0
	c.PinNodes[clkIdx].addFanout(gInPinEndpoint(0, 0)) // single consumer: this FF's clock pin

	ffGate := Gate{
		CellIndex: 0,
		Inputs:    []GInPin{{FaninPinNode: clkIdx}, {FaninPinNode: dIdx}},
		Outputs:   []GOutPin{{FanoutPinNode: qIdx}},
	}
	c.addGate(ffGate)
	c.PinNodes[dIdx].addFanout(gInPinEndpoint(0, 1))

	InjectSequentialConstraints(c)

	assert.InDelta(t, 11.9, c.PinNodes[dIdx].SlowFallReq, 1e-12)
	assert.Equal(t, 1, c.PinNodes[clkIdx].ReqVisitedCount)
	assert.Equal(t, 1, c.PinNodes[dIdx].ReqVisitedCount)
}
