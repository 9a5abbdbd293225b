package sta

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestRunBackwardSTA_BacktracesThroughInverter wires a PO's required
// time back through a single negative-unate inverter onto its input,
// exercising backtraceSignal's sense-aware edge pairing (backward.go's
// NegativeUnate branch swaps which output edge's required time lands on
// which input edge, mirroring forward.go's evalArc).
func TestRunBackwardSTA_BacktracesThroughInverter(t *testing.T) {
	c, gateIdx, a, y := buildInverter(t)
	a.FastRiseArr, a.SlowRiseArr = 0, 0
	a.FastRiseSlew, a.SlowRiseSlew = 0, 0
	y.Fanin = gOutPinEndpoint(gateIdx, 0)
	propagateSignal(c, gateIdx)

	poIdx := c.addGate(newPOGate(c.pinNodeIndex["y"]))
	y.addFanout(gInPinEndpoint(poIdx, 0))
	c.POs = append(c.POs, poIdx)

	y.SlowFallReq = 1.0
	y.SlowRiseReq = 1.0

	RunBackwardSTA(c)

	// Negative unate swaps which output edge's required time pairs with
	// which input edge relative to the positive-unate case: the input's
	// fall-required comes from the output's rise-required (here
	// undiminished, since this arc's input-fall delay coefficient is
	// zero), and the input's rise-required comes from the output's
	// fall-required minus the 0.3 input-rise-to-output-fall delay.
	assert.InDelta(t, 1.0, a.SlowFallReq, 1e-12)
	assert.InDelta(t, 0.7, a.SlowRiseReq, 1e-12)
	assert.Equal(t, 1, y.ReqVisitedCount)
	assert.Equal(t, 1, a.ReqVisitedCount)
}
