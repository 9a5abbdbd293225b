package sta

import (
	"math"

	"github.com/khho/gosta/floatutil"
)

// arcResult is one candidate (arrival, slew) pair produced by a single
// input-to-output arc evaluation, in one mode (fast or slow).
type arcResult struct {
	arrival, slew float64
}

// RunForwardSTA runs the topological data-driven forward wavefront of
// spec.md §4.2, seeded from every primary input. Grounded on
// original_source/STA/runComSTA.cpp's runComForwardSTA.
func RunForwardSTA(c *Circuit) {
	queue := append([]int(nil), c.PIs...)
	runForwardWavefront(c, &queue)
}

// runForwardWavefront grows queue in place as gates become ready (a
// classic Go slice-as-FIFO: append while ranging by index). Every queued
// gate's outputs are already-computed signal values by construction
// (primary inputs carry their preset values, other gates had
// propagateSignal called on them by notifyDrivenGate at the moment they
// were admitted) — this loop only ever fans those values out to
// consumers. Flip-flop gates are never auto-admitted by notifyDrivenGate;
// they enter a queue only via the explicit clock-to-Q step in
// sequential.go.
func runForwardWavefront(c *Circuit, queue *[]int) {
	for i := 0; i < len(*queue); i++ {
		fanOutGate(c, (*queue)[i], queue)
	}
}

// fanOutGate propagates gate's output pin node values to every fanout and
// increments each driven gate's input-visited count, enqueuing and firing
// it once all of its inputs have arrived.
func fanOutGate(c *Circuit, gateIdx int, queue *[]int) {
	gate := &c.Gates[gateIdx]
	for oi := range gate.Outputs {
		out := &gate.Outputs[oi]
		if out.FanoutPinNode < 0 {
			continue
		}
		driverNode := &c.PinNodes[out.FanoutPinNode]
		for _, fo := range driverNode.Fanouts {
			switch fo.Kind {
			case EndpointPinNode:
				sink := &c.PinNodes[fo.PinIndex]
				propagateAcrossWire(driverNode, sink)
				notifyGInPinFanouts(c, sink, queue)
			case EndpointGInPin:
				notifyDrivenGate(c, fo.GateIndex, fo.PinIndex, queue)
			}
		}
	}
}

// propagateAcrossWire applies the per-sink Elmore delay and slew-shape
// term computed by the Wiring Engine: sink_arrival = driver_arrival +
// wire_delay; sink_slew = sqrt(driver_slew^2 + slew_hat_sq).
func propagateAcrossWire(driver, sink *PinNode) {
	sink.FastFallArr = driver.FastFallArr + sink.FallWireDelay
	sink.SlowFallArr = driver.SlowFallArr + sink.FallWireDelay
	sink.FastRiseArr = driver.FastRiseArr + sink.RiseWireDelay
	sink.SlowRiseArr = driver.SlowRiseArr + sink.RiseWireDelay

	sink.FastFallSlew = hypot(driver.FastFallSlew, sink.FallSlewHatSq)
	sink.SlowFallSlew = hypot(driver.SlowFallSlew, sink.FallSlewHatSq)
	sink.FastRiseSlew = hypot(driver.FastRiseSlew, sink.RiseSlewHatSq)
	sink.SlowRiseSlew = hypot(driver.SlowRiseSlew, sink.RiseSlewHatSq)
}

func hypot(slew, hatSq float64) float64 {
	v := slew*slew + hatSq
	if v < 0 {
		v = 0
	}
	return math.Sqrt(v)
}

func notifyGInPinFanouts(c *Circuit, sink *PinNode, queue *[]int) {
	for _, fo := range sink.Fanouts {
		if fo.Kind == EndpointGInPin {
			notifyDrivenGate(c, fo.GateIndex, fo.PinIndex, queue)
		}
	}
}

// notifyDrivenGate records one more arrival at gate gateIdx's input
// inputIdx (unused by the admission rule itself, kept for a uniform
// signature). A gate is admitted — propagateSignal computed and the gate
// enqueued — once every one of its inputs has arrived and it has a cell.
// A flip-flop never reaches this threshold from D alone in the first
// forward phase of a sequential circuit (IsNonClocked is false for it),
// so it is left unfired until the explicit clock-to-Q step in
// sequential.go.
func notifyDrivenGate(c *Circuit, gateIdx, inputIdx int, queue *[]int) {
	_ = inputIdx
	gate := &c.Gates[gateIdx]
	gate.InputVisitedCount++
	if gate.InputVisitedCount >= len(gate.Inputs) && gate.HasCell() && gate.IsNonClocked {
		propagateSignal(c, gateIdx)
		*queue = append(*queue, gateIdx)
	}
}

// propagateSignal evaluates every active (input, output) arc of the gate
// at gateIdx for both fast and slow modes, reducing with min (fast) / max
// (slow) at each output, per spec.md §4.2. Grounded on
// original_source/STA/propagateSignal.cpp.
func propagateSignal(c *Circuit, gateIdx int) {
	gate := &c.Gates[gateIdx]
	cell := c.cellOf(gate)

	for oi := range gate.Outputs {
		out := &gate.Outputs[oi]
		ensureDelayDataSlices(out, len(gate.Inputs))

		var fastFall, fastRise, slowFall, slowRise []arcResult

		for ii := range gate.Inputs {
			in := &gate.Inputs[ii]
			if in.FaninPinNode < 0 {
				continue
			}
			timing := &cell.Timing[ii][oi]
			if timing.Sense == UnknownUnate {
				out.FastDelayData[ii] = DelayData{Kind: DelayDataAbsent}
				out.SlowDelayData[ii] = DelayData{Kind: DelayDataAbsent}
				continue
			}
			inPin := &c.PinNodes[in.FaninPinNode]

			fastFall, fastRise, out.FastDelayData[ii] = evalArc(timing, inPin, true, out, fastFall, fastRise)
			slowFall, slowRise, out.SlowDelayData[ii] = evalArc(timing, inPin, false, out, slowFall, slowRise)
		}

		reduceInto(&c.PinNodes[out.FanoutPinNode], fastFall, fastRise, slowFall, slowRise)
	}
}

// propagateSignalForInput is propagateSignal restricted to a single input
// pin (spec.md §4.3's clock-to-Q step): only that input's arcs are
// evaluated, so a flip-flop's Q output depends solely on its clock pin's
// arrival, never on D. Grounded on original_source/STA/runSeqSTA.cpp's
// call propagateSignal(clockPinId, gate).
func propagateSignalForInput(c *Circuit, gateIdx, onlyInputIdx int) {
	gate := &c.Gates[gateIdx]
	cell := c.cellOf(gate)
	in := &gate.Inputs[onlyInputIdx]
	if in.FaninPinNode < 0 {
		return
	}
	inPin := &c.PinNodes[in.FaninPinNode]

	for oi := range gate.Outputs {
		out := &gate.Outputs[oi]
		ensureDelayDataSlices(out, len(gate.Inputs))
		timing := &cell.Timing[onlyInputIdx][oi]
		if timing.Sense == UnknownUnate {
			continue
		}

		var fastFall, fastRise, slowFall, slowRise []arcResult
		fastFall, fastRise, out.FastDelayData[onlyInputIdx] = evalArc(timing, inPin, true, out, fastFall, fastRise)
		slowFall, slowRise, out.SlowDelayData[onlyInputIdx] = evalArc(timing, inPin, false, out, slowFall, slowRise)
		reduceInto(&c.PinNodes[out.FanoutPinNode], fastFall, fastRise, slowFall, slowRise)
	}
}

func ensureDelayDataSlices(out *GOutPin, numInputs int) {
	if len(out.FastDelayData) != numInputs {
		out.FastDelayData = make([]DelayData, numInputs)
		out.SlowDelayData = make([]DelayData, numInputs)
	}
}

// evalArc evaluates one input's contribution to one output for one mode
// (fast if useFast, else slow), appending its candidate(s) to the fall
// and rise accumulators and returning the DelayData to store.
func evalArc(timing *InputTiming, in *PinNode, useFast bool, out *GOutPin, fallAcc, riseAcc []arcResult) ([]arcResult, []arcResult, DelayData) {
	fallArr, fallSlew := in.FastFallArr, in.FastFallSlew
	riseArr, riseSlew := in.FastRiseArr, in.FastRiseSlew
	if !useFast {
		fallArr, fallSlew = in.SlowFallArr, in.SlowFallSlew
		riseArr, riseSlew = in.SlowRiseArr, in.SlowRiseSlew
	}

	switch timing.Sense {
	case PositiveUnate:
		fallDelay, fallRes := computeArc(timing.FallGateDelay, timing.FallOutputSlew, fallArr, fallSlew, out.FallLoad)
		riseDelay, riseRes := computeArc(timing.RiseGateDelay, timing.RiseOutputSlew, riseArr, riseSlew, out.RiseLoad)
		fallAcc = append(fallAcc, fallRes)
		riseAcc = append(riseAcc, riseRes)
		return fallAcc, riseAcc, DelayData{Kind: DelayDataUnate, DelayFromInputFall: fallDelay, DelayFromInputRise: riseDelay}

	case NegativeUnate:
		// input-fall drives output-rise; input-rise drives output-fall.
		riseDelay, fallRes := computeArc(timing.FallGateDelay, timing.FallOutputSlew, riseArr, riseSlew, out.FallLoad)
		fallDelay, riseRes := computeArc(timing.RiseGateDelay, timing.RiseOutputSlew, fallArr, fallSlew, out.RiseLoad)
		fallAcc = append(fallAcc, fallRes)
		riseAcc = append(riseAcc, riseRes)
		return fallAcc, riseAcc, DelayData{Kind: DelayDataUnate, DelayFromInputFall: fallDelay, DelayFromInputRise: riseDelay}

	case NonUnate:
		ffDelay, ffRes := computeArc(timing.FallGateDelay, timing.FallOutputSlew, fallArr, fallSlew, out.FallLoad)
		rfDelay, rfRes := computeArc(timing.FallGateDelay, timing.FallOutputSlew, riseArr, riseSlew, out.FallLoad)
		frDelay, frRes := computeArc(timing.RiseGateDelay, timing.RiseOutputSlew, fallArr, fallSlew, out.RiseLoad)
		rrDelay, rrRes := computeArc(timing.RiseGateDelay, timing.RiseOutputSlew, riseArr, riseSlew, out.RiseLoad)
		fallAcc = append(fallAcc, ffRes, rfRes)
		riseAcc = append(riseAcc, frRes, rrRes)
		return fallAcc, riseAcc, DelayData{
			Kind:                     DelayDataNonUnate,
			InputFallOutputFallDelay: ffDelay,
			InputRiseOutputFallDelay: rfDelay,
			InputFallOutputRiseDelay: frDelay,
			InputRiseOutputRiseDelay: rrDelay,
		}
	}
	return fallAcc, riseAcc, DelayData{Kind: DelayDataAbsent}
}

// computeArc applies gate_delay = A + B*load + C*input_slew and the
// companion slew model, returning the delay (for DelayData storage) and
// the (arrival, slew) candidate for the reduction.
func computeArc(delayFn, slewFn func(load, inputSlew float64) float64, inputArr, inputSlew, load float64) (float64, arcResult) {
	delay := delayFn(load, inputSlew)
	slew := slewFn(load, inputSlew)
	return delay, arcResult{arrival: inputArr + delay, slew: slew}
}

// reduceInto folds the accumulated candidates into the driven pin node's
// fields: elementwise minimum for fast, maximum for slow.
func reduceInto(node *PinNode, fastFall, fastRise, slowFall, slowRise []arcResult) {
	if len(fastFall) > 0 {
		node.FastFallArr = floatutil.Min(arrivals(fastFall))
		node.FastFallSlew = floatutil.Min(slews(fastFall))
	}
	if len(fastRise) > 0 {
		node.FastRiseArr = floatutil.Min(arrivals(fastRise))
		node.FastRiseSlew = floatutil.Min(slews(fastRise))
	}
	if len(slowFall) > 0 {
		node.SlowFallArr = floatutil.Max(arrivals(slowFall))
		node.SlowFallSlew = floatutil.Max(slews(slowFall))
	}
	if len(slowRise) > 0 {
		node.SlowRiseArr = floatutil.Max(arrivals(slowRise))
		node.SlowRiseSlew = floatutil.Max(slews(slowRise))
	}
}

func arrivals(rs []arcResult) []float64 {
	out := make([]float64, len(rs))
	for i, r := range rs {
		out[i] = r.arrival
	}
	return out
}

func slews(rs []arcResult) []float64 {
	out := make([]float64, len(rs))
	for i, r := range rs {
		out[i] = r.slew
	}
	return out
}
