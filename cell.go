package sta

import "fmt"

// PinTimingSense is the unateness of an input-to-output timing arc.
type PinTimingSense int

const (
	UnknownUnate PinTimingSense = iota
	PositiveUnate
	NegativeUnate
	NonUnate
)

func (s PinTimingSense) String() string {
	switch s {
	case PositiveUnate:
		return "positive_unate"
	case NegativeUnate:
		return "negative_unate"
	case NonUnate:
		return "non_unate"
	default:
		return "unknown_unate"
	}
}

// parsePinTimingSense matches the original CellLibrary::SetPinTimingSense,
// which dispatches on the first two characters of the token.
func parsePinTimingSense(tok string) (PinTimingSense, error) {
	if len(tok) < 2 {
		return UnknownUnate, fmt.Errorf("malformed timing sense %q", tok)
	}
	switch tok[:2] {
	case "po":
		return PositiveUnate, nil
	case "ne":
		return NegativeUnate, nil
	case "no":
		return NonUnate, nil
	default:
		return UnknownUnate, fmt.Errorf("unrecognized timing sense %q", tok)
	}
}

// EdgeType is a clock edge polarity, used by ClockParams setup/hold data.
type EdgeType int

const (
	Rising EdgeType = iota
	Falling
)

func parseEdgeType(tok string) (EdgeType, error) {
	switch tok {
	case "rising":
		return Rising, nil
	case "falling":
		return Falling, nil
	default:
		return Rising, fmt.Errorf("unrecognized clock edge %q", tok)
	}
}

// InputTiming is a single (input pin, output pin) timing arc: the
// unateness sense and the two linear models
//
//	slew  = X + Y*load + Z*input_slew
//	delay = A + B*load + C*input_slew
//
// for each of falling and rising output transitions.
type InputTiming struct {
	Sense PinTimingSense

	FallSlewX, FallSlewY, FallSlewZ    float64
	RiseSlewX, RiseSlewY, RiseSlewZ    float64
	FallDelayA, FallDelayB, FallDelayC float64
	RiseDelayA, RiseDelayB, RiseDelayC float64
}

// FallGateDelay returns gate_delay = A + B*load + C*input_slew for the falling
// output edge of this arc.
func (t *InputTiming) FallGateDelay(load, inputSlew float64) float64 {
	return t.FallDelayA + t.FallDelayB*load + t.FallDelayC*inputSlew
}

// RiseGateDelay is the rising-edge counterpart of FallGateDelay.
func (t *InputTiming) RiseGateDelay(load, inputSlew float64) float64 {
	return t.RiseDelayA + t.RiseDelayB*load + t.RiseDelayC*inputSlew
}

// FallOutputSlew computes X + Y*load + Z*input_slew for the falling edge.
func (t *InputTiming) FallOutputSlew(load, inputSlew float64) float64 {
	return t.FallSlewX + t.FallSlewY*load + t.FallSlewZ*inputSlew
}

// RiseOutputSlew is the rising-edge counterpart of FallOutputSlew.
func (t *InputTiming) RiseOutputSlew(load, inputSlew float64) float64 {
	return t.RiseSlewX + t.RiseSlewY*load + t.RiseSlewZ*inputSlew
}

// ClockParams gives setup and hold edge types and the coefficients of
// constraint = G + H*clock_slew + J*data_slew for each of setup/hold and
// falling/rising.
type ClockParams struct {
	SetupEdge EdgeType
	HoldEdge  EdgeType

	FallSetupG, FallSetupH, FallSetupJ float64
	RiseSetupG, RiseSetupH, RiseSetupJ float64

	FallHoldM, FallHoldN, FallHoldP float64
	RiseHoldM, RiseHoldN, RiseHoldP float64
}

func (c *ClockParams) FallSetup(clockSlew, dataSlew float64) float64 {
	return c.FallSetupG + c.FallSetupH*clockSlew + c.FallSetupJ*dataSlew
}

func (c *ClockParams) RiseSetup(clockSlew, dataSlew float64) float64 {
	return c.RiseSetupG + c.RiseSetupH*clockSlew + c.RiseSetupJ*dataSlew
}

func (c *ClockParams) FallHold(clockSlew, dataSlew float64) float64 {
	return c.FallHoldM + c.FallHoldN*clockSlew + c.FallHoldP*dataSlew
}

func (c *ClockParams) RiseHold(clockSlew, dataSlew float64) float64 {
	return c.RiseHoldM + c.RiseHoldN*clockSlew + c.RiseHoldP*dataSlew
}

// CellPin describes one named pin of a cell: its direction and, for
// input/clock pins, the falling and rising input capacitance.
type CellPinDirection int

const (
	DirInput CellPinDirection = iota
	DirOutput
	DirClock
)

type CellPin struct {
	Name    string
	Dir     CellPinDirection
	FallCap float64
	RiseCap float64
}

// Cell is a library entry: a named cell type with ordered input and
// output pin lists, an input x output timing matrix, and (if clocked)
// the clock pin index plus per-non-clock-input ClockParams.
type Cell struct {
	Name string

	InputPins  []CellPin
	OutputPins []CellPin

	// Timing[inputIdx][outputIdx] is the arc from input pin inputIdx to
	// output pin outputIdx. Absent/unknown_unate entries still occupy a
	// slot so index arithmetic stays simple.
	Timing [][]InputTiming

	IsClocked bool
	ClockPin  int // index into InputPins; -1 if not clocked

	// ClockParamsByInput[i] is nil if input i has no setup/hold data.
	ClockParamsByInput []*ClockParams

	inputIndex  map[string]int
	outputIndex map[string]int
}

func newCell(name string) *Cell {
	return &Cell{
		Name:        name,
		ClockPin:    -1,
		inputIndex:  make(map[string]int),
		outputIndex: make(map[string]int),
	}
}

// InputPinID returns the index of the named input (or clock) pin, or -1.
func (c *Cell) InputPinID(name string) int {
	if id, ok := c.inputIndex[name]; ok {
		return id
	}
	return -1
}

// OutputPinID returns the index of the named output pin, or -1.
func (c *Cell) OutputPinID(name string) int {
	if id, ok := c.outputIndex[name]; ok {
		return id
	}
	return -1
}

func (c *Cell) NumInputs() int  { return len(c.InputPins) }
func (c *Cell) NumOutputs() int { return len(c.OutputPins) }
