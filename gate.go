package sta

// GInPin is one input pin of a gate: the wiring (Elmore) delay from its
// driving pin node — not an accumulated arrival time, just the wire
// contribution — and the index of that driving pin node.
type GInPin struct {
	FallArrDelay, RiseArrDelay float64
	FaninPinNode               int // index into Circuit.PinNodes, -1 if unconnected
}

// GOutPin is one output pin of a gate: fall/rise load capacitance, the
// per-input delay-data table consumed by Backward STA, the backward
// visited count, and the single pin node it drives.
type GOutPin struct {
	FallLoad, RiseLoad float64

	// FastDelayData/SlowDelayData are indexed by input pin id, populated by
	// Forward STA, absent (DelayDataAbsent) for unknown_unate inputs.
	FastDelayData []DelayData
	SlowDelayData []DelayData

	VisitedCount int

	FanoutPinNode int // index into Circuit.PinNodes, -1 if unconnected
}

// Gate is an instance of a Cell plus its input/output pins, each linking
// to a PinNode. Two pseudo-gate shapes exist: primary input (no cell, one
// output, no inputs) and primary output (no cell, one input, no outputs).
type Gate struct {
	CellIndex    int // -1 for PI/PO pseudo-gates
	IsNonClocked bool

	Inputs  []GInPin
	Outputs []GOutPin

	InputVisitedCount int
}

func (g *Gate) IsPI() bool { return g.CellIndex < 0 && len(g.Inputs) == 0 }
func (g *Gate) IsPO() bool { return g.CellIndex < 0 && len(g.Outputs) == 0 }
func (g *Gate) HasCell() bool { return g.CellIndex >= 0 }

func newPIGate(outPinNode int) Gate {
	return Gate{
		CellIndex:    -1,
		IsNonClocked: true,
		Outputs: []GOutPin{{
			FanoutPinNode: outPinNode,
		}},
	}
}

func newPOGate(inPinNode int) Gate {
	return Gate{
		CellIndex:    -1,
		IsNonClocked: true,
		Inputs: []GInPin{{
			FaninPinNode: inPinNode,
		}},
	}
}
