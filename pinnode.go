package sta

// PinNode is a named electrical node: at most one fanin (a gate output
// pin or another pin node), and a fanout list of gate input pins and/or
// pin nodes. See spec.md §3 for the full invariant list.
type PinNode struct {
	Name string

	Fanin   Endpoint // zero value (EndpointNone) means "no driver"
	Fanouts []Endpoint

	// Visited is set once the backward sweep has finalized this node's
	// required times (a dead-end node with no fanout is marked Visited
	// up front by RunBackwardSTA). Run asserts every pin node ends up
	// Visited after the backward sweep.
	Visited bool

	FastFallArr, FastRiseArr float64
	SlowFallArr, SlowRiseArr float64

	FastFallReq, FastRiseReq float64
	SlowFallReq, SlowRiseReq float64

	FastFallSlew, FastRiseSlew float64
	SlowFallSlew, SlowRiseSlew float64

	FallSlewHatSq, RiseSlewHatSq float64

	// FallWireDelay/RiseWireDelay are the Elmore delays the Wiring Engine
	// computed from this node's driver to this node, when this node is an
	// RC tree leaf. Zero for nodes bound directly to a gate output pin
	// with no intervening tree (spec.md §4.1's degenerate-net case).
	FallWireDelay, RiseWireDelay float64

	// RCTree holds this node's net if it is a wiring root; nil otherwise.
	// Freed (set to nil) by the wiring engine once consumed, per spec.md
	// §5's resource model.
	RCTree []RCTreeNode

	// FanoutPinNodeCount records how many of Fanouts are themselves pin
	// nodes (RC tree leaves bound to a fanout pin node), distinguishing
	// the "driver drives more sinks than the tree has leaves" case flagged
	// in spec.md §9.
	FanoutPinNodeCount int

	// ReqVisitedCount counts how many of Fanouts have already contributed
	// a required-time candidate, mirroring Gate.InputVisitedCount for the
	// backward wavefront: this node is ready to propagate its own
	// required time to its driver once ReqVisitedCount == len(Fanouts).
	ReqVisitedCount int
}

func newPinNode(name string) *PinNode {
	return &PinNode{
		Name:        name,
		Fanin:       noEndpoint,
		FastFallReq: minReqTime,
		FastRiseReq: minReqTime,
		SlowFallReq: maxReqTime,
		SlowRiseReq: maxReqTime,
	}
}

// SetFastFallReq applies the monotone max setter described in spec.md §3:
// a "set" never weakens the bound.
func (p *PinNode) SetFastFallReq(v float64) {
	if v > p.FastFallReq {
		p.FastFallReq = v
	}
}

func (p *PinNode) SetFastRiseReq(v float64) {
	if v > p.FastRiseReq {
		p.FastRiseReq = v
	}
}

// SetSlowFallReq applies the monotone min setter.
func (p *PinNode) SetSlowFallReq(v float64) {
	if v < p.SlowFallReq {
		p.SlowFallReq = v
	}
}

func (p *PinNode) SetSlowRiseReq(v float64) {
	if v < p.SlowRiseReq {
		p.SlowRiseReq = v
	}
}

// HasFastReq reports whether this node's fast required time was ever set
// (spec.md §6's report-emission threshold: strictly greater than
// negativeBound).
func (p *PinNode) HasFastReq() bool {
	return p.FastFallReq > negativeBound
}

// HasSlowReq is HasFastReq's slow-mode counterpart.
func (p *PinNode) HasSlowReq() bool {
	return p.SlowFallReq < positiveBound
}

func (p *PinNode) addFanout(e Endpoint) {
	p.Fanouts = append(p.Fanouts, e)
	if e.Kind == EndpointPinNode {
		p.FanoutPinNodeCount++
	}
}
