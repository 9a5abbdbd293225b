package sta

// RATMode selects which of a pin node's required-time fields an external
// RATData constraint applies to.
type RATMode int

const (
	RATFast RATMode = iota
	RATSlow
	RATBoth
)

// RATData is an external required-arrival-time constraint: a pin-node
// reference, a mode, and the falling/rising required times for whichever
// modes apply. See spec.md §3.
type RATData struct {
	PinNodeIndex int
	Mode         RATMode

	FastFallTime float64
	FastRiseTime float64
	SlowFallTime float64
	SlowRiseTime float64
}
