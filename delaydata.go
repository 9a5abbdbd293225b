package sta

// DelayDataKind discriminates the two shapes of per-arc delay data an
// output pin records against one of its inputs, per spec.md §3's
// invariant: absent iff unknown_unate, UnateDelayData iff (non-)positive
// unate, NonUnateDelayData iff non_unate.
type DelayDataKind int

const (
	DelayDataAbsent DelayDataKind = iota
	DelayDataUnate
	DelayDataNonUnate
)

// DelayData is the two-arm tagged variant described in spec.md §9,
// grounded on original_source/src/DelayData.h. Forward STA populates it;
// Backward STA consumes it to backtrace required times.
type DelayData struct {
	Kind DelayDataKind

	// Unate arm.
	DelayFromInputFall float64
	DelayFromInputRise float64

	// Non-unate arm: delay from each input edge to each output edge.
	InputFallOutputFallDelay float64
	InputFallOutputRiseDelay float64
	InputRiseOutputFallDelay float64
	InputRiseOutputRiseDelay float64
}
