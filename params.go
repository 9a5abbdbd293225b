package sta

// Sentinel magnitudes mirroring the original analyzer's parameterDefine.h:
// required-time fields start at these surrogate infinities so the monotone
// setters have a well-defined starting point, and the report writer uses
// the bound constants to decide whether a required time was ever set.
const (
	maxReqTime = 1.0e+200
	minReqTime = -1.0e+200

	// positiveBound/negativeBound gate report emission: a required time
	// this far from zero is still treated as "never set".
	positiveBound = 1.0e+100
	negativeBound = -1.0e+100
)
