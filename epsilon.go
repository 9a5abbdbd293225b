package sta

import "github.com/khho/gosta/floatutil"

// Epsilon is the absolute tolerance used for the invariant checks in the
// Wiring Engine (spec.md §5: "Floating-point comparisons for invariants
// use an absolute-epsilon of 1.0e-7"). It defaults to floatutil's
// constant and may be overridden by the optional analyzer config
// (SPEC_FULL.md §6.4) before LoadCircuit/InjectWiringEffects run.
var Epsilon = floatutil.DefaultEpsilon
