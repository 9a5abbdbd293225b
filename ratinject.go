package sta

// InjectExternalRATConstraints applies every external required-arrival-
// time constraint parsed from the netlist's rat lines onto its target
// pin node, using the monotone setters so an explicit constraint folds
// in alongside whatever a flip-flop boundary or another rat line already
// set. Grounded on original_source/STA/runSTA.cpp's injectGivenRATData;
// call after the forward sweep and before RunBackwardSTA.
func InjectExternalRATConstraints(c *Circuit) {
	for i := range c.RATs {
		rat := &c.RATs[i]
		p := &c.PinNodes[rat.PinNodeIndex]

		if rat.Mode == RATFast || rat.Mode == RATBoth {
			p.SetFastFallReq(rat.FastFallTime)
			p.SetFastRiseReq(rat.FastRiseTime)
		}
		if rat.Mode == RATSlow || rat.Mode == RATBoth {
			p.SetSlowFallReq(rat.SlowFallTime)
			p.SetSlowRiseReq(rat.SlowRiseTime)
		}
	}
}
