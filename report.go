package sta

import (
	"fmt"
	"os"
	"sort"
)

// ReportDecimals is the number of significant digits after the decimal
// point in the scientific-notation numbers WriteTimingReport emits
// (spec.md §6's output format). Overridable via the optional analyzer
// config (SPEC_FULL.md §6.4).
var ReportDecimals = 5

// WriteTimingReport writes the circuit's timing report to path: one `at`
// line per primary output (sorted by pin node name), then, if the
// circuit is sequential or carries any external RAT constraints, one
// `slack ... early` and/or `slack ... late` line per pin node whose
// corresponding required time was ever set (sorted by pin node name).
// Grounded on original_source/STA/CircuitPrint.cpp's PrintTimingData.
func (c *Circuit) WriteTimingReport(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("opening %q for output: %w", path, err)
	}
	defer f.Close()

	poNodes := make([]*PinNode, len(c.POs))
	for i, poIdx := range c.POs {
		po := &c.Gates[poIdx]
		poNodes[i] = &c.PinNodes[po.Inputs[0].FaninPinNode]
	}
	sort.Slice(poNodes, func(i, j int) bool { return poNodes[i].Name < poNodes[j].Name })

	for _, p := range poNodes {
		if _, err := fmt.Fprintf(f, "at %s %s %s %s %s %s %s %s %s\n",
			p.Name,
			sci(p.FastFallArr), sci(p.FastRiseArr),
			sci(p.SlowFallArr), sci(p.SlowRiseArr),
			sci(p.FastFallSlew), sci(p.FastRiseSlew),
			sci(p.SlowFallSlew), sci(p.SlowRiseSlew)); err != nil {
			return fmt.Errorf("writing %q: %w", path, err)
		}
	}

	if !c.IsSequential && len(c.RATs) == 0 {
		return nil
	}

	allNodes := make([]*PinNode, len(c.PinNodes))
	for i := range c.PinNodes {
		allNodes[i] = &c.PinNodes[i]
	}
	sort.Slice(allNodes, func(i, j int) bool { return allNodes[i].Name < allNodes[j].Name })

	for _, p := range allNodes {
		if p.HasFastReq() {
			fastFallSlack := p.FastFallArr - p.FastFallReq
			fastRiseSlack := p.FastRiseArr - p.FastRiseReq
			if _, err := fmt.Fprintf(f, "slack %s early %s %s\n", p.Name, sci(fastFallSlack), sci(fastRiseSlack)); err != nil {
				return fmt.Errorf("writing %q: %w", path, err)
			}
		}
		if p.HasSlowReq() {
			slowFallSlack := p.SlowFallReq - p.SlowFallArr
			slowRiseSlack := p.SlowRiseReq - p.SlowRiseArr
			if _, err := fmt.Fprintf(f, "slack %s late %s %s\n", p.Name, sci(slowFallSlack), sci(slowRiseSlack)); err != nil {
				return fmt.Errorf("writing %q: %w", path, err)
			}
		}
	}

	return nil
}

func sci(v float64) string {
	return fmt.Sprintf("%.*e", ReportDecimals, v)
}
