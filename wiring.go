package sta

import (
	"fmt"

	"github.com/khho/gosta/floatutil"
)

// InjectWiringEffects runs the Wiring Engine over every net in the
// circuit (spec.md §4.1): each driver pin node's RC tree is turned into
// per-sink Elmore delays, per-sink slew-shape constants, and driver load
// capacitances. Degenerate nets (no RC tree) get a direct load sum
// instead. Grounded on original_source/STA/injectWiringEffects.cpp.
func InjectWiringEffects(c *Circuit) {
	for i := range c.PinNodes {
		injectWiringEffectsForPinNode(c, i)
	}
}

func injectWiringEffectsForPinNode(c *Circuit, pinIdx int) {
	p := &c.PinNodes[pinIdx]
	if len(p.RCTree) == 0 {
		resistShortCircuit(c, pinIdx)
		return
	}

	rev := orientTree(p.RCTree)
	computeElmoreDelays(c, pinIdx, rev)
	p.RCTree = nil // freed once the wiring engine consumes it, per spec.md §5
}

// orientTree starts from root id 0 and produces a reverse topological
// order rev (rev[len-1] == 0, every non-last entry appears after all of
// its descendants), splitting each node's undirected adjacency into one
// fanin edge (toward the already-visited parent) and a fanout list
// (toward not-yet-visited children). Grounded on
// injectWiringEffects.cpp's adjustLinkingAndGetReverseOrder.
func orientTree(tree []RCTreeNode) []int {
	visited := make([]bool, len(tree))
	order := make([]int, 0, len(tree))

	var visit func(id, parent int, parentRes float64, fromParent bool)
	visit = func(id, parent int, parentRes float64, fromParent bool) {
		visited[id] = true
		n := &tree[id]
		if fromParent {
			n.hasFanin = true
			n.fanin = idRes{ID: parent, Resistance: parentRes}
		}
		for _, adj := range n.adjacency {
			if adj.ID == parent && fromParent {
				continue
			}
			if visited[adj.ID] {
				continue
			}
			n.fanout = append(n.fanout, adj)
			visit(adj.ID, id, adj.Resistance, true)
		}
		order = append(order, id)
	}
	visit(0, -1, 0, false)

	if len(order) != len(tree) {
		panic(fmt.Sprintf("RC tree is not connected: visited %d of %d nodes", len(order), len(tree)))
	}
	for i, n := range tree {
		if i != 0 && !n.hasFanin {
			panic(fmt.Sprintf("RC tree node %q has no fanin", n.Name))
		}
		if n.Cap < 0 {
			panic(fmt.Sprintf("RC tree node %q has negative capacitance", n.Name))
		}
	}
	if len(tree[0].fanout) == 0 {
		panic("RC tree root has no fanout")
	}
	return order
}

// computeElmoreDelays implements steps 2-5 of spec.md §4.1 over a tree
// already oriented by orientTree, with rev its reverse topological order
// (every node appears after all of its descendants, so rev[len-1] is the
// root).
func computeElmoreDelays(c *Circuit, rootPinIdx int, rev []int) {
	tree := c.PinNodes[rootPinIdx].RCTree
	n := len(tree)

	fallCapTable := make([]float64, n)
	riseCapTable := make([]float64, n)
	for i := range tree {
		fallCapTable[i] = tree[i].Cap
		riseCapTable[i] = tree[i].Cap
	}

	// leafNo is the number of sink tokens declared on the wire line, i.e.
	// the RCTreeNode ids 1..leafNo assigned at parse time before any
	// edge-introduced Steiner nodes — not the root's post-orientation
	// fanout count, which can differ (e.g. a tap reached through an
	// intermediate Steiner node rather than directly off the root).
	leafNo := c.PinNodes[rootPinIdx].FanoutPinNodeCount
	for leafID := 1; leafID <= leafNo; leafID++ {
		node := &tree[leafID]
		if node.PinNodeIndex < 0 {
			continue
		}
		fallSum, riseSum := sumFanoutGateInputCaps(c, node.PinNodeIndex)
		fallCapTable[leafID] += fallSum
		riseCapTable[leafID] += riseSum
	}

	accumulateLoads(tree, rev, fallCapTable)
	accumulateLoads(tree, rev, riseCapTable)

	rootIdx := rev[len(rev)-1]
	driverFall, driverRise := fallCapTable[rootIdx], riseCapTable[rootIdx]
	injectDriverLoad(c, rootPinIdx, leafNo, driverFall, driverRise)

	fallDelay := make([]float64, n)
	riseDelay := make([]float64, n)
	sweepRootToLeaves(tree, rev, fallCapTable, fallDelay)
	sweepRootToLeaves(tree, rev, riseCapTable, riseDelay)

	fallCapTable[rootIdx] = 0
	riseCapTable[rootIdx] = 0
	for _, id := range rev {
		if id == rootIdx {
			continue
		}
		fallCapTable[id] = tree[id].Cap * fallDelay[id]
		riseCapTable[id] = tree[id].Cap * riseDelay[id]
		if id <= leafNo && tree[id].PinNodeIndex >= 0 {
			fallSum, riseSum := sumFanoutGateInputCaps(c, tree[id].PinNodeIndex)
			fallCapTable[id] += fallSum * fallDelay[id]
			riseCapTable[id] += riseSum * riseDelay[id]
		}
	}

	accumulateLoads(tree, rev, fallCapTable)
	accumulateLoads(tree, rev, riseCapTable)

	fallBeta := make([]float64, n)
	riseBeta := make([]float64, n)
	sweepRootToLeaves(tree, rev, fallCapTable, fallBeta)
	sweepRootToLeaves(tree, rev, riseCapTable, riseBeta)

	for leafID := 1; leafID <= leafNo; leafID++ {
		node := &tree[leafID]
		if node.PinNodeIndex < 0 {
			continue
		}
		publishLeaf(c, node.PinNodeIndex, fallDelay[leafID], riseDelay[leafID], fallBeta[leafID], riseBeta[leafID])
	}
}

// sumFanoutGateInputCaps sums the fall/rise input capacitance of every
// gate input pin fanned out by the pin node at pinIdx.
func sumFanoutGateInputCaps(c *Circuit, pinIdx int) (fallSum, riseSum float64) {
	for _, e := range c.PinNodes[pinIdx].Fanouts {
		if e.Kind != EndpointGInPin {
			continue
		}
		gate := &c.Gates[e.GateIndex]
		cell := c.cellOf(gate)
		if cell == nil {
			continue
		}
		pin := cell.InputPins[e.PinIndex]
		fallSum += pin.FallCap
		riseSum += pin.RiseCap
	}
	return
}

// accumulateLoads sums each node's table entry into its parent's, in
// reverse-topological (leaf-to-root) order, i.e. walking rev forward
// since rev lists descendants before ancestors.
func accumulateLoads(tree []RCTreeNode, rev []int, table []float64) {
	for _, id := range rev {
		n := &tree[id]
		if !n.hasFanin {
			continue
		}
		table[n.fanin.ID] += table[id]
	}
}

// sweepRootToLeaves walks rev backward (root to leaves) computing
// out[node] = parentDelay + fanin.Resistance * table[node].
func sweepRootToLeaves(tree []RCTreeNode, rev []int, table []float64, out []float64) {
	for i := len(rev) - 1; i >= 0; i-- {
		id := rev[i]
		n := &tree[id]
		if !n.hasFanin {
			out[id] = 0
			continue
		}
		out[id] = out[n.fanin.ID] + n.fanin.Resistance*table[id]
	}
}

// injectDriverLoad writes the accumulated root load into the driving
// gate's output pin, handling the asymmetric case (spec.md §9) where the
// pin node drives more sinks (gate input pins bound directly, bypassing
// the RC tree) than the tree has leaves.
func injectDriverLoad(c *Circuit, rootPinIdx, leafNo int, fallLoad, riseLoad float64) {
	root := &c.PinNodes[rootPinIdx]
	if root.Fanin.Kind != EndpointGOutPin {
		return
	}
	extraFall, extraRise := 0.0, 0.0
	if len(root.Fanouts) > leafNo {
		for _, e := range root.Fanouts {
			if e.Kind != EndpointGInPin {
				continue
			}
			gate := &c.Gates[e.GateIndex]
			cell := c.cellOf(gate)
			if cell == nil {
				continue
			}
			pin := cell.InputPins[e.PinIndex]
			extraFall += pin.FallCap
			extraRise += pin.RiseCap
		}
	}
	out := &c.Gates[root.Fanin.GateIndex].Outputs[root.Fanin.PinIndex]
	out.FallLoad = fallLoad + extraFall
	out.RiseLoad = riseLoad + extraRise
}

// publishLeaf sets the pin node's Elmore delay, its driven gate inputs'
// wiring delay, and its slew-shape squares, asserting 2*beta >= d^2.
func publishLeaf(c *Circuit, pinIdx int, fallDelay, riseDelay, fallBeta, riseBeta float64) {
	p := &c.PinNodes[pinIdx]
	for _, e := range p.Fanouts {
		if e.Kind != EndpointGInPin {
			continue
		}
		in := &c.Gates[e.GateIndex].Inputs[e.PinIndex]
		in.FallArrDelay = fallDelay
		in.RiseArrDelay = riseDelay
	}

	fallSq := 2*fallBeta - fallDelay*fallDelay
	riseSq := 2*riseBeta - riseDelay*riseDelay
	if !floatutil.GreaterOrEqual(fallSq, 0, Epsilon) {
		panic(fmt.Sprintf("pin node %q: fall slew-shape square %.10g < 0 (2*beta=%.10g, d^2=%.10g)", p.Name, fallSq, 2*fallBeta, fallDelay*fallDelay))
	}
	if !floatutil.GreaterOrEqual(riseSq, 0, Epsilon) {
		panic(fmt.Sprintf("pin node %q: rise slew-shape square %.10g < 0 (2*beta=%.10g, d^2=%.10g)", p.Name, riseSq, 2*riseBeta, riseDelay*riseDelay))
	}
	p.FallSlewHatSq = fallSq
	p.RiseSlewHatSq = riseSq
	p.FallWireDelay = fallDelay
	p.RiseWireDelay = riseDelay
}

// resistShortCircuit handles a degenerate net (spec.md §4.1): a pin node
// with no RC tree. The driver's load is the direct sum of its sink gate
// input capacitances; primary-input drivers and primary-output sinks are
// skipped since neither has a cell to carry a load.
func resistShortCircuit(c *Circuit, pinIdx int) {
	p := &c.PinNodes[pinIdx]
	if p.Fanin.Kind != EndpointGOutPin {
		return
	}
	gate := &c.Gates[p.Fanin.GateIndex]
	if gate.IsPI() {
		return
	}

	var fallSum, riseSum float64
	for _, e := range p.Fanouts {
		if e.Kind != EndpointGInPin {
			continue
		}
		sinkGate := &c.Gates[e.GateIndex]
		if sinkGate.IsPO() {
			continue
		}
		cell := c.cellOf(sinkGate)
		if cell == nil {
			continue
		}
		pin := cell.InputPins[e.PinIndex]
		fallSum += pin.FallCap
		riseSum += pin.RiseCap
	}

	out := &gate.Outputs[p.Fanin.PinIndex]
	out.FallLoad += fallSum
	out.RiseLoad += riseSum
}
