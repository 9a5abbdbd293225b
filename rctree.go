package sta

// idRes is an (id, resistance) pair — either an undirected adjacency
// entry (pre-orientation) or a directed fanin/fanout edge (post-orientation).
type idRes struct {
	ID        int
	Resistance float64
}

// RCTreeNode is a per-net parasitic tree node: a name, an optional
// binding to a pin node, a capacitance, and (pre-processing) an
// undirected adjacency list that the wiring engine orients into one
// fanin edge and a fanout list. See spec.md §3.
type RCTreeNode struct {
	Name string

	// PinNodeIndex is the index of the bound pin node within the owning
	// circuit's PinNodes arena, or -1 for a purely internal Steiner node.
	PinNodeIndex int

	Cap float64

	adjacency []idRes // undirected, pre-orientation

	hasFanin bool
	fanin    idRes
	fanout   []idRes
}

func newRCTreeNode(name string) RCTreeNode {
	return RCTreeNode{Name: name, PinNodeIndex: -1}
}

func (n *RCTreeNode) addAdjacency(otherID int, resistance float64) {
	n.adjacency = append(n.adjacency, idRes{ID: otherID, Resistance: resistance})
}
