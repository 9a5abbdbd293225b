package sta

import "fmt"

// Circuit is a loaded netlist: its pin nodes, gates (including the PI/PO
// pseudo-gates), external RAT constraints, and (if sequential) clock
// parameters. Pin nodes and gates are created during netlist load and
// live for the process; RC-tree storage on each pin node is released
// once the Wiring Engine consumes it (spec.md §3's Lifecycle).
type Circuit struct {
	Lib *CellLibrary

	PinNodes     []PinNode
	pinNodeIndex map[string]int

	Gates []Gate
	PIs   []int
	POs   []int

	RATs        []RATData
	ratIndexByPinNode map[int]int

	IsSequential bool
	ClockPinNode int
	ClockPeriod  float64
}

func newCircuit(lib *CellLibrary) *Circuit {
	return &Circuit{
		Lib:               lib,
		pinNodeIndex:      make(map[string]int),
		ratIndexByPinNode: make(map[int]int),
		ClockPinNode:      -1,
	}
}

// LoadCircuit parses a netlist file (grammar in SPEC_FULL.md §6.3) against
// the given cell library.
func LoadCircuit(path string, lib *CellLibrary) (*Circuit, error) {
	f, err := openInput(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c := newCircuit(lib)
	if err := parseNetlist(f, c); err != nil {
		return nil, fmt.Errorf("parsing netlist %q: %w", path, err)
	}
	return c, nil
}

// getOrCreatePinNode returns the index of the named pin node, creating it
// if this is the first reference to that name.
func (c *Circuit) getOrCreatePinNode(name string) int {
	if idx, ok := c.pinNodeIndex[name]; ok {
		return idx
	}
	c.PinNodes = append(c.PinNodes, *newPinNode(name))
	idx := len(c.PinNodes) - 1
	c.pinNodeIndex[name] = idx
	return idx
}

func (c *Circuit) addGate(g Gate) int {
	c.Gates = append(c.Gates, g)
	return len(c.Gates) - 1
}

// ratFor returns the RATData slot for pinNodeIdx, creating one (mode
// initialMode, to be upgraded if a complementary rat line follows) if
// absent. The second return value reports whether the slot already existed.
func (c *Circuit) ratFor(pinNodeIdx int, initialMode RATMode) (*RATData, bool) {
	if idx, ok := c.ratIndexByPinNode[pinNodeIdx]; ok {
		return &c.RATs[idx], true
	}
	c.RATs = append(c.RATs, RATData{PinNodeIndex: pinNodeIdx, Mode: initialMode})
	idx := len(c.RATs) - 1
	c.ratIndexByPinNode[pinNodeIdx] = idx
	return &c.RATs[idx], false
}

func (c *Circuit) cellOf(g *Gate) *Cell {
	if g.CellIndex < 0 {
		return nil
	}
	return &c.Lib.cells[g.CellIndex]
}
