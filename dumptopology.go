package sta

import (
	"fmt"
	"io"
)

// DumpTopology writes a human-readable description of every gate and pin
// node to w, in the original analyzer's debug-print style: for each gate,
// a line naming its cell (or PI/PO role) followed by one line per bound
// input/output pin node; then, for each pin node, a line naming it
// followed by one line for its fanin and one line per fanout.
// Grounded on original_source/src/Gate.cpp's PrintGateData and
// original_source/src/PinNode.cpp's PrintPinNodeWiringData; gated behind
// the optional analyzer config's dump_topology key (SPEC_FULL.md §6.4).
func (c *Circuit) DumpTopology(w io.Writer) {
	fmt.Fprintln(w, "#.. circuit topology")

	for i := range c.Gates {
		c.dumpGate(w, i)
	}
	for i := range c.PinNodes {
		c.dumpPinNode(w, i)
	}
}

func (c *Circuit) dumpGate(w io.Writer, gateIdx int) {
	g := &c.Gates[gateIdx]

	switch {
	case g.IsPI():
		fmt.Fprintln(w, "gate PI")
	case g.IsPO():
		fmt.Fprintln(w, "gate PO")
	default:
		cell := c.cellOf(g)
		fmt.Fprintf(w, "gate %s, input %d, output %d\n", cell.Name, len(g.Inputs), len(g.Outputs))
	}

	for i := range g.Inputs {
		in := &g.Inputs[i]
		if in.FaninPinNode < 0 {
			fmt.Fprintln(w, "  input: NULL")
			continue
		}
		fmt.Fprintf(w, "  input: %s\n", c.PinNodes[in.FaninPinNode].Name)
	}
	for i := range g.Outputs {
		out := &g.Outputs[i]
		if out.FanoutPinNode < 0 {
			fmt.Fprintln(w, "  output: NULL")
			continue
		}
		fmt.Fprintf(w, "  output: %s\n", c.PinNodes[out.FanoutPinNode].Name)
	}
}

func (c *Circuit) dumpPinNode(w io.Writer, pinIdx int) {
	p := &c.PinNodes[pinIdx]
	fmt.Fprintf(w, "pin-node %s\n", p.Name)
	fmt.Fprintf(w, "  fanin: %s\n", c.describeEndpoint(p.Fanin))

	for _, fo := range p.Fanouts {
		fmt.Fprintf(w, "  fanout: %s\n", c.describeEndpoint(fo))
	}
}

func (c *Circuit) describeEndpoint(e Endpoint) string {
	switch e.Kind {
	case EndpointNone:
		return "NULL"
	case EndpointPinNode:
		return "pin-node " + c.PinNodes[e.PinIndex].Name
	case EndpointGOutPin, EndpointGInPin:
		g := &c.Gates[e.GateIndex]
		if !g.HasCell() {
			if e.Kind == EndpointGOutPin {
				return "gate PI"
			}
			return "gate PO"
		}
		cell := c.cellOf(g)
		if e.Kind == EndpointGOutPin {
			return fmt.Sprintf("gate %s's output %s", cell.Name, cell.OutputPins[e.PinIndex].Name)
		}
		return fmt.Sprintf("gate %s's input %s", cell.Name, cell.InputPins[e.PinIndex].Name)
	default:
		return "NULL"
	}
}
