package sta

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// parseNetlist reads the netlist grammar (SPEC_FULL.md §6.3, ground-truthed
// against original_source/src/CircuitLoad.cpp) into c.
func parseNetlist(r io.Reader, c *Circuit) error {
	ls := newLineScanner(r)

	for {
		tok := ls.nextTokens()
		if tok == nil {
			return nil
		}
		var err error
		switch tok[0] {
		case "input":
			err = parseInputLine(c, tok, ls.lineNo)
		case "output":
			err = parseOutputLine(c, tok, ls.lineNo)
		case "instance":
			err = parseInstanceLine(c, tok, ls.lineNo)
		case "wire":
			err = parseWireLine(c, ls, tok)
		case "slew":
			err = parseSlewLine(c, tok, ls.lineNo)
		case "at":
			err = parseArrivalLine(c, tok, ls.lineNo)
		case "rat":
			err = parseRatLine(c, tok, ls.lineNo)
		case "clock":
			err = parseClockLine(c, tok, ls.lineNo)
		default:
			err = fmt.Errorf("line %d: unrecognized keyword %q", ls.lineNo, tok[0])
		}
		if err != nil {
			return err
		}
	}
}

func parseInputLine(c *Circuit, tok []string, lineNo int) error {
	if len(tok) < 2 {
		return fmt.Errorf("line %d: malformed input line", lineNo)
	}
	pinIdx := c.getOrCreatePinNode(tok[1])
	gateIdx := c.addGate(newPIGate(pinIdx))
	c.PinNodes[pinIdx].Fanin = gOutPinEndpoint(gateIdx, 0)
	c.PIs = append(c.PIs, gateIdx)
	return nil
}

func parseOutputLine(c *Circuit, tok []string, lineNo int) error {
	if len(tok) < 2 {
		return fmt.Errorf("line %d: malformed output line", lineNo)
	}
	pinIdx := c.getOrCreatePinNode(tok[1])
	gateIdx := c.addGate(newPOGate(pinIdx))
	c.PinNodes[pinIdx].addFanout(gInPinEndpoint(gateIdx, 0))
	c.POs = append(c.POs, gateIdx)
	return nil
}

func parseInstanceLine(c *Circuit, tok []string, lineNo int) error {
	if len(tok) < 3 {
		return fmt.Errorf("line %d: malformed instance line", lineNo)
	}
	cellName := tok[1]
	cell, ok := c.Lib.Cell(cellName)
	if !ok {
		return fmt.Errorf("line %d: unknown cell %q", lineNo, cellName)
	}

	gate := Gate{
		CellIndex:    indexOfCell(c.Lib, cell),
		IsNonClocked: !cell.IsClocked,
		Inputs:       make([]GInPin, cell.NumInputs()),
		Outputs:      make([]GOutPin, cell.NumOutputs()),
	}
	for i := range gate.Inputs {
		gate.Inputs[i].FaninPinNode = -1
	}
	for i := range gate.Outputs {
		gate.Outputs[i].FanoutPinNode = -1
	}
	gateIdx := c.addGate(gate)

	for _, binding := range tok[2:] {
		parts := strings.SplitN(binding, ":", 2)
		if len(parts) != 2 {
			return fmt.Errorf("line %d: malformed pin binding %q", lineNo, binding)
		}
		pinName, nodeName := parts[0], parts[1]
		nodeIdx := c.getOrCreatePinNode(nodeName)

		if inID := cell.InputPinID(pinName); inID >= 0 {
			c.Gates[gateIdx].Inputs[inID].FaninPinNode = nodeIdx
			c.PinNodes[nodeIdx].addFanout(gInPinEndpoint(gateIdx, inID))
			continue
		}
		if outID := cell.OutputPinID(pinName); outID >= 0 {
			if !c.PinNodes[nodeIdx].Fanin.IsZero() {
				return fmt.Errorf("line %d: pin node %q already has a driver", lineNo, nodeName)
			}
			c.Gates[gateIdx].Outputs[outID].FanoutPinNode = nodeIdx
			c.PinNodes[nodeIdx].Fanin = gOutPinEndpoint(gateIdx, outID)
			continue
		}
		return fmt.Errorf("line %d: cell %q has no pin %q", lineNo, cellName, pinName)
	}
	return nil
}

func indexOfCell(lib *CellLibrary, cell *Cell) int {
	return lib.byName[cell.Name]
}

func parseWireLine(c *Circuit, ls *lineScanner, tok []string) error {
	if len(tok) < 2 {
		return fmt.Errorf("line %d: malformed wire line", ls.lineNo)
	}
	rootName := tok[1]
	rootIdx := c.getOrCreatePinNode(rootName)

	rcNodes := []RCTreeNode{newRCTreeNode(rootName)}
	rcNodes[0].PinNodeIndex = rootIdx
	rcByName := map[string]int{rootName: 0}

	for _, sinkName := range tok[2:] {
		sinkIdx := c.getOrCreatePinNode(sinkName)
		if !c.PinNodes[sinkIdx].Fanin.IsZero() {
			return fmt.Errorf("line %d: sink %q already has a driver", ls.lineNo, sinkName)
		}
		rcID := len(rcNodes)
		n := newRCTreeNode(sinkName)
		n.PinNodeIndex = sinkIdx
		rcNodes = append(rcNodes, n)
		rcByName[sinkName] = rcID

		c.PinNodes[rootIdx].addFanout(pinNodeEndpoint(sinkIdx))
		c.PinNodes[sinkIdx].Fanin = pinNodeEndpoint(rootIdx)
	}

	grabRCNode := func(name string) int {
		if id, ok := rcByName[name]; ok {
			return id
		}
		id := len(rcNodes)
		rcNodes = append(rcNodes, newRCTreeNode(name))
		rcByName[name] = id
		return id
	}

	for {
		peek := ls.peekTokens()
		if peek == nil || !isIndentedWireKeyword(peek[0]) {
			break
		}
		line := ls.nextTokens()
		switch line[0] {
		case "edge":
			if len(line) < 4 {
				return fmt.Errorf("line %d: malformed edge line", ls.lineNo)
			}
			r, err := strconv.ParseFloat(line[3], 64)
			if err != nil {
				return fmt.Errorf("line %d: bad resistance: %w", ls.lineNo, err)
			}
			a, b := grabRCNode(line[1]), grabRCNode(line[2])
			rcNodes[a].addAdjacency(b, r)
			rcNodes[b].addAdjacency(a, r)
		case "cap":
			if len(line) < 3 {
				return fmt.Errorf("line %d: malformed cap line", ls.lineNo)
			}
			capVal, err := strconv.ParseFloat(line[2], 64)
			if err != nil {
				return fmt.Errorf("line %d: bad capacitance: %w", ls.lineNo, err)
			}
			id := grabRCNode(line[1])
			rcNodes[id].Cap = capVal
		default:
			return fmt.Errorf("line %d: unexpected wire sub-line keyword %q", ls.lineNo, line[0])
		}
	}

	c.PinNodes[rootIdx].RCTree = rcNodes
	return nil
}

func isIndentedWireKeyword(kw string) bool {
	return kw == "edge" || kw == "cap"
}

func parseSlewLine(c *Circuit, tok []string, lineNo int) error {
	if len(tok) < 4 {
		return fmt.Errorf("line %d: malformed slew line", lineNo)
	}
	idx := c.getOrCreatePinNode(tok[1])
	fastFall, err := strconv.ParseFloat(tok[2], 64)
	if err != nil {
		return fmt.Errorf("line %d: bad fast-fall slew: %w", lineNo, err)
	}
	fastRise, err := strconv.ParseFloat(tok[3], 64)
	if err != nil {
		return fmt.Errorf("line %d: bad fast-rise slew: %w", lineNo, err)
	}
	p := &c.PinNodes[idx]
	p.FastFallSlew, p.SlowFallSlew = fastFall, fastFall
	p.FastRiseSlew, p.SlowRiseSlew = fastRise, fastRise
	return nil
}

func parseArrivalLine(c *Circuit, tok []string, lineNo int) error {
	if len(tok) < 6 {
		return fmt.Errorf("line %d: malformed at line", lineNo)
	}
	idx := c.getOrCreatePinNode(tok[1])
	vals, err := parseFloats(tok, 2, 4, lineNo)
	if err != nil {
		return err
	}
	p := &c.PinNodes[idx]
	p.FastFallArr, p.SlowFallArr, p.FastRiseArr, p.SlowRiseArr = vals[0], vals[1], vals[2], vals[3]
	return nil
}

func parseRatLine(c *Circuit, tok []string, lineNo int) error {
	if len(tok) < 5 {
		return fmt.Errorf("line %d: malformed rat line", lineNo)
	}
	idx := c.getOrCreatePinNode(tok[1])
	vals, err := parseFloats(tok, 3, 2, lineNo)
	if err != nil {
		return err
	}
	fall, rise := vals[0], vals[1]

	switch tok[2] {
	case "early":
		rat, existed := c.ratFor(idx, RATFast)
		rat.FastFallTime, rat.FastRiseTime = fall, rise
		if existed && rat.Mode == RATSlow {
			rat.Mode = RATBoth
		}
	case "late":
		rat, existed := c.ratFor(idx, RATSlow)
		rat.SlowFallTime, rat.SlowRiseTime = fall, rise
		if existed && rat.Mode == RATFast {
			rat.Mode = RATBoth
		}
	default:
		return fmt.Errorf("line %d: rat mode must be \"early\" or \"late\", got %q", lineNo, tok[2])
	}
	return nil
}

func parseClockLine(c *Circuit, tok []string, lineNo int) error {
	if len(tok) < 3 {
		return fmt.Errorf("line %d: malformed clock line", lineNo)
	}
	idx := c.getOrCreatePinNode(tok[1])
	period, err := strconv.ParseFloat(tok[2], 64)
	if err != nil {
		return fmt.Errorf("line %d: bad clock period: %w", lineNo, err)
	}
	c.ClockPinNode = idx
	c.ClockPeriod = period
	c.IsSequential = true
	return nil
}
