package sta

import (
	"fmt"
	"io"
	"strconv"
)

// parseCellLibrary reads the cell-library grammar (SPEC_FULL.md §6.2,
// ground-truthed against original_source/STA/CellLibrary.cpp) into lib.
func parseCellLibrary(r io.Reader, lib *CellLibrary) error {
	ls := newLineScanner(r)

	for {
		tok := ls.nextTokens()
		if tok == nil {
			return nil
		}
		if tok[0] != "cell" {
			return fmt.Errorf("line %d: expected \"cell\", got %q", ls.lineNo, tok[0])
		}
		if len(tok) < 2 {
			return fmt.Errorf("line %d: cell line missing name", ls.lineNo)
		}
		if err := parseCellBody(ls, lib, tok[1]); err != nil {
			return err
		}
	}
}

func parseCellBody(ls *lineScanner, lib *CellLibrary, name string) error {
	cell := newCell(name)

	for {
		peek := ls.peekTokens()
		if peek == nil || peek[0] != "pin" {
			break
		}
		tok := ls.nextTokens()
		if err := parsePinLine(cell, tok, ls.lineNo); err != nil {
			return err
		}
	}

	for {
		peek := ls.peekTokens()
		if peek == nil || peek[0] == "cell" {
			break
		}
		tok := ls.nextTokens()
		var err error
		switch tok[0] {
		case "timing":
			err = parseTimingLine(cell, tok, ls.lineNo)
		case "setup":
			err = parseSetupLine(cell, tok, ls.lineNo)
		case "hold":
			err = parseHoldLine(cell, tok, ls.lineNo)
		case "preset", "clear":
			// Parsed but ignored per spec.md §6/§9: nine trailing tokens.
			if len(tok) < 10 {
				err = fmt.Errorf("line %d: %s line too short", ls.lineNo, tok[0])
			}
		default:
			err = fmt.Errorf("line %d: unexpected keyword %q in cell %q", ls.lineNo, tok[0], name)
		}
		if err != nil {
			return err
		}
	}

	allocateTimingMatrix(cell)
	lib.addCell(cell)
	return nil
}

func allocateTimingMatrix(cell *Cell) {
	if cell.Timing != nil {
		return
	}
	cell.Timing = make([][]InputTiming, len(cell.InputPins))
	for i := range cell.Timing {
		row := make([]InputTiming, len(cell.OutputPins))
		for j := range row {
			row[j].Sense = UnknownUnate
		}
		cell.Timing[i] = row
	}
}

func parsePinLine(cell *Cell, tok []string, lineNo int) error {
	if len(tok) < 3 {
		return fmt.Errorf("line %d: malformed pin line", lineNo)
	}
	name := tok[1]
	var dir CellPinDirection
	switch tok[2] {
	case "input":
		dir = DirInput
	case "output":
		dir = DirOutput
	case "clock":
		dir = DirClock
	default:
		return fmt.Errorf("line %d: unrecognized pin direction %q", lineNo, tok[2])
	}

	pin := CellPin{Name: name, Dir: dir}
	if dir == DirOutput {
		cell.outputIndex[name] = len(cell.OutputPins)
		cell.OutputPins = append(cell.OutputPins, pin)
		return nil
	}

	if len(tok) < 5 {
		return fmt.Errorf("line %d: input/clock pin missing capacitances", lineNo)
	}
	fallCap, err := strconv.ParseFloat(tok[3], 64)
	if err != nil {
		return fmt.Errorf("line %d: bad fall cap: %w", lineNo, err)
	}
	riseCap, err := strconv.ParseFloat(tok[4], 64)
	if err != nil {
		return fmt.Errorf("line %d: bad rise cap: %w", lineNo, err)
	}
	pin.FallCap, pin.RiseCap = fallCap, riseCap

	id := len(cell.InputPins)
	cell.inputIndex[name] = id
	cell.InputPins = append(cell.InputPins, pin)

	if dir == DirClock {
		cell.IsClocked = true
		cell.ClockPin = id
	}
	return nil
}

func parseFloats(tok []string, from int, n int, lineNo int) ([]float64, error) {
	if from+n > len(tok) {
		return nil, fmt.Errorf("line %d: expected %d more numeric fields", lineNo, n)
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		v, err := strconv.ParseFloat(tok[from+i], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad numeric field %q: %w", lineNo, tok[from+i], err)
		}
		out[i] = v
	}
	return out, nil
}

func parseTimingLine(cell *Cell, tok []string, lineNo int) error {
	if len(tok) < 16 {
		return fmt.Errorf("line %d: malformed timing line", lineNo)
	}
	inID := cell.InputPinID(tok[1])
	outID := cell.OutputPinID(tok[2])
	if inID < 0 || outID < 0 {
		return fmt.Errorf("line %d: timing line references unknown pin(s) %q/%q", lineNo, tok[1], tok[2])
	}
	sense, err := parsePinTimingSense(tok[3])
	if err != nil {
		return fmt.Errorf("line %d: %w", lineNo, err)
	}
	vals, err := parseFloats(tok, 4, 12, lineNo)
	if err != nil {
		return err
	}

	allocateTimingMatrix(cell)
	t := InputTiming{
		Sense:      sense,
		FallSlewX:  vals[0], FallSlewY: vals[1], FallSlewZ: vals[2],
		RiseSlewX:  vals[3], RiseSlewY: vals[4], RiseSlewZ: vals[5],
		FallDelayA: vals[6], FallDelayB: vals[7], FallDelayC: vals[8],
		RiseDelayA: vals[9], RiseDelayB: vals[10], RiseDelayC: vals[11],
	}
	cell.Timing[inID][outID] = t
	return nil
}

func ensureClockParamsSlice(cell *Cell) {
	if cell.ClockParamsByInput == nil {
		cell.ClockParamsByInput = make([]*ClockParams, len(cell.InputPins))
	}
}

func parseSetupLine(cell *Cell, tok []string, lineNo int) error {
	if len(tok) < 10 {
		return fmt.Errorf("line %d: malformed setup line", lineNo)
	}
	dataID := cell.InputPinID(tok[2])
	if dataID < 0 {
		return fmt.Errorf("line %d: setup line references unknown data pin %q", lineNo, tok[2])
	}
	edge, err := parseEdgeType(tok[3])
	if err != nil {
		return fmt.Errorf("line %d: %w", lineNo, err)
	}
	vals, err := parseFloats(tok, 4, 6, lineNo)
	if err != nil {
		return err
	}
	ensureClockParamsSlice(cell)
	cp := cell.ClockParamsByInput[dataID]
	if cp == nil {
		cp = &ClockParams{}
		cell.ClockParamsByInput[dataID] = cp
	}
	cp.SetupEdge = edge
	cp.FallSetupG, cp.FallSetupH, cp.FallSetupJ = vals[0], vals[1], vals[2]
	cp.RiseSetupG, cp.RiseSetupH, cp.RiseSetupJ = vals[3], vals[4], vals[5]
	return nil
}

func parseHoldLine(cell *Cell, tok []string, lineNo int) error {
	if len(tok) < 10 {
		return fmt.Errorf("line %d: malformed hold line", lineNo)
	}
	dataID := cell.InputPinID(tok[2])
	if dataID < 0 {
		return fmt.Errorf("line %d: hold line references unknown data pin %q", lineNo, tok[2])
	}
	edge, err := parseEdgeType(tok[3])
	if err != nil {
		return fmt.Errorf("line %d: %w", lineNo, err)
	}
	vals, err := parseFloats(tok, 4, 6, lineNo)
	if err != nil {
		return err
	}
	ensureClockParamsSlice(cell)
	cp := cell.ClockParamsByInput[dataID]
	if cp == nil {
		cp = &ClockParams{}
		cell.ClockParamsByInput[dataID] = cp
	}
	cp.HoldEdge = edge
	cp.FallHoldM, cp.FallHoldN, cp.FallHoldP = vals[0], vals[1], vals[2]
	cp.RiseHoldM, cp.RiseHoldN, cp.RiseHoldP = vals[3], vals[4], vals[5]
	return nil
}
