package sta

import "fmt"

// CellLibrary is the passive store of every cell's electrical/timing
// tables, built once at load time and read-only for the remainder of the
// process (spec.md §3's "Lifecycle": cells are created during library
// load and live for the process).
type CellLibrary struct {
	cells []Cell
	byName map[string]int
}

func newCellLibrary() *CellLibrary {
	return &CellLibrary{byName: make(map[string]int)}
}

// LoadCellLibrary parses a cell-library file (grammar in SPEC_FULL.md §6.2)
// and returns the resulting library, or an I/O error if the file cannot be
// opened.
func LoadCellLibrary(path string) (*CellLibrary, error) {
	f, err := openInput(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	lib := newCellLibrary()
	if err := parseCellLibrary(f, lib); err != nil {
		return nil, fmt.Errorf("parsing cell library %q: %w", path, err)
	}
	return lib, nil
}

// Cell looks up a cell by name. The second return value is false if no
// such cell was ever declared in the library file.
func (l *CellLibrary) Cell(name string) (*Cell, bool) {
	idx, ok := l.byName[name]
	if !ok {
		return nil, false
	}
	return &l.cells[idx], true
}

func (l *CellLibrary) addCell(c *Cell) *Cell {
	l.cells = append(l.cells, *c)
	idx := len(l.cells) - 1
	l.byName[c.Name] = idx
	return &l.cells[idx]
}
