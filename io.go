package sta

import (
	"fmt"
	"os"
)

// openInput opens path for reading, wrapping the OS error with the path so
// the CLI's diagnostic to the error stream names the offending file
// (spec.md §6's "a diagnostic to the error stream must include the
// offending path").
func openInput(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open %q: %w", path, err)
	}
	return f, nil
}

// createOutput creates (or truncates) path for writing. Per spec.md §7,
// the output file is only opened once analysis has completed in full, so
// callers must not call this until every stage has succeeded.
func createOutput(path string) (*os.File, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("cannot create %q: %w", path, err)
	}
	return f, nil
}
