// Package config loads the analyzer's optional INI configuration file,
// grounded on the teacher's own config loader pattern (gopkg.in/ini.v1,
// IgnoreInlineComment plus UnescapeValueCommentSymbols, MapTo into a
// struct tagged with ini:"...").
package config

import (
	"fmt"

	"gopkg.in/ini.v1"
)

// Analysis holds the run-time knobs the optional config file can
// override (SPEC_FULL.md §6.4). Zero values are never used directly;
// Default returns the compiled-in values a missing config file leaves
// in force.
type Analysis struct {
	Epsilon         float64 `ini:"epsilon"`
	ReportDecimals  int     `ini:"report_decimals"`
	DumpTopology    bool    `ini:"dump_topology"`
}

// Default returns the compiled-in configuration used when no config file
// is named on the command line.
func Default() Analysis {
	return Analysis{
		Epsilon:        1e-7,
		ReportDecimals: 5,
		DumpTopology:   false,
	}
}

// Load reads path as an INI file with a single [Analysis] section,
// starting from Default and overriding whichever keys are present. A
// missing or unreadable file is a hard error, matching any other
// explicitly-named-but-absent input path.
func Load(path string) (Analysis, error) {
	cfg := Default()

	src, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:       true,
		UnescapeValueCommentSymbols: true,
	}, path)
	if err != nil {
		return cfg, fmt.Errorf("loading config %q: %w", path, err)
	}

	if err := src.Section("Analysis").MapTo(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %q: %w", path, err)
	}

	return cfg, nil
}
