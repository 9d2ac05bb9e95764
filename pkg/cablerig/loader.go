package cablerig

import (
	"encoding/json"
	"fmt"
	"os"
)

// Load reads and parses a rig file.
func Load(path string) (*Rig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read rig file: %w", err)
	}
	return Parse(data)
}

// Parse parses rig JSON and validates the cable definitions.
func Parse(data []byte) (*Rig, error) {
	var rig Rig
	if err := json.Unmarshal(data, &rig); err != nil {
		return nil, fmt.Errorf("could not unmarshal rig json: %w", err)
	}

	seen := make(map[string]struct{}, len(rig.Cables))
	for i := range rig.Cables {
		name := rig.Cables[i].Name
		if name == "" {
			return nil, fmt.Errorf("cable %d has no name", i)
		}
		if _, ok := seen[name]; ok {
			return nil, fmt.Errorf("duplicate cable name %q", name)
		}
		seen[name] = struct{}{}
	}
	return &rig, nil
}

// defaultRigJSON is the rig the viewer uses when no file is given: a fan of
// twelve cables hanging between two horizontal rails.
const defaultRigJSON = `{
  "defaults": {"segments": 24, "radialSegments": 10, "radius": 0.06, "slack": 2.5},
  "cables": [
    {"name": "c00", "anchorA": [-5.5, 4, 0], "anchorB": [-5.5, -1, 2], "swing": 1.1, "phase": 0.0},
    {"name": "c01", "anchorA": [-4.5, 4, 0], "anchorB": [-4.5, -1, 2], "swing": 0.9, "phase": 0.6},
    {"name": "c02", "anchorA": [-3.5, 4, 0], "anchorB": [-3.5, -1, 2], "swing": 1.3, "phase": 1.2},
    {"name": "c03", "anchorA": [-2.5, 4, 0], "anchorB": [-2.5, -1, 2], "swing": 0.8, "phase": 1.8},
    {"name": "c04", "anchorA": [-1.5, 4, 0], "anchorB": [-1.5, -1, 2], "swing": 1.0, "phase": 2.4},
    {"name": "c05", "anchorA": [-0.5, 4, 0], "anchorB": [-0.5, -1, 2], "swing": 1.2, "phase": 3.0},
    {"name": "c06", "anchorA": [0.5, 4, 0], "anchorB": [0.5, -1, 2], "swing": 1.2, "phase": 3.6},
    {"name": "c07", "anchorA": [1.5, 4, 0], "anchorB": [1.5, -1, 2], "swing": 1.0, "phase": 4.2},
    {"name": "c08", "anchorA": [2.5, 4, 0], "anchorB": [2.5, -1, 2], "swing": 0.8, "phase": 4.8},
    {"name": "c09", "anchorA": [3.5, 4, 0], "anchorB": [3.5, -1, 2], "swing": 1.3, "phase": 5.4},
    {"name": "c10", "anchorA": [4.5, 4, 0], "anchorB": [4.5, -1, 2], "swing": 0.9, "phase": 6.0},
    {"name": "c11", "anchorA": [5.5, 4, 0], "anchorB": [5.5, -1, 2], "swing": 1.1, "phase": 6.6}
  ]
}`

// Default returns the built-in demo rig.
func Default() *Rig {
	rig, err := Parse([]byte(defaultRigJSON))
	if err != nil {
		panic(fmt.Errorf("built-in rig is invalid: %w", err))
	}
	return rig
}
