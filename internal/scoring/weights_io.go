package scoring

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadWeights reads a calibrated weight vector from a JSON file. The file maps
// factor names to weights and must cover every known factor.
func LoadWeights(path string) (Weights, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read weights file: %w", err)
	}

	var raw map[Factor]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse weights file: %w", err)
	}

	w := make(Weights, len(Factors))
	for _, f := range Factors {
		v, ok := raw[f]
		if !ok {
			return nil, fmt.Errorf("weights file missing factor %q", f)
		}
		if v < 0 {
			return nil, fmt.Errorf("factor %q has negative weight %f", f, v)
		}
		w[f] = v
	}

	return w.Normalize(), nil
}

// SaveWeights writes a weight vector to a JSON file.
func SaveWeights(path string, w Weights) error {
	data, err := json.MarshalIndent(w, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal weights: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write weights file: %w", err)
	}
	return nil
}
