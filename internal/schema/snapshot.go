package schema

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SaveSnapshot writes s as YAML so successive runs can be compared.
func SaveSnapshot(path string, s Schema) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create snapshot dir: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot reads a snapshot written by SaveSnapshot. A missing file is not
// an error; the boolean reports whether one was found.
func LoadSnapshot(path string) (Schema, bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Schema{}, false, nil
	}
	if err != nil {
		return Schema{}, false, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var s Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Schema{}, false, fmt.Errorf("failed to parse snapshot %s: %w", path, err)
	}
	return s, true, nil
}
