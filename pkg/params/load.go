package params

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFile reads a parameter file (YAML or JSON) on top of Default().
// Keys absent from the file keep their default value.
func LoadFile(path string) (Parameters, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Parameters{}, fmt.Errorf("failed to read parameter file: %w", err)
	}
	return Parse(data, filepath.Ext(path))
}

// Parse decodes parameter data on top of Default(). ext selects the format:
// ".json" decodes JSON, anything else is treated as YAML.
func Parse(data []byte, ext string) (Parameters, error) {
	p := Default()
	if strings.ToLower(ext) == ".json" {
		if err := json.Unmarshal(data, &p); err != nil {
			return Parameters{}, fmt.Errorf("failed to parse parameters (json): %w", err)
		}
		return p, nil
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Parameters{}, fmt.Errorf("failed to parse parameters (yaml): %w", err)
	}
	return p, nil
}
