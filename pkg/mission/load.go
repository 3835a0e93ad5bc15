package mission

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Decode reads a single Architecture document from r. YAML and JSON are both
// accepted since JSON is a subset of YAML. Components without a criticality
// get DefaultCriticality.
func Decode(r io.Reader) (*Architecture, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read architecture: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("architecture document is empty")
	}

	var arch Architecture
	if err := yaml.Unmarshal(data, &arch); err != nil {
		return nil, fmt.Errorf("failed to decode architecture: %w", err)
	}
	arch.ApplyDefaults()
	return &arch, nil
}

// LoadFile reads an Architecture from a YAML or JSON file.
func LoadFile(path string) (*Architecture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open architecture file: %w", err)
	}
	defer f.Close()

	arch, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return arch, nil
}

// ApplyDefaults fills zero-valued optional fields.
func (a *Architecture) ApplyDefaults() {
	for i := range a.Components {
		if a.Components[i].Criticality == 0 {
			a.Components[i].Criticality = DefaultCriticality
		}
	}
}
