package domain

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Snapshot is the wire form of a Model.
type Snapshot struct {
	Compartments []Compartment `json:"compartments" yaml:"compartments"`
	Transitions  []Transition  `json:"transitions" yaml:"transitions"`
	Chains       ChainLengths  `json:"chains" yaml:"chains"`
	Steps        int           `json:"simulation_steps" yaml:"simulation_steps"`
	Seed         int64         `json:"seed" yaml:"seed"`
}

// Snapshot returns a deep copy of the model in wire form.
func (m *Model) Snapshot() Snapshot {
	return Snapshot{
		Compartments: m.Compartments(),
		Transitions:  m.Transitions(),
		Chains:       m.chains,
		Steps:        m.steps,
		Seed:         m.seed,
	}
}

// Model checks the snapshot structure and converts it into a Model.
func (s Snapshot) Model() (*Model, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	compartments := make([]Compartment, len(s.Compartments))
	copy(compartments, s.Compartments)
	transitions := make([]Transition, len(s.Transitions))
	copy(transitions, s.Transitions)
	return NewModel(compartments, transitions, s.Chains, s.Steps, s.Seed), nil
}

func (s Snapshot) check() error {
	names := make(map[string]struct{}, len(s.Compartments))
	for i, c := range s.Compartments {
		if c.Index != i {
			return fmt.Errorf("%w: compartment %q has index %d at position %d", ErrInvalidSnapshot, c.Name, c.Index, i)
		}
		if !c.Type.Valid() {
			return fmt.Errorf("%w: compartment %q has unknown type %q", ErrInvalidSnapshot, c.Name, c.Type)
		}
		if _, dup := names[c.Name]; dup {
			return fmt.Errorf("%w: duplicate compartment name %q", ErrInvalidSnapshot, c.Name)
		}
		names[c.Name] = struct{}{}
	}
	n := len(s.Compartments)
	for pos, t := range s.Transitions {
		if t.Source < 0 || t.Source >= n || t.Dest < 0 || t.Dest >= n {
			return fmt.Errorf("%w: transition %d (%d -> %d) out of range [0,%d)", ErrInvalidSnapshot, pos, t.Source, t.Dest, n)
		}
	}
	return nil
}

// MarshalJSON serializes the model as a Snapshot.
func (m *Model) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Snapshot())
}

// UnmarshalJSON decodes and checks a Snapshot.
func (m *Model) UnmarshalJSON(data []byte) error {
	if m == nil {
		return fmt.Errorf("domain: UnmarshalJSON on nil pointer")
	}
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	decoded, err := s.Model()
	if err != nil {
		return err
	}
	*m = *decoded
	return nil
}

// MarshalYAML serializes the model as a Snapshot.
func (m *Model) MarshalYAML() (any, error) {
	return m.Snapshot(), nil
}

// UnmarshalYAML decodes and checks a Snapshot.
func (m *Model) UnmarshalYAML(node *yaml.Node) error {
	var s Snapshot
	if err := node.Decode(&s); err != nil {
		return err
	}
	decoded, err := s.Model()
	if err != nil {
		return err
	}
	*m = *decoded
	return nil
}
