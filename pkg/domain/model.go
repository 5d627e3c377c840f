package domain

// Model is the compiled compartment/transition descriptor.
// It is immutable after construction: every accessor returns a copy, so a
// single Model can be shared by any number of concurrent solver runs.
type Model struct {
	compartments []Compartment
	transitions  []Transition
	chains       ChainLengths
	steps        int
	seed         int64
}

// NewModel assembles a Model. The slices are owned by the Model afterwards.
func NewModel(compartments []Compartment, transitions []Transition, chains ChainLengths, steps int, seed int64) *Model {
	return &Model{
		compartments: compartments,
		transitions:  transitions,
		chains:       chains,
		steps:        steps,
		seed:         seed,
	}
}

// Len returns the number of compartments.
func (m *Model) Len() int { return len(m.compartments) }

// Compartments returns a copy of the ordered compartment list.
func (m *Model) Compartments() []Compartment {
	out := make([]Compartment, len(m.compartments))
	copy(out, m.compartments)
	return out
}

// Compartment returns the compartment at index i.
func (m *Model) Compartment(i int) (Compartment, bool) {
	if i < 0 || i >= len(m.compartments) {
		return Compartment{}, false
	}
	return m.compartments[i], true
}

// Transitions returns a copy of the resolved edge list in generation order.
func (m *Model) Transitions() []Transition {
	out := make([]Transition, len(m.transitions))
	copy(out, m.transitions)
	return out
}

// InitialState returns a fresh state vector seeded from the initial counts.
// Each call allocates, so every trial owns its vector.
func (m *Model) InitialState() []float64 {
	x := make([]float64, len(m.compartments))
	for i, c := range m.compartments {
		x[i] = c.InitialCount
	}
	return x
}

// ChainLengths returns the chain lengths the model was compiled with.
func (m *Model) ChainLengths() ChainLengths { return m.chains }

// SimulationSteps returns the number of sampling steps covering the horizon.
func (m *Model) SimulationSteps() int { return m.steps }

// Seed returns the random seed material carried for downstream solvers.
func (m *Model) Seed() int64 { return m.seed }

// Outgoing returns the positions (in Transitions order) of edges leaving index i.
func (m *Model) Outgoing(i int) []int {
	var out []int
	for pos, t := range m.transitions {
		if t.Source == i {
			out = append(out, pos)
		}
	}
	return out
}

// CountByType returns how many compartments carry each type.
func (m *Model) CountByType() map[CompartmentType]int {
	counts := make(map[CompartmentType]int)
	for _, c := range m.compartments {
		counts[c.Type]++
	}
	return counts
}
