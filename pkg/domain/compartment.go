package domain

// CompartmentType classifies a compartment. Downstream solvers use it to pick
// dynamics and transmission-weight rules.
type CompartmentType string

const (
	CompartmentBirth       CompartmentType = "Birth"
	CompartmentSusceptible CompartmentType = "Susceptible"
	CompartmentExposed     CompartmentType = "Exposed"
	CompartmentInfected    CompartmentType = "Infected"
	CompartmentImmunized   CompartmentType = "Immunized"
	CompartmentDead        CompartmentType = "Dead"
)

// IsTerminal reports whether the type is absorbing (no outgoing flows).
func (t CompartmentType) IsTerminal() bool {
	return t == CompartmentImmunized || t == CompartmentDead
}

// Valid reports whether t is one of the known compartment types.
func (t CompartmentType) Valid() bool {
	switch t {
	case CompartmentBirth, CompartmentSusceptible, CompartmentExposed,
		CompartmentInfected, CompartmentImmunized, CompartmentDead:
		return true
	}
	return false
}

// Compartment is a single entry of the ordered state list.
// Index is the only addressing mechanism used at simulation time; Name is kept
// for presentation and diagnostics.
type Compartment struct {
	Index        int             `json:"index" yaml:"index"`
	Name         string          `json:"name" yaml:"name"`
	Type         CompartmentType `json:"type" yaml:"type"`
	InitialCount float64         `json:"initial_count" yaml:"initial_count"`
}

// Fixed compartment names.
const (
	NameBirth                = "Birth"
	NameSusceptible          = "Susceptible"
	NameVaccinationImmunized = "Vaccination_Immunized"
	NameMaternallyImmunized  = "Maternally_Immunized"
	NameRecoveryImmunized    = "Recovery_Immunized"
	NameDead                 = "Dead"
)

// Chain name prefixes. Link i (1-based) of a chain is named "<Prefix>_<i>".
const (
	ChainVaccinated  = "Vaccinated"
	ChainExposed     = "Exposed"
	ChainQuarantined = "Quarantined"
	ChainInfected    = "Infected"
	ChainIsolated    = "Isolated"
)

// ChainLengths holds the number of sub-compartments of each discretised stage.
type ChainLengths struct {
	Vaccination int `json:"vaccination" yaml:"vaccination"`
	Exposure    int `json:"exposure" yaml:"exposure"`
	Infection   int `json:"infection" yaml:"infection"`
}

// Compartments returns the total number of compartments implied by the chain
// lengths: Birth, Susceptible, the chains and the four terminal compartments.
func (c ChainLengths) Compartments() int {
	return 2 + c.Vaccination + 2*c.Exposure + 2*c.Infection + 4
}
