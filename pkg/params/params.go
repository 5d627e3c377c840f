// Package params holds the rate, duration, sampling and initial-count
// configuration of an epidemic model, and the loaders that populate it.
package params

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"

	"github.com/aretw0/epigraph/pkg/domain"
)

// Parameters is the full configuration of a model. Durations and the sampling
// interval are expressed in days. Parameters is plain data: loaders return a
// new value and nothing mutates it once a build starts.
type Parameters struct {
	BirthRate            float64 `json:"birth_rate" yaml:"birth_rate" mapstructure:"birth_rate" env:"BIRTH_RATE"`
	DeathRate            float64 `json:"death_rate" yaml:"death_rate" mapstructure:"death_rate" env:"DEATH_RATE"`
	VaccinationRate      float64 `json:"vaccination_rate" yaml:"vaccination_rate" mapstructure:"vaccination_rate" env:"VACCINATION_RATE"`
	VaccineEfficacy      float64 `json:"vaccine_efficacy" yaml:"vaccine_efficacy" mapstructure:"vaccine_efficacy" env:"VACCINE_EFFICACY"`
	MaternalImmunityRate float64 `json:"maternal_immunity_rate" yaml:"maternal_immunity_rate" mapstructure:"maternal_immunity_rate" env:"MATERNAL_IMMUNITY_RATE"`
	QuarantineRate       float64 `json:"quarantine_rate" yaml:"quarantine_rate" mapstructure:"quarantine_rate" env:"QUARANTINE_RATE"`
	IsolationRate        float64 `json:"isolation_rate" yaml:"isolation_rate" mapstructure:"isolation_rate" env:"ISOLATION_RATE"`

	// Exactly one of BetaExp and BetaInf must be non-zero.
	BetaExp float64 `json:"beta_exp" yaml:"beta_exp" mapstructure:"beta_exp" env:"BETA_EXP"`
	BetaInf float64 `json:"beta_inf" yaml:"beta_inf" mapstructure:"beta_inf" env:"BETA_INF"`

	// Transmission weights relative to the infected compartments.
	EpsExposed     float64 `json:"eps_exp" yaml:"eps_exp" mapstructure:"eps_exp" env:"EPS_EXP"`
	EpsQuarantined float64 `json:"eps_qua" yaml:"eps_qua" mapstructure:"eps_qua" env:"EPS_QUA"`
	EpsIsolated    float64 `json:"eps_iso" yaml:"eps_iso" mapstructure:"eps_iso" env:"EPS_ISO"`

	// Outcome branching probabilities at the end of the infectious period.
	GammaMortality float64 `json:"gamma_mor" yaml:"gamma_mor" mapstructure:"gamma_mor" env:"GAMMA_MOR"`
	GammaImmunity  float64 `json:"gamma_im" yaml:"gamma_im" mapstructure:"gamma_im" env:"GAMMA_IM"`

	IncubationPeriod  float64 `json:"t_exp" yaml:"t_exp" mapstructure:"t_exp" env:"T_EXP"`
	InfectiousPeriod  float64 `json:"t_inf" yaml:"t_inf" mapstructure:"t_inf" env:"T_INF"`
	VaccinationPeriod float64 `json:"t_vac" yaml:"t_vac" mapstructure:"t_vac" env:"T_VAC"`

	SamplingInterval float64 `json:"dt" yaml:"dt" mapstructure:"dt" env:"DT"`
	Horizon          float64 `json:"sim_len" yaml:"sim_len" mapstructure:"sim_len" env:"SIM_LEN"`
	Seed             int64   `json:"seed" yaml:"seed" mapstructure:"seed" env:"SEED"`

	Initial InitialCounts `json:"initial" yaml:"initial" mapstructure:"initial" envPrefix:"INIT_"`
}

// InitialCounts seeds the first link of each stage and the terminal compartments.
type InitialCounts struct {
	Susceptible          float64 `json:"susceptible" yaml:"susceptible" mapstructure:"susceptible" env:"SUSCEPTIBLE"`
	Exposed              float64 `json:"exposed" yaml:"exposed" mapstructure:"exposed" env:"EXPOSED"`
	Quarantined          float64 `json:"quarantined" yaml:"quarantined" mapstructure:"quarantined" env:"QUARANTINED"`
	Infected             float64 `json:"infected" yaml:"infected" mapstructure:"infected" env:"INFECTED"`
	Isolated             float64 `json:"isolated" yaml:"isolated" mapstructure:"isolated" env:"ISOLATED"`
	VaccinationImmunized float64 `json:"vaccination_immunized" yaml:"vaccination_immunized" mapstructure:"vaccination_immunized" env:"VACCINATION_IMMUNIZED"`
	MaternallyImmunized  float64 `json:"maternally_immunized" yaml:"maternally_immunized" mapstructure:"maternally_immunized" env:"MATERNALLY_IMMUNIZED"`
	RecoveryImmunized    float64 `json:"recovery_immunized" yaml:"recovery_immunized" mapstructure:"recovery_immunized" env:"RECOVERY_IMMUNIZED"`
}

// Default returns the reference configuration: hourly sampling over 100 days
// with an incubation-driven (beta_exp) transmission model.
func Default() Parameters {
	return Parameters{
		BirthRate:            0.02 / 365,
		DeathRate:            0.01 / 365,
		VaccinationRate:      0.02,
		VaccineEfficacy:      0.9,
		MaternalImmunityRate: 0,
		BetaExp:              0.5,
		QuarantineRate:       0.1,
		BetaInf:              0,
		IsolationRate:        0.1,
		EpsExposed:           0.7,
		EpsQuarantined:       0.3,
		EpsIsolated:          0.3,
		GammaMortality:       0.4,
		GammaImmunity:        0,
		SamplingInterval:     1.0 / 24,
		Horizon:              100,
		IncubationPeriod:     3,
		InfectiousPeriod:     5,
		VaccinationPeriod:    3,
		Seed:                 1,
		Initial: InitialCounts{
			Susceptible: 9990,
			Exposed:     10,
		},
	}
}

// MaxChainLength bounds the number of sub-compartments of a single stage.
// The validator rejects parameter sets whose duration/dt exceeds it.
const MaxChainLength = 100_000

// maxSteps saturates SimulationSteps so that tiny sampling intervals cannot
// overflow int.
const maxSteps = math.MaxInt32

// chainLength truncates duration/dt toward zero. Non-positive inputs yield 0;
// the validator reports them separately. Quotients past math.MaxInt32
// saturate there instead of overflowing.
func chainLength(duration, dt float64) int {
	if duration <= 0 || dt <= 0 {
		return 0
	}
	q := duration / dt
	if math.IsNaN(q) {
		return 0
	}
	if q >= math.MaxInt32 {
		return math.MaxInt32
	}
	return int(q)
}

// ChainLengths derives the number of sub-compartments per stage.
func (p Parameters) ChainLengths() domain.ChainLengths {
	return domain.ChainLengths{
		Vaccination: chainLength(p.VaccinationPeriod, p.SamplingInterval),
		Exposure:    chainLength(p.IncubationPeriod, p.SamplingInterval),
		Infection:   chainLength(p.InfectiousPeriod, p.SamplingInterval),
	}
}

// SimulationSteps returns the number of sampling steps covering the horizon,
// including the initial step.
func (p Parameters) SimulationSteps() int {
	if p.SamplingInterval <= 0 || p.Horizon < 0 {
		return 0
	}
	q := p.Horizon / p.SamplingInterval
	if math.IsNaN(q) {
		return 0
	}
	if q >= maxSteps-1 {
		return maxSteps
	}
	return int(q) + 1
}

// Fingerprint returns a stable hex digest of the parameter set.
// Equal parameter sets always compile to equal models, so the digest is a
// valid cache key.
func (p Parameters) Fingerprint() string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%+v", p)))
	return hex.EncodeToString(sum[:])
}
