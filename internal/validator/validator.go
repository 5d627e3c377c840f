// Package validator checks cross-parameter consistency before a model is compiled.
package validator

import (
	"errors"
	"fmt"
	"math"

	"github.com/aretw0/epigraph/pkg/domain"
	"github.com/aretw0/epigraph/pkg/params"
)

// CheckTransmissionModel enforces that exactly one of the two alternative
// infection-pressure models is active.
func CheckTransmissionModel(p params.Parameters) error {
	switch {
	case p.BetaExp == 0 && p.BetaInf == 0:
		return domain.ErrNoTransmissionModel
	case p.BetaExp != 0 && p.BetaInf != 0:
		return domain.ErrAmbiguousTransmissionModel
	}
	return nil
}

// Validate runs every consistency check on p. All failures are collected into
// a *domain.AggregateError; errors.Is matches each underlying sentinel.
func Validate(p params.Parameters) error {
	var errs []error

	if err := CheckTransmissionModel(p); err != nil {
		errs = append(errs, err)
	}

	for _, f := range []field{
		{"t_exp", p.IncubationPeriod},
		{"t_inf", p.InfectiousPeriod},
		{"t_vac", p.VaccinationPeriod},
		{"dt", p.SamplingInterval},
	} {
		if err := finite(f.name, f.value); err != nil {
			errs = append(errs, err)
			continue
		}
		if f.value <= 0 {
			errs = append(errs, &domain.ConfigError{Field: f.name, Reason: fmt.Sprintf("got %g", f.value), Err: domain.ErrNonPositiveDuration})
		}
	}

	for _, f := range nonNegativeFields(p) {
		if err := finite(f.name, f.value); err != nil {
			errs = append(errs, err)
			continue
		}
		if f.value < 0 {
			errs = append(errs, &domain.ConfigError{Field: f.name, Reason: fmt.Sprintf("got %g", f.value), Err: domain.ErrNegativeValue})
		}
	}

	for _, f := range []field{
		{"vaccine_efficacy", p.VaccineEfficacy},
		{"gamma_mor", p.GammaMortality},
		{"gamma_im", p.GammaImmunity},
	} {
		if err := finite(f.name, f.value); err != nil {
			errs = append(errs, err)
			continue
		}
		if f.value < 0 || f.value > 1 {
			errs = append(errs, &domain.ConfigError{Field: f.name, Reason: fmt.Sprintf("got %g", f.value), Err: domain.ErrInvalidProbability})
		}
	}
	if sum := p.GammaMortality + p.GammaImmunity; sum > 1 {
		errs = append(errs, &domain.ConfigError{Field: "gamma_mor+gamma_im", Reason: fmt.Sprintf("outcome probabilities sum to %g", sum), Err: domain.ErrInvalidProbability})
	}

	errs = append(errs, checkChainLengths(p)...)

	if len(errs) > 0 {
		return &domain.AggregateError{Errors: errs}
	}
	return nil
}

// IsConfigError reports whether err stems from an invalid parameter set
// rather than a build defect.
func IsConfigError(err error) bool {
	var cfg *domain.ConfigError
	return errors.As(err, &cfg) ||
		errors.Is(err, domain.ErrNoTransmissionModel) ||
		errors.Is(err, domain.ErrAmbiguousTransmissionModel)
}

type field struct {
	name  string
	value float64
}

func nonNegativeFields(p params.Parameters) []field {
	return []field{
		{"birth_rate", p.BirthRate},
		{"death_rate", p.DeathRate},
		{"vaccination_rate", p.VaccinationRate},
		{"maternal_immunity_rate", p.MaternalImmunityRate},
		{"quarantine_rate", p.QuarantineRate},
		{"isolation_rate", p.IsolationRate},
		{"beta_exp", p.BetaExp},
		{"beta_inf", p.BetaInf},
		{"eps_exp", p.EpsExposed},
		{"eps_qua", p.EpsQuarantined},
		{"eps_iso", p.EpsIsolated},
		{"sim_len", p.Horizon},
		{"initial.susceptible", p.Initial.Susceptible},
		{"initial.exposed", p.Initial.Exposed},
		{"initial.quarantined", p.Initial.Quarantined},
		{"initial.infected", p.Initial.Infected},
		{"initial.isolated", p.Initial.Isolated},
		{"initial.vaccination_immunized", p.Initial.VaccinationImmunized},
		{"initial.maternally_immunized", p.Initial.MaternallyImmunized},
		{"initial.recovery_immunized", p.Initial.RecoveryImmunized},
	}
}

// checkChainLengths bounds the number of links per stage so that the
// registry can be sized upfront. Non-positive inputs are reported elsewhere.
func checkChainLengths(p params.Parameters) []error {
	dt := p.SamplingInterval
	if !(dt > 0) || math.IsInf(dt, 0) {
		return nil
	}
	var errs []error
	for _, f := range []field{
		{"t_exp", p.IncubationPeriod},
		{"t_inf", p.InfectiousPeriod},
		{"t_vac", p.VaccinationPeriod},
	} {
		if !(f.value > 0) || math.IsInf(f.value, 0) {
			continue
		}
		if links := f.value / dt; links > params.MaxChainLength {
			errs = append(errs, &domain.ConfigError{
				Field:  f.name,
				Reason: fmt.Sprintf("%g/dt gives %.4g links, maximum is %d", f.value, links, params.MaxChainLength),
				Err:    domain.ErrChainTooLong,
			})
		}
	}
	return errs
}

func finite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &domain.ConfigError{Field: name, Err: domain.ErrNotFinite}
	}
	return nil
}
