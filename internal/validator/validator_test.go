package validator

import (
	"errors"
	"math"
	"testing"

	"github.com/aretw0/epigraph/pkg/domain"
	"github.com/aretw0/epigraph/pkg/params"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckTransmissionModel(t *testing.T) {
	tests := []struct {
		name    string
		betaExp float64
		betaInf float64
		wantErr error
	}{
		{"both zero", 0, 0, domain.ErrNoTransmissionModel},
		{"both non-zero", 0.5, 0.2, domain.ErrAmbiguousTransmissionModel},
		{"exposed model", 0.5, 0, nil},
		{"infected model", 0, 0.2, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := params.Default()
			p.BetaExp = tt.betaExp
			p.BetaInf = tt.betaInf

			err := CheckTransmissionModel(p)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}

			err = Validate(p)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.True(t, IsConfigError(err))
			}
		})
	}
}

func TestValidate_Defaults(t *testing.T) {
	assert.NoError(t, Validate(params.Default()))
}

func TestValidate_Durations(t *testing.T) {
	p := params.Default()
	p.IncubationPeriod = 0
	p.SamplingInterval = -1
	p.Initial.Exposed = 0

	err := Validate(p)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNonPositiveDuration)

	fields := map[string]bool{}
	for _, e := range domain.ValidationErrors(err) {
		var cfg *domain.ConfigError
		if errors.As(e, &cfg) {
			fields[cfg.Field] = true
		}
	}
	assert.True(t, fields["t_exp"])
	assert.True(t, fields["dt"])
}

func TestValidate_Probabilities(t *testing.T) {
	p := params.Default()
	p.GammaMortality = 0.7
	p.GammaImmunity = 0.5

	err := Validate(p)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidProbability)
	assert.Len(t, domain.ValidationErrors(err), 1)
}

func TestValidate_NegativeAndNaN(t *testing.T) {
	p := params.Default()
	p.DeathRate = -0.1
	p.QuarantineRate = math.NaN()

	err := Validate(p)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNegativeValue)
	assert.ErrorIs(t, err, domain.ErrNotFinite)
}

func TestValidate_SeedOnEmptyChainIsAccepted(t *testing.T) {
	p := params.Default()
	p.SamplingInterval = 1
	p.IncubationPeriod = 0.5 // exposure chain collapses
	p.Initial.Exposed = 10

	assert.NoError(t, Validate(p))
}

func TestValidate_ChainTooLong(t *testing.T) {
	tests := []struct {
		name  string
		dt    float64
		field string
	}{
		{"Overflowing Quotient", 1e-300, "t_exp"},
		{"Huge Allocation", 1e-7, "t_inf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := params.Default()
			p.SamplingInterval = tt.dt

			err := Validate(p)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrChainTooLong)

			var fields []string
			for _, e := range domain.ValidationErrors(err) {
				var cfg *domain.ConfigError
				if errors.As(e, &cfg) && errors.Is(cfg, domain.ErrChainTooLong) {
					fields = append(fields, cfg.Field)
				}
			}
			assert.Contains(t, fields, tt.field)
			assert.Len(t, fields, 3)
		})
	}

	// Exactly at the bound is accepted.
	p := params.Default()
	p.SamplingInterval = 1
	p.InfectiousPeriod = params.MaxChainLength
	assert.NoError(t, Validate(p))
}

func TestValidate_AggregatesEverything(t *testing.T) {
	p := params.Default()
	p.BetaInf = 0.1
	p.VaccineEfficacy = 2

	err := Validate(p)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAmbiguousTransmissionModel)
	assert.ErrorIs(t, err, domain.ErrInvalidProbability)
	assert.Len(t, domain.ValidationErrors(err), 2)
	assert.Contains(t, err.Error(), "2 validation errors")
}
