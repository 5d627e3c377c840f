package tests

import (
	"context"
	"testing"

	"github.com/aretw0/epigraph/pkg/domain"
	"github.com/aretw0/epigraph/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// SampleModel returns a small, structurally valid model for store tests.
func SampleModel(seed int64) *domain.Model {
	return domain.NewModel(
		[]domain.Compartment{
			{Index: 0, Name: domain.NameBirth, Type: domain.CompartmentBirth},
			{Index: 1, Name: domain.NameSusceptible, Type: domain.CompartmentSusceptible, InitialCount: 990},
			{Index: 2, Name: "Infected_1", Type: domain.CompartmentInfected, InitialCount: 10},
			{Index: 3, Name: domain.NameRecoveryImmunized, Type: domain.CompartmentImmunized},
			{Index: 4, Name: domain.NameDead, Type: domain.CompartmentDead},
		},
		[]domain.Transition{
			{Source: 0, Dest: 1, Kind: domain.KindBirth},
			{Source: 1, Dest: 2, Kind: domain.KindInfection},
			{Source: 2, Dest: 3, Kind: domain.KindRecovery},
			{Source: 2, Dest: 1, Kind: domain.KindRelapse},
			{Source: 2, Dest: 4, Kind: domain.KindFatality},
		},
		domain.ChainLengths{Infection: 1},
		101,
		seed,
	)
}

// ModelStoreContractTest is a reusable test suite that verifies if an adapter complies with ports.ModelStore.
func ModelStoreContractTest(t *testing.T, store ports.ModelStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("Load_NotFound", func(t *testing.T) {
		_, err := store.Load(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrModelNotFound)
	})

	t.Run("Save_Load_RoundTrip", func(t *testing.T) {
		model := SampleModel(7)
		require.NoError(t, store.Save(ctx, "alpha", model))

		loaded, err := store.Load(ctx, "alpha")
		require.NoError(t, err)
		assert.Equal(t, model.Compartments(), loaded.Compartments())
		assert.Equal(t, model.Transitions(), loaded.Transitions())
		assert.Equal(t, model.ChainLengths(), loaded.ChainLengths())
		assert.Equal(t, model.SimulationSteps(), loaded.SimulationSteps())
		assert.Equal(t, int64(7), loaded.Seed())
	})

	t.Run("Save_Overwrites", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "alpha", SampleModel(8)))
		loaded, err := store.Load(ctx, "alpha")
		require.NoError(t, err)
		assert.Equal(t, int64(8), loaded.Seed())
	})

	t.Run("List", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "beta", SampleModel(1)))
		keys, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, keys, "alpha")
		assert.Contains(t, keys, "beta")
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, "alpha"))
		_, err := store.Load(ctx, "alpha")
		assert.ErrorIs(t, err, domain.ErrModelNotFound)

		keys, err := store.List(ctx)
		require.NoError(t, err)
		assert.NotContains(t, keys, "alpha")
	})
}
