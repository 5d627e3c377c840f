package params

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix prefixes every environment variable read by ApplyEnv,
// e.g. EPIGRAPH_BETA_EXP or EPIGRAPH_INIT_EXPOSED.
const EnvPrefix = "EPIGRAPH_"

// ApplyEnv overlays EPIGRAPH_* environment variables onto p.
// Unset variables leave the corresponding field untouched.
func ApplyEnv(p Parameters) (Parameters, error) {
	if err := env.ParseWithOptions(&p, env.Options{Prefix: EnvPrefix}); err != nil {
		return Parameters{}, fmt.Errorf("failed to read environment: %w", err)
	}
	return p, nil
}
