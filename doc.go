/*
Package epigraph compiles the compartmental structure of a stochastic epidemic
model (an extended SEIR variant with vaccination, quarantine and isolation
sub-chains) into an immutable descriptor that downstream solvers step forward
in time.

# Concept

Each biological stage with a continuous duration (vaccination-to-immunity,
incubation, infectious period) is discretised into a chain of sub-compartments,
one per sampling interval. The number of compartments therefore depends on the
configuration, and the transition graph between them is generated rather than
enumerated by hand.

The pipeline is strictly sequential:

	Parameters → Validate → State Registry → Transition Graph → Model

The resulting Model addresses compartments purely by integer index. Names are
only used while the graph is built.

# Usage

	p := params.Default()
	model, err := epigraph.New(epigraph.WithLogger(logger)).Build(ctx, p)
	if err != nil {
		// errors.Is(err, domain.ErrNoTransmissionModel), ...
	}

	x := model.InitialState()  // private copy per trial
	for _, t := range model.Transitions() {
		// t.Source, t.Dest, t.Kind
	}

Time stepping, random-number policy and plotting are left to the caller.
*/
package epigraph
