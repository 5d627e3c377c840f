package domain

// TransitionKind names the rule that produced a transition.
type TransitionKind string

const (
	KindBirth               TransitionKind = "birth"
	KindMaternalImmunity    TransitionKind = "maternal_immunity"
	KindMortality           TransitionKind = "mortality"
	KindVaccination         TransitionKind = "vaccination"
	KindVaccinationProgress TransitionKind = "vaccination_progress"
	KindVaccineSuccess      TransitionKind = "vaccine_success"
	KindVaccineFailure      TransitionKind = "vaccine_failure"
	KindExposure            TransitionKind = "exposure"
	KindInfection           TransitionKind = "infection"
	KindIncubation          TransitionKind = "incubation"
	KindOnset               TransitionKind = "onset"
	KindQuarantine          TransitionKind = "quarantine"
	KindQuarantineProgress  TransitionKind = "quarantine_progress"
	KindQuarantineOnset     TransitionKind = "quarantine_onset"
	KindInfectionProgress   TransitionKind = "infection_progress"
	KindIsolation           TransitionKind = "isolation"
	KindIsolationProgress   TransitionKind = "isolation_progress"
	KindRecovery            TransitionKind = "recovery"
	KindRelapse             TransitionKind = "relapse"
	KindFatality            TransitionKind = "fatality"
)

// Transition is a resolved directed edge between two compartments.
type Transition struct {
	Source int            `json:"source" yaml:"source"`
	Dest   int            `json:"dest" yaml:"dest"`
	Kind   TransitionKind `json:"kind,omitempty" yaml:"kind,omitempty"`
}
