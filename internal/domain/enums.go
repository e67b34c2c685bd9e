package domain

// RunPolicy controls whether every inbound record is considered for admission
// or only a probabilistic sample.
type RunPolicy string

const (
	RunPolicyAlways  RunPolicy = "always"
	RunPolicySampled RunPolicy = "sampled"
)

// AdmissionOutcome represents the result of an admission decision.
type AdmissionOutcome string

const (
	OutcomeAdmitted      AdmissionOutcome = "admitted"
	OutcomeSampledOut    AdmissionOutcome = "sampled_out"
	OutcomeQuotaExceeded AdmissionOutcome = "quota_exceeded"
	OutcomeBlocked       AdmissionOutcome = "blocked"
)
