package domain

// ValidationDetails carries the per-check breakdown behind an aggregate
// score so callers (and the reasoning engine) can see how it was reached.
type ValidationDetails struct {
	ConstraintScores map[string]float64 `json:"constraintScores"`
	WeeklyHours      float64            `json:"weeklyHours,omitempty"`
	WeeklyLimit      float64            `json:"weeklyLimit,omitempty"`
	HoursOverage     float64            `json:"hoursOverage,omitempty"`
}

// ValidationResult is the outcome of evaluating one (shift, staff) pairing.
// Expected rule failures are reported as data, never as errors.
type ValidationResult struct {
	IsValid    bool              `json:"isValid"`
	Score      float64           `json:"score"` // 0 - 1
	Violations []string          `json:"violations"`
	Details    ValidationDetails `json:"details"`
}

type Severity string

const (
	SeverityWarning  Severity = "warning"
	SeverityError    Severity = "error"
	SeverityCritical Severity = "critical"
)

const ViolationDataIntegrity = "data_integrity"

type BatchViolation struct {
	Type     string   `json:"type"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	ShiftID  int64    `json:"shiftID,omitempty"`
	StaffID  int64    `json:"staffID,omitempty"`
}

// BatchValidationResult reports cross-assignment checks over a proposed
// assignment set. The batch is invalid if any violation carries error or
// critical severity; warnings merely flag it.
type BatchValidationResult struct {
	IsValid    bool             `json:"isValid"`
	Violations []BatchViolation `json:"violations"`
	Warnings   []BatchViolation `json:"warnings"`
}
