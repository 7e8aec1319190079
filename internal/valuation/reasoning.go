package valuation

import (
	"strings"
)

// StepKind identifies one discrete step of an estimate's reasoning trail.
type StepKind string

const (
	StepPlayer         StepKind = "player"
	StepComparables    StepKind = "comparables"
	StepFallback       StepKind = "fallback"
	StepAgeBonus       StepKind = "age_bonus"
	StepAgePenalty     StepKind = "age_penalty"
	StepAvailability   StepKind = "availability"
	StepPreviousSalary StepKind = "previous_salary"
	StepConfidence     StepKind = "confidence"
	StepFinal          StepKind = "final"
)

// ReasoningStep is one entry of the ordered audit trail behind an estimate.
// Delta carries the salary adjustment the step applied (zero for
// informational steps) so tests can assert on structure rather than text.
type ReasoningStep struct {
	Kind   StepKind `json:"kind"`
	Delta  int      `json:"delta,omitempty"`
	Detail string   `json:"detail"`
}

// RenderReasoning projects the trail to the user-facing text block.
func RenderReasoning(steps []ReasoningStep) string {
	lines := make([]string, 0, len(steps))
	for _, step := range steps {
		lines = append(lines, step.Detail)
	}
	return strings.Join(lines, "\n")
}
