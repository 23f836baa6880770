package job

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Priority represents the urgency of a delivery job. It affects route
// sequencing only: the optimizer scales distances by the priority multiplier
// so urgent jobs are effectively pulled closer.
type Priority int

const (
	// PriorityUnknown represents an invalid or undefined priority.
	PriorityUnknown Priority = iota

	// PriorityLow is for jobs that can wait.
	PriorityLow

	// PriorityMedium is the default priority.
	PriorityMedium

	// PriorityHigh pulls a job ahead of equidistant medium and low jobs.
	PriorityHigh

	// PriorityUrgent pulls a job ahead of everything at comparable distance.
	PriorityUrgent
)

// DefaultPriority is applied when a job is created without an explicit priority.
const DefaultPriority = PriorityMedium

func getPriorityStrings() map[Priority]string {
	return map[Priority]string{
		PriorityLow:    "low",
		PriorityMedium: "medium",
		PriorityHigh:   "high",
		PriorityUrgent: "urgent",
	}
}

// ParsePriority converts a wire name into a Priority.
// An empty string yields DefaultPriority.
func ParsePriority(s string) (Priority, error) {
	if s == "" {
		return DefaultPriority, nil
	}
	for p, name := range getPriorityStrings() {
		if name == s {
			return p, nil
		}
	}
	return PriorityUnknown, errs.NewValueIsInvalidErrorWithCause("priority",
		fmt.Errorf("%q is not a valid priority", s))
}

// Validate checks that the Priority is one of the defined values.
func (p Priority) Validate() error {
	if _, ok := getPriorityStrings()[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("priority",
			fmt.Errorf("%d is not a valid priority", p))
	}
	return nil
}

// String returns the wire name of the priority.
func (p Priority) String() string {
	if str, ok := getPriorityStrings()[p]; ok {
		return str
	}
	return "unknown"
}

// DistanceMultiplier returns the factor applied to a job's pickup distance
// during route sequencing. Lower factors make a job look closer, so it is
// selected earlier by the nearest-neighbor heuristic.
func (p Priority) DistanceMultiplier() float64 {
	switch p {
	case PriorityUrgent:
		return 0.5
	case PriorityHigh:
		return 0.7
	default:
		return 1.0
	}
}
