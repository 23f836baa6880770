package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetJobHistoryQueryIsNotConstructed = errors.New(
	"GetJobHistoryQuery must be created via NewGetJobHistoryQuery constructor",
)

// GetJobHistoryQuery retrieves the full status event trail for one job,
// including refused transition attempts.
type GetJobHistoryQuery struct { //nolint:recvcheck //using for validation
	jobID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetJobHistoryQuery creates a history query for the given job.
func NewGetJobHistoryQuery(jobID kernel.UUID) (GetJobHistoryQuery, error) {
	if err := jobID.Validate(); err != nil {
		return GetJobHistoryQuery{}, err
	}

	return GetJobHistoryQuery{
		jobID: jobID,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetJobHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetJobHistoryQueryIsNotConstructed)
}

// JobID returns the job whose history is requested.
func (q GetJobHistoryQuery) JobID() kernel.UUID { return q.jobID }

// JobHistoryEventResponse is one entry of a job's status trail.
type JobHistoryEventResponse struct {
	ID         kernel.UUID
	Status     string
	ActorID    kernel.UUID
	ActorRole  string
	Latitude   *float64
	Longitude  *float64
	Note       string
	OccurredAt time.Time
}
