package queries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// GetJobHistoryQueryHandler reads a job's status event trail directly from
// the event table.
type GetJobHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetJobHistoryQueryHandler creates a handler for job history queries.
func NewGetJobHistoryQueryHandler(db *gorm.DB) GetJobHistoryQueryHandler {
	return GetJobHistoryQueryHandler{db: db}
}

// Handle executes the history query. Events come back in chronological
// order. Returns ObjectNotFoundError when the job does not exist.
func (h GetJobHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetJobHistoryQuery,
) ([]JobHistoryEventResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var exists bool
	err := h.db.WithContext(ctx).
		Raw(`SELECT EXISTS (SELECT 1 FROM jobs WHERE id = ?)`, query.JobID().Bytes()).
		Scan(&exists).Error
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errs.NewObjectNotFoundError("jobId", query.JobID())
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			actor_id,
			actor_role,
			latitude,
			longitude,
			note,
			occurred_at
		FROM job_status_events
		WHERE job_id = ?
		ORDER BY occurred_at, id
	`, query.JobID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]JobHistoryEventResponse, 0)
	for rows.Next() {
		var event JobHistoryEventResponse
		var id, actorID uuid.UUID

		if err = rows.Scan(
			&id,
			&event.Status,
			&actorID,
			&event.ActorRole,
			&event.Latitude,
			&event.Longitude,
			&event.Note,
			&event.OccurredAt,
		); err != nil {
			return nil, err
		}

		if event.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if event.ActorID, err = kernel.UUIDFromBytes(actorID[:]); err != nil {
			return nil, err
		}

		events = append(events, event)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}
