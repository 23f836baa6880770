package queries

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
)

// GetAvailableDriversQueryHandler answers proximity queries over the read
// store. The spatial index shortlists candidates cheaply; the database rows
// are then the authority on availability, verification and sample freshness,
// and the exact haversine distance filters the shortlist down to the radius.
type GetAvailableDriversQueryHandler struct {
	db    *gorm.DB
	index ports.DriverIndex
}

// NewGetAvailableDriversQueryHandler creates a handler for proximity queries.
func NewGetAvailableDriversQueryHandler(db *gorm.DB, index ports.DriverIndex) GetAvailableDriversQueryHandler {
	return GetAvailableDriversQueryHandler{db: db, index: index}
}

// Handle executes the proximity query. Results are ordered by rating
// descending, then total completed jobs descending.
func (h GetAvailableDriversQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableDriversQuery,
) ([]AvailableDriverResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	shortlist, err := h.index.Near(ctx, query.Center(), query.RadiusKm())
	if err != nil {
		return nil, err
	}
	if len(shortlist) == 0 {
		return []AvailableDriverResponse{}, nil
	}

	ids := make([]uuid.UUID, 0, len(shortlist))
	for _, id := range shortlist {
		ids = append(ids, id.Bytes())
	}

	cutoff := time.Now().UTC().Add(-SampleFreshness)
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			d.id,
			d.name,
			d.rating,
			d.total_jobs,
			s.latitude,
			s.longitude,
			s.recorded_at
		FROM drivers d
		JOIN LATERAL (
			SELECT latitude, longitude, recorded_at
			FROM track_samples
			WHERE driver_id = d.id AND recorded_at > ?
			ORDER BY recorded_at DESC
			LIMIT 1
		) s ON true
		WHERE d.id IN ?
		  AND d.availability = 'available'
		  AND d.verified
	`, cutoff, ids).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	drivers := make([]AvailableDriverResponse, 0, len(ids))
	for rows.Next() {
		var response AvailableDriverResponse
		var id uuid.UUID
		var latitude, longitude float64

		if err = rows.Scan(
			&id,
			&response.Name,
			&response.Rating,
			&response.TotalJobs,
			&latitude,
			&longitude,
			&response.SampledAt,
		); err != nil {
			return nil, err
		}

		driverID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		response.ID = driverID

		location, locErr := kernel.NewGeoPoint(latitude, longitude)
		if locErr != nil {
			return nil, locErr
		}
		response.Location = location

		distance, distErr := query.Center().DistanceKm(location)
		if distErr != nil {
			return nil, distErr
		}
		// The geohash cells cover a superset of the circle; trim the corners.
		if distance > query.RadiusKm() {
			continue
		}
		response.DistanceKm = distance

		drivers = append(drivers, response)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(drivers, func(i, j int) bool {
		if drivers[i].Rating != drivers[j].Rating {
			return drivers[i].Rating > drivers[j].Rating
		}
		return drivers[i].TotalJobs > drivers[j].TotalJobs
	})

	return drivers, nil
}
