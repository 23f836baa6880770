package geo

import (
	"context"
	"math"
	"sync"

	"github.com/dhconnelly/rtreego"

	"dispatch/internal/core/domain/model/kernel"
)

const kmPerDegreeLat = 111.32

// driverEntry satisfies rtreego.Spatial for one driver's position.
type driverEntry struct {
	id    kernel.UUID
	point kernel.GeoPoint
	rect  rtreego.Rect
}

func (e *driverEntry) Bounds() rtreego.Rect {
	return e.rect
}

// RTreeDriverIndex keeps drivers' last known positions in an in-memory
// R-tree. It is per-process state: suitable for a single instance or for
// tests, while RedisDriverIndex serves multi-instance deployments.
type RTreeDriverIndex struct {
	mu      sync.Mutex
	tree    *rtreego.Rtree
	entries map[kernel.UUID]*driverEntry
}

// NewRTreeDriverIndex creates an empty in-memory index.
func NewRTreeDriverIndex() *RTreeDriverIndex {
	return &RTreeDriverIndex{
		tree:    rtreego.NewTree(2, 25, 50),
		entries: make(map[kernel.UUID]*driverEntry),
	}
}

// Upsert records or moves a driver's position.
func (i *RTreeDriverIndex) Upsert(_ context.Context, driverID kernel.UUID, point kernel.GeoPoint) error {
	rect := rtreego.Point{point.Latitude(), point.Longitude()}.ToRect(1e-6)

	i.mu.Lock()
	defer i.mu.Unlock()

	if existing, ok := i.entries[driverID]; ok {
		i.tree.Delete(existing)
	}
	entry := &driverEntry{id: driverID, point: point, rect: rect}
	i.tree.Insert(entry)
	i.entries[driverID] = entry
	return nil
}

// Remove drops a driver from the index.
func (i *RTreeDriverIndex) Remove(_ context.Context, driverID kernel.UUID) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if existing, ok := i.entries[driverID]; ok {
		i.tree.Delete(existing)
		delete(i.entries, driverID)
	}
	return nil
}

// Near returns IDs of drivers within radiusKm of center. The tree search
// uses a bounding box; the exact circle is enforced with a haversine check.
func (i *RTreeDriverIndex) Near(_ context.Context, center kernel.GeoPoint, radiusKm float64) ([]kernel.UUID, error) {
	latDelta := radiusKm / kmPerDegreeLat
	lonScale := math.Cos(center.Latitude() * math.Pi / 180)
	if lonScale < 0.01 {
		lonScale = 0.01
	}
	lonDelta := radiusKm / (kmPerDegreeLat * lonScale)

	searchRect, err := rtreego.NewRect(
		rtreego.Point{center.Latitude() - latDelta, center.Longitude() - lonDelta},
		[]float64{2 * latDelta, 2 * lonDelta},
	)
	if err != nil {
		return nil, err
	}

	i.mu.Lock()
	candidates := i.tree.SearchIntersect(searchRect)
	i.mu.Unlock()

	ids := make([]kernel.UUID, 0, len(candidates))
	for _, candidate := range candidates {
		entry, ok := candidate.(*driverEntry)
		if !ok {
			continue
		}
		distance, err := center.DistanceKm(entry.point)
		if err != nil {
			return nil, err
		}
		if distance <= radiusKm {
			ids = append(ids, entry.id)
		}
	}
	return ids, nil
}
