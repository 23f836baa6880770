package geo

import (
	"context"
	"errors"
	"fmt"

	"github.com/mmcloughlin/geohash"
	"github.com/redis/go-redis/v9"

	"dispatch/internal/core/domain/model/kernel"
)

// Geohash precisions the index maintains per driver. Coarser cells answer
// wide searches, finer cells answer narrow ones; a driver is a member of one
// cell set at each precision.
const (
	minPrecision uint = 3
	maxPrecision uint = 6
)

// Approximate minimum cell dimension in km per geohash precision. A search
// picks the finest precision whose cell still spans the radius, so the
// center cell plus its eight neighbors cover the whole circle.
var cellSpanKm = map[uint]float64{
	3: 156.0,
	4: 19.5,
	5: 4.89,
	6: 0.61,
}

// RedisDriverIndex keeps drivers' last known positions in redis as geohash
// cell sets. It is shared between instances, so every API node sees the
// same shortlist.
type RedisDriverIndex struct {
	client *redis.Client
	prefix string
}

// NewRedisDriverIndex creates an index on the given client. Keys are
// namespaced under prefix.
func NewRedisDriverIndex(client *redis.Client, prefix string) *RedisDriverIndex {
	if prefix == "" {
		prefix = "dispatch"
	}
	return &RedisDriverIndex{client: client, prefix: prefix}
}

func (i *RedisDriverIndex) cellKey(precision uint, cell string) string {
	return fmt.Sprintf("%s:geo:%d:%s", i.prefix, precision, cell)
}

func (i *RedisDriverIndex) driversKey() string {
	return i.prefix + ":geo:drivers"
}

// Upsert records or moves a driver's position. The previous cell membership
// is looked up from a per-driver hash and removed in the same pipeline.
func (i *RedisDriverIndex) Upsert(ctx context.Context, driverID kernel.UUID, point kernel.GeoPoint) error {
	member := driverID.String()

	previous, err := i.client.HGet(ctx, i.driversKey(), member).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("read previous cell for driver %s: %w", member, err)
	}

	cell := geohash.EncodeWithPrecision(point.Latitude(), point.Longitude(), maxPrecision)

	pipe := i.client.TxPipeline()
	if previous != "" && previous != cell {
		for p := minPrecision; p <= maxPrecision; p++ {
			pipe.SRem(ctx, i.cellKey(p, previous[:p]), member)
		}
	}
	for p := minPrecision; p <= maxPrecision; p++ {
		pipe.SAdd(ctx, i.cellKey(p, cell[:p]), member)
	}
	pipe.HSet(ctx, i.driversKey(), member, cell)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("index driver %s: %w", member, err)
	}
	return nil
}

// Remove drops the driver from every cell set it is a member of.
func (i *RedisDriverIndex) Remove(ctx context.Context, driverID kernel.UUID) error {
	member := driverID.String()

	cell, err := i.client.HGet(ctx, i.driversKey(), member).Result()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read cell for driver %s: %w", member, err)
	}

	pipe := i.client.TxPipeline()
	for p := minPrecision; p <= maxPrecision; p++ {
		pipe.SRem(ctx, i.cellKey(p, cell[:p]), member)
	}
	pipe.HDel(ctx, i.driversKey(), member)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("deindex driver %s: %w", member, err)
	}
	return nil
}

// Near returns the IDs of drivers in the cell containing center and its
// eight neighbors, at the finest precision whose cell spans radiusKm. The
// cells cover a superset of the circle; callers re-check exact distance.
func (i *RedisDriverIndex) Near(ctx context.Context, center kernel.GeoPoint, radiusKm float64) ([]kernel.UUID, error) {
	precision := precisionFor(radiusKm)
	cell := geohash.EncodeWithPrecision(center.Latitude(), center.Longitude(), precision)

	keys := make([]string, 0, 9)
	keys = append(keys, i.cellKey(precision, cell))
	for _, neighbor := range geohash.Neighbors(cell) {
		keys = append(keys, i.cellKey(precision, neighbor))
	}

	members, err := i.client.SUnion(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("search cells around %s: %w", cell, err)
	}

	ids := make([]kernel.UUID, 0, len(members))
	for _, member := range members {
		id, err := kernel.UUIDFromString(member)
		if err != nil {
			// A malformed member is an index corruption, not a search miss.
			return nil, fmt.Errorf("indexed driver id %q: %w", member, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// precisionFor picks the finest precision whose cell dimension still covers
// the radius.
func precisionFor(radiusKm float64) uint {
	for p := maxPrecision; p > minPrecision; p-- {
		if cellSpanKm[p] >= radiusKm {
			return p
		}
	}
	return minPrecision
}
