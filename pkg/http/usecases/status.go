package usecases

import (
	"sort"

	"github.com/franzxzx/roadnet/pkg"
	da "github.com/franzxzx/roadnet/pkg/datastructure"
	"github.com/franzxzx/roadnet/pkg/geo"
	"github.com/franzxzx/roadnet/pkg/util"
	"go.uber.org/zap"
)

type StatusService struct {
	log          *zap.Logger
	engine       RoutingEngine
	reconciler   StatusReconciler
	spatialIndex SpatialIndex
}

func NewStatusService(log *zap.Logger, engine RoutingEngine, reconciler StatusReconciler,
	spatialIndex SpatialIndex) *StatusService {
	return &StatusService{
		log:          log,
		engine:       engine,
		reconciler:   reconciler,
		spatialIndex: spatialIndex,
	}
}

func (ss *StatusService) ListSegments() []*da.RoadSegment {
	segments := ss.engine.Segments()
	sort.Slice(segments, func(i, j int) bool {
		return segments[i].ID < segments[j].ID
	})
	return segments
}

// NearbySegments returns segments whose geometry lies within radiusMeters of
// the query point. The r-tree search over padded bounding boxes may return
// false positives, each candidate is refined against the exact perpendicular
// distance to its spans.
func (ss *StatusService) NearbySegments(lat, lon, radiusMeters float64) []*da.RoadSegment {
	candidateIDs := ss.spatialIndex.SearchWithinRadius(lat, lon, radiusMeters)
	candidateSet := make(map[string]struct{}, len(candidateIDs))
	for _, id := range candidateIDs {
		candidateSet[id] = struct{}{}
	}

	q := geo.NewCoordinate(lat, lon)
	var nearby []*da.RoadSegment
	for _, segment := range ss.engine.Segments() {
		if _, ok := candidateSet[segment.ID]; !ok {
			continue
		}
		if segmentWithinRadius(segment, q, radiusMeters) {
			nearby = append(nearby, segment)
		}
	}
	sort.Slice(nearby, func(i, j int) bool {
		return nearby[i].ID < nearby[j].ID
	})
	return nearby
}

func segmentWithinRadius(segment *da.RoadSegment, q geo.Coordinate, radiusMeters float64) bool {
	coords := segment.Coordinates
	for i := 0; i < len(coords)-1; i++ {
		if geo.PointLinePerpendicularDistance(coords[i], coords[i+1], q) <= radiusMeters {
			return true
		}
	}
	return false
}

// EditStatus applies a local status edit through the reconciler so the change
// is protected from feed updates for the suppression window.
func (ss *StatusService) EditStatus(segmentID, status, source string) (bool, error) {
	roadStatus, ok := pkg.ParseRoadStatus(status)
	if !ok {
		return false, util.WrapErrorf(nil, util.ErrBadParamInput,
			"unknown road status %q", status)
	}
	return ss.reconciler.ApplyLocalEdit(segmentID, roadStatus, source)
}
