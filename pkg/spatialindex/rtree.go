package spatialindex

import (
	"math"

	da "github.com/franzxzx/roadnet/pkg/datastructure"
	"github.com/franzxzx/roadnet/pkg/geo"
	"github.com/tidwall/rtree"
	"go.uber.org/zap"
)

// Rtree indexes road segments by bounding box. segment geometry is fixed
// between assemblies, only statuses change, so the index is built once per
// assembled segment set.
type Rtree struct {
	tr *rtree.RTreeG[string]
}

func NewRtree() *Rtree {
	var tr rtree.RTreeG[string]
	return &Rtree{
		tr: &tr,
	}
}

// Build inserts every segment with its coordinate bounding box, padded by
// padMeters on each side.
func (rt *Rtree) Build(segments map[string]*da.RoadSegment, padMeters float64, log *zap.Logger) {
	for id, seg := range segments {
		minLat, minLon := math.Inf(1), math.Inf(1)
		maxLat, maxLon := math.Inf(-1), math.Inf(-1)
		for _, c := range seg.Coordinates {
			minLat = math.Min(minLat, c.Lat)
			minLon = math.Min(minLon, c.Lon)
			maxLat = math.Max(maxLat, c.Lat)
			maxLon = math.Max(maxLon, c.Lon)
		}

		lowerLat, lowerLon := geo.GetDestinationPoint(minLat, minLon, 225, padMeters)
		upperLat, upperLon := geo.GetDestinationPoint(maxLat, maxLon, 45, padMeters)

		rt.tr.Insert([2]float64{lowerLon, lowerLat}, [2]float64{upperLon, upperLat}, id)
	}

	log.Info("segment R-tree built", zap.Int("segments", len(segments)))
}

// SearchWithinRadius returns the IDs of segments whose bounding box overlaps
// the square of the given radius (meters) around the query point. callers
// refine candidates with an exact distance test.
func (rt *Rtree) SearchWithinRadius(qLat, qLon, radius float64) []string {
	lowerLat, lowerLon := geo.GetDestinationPoint(qLat, qLon, 225, radius)
	upperLat, upperLon := geo.GetDestinationPoint(qLat, qLon, 45, radius)

	results := make([]string, 0, 10)
	rt.tr.Search([2]float64{lowerLon, lowerLat}, [2]float64{upperLon, upperLat},
		func(min, max [2]float64, id string) bool {
			results = append(results, id)
			return true
		})
	return results
}
