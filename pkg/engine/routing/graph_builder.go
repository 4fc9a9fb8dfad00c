package routing

import (
	"github.com/franzxzx/roadnet/pkg"
	"github.com/franzxzx/roadnet/pkg/costfunction"
	da "github.com/franzxzx/roadnet/pkg/datastructure"
	"github.com/franzxzx/roadnet/pkg/geo"
	"golang.org/x/exp/slices"
)

// BuildGraph turns the segment set into a weighted undirected graph for one
// vehicle mode. blocked segments contribute zero edges unconditionally; the
// cost of every other edge is its haversine length times the status x mode
// multiplier. segments are visited in ID order so vertex indices are
// deterministic across builds of the same input.
func BuildGraph(segments map[string]*da.RoadSegment, mode pkg.VehicleMode,
	precision int) *da.Graph {

	cf := costfunction.NewStatusCostFunction(mode)
	graph := da.NewGraph(precision)

	ids := make([]string, 0, len(segments))
	for id := range segments {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	for _, id := range ids {
		seg := segments[id]
		if seg.GetStatus() == pkg.STATUS_BLOCKED {
			continue
		}

		multiplier := cf.StatusMultiplier(seg.GetStatus())

		for i := 0; i+1 < len(seg.Coordinates); i++ {
			p, q := seg.Coordinates[i], seg.Coordinates[i+1]

			u := graph.GetOrCreateVertex(p.Lat, p.Lon)
			v := graph.GetOrCreateVertex(q.Lat, q.Lon)
			if u == v {
				// consecutive points collapsed to one vertex by quantization
				continue
			}

			cost := geo.CalculateHaversineDistance(p.Lat, p.Lon, q.Lat, q.Lon) * multiplier
			graph.AddUndirectedEdge(u, v, cost, seg.ID)
		}
	}

	return graph
}
