package routing

import (
	"sync"

	"github.com/franzxzx/roadnet/pkg"
	da "github.com/franzxzx/roadnet/pkg/datastructure"
	"github.com/franzxzx/roadnet/pkg/geo"
	"github.com/franzxzx/roadnet/pkg/util"
	"go.uber.org/zap"
)

// maxVertexLookupMeters bounds how far a query point may sit from the nearest
// graph vertex before the lookup itself fails (distinct from "no route").
const maxVertexLookupMeters = 5_000.0

// Engine owns the authoritative in-memory segment set and the per-mode graph
// cache. graphs are rebuilt lazily after any applied status change; route
// computation composes BuildGraph and AstarSearch explicitly, there is no
// hidden dependency tracking. a new request simply supersedes the previous
// result.
type Engine struct {
	log *zap.Logger

	mu       sync.RWMutex
	segments map[string]*da.RoadSegment
	graphs   map[pkg.VehicleMode]*da.Graph

	avgSpeedKmh float64
	precision   int
}

func NewEngine(log *zap.Logger, segments map[string]*da.RoadSegment,
	avgSpeedKmh float64, precision int) *Engine {
	if avgSpeedKmh <= 0 {
		avgSpeedKmh = pkg.DEFAULT_AVERAGE_SPEED_KMH
	}
	if precision <= 0 {
		precision = pkg.DEFAULT_COORD_PRECISION
	}
	return &Engine{
		log:         log,
		segments:    segments,
		graphs:      make(map[pkg.VehicleMode]*da.Graph),
		avgSpeedKmh: avgSpeedKmh,
		precision:   precision,
	}
}

// GetGraph returns the graph for the mode, building it if no cached build
// survives the last status change.
func (e *Engine) GetGraph(mode pkg.VehicleMode) *da.Graph {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.getGraphLocked(mode)
}

func (e *Engine) getGraphLocked(mode pkg.VehicleMode) *da.Graph {
	if g, ok := e.graphs[mode]; ok {
		return g
	}
	g := BuildGraph(e.segments, mode, e.precision)
	e.graphs[mode] = g
	e.log.Info("graph rebuilt",
		zap.String("mode", mode.String()),
		zap.Int("vertices", g.NumberOfVertices()),
		zap.Int("segments", len(e.segments)))
	return g
}

// FindRoute computes the lowest-cost path between two arbitrary points for
// the vehicle mode. three outcomes the caller must branch on:
//   - route, true, nil: a path was found
//   - nil, false, nil: both endpoints resolved to vertices, no path connects them
//   - nil, false, err: lookup failure, an endpoint has no usable graph vertex
func (e *Engine) FindRoute(start, end geo.Coordinate, mode pkg.VehicleMode) (*da.Route, bool, error) {
	e.mu.Lock()
	graph := e.getGraphLocked(mode)
	e.mu.Unlock()

	startIdx, ok := graph.NearestVertex(start.Lat, start.Lon)
	if !ok {
		return nil, false, util.WrapErrorf(nil, util.ErrNotFound,
			"no graph vertices available for start point %f,%f", start.Lat, start.Lon)
	}
	endIdx, ok := graph.NearestVertex(end.Lat, end.Lon)
	if !ok {
		return nil, false, util.WrapErrorf(nil, util.ErrNotFound,
			"no graph vertices available for end point %f,%f", end.Lat, end.Lon)
	}

	if d := vertexDistance(graph, startIdx, start); d > maxVertexLookupMeters {
		return nil, false, util.WrapErrorf(nil, util.ErrNotFound,
			"start point %f,%f is %.0fm from the nearest road", start.Lat, start.Lon, d)
	}
	if d := vertexDistance(graph, endIdx, end); d > maxVertexLookupMeters {
		return nil, false, util.WrapErrorf(nil, util.ErrNotFound,
			"end point %f,%f is %.0fm from the nearest road", end.Lat, end.Lon, d)
	}

	search := NewAstarSearch(graph)
	vertexPath, cost, found := search.ShortestPath(startIdx, endIdx)
	if !found {
		// a legitimate result, not an error
		return nil, false, nil
	}

	coords := make([]geo.Coordinate, 0, len(vertexPath))
	for _, v := range vertexPath {
		lat, lon := graph.GetVertexCoordinates(v)
		coords = append(coords, geo.NewCoordinate(lat, lon))
	}

	distance := da.RouteDistance(coords)
	eta := da.EtaMinutes(distance, e.avgSpeedKmh)

	return da.NewRoute(vertexPath, coords, distance, eta, cost), true, nil
}

func vertexDistance(graph *da.Graph, idx da.Index, p geo.Coordinate) float64 {
	lat, lon := graph.GetVertexCoordinates(idx)
	return geo.CalculateHaversineDistance(p.Lat, p.Lon, lat, lon)
}

// GetSegmentStatus returns the current status of a segment.
func (e *Engine) GetSegmentStatus(id string) (pkg.RoadStatus, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	seg, ok := e.segments[id]
	if !ok {
		return pkg.STATUS_PASSABLE, false
	}
	return seg.GetStatus(), true
}

// SetSegmentStatus replaces a segment's status wholesale and drops every
// cached graph when the status actually changed. identical incoming status is
// a no-op.
func (e *Engine) SetSegmentStatus(id string, status pkg.RoadStatus) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	seg, ok := e.segments[id]
	if !ok || seg.GetStatus() == status {
		return false
	}

	seg.SetStatus(status)
	e.graphs = make(map[pkg.VehicleMode]*da.Graph)
	return true
}

// Segments returns a point-in-time copy of the segment set.
func (e *Engine) Segments() []*da.RoadSegment {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]*da.RoadSegment, 0, len(e.segments))
	for _, seg := range e.segments {
		out = append(out, da.NewRoadSegment(seg.ID, seg.Coordinates, seg.Status, seg.Properties))
	}
	return out
}

func (e *Engine) NumberOfSegments() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.segments)
}
