package datastructure

import (
	"strconv"

	"github.com/franzxzx/roadnet/pkg"
	"github.com/franzxzx/roadnet/pkg/geo"
)

type Index uint32

const INVALID_VERTEX_ID = Index(^uint32(0))

// Edge is one directed adjacency entry. the builder always inserts the
// reverse edge with the same cost, so the graph as a whole is undirected.
type Edge struct {
	to        Index
	cost      float64
	segmentID string
}

func NewEdge(to Index, cost float64, segmentID string) Edge {
	return Edge{to: to, cost: cost, segmentID: segmentID}
}

func (e Edge) GetTo() Index {
	return e.to
}

func (e Edge) GetCost() float64 {
	return e.cost
}

func (e Edge) GetSegmentID() string {
	return e.segmentID
}

// Vertex is a graph node at a physical point shared by one or more segments.
// vertices are rebuilt from scratch on every graph build.
type Vertex struct {
	id    Index
	lat   float64
	lon   float64
	edges []Edge
}

func NewVertex(id Index, lat, lon float64) *Vertex {
	return &Vertex{id: id, lat: lat, lon: lon}
}

func (v *Vertex) GetID() Index {
	return v.id
}

func (v *Vertex) GetLat() float64 {
	return v.lat
}

func (v *Vertex) GetLon() float64 {
	return v.lon
}

func (v *Vertex) GetEdges() []Edge {
	return v.edges
}

func (v *Vertex) AddEdge(e Edge) {
	v.edges = append(v.edges, e)
}

// Graph is the routable graph built from the non-blocked segment set for one
// vehicle mode. vertex identity comes from quantized coordinates, so
// floating-point endpoints of different segments that represent the same
// physical point collapse to one vertex.
type Graph struct {
	vertices  []*Vertex
	keyToId   map[string]Index
	precision int
}

func NewGraph(precision int) *Graph {
	if precision <= 0 {
		precision = pkg.DEFAULT_COORD_PRECISION
	}
	return &Graph{
		vertices:  make([]*Vertex, 0),
		keyToId:   make(map[string]Index),
		precision: precision,
	}
}

// QuantizeKey collapses a coordinate to a fixed-precision identity key.
func QuantizeKey(lat, lon float64, precision int) string {
	return strconv.FormatFloat(lat, 'f', precision, 64) + "|" +
		strconv.FormatFloat(lon, 'f', precision, 64)
}

// GetOrCreateVertex returns the vertex at (lat, lon), creating it on first
// sight. indices are assigned in first-seen order, which keeps builds over
// the same segment iteration order deterministic.
func (g *Graph) GetOrCreateVertex(lat, lon float64) Index {
	key := QuantizeKey(lat, lon, g.precision)
	if id, ok := g.keyToId[key]; ok {
		return id
	}
	id := Index(len(g.vertices))
	g.vertices = append(g.vertices, NewVertex(id, lat, lon))
	g.keyToId[key] = id
	return id
}

// AddUndirectedEdge inserts u->v and v->u with the same cost.
func (g *Graph) AddUndirectedEdge(u, v Index, cost float64, segmentID string) {
	g.vertices[u].AddEdge(NewEdge(v, cost, segmentID))
	g.vertices[v].AddEdge(NewEdge(u, cost, segmentID))
}

func (g *Graph) NumberOfVertices() int {
	return len(g.vertices)
}

func (g *Graph) GetVertex(id Index) *Vertex {
	return g.vertices[id]
}

func (g *Graph) GetVertexCoordinates(id Index) (float64, float64) {
	v := g.vertices[id]
	return v.lat, v.lon
}

func (g *Graph) ForEdgesOf(id Index, fn func(e Edge)) {
	for _, e := range g.vertices[id].edges {
		fn(e)
	}
}

// NearestVertex scans all vertices and returns the index minimizing haversine
// distance to the query point. the equirectangular approximation would be
// cheaper but can rank vertices differently at high latitude, and the snap
// bound on top of this lookup is defined on haversine. the second return is
// false for an empty graph.
func (g *Graph) NearestVertex(lat, lon float64) (Index, bool) {
	if len(g.vertices) == 0 {
		return INVALID_VERTEX_ID, false
	}
	best := Index(0)
	bestDist := geo.CalculateHaversineDistance(lat, lon, g.vertices[0].lat, g.vertices[0].lon)
	for i := 1; i < len(g.vertices); i++ {
		d := geo.CalculateHaversineDistance(lat, lon, g.vertices[i].lat, g.vertices[i].lon)
		if d < bestDist {
			bestDist = d
			best = Index(i)
		}
	}
	return best, true
}
