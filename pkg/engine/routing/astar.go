package routing

import (
	"github.com/franzxzx/roadnet/pkg"
	da "github.com/franzxzx/roadnet/pkg/datastructure"
	"github.com/franzxzx/roadnet/pkg/geo"
	"github.com/franzxzx/roadnet/pkg/util"
)

type vertexInfo struct {
	g      float64
	parent da.Index
}

// AstarSearch runs A* over one built graph. states are vertex indices,
// g(n) the best known cost from the start, h(n) the haversine distance to the
// goal.
//
// in tall mode the restricted multiplier (0.5) sits below 1.0, so haversine
// can exceed true edge cost along restricted stretches and the heuristic is
// not admissible there; the search can return a suboptimal path in that mode.
type AstarSearch struct {
	graph *da.Graph

	info map[da.Index]*vertexInfo
	pq   *da.MinHeap[da.Index]

	pqNodes map[da.Index]*da.PriorityQueueNode[da.Index]

	numSettledNodes int
}

func NewAstarSearch(graph *da.Graph) *AstarSearch {
	return &AstarSearch{
		graph:   graph,
		info:    make(map[da.Index]*vertexInfo),
		pq:      da.NewFourAryHeap[da.Index](),
		pqNodes: make(map[da.Index]*da.PriorityQueueNode[da.Index]),
	}
}

// ShortestPath searches from start to goal and returns the vertex path
// (inclusive of both endpoints) and its internal cost. found=false is the
// explicit no-route result: the open set drained before reaching the goal.
func (as *AstarSearch) ShortestPath(start, goal da.Index) ([]da.Index, float64, bool) {
	goalLat, goalLon := as.graph.GetVertexCoordinates(goal)

	h := func(v da.Index) float64 {
		lat, lon := as.graph.GetVertexCoordinates(v)
		return geo.CalculateHaversineDistance(lat, lon, goalLat, goalLon)
	}

	as.info[start] = &vertexInfo{g: 0, parent: da.INVALID_VERTEX_ID}
	startNode := da.NewPriorityQueueNode(h(start), start)
	as.pqNodes[start] = startNode
	as.pq.Insert(startNode)

	for !as.pq.IsEmpty() {
		minNode, err := as.pq.ExtractMin()
		if err != nil {
			break
		}
		u := minNode.GetItem()
		as.numSettledNodes++

		if u == goal {
			return as.reconstructPath(start, goal), as.info[goal].g, true
		}

		gU := as.info[u].g

		as.graph.ForEdgesOf(u, func(e da.Edge) {
			v := e.GetTo()
			newG := gU + e.GetCost()
			if newG >= pkg.INF_WEIGHT {
				return
			}

			prev, visited := as.info[v]
			if visited && newG >= prev.g {
				return
			}

			as.info[v] = &vertexInfo{g: newG, parent: u}
			priority := newG + h(v)

			if node, inQueue := as.pqNodes[v]; inQueue && node.GetPos() >= 0 {
				as.pq.DecreaseKey(node, priority)
			} else {
				node := da.NewPriorityQueueNode(priority, v)
				as.pqNodes[v] = node
				as.pq.Insert(node)
			}
		})
	}

	return nil, 0, false
}

func (as *AstarSearch) reconstructPath(start, goal da.Index) []da.Index {
	path := make([]da.Index, 0)
	for cur := goal; ; cur = as.info[cur].parent {
		path = append(path, cur)
		if cur == start {
			break
		}
	}
	return util.ReverseG(path)
}

func (as *AstarSearch) NumSettledNodes() int {
	return as.numSettledNodes
}
