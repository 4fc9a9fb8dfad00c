package datastructure

import (
	"testing"

	"github.com/franzxzx/roadnet/pkg/geo"
)

func TestNearestVertexPicksHaversineMinimum(t *testing.T) {
	g := NewGraph(0)

	// at 60N the equirectangular approximation overestimates east-west
	// distance, so it would rank b ahead of a here. on haversine a is
	// ~11.6m nearer.
	a := g.GetOrCreateVertex(60.0, 4.0)
	b := g.GetOrCreateVertex(61.9998, 0.0)

	got, ok := g.NearestVertex(60.0, 0.0)
	if !ok {
		t.Fatal("NearestVertex reported empty graph")
	}
	if got != a {
		t.Fatalf("NearestVertex = %v, want %v", got, a)
	}

	if got == b {
		t.Fatal("NearestVertex ranked by the equirectangular approximation")
	}

	gotLat, gotLon := g.GetVertexCoordinates(got)
	nearestDist := geo.CalculateHaversineDistance(60.0, 0.0, gotLat, gotLon)
	for i := 0; i < g.NumberOfVertices(); i++ {
		lat, lon := g.GetVertexCoordinates(Index(i))
		if geo.CalculateHaversineDistance(60.0, 0.0, lat, lon) < nearestDist {
			t.Fatalf("vertex %d is nearer than the returned vertex", i)
		}
	}
}

func TestNearestVertexEmptyGraph(t *testing.T) {
	g := NewGraph(0)
	if id, ok := g.NearestVertex(0, 0); ok || id != INVALID_VERTEX_ID {
		t.Fatalf("got (%v, %v), want (INVALID_VERTEX_ID, false)", id, ok)
	}
}
