package datastructure

import (
	"github.com/franzxzx/roadnet/pkg/geo"
)

// Route is the result of a successful path search: the vertex path and its
// physical distance/ETA aggregates. distance is recomputed from haversine
// between consecutive coordinates, independent of the cost metric, since cost
// is not physical distance under restricted multipliers.
type Route struct {
	vertices    []Index
	coordinates []geo.Coordinate
	distance    float64 // meters
	eta         float64 // minutes
	cost        float64 // internal search cost, status- and mode-weighted
}

func NewRoute(vertices []Index, coordinates []geo.Coordinate, distance, eta, cost float64) *Route {
	return &Route{
		vertices:    vertices,
		coordinates: coordinates,
		distance:    distance,
		eta:         eta,
		cost:        cost,
	}
}

func (r *Route) GetVertices() []Index {
	return r.vertices
}

func (r *Route) GetCoordinates() []geo.Coordinate {
	return r.coordinates
}

func (r *Route) GetDistanceMeters() float64 {
	return r.distance
}

func (r *Route) GetEtaMinutes() float64 {
	return r.eta
}

func (r *Route) GetCost() float64 {
	return r.cost
}

// RouteDistance sums haversine distances between consecutive coordinates.
func RouteDistance(coords []geo.Coordinate) float64 {
	total := 0.0
	for i := 0; i+1 < len(coords); i++ {
		total += geo.CalculateHaversineDistance(coords[i].Lat, coords[i].Lon,
			coords[i+1].Lat, coords[i+1].Lon)
	}
	return total
}

// EtaMinutes converts a distance in meters to minutes at avgSpeedKmh.
func EtaMinutes(distanceMeters, avgSpeedKmh float64) float64 {
	if avgSpeedKmh <= 0 {
		return 0
	}
	return distanceMeters / 1000.0 / avgSpeedKmh * 60.0
}
