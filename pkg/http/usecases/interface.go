package usecases

import (
	"github.com/franzxzx/roadnet/pkg"
	da "github.com/franzxzx/roadnet/pkg/datastructure"
	"github.com/franzxzx/roadnet/pkg/geo"
)

type RoutingEngine interface {
	FindRoute(start, end geo.Coordinate, mode pkg.VehicleMode) (*da.Route, bool, error)
	Segments() []*da.RoadSegment
	GetSegmentStatus(id string) (pkg.RoadStatus, bool)
}

type SpatialIndex interface {
	SearchWithinRadius(qLat, qLon, radius float64) []string
}

type StatusReconciler interface {
	ApplyLocalEdit(segmentID string, status pkg.RoadStatus, source string) (bool, error)
}
