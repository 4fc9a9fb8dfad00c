package controllers

import (
	da "github.com/franzxzx/roadnet/pkg/datastructure"
	"github.com/franzxzx/roadnet/pkg/geo"
)

type RoutingService interface {
	FindRoute(origLat, origLon, dstLat, dstLon float64, vehicleMode string) (float64, float64,
		string, []geo.Coordinate, bool, error)
}

type StatusService interface {
	ListSegments() []*da.RoadSegment
	NearbySegments(lat, lon, radiusMeters float64) []*da.RoadSegment
	EditStatus(segmentID, status, source string) (bool, error)
}
