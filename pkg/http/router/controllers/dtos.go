package controllers

import (
	da "github.com/franzxzx/roadnet/pkg/datastructure"
	"github.com/franzxzx/roadnet/pkg/geo"
)

type routeRequest struct {
	OriginLat      float64 `json:"origin_lat" validate:"min=-90,max=90"`
	OriginLon      float64 `json:"origin_lon" validate:"min=-180,max=180"`
	DestinationLat float64 `json:"destination_lat" validate:"min=-90,max=90"`
	DestinationLon float64 `json:"destination_lon" validate:"min=-180,max=180"`
	VehicleMode    string  `json:"vehicle_mode" validate:"omitempty,oneof=standard tall"`
}

type routeResponse struct {
	Found          bool             `json:"found"`
	Eta            float64          `json:"eta_minutes"`
	Path           string           `json:"path"`
	Coordinates    []geo.Coordinate `json:"coordinates,omitempty"`
	DistanceMeters float64          `json:"distance_meters"`
}

func NewRouteResponse(eta, dist float64, path string, coords []geo.Coordinate) routeResponse {
	return routeResponse{
		Found:          true,
		Eta:            eta,
		Path:           path,
		Coordinates:    coords,
		DistanceMeters: dist,
	}
}

// NewNoRouteResponse is the explicit no-route result: both endpoints resolved
// to the graph but no path connects them.
func NewNoRouteResponse() routeResponse {
	return routeResponse{Found: false}
}

type segmentResponse struct {
	ID          string            `json:"id"`
	Status      string            `json:"status"`
	Coordinates []geo.Coordinate  `json:"coordinates"`
	Properties  map[string]string `json:"properties"`
}

func NewSegmentResponse(seg *da.RoadSegment) segmentResponse {
	return segmentResponse{
		ID:          seg.ID,
		Status:      seg.Status.String(),
		Coordinates: seg.Coordinates,
		Properties:  seg.Properties,
	}
}

func NewSegmentsResponse(segments []*da.RoadSegment) []segmentResponse {
	out := make([]segmentResponse, 0, len(segments))
	for _, seg := range segments {
		out = append(out, NewSegmentResponse(seg))
	}
	return out
}

type statusEditRequest struct {
	Status string `json:"status" validate:"required,oneof=passable restricted blocked"`
	Source string `json:"source" validate:"omitempty,max=64"`
}

type statusEditResponse struct {
	SegmentID string `json:"segment_id"`
	Status    string `json:"status"`
	Changed   bool   `json:"changed"`
}

// statusPush is the websocket frame sent to subscribed clients on every
// applied status change.
type statusPush struct {
	SegmentID string `json:"segment_id"`
	Status    string `json:"status"`
	UpdatedAt string `json:"updated_at"`
	Source    string `json:"source"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
