package datastructure

import (
	"math"
	"time"

	"github.com/franzxzx/roadnet/pkg"
	"github.com/franzxzx/roadnet/pkg/geo"
)

// RoadFeature is a raw, externally supplied road polyline. read-only input of
// segment assembly.
type RoadFeature struct {
	ID          string            `json:"id"`
	Coordinates []geo.Coordinate  `json:"coordinates"`
	Properties  map[string]string `json:"properties"`
}

func NewRoadFeature(id string, coordinates []geo.Coordinate, properties map[string]string) RoadFeature {
	if properties == nil {
		properties = make(map[string]string)
	}
	return RoadFeature{
		ID:          id,
		Coordinates: coordinates,
		Properties:  properties,
	}
}

// Valid reports whether the feature can participate in assembly: at least two
// coordinates, all of them finite and inside lat/lon range. invalid features
// are skipped as a data-quality signal, never a fatal error.
func (f RoadFeature) Valid() bool {
	if len(f.Coordinates) < 2 {
		return false
	}
	for _, c := range f.Coordinates {
		if math.IsNaN(c.Lat) || math.IsNaN(c.Lon) ||
			math.IsInf(c.Lat, 0) || math.IsInf(c.Lon, 0) {
			return false
		}
		if c.Lat < -90 || c.Lat > 90 || c.Lon < -180 || c.Lon > 180 {
			return false
		}
	}
	return true
}

// RoadSegment is the atomic routable unit: a piece of road between two
// topological junctions carrying a single passability status. segments are
// created by the assembler and mutated only through SetStatus.
type RoadSegment struct {
	ID          string            `json:"id"`
	Coordinates []geo.Coordinate  `json:"coordinates"`
	Status      pkg.RoadStatus    `json:"status"`
	Properties  map[string]string `json:"properties"`
}

func NewRoadSegment(id string, coordinates []geo.Coordinate, status pkg.RoadStatus,
	properties map[string]string) *RoadSegment {
	if properties == nil {
		properties = make(map[string]string)
	}
	return &RoadSegment{
		ID:          id,
		Coordinates: coordinates,
		Status:      status,
		Properties:  properties,
	}
}

func (s *RoadSegment) GetStatus() pkg.RoadStatus {
	return s.Status
}

// SetStatus replaces the status field wholesale. callers within one event
// tick always observe a complete value, never a partial write.
func (s *RoadSegment) SetStatus(status pkg.RoadStatus) {
	s.Status = status
}

// Length returns the polyline length in meters.
func (s *RoadSegment) Length() float64 {
	total := 0.0
	for i := 0; i+1 < len(s.Coordinates); i++ {
		p, q := s.Coordinates[i], s.Coordinates[i+1]
		total += geo.CalculateHaversineDistance(p.Lat, p.Lon, q.Lat, q.Lon)
	}
	return total
}

// StatusUpdate is one append-only event from the external status feed or a
// local edit. only the most recent per segment matters.
type StatusUpdate struct {
	SegmentID string         `json:"segment_id"`
	Status    pkg.RoadStatus `json:"status"`
	UpdatedAt time.Time      `json:"updated_at"`
	Source    string         `json:"source"`
}

func NewStatusUpdate(segmentID string, status pkg.RoadStatus, updatedAt time.Time,
	source string) StatusUpdate {
	return StatusUpdate{
		SegmentID: segmentID,
		Status:    status,
		UpdatedAt: updatedAt,
		Source:    source,
	}
}
