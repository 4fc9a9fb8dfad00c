package geo

import (
	"testing"
)

func TestPolylineFromCoords(t *testing.T) {
	// reference example from the encoded polyline format spec
	coords := []Coordinate{
		NewCoordinate(38.5, -120.2),
		NewCoordinate(40.7, -120.95),
		NewCoordinate(43.252, -126.453),
	}

	got := PolylineFromCoords(coords)
	want := "_p~iF~ps|U_ulLnnqC_mqNvxq`@"
	if got != want {
		t.Errorf("PolylineFromCoords = %q, want %q", got, want)
	}
}

func TestPolylineFromCoordsEmpty(t *testing.T) {
	if got := PolylineFromCoords(nil); got != "" {
		t.Errorf("empty input should encode to empty string, got %q", got)
	}
}
