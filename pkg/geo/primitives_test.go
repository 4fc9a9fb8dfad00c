package geo

import (
	"math"
	"testing"
)

func TestProjectionParameter(t *testing.T) {
	a := NewCoordinate(0, 0)
	b := NewCoordinate(0, 1)

	tests := []struct {
		name string
		p    Coordinate
		want float64
	}{
		{"midpoint", NewCoordinate(0.5, 0.5), 0.5},
		{"before start clamps to 0", NewCoordinate(0, -2), 0},
		{"past end clamps to 1", NewCoordinate(0, 3), 1},
		{"on start", NewCoordinate(0, 0), 0},
		{"on end", NewCoordinate(0, 1), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProjectionParameter(tt.p, a, b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ProjectionParameter = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProjectionParameterDegenerateSegment(t *testing.T) {
	a := NewCoordinate(1, 1)
	if got := ProjectionParameter(NewCoordinate(5, 5), a, a); got != 0 {
		t.Errorf("degenerate segment should project to t=0, got %v", got)
	}
}

func TestPointToLineDistance(t *testing.T) {
	a := NewCoordinate(0, 0)
	b := NewCoordinate(0, 0.01)

	// 0.001 deg of latitude is about 111.19 m
	d := PointToLineDistance(NewCoordinate(0.001, 0.005), a, b)
	if math.Abs(d-111.19) > 0.5 {
		t.Errorf("perpendicular distance = %v, want ~111.19", d)
	}

	// beyond the segment end the nearest point is the endpoint itself
	d = PointToLineDistance(NewCoordinate(0, 0.02), a, b)
	want := CalculateHaversineDistance(0, 0.02, 0, 0.01)
	if math.Abs(d-want) > 1e-6 {
		t.Errorf("distance past end = %v, want %v", d, want)
	}
}

func TestLineIntersection(t *testing.T) {
	tests := []struct {
		name       string
		a, b, c, d Coordinate
		wantPoint  Coordinate
		wantOK     bool
	}{
		{
			name: "perpendicular cross",
			a:    NewCoordinate(0, -1), b: NewCoordinate(0, 1),
			c: NewCoordinate(-1, 0), d: NewCoordinate(1, 0),
			wantPoint: NewCoordinate(0, 0), wantOK: true,
		},
		{
			name: "diagonal cross",
			a:    NewCoordinate(0, 0), b: NewCoordinate(1, 1),
			c: NewCoordinate(1, 0), d: NewCoordinate(0, 1),
			wantPoint: NewCoordinate(0.5, 0.5), wantOK: true,
		},
		{
			name: "parallel",
			a:    NewCoordinate(0, 0), b: NewCoordinate(0, 1),
			c: NewCoordinate(1, 0), d: NewCoordinate(1, 1),
			wantOK: false,
		},
		{
			name: "would cross beyond segment range",
			a:    NewCoordinate(0, 0), b: NewCoordinate(0, 1),
			c: NewCoordinate(1, 2), d: NewCoordinate(-1, 2),
			wantOK: false,
		},
		{
			name: "touching at shared endpoint",
			a:    NewCoordinate(0, 0), b: NewCoordinate(0, 1),
			c: NewCoordinate(0, 1), d: NewCoordinate(1, 1),
			wantPoint: NewCoordinate(0, 1), wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := LineIntersection(tt.a, tt.b, tt.c, tt.d)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if math.Abs(got.Lat-tt.wantPoint.Lat) > 1e-9 || math.Abs(got.Lon-tt.wantPoint.Lon) > 1e-9 {
				t.Errorf("intersection = %v, want %v", got, tt.wantPoint)
			}
		})
	}
}

func TestPointInPolygon(t *testing.T) {
	square := []Coordinate{
		NewCoordinate(0, 0),
		NewCoordinate(0, 2),
		NewCoordinate(2, 2),
		NewCoordinate(2, 0),
	}

	tests := []struct {
		name string
		p    Coordinate
		want bool
	}{
		{"center", NewCoordinate(1, 1), true},
		{"outside right", NewCoordinate(1, 3), false},
		{"outside above", NewCoordinate(3, 1), false},
		{"near corner inside", NewCoordinate(1.9, 1.9), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PointInPolygon(tt.p, square); got != tt.want {
				t.Errorf("PointInPolygon(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestPointInPolygonConcave(t *testing.T) {
	// u-shape: the notch between the prongs is outside
	ring := []Coordinate{
		NewCoordinate(0, 0),
		NewCoordinate(3, 0),
		NewCoordinate(3, 1),
		NewCoordinate(1, 1),
		NewCoordinate(1, 2),
		NewCoordinate(3, 2),
		NewCoordinate(3, 3),
		NewCoordinate(0, 3),
	}

	if !PointInPolygon(NewCoordinate(0.5, 1.5), ring) {
		t.Error("point in the base of the u-shape should be inside")
	}
	if PointInPolygon(NewCoordinate(2, 1.5), ring) {
		t.Error("point in the notch should be outside")
	}
}
