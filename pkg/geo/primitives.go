package geo

import (
	"math"
)

const (
	// EPS guards the near-parallel denominator in segment intersection.
	// coordinates are decimal degrees, so cross products of city-scale
	// segments are far above this when the lines genuinely cross.
	EPS = 1e-12
)

// ProjectionParameter returns the scalar t, clamped to [0,1], such that
// a + t*(b-a) is the closest point on segment [a,b] to p. degenerates to 0
// when a == b.
func ProjectionParameter(p, a, b Coordinate) float64 {
	dx := b.Lon - a.Lon
	dy := b.Lat - a.Lat
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return 0
	}

	t := ((p.Lon-a.Lon)*dx + (p.Lat-a.Lat)*dy) / lenSq
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// ProjectOntoSegment returns the closest point on segment [a,b] to p.
func ProjectOntoSegment(p, a, b Coordinate) Coordinate {
	t := ProjectionParameter(p, a, b)
	return NewCoordinate(a.Lat+t*(b.Lat-a.Lat), a.Lon+t*(b.Lon-a.Lon))
}

// PointToLineDistance returns the shortest distance in meters from p to
// segment [a,b]. when a == b this is the point-point haversine distance.
func PointToLineDistance(p, a, b Coordinate) float64 {
	proj := ProjectOntoSegment(p, a, b)
	return CalculateHaversineDistance(p.Lat, p.Lon, proj.Lat, proj.Lon)
}

// LineIntersection returns the intersection point of segments [a,b] and
// [c,d] if it lies within both segments' parameter range. parallel and
// near-parallel pairs (denominator below EPS) report no intersection.
func LineIntersection(a, b, c, d Coordinate) (Coordinate, bool) {
	r := NewCoordinate(b.Lat-a.Lat, b.Lon-a.Lon)
	s := NewCoordinate(d.Lat-c.Lat, d.Lon-c.Lon)

	denom := r.Lon*s.Lat - r.Lat*s.Lon
	if math.Abs(denom) < EPS {
		return Coordinate{}, false
	}

	t := ((c.Lon-a.Lon)*s.Lat - (c.Lat-a.Lat)*s.Lon) / denom
	u := ((c.Lon-a.Lon)*r.Lat - (c.Lat-a.Lat)*r.Lon) / denom

	if t < 0 || t > 1 || u < 0 || u > 1 {
		return Coordinate{}, false
	}

	return NewCoordinate(a.Lat+t*r.Lat, a.Lon+t*r.Lon), true
}

// PointInPolygon reports whether p lies inside the polygon ring using ray
// casting. behavior for points exactly on the boundary is unspecified.
func PointInPolygon(p Coordinate, ring []Coordinate) bool {
	inside := false
	n := len(ring)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		pi, pj := ring[i], ring[j]
		if (pi.Lat > p.Lat) != (pj.Lat > p.Lat) &&
			p.Lon < (pj.Lon-pi.Lon)*(p.Lat-pi.Lat)/(pj.Lat-pi.Lat)+pi.Lon {
			inside = !inside
		}
	}
	return inside
}
