package geo

import (
	"github.com/twpayne/go-polyline"
)

// PolylineFromCoords encodes coordinates as a google encoded polyline string.
func PolylineFromCoords(coords []Coordinate) string {
	buf := make([][]float64, len(coords))
	for i, c := range coords {
		buf[i] = []float64{c.Lat, c.Lon}
	}
	return string(polyline.EncodeCoords(buf))
}
