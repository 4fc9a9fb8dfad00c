package parser

import (
	"fmt"
	"os"

	da "github.com/franzxzx/roadnet/pkg/datastructure"
	"github.com/franzxzx/roadnet/pkg/geo"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"
)

// ParseGeoJSON loads road features from a GeoJSON FeatureCollection.
// LineString and MultiLineString geometries become road features; everything
// else is skipped. properties are flattened to strings so the segment
// assembler can carry them opaquely.
func ParseGeoJSON(filename string, log *zap.Logger) ([]da.RoadFeature, error) {
	raw, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	fc, err := geojson.UnmarshalFeatureCollection(raw)
	if err != nil {
		return nil, fmt.Errorf("malformed geojson feature collection: %w", err)
	}

	features := make([]da.RoadFeature, 0, len(fc.Features))
	skipped := 0
	for _, f := range fc.Features {
		props := flattenProperties(f.Properties)
		id := featureID(f)

		switch g := f.Geometry.(type) {
		case orb.LineString:
			features = append(features, da.NewRoadFeature(id, lineToCoords(g), props))
		case orb.MultiLineString:
			for i, line := range g {
				partID := id
				if partID != "" {
					partID = fmt.Sprintf("%s_%d", id, i)
				}
				features = append(features, da.NewRoadFeature(partID, lineToCoords(line), props))
			}
		default:
			skipped++
		}
	}

	if skipped > 0 {
		log.Warn("skipped non-linestring geojson features", zap.Int("count", skipped))
	}
	log.Info("geojson features loaded", zap.Int("features", len(features)))

	return features, nil
}

func lineToCoords(line orb.LineString) []geo.Coordinate {
	coords := make([]geo.Coordinate, 0, len(line))
	for _, pt := range line {
		// geojson positions are (lon, lat)
		coords = append(coords, geo.NewCoordinate(pt.Lat(), pt.Lon()))
	}
	return coords
}

func featureID(f *geojson.Feature) string {
	if f.ID != nil {
		return fmt.Sprintf("%v", f.ID)
	}
	if id, ok := f.Properties["id"]; ok {
		return fmt.Sprintf("%v", id)
	}
	return ""
}

func flattenProperties(props geojson.Properties) map[string]string {
	out := make(map[string]string, len(props))
	for k, v := range props {
		out[k] = fmt.Sprintf("%v", v)
	}
	return out
}
