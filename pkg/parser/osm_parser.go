package parser

import (
	"context"
	"fmt"
	"os"

	"github.com/franzxzx/roadnet/pkg"
	da "github.com/franzxzx/roadnet/pkg/datastructure"
	"github.com/franzxzx/roadnet/pkg/geo"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"go.uber.org/zap"
)

type nodeCoord struct {
	lat float64
	lon float64
}

// ParseOSMPBF loads vehicular road features from an OSM PBF extract. two
// scans: the first collects node IDs referenced by accepted ways, the second
// resolves coordinates and emits one road feature per way. way IDs become the
// stable external feature identifiers.
func ParseOSMPBF(filename string, log *zap.Logger) ([]da.RoadFeature, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	wayNodes := make(map[int64]*nodeCoord)
	countWays := 0

	scanner := osmpbf.New(context.Background(), f, 0)
	for scanner.Scan() {
		o := scanner.Object()

		if o.ObjectID().Type() != osm.TypeWay {
			continue
		}
		way := o.(*osm.Way)
		if len(way.Nodes) < 2 || !acceptOsmWay(way) {
			continue
		}
		countWays++

		for _, node := range way.Nodes {
			wayNodes[int64(node.ID)] = nil
		}
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return nil, err
	}
	scanner.Close()

	log.Info("openstreetmap ways accepted", zap.Int("ways", countWays))

	if _, err := f.Seek(0, 0); err != nil {
		return nil, err
	}

	features := make([]da.RoadFeature, 0, countWays)

	scanner = osmpbf.New(context.Background(), f, 0)
	defer scanner.Close()

	for scanner.Scan() {
		o := scanner.Object()

		switch o.ObjectID().Type() {
		case osm.TypeNode:
			node := o.(*osm.Node)
			if _, ok := wayNodes[int64(node.ID)]; ok {
				wayNodes[int64(node.ID)] = &nodeCoord{lat: node.Lat, lon: node.Lon}
			}
		case osm.TypeWay:
			way := o.(*osm.Way)
			if len(way.Nodes) < 2 || !acceptOsmWay(way) {
				continue
			}

			coords := resolveWayCoords(way, wayNodes)
			if len(coords) < 2 {
				continue
			}

			props := map[string]string{
				"highway": way.Tags.Find("highway"),
			}
			if name := way.Tags.Find("name"); name != "" {
				props["name"] = name
			}

			features = append(features, da.NewRoadFeature(
				fmt.Sprintf("way_%d", way.ID), coords, props))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	log.Info("openstreetmap features loaded", zap.Int("features", len(features)))
	return features, nil
}

func acceptOsmWay(way *osm.Way) bool {
	highway := way.Tags.Find("highway")
	if highway == "" {
		return way.Tags.Find("junction") != ""
	}
	return pkg.IsVehicularHighway(highway)
}

// resolveWayCoords maps a way's node refs onto resolved coordinates. nodes
// the extract never delivered stay nil in wayNodes and are skipped; a node
// sitting exactly at (0, 0) is still a resolved node.
func resolveWayCoords(way *osm.Way, wayNodes map[int64]*nodeCoord) []geo.Coordinate {
	coords := make([]geo.Coordinate, 0, len(way.Nodes))
	for _, node := range way.Nodes {
		nc, ok := wayNodes[int64(node.ID)]
		if !ok || nc == nil {
			continue
		}
		coords = append(coords, geo.NewCoordinate(nc.lat, nc.lon))
	}
	return coords
}
