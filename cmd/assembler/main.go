package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/franzxzx/roadnet/pkg"
	"github.com/franzxzx/roadnet/pkg/assembler"
	"github.com/franzxzx/roadnet/pkg/datastructure"
	"github.com/franzxzx/roadnet/pkg/logger"
	"github.com/franzxzx/roadnet/pkg/parser"
	"go.uber.org/zap"
)

var (
	featureFile  = flag.String("feature_file", "./data/roads.geojson", "raw road features (.geojson or .osm.pbf)")
	snapshotFile = flag.String("snapshot_file", "./data/segments.snapshot", "output segment snapshot")
	priorFile    = flag.String("prior_snapshot", "", "optional previous snapshot whose statuses carry over")
)

func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}

	var features []datastructure.RoadFeature
	switch {
	case strings.HasSuffix(*featureFile, ".geojson") || strings.HasSuffix(*featureFile, ".json"):
		features, err = parser.ParseGeoJSON(*featureFile, logger)
	case strings.HasSuffix(*featureFile, ".pbf"):
		features, err = parser.ParseOSMPBF(*featureFile, logger)
	default:
		err = fmt.Errorf("unsupported feature file format: %s", *featureFile)
	}
	if err != nil {
		panic(err)
	}

	var priorStatuses map[string]pkg.RoadStatus
	if *priorFile != "" {
		if _, statErr := os.Stat(*priorFile); statErr == nil {
			prior, readErr := datastructure.ReadSegments(*priorFile)
			if readErr != nil {
				panic(readErr)
			}
			priorStatuses = datastructure.PriorStatuses(prior)
		}
	}

	segments := assembler.NewAssembler(logger).AssembleSegments(features, priorStatuses)

	if err := datastructure.WriteSegments(*snapshotFile, segments); err != nil {
		panic(err)
	}

	logger.Info("segment snapshot written", zap.String("file", *snapshotFile),
		zap.Int("features", len(features)), zap.Int("segments", len(segments)))
}
