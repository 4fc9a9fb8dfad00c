package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/franzxzx/roadnet/pkg"
	"github.com/franzxzx/roadnet/pkg/assembler"
	"github.com/franzxzx/roadnet/pkg/concurrent"
	"github.com/franzxzx/roadnet/pkg/datastructure"
	"github.com/franzxzx/roadnet/pkg/engine/routing"
	"github.com/franzxzx/roadnet/pkg/feed"
	"github.com/franzxzx/roadnet/pkg/http"
	"github.com/franzxzx/roadnet/pkg/http/router/controllers"
	"github.com/franzxzx/roadnet/pkg/http/usecases"
	"github.com/franzxzx/roadnet/pkg/logger"
	"github.com/franzxzx/roadnet/pkg/parser"
	"github.com/franzxzx/roadnet/pkg/reconciler"
	"github.com/franzxzx/roadnet/pkg/spatialindex"
	"github.com/franzxzx/roadnet/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	segmentBoundingBoxPad = flag.Float64("segment_bounding_box_pad", 50.0, "segment (r-tree) bounding box padding in meters")
)

func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}

	if err := util.ReadConfig(); err != nil {
		logger.Warn("no config file found, using defaults", zap.Error(err))
	}

	viper.SetDefault("FEATURE_FILE", "./data/roads.geojson")
	viper.SetDefault("SNAPSHOT_FILE", "./data/segments.snapshot")
	viper.SetDefault("FEED_URL", "")
	viper.SetDefault("FEED_INTERVAL", "10s")
	viper.SetDefault("AVERAGE_SPEED_KMH", 30.0)
	viper.SetDefault("SUPPRESSION_WINDOW", "2s")
	viper.SetDefault("NODE_COORD_PRECISION", 9)

	segments, err := loadSegments(logger)
	if err != nil {
		panic(err)
	}
	logger.Info("road network assembled", zap.Int("segments", len(segments)))

	routingEngine := routing.NewEngine(logger, segments,
		viper.GetFloat64("AVERAGE_SPEED_KMH"), viper.GetInt("NODE_COORD_PRECISION"))

	rtree := spatialindex.NewRtree()
	rtree.Build(segments, *segmentBoundingBoxPad, logger)

	pool := concurrent.NewPool(128, 1, 8)
	hub := controllers.NewHub(pool)

	rec := reconciler.New(logger, routingEngine, viper.GetDuration("SUPPRESSION_WINDOW"))
	rec.SetOnChange(func(update datastructure.StatusUpdate) {
		hub.Broadcast(update)
	})

	ctx, cleanup, err := NewContext()
	if err != nil {
		panic(err)
	}

	if feedURL := viper.GetString("FEED_URL"); feedURL != "" {
		feedClient := feed.NewClient(logger, feedURL, viper.GetDuration("FEED_INTERVAL"), rec)
		go func() {
			if err := feedClient.Run(ctx); err != nil && err != context.Canceled {
				logger.Error("status feed poller stopped", zap.Error(err))
			}
		}()
	}

	api := http.NewServer(logger)

	routingService := usecases.NewRoutingService(logger, routingEngine)
	statusService := usecases.NewStatusService(logger, routingEngine, rec, rtree)

	api.Use(ctx,
		logger, false, routingService, statusService, hub, pool)

	signal := http.GracefulShutdown()

	logger.Info("roadnet Routing Engine Server Stopped", zap.String("signal", signal.String()))
	cleanup()
}

func loadSegments(log *zap.Logger) (map[string]*datastructure.RoadSegment, error) {
	features, err := parseFeatures(viper.GetString("FEATURE_FILE"), log)
	if err != nil {
		return nil, err
	}

	priorStatuses := loadPriorStatuses(viper.GetString("SNAPSHOT_FILE"), log)

	return assembler.NewAssembler(log).AssembleSegments(features, priorStatuses), nil
}

func parseFeatures(featureFile string, log *zap.Logger) ([]datastructure.RoadFeature, error) {
	switch {
	case strings.HasSuffix(featureFile, ".geojson") || strings.HasSuffix(featureFile, ".json"):
		return parser.ParseGeoJSON(featureFile, log)
	case strings.HasSuffix(featureFile, ".pbf"):
		return parser.ParseOSMPBF(featureFile, log)
	}
	return nil, fmt.Errorf("unsupported feature file format: %s", featureFile)
}

// loadPriorStatuses rereads the last written snapshot so segment statuses
// survive an engine restart. A missing snapshot is not an error.
func loadPriorStatuses(snapshotFile string, log *zap.Logger) map[string]pkg.RoadStatus {
	if _, err := os.Stat(snapshotFile); err != nil {
		return nil
	}
	snapshot, err := datastructure.ReadSegments(snapshotFile)
	if err != nil {
		log.Warn("could not read segment snapshot, starting with all segments passable",
			zap.String("file", snapshotFile), zap.Error(err))
		return nil
	}
	log.Info("loaded segment statuses from snapshot", zap.String("file", snapshotFile),
		zap.Int("segments", len(snapshot)))
	return datastructure.PriorStatuses(snapshot)
}

func NewContext() (context.Context, func(), error) {
	ctx, cancel := context.WithCancel(context.Background())
	cb := func() {
		cancel()
	}

	return ctx, cb, nil
}
