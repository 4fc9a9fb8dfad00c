package spatialindex

import (
	"testing"

	"github.com/franzxzx/roadnet/pkg"
	da "github.com/franzxzx/roadnet/pkg/datastructure"
	"github.com/franzxzx/roadnet/pkg/geo"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestSearchWithinRadius(t *testing.T) {
	segments := map[string]*da.RoadSegment{
		"near": da.NewRoadSegment("near",
			[]geo.Coordinate{geo.NewCoordinate(0, 0), geo.NewCoordinate(0, 0.001)},
			pkg.STATUS_PASSABLE, nil),
		"far": da.NewRoadSegment("far",
			[]geo.Coordinate{geo.NewCoordinate(0.1, 0.1), geo.NewCoordinate(0.1, 0.101)},
			pkg.STATUS_PASSABLE, nil),
	}

	rt := NewRtree()
	rt.Build(segments, 10.0, zap.NewNop())

	// 200m around the origin reaches only the near segment (~11km to far)
	got := rt.SearchWithinRadius(0, 0.0005, 200)
	assert.Equal(t, []string{"near"}, got)

	// 20km reaches both
	got = rt.SearchWithinRadius(0, 0.0005, 20_000)
	assert.ElementsMatch(t, []string{"near", "far"}, got)
}

func TestSearchWithinRadiusEmptyIndex(t *testing.T) {
	rt := NewRtree()
	rt.Build(map[string]*da.RoadSegment{}, 10.0, zap.NewNop())

	assert.Empty(t, rt.SearchWithinRadius(0, 0, 1000))
}
