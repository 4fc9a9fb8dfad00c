package routing

import (
	"errors"
	"testing"

	"github.com/franzxzx/roadnet/pkg"
	da "github.com/franzxzx/roadnet/pkg/datastructure"
	"github.com/franzxzx/roadnet/pkg/geo"
	"github.com/franzxzx/roadnet/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chainSegments() map[string]*da.RoadSegment {
	// a -- b -- c -- d along the equator, 111m per hop
	return map[string]*da.RoadSegment{
		"ab": segmentWithStatus("ab", pkg.STATUS_PASSABLE,
			geo.NewCoordinate(0, 0), geo.NewCoordinate(0, 0.001)),
		"bc": segmentWithStatus("bc", pkg.STATUS_PASSABLE,
			geo.NewCoordinate(0, 0.001), geo.NewCoordinate(0, 0.002)),
		"cd": segmentWithStatus("cd", pkg.STATUS_PASSABLE,
			geo.NewCoordinate(0, 0.002), geo.NewCoordinate(0, 0.003)),
	}
}

func TestFindRouteHappyPath(t *testing.T) {
	engine := NewEngine(zap.NewNop(), chainSegments(), 30.0, 0)

	route, found, err := engine.FindRoute(
		geo.NewCoordinate(0, 0), geo.NewCoordinate(0, 0.003), pkg.MODE_STANDARD)

	require.NoError(t, err)
	require.True(t, found)
	require.NotNil(t, route)

	coords := route.GetCoordinates()
	require.Len(t, coords, 4)
	assert.InDelta(t, 0.0, coords[0].Lon, 1e-9)
	assert.InDelta(t, 0.003, coords[3].Lon, 1e-9)

	// 333.6m at 30 km/h is about 0.67 minutes
	assert.InDelta(t, 333.58, route.GetDistanceMeters(), 0.5)
	assert.InDelta(t, 0.667, route.GetEtaMinutes(), 0.01)
}

func TestFindRouteSnapsToNearestVertex(t *testing.T) {
	engine := NewEngine(zap.NewNop(), chainSegments(), 30.0, 0)

	// both query points sit ~20m off the road
	route, found, err := engine.FindRoute(
		geo.NewCoordinate(0.0002, 0.0001), geo.NewCoordinate(0.0002, 0.0029),
		pkg.MODE_STANDARD)

	require.NoError(t, err)
	require.True(t, found)

	coords := route.GetCoordinates()
	assert.InDelta(t, 0.0, coords[0].Lon, 1e-9)
	assert.InDelta(t, 0.003, coords[len(coords)-1].Lon, 1e-9)
}

func TestFindRouteNoRouteAfterBlocking(t *testing.T) {
	engine := NewEngine(zap.NewNop(), chainSegments(), 30.0, 0)

	changed := engine.SetSegmentStatus("bc", pkg.STATUS_BLOCKED)
	require.True(t, changed)

	route, found, err := engine.FindRoute(
		geo.NewCoordinate(0, 0), geo.NewCoordinate(0, 0.003), pkg.MODE_STANDARD)

	// an unreachable destination is a result, not an error
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, route)
}

func TestFindRouteRecoversWhenSegmentReopens(t *testing.T) {
	engine := NewEngine(zap.NewNop(), chainSegments(), 30.0, 0)

	engine.SetSegmentStatus("bc", pkg.STATUS_BLOCKED)
	_, found, err := engine.FindRoute(
		geo.NewCoordinate(0, 0), geo.NewCoordinate(0, 0.003), pkg.MODE_STANDARD)
	require.NoError(t, err)
	require.False(t, found)

	// reopening must invalidate the cached graph
	engine.SetSegmentStatus("bc", pkg.STATUS_PASSABLE)
	route, found, err := engine.FindRoute(
		geo.NewCoordinate(0, 0), geo.NewCoordinate(0, 0.003), pkg.MODE_STANDARD)
	require.NoError(t, err)
	require.True(t, found)
	assert.NotNil(t, route)
}

func TestFindRouteLookupFailureFarFromNetwork(t *testing.T) {
	engine := NewEngine(zap.NewNop(), chainSegments(), 30.0, 0)

	// ~111km away from any vertex, far beyond the lookup bound
	route, found, err := engine.FindRoute(
		geo.NewCoordinate(1.0, 0), geo.NewCoordinate(0, 0.003), pkg.MODE_STANDARD)

	require.Error(t, err)
	assert.False(t, found)
	assert.Nil(t, route)

	var appErr *util.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, util.ErrNotFound, appErr.Code())
}

func TestFindRouteEmptyNetwork(t *testing.T) {
	engine := NewEngine(zap.NewNop(), map[string]*da.RoadSegment{}, 30.0, 0)

	route, found, err := engine.FindRoute(
		geo.NewCoordinate(0, 0), geo.NewCoordinate(0, 0.001), pkg.MODE_STANDARD)

	require.Error(t, err)
	assert.False(t, found)
	assert.Nil(t, route)
}

func TestFindRouteModeDependentPreference(t *testing.T) {
	a := geo.NewCoordinate(0, 0)
	b := geo.NewCoordinate(0, 0.002)
	c := geo.NewCoordinate(0.001, 0.001)

	segments := map[string]*da.RoadSegment{
		"direct": segmentWithStatus("direct", pkg.STATUS_RESTRICTED, a, b),
		"via1":   segmentWithStatus("via1", pkg.STATUS_PASSABLE, a, c),
		"via2":   segmentWithStatus("via2", pkg.STATUS_PASSABLE, c, b),
	}
	engine := NewEngine(zap.NewNop(), segments, 30.0, 0)

	standard, found, err := engine.FindRoute(a, b, pkg.MODE_STANDARD)
	require.NoError(t, err)
	require.True(t, found)
	assert.Len(t, standard.GetCoordinates(), 3)

	tall, found, err := engine.FindRoute(a, b, pkg.MODE_TALL)
	require.NoError(t, err)
	require.True(t, found)
	assert.Len(t, tall.GetCoordinates(), 2)
}

func TestSetSegmentStatusNoOpForSameStatus(t *testing.T) {
	engine := NewEngine(zap.NewNop(), chainSegments(), 30.0, 0)

	assert.False(t, engine.SetSegmentStatus("ab", pkg.STATUS_PASSABLE))
	assert.False(t, engine.SetSegmentStatus("missing", pkg.STATUS_BLOCKED))
	assert.True(t, engine.SetSegmentStatus("ab", pkg.STATUS_RESTRICTED))
}

func TestGetSegmentStatus(t *testing.T) {
	engine := NewEngine(zap.NewNop(), chainSegments(), 30.0, 0)

	status, ok := engine.GetSegmentStatus("ab")
	require.True(t, ok)
	assert.Equal(t, pkg.STATUS_PASSABLE, status)

	_, ok = engine.GetSegmentStatus("missing")
	assert.False(t, ok)
}

func TestFindRouteSkipsLongerDirectSegment(t *testing.T) {
	// the direct a-b segment bulges way off the straight line (~488m of
	// road), so the two-hop path through c (~205m) must win even though
	// it crosses an extra node.
	a := geo.NewCoordinate(0, 0)
	b := geo.NewCoordinate(0, 0.0018)
	c := geo.NewCoordinate(0.0002, 0.0009)
	segments := map[string]*da.RoadSegment{
		"direct": segmentWithStatus("direct", pkg.STATUS_PASSABLE,
			a, geo.NewCoordinate(0.002, 0.0009), b),
		"ac": segmentWithStatus("ac", pkg.STATUS_PASSABLE, a, c),
		"cb": segmentWithStatus("cb", pkg.STATUS_PASSABLE, c, b),
	}
	engine := NewEngine(zap.NewNop(), segments, 30.0, 0)

	route, found, err := engine.FindRoute(a, b, pkg.MODE_STANDARD)
	require.NoError(t, err)
	require.True(t, found)

	coords := route.GetCoordinates()
	require.Len(t, coords, 3)
	assert.InDelta(t, c.Lat, coords[1].Lat, 1e-9)
	assert.InDelta(t, c.Lon, coords[1].Lon, 1e-9)
	assert.InDelta(t, 205.1, route.GetDistanceMeters(), 1.0)
}
