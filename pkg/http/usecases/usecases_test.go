package usecases

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

type fakeEngine struct {
	route    *da.Route
	found    bool
	err      error
	segments []*da.RoadSegment
}

func (f *fakeEngine) FindRoute(start, end geo.Coordinate, mode pkg.VehicleMode) (*da.Route, bool, error) {
	return f.route, f.found, f.err
}

func (f *fakeEngine) Segments() []*da.RoadSegment {
	return f.segments
}

func (f *fakeEngine) GetSegmentStatus(id string) (pkg.RoadStatus, bool) {
	for _, seg := range f.segments {
		if seg.ID == id {
			return seg.GetStatus(), true
		}
	}
	return pkg.STATUS_PASSABLE, false
}

type fakeReconciler struct {
	lastSegment string
	lastStatus  pkg.RoadStatus
	lastSource  string
}

func (f *fakeReconciler) ApplyLocalEdit(segmentID string, status pkg.RoadStatus, source string) (bool, error) {
	f.lastSegment = segmentID
	f.lastStatus = status
	f.lastSource = source
	return true, nil
}

type fakeIndex struct {
	ids []string
}

func (f *fakeIndex) SearchWithinRadius(qLat, qLon, radius float64) []string {
	return f.ids
}

func TestRoutingServiceFindRoute(t *testing.T) {
	coords := []geo.Coordinate{geo.NewCoordinate(0, 0), geo.NewCoordinate(0, 0.001)}
	engine := &fakeEngine{
		route: da.NewRoute([]da.Index{0, 1}, coords, 111.19, 0.22, 111.19),
		found: true,
	}
	rs := NewRoutingService(zap.NewNop(), engine)

	eta, dist, polyline, gotCoords, found, err := rs.FindRoute(0, 0, 0, 0.001, "standard")
	require.NoError(t, err)
	require.True(t, found)
	assert.InDelta(t, 0.22, eta, 1e-9)
	assert.InDelta(t, 111.19, dist, 1e-9)
	assert.NotEmpty(t, polyline)
	assert.Len(t, gotCoords, 2)
}

func TestRoutingServiceNoRoute(t *testing.T) {
	rs := NewRoutingService(zap.NewNop(), &fakeEngine{found: false})

	_, _, _, _, found, err := rs.FindRoute(0, 0, 1, 1, "standard")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRoutingServiceRejectsUnknownMode(t *testing.T) {
	rs := NewRoutingService(zap.NewNop(), &fakeEngine{})

	_, _, _, _, _, err := rs.FindRoute(0, 0, 1, 1, "hovercraft")
	require.Error(t, err)

	var appErr *util.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, util.ErrBadParamInput, appErr.Code())
}

func TestStatusServiceNearbySegmentsRefinesCandidates(t *testing.T) {
	segments := []*da.RoadSegment{
		da.NewRoadSegment("close",
			[]geo.Coordinate{geo.NewCoordinate(0, 0), geo.NewCoordinate(0, 0.001)},
			pkg.STATUS_PASSABLE, nil),
		da.NewRoadSegment("box_overlap_but_far",
			[]geo.Coordinate{geo.NewCoordinate(0.01, 0), geo.NewCoordinate(0.01, 0.001)},
			pkg.STATUS_PASSABLE, nil),
	}
	engine := &fakeEngine{segments: segments}
	index := &fakeIndex{ids: []string{"close", "box_overlap_but_far"}}

	ss := NewStatusService(zap.NewNop(), engine, &fakeReconciler{}, index)

	// 200m radius: "close" passes the exact test, the ~1.1km one does not
	nearby := ss.NearbySegments(0.0005, 0.0005, 200)
	require.Len(t, nearby, 1)
	assert.Equal(t, "close", nearby[0].ID)
}

func TestStatusServiceListSegmentsSorted(t *testing.T) {
	engine := &fakeEngine{segments: []*da.RoadSegment{
		da.NewRoadSegment("b", []geo.Coordinate{geo.NewCoordinate(0, 0)}, pkg.STATUS_PASSABLE, nil),
		da.NewRoadSegment("a", []geo.Coordinate{geo.NewCoordinate(0, 0)}, pkg.STATUS_PASSABLE, nil),
	}}
	ss := NewStatusService(zap.NewNop(), engine, &fakeReconciler{}, &fakeIndex{})

	got := ss.ListSegments()
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "b", got[1].ID)
}

func TestStatusServiceEditStatus(t *testing.T) {
	rec := &fakeReconciler{}
	ss := NewStatusService(zap.NewNop(), &fakeEngine{}, rec, &fakeIndex{})

	changed, err := ss.EditStatus("seg1", "blocked", "operator")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "seg1", rec.lastSegment)
	assert.Equal(t, pkg.STATUS_BLOCKED, rec.lastStatus)
	assert.Equal(t, "operator", rec.lastSource)
}

func TestStatusServiceEditStatusRejectsUnknownStatus(t *testing.T) {
	ss := NewStatusService(zap.NewNop(), &fakeEngine{}, &fakeReconciler{}, &fakeIndex{})

	_, err := ss.EditStatus("seg1", "lava", "operator")
	require.Error(t, err)

	var appErr *util.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, util.ErrBadParamInput, appErr.Code())
}
