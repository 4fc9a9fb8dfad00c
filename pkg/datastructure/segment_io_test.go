package datastructure

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/franzxzx/roadnet/pkg"
	"github.com/franzxzx/roadnet/pkg/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSegments() map[string]*RoadSegment {
	return map[string]*RoadSegment{
		"way_1_seg_0": NewRoadSegment("way_1_seg_0",
			[]geo.Coordinate{geo.NewCoordinate(-6.2, 106.8), geo.NewCoordinate(-6.201, 106.801)},
			pkg.STATUS_PASSABLE, map[string]string{"highway": "residential", "name": "Jalan Sudirman"}),
		"way_2_seg_0": NewRoadSegment("way_2_seg_0",
			[]geo.Coordinate{geo.NewCoordinate(-6.201, 106.801), geo.NewCoordinate(-6.202, 106.802), geo.NewCoordinate(-6.203, 106.803)},
			pkg.STATUS_BLOCKED, map[string]string{}),
		"seg_0123456789abcdef": NewRoadSegment("seg_0123456789abcdef",
			[]geo.Coordinate{geo.NewCoordinate(0, 0), geo.NewCoordinate(0.000000001, 0.000000001)},
			pkg.STATUS_RESTRICTED, nil),
	}
}

func TestWriteReadSegmentsRoundtrip(t *testing.T) {
	file := filepath.Join(t.TempDir(), "segments.snapshot")

	original := sampleSegments()
	require.NoError(t, WriteSegments(file, original))

	loaded, err := ReadSegments(file)
	require.NoError(t, err)
	require.Len(t, loaded, len(original))

	for id, seg := range original {
		got, ok := loaded[id]
		require.True(t, ok, "segment %s missing after roundtrip", id)
		assert.Equal(t, seg.Status, got.Status)
		assert.Equal(t, seg.Properties, got.Properties)
		require.Len(t, got.Coordinates, len(seg.Coordinates))
		for i := range seg.Coordinates {
			assert.Equal(t, seg.Coordinates[i].Lat, got.Coordinates[i].Lat)
			assert.Equal(t, seg.Coordinates[i].Lon, got.Coordinates[i].Lon)
		}
	}
}

func TestWriteSegmentsDeterministicBytes(t *testing.T) {
	dir := t.TempDir()
	fileA := filepath.Join(dir, "a.snapshot")
	fileB := filepath.Join(dir, "b.snapshot")

	require.NoError(t, WriteSegments(fileA, sampleSegments()))
	require.NoError(t, WriteSegments(fileB, sampleSegments()))

	bytesA, err := os.ReadFile(fileA)
	require.NoError(t, err)
	bytesB, err := os.ReadFile(fileB)
	require.NoError(t, err)
	assert.Equal(t, bytesA, bytesB)
}

func TestReadSegmentsRejectsWrongHeader(t *testing.T) {
	file := filepath.Join(t.TempDir(), "bogus.snapshot")
	require.NoError(t, os.WriteFile(file, []byte("not a snapshot"), 0o644))

	_, err := ReadSegments(file)
	assert.Error(t, err)
}

func TestPriorStatuses(t *testing.T) {
	prior := PriorStatuses(sampleSegments())

	assert.Equal(t, pkg.STATUS_PASSABLE, prior["way_1_seg_0"])
	assert.Equal(t, pkg.STATUS_BLOCKED, prior["way_2_seg_0"])
	assert.Equal(t, pkg.STATUS_RESTRICTED, prior["seg_0123456789abcdef"])
}
