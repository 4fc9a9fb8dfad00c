package datastructure

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/dsnet/compress/bzip2"
	"github.com/franzxzx/roadnet/pkg"
	"github.com/franzxzx/roadnet/pkg/geo"
	"github.com/franzxzx/roadnet/pkg/util"
)

const segmentSnapshotHeader = "roadnet-segments v1"

// WriteSegments persists the segment set as a bzip2-compressed text snapshot.
// segments are written in ID order so byte-identical input produces
// byte-identical snapshots.
func WriteSegments(filename string, segments map[string]*RoadSegment) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	bz, err := bzip2.NewWriter(f, &bzip2.WriterConfig{})
	if err != nil {
		return err
	}
	defer bz.Close()

	w := bufio.NewWriter(bz)

	ids := make([]string, 0, len(segments))
	for id := range segments {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Fprintf(w, "%s\n", segmentSnapshotHeader)
	fmt.Fprintf(w, "%d\n", len(ids))

	for _, id := range ids {
		seg := segments[id]
		props, err := json.Marshal(seg.Properties)
		if err != nil {
			return err
		}

		fmt.Fprintf(w, "%s %d %d %s\n", seg.ID, seg.Status, len(seg.Coordinates), string(props))
		for _, c := range seg.Coordinates {
			latF := strconv.FormatFloat(c.Lat, 'f', -1, 64)
			lonF := strconv.FormatFloat(c.Lon, 'f', -1, 64)
			fmt.Fprintf(w, "%s %s\n", latF, lonF)
		}
	}

	return w.Flush()
}

// ReadSegments loads a snapshot written by WriteSegments.
func ReadSegments(filename string) (map[string]*RoadSegment, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	bz, err := bzip2.NewReader(f, nil)
	if err != nil {
		return nil, err
	}

	br := bufio.NewReader(bz)

	header, err := util.ReadLine(br)
	if err != nil {
		return nil, err
	}
	if header != segmentSnapshotHeader {
		return nil, fmt.Errorf("unexpected snapshot header %q", header)
	}

	countLine, err := util.ReadLine(br)
	if err != nil {
		return nil, err
	}
	count, err := strconv.Atoi(countLine)
	if err != nil {
		return nil, err
	}

	segments := make(map[string]*RoadSegment, count)
	for i := 0; i < count; i++ {
		line, err := util.ReadLine(br)
		if err != nil {
			return nil, err
		}

		var (
			id      string
			status  uint8
			nCoords int
		)
		propsStart := 0
		if _, err := fmt.Sscanf(line, "%s %d %d", &id, &status, &nCoords); err != nil {
			return nil, fmt.Errorf("malformed segment line %q: %w", line, err)
		}
		// properties JSON is the remainder after the third space
		spaces := 0
		for j := 0; j < len(line); j++ {
			if line[j] == ' ' {
				spaces++
				if spaces == 3 {
					propsStart = j + 1
					break
				}
			}
		}
		properties := make(map[string]string)
		if propsStart > 0 && propsStart < len(line) {
			if err := json.Unmarshal([]byte(line[propsStart:]), &properties); err != nil {
				return nil, fmt.Errorf("malformed segment properties %q: %w", line, err)
			}
		}

		coords := make([]geo.Coordinate, 0, nCoords)
		for j := 0; j < nCoords; j++ {
			coordLine, err := util.ReadLine(br)
			if err != nil {
				return nil, err
			}
			var lat, lon float64
			if _, err := fmt.Sscanf(coordLine, "%f %f", &lat, &lon); err != nil {
				return nil, fmt.Errorf("malformed coordinate line %q: %w", coordLine, err)
			}
			coords = append(coords, geo.NewCoordinate(lat, lon))
		}

		segments[id] = NewRoadSegment(id, coords, pkg.RoadStatus(status), properties)
	}

	return segments, nil
}

// PriorStatuses extracts the per-segment statuses from a snapshot, the shape
// the assembler takes as its prior-status overlay.
func PriorStatuses(segments map[string]*RoadSegment) map[string]pkg.RoadStatus {
	prior := make(map[string]pkg.RoadStatus, len(segments))
	for id, seg := range segments {
		prior[id] = seg.Status
	}
	return prior
}
