package assembler

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/franzxzx/roadnet/pkg"
	"github.com/franzxzx/roadnet/pkg/concurrent"
	da "github.com/franzxzx/roadnet/pkg/datastructure"
	"github.com/franzxzx/roadnet/pkg/geo"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"
)

const (
	// cutToleranceMeters treats cut points closer than this (along the line)
	// as one cut, and ignores cuts this close to either polyline endpoint.
	cutToleranceMeters = 0.01

	// onLineToleranceMeters is the residual allowed when locating an
	// intersection point back on its polyline. the points come straight from
	// the intersection of the two lines, so anything above float noise means
	// the point belongs to a different span.
	onLineToleranceMeters = 0.01
)

type Assembler struct {
	log        *zap.Logger
	precision  int
	numWorkers int
}

func NewAssembler(log *zap.Logger) *Assembler {
	return &Assembler{
		log:        log,
		precision:  pkg.DEFAULT_COORD_PRECISION,
		numWorkers: 4,
	}
}

// featurePairJob is one unordered feature pair whose polylines get
// cross-checked for intersections.
type featurePairJob struct {
	i, j int
}

type featureCut struct {
	featureIdx int
	point      geo.Coordinate
}

type pairResult struct {
	cuts []featureCut
}

// AssembleSegments turns raw road features into atomic road segments split at
// mutual intersections. malformed features are skipped individually and
// logged as a data-quality signal; assembly of the rest proceeds. segment IDs
// are a pure function of the input, so re-assembling byte-identical features
// reproduces the same IDs and persisted statuses stay valid across rebuilds.
func (a *Assembler) AssembleSegments(features []da.RoadFeature,
	priorStatuses map[string]pkg.RoadStatus) map[string]*da.RoadSegment {

	usable := make([]da.RoadFeature, 0, len(features))
	for _, f := range features {
		if !f.Valid() {
			a.log.Warn("skipping malformed road feature",
				zap.String("feature_id", f.ID),
				zap.Int("coordinates", len(f.Coordinates)))
			continue
		}
		if hw, ok := f.Properties["highway"]; ok && !pkg.IsVehicularHighway(hw) {
			continue
		}
		usable = append(usable, f)
	}

	cutsPerFeature := a.crossIntersections(usable)

	segments := make(map[string]*da.RoadSegment)
	for idx, f := range usable {
		pieces := splitPolyline(f.Coordinates, cutsPerFeature[idx])

		segIdx := 0
		for _, coords := range pieces {
			if countDistinct(coords, a.precision) < 2 {
				// degenerate zero-length sub-segment, never inserted
				continue
			}

			id := a.segmentID(f, segIdx, coords)
			status := pkg.STATUS_PASSABLE
			if prior, ok := priorStatuses[id]; ok {
				status = prior
			}

			segments[id] = da.NewRoadSegment(id, coords, status, f.Properties)
			segIdx++
		}
	}

	a.log.Info("segment assembly finished",
		zap.Int("features", len(features)),
		zap.Int("usable_features", len(usable)),
		zap.Int("segments", len(segments)))

	return segments
}

// crossIntersections computes, for every unordered feature pair, all pairwise
// line intersections, fanned out over a worker pool. the result order is
// irrelevant: cuts are ordered later by their measure along each polyline.
func (a *Assembler) crossIntersections(features []da.RoadFeature) [][]geo.Coordinate {
	cuts := make([][]geo.Coordinate, len(features))

	numPairs := len(features) * (len(features) - 1) / 2
	if numPairs == 0 {
		return cuts
	}

	pool := concurrent.NewWorkerPool[featurePairJob, pairResult](a.numWorkers, numPairs)
	pool.Start(func(job featurePairJob) pairResult {
		return pairResult{cuts: intersectFeatures(features, job.i, job.j)}
	})

	for i := 0; i < len(features); i++ {
		for j := i + 1; j < len(features); j++ {
			pool.AddJob(featurePairJob{i: i, j: j})
		}
	}
	pool.Close()
	pool.Wait()

	for res := range pool.CollectResults() {
		for _, cut := range res.cuts {
			cuts[cut.featureIdx] = append(cuts[cut.featureIdx], cut.point)
		}
	}

	return cuts
}

// intersectFeatures cross-checks every consecutive-point pair of feature i
// against every consecutive-point pair of feature j.
func intersectFeatures(features []da.RoadFeature, i, j int) []featureCut {
	var out []featureCut
	fi, fj := features[i], features[j]

	for ai := 0; ai+1 < len(fi.Coordinates); ai++ {
		for bi := 0; bi+1 < len(fj.Coordinates); bi++ {
			p, ok := geo.LineIntersection(
				fi.Coordinates[ai], fi.Coordinates[ai+1],
				fj.Coordinates[bi], fj.Coordinates[bi+1])
			if !ok {
				continue
			}
			out = append(out,
				featureCut{featureIdx: i, point: p},
				featureCut{featureIdx: j, point: p})
		}
	}

	return out
}

// splitPolyline splits coords at the given cut points into contiguous
// sub-sequences. cut points are ordered by cumulative projected distance
// along the line, deduplicated, and cuts at the polyline endpoints are
// dropped (nothing to split there).
func splitPolyline(coords []geo.Coordinate, cutPoints []geo.Coordinate) [][]geo.Coordinate {
	if len(cutPoints) == 0 {
		return [][]geo.Coordinate{coords}
	}

	cumLen := make([]float64, len(coords))
	for i := 1; i < len(coords); i++ {
		cumLen[i] = cumLen[i-1] + geo.CalculateHaversineDistance(
			coords[i-1].Lat, coords[i-1].Lon, coords[i].Lat, coords[i].Lon)
	}
	total := cumLen[len(coords)-1]

	type cut struct {
		measure float64
		segIdx  int
		point   geo.Coordinate
	}

	cuts := make([]cut, 0, len(cutPoints))
	for _, p := range cutPoints {
		measure, segIdx, ok := locateOnPolyline(p, coords, cumLen)
		if !ok {
			continue
		}
		if measure < cutToleranceMeters || measure > total-cutToleranceMeters {
			continue
		}
		cuts = append(cuts, cut{measure: measure, segIdx: segIdx, point: p})
	}

	slices.SortFunc(cuts, func(a, b cut) int {
		if a.measure < b.measure {
			return -1
		}
		if a.measure > b.measure {
			return 1
		}
		return 0
	})

	pieces := make([][]geo.Coordinate, 0, len(cuts)+1)
	current := []geo.Coordinate{coords[0]}
	vertexIdx := 1
	lastMeasure := -1.0

	for _, c := range cuts {
		if c.measure-lastMeasure < cutToleranceMeters {
			continue
		}
		lastMeasure = c.measure

		// carry over original vertices upstream of the cut
		for vertexIdx <= c.segIdx {
			current = append(current, coords[vertexIdx])
			vertexIdx++
		}
		current = append(current, c.point)
		pieces = append(pieces, current)
		current = []geo.Coordinate{c.point}
	}

	for vertexIdx < len(coords) {
		current = append(current, coords[vertexIdx])
		vertexIdx++
	}
	pieces = append(pieces, current)

	return pieces
}

// locateOnPolyline finds the cumulative projected distance of p along the
// polyline. the measure uses the clamped projection parameter on the owning
// span, not the raw chord distance from the start.
func locateOnPolyline(p geo.Coordinate, coords []geo.Coordinate,
	cumLen []float64) (float64, int, bool) {
	for i := 0; i+1 < len(coords); i++ {
		a, b := coords[i], coords[i+1]
		proj := geo.ProjectOntoSegment(p, a, b)
		// equirectangular is exact enough at centimeter scale and this runs
		// once per span per cut point.
		if geo.CalculateEuclidianDistanceEquirectangularProj(p.Lat, p.Lon, proj.Lat, proj.Lon) > onLineToleranceMeters {
			continue
		}
		t := geo.ProjectionParameter(p, a, b)
		spanLen := cumLen[i+1] - cumLen[i]
		return cumLen[i] + t*spanLen, i, true
	}
	return 0, 0, false
}

// segmentID assigns the deterministic segment ID: features carrying a stable
// external identifier get "{feature_id}_seg_{index}"; anonymous features get
// a content hash of the rounded coordinate sequence.
func (a *Assembler) segmentID(f da.RoadFeature, segIdx int, coords []geo.Coordinate) string {
	if f.ID != "" {
		return fmt.Sprintf("%s_seg_%d", f.ID, segIdx)
	}

	h := sha1.New()
	for _, c := range coords {
		fmt.Fprintf(h, "%s,%s;",
			strconv.FormatFloat(c.Lat, 'f', a.precision, 64),
			strconv.FormatFloat(c.Lon, 'f', a.precision, 64))
	}
	return "seg_" + hex.EncodeToString(h.Sum(nil))[:16]
}

func countDistinct(coords []geo.Coordinate, precision int) int {
	seen := make(map[string]struct{}, len(coords))
	for _, c := range coords {
		seen[da.QuantizeKey(c.Lat, c.Lon, precision)] = struct{}{}
	}
	return len(seen)
}
