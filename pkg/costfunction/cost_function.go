package costfunction

import (
	"github.com/franzxzx/roadnet/pkg"
)

// CostFunction maps a segment's passability status to the multiplier applied
// to its haversine edge lengths for a given vehicle mode.
type CostFunction interface {
	StatusMultiplier(status pkg.RoadStatus) float64
	Mode() pkg.VehicleMode
}

// StatusCostFunction implements the status x mode multiplier table:
//
//	mode     | passable | restricted
//	standard |   1.0    |    3.0
//	tall     |   1.0    |    0.5
//
// blocked segments never reach the cost function; the graph builder drops
// them unconditionally.
type StatusCostFunction struct {
	mode pkg.VehicleMode
}

func NewStatusCostFunction(mode pkg.VehicleMode) *StatusCostFunction {
	return &StatusCostFunction{mode: mode}
}

func (cf *StatusCostFunction) Mode() pkg.VehicleMode {
	return cf.mode
}

func (cf *StatusCostFunction) StatusMultiplier(status pkg.RoadStatus) float64 {
	switch status {
	case pkg.STATUS_RESTRICTED:
		if cf.mode == pkg.MODE_TALL {
			return pkg.RESTRICTED_MULTIPLIER_TALL
		}
		return pkg.RESTRICTED_MULTIPLIER_STANDARD
	case pkg.STATUS_BLOCKED:
		return pkg.INF_WEIGHT
	default:
		return 1.0
	}
}
