package usecases

import (
	"github.com/franzxzx/roadnet/pkg"
	"github.com/franzxzx/roadnet/pkg/geo"
	"github.com/franzxzx/roadnet/pkg/util"
	"go.uber.org/zap"
)

type RoutingService struct {
	log    *zap.Logger
	engine RoutingEngine
}

func NewRoutingService(log *zap.Logger, engine RoutingEngine) *RoutingService {
	return &RoutingService{
		log:    log,
		engine: engine,
	}
}

// FindRoute computes the cheapest path between two coordinates for the given
// vehicle mode. found=false with a nil error means the network offers no
// passable path between the snapped endpoints.
func (rs *RoutingService) FindRoute(origLat, origLon, dstLat, dstLon float64,
	vehicleMode string) (float64, float64, string, []geo.Coordinate, bool, error) {
	mode, ok := pkg.ParseVehicleMode(vehicleMode)
	if !ok {
		return 0, 0, "", nil, false, util.WrapErrorf(nil, util.ErrBadParamInput,
			"unknown vehicle mode %q", vehicleMode)
	}

	route, found, err := rs.engine.FindRoute(geo.NewCoordinate(origLat, origLon),
		geo.NewCoordinate(dstLat, dstLon), mode)
	if err != nil {
		return 0, 0, "", nil, false, err
	}
	if !found {
		return 0, 0, "", nil, false, nil
	}

	pathPolyline := geo.PolylineFromCoords(route.GetCoordinates())
	return route.GetEtaMinutes(), route.GetDistanceMeters(), pathPolyline,
		route.GetCoordinates(), true, nil
}
