package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	helper "github.com/franzxzx/roadnet/pkg/http/router/routerhelper"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

type roadnetAPI struct {
	routingService RoutingService
	statusService  StatusService
	log            *zap.Logger
}

func New(routingService RoutingService, statusService StatusService, log *zap.Logger) *roadnetAPI {
	return &roadnetAPI{
		routingService: routingService,
		statusService:  statusService,
		log:            log,
	}
}

func (api *roadnetAPI) Routes(group *helper.RouteGroup) {
	group.GET("/route", api.computeRoute)
	group.GET("/segments", api.listSegments)
	group.GET("/segments/nearby", api.nearbySegments)
	group.POST("/segments/:id/status", api.editSegmentStatus)
}

func (api *roadnetAPI) computeRoute(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request routeRequest
		err     error
	)

	query := r.URL.Query()

	request.OriginLat, err = strconv.ParseFloat(query.Get("origin_lat"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("origin_lat is required and must be a valid float"))
		return
	}
	request.OriginLon, err = strconv.ParseFloat(query.Get("origin_lon"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("origin_lon is required and must be a valid float"))
		return
	}
	request.DestinationLat, err = strconv.ParseFloat(query.Get("destination_lat"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("destination_lat is required and must be a valid float"))
		return
	}
	request.DestinationLon, err = strconv.ParseFloat(query.Get("destination_lon"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("destination_lon is required and must be a valid float"))
		return
	}
	request.VehicleMode = query.Get("vehicle_mode")

	validate := validator.New()
	if err := validate.Struct(request); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		vvString := []string{}
		for _, v := range vv {
			vvString = append(vvString, v.Error())
		}
		api.BadRequestResponse(w, r, fmt.Errorf("validation error: %v", vvString))
		return
	}

	eta, dist, pathPolyline, coords, found, err := api.routingService.FindRoute(
		request.OriginLat, request.OriginLon,
		request.DestinationLat, request.DestinationLon, request.VehicleMode)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)

	if !found {
		if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewNoRouteResponse()}, headers); err != nil {
			api.ServerErrorResponse(w, r, err)
		}
		return
	}

	if err := api.writeJSON(w, http.StatusOK,
		envelope{"data": NewRouteResponse(eta, dist, pathPolyline, coords)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}
