package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/julienschmidt/httprouter"
)

func (api *roadnetAPI) listSegments(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	segments := api.statusService.ListSegments()

	headers := make(http.Header)
	if err := api.writeJSON(w, http.StatusOK,
		envelope{"data": NewSegmentsResponse(segments)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

func (api *roadnetAPI) nearbySegments(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	query := r.URL.Query()

	lat, err := strconv.ParseFloat(query.Get("lat"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("lat is required and must be a valid float"))
		return
	}
	lon, err := strconv.ParseFloat(query.Get("lon"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("lon is required and must be a valid float"))
		return
	}
	radius, err := strconv.ParseFloat(query.Get("radius"), 64)
	if err != nil || radius <= 0 {
		api.BadRequestResponse(w, r, errors.New("radius is required and must be a positive float (meters)"))
		return
	}

	segments := api.statusService.NearbySegments(lat, lon, radius)

	headers := make(http.Header)
	if err := api.writeJSON(w, http.StatusOK,
		envelope{"data": NewSegmentsResponse(segments)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

func (api *roadnetAPI) editSegmentStatus(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	segmentID := p.ByName("id")

	var request statusEditRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := r.Body.Close(); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}

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

	changed, err := api.statusService.EditStatus(segmentID, request.Status, request.Source)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": statusEditResponse{
		SegmentID: segmentID,
		Status:    request.Status,
		Changed:   changed,
	}}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}
