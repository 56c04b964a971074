package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"itinerary/internal/models/request_models"
	"itinerary/internal/models/response_models"
	"itinerary/internal/models/trip_models"
	"itinerary/internal/services"
	"itinerary/pkg/utils"
)

type ItineraryController struct {
	itineraryService services.ItineraryServiceInterface
	loc              *time.Location
	log              *zap.Logger
}

func NewItineraryController(itineraryService services.ItineraryServiceInterface, loc *time.Location, log *zap.Logger) *ItineraryController {
	return &ItineraryController{
		itineraryService: itineraryService,
		loc:              loc,
		log:              log.Named("http"),
	}
}

func (i *ItineraryController) ScheduleItinerary(c *gin.Context) {
	var req request_models.ScheduleItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	tripReq, err := req.TripRequest(i.loc)
	if err != nil {
		utils.HandleServiceError(c, i.log, err)
		return
	}

	ctx := c.Request.Context()
	var sched *trip_models.TripSchedule
	if len(tripReq.POIs) == 0 && len(req.POIIDs) > 0 {
		sched, err = i.itineraryService.ScheduleStoredTrip(ctx, req.POIIDs, tripReq)
	} else {
		sched, err = i.itineraryService.ScheduleTrip(ctx, tripReq)
	}
	if err != nil {
		utils.HandleServiceError(c, i.log, err)
		return
	}

	var id string
	if req.Save {
		id, err = i.itineraryService.SaveSchedule(ctx, req.Title, tripReq, sched)
		if err != nil {
			utils.HandleServiceError(c, i.log, err)
			return
		}
	}

	utils.RespondSuccess(c,
		response_models.NewItineraryResponse(id, sched, i.itineraryService.Summarize(sched)),
		"Itinerary scheduled successfully")
}

func (i *ItineraryController) GetItineraryById(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		utils.RespondError(c, http.StatusBadRequest, "Itinerary ID is required")
		return
	}

	sched, err := i.itineraryService.GetSchedule(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, i.log, err)
		return
	}

	utils.RespondSuccess(c,
		response_models.NewItineraryResponse(id, sched, i.itineraryService.Summarize(sched)),
		"Itinerary fetched successfully")
}

func (i *ItineraryController) ResetCache(c *gin.Context) {
	i.itineraryService.ResetCache()
	utils.RespondSuccess(c, nil, "Visit profile cache cleared")
}
