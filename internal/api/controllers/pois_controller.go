package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"itinerary/internal/models/request_models"
	"itinerary/internal/services"
	"itinerary/pkg/utils"
)

type POIsController struct {
	poiService services.POIServiceInterface
	log        *zap.Logger
}

func NewPOIsController(poiService services.POIServiceInterface, log *zap.Logger) *POIsController {
	return &POIsController{
		poiService: poiService,
		log:        log.Named("http"),
	}
}

func (p *POIsController) GetPoiById(c *gin.Context) {
	poiId := c.Param("id")
	if poiId == "" {
		utils.RespondError(c, http.StatusBadRequest, "POI ID is required")
		return
	}

	poi, err := p.poiService.GetPOIById(poiId, c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, p.log, err)
		return
	}

	utils.RespondSuccess(c, poi, "POI fetched successfully")
}

func (p *POIsController) UpsertPois(c *gin.Context) {
	var req request_models.UpsertPOIsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	if err := p.poiService.SavePOIs(c.Request.Context(), request_models.ToTripPOIs(req.POIs)); err != nil {
		utils.HandleServiceError(c, p.log, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"count": len(req.POIs)}, "POIs saved successfully")
}
