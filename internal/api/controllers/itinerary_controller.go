package controllers

import (
	"errors"
	"net/http"
	"strings"
	"travelgenie/internal/models/request_models"
	"travelgenie/internal/models/response_models"
	"travelgenie/internal/services"
	"travelgenie/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ItineraryController struct {
	itineraryService services.ItineraryServiceInterface
	logger           *zap.Logger
}

func NewItineraryController(itineraryService services.ItineraryServiceInterface, logger *zap.Logger) *ItineraryController {
	return &ItineraryController{
		itineraryService: itineraryService,
		logger:           logger,
	}
}

// POST /api/itineraries
func (i *ItineraryController) GenerateItineraryHandler(c *gin.Context) {
	trip, ok := i.bindTripRequest(c)
	if !ok {
		return
	}

	result, err := i.itineraryService.GenerateItinerary(c.Request.Context(), trip)
	if err != nil {
		utils.HandleServiceError(c, i.logger, err)
		return
	}

	utils.RespondSuccess(c, result, "Travel itinerary created successfully")
}

// POST /api/itineraries/prompt
func (i *ItineraryController) PreviewPromptHandler(c *gin.Context) {
	trip, ok := i.bindTripRequest(c)
	if !ok {
		return
	}

	preview, err := i.itineraryService.PreviewPrompt(trip)
	if err != nil {
		utils.HandleServiceError(c, i.logger, err)
		return
	}

	utils.RespondSuccess(c, preview, "Prompt built")
}

// POST /api/itineraries/recover
func (i *ItineraryController) RecoverItineraryHandler(c *gin.Context) {
	var req request_models.RecoverItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.RawText) == "" {
		utils.RespondError(c, http.StatusBadRequest, "raw_text is required")
		return
	}

	days, err := i.itineraryService.RecoverItinerary(req.RawText)
	if err != nil {
		if errors.Is(err, utils.ErrUnparseableResponse) {
			utils.RespondError(c, http.StatusUnprocessableEntity, err.Error())
			return
		}
		utils.HandleServiceError(c, i.logger, err)
		return
	}

	utils.RespondSuccess(c, response_models.RecoveredItinerary{TripLength: len(days), Days: days}, "Itinerary recovered")
}

// GET /api/itineraries/options
func (i *ItineraryController) OptionsHandler(c *gin.Context) {
	tiers := make([]string, 0, len(request_models.BudgetTiers))
	for _, tier := range request_models.BudgetTiers {
		tiers = append(tiers, string(tier))
	}

	utils.RespondSuccess(c, response_models.TripOptions{
		BudgetTiers:      tiers,
		DefaultBudget:    string(request_models.DefaultBudgetTier),
		Interests:        request_models.InterestOptions,
		DefaultInterests: request_models.DefaultInterests,
	}, "")
}

// GET /healthz
func (i *ItineraryController) HealthHandler(c *gin.Context) {
	utils.RespondSuccess(c, i.itineraryService.Health(), "")
}

func (i *ItineraryController) bindTripRequest(c *gin.Context) (request_models.TripRequest, bool) {
	var req request_models.CreateItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return request_models.TripRequest{}, false
	}

	trip, err := req.ToTripRequest()
	if err != nil {
		utils.HandleServiceError(c, i.logger, err)
		return request_models.TripRequest{}, false
	}
	return trip, true
}
