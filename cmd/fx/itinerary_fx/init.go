package itinerary_fx

import (
	"travelgenie/internal/api/controllers"
	"travelgenie/internal/config"
	"travelgenie/internal/services"
	"travelgenie/pkg/utils"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Provide(
	ProvideItineraryService,
	ProvideItineraryController)

// ProvideItineraryService creates the itinerary service with all dependencies
func ProvideItineraryService(
	client utils.GenerativeClientInterface,
	cfg *config.Config,
	logger *zap.Logger,
) services.ItineraryServiceInterface {
	return services.NewItineraryService(
		client,
		cfg.LLM.Generation,
		cfg.LLM.Timeout,
		logger.Named("itinerary"),
	)
}

// ProvideItineraryController creates the itinerary controller
func ProvideItineraryController(
	itineraryService services.ItineraryServiceInterface,
	logger *zap.Logger,
) *controllers.ItineraryController {
	return controllers.NewItineraryController(itineraryService, logger.Named("http"))
}
