package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"travelgenie/internal/models/request_models"
	"travelgenie/internal/models/response_models"
	"travelgenie/pkg/metrics"
	"travelgenie/pkg/utils"

	"go.uber.org/zap"
)

type ItineraryServiceInterface interface {
	PreviewPrompt(request request_models.TripRequest) (*response_models.PromptPreview, error)
	GenerateItinerary(ctx context.Context, request request_models.TripRequest) (*response_models.ItineraryResult, error)
	RecoverItinerary(rawText string) (response_models.Itinerary, error)
	Health() response_models.HealthStatus
}

type ItineraryService struct {
	client  utils.GenerativeClientInterface
	params  utils.GenerationParams
	timeout time.Duration
	logger  *zap.Logger
}

func NewItineraryService(
	client utils.GenerativeClientInterface,
	params utils.GenerationParams,
	timeout time.Duration,
	logger *zap.Logger,
) ItineraryServiceInterface {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ItineraryService{
		client:  client,
		params:  params,
		timeout: timeout,
		logger:  logger,
	}
}

func (s *ItineraryService) PreviewPrompt(request request_models.TripRequest) (*response_models.PromptPreview, error) {
	prompt, dayCount, err := buildPrompt(request)
	if err != nil {
		return nil, err
	}
	return &response_models.PromptPreview{Prompt: prompt, DayCount: dayCount}, nil
}

// GenerateItinerary makes exactly one upstream call. Retrying is left to the caller.
func (s *ItineraryService) GenerateItinerary(ctx context.Context, request request_models.TripRequest) (*response_models.ItineraryResult, error) {
	prompt, requestedDays, err := buildPrompt(request)
	if err != nil {
		metrics.ItineraryRequests.WithLabelValues(metrics.OutcomeInvalidInput).Inc()
		return nil, err
	}

	log := s.logger.With(
		zap.String("destination", request.Destination),
		zap.String("budget", string(request.Budget)),
		zap.Int("requested_days", requestedDays),
	)
	log.Info("Generating itinerary")

	rawText, err := s.generate(ctx, prompt)
	if err != nil {
		metrics.ItineraryRequests.WithLabelValues(metrics.OutcomeUpstream).Inc()
		log.Error("Generative API call failed", zap.Error(err))
		return nil, err
	}
	log.Debug("Raw AI response", zap.String("raw_text", rawText))

	days, err := s.recover(rawText, log)
	if err != nil {
		metrics.ItineraryRequests.WithLabelValues(metrics.OutcomeUnparseable).Inc()
		return nil, err
	}
	metrics.ItineraryRequests.WithLabelValues(metrics.OutcomeSuccess).Inc()

	if len(days) != requestedDays {
		log.Warn("Itinerary length differs from requested range",
			zap.Int("trip_length", len(days)))
	}

	return &response_models.ItineraryResult{
		Destination:   request.Destination,
		StartDate:     utils.FormatDate(request.StartDate),
		EndDate:       utils.FormatDate(request.EndDate),
		Budget:        string(request.Budget),
		Interests:     append([]string(nil), request.Interests...),
		RequestedDays: requestedDays,
		TripLength:    len(days),
		Provider:      s.client.Provider(),
		Model:         s.client.Model(),
		Days:          days,
	}, nil
}

func (s *ItineraryService) RecoverItinerary(rawText string) (response_models.Itinerary, error) {
	return s.recover(rawText, s.logger)
}

func (s *ItineraryService) Health() response_models.HealthStatus {
	if s.client == nil {
		return response_models.HealthStatus{Status: "degraded"}
	}
	return response_models.HealthStatus{
		Status:       "ok",
		APIConnected: true,
		Provider:     s.client.Provider(),
		Model:        s.client.Model(),
	}
}

// generate wraps the single blocking call in the configured timeout.
func (s *ItineraryService) generate(ctx context.Context, prompt string) (string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	rawText, err := s.client.GenerateText(ctx, prompt, s.params)
	metrics.LLMRequestDuration.
		WithLabelValues(s.client.Provider(), s.client.Model()).
		Observe(time.Since(start).Seconds())

	if err != nil {
		if errors.Is(err, utils.ErrUpstream) {
			return "", err
		}
		return "", fmt.Errorf("%w: %w", utils.ErrUpstream, err)
	}
	if strings.TrimSpace(rawText) == "" {
		return "", fmt.Errorf("%w: empty response", utils.ErrUpstream)
	}
	return rawText, nil
}

func (s *ItineraryService) recover(rawText string, log *zap.Logger) (response_models.Itinerary, error) {
	recovery, err := RecoverItineraryDetailed(rawText)
	if err != nil {
		metrics.RecoveryAttempts.WithLabelValues(metrics.StrategyFailed).Inc()
		log.Error("Could not recover itinerary from response",
			zap.Error(err),
			zap.String("raw_text", rawText))
		return nil, err
	}

	metrics.RecoveryAttempts.WithLabelValues(string(recovery.Strategy)).Inc()
	if len(recovery.Dropped) > 0 {
		metrics.DroppedDays.Add(float64(len(recovery.Dropped)))
		log.Warn("Dropped malformed day objects",
			zap.Int("dropped", len(recovery.Dropped)),
			zap.Error(errors.Join(recovery.Dropped...)))
	}
	log.Debug("Recovered itinerary",
		zap.String("strategy", string(recovery.Strategy)),
		zap.Int("days", len(recovery.Days)))

	return recovery.Days, nil
}
