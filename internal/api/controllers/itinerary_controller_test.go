package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"travelgenie/internal/models/request_models"
	"travelgenie/internal/models/response_models"
	"travelgenie/pkg/middleware"
	"travelgenie/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockItineraryService struct {
	mock.Mock
}

func (m *MockItineraryService) PreviewPrompt(request request_models.TripRequest) (*response_models.PromptPreview, error) {
	args := m.Called(request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response_models.PromptPreview), args.Error(1)
}

func (m *MockItineraryService) GenerateItinerary(ctx context.Context, request request_models.TripRequest) (*response_models.ItineraryResult, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response_models.ItineraryResult), args.Error(1)
}

func (m *MockItineraryService) RecoverItinerary(rawText string) (response_models.Itinerary, error) {
	args := m.Called(rawText)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(response_models.Itinerary), args.Error(1)
}

func (m *MockItineraryService) Health() response_models.HealthStatus {
	return response_models.HealthStatus{Status: "ok", APIConnected: true, Provider: "gemini", Model: "test-model"}
}

func setupRouter(svc *MockItineraryService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	controller := NewItineraryController(svc, zap.NewNop())

	r := gin.New()
	r.Use(middleware.TraceIDMiddleware())
	r.GET("/healthz", controller.HealthHandler)
	group := r.Group("/api/itineraries")
	group.POST("", controller.GenerateItineraryHandler)
	group.POST("/prompt", controller.PreviewPromptHandler)
	group.POST("/recover", controller.RecoverItineraryHandler)
	group.GET("/options", controller.OptionsHandler)
	return r
}

func doRequest(t *testing.T, r *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, utils.APIResponse) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp utils.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

var validBody = map[string]interface{}{
	"destination": "Kyoto",
	"start_date":  "2025-04-01",
	"end_date":    "2025-04-03",
	"budget":      "budget",
	"interests":   []string{"temples", "food"},
}

func TestGenerateItineraryHandler(t *testing.T) {
	tests := []struct {
		name         string
		body         interface{}
		serviceErr   error
		callsService bool
		expectedCode int
	}{
		{name: "success", body: validBody, callsService: true, expectedCode: http.StatusOK},
		{name: "malformed json", body: "{not json", expectedCode: http.StatusBadRequest},
		{
			name:         "end before start",
			body:         map[string]interface{}{"destination": "Kyoto", "start_date": "2025-04-03", "end_date": "2025-04-01", "interests": []string{"food"}},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "missing interests",
			body:         map[string]interface{}{"destination": "Kyoto", "start_date": "2025-04-01", "end_date": "2025-04-01"},
			expectedCode: http.StatusBadRequest,
		},
		{name: "upstream error", body: validBody, serviceErr: fmt.Errorf("%w: timeout", utils.ErrUpstream), callsService: true, expectedCode: http.StatusBadGateway},
		{name: "unparseable", body: validBody, serviceErr: &utils.UnparseableResponseError{RawText: "nope"}, callsService: true, expectedCode: http.StatusBadGateway},
		{name: "unknown", body: validBody, serviceErr: errors.New("boom"), callsService: true, expectedCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockItineraryService)
			if tt.callsService {
				var result *response_models.ItineraryResult
				if tt.serviceErr == nil {
					result = &response_models.ItineraryResult{
						Destination: "Kyoto",
						TripLength:  1,
						Days:        response_models.Itinerary{{Day: 1, Summary: "Arrival"}},
					}
				}
				svc.On("GenerateItinerary", mock.Anything, mock.MatchedBy(func(trip request_models.TripRequest) bool {
					return trip.Destination == "Kyoto" && trip.Budget == request_models.BudgetTierBudget
				})).Return(result, tt.serviceErr).Once()
			}

			w, resp := doRequest(t, setupRouter(svc), http.MethodPost, "/api/itineraries", tt.body)

			assert.Equal(t, tt.expectedCode, w.Code)
			assert.Equal(t, tt.expectedCode, resp.Code)
			assert.NotEmpty(t, resp.TraceID)
			assert.Equal(t, resp.TraceID, w.Header().Get(middleware.TraceIDHeader))
			svc.AssertExpectations(t)
			if !tt.callsService {
				svc.AssertNotCalled(t, "GenerateItinerary", mock.Anything, mock.Anything)
			}
			if tt.expectedCode == http.StatusOK {
				assert.Equal(t, "success", resp.Status)
				data := resp.Data.(map[string]interface{})
				assert.Equal(t, "Kyoto", data["destination"])
			} else {
				assert.Equal(t, "error", resp.Status)
				assert.Nil(t, resp.Data)
			}
		})
	}
}

func TestPreviewPromptHandler(t *testing.T) {
	svc := new(MockItineraryService)
	svc.On("PreviewPrompt", mock.Anything).Return(&response_models.PromptPreview{Prompt: "plan Kyoto", DayCount: 3}, nil).Once()

	w, resp := doRequest(t, setupRouter(svc), http.MethodPost, "/api/itineraries/prompt", validBody)

	assert.Equal(t, http.StatusOK, w.Code)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "plan Kyoto", data["prompt"])
	assert.EqualValues(t, 3, data["day_count"])
	svc.AssertExpectations(t)
}

func TestRecoverItineraryHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := new(MockItineraryService)
		svc.On("RecoverItinerary", "raw reply").
			Return(response_models.Itinerary{{Day: 1, Summary: "Arrival"}}, nil).Once()

		w, resp := doRequest(t, setupRouter(svc), http.MethodPost, "/api/itineraries/recover", map[string]string{"raw_text": "raw reply"})

		assert.Equal(t, http.StatusOK, w.Code)
		data := resp.Data.(map[string]interface{})
		assert.EqualValues(t, 1, data["trip_length"])
		svc.AssertExpectations(t)
	})

	t.Run("unparseable", func(t *testing.T) {
		svc := new(MockItineraryService)
		svc.On("RecoverItinerary", "Sorry").
			Return(nil, &utils.UnparseableResponseError{RawText: "Sorry"}).Once()

		w, _ := doRequest(t, setupRouter(svc), http.MethodPost, "/api/itineraries/recover", map[string]string{"raw_text": "Sorry"})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("missing raw text", func(t *testing.T) {
		svc := new(MockItineraryService)
		w, _ := doRequest(t, setupRouter(svc), http.MethodPost, "/api/itineraries/recover", map[string]string{"raw_text": "  "})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "RecoverItinerary", mock.Anything)
	})
}

func TestOptionsAndHealthHandlers(t *testing.T) {
	r := setupRouter(new(MockItineraryService))

	w, resp := doRequest(t, r, http.MethodGet, "/api/itineraries/options", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, []interface{}{"budget", "moderate", "luxury"}, data["budget_tiers"])
	assert.Equal(t, "moderate", data["default_budget"])
	assert.Len(t, data["interests"], len(request_models.InterestOptions))

	w, resp = doRequest(t, r, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, w.Code)
	health := resp.Data.(map[string]interface{})
	assert.Equal(t, true, health["api_connected"])
}

func TestGenerateItineraryHandler_InvalidRangeMessage(t *testing.T) {
	svc := new(MockItineraryService)
	body := map[string]interface{}{"destination": "Kyoto", "start_date": "2025-04-03", "end_date": "2025-04-01", "interests": []string{"food"}}

	w, resp := doRequest(t, setupRouter(svc), http.MethodPost, "/api/itineraries", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "End date must not be before start date", resp.Message)
}
