package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
	"travelgenie/cmd/fx/llm_fx"
	"travelgenie/internal/config"
	"travelgenie/internal/models/request_models"
	"travelgenie/internal/models/response_models"
	"travelgenie/internal/services"
	"travelgenie/pkg/logger"
	"travelgenie/pkg/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var tripFlags struct {
	destination string
	startDate   string
	endDate     string
	budget      string
	interests   []string
	output      string
}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate an itinerary once and print it",
	RunE:  runPlan,
}

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Print the prompt that would be sent, without calling the API",
	RunE:  runPrompt,
}

func init() {
	today := time.Now().Format(utils.DateLayout)
	weekLater := time.Now().AddDate(0, 0, 7).Format(utils.DateLayout)

	for _, cmd := range []*cobra.Command{planCmd, promptCmd} {
		cmd.Flags().StringVarP(&tripFlags.destination, "destination", "d", "", "destination, e.g. Kyoto")
		cmd.Flags().StringVar(&tripFlags.startDate, "start", today, "start date (YYYY-MM-DD)")
		cmd.Flags().StringVar(&tripFlags.endDate, "end", weekLater, "end date (YYYY-MM-DD)")
		cmd.Flags().StringVarP(&tripFlags.budget, "budget", "b", string(request_models.DefaultBudgetTier), "budget, moderate or luxury")
		cmd.Flags().StringSliceVarP(&tripFlags.interests, "interest", "i", request_models.DefaultInterests, "interests (repeatable or comma separated)")
		_ = cmd.MarkFlagRequired("destination")
	}
	planCmd.Flags().StringVarP(&tripFlags.output, "output", "o", "text", "output format: text or json")
}

func tripFromFlags() (request_models.TripRequest, error) {
	req := request_models.CreateItineraryRequest{
		Destination: tripFlags.destination,
		StartDate:   tripFlags.startDate,
		EndDate:     tripFlags.endDate,
		Budget:      tripFlags.budget,
		Interests:   tripFlags.interests,
	}
	return req.ToTripRequest()
}

func runPrompt(cmd *cobra.Command, args []string) error {
	trip, err := tripFromFlags()
	if err != nil {
		return err
	}
	prompt, err := services.BuildPrompt(trip)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), prompt)
	return err
}

func runPlan(cmd *cobra.Command, args []string) error {
	trip, err := tripFromFlags()
	if err != nil {
		return err
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.Log.Level, "console")
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	client, err := llm_fx.NewGenerativeClient(cmd.Context(), cfg.LLM)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	svc := services.NewItineraryService(client, cfg.LLM.Generation, cfg.LLM.Timeout, log.Named("itinerary"))

	log.Info("Generating your personalized travel itinerary...", zap.String("destination", trip.Destination))
	result, err := svc.GenerateItinerary(cmd.Context(), trip)
	if err != nil {
		return fmt.Errorf("error generating itinerary: %w", err)
	}

	if tripFlags.output == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	return writeItineraryText(cmd.OutOrStdout(), result)
}

func writeItineraryText(w io.Writer, result *response_models.ItineraryResult) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Your Personalized Itinerary for %s\n", result.Destination)
	fmt.Fprintf(&b, "%d Day Trip • %s Budget • %s\n\n",
		result.TripLength, capitalize(result.Budget), strings.Join(result.Interests, ", "))

	for _, day := range result.Days {
		fmt.Fprintf(&b, "Day %d: %s\n", day.Day, day.Summary)
		fmt.Fprintf(&b, "  Morning:   %s\n", day.Morning)
		fmt.Fprintf(&b, "  Afternoon: %s\n", day.Afternoon)
		fmt.Fprintf(&b, "  Evening:   %s\n\n", day.Evening)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
