package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"travelgenie/cmd/fx/config_fx"
	"travelgenie/cmd/fx/itinerary_fx"
	"travelgenie/cmd/fx/llm_fx"
	"travelgenie/internal/api/controllers"
	"travelgenie/internal/config"
	"travelgenie/pkg/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the itinerary HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := fx.New(
			fx.Supply(config_fx.ConfigFile(cfgFile)),
			config_fx.Module,
			llm_fx.Module,
			itinerary_fx.Module,

			fx.Provide(ProvideRouter),
			fx.Invoke(StartServer),
		)
		if err := app.Err(); err != nil {
			return err
		}
		app.Run()
		return nil
	},
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, cfg *config.Config, logger *zap.Logger) {
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: engine,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			logger.Info("Starting HTTP server", zap.String("addr", srv.Addr))
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Fatal("Failed to start server", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}

func ProvideRouter(itineraryController *controllers.ItineraryController, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger(logger.Named("access")))
	r.Use(middleware.CORSMiddleware())

	RegisterRoutes(r, itineraryController)

	return r
}

func RegisterRoutes(r *gin.Engine, itineraryController *controllers.ItineraryController) {
	r.GET("/healthz", itineraryController.HealthHandler)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	itineraryGroup := r.Group("/api/itineraries")
	itineraryGroup.POST("", itineraryController.GenerateItineraryHandler)
	itineraryGroup.POST("/prompt", itineraryController.PreviewPromptHandler)
	itineraryGroup.POST("/recover", itineraryController.RecoverItineraryHandler)
	itineraryGroup.GET("/options", itineraryController.OptionsHandler)
}
