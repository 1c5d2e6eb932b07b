package config_fx

import (
	"travelgenie/internal/config"
	"travelgenie/pkg/logger"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// ConfigFile is the optional path given with --config.
type ConfigFile string

var Module = fx.Options(
	fx.Provide(
		provideConfig,
		provideLogger,
	),
	fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
		return &fxevent.ZapLogger{Logger: log.Named("fx")}
	}),
)

func provideConfig(path ConfigFile) (*config.Config, error) {
	return config.Load(string(path))
}

func provideLogger(lc fx.Lifecycle, cfg *config.Config) (*zap.Logger, error) {
	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.StopHook(func() {
		_ = log.Sync()
	}))
	return log, nil
}
