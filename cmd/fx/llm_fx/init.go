// cmd/fx/llm_fx/init.go
package llm_fx

import (
	"context"
	"fmt"
	"travelgenie/internal/config"
	"travelgenie/pkg/utils"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Provide(ProvideGenerativeClient)

// ProvideGenerativeClient creates the generative client selected by llm.provider
func ProvideGenerativeClient(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (utils.GenerativeClientInterface, error) {
	client, err := NewGenerativeClient(context.Background(), cfg.LLM)
	if err != nil {
		return nil, err
	}

	logger.Info("Initialized generative client",
		zap.String("provider", client.Provider()),
		zap.String("model", client.Model()))

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
	return client, nil
}

// NewGenerativeClient is shared with the one-shot CLI commands, which run without fx.
func NewGenerativeClient(ctx context.Context, cfg config.LLMConfig) (utils.GenerativeClientInterface, error) {
	client, err := utils.NewGenerativeClient(ctx, cfg.Provider, cfg.APIKey(), cfg.Model)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", cfg.Provider, err)
	}
	return client, nil
}
