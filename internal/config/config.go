package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	"travelgenie/pkg/utils"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type LLMConfig struct {
	Provider     string                 `mapstructure:"provider"`
	Model        string                 `mapstructure:"model"`
	GeminiAPIKey string                 `mapstructure:"gemini_api_key"`
	OpenAIAPIKey string                 `mapstructure:"openai_api_key"`
	Timeout      time.Duration          `mapstructure:"timeout"`
	Generation   utils.GenerationParams `mapstructure:"generation"`
}

// APIKey returns the key belonging to the selected provider.
func (c LLMConfig) APIKey() string {
	if strings.EqualFold(c.Provider, utils.ProviderOpenAI) {
		return c.OpenAIAPIKey
	}
	return c.GeminiAPIKey
}

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
	LLM    LLMConfig    `mapstructure:"llm"`
}

// Load reads defaults, an optional config.yaml, .env and the environment, in increasing priority.
// configFile may be empty.
func Load(configFile string) (*Config, error) {
	loadEnvFile()

	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	if err := bindLegacyEnv(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.LLM.Provider = strings.ToLower(strings.TrimSpace(cfg.LLM.Provider))

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	params := utils.DefaultGenerationParams()

	v.SetDefault("server.port", "8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("llm.provider", utils.ProviderGemini)
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.gemini_api_key", "")
	v.SetDefault("llm.openai_api_key", "")
	v.SetDefault("llm.timeout", "60s")
	v.SetDefault("llm.generation.temperature", params.Temperature)
	v.SetDefault("llm.generation.top_p", params.TopP)
	v.SetDefault("llm.generation.top_k", params.TopK)
	v.SetDefault("llm.generation.max_output_tokens", params.MaxOutputTokens)
}

// bindLegacyEnv keeps the plain variable names deployments already export.
func bindLegacyEnv(v *viper.Viper) error {
	bindings := map[string][]string{
		"server.port":        {"SERVER_PORT", "PORT"},
		"llm.provider":       {"LLM_PROVIDER", "EMBEDDING_PROVIDER"},
		"llm.gemini_api_key": {"LLM_GEMINI_API_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY"},
		"llm.openai_api_key": {"LLM_OPENAI_API_KEY", "OPENAI_API_KEY"},
	}
	for key, envs := range bindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return fmt.Errorf("bind env for %s: %w", key, err)
		}
	}
	return nil
}

func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case utils.ProviderGemini, utils.ProviderOpenAI:
	default:
		return fmt.Errorf("%w: %q", utils.ErrUnsupportedProvider, c.LLM.Provider)
	}
	if c.LLM.Timeout <= 0 {
		return errors.New("llm.timeout must be positive")
	}
	g := c.LLM.Generation
	if g.Temperature < 0 || g.Temperature > 2 {
		return errors.New("llm.generation.temperature must be within [0, 2]")
	}
	if g.TopP <= 0 || g.TopP > 1 {
		return errors.New("llm.generation.top_p must be within (0, 1]")
	}
	if g.TopK < 0 {
		return errors.New("llm.generation.top_k must not be negative")
	}
	if g.MaxOutputTokens <= 0 {
		return errors.New("llm.generation.max_output_tokens must be positive")
	}
	if strings.TrimSpace(c.Server.Port) == "" {
		return errors.New("server.port is required")
	}
	return nil
}

func loadEnvFile() {
	for _, path := range []string{".env", "../.env"} {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}
