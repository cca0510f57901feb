package generator_fx

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"go.uber.org/fx"
	"rihla/internal/services"
	mem "rihla/pkg/memcache"
	"rihla/pkg/utils"
)

var Module = fx.Provide(
	ProvideTextGenerator,
	services.LoadPromptTemplates,
)

// GenerationConfig holds configuration for the generation client
type GenerationConfig struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
	Timeout  time.Duration
	CacheTTL time.Duration
}

// ProvideTextGenerator creates the generation client, cached when COMPLETION_CACHE_TTL > 0
func ProvideTextGenerator(lc fx.Lifecycle, store mem.CompletionStore) (utils.TextGenerator, error) {
	config := getGenerationConfig()

	log.Printf("Initializing %s generation client with model: %s", config.Provider, config.Model)

	generator, err := utils.NewTextGenerator(config.Provider, config.APIKey, config.Model, config.BaseURL, config.Timeout)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			log.Println("Closing generation client")
			return utils.CloseGenerator(generator)
		},
	})
	if config.CacheTTL <= 0 {
		return generator, nil
	}
	return utils.NewCachedGenerator(generator, store, config.CacheTTL), nil
}

func getGenerationConfig() GenerationConfig {
	provider := strings.ToLower(utils.GetEnvWithDefault("GENERATION_PROVIDER", "gemini"))

	config := GenerationConfig{
		Provider: provider,
		Timeout:  utils.GetEnvDuration("GENERATION_TIMEOUT", utils.DefaultGenerationTimeout),
		CacheTTL: utils.GetEnvDuration("COMPLETION_CACHE_TTL", time.Hour),
	}

	switch provider {
	case "openai":
		config.APIKey = os.Getenv("OPENAI_API_KEY")
		config.Model = utils.GetEnvWithDefault("OPENAI_MODEL", "gpt-4o-mini")
		config.BaseURL = os.Getenv("OPENAI_BASE_URL")
		if config.APIKey == "" {
			log.Fatal("OPENAI_API_KEY is required when using OpenAI provider")
		}
	case "gemini":
		config.APIKey = os.Getenv("GEMINI_API_KEY")
		config.Model = utils.GetEnvWithDefault("GEMINI_MODEL", "gemini-1.5-flash")
		if config.APIKey == "" {
			log.Fatal("GEMINI_API_KEY is required when using Gemini provider")
		}
	}

	return config
}
