package memcache_fx

import (
	"context"
	"fmt"
	"log"
	"strings"

	"go.uber.org/fx"
	"rihla/internal/infra"
	mem "rihla/pkg/memcache"
	"rihla/pkg/utils"
)

var Module = fx.Provide(provideCompletionStore)

func provideCompletionStore(lc fx.Lifecycle) (mem.CompletionStore, error) {
	provider := utils.GetEnvWithDefault("CACHE_PROVIDER", "memory")
	log.Printf("Initializing %s completion cache", provider)

	switch strings.ToLower(provider) {
	case "memory":
		return mem.NewMemoryStore(utils.GetEnvInt("COMPLETION_CACHE_SIZE", 1000)), nil
	case "redis":
		client, err := infra.InitRedis(utils.GetEnvWithDefault("REDIS_URL", "redis://localhost:6379/0"))
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return client.Close()
			},
		})
		return mem.NewRedisStore(client, "rihla:completion:"), nil
	default:
		return nil, fmt.Errorf("unsupported cache provider: %s. Use 'memory' or 'redis'", provider)
	}
}
