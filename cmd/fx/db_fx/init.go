package db_fx

import (
	"context"
	"log"
	"os"

	"go.uber.org/fx"
	"gorm.io/gorm"
	"rihla/internal/infra"
	"rihla/internal/repositories"
)

var Module = fx.Provide(
	provideDB,
	repositories.NewConversationRepository,
	repositories.NewInteractionRepository,
)

func provideDB(lc fx.Lifecycle) (*gorm.DB, error) {
	dsn := os.Getenv("POSTGRES_URL")
	if dsn == "" {
		log.Fatal("POSTGRES_URL is required")
	}

	db, err := infra.InitPostgresql(dsn)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			infra.ClosePostgresql(db)
			return nil
		},
	})
	return db, nil
}
