package analytics_fx

import (
	"go.uber.org/fx"
	"rihla/internal/services"
)

var Module = fx.Provide(services.NewAnalyticsService)
