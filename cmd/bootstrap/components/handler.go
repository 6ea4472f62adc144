package components

import (
	"fin-approvals/internal/handler"
	"fin-approvals/internal/handler/api"
	"fin-approvals/internal/handler/middleware"
	"fin-approvals/internal/pkg/clock"
	"fin-approvals/internal/pkg/config"
	"fin-approvals/internal/pkg/ratelimit"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewRequestHandler,
		api.NewApprovalHandler,
		middleware.NewAuthMiddleware,
		NewLoginRateLimiter,
	),
	fx.Invoke(handler.NewRouter),
)

func NewLoginRateLimiter(cfg config.Config, clk clock.Clock) *ratelimit.Limiter {
	return ratelimit.NewLimiter(cfg.RateLimit.LoginLimit, cfg.RateLimit.LoginWindow, clk)
}
