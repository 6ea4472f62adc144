package components

import (
	"fin-approvals/internal/pkg/clock"
	"fin-approvals/internal/pkg/config"
	"fin-approvals/internal/usecase"
	"fin-approvals/internal/usecase/commands"
	"fin-approvals/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	commands.NewAssigneeResolver,
	func(cfg config.Config) config.RateLimitConfig {
		return cfg.RateLimit
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewRequestCommands,
		commands.NewApprovalCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewUserQueries,
		queries.NewRequestQueries,
		queries.NewApprovalQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
