package components

import (
	"fin-approvals/internal/infra/db"
	"fin-approvals/internal/infra/readstore"
	"fin-approvals/internal/infra/uow"
	"fin-approvals/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		// Write side goes through the unit of work, which opens its
		// repositories per transaction.
		uow.NewPostgresUoW,
		// Read side runs outside transactions, straight on the pool.
		fx.Annotate(
			readstore.NewRequestReadStore,
			fx.As(new(queries.RequestReadStore)),
		),
		fx.Annotate(
			readstore.NewApprovalReadStore,
			fx.As(new(queries.ApprovalReadStore)),
		),
		fx.Annotate(
			readstore.NewUserReadStore,
			fx.As(new(queries.UserReadStore)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
