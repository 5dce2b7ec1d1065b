package components

import (
	"context"

	"roomserve/internal/infra/store"
	"roomserve/internal/usecase/commands"
	"roomserve/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var StoreModule = fx.Module("store",
	fx.Provide(
		fx.Annotate(
			NewRequestStore,
			fx.As(new(commands.RequestStore)),
			fx.As(new(queries.RequestReadStore)),
		),
	),
)

func NewRequestStore(lc fx.Lifecycle, pool *pgxpool.Pool) *store.PostgresRequestStore {
	s := store.NewPostgresRequestStore(pool)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return s.Migrate(ctx)
		},
	})

	return s
}
