package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"roomserve/internal/dispatch"
	"roomserve/internal/pkg/config"
	"roomserve/internal/usecase/commands"

	"go.uber.org/fx"
)

var DispatchModule = fx.Module("dispatch",
	fx.Provide(
		NewRegistry,
		fx.Annotate(
			dispatch.NewBroadcaster,
			fx.As(new(commands.EventPublisher)),
		),
	),
)

// NewRegistry starts the liveness sweep alongside the registry. Sessions whose
// websocket stops answering pings get deregistered even if the connection
// never closes cleanly.
func NewRegistry(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) *dispatch.Registry {
	registry := dispatch.NewRegistry(cfg.Dispatch.SessionBuffer, cfg.Dispatch.LivenessTimeout, logger)

	stop := make(chan struct{})
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				ticker := time.NewTicker(cfg.Dispatch.LivenessTimeout / 3)
				defer ticker.Stop()
				for {
					select {
					case <-ticker.C:
						registry.Sweep()
					case <-stop:
						return
					}
				}
			}()
			return nil
		},
		OnStop: func(_ context.Context) error {
			close(stop)
			return nil
		},
	})

	return registry
}
