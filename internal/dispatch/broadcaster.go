package dispatch

import (
	"log/slog"
)

// Broadcaster fans accepted state changes out to matching sessions. Publish
// is called synchronously after each accepted write, so every session's
// channel receives events for one request id in acceptance order. Delivery is
// best-effort: a lagging session has the event dropped and is expected to
// re-fetch on reconnect, and no failure here ever propagates back to the
// transition that triggered it.
type Broadcaster struct {
	registry *Registry
	logger   *slog.Logger
}

func NewBroadcaster(registry *Registry, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		registry: registry,
		logger:   logger,
	}
}

func (b *Broadcaster) Publish(env Envelope) {
	sessions := b.registry.matching(env)
	for _, s := range sessions {
		if !s.send(env) {
			b.logger.Warn("event dropped for lagging or closed session",
				"session_id", s.ID(),
				"event_type", string(env.EventType),
				"request_id", env.Record.ID,
			)
		}
	}
}
