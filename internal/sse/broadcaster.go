package sse

import (
	"context"
	"log/slog"

	"github.com/mcoot/trampoline/internal/model"
	"github.com/mcoot/trampoline/internal/services/game"
)

var _ game.Publisher = (*Broadcaster)(nil)

// Broadcaster forwards game events to the SSE clients watching that game
type Broadcaster struct {
	hubManager *HubManager
	logger     *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubManager *HubManager, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubManager: hubManager,
		logger:     logger.With(slog.String("component", "sse-broadcaster")),
	}
}

// Publish sends an event to every client of the event's game.
// Games nobody is watching are skipped.
func (b *Broadcaster) Publish(ctx context.Context, event model.Event) {
	hub := b.hubManager.GetHub(event.GameID)
	if hub == nil {
		return
	}

	name, data, err := EncodeEvent(event)
	if err != nil {
		b.logger.Error("sse failed to encode event",
			slog.String("game_id", string(event.GameID)),
			slog.String("event", string(event.Type)),
			slog.Any("error", err))
		return
	}
	hub.BroadcastEvent(name, data)

	if event.Type == model.EventGameCompleted {
		b.logger.Info("sse game completed broadcast",
			slog.String("game_id", string(event.GameID)),
			slog.Int("clients", hub.ClientCount()))
	}
}
