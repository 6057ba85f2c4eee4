package profiles

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/pixil98/go-loadout/internal/messaging"
)

// Syncer reloads the registry when another process announces a change.
type Syncer struct {
	registry *Registry
	bus      messaging.Bus
	subjects messaging.Subjects
}

func NewSyncer(registry *Registry, bus messaging.Bus, subjects messaging.Subjects) *Syncer {
	return &Syncer{
		registry: registry,
		bus:      bus,
		subjects: subjects,
	}
}

func (s *Syncer) Start(ctx context.Context) error {
	err := s.bus.WaitReady(ctx)
	if err != nil {
		return nil
	}

	unsub, err := s.bus.Subscribe(s.subjects.ProfileSync(), func(_ string, data []byte) {
		if err := s.Handle(ctx, data); err != nil {
			slog.ErrorContext(ctx, "syncing profiles", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("subscribing to profile sync: %w", err)
	}
	defer unsub()

	<-ctx.Done()
	return nil
}

// Handle processes one sync message. Messages from this process are ignored.
func (s *Syncer) Handle(ctx context.Context, data []byte) error {
	var msg SyncMessage
	err := json.Unmarshal(data, &msg)
	if err != nil {
		return fmt.Errorf("decoding sync message: %w", err)
	}
	if msg.Origin == s.registry.Origin() {
		return nil
	}

	err = s.registry.Reload()
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "reloaded profiles", "set", msg.Set, "origin", msg.Origin, "count", s.registry.Current().Len())
	return nil
}
