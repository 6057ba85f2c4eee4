package host

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/pixil98/go-loadout/internal/loadout"
	"github.com/pixil98/go-loadout/internal/messaging"
)

// ContainerMessage is published by the client on a container subject.
// A null Items marks the container as absent.
type ContainerMessage struct {
	Items loadout.LiveContainer `json:"items"`
}

// RenderMessage is published by the client on the render subject.
type RenderMessage struct {
	Active []loadout.RenderState `json:"active"`
}

// Feed keeps a State current from client messages on the bus.
type Feed struct {
	state    *State
	bus      messaging.Bus
	subjects messaging.Subjects
}

func NewFeed(state *State, bus messaging.Bus, subjects messaging.Subjects) *Feed {
	return &Feed{
		state:    state,
		bus:      bus,
		subjects: subjects,
	}
}

func (f *Feed) Start(ctx context.Context) error {
	err := f.bus.WaitReady(ctx)
	if err != nil {
		return nil
	}

	unsubContainers, err := f.bus.Subscribe(f.subjects.AllContainers(), func(subject string, data []byte) {
		if err := f.HandleContainer(subject, data); err != nil {
			slog.WarnContext(ctx, "dropping container update", "subject", subject, "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("subscribing to container updates: %w", err)
	}
	defer unsubContainers()

	unsubRender, err := f.bus.Subscribe(f.subjects.Render(), func(subject string, data []byte) {
		if err := f.HandleRender(data); err != nil {
			slog.WarnContext(ctx, "dropping render update", "subject", subject, "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("subscribing to render updates: %w", err)
	}
	defer unsubRender()

	slog.InfoContext(ctx, "host feed subscribed", "prefix", f.subjects.Prefix())
	<-ctx.Done()
	return nil
}

// HandleContainer applies one container message.
func (f *Feed) HandleContainer(subject string, data []byte) error {
	ct, err := f.subjects.ContainerFrom(subject)
	if err != nil {
		return err
	}

	var msg ContainerMessage
	err = json.Unmarshal(data, &msg)
	if err != nil {
		return fmt.Errorf("decoding container message: %w", err)
	}

	f.state.SetContainer(ct, msg.Items)
	return nil
}

// HandleRender applies one render message.
func (f *Feed) HandleRender(data []byte) error {
	var msg RenderMessage
	err := json.Unmarshal(data, &msg)
	if err != nil {
		return fmt.Errorf("decoding render message: %w", err)
	}

	f.state.SetActive(msg.Active)
	return nil
}
