package command

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/pixil98/go-loadout/internal/console"
	"github.com/pixil98/go-loadout/internal/driver"
	"github.com/pixil98/go-loadout/internal/highlight"
	"github.com/pixil98/go-loadout/internal/host"
	"github.com/pixil98/go-loadout/internal/listener"
	"github.com/pixil98/go-loadout/internal/profiles"
	"github.com/pixil98/go-service/service"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	subjects := cfg.Subjects.build()

	bus, err := cfg.Nats.buildNatsServer()
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}

	items, err := cfg.Storage.Items.BuildCatalog()
	if err != nil {
		return nil, fmt.Errorf("loading item catalog: %w", err)
	}

	store, err := cfg.Storage.Profiles.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating profile store: %w", err)
	}

	registry := profiles.NewRegistry(store, bus, subjects)
	err = registry.Load()
	if err != nil {
		return nil, fmt.Errorf("loading profiles: %w", err)
	}
	slog.Info("loaded profiles", "count", registry.Current().Len(), "items", items.Len())

	state := host.NewState()

	// Setup the frame driver
	highlighter := highlight.NewManager(registry, state, items, bus, subjects)
	frames := driver.NewFrameDriver([]driver.Manager{
		highlighter,
	}, driver.WithTickLength(cfg.tickInterval()), driver.WithReadyCheck(bus.WaitReady))

	// Create Listeners
	handler := console.NewHandler(registry, state, items, items)
	cm := listener.NewConnectionManager(handler)
	handler.AddStatus("Frames", func() string { return strconv.FormatUint(frames.Frames(), 10) })
	handler.AddStatus("Sessions", func() string { return strconv.FormatInt(cm.Open(), 10) })
	listeners := make(service.WorkerList, len(cfg.Listeners))
	for i, l := range cfg.Listeners {
		worker, err := l.BuildListener(cm)
		if err != nil {
			return nil, fmt.Errorf("creating listener %d: %w", i, err)
		}
		listeners[fmt.Sprintf("listener-%d", i)] = worker
	}

	// Create a worker list
	return service.WorkerList{
		"nats":         bus,
		"host-feed":    host.NewFeed(state, bus, subjects),
		"profile-sync": profiles.NewSyncer(registry, bus, subjects),
		"driver":       frames,
		"listeners":    &listeners,
	}, nil
}
