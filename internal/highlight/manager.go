package highlight

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/pixil98/go-loadout/internal/loadout"
	"github.com/pixil98/go-loadout/internal/messaging"
)

// ProfileSource provides the profiles that should render right now.
type ProfileSource interface {
	Active(loadout.RenderStateChecker) []*loadout.Profile
}

// HostState is the live client state a frame is computed from.
type HostState interface {
	loadout.ContainerAccessor
	loadout.RenderStateChecker
}

// ProfileStatus is the validation summary of one active profile.
type ProfileStatus struct {
	Id      string `json:"id"`
	Name    string `json:"name"`
	Valid   bool   `json:"valid"`
	Matched int    `json:"matched"`
	Total   int    `json:"total"`
}

// Update is published on the highlight subject of a container.
type Update struct {
	Container loadout.ContainerType `json:"container"`
	Slots     []Class               `json:"slots"`
	Profiles  []ProfileStatus       `json:"profiles"`
}

// Manager recomputes slot highlights every tick and publishes them when
// they change.
type Manager struct {
	source   ProfileSource
	state    HostState
	names    loadout.NameLookup
	pub      messaging.Publisher
	subjects messaging.Subjects

	last map[loadout.ContainerType][]byte
}

func NewManager(source ProfileSource, state HostState, names loadout.NameLookup, pub messaging.Publisher, subjects messaging.Subjects) *Manager {
	return &Manager{
		source:   source,
		state:    state,
		names:    names,
		pub:      pub,
		subjects: subjects,
		last:     map[loadout.ContainerType][]byte{},
	}
}

func (m *Manager) Tick(ctx context.Context) error {
	byContainer := map[loadout.ContainerType][]*loadout.Profile{}
	for _, p := range m.source.Active(m.state) {
		byContainer[p.ContainerType] = append(byContainer[p.ContainerType], p)
	}

	for _, ct := range loadout.ContainerTypes() {
		profiles := byContainer[ct]
		if len(profiles) == 0 && m.last[ct] == nil {
			continue
		}

		data, err := json.Marshal(m.Compute(ct, profiles))
		if err != nil {
			return fmt.Errorf("encoding %s highlight: %w", ct, err)
		}
		if bytes.Equal(data, m.last[ct]) {
			continue
		}

		err = m.pub.Publish(m.subjects.Highlight(ct), data)
		if err != nil {
			// Left unrecorded so the next tick retries.
			slog.WarnContext(ctx, "publishing highlight", "container", ct, "error", err)
			continue
		}

		if len(profiles) == 0 {
			delete(m.last, ct)
		} else {
			m.last[ct] = data
		}
	}

	return nil
}

// Compute builds the update for ct from the given active profiles.
func (m *Manager) Compute(ct loadout.ContainerType, profiles []*loadout.Profile) Update {
	u := Update{Container: ct, Slots: []Class{}, Profiles: []ProfileStatus{}}

	live := m.state.Container(ct)
	if live != nil {
		u.Slots = NewFrame(profiles, ct, len(live)).Classify(live, m.names)
	}

	for _, p := range profiles {
		status := ProfileStatus{Id: p.Id, Name: p.Name}
		if res := p.ValidateDetailed(m.state, m.names); res != nil {
			status.Valid = res.Satisfies(p.Presence.Mode, p.Presence.Threshold)
			status.Matched = res.Matched
			status.Total = res.Total
		}
		u.Profiles = append(u.Profiles, status)
	}

	return u
}
