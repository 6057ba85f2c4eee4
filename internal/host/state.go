package host

import (
	"slices"
	"sync"

	"github.com/pixil98/go-loadout/internal/loadout"
)

// State caches the most recent container contents and render states
// reported by the game client.
type State struct {
	mu         sync.RWMutex
	containers map[loadout.ContainerType]loadout.LiveContainer
	active     map[loadout.RenderState]bool
}

func NewState() *State {
	return &State{
		containers: map[loadout.ContainerType]loadout.LiveContainer{},
		active:     map[loadout.RenderState]bool{},
	}
}

// Container satisfies loadout.ContainerAccessor. It returns a copy, or nil
// when the client has not reported ct or reported it as absent.
func (s *State) Container(ct loadout.ContainerType) loadout.LiveContainer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.containers[ct].Clone()
}

// SetContainer replaces the contents of ct. A nil live marks it absent.
func (s *State) SetContainer(ct loadout.ContainerType, live loadout.LiveContainer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if live == nil {
		delete(s.containers, ct)
		return
	}
	s.containers[ct] = live.Clone()
}

// IsActive satisfies loadout.RenderStateChecker. RenderAlways is always active.
func (s *State) IsActive(rs loadout.RenderState) bool {
	if rs == loadout.RenderAlways {
		return true
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active[rs]
}

// SetActive replaces the set of active render states.
func (s *State) SetActive(states []loadout.RenderState) {
	active := make(map[loadout.RenderState]bool, len(states))
	for _, rs := range states {
		active[rs] = true
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

// ActiveStates returns the active render states in a stable order.
func (s *State) ActiveStates() []loadout.RenderState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]loadout.RenderState, 0, len(s.active))
	for rs := range s.active {
		out = append(out, rs)
	}
	slices.Sort(out)
	return out
}
