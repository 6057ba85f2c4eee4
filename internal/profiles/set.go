package profiles

import (
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-loadout/internal/loadout"
)

// DefaultSet holds profiles created from the console.
const DefaultSet = "default"

// ProfileSet is the persisted unit: an ordered group of profiles stored as
// one asset.
type ProfileSet struct {
	Name     string             `json:"name,omitempty"`
	Profiles []*loadout.Profile `json:"profiles"`
}

func (s *ProfileSet) Validate() error {
	el := errors.NewErrorList()

	seen := map[string]bool{}
	for i, p := range s.Profiles {
		if p == nil {
			el.Add(fmt.Errorf("profile %d is empty", i))
			continue
		}
		if err := p.Verify(); err != nil {
			el.Add(fmt.Errorf("profile %q: %w", p.Name, err))
		}
		if seen[p.Id] {
			el.Add(fmt.Errorf("profile %q: %w %s", p.Name, ErrDuplicateId, p.Id))
		}
		seen[p.Id] = true
	}

	return el.Err()
}

// Clone returns a deep copy.
func (s *ProfileSet) Clone() *ProfileSet {
	c := &ProfileSet{Name: s.Name, Profiles: make([]*loadout.Profile, len(s.Profiles))}
	for i, p := range s.Profiles {
		c.Profiles[i] = p.Clone()
	}
	return c
}

func (s *ProfileSet) indexOf(id string) int {
	for i, p := range s.Profiles {
		if p.Id == id {
			return i
		}
	}
	return -1
}
