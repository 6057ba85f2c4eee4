package highlight

import (
	"fmt"
	"slices"

	"github.com/pixil98/go-loadout/internal/loadout"
)

// Class is the highlight state of one slot.
type Class int

const (
	ClassNone Class = iota
	ClassMatch
	ClassMismatch
)

var classNames = map[Class]string{
	ClassNone:     "NONE",
	ClassMatch:    "MATCH",
	ClassMismatch: "MISMATCH",
}

func (c Class) String() string {
	if s, ok := classNames[c]; ok {
		return s
	}
	return fmt.Sprintf("Class(%d)", int(c))
}

func (c Class) MarshalText() ([]byte, error) {
	if _, ok := classNames[c]; !ok {
		return nil, fmt.Errorf("unknown class: %d", int(c))
	}
	return []byte(c.String()), nil
}

func (c *Class) UnmarshalText(text []byte) error {
	for class, name := range classNames {
		if name == string(text) {
			*c = class
			return nil
		}
	}
	return fmt.Errorf("unknown class: %s", text)
}

// Frame is the per-frame index over the active profiles for one container.
// Build it once per frame, then classify every slot in a single pass.
type Frame struct {
	containerType loadout.ContainerType
	bound         []*loadout.Requirement
	byId          map[int][]loadout.Requirement
	nameOnly      []loadout.Requirement
}

// NewFrame indexes the requirements of every profile for ct. Bound entries
// outside [0, liveLen) are dropped. When two profiles bind the same slot, a
// prioritized profile wins, then the earlier profile.
func NewFrame(profiles []*loadout.Profile, ct loadout.ContainerType, liveLen int) *Frame {
	f := &Frame{
		containerType: ct,
		bound:         make([]*loadout.Requirement, max(liveLen, 0)),
		byId:          map[int][]loadout.Requirement{},
	}

	ordered := slices.Clone(profiles)
	slices.SortStableFunc(ordered, func(a, b *loadout.Profile) int {
		switch {
		case a.Prioritized == b.Prioritized:
			return 0
		case a.Prioritized:
			return -1
		default:
			return 1
		}
	})

	for _, p := range ordered {
		if p.ContainerType != ct || p.Snapshot == nil {
			continue
		}

		for _, slot := range p.Snapshot.BoundSlots() {
			if slot >= len(f.bound) || f.bound[slot] != nil {
				continue
			}
			r, _ := p.Snapshot.BoundAt(slot)
			f.bound[slot] = &r
		}

		for _, r := range p.Snapshot.Floating() {
			ids := r.AcceptedIds()
			if len(ids) == 0 {
				f.nameOnly = append(f.nameOnly, r)
				continue
			}
			for _, id := range ids {
				f.byId[id] = append(f.byId[id], r)
			}
		}
	}

	return f
}

func (f *Frame) ContainerType() loadout.ContainerType {
	return f.containerType
}

// Classify returns one class per live slot.
//
// A slot with a bound entry is MATCH or MISMATCH by that entry alone. Other
// occupied slots are MATCH when a floating requirement accepts the item,
// MISMATCH when requirements exist for the item id but none is satisfied,
// and NONE otherwise.
func (f *Frame) Classify(live loadout.LiveContainer, names loadout.NameLookup) []Class {
	out := make([]Class, len(live))
	nc := loadout.NewNameCache(names)

	for i, item := range live {
		if i < len(f.bound) && f.bound[i] != nil {
			if f.bound[i].Matches(item.Id, nc.ItemName(item.Id), item.Quantity, i) {
				out[i] = ClassMatch
			} else {
				out[i] = ClassMismatch
			}
			continue
		}

		if item.Empty() {
			continue
		}

		if candidates, ok := f.byId[item.Id]; ok {
			out[i] = ClassMismatch
			for _, r := range candidates {
				if r.Matches(item.Id, nc.ItemName(item.Id), item.Quantity, i) {
					out[i] = ClassMatch
					break
				}
			}
			continue
		}

		for _, r := range f.nameOnly {
			if r.Matches(item.Id, nc.ItemName(item.Id), item.Quantity, i) {
				out[i] = ClassMatch
				break
			}
		}
	}

	return out
}
