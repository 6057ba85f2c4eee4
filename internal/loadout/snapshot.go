package loadout

import (
	"fmt"
	"maps"
	"slices"
)

// Snapshot is the expected contents of one container: requirements bound to
// specific slots plus an ordered list of floating requirements that may be
// satisfied by any slot.
//
// The zero value is an empty snapshot of ContainerUnknown. A Snapshot is not
// safe for concurrent use. Callers that share one across goroutines publish
// a fresh copy instead of mutating it in place.
type Snapshot struct {
	containerType     ContainerType
	bound             map[int]Requirement
	floating          []Requirement
	enforceEmptySlots bool
}

// NewSnapshot returns an empty snapshot for ct.
func NewSnapshot(ct ContainerType) *Snapshot {
	return &Snapshot{
		containerType: ct,
		bound:         map[int]Requirement{},
	}
}

func (s *Snapshot) ContainerType() ContainerType {
	return s.containerType
}

// EnforceEmptySlots reports whether occupied slots that no requirement
// accounts for are treated as mismatches.
func (s *Snapshot) EnforceEmptySlots() bool {
	return s.enforceEmptySlots
}

func (s *Snapshot) SetEnforceEmptySlots(enforce bool) {
	s.enforceEmptySlots = enforce
}

// AddBound pins req to slot, replacing whatever was bound there.
func (s *Snapshot) AddBound(slot int, req Requirement) error {
	if slot < 0 {
		return fmt.Errorf("slot %d is invalid", slot)
	}

	r := req.WithSlot(slot).WithFlags(FlagRequireExactSlot)
	if err := r.Validate(); err != nil {
		return fmt.Errorf("validating requirement: %w", err)
	}

	if s.bound == nil {
		s.bound = map[int]Requirement{}
	}
	s.bound[slot] = r
	return nil
}

// AddFloating appends req to the floating list. It is a no-op returning
// false when any existing requirement already accepts one of req's ids.
func (s *Snapshot) AddFloating(req Requirement) (bool, error) {
	if err := req.Validate(); err != nil {
		return false, fmt.Errorf("validating requirement: %w", err)
	}

	for _, existing := range s.bound {
		if existing.Overlaps(req.Identity) {
			return false, nil
		}
	}
	for _, existing := range s.floating {
		if existing.Overlaps(req.Identity) {
			return false, nil
		}
	}

	s.floating = append(s.floating, req.Clone())
	return true, nil
}

// RemoveByPrimaryId removes every requirement whose primary id equals id.
// Alternate ids are not consulted. Returns the number removed.
func (s *Snapshot) RemoveByPrimaryId(id int) int {
	removed := 0
	for slot, r := range s.bound {
		if r.Id == id {
			delete(s.bound, slot)
			removed++
		}
	}

	before := len(s.floating)
	s.floating = slices.DeleteFunc(s.floating, func(r Requirement) bool {
		return r.Id == id
	})
	removed += before - len(s.floating)

	return removed
}

// RemoveBySlot removes the requirement bound to slot.
func (s *Snapshot) RemoveBySlot(slot int) bool {
	if _, ok := s.bound[slot]; !ok {
		return false
	}
	delete(s.bound, slot)
	return true
}

// Edit replaces every requirement whose primary id equals id with the copy
// derive returns for it. Bound requirements keep their slot. Alternate ids a
// floating requirement gains may not be accepted by any other requirement.
// Nothing changes unless every derived requirement is valid. Returns the
// number of requirements replaced.
func (s *Snapshot) Edit(id int, derive func(Requirement) Requirement) (int, error) {
	bound := maps.Clone(s.bound)
	floating := slices.Clone(s.floating)
	edited := 0

	for slot, r := range s.bound {
		if r.Id != id {
			continue
		}
		d := derive(r.Clone()).WithSlot(slot).WithFlags(FlagRequireExactSlot)
		if err := d.Validate(); err != nil {
			return 0, fmt.Errorf("validating requirement: %w", err)
		}
		bound[slot] = d
		edited++
	}

	for i, r := range s.floating {
		if r.Id != id {
			continue
		}
		d := derive(r.Clone())
		if err := d.Validate(); err != nil {
			return 0, fmt.Errorf("validating requirement: %w", err)
		}

		gained := Identity{AltIds: slices.DeleteFunc(d.AcceptedIds(), func(a int) bool {
			return slices.Contains(r.AcceptedIds(), a)
		})}
		for j, other := range s.floating {
			if j != i && other.Overlaps(gained) {
				return 0, fmt.Errorf("%s already accepts one of %v", other.Describe(), gained.AltIds)
			}
		}
		for _, other := range s.bound {
			if other.Overlaps(gained) {
				return 0, fmt.Errorf("%s already accepts one of %v", other.Describe(), gained.AltIds)
			}
		}

		floating[i] = d
		edited++
	}

	s.bound = bound
	s.floating = floating
	return edited, nil
}

// ItemCount returns the number of requirements, bound and floating.
func (s *Snapshot) ItemCount() int {
	return len(s.bound) + len(s.floating)
}

// BoundSlots returns the bound slots in ascending order.
func (s *Snapshot) BoundSlots() []int {
	return slices.Sorted(maps.Keys(s.bound))
}

// BoundAt returns a copy of the requirement bound to slot.
func (s *Snapshot) BoundAt(slot int) (Requirement, bool) {
	r, ok := s.bound[slot]
	if !ok {
		return Requirement{}, false
	}
	return r.Clone(), true
}

// Floating returns a copy of the floating requirements in match order.
func (s *Snapshot) Floating() []Requirement {
	out := make([]Requirement, len(s.floating))
	for i, r := range s.floating {
		out[i] = r.Clone()
	}
	return out
}

// Requirements returns every requirement, bound ones first by slot.
func (s *Snapshot) Requirements() []Requirement {
	out := make([]Requirement, 0, s.ItemCount())
	for _, slot := range s.BoundSlots() {
		out = append(out, s.bound[slot].Clone())
	}
	return append(out, s.Floating()...)
}

// Clone returns a deep copy.
func (s *Snapshot) Clone() *Snapshot {
	c := NewSnapshot(s.containerType)
	c.enforceEmptySlots = s.enforceEmptySlots
	for slot, r := range s.bound {
		c.bound[slot] = r.Clone()
	}
	c.floating = s.Floating()
	return c
}

// Validate reports whether every requirement is satisfied by live.
func (s *Snapshot) Validate(live LiveContainer, names NameLookup) bool {
	return s.ValidateDetailed(live, names).Satisfies(PresenceAll, 0)
}

// ValidateDetailed matches the snapshot against live in three passes:
//
//  1. bound requirements are checked against their own slot, in slot order;
//  2. floating requirements, in insertion order, each take the first
//     slot not yet consumed that they match (greedy first fit, not a maximum matching);
//  3. if empty slots are enforced, every occupied slot not consumed by a
//     match is an anomaly, including a slot whose bound requirement failed.
//
// A slot whose bound requirement failed stays available to pass 2.
//
// A nil live container reports every requirement as mismatched.
func (s *Snapshot) ValidateDetailed(live LiveContainer, names NameLookup) *Result {
	res := newResult()

	if live == nil {
		for _, r := range s.Requirements() {
			res.RecordMismatch(NoSlot, &r)
		}
		return res
	}

	nc := NewNameCache(names)
	consumed := make([]bool, len(live))

	for _, slot := range s.BoundSlots() {
		r := s.bound[slot]
		if slot >= len(live) {
			res.RecordMismatch(NoSlot, &r)
			continue
		}

		item := live[slot]
		if r.Matches(item.Id, nc.ItemName(item.Id), item.Quantity, slot) {
			consumed[slot] = true
			res.RecordMatch(slot)
		} else {
			res.RecordMismatch(slot, &r)
		}
	}

	for _, r := range s.floating {
		found := NoSlot
		for i, item := range live {
			if consumed[i] || item.Empty() {
				continue
			}
			if r.Matches(item.Id, nc.ItemName(item.Id), item.Quantity, i) {
				found = i
				break
			}
		}

		if found == NoSlot {
			res.RecordMismatch(NoSlot, &r)
			continue
		}
		consumed[found] = true
		res.RecordMatch(found)
	}

	if s.enforceEmptySlots {
		for i, item := range live {
			if consumed[i] || item.Empty() {
				continue
			}
			res.RecordMismatch(i, nil)
		}
	}

	return res
}

// CaptureMode controls how CaptureFromLive builds requirements.
type CaptureMode struct {
	// Positional binds each requirement to the slot it was observed in.
	Positional bool
	// ExactQuantity records the observed quantity as an exact requirement;
	// otherwise any non-zero quantity is accepted.
	ExactQuantity bool
}

// CaptureFromLive builds a snapshot that the given live state satisfies.
// Position-agnostic captures collapse repeated item ids into a single
// floating requirement.
func CaptureFromLive(ct ContainerType, live LiveContainer, names NameLookup, mode CaptureMode) *Snapshot {
	s := NewSnapshot(ct)
	nc := NewNameCache(names)

	cond := QuantityAny
	if mode.ExactQuantity {
		cond = QuantityExact
	}

	for i, item := range live {
		if item.Empty() {
			continue
		}

		name := nc.ItemName(item.Id)
		if name == UnknownItemName {
			name = ""
		}
		req := NewRequirement(item.Id, name, item.Quantity, cond, WithTargetSlot(i))

		if mode.Positional {
			// Requirements built from observed items are always valid.
			_ = s.AddBound(i, req)
		} else {
			_, _ = s.AddFloating(req.WithSlot(NoSlot))
		}
	}

	return s
}
