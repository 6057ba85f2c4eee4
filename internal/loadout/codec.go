package loadout

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"
)

// snapshotJSON is the persisted form of a Snapshot. Requirements share one
// string-keyed map: keys >= 0 are bound slots and keys < 0 are floating
// requirements numbered downward from -1 in match order.
type snapshotJSON struct {
	ContainerType     ContainerType          `json:"containerType"`
	Items             map[string]Requirement `json:"items"`
	EnforceEmptySlots bool                   `json:"enforceEmptySlots"`
}

func (s *Snapshot) MarshalJSON() ([]byte, error) {
	out := snapshotJSON{
		ContainerType:     s.containerType,
		Items:             make(map[string]Requirement, s.ItemCount()),
		EnforceEmptySlots: s.enforceEmptySlots,
	}
	for slot, r := range s.bound {
		out.Items[strconv.Itoa(slot)] = r
	}
	for i, r := range s.floating {
		out.Items[strconv.Itoa(-(i + 1))] = r
	}
	return json.Marshal(out)
}

func (s *Snapshot) UnmarshalJSON(b []byte) error {
	var in snapshotJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}

	loaded := NewSnapshot(in.ContainerType)
	loaded.enforceEmptySlots = in.EnforceEmptySlots

	floating := map[int]Requirement{}
	for k, r := range in.Items {
		key, err := strconv.Atoi(k)
		if err != nil {
			return fmt.Errorf("invalid requirement key %q: %w", k, err)
		}
		if key < 0 {
			floating[key] = r
			continue
		}
		loaded.bound[key] = r.WithSlot(key).WithFlags(FlagRequireExactSlot)
	}

	// -1 was assigned first, so descending key order is insertion order.
	keys := slices.Sorted(maps.Keys(floating))
	slices.Reverse(keys)
	for _, key := range keys {
		loaded.floating = append(loaded.floating, floating[key].Clone())
	}

	*s = *loaded
	return nil
}
