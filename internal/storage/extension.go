package storage

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
)

// ExtensionState carries opaque per-record settings owned by other
// components (overlay colours, panel layout) so they survive a save
// without the owning record having to understand them.
type ExtensionState map[string]json.RawMessage

// Set stores v under k after marshalling it to JSON.
func (e *ExtensionState) Set(k string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal extension %q: %w", k, err)
	}

	if *e == nil {
		*e = ExtensionState{}
	}
	(*e)[k] = json.RawMessage(b)
	return nil
}

// Get unmarshals the value at k into out.
// Returns (found=false, nil) if not present.
func (e ExtensionState) Get(k string, out any) (bool, error) {
	raw, ok := e[k]
	if !ok || len(raw) == 0 {
		return false, nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return true, fmt.Errorf("unmarshal extension %q: %w", k, err)
	}
	return true, nil
}

// Delete removes k, if present.
func (e ExtensionState) Delete(k string) {
	delete(e, k)
}

// Keys returns the stored keys in sorted order.
func (e ExtensionState) Keys() []string {
	return slices.Sorted(maps.Keys(e))
}

// Clone returns a copy that shares no backing arrays with e.
func (e ExtensionState) Clone() ExtensionState {
	if e == nil {
		return nil
	}
	out := make(ExtensionState, len(e))
	for k, v := range e {
		out[k] = slices.Clone(v)
	}
	return out
}
