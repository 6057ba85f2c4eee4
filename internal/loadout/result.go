package loadout

import (
	"fmt"
	"strings"
)

// PresenceMode is the aggregate pass/fail policy over a set of outcomes.
type PresenceMode int

const (
	PresenceAll PresenceMode = iota
	PresenceAny
	PresenceAtLeast
)

var presenceModeNames = map[PresenceMode]string{
	PresenceAll:     "ALL",
	PresenceAny:     "ANY",
	PresenceAtLeast: "AT_LEAST_N",
}

func (pm PresenceMode) String() string {
	if s, ok := presenceModeNames[pm]; ok {
		return s
	}
	return fmt.Sprintf("PresenceMode(%d)", int(pm))
}

func (pm PresenceMode) MarshalText() ([]byte, error) {
	if _, ok := presenceModeNames[pm]; !ok {
		return nil, fmt.Errorf("unknown presence mode: %d", int(pm))
	}
	return []byte(pm.String()), nil
}

func (pm *PresenceMode) UnmarshalText(text []byte) error {
	for mode, name := range presenceModeNames {
		if strings.EqualFold(name, string(text)) {
			*pm = mode
			return nil
		}
	}
	return fmt.Errorf("unknown presence mode: %s", text)
}

// Result is the report produced by a single validation call.
type Result struct {
	Total      int
	Matched    int
	Mismatched int

	// Outcomes maps a slot to whether the last outcome recorded there
	// matched. Unattributed mismatches are recorded under NoSlot.
	Outcomes map[int]bool

	// Unmatched lists requirements that found no satisfying slot.
	Unmatched []Requirement

	// Anomalies lists occupied slots that no requirement accounted for.
	Anomalies []int
}

func newResult() *Result {
	return &Result{Outcomes: map[int]bool{}}
}

// RecordMatch records a satisfied requirement at slot.
func (r *Result) RecordMatch(slot int) {
	r.Matched++
	r.Total++
	r.Outcomes[slot] = true
}

// RecordMismatch records a failure at slot. A nil requirement marks an
// anomaly: an occupied slot that nothing expected.
func (r *Result) RecordMismatch(slot int, req *Requirement) {
	r.Mismatched++
	r.Total++
	r.Outcomes[slot] = false
	if req != nil {
		r.Unmatched = append(r.Unmatched, req.Clone())
	} else {
		r.Anomalies = append(r.Anomalies, slot)
	}
}

// Satisfies applies a presence policy. threshold is only read by
// PresenceAtLeast.
func (r *Result) Satisfies(mode PresenceMode, threshold int) bool {
	switch mode {
	case PresenceAll:
		return r.Mismatched == 0
	case PresenceAny:
		return r.Matched > 0
	case PresenceAtLeast:
		return r.Matched >= threshold
	default:
		return false
	}
}
