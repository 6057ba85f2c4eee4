package loadout

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/pixil98/go-errors"
	"golang.org/x/text/cases"
)

// Identity is an item equivalence class: a primary id and name plus any
// alternates that are accepted in their place.
type Identity struct {
	Id       int      `json:"id"`
	Name     string   `json:"name,omitempty"`
	AltIds   []int    `json:"altIds,omitempty"`
	AltNames []string `json:"altNames,omitempty"`
}

// AcceptedIds returns every id that satisfies this identity.
func (i Identity) AcceptedIds() []int {
	var out []int
	if i.Id > 0 {
		out = append(out, i.Id)
	}
	for _, id := range i.AltIds {
		if id > 0 && !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}

// Overlaps reports whether the two identities share any accepted id.
func (i Identity) Overlaps(other Identity) bool {
	ids := other.AcceptedIds()
	for _, id := range i.AcceptedIds() {
		if slices.Contains(ids, id) {
			return true
		}
	}
	return false
}

// accepts reports whether id is in the accepted set and whether the hit came
// from an alternate rather than the primary id.
func (i Identity) accepts(id int) (ok bool, viaAlt bool) {
	if id == i.Id {
		return true, false
	}
	if slices.Contains(i.AltIds, id) {
		return true, true
	}
	return false, false
}

// nameMatches checks whether the primary or any alternate name is contained
// in actual, ignoring case.
func (i Identity) nameMatches(actual string) bool {
	folded := cases.Fold().String(actual)
	if strings.Contains(folded, cases.Fold().String(i.Name)) {
		return true
	}
	for _, alt := range i.AltNames {
		if alt != "" && strings.Contains(folded, cases.Fold().String(alt)) {
			return true
		}
	}
	return false
}

func (i Identity) clone() Identity {
	i.AltIds = slices.Clone(i.AltIds)
	i.AltNames = slices.Clone(i.AltNames)
	return i
}

// Requirement is one item-matching rule. Requirements are treated as
// immutable values: the With* helpers return modified deep copies.
type Requirement struct {
	Identity

	Slot        int               `json:"slot"`
	Quantity    int               `json:"quantity"`
	QuantityMax int               `json:"quantityMax,omitempty"`
	Condition   QuantityCondition `json:"condition"`
	Flags       Flags             `json:"flags,omitempty"`
}

// RequirementOpt customizes a requirement built by NewRequirement.
type RequirementOpt func(*Requirement)

// WithAltIds adds alternate ids to the equivalence class.
func WithAltIds(ids ...int) RequirementOpt {
	return func(r *Requirement) {
		r.AltIds = append(r.AltIds, ids...)
	}
}

// WithAltNames adds alternate names to the equivalence class.
func WithAltNames(names ...string) RequirementOpt {
	return func(r *Requirement) {
		r.AltNames = append(r.AltNames, names...)
	}
}

// WithMaxQuantity sets the upper bound used by QuantityBetween.
func WithMaxQuantity(max int) RequirementOpt {
	return func(r *Requirement) {
		r.QuantityMax = max
	}
}

// WithTargetSlot records the slot the requirement was observed in.
func WithTargetSlot(slot int) RequirementOpt {
	return func(r *Requirement) {
		r.Slot = slot
	}
}

// NewRequirement builds an unbound requirement.
func NewRequirement(id int, name string, quantity int, cond QuantityCondition, opts ...RequirementOpt) Requirement {
	r := Requirement{
		Identity:  Identity{Id: id, Name: name},
		Slot:      NoSlot,
		Quantity:  quantity,
		Condition: cond,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// Matches evaluates the requirement against one observed slot. actualSlot
// is NoSlot when the slot position is unknown.
func (r Requirement) Matches(actualId int, actualName string, actualQuantity int, actualSlot int) bool {
	viaAlt := false
	if r.Id > 0 {
		ok, alt := r.accepts(actualId)
		if !ok {
			return false
		}
		viaAlt = alt
	}

	// Alternate ids are authoritative on their own.
	if !viaAlt && r.Name != "" && !r.Flags.Has(FlagIgnoreName) {
		if !r.nameMatches(actualName) {
			return false
		}
	}

	if r.Flags.Has(FlagRequireExactSlot) && r.Slot != NoSlot {
		if actualSlot == NoSlot || actualSlot != r.Slot {
			return false
		}
	}

	if !r.Flags.Has(FlagIgnoreQuantity) {
		if !r.Condition.Satisfied(actualQuantity, r.Quantity, r.QuantityMax) {
			return false
		}
	}

	return true
}

// Bound reports whether the requirement is pinned to its target slot.
func (r Requirement) Bound() bool {
	return r.Flags.Has(FlagRequireExactSlot) && r.Slot != NoSlot
}

// Validate reports structural problems. A BETWEEN range whose maximum is
// below its minimum is rejected rather than left to never match.
func (r Requirement) Validate() error {
	el := errors.NewErrorList()

	if r.Id <= 0 && r.Name == "" && len(r.AltIds) == 0 {
		el.Add(fmt.Errorf("requirement must have an id or a name"))
	}
	if !r.Condition.Valid() {
		el.Add(fmt.Errorf("unknown quantity condition %d", int(r.Condition)))
	}
	if r.Quantity < 0 {
		el.Add(fmt.Errorf("quantity must not be negative"))
	}
	if r.Condition == QuantityBetween && r.QuantityMax < r.Quantity {
		el.Add(fmt.Errorf("quantity range %d-%d is empty", r.Quantity, r.QuantityMax))
	}
	if r.Slot < NoSlot {
		el.Add(fmt.Errorf("slot %d is invalid", r.Slot))
	}

	return el.Err()
}

// Clone returns a deep copy.
func (r Requirement) Clone() Requirement {
	r.Identity = r.Identity.clone()
	return r
}

// WithFlags returns a copy with the given flags added.
func (r Requirement) WithFlags(fs ...Flag) Requirement {
	c := r.Clone()
	c.Flags = c.Flags.With(fs...)
	return c
}

// WithoutFlags returns a copy with the given flags removed.
func (r Requirement) WithoutFlags(fs ...Flag) Requirement {
	c := r.Clone()
	c.Flags = c.Flags.Without(fs...)
	return c
}

// WithSlot returns a copy targeting slot.
func (r Requirement) WithSlot(slot int) Requirement {
	c := r.Clone()
	c.Slot = slot
	return c
}

// WithQuantity returns a copy with a new quantity rule.
func (r Requirement) WithQuantity(cond QuantityCondition, quantity, max int) Requirement {
	c := r.Clone()
	c.Condition = cond
	c.Quantity = quantity
	c.QuantityMax = max
	return c
}

// Describe renders the requirement for humans, e.g. "Coins (995) x1000".
func (r Requirement) Describe() string {
	return r.DescribeWith(strconv.Itoa)
}

// DescribeWith is Describe with a custom quantity formatter.
func (r Requirement) DescribeWith(quantity func(int) string) string {
	var sb strings.Builder
	if r.Name != "" {
		sb.WriteString(r.Name)
	} else {
		sb.WriteString("item")
	}
	if r.Id > 0 {
		fmt.Fprintf(&sb, " (%d)", r.Id)
	}

	if r.Flags.Has(FlagIgnoreQuantity) {
		return sb.String()
	}
	switch r.Condition {
	case QuantityExact:
		sb.WriteString(" x" + quantity(r.Quantity))
	case QuantityAtLeast:
		sb.WriteString(" x" + quantity(r.Quantity) + "+")
	case QuantityAtMost:
		sb.WriteString(" x<=" + quantity(r.Quantity))
	case QuantityBetween:
		sb.WriteString(" x" + quantity(r.Quantity) + "-" + quantity(r.QuantityMax))
	}
	return sb.String()
}
