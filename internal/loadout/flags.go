package loadout

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Flag is a single modifier on how a requirement is matched.
type Flag uint8

const (
	// FlagRequireExactSlot pins the requirement to its target slot.
	FlagRequireExactSlot Flag = 1 << iota
	// FlagIgnoreQuantity skips the quantity condition entirely.
	FlagIgnoreQuantity
	// FlagIgnoreName matches by id alone even when a name is recorded.
	FlagIgnoreName
)

var flagNames = []struct {
	flag Flag
	name string
}{
	{FlagRequireExactSlot, "REQUIRE_EXACT_SLOT"},
	{FlagIgnoreQuantity, "IGNORE_QUANTITY"},
	{FlagIgnoreName, "IGNORE_NAME"},
}

// Flags is a set of independent modifiers.
type Flags uint8

// NewFlags builds a set from the given flags.
func NewFlags(fs ...Flag) Flags {
	var out Flags
	for _, f := range fs {
		out |= Flags(f)
	}
	return out
}

func (f Flags) Has(flag Flag) bool {
	return f&Flags(flag) != 0
}

func (f Flags) With(fs ...Flag) Flags {
	return f | NewFlags(fs...)
}

func (f Flags) Without(fs ...Flag) Flags {
	return f &^ NewFlags(fs...)
}

// Names returns the set members in declaration order.
func (f Flags) Names() []string {
	var out []string
	for _, fn := range flagNames {
		if f.Has(fn.flag) {
			out = append(out, fn.name)
		}
	}
	return out
}

func (f Flags) String() string {
	return strings.Join(f.Names(), "|")
}

func (f Flags) MarshalJSON() ([]byte, error) {
	names := f.Names()
	if names == nil {
		names = []string{}
	}
	return json.Marshal(names)
}

func (f *Flags) UnmarshalJSON(b []byte) error {
	var names []string
	if err := json.Unmarshal(b, &names); err != nil {
		return fmt.Errorf("unmarshalling flags: %w", err)
	}

	var out Flags
	for _, n := range names {
		flag, err := ParseFlag(n)
		if err != nil {
			return err
		}
		out |= Flags(flag)
	}
	*f = out
	return nil
}

// ParseFlag parses a flag name, ignoring case.
func ParseFlag(s string) (Flag, error) {
	for _, fn := range flagNames {
		if strings.EqualFold(fn.name, s) {
			return fn.flag, nil
		}
	}
	return 0, fmt.Errorf("unknown flag: %s", s)
}
