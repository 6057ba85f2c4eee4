package loadout

import (
	"fmt"
	"strings"
)

// RenderState is a client interface condition a profile can be gated on.
type RenderState string

const (
	RenderAlways         RenderState = "ALWAYS"
	RenderInventoryOpen  RenderState = "INVENTORY_OPEN"
	RenderBankOpen       RenderState = "BANK_OPEN"
	RenderEquipmentOpen  RenderState = "EQUIPMENT_OPEN"
	RenderDepositBoxOpen RenderState = "DEPOSIT_BOX_OPEN"
)

var renderStates = []RenderState{
	RenderAlways,
	RenderInventoryOpen,
	RenderBankOpen,
	RenderEquipmentOpen,
	RenderDepositBoxOpen,
}

// ParseRenderState parses a render state name, ignoring case.
func ParseRenderState(s string) (RenderState, error) {
	for _, rs := range renderStates {
		if strings.EqualFold(string(rs), s) {
			return rs, nil
		}
	}
	return "", fmt.Errorf("unknown render state: %s", s)
}

func (rs *RenderState) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*rs = RenderAlways
		return nil
	}
	parsed, err := ParseRenderState(string(text))
	if err != nil {
		return err
	}
	*rs = parsed
	return nil
}

// RenderStateChecker reports whether a render state is currently active.
type RenderStateChecker interface {
	IsActive(RenderState) bool
}

// RenderStateCheckerFunc adapts a function to RenderStateChecker.
type RenderStateCheckerFunc func(RenderState) bool

func (f RenderStateCheckerFunc) IsActive(rs RenderState) bool {
	return f(rs)
}
