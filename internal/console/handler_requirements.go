package console

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize/english"
	"github.com/pixil98/go-loadout/internal/loadout"
)

// add parses: <profile...> slot <n> <id> [condition [qty [max]]]
//
//	| <profile...> item <id> [condition [qty [max]]]
func (h *Handler) add(ctx context.Context, args []string) (string, error) {
	i := lastKeyword(args, "slot", "item")
	if i < 1 {
		return "", h.usage("add")
	}
	bound := strings.EqualFold(args[i], "slot")
	rest := args[i+1:]

	slot := 0
	if bound {
		if len(rest) == 0 {
			return "", h.usage("add")
		}
		n, err := parseNumber(rest[0])
		if err != nil {
			return "", err
		}
		slot, rest = n, rest[1:]
	}
	if len(rest) == 0 {
		return "", h.usage("add")
	}
	id, err := parseNumber(rest[0])
	if err != nil {
		return "", err
	}
	cond, qty, qtyMax, err := parseQuantity(rest[1:])
	if err != nil {
		return "", err
	}

	req := loadout.NewRequirement(id, h.itemName(id), qty, cond, loadout.WithMaxQuantity(qtyMax))
	if err := req.Validate(); err != nil {
		return "", NewUserError(fmt.Sprintf("Invalid requirement: %s.", err))
	}

	var added loadout.Requirement
	p, err := h.update(ctx, strings.Join(args[:i], " "), func(p *loadout.Profile) error {
		s := snapshotOf(p)
		if bound {
			if err := s.AddBound(slot, req); err != nil {
				return NewUserError(fmt.Sprintf("Slot %d is invalid.", slot))
			}
			added, _ = s.BoundAt(slot)
			return nil
		}

		ok, err := s.AddFloating(req)
		if err != nil {
			return NewUserError(fmt.Sprintf("Invalid requirement: %s.", err))
		}
		if !ok {
			return NewUserError(fmt.Sprintf("%s already has a requirement accepting item %d.", p.Name, id))
		}
		added = req
		return nil
	})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("Added %s to %s.", DescribeRequirement(added), p.Name), nil
}

// alt parses: <profile...> <id> <altId|altName...>
func (h *Handler) alt(ctx context.Context, args []string) (string, error) {
	i := firstNumber(args, 1)
	if i < 1 || i == len(args)-1 {
		return "", h.usage("alt")
	}
	id, _ := strconv.Atoi(args[i])
	alt := strings.Join(args[i+1:], " ")

	opt := loadout.WithAltNames(alt)
	if altId, err := strconv.Atoi(alt); err == nil {
		opt = loadout.WithAltIds(altId)
	}

	p, err := h.editRequirements(ctx, strings.Join(args[:i], " "), id, func(r loadout.Requirement) loadout.Requirement {
		opt(&r)
		return r
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s: item %d now also accepts %s.", p.Name, id, alt), nil
}

// quantity parses: <profile...> <id> <condition> [qty [max]]
func (h *Handler) quantity(ctx context.Context, args []string) (string, error) {
	i := -1
	for j := 1; j < len(args)-1; j++ {
		if _, err := strconv.Atoi(args[j]); err != nil {
			continue
		}
		if _, err := loadout.ParseQuantityCondition(args[j+1]); err == nil {
			i = j
			break
		}
	}
	if i < 1 {
		return "", h.usage("quantity")
	}
	id, _ := strconv.Atoi(args[i])

	cond, qty, qtyMax, err := parseQuantity(args[i+1:])
	if err != nil {
		return "", err
	}

	var edited int
	p, err := h.editRequirements(ctx, strings.Join(args[:i], " "), id, func(r loadout.Requirement) loadout.Requirement {
		edited++
		return r.WithQuantity(cond, qty, qtyMax)
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Updated %s in %s.", english.Plural(edited, "requirement", ""), p.Name), nil
}

// flag parses: <profile...> <id> <flag> on|off
func (h *Handler) flag(ctx context.Context, args []string) (string, error) {
	if len(args) < 4 {
		return "", h.usage("flag")
	}
	n := len(args)

	id, err := parseNumber(args[n-3])
	if err != nil {
		return "", err
	}
	f, err := loadout.ParseFlag(args[n-2])
	if err != nil {
		return "", NewUserError(fmt.Sprintf("Unknown flag %q. Use ignore_quantity or ignore_name.", args[n-2]))
	}
	if f == loadout.FlagRequireExactSlot {
		return "", NewUserError("Bind a requirement to a slot with 'add <profile> slot <n> <id>'.")
	}
	on, err := parseOnOff(args[n-1])
	if err != nil {
		return "", err
	}

	p, err := h.editRequirements(ctx, strings.Join(args[:n-3], " "), id, func(r loadout.Requirement) loadout.Requirement {
		if on {
			return r.WithFlags(f)
		}
		return r.WithoutFlags(f)
	})
	if err != nil {
		return "", err
	}

	state := "off"
	if on {
		state = "on"
	}
	return fmt.Sprintf("%s: %s %s for item %d.", p.Name, loadout.NewFlags(f), state, id), nil
}

// presence parses: <profile...> all|any|at_least_n [n]
func (h *Handler) presence(ctx context.Context, args []string) (string, error) {
	if len(args) < 2 {
		return "", h.usage("presence")
	}

	threshold := 0
	if n, err := strconv.Atoi(args[len(args)-1]); err == nil && len(args) >= 3 {
		threshold = n
		args = args[:len(args)-1]
	}
	word := args[len(args)-1]

	var mode loadout.PresenceMode
	if err := mode.UnmarshalText([]byte(word)); err != nil {
		return "", NewUserError(fmt.Sprintf("Expected all, any or at_least_n, got %q.", word))
	}
	switch {
	case mode == loadout.PresenceAtLeast && threshold < 1:
		return "", NewUserError("at_least_n needs a count of at least 1.")
	case mode != loadout.PresenceAtLeast && threshold != 0:
		return "", h.usage("presence")
	}

	p, err := h.update(ctx, strings.Join(args[:len(args)-1], " "), func(p *loadout.Profile) error {
		p.Presence = loadout.Presence{Mode: mode, Threshold: threshold}
		return nil
	})
	if err != nil {
		return "", err
	}

	if mode == loadout.PresenceAtLeast {
		return fmt.Sprintf("%s: presence %s %d.", p.Name, mode, threshold), nil
	}
	return fmt.Sprintf("%s: presence %s.", p.Name, mode), nil
}

// render parses: <profile...> <state>
func (h *Handler) render(ctx context.Context, args []string) (string, error) {
	if len(args) < 2 {
		return "", h.usage("render")
	}
	rs, err := loadout.ParseRenderState(args[len(args)-1])
	if err != nil {
		return "", NewUserError(fmt.Sprintf("Unknown render state %q.", args[len(args)-1]))
	}

	p, err := h.update(ctx, strings.Join(args[:len(args)-1], " "), func(p *loadout.Profile) error {
		p.RequiredRenderState = rs
		return nil
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s: render state %s.", p.Name, rs), nil
}

// editRequirements derives a modified copy of every requirement in the
// profile whose primary id is id.
func (h *Handler) editRequirements(ctx context.Context, query string, id int, derive func(loadout.Requirement) loadout.Requirement) (*loadout.Profile, error) {
	return h.update(ctx, query, func(p *loadout.Profile) error {
		n, err := snapshotOf(p).Edit(id, derive)
		if err != nil {
			return NewUserError(fmt.Sprintf("Cannot change item %d: %s.", id, err))
		}
		if n == 0 {
			return NewUserError(fmt.Sprintf("%s has no requirement for item %d.", p.Name, id))
		}
		return nil
	})
}

func (h *Handler) itemName(id int) string {
	name := h.names.ItemName(id)
	if name == loadout.UnknownItemName {
		return ""
	}
	return name
}

func snapshotOf(p *loadout.Profile) *loadout.Snapshot {
	if p.Snapshot == nil {
		p.Snapshot = loadout.NewSnapshot(p.ContainerType)
	}
	return p.Snapshot
}

// parseQuantity parses: [condition [qty [max]]]. No arguments means any
// non-zero quantity.
func parseQuantity(args []string) (loadout.QuantityCondition, int, int, error) {
	if len(args) == 0 {
		return loadout.QuantityAny, 1, 0, nil
	}

	cond, err := loadout.ParseQuantityCondition(args[0])
	if err != nil {
		return 0, 0, 0, NewUserError(fmt.Sprintf("Unknown condition %q. Use exact, at_least, at_most, between or any.", args[0]))
	}

	nums := make([]int, 0, 2)
	for _, a := range args[1:] {
		n, err := parseNumber(a)
		if err != nil {
			return 0, 0, 0, err
		}
		nums = append(nums, n)
	}

	switch {
	case cond == loadout.QuantityBetween && len(nums) != 2:
		return 0, 0, 0, NewUserError("between needs a minimum and a maximum.")
	case cond == loadout.QuantityBetween:
		return cond, nums[0], nums[1], nil
	case len(nums) > 1:
		return 0, 0, 0, NewUserError(fmt.Sprintf("%s takes one quantity.", strings.ToLower(cond.String())))
	case len(nums) == 1:
		return cond, nums[0], 0, nil
	default:
		return cond, 1, 0, nil
	}
}

func parseNumber(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, NewUserError(fmt.Sprintf("%q is not a number.", s))
	}
	return n, nil
}

// lastKeyword returns the index of the last of keywords in args, or -1.
func lastKeyword(args []string, keywords ...string) int {
	for i := len(args) - 1; i >= 0; i-- {
		for _, k := range keywords {
			if strings.EqualFold(args[i], k) {
				return i
			}
		}
	}
	return -1
}

// firstNumber returns the index of the first numeric argument at or after
// from, or -1.
func firstNumber(args []string, from int) int {
	for i := from; i < len(args); i++ {
		if _, err := strconv.Atoi(args[i]); err == nil {
			return i
		}
	}
	return -1
}
