package console

import (
	"context"
	"fmt"
	"strings"

	"github.com/pixil98/go-loadout/internal/loadout"
)

func (h *Handler) setEnabled(enabled bool) CommandFunc {
	return func(ctx context.Context, args []string) (string, error) {
		p, err := h.update(ctx, strings.Join(args, " "), func(p *loadout.Profile) error {
			p.Enabled = enabled
			return nil
		})
		if err != nil {
			return "", err
		}

		state := "disabled"
		if enabled {
			state = "enabled"
		}
		return fmt.Sprintf("%s %s.", p.Name, state), nil
	}
}

// toggle builds an "<profile> on|off" command that applies set.
func (h *Handler) toggle(label string, set func(*loadout.Profile, bool)) CommandFunc {
	return func(ctx context.Context, args []string) (string, error) {
		if len(args) < 2 {
			return "", NewUserError("Usage: <profile> on|off")
		}
		on, err := parseOnOff(args[len(args)-1])
		if err != nil {
			return "", err
		}

		p, err := h.update(ctx, strings.Join(args[:len(args)-1], " "), func(p *loadout.Profile) error {
			snapshotOf(p)
			set(p, on)
			return nil
		})
		if err != nil {
			return "", err
		}

		state := "off"
		if on {
			state = "on"
		}
		return fmt.Sprintf("%s: %s %s.", p.Name, label, state), nil
	}
}

// remove parses: <profile...> slot <n> | <profile...> item <id>
func (h *Handler) remove(ctx context.Context, args []string) (string, error) {
	if len(args) < 3 {
		return "", h.usage("remove")
	}

	kind := strings.ToLower(args[len(args)-2])
	n, err := parseNumber(args[len(args)-1])
	if err != nil {
		return "", err
	}
	query := strings.Join(args[:len(args)-2], " ")

	var removed int
	var apply func(*loadout.Snapshot) int
	switch kind {
	case "slot":
		apply = func(s *loadout.Snapshot) int {
			if s.RemoveBySlot(n) {
				return 1
			}
			return 0
		}
	case "item":
		apply = func(s *loadout.Snapshot) int {
			return s.RemoveByPrimaryId(n)
		}
	default:
		return "", h.usage("remove")
	}

	p, err := h.update(ctx, query, func(p *loadout.Profile) error {
		if p.Snapshot != nil {
			removed = apply(p.Snapshot)
		}
		if removed == 0 {
			return NewUserError(fmt.Sprintf("%s has no requirement for %s %d.", p.Name, kind, n))
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("Removed %d from %s; %d left.", removed, p.Name, p.Snapshot.ItemCount()), nil
}

func (h *Handler) deleteProfile(ctx context.Context, args []string) (string, error) {
	p, err := h.resolve(strings.Join(args, " "))
	if err != nil {
		return "", err
	}

	err = h.registry.Delete(ctx, p.Id)
	if err != nil {
		return "", fmt.Errorf("deleting profile %s: %w", p.Id, err)
	}
	return fmt.Sprintf("Deleted %s.", p.Name), nil
}
