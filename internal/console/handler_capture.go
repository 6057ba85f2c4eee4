package console

import (
	"context"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize/english"
	"github.com/pixil98/go-loadout/internal/loadout"
	"github.com/pixil98/go-loadout/internal/profiles"
)

// capture parses: <container> <name...> [bound|floating] [exact|any]
func (h *Handler) capture(ctx context.Context, args []string) (string, error) {
	if len(args) < 2 {
		return "", h.usage("capture")
	}

	ct, err := loadout.ParseContainerType(args[0])
	if err != nil {
		return "", NewUserError(fmt.Sprintf("Unknown container %q. Use inventory, bank or equipment.", args[0]))
	}

	mode, rest := parseCaptureMode(args[1:])
	name := strings.Join(rest, " ")
	container := strings.ToLower(ct.String())

	live := h.state.Container(ct)
	if live == nil {
		return "", NewUserError(fmt.Sprintf("The %s is not loaded.", container))
	}

	snapshot := loadout.CaptureFromLive(ct, live, h.names, mode)
	if snapshot.ItemCount() == 0 {
		return "", NewUserError(fmt.Sprintf("The %s is empty; there is nothing to capture.", container))
	}

	p := loadout.NewProfile(name, snapshot)
	if ct == loadout.ContainerBank {
		p.RequiredRenderState = loadout.RenderBankOpen
	}

	err = h.registry.Create(ctx, profiles.DefaultSet, p)
	if err != nil {
		return "", fmt.Errorf("saving captured profile: %w", err)
	}

	return fmt.Sprintf("Captured %q with %s from the %s.", name, english.Plural(snapshot.ItemCount(), "requirement", ""), container), nil
}

// parseCaptureMode strips trailing mode keywords, always leaving at least
// one word for the profile name. Captures default to bound and exact.
func parseCaptureMode(args []string) (loadout.CaptureMode, []string) {
	mode := loadout.CaptureMode{Positional: true, ExactQuantity: true}
	for len(args) > 1 {
		switch strings.ToLower(args[len(args)-1]) {
		case "bound":
			mode.Positional = true
		case "floating":
			mode.Positional = false
		case "exact":
			mode.ExactQuantity = true
		case "any":
			mode.ExactQuantity = false
		default:
			return mode, args
		}
		args = args[:len(args)-1]
	}
	return mode, args
}
