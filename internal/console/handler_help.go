package console

import (
	"context"
	"fmt"
	"strings"
)

func (h *Handler) help(ctx context.Context, args []string) (string, error) {
	if len(args) > 0 {
		cmd, ok := h.commands[strings.ToLower(args[0])]
		if !ok {
			return "", NewUserError(fmt.Sprintf("Command %q is unknown.", args[0]))
		}
		return fmt.Sprintf("Usage: %s\n%s", cmd.usage, WrapIndented(cmd.description, 2)), nil
	}

	lines := []string{"Available commands:"}
	for _, name := range h.commandNames() {
		lines = append(lines, "  "+h.commands[name].usage)
	}
	lines = append(lines, Wrap("Profiles may be named by id, by full name, or by any close match."))
	return strings.Join(lines, "\n"), nil
}

func (h *Handler) quit(ctx context.Context, args []string) (string, error) {
	return "Goodbye!", ErrQuit
}
