package console

import (
	"context"
	"fmt"
	"strings"
)

const itemSearchLimit = 10

func (h *Handler) searchItems(ctx context.Context, args []string) (string, error) {
	query := strings.Join(args, " ")
	if query == "" {
		return "", h.usage("items")
	}
	if h.items == nil {
		return "", NewUserError("No item catalog is loaded.")
	}

	found := h.items.Search(query, itemSearchLimit)
	if len(found) == 0 {
		return fmt.Sprintf("No items match %q.", query), nil
	}

	lines := make([]string, 0, len(found))
	for _, it := range found {
		lines = append(lines, fmt.Sprintf("  %6d  %s", it.Id, it.Name))
	}
	return strings.Join(lines, "\n"), nil
}
