package catalog

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-loadout/internal/loadout"
	"github.com/sahilm/fuzzy"
	"gopkg.in/yaml.v3"
)

// Item is one catalog entry.
type Item struct {
	Id   int    `yaml:"id"`
	Name string `yaml:"name"`
}

type catalogFile struct {
	Items []Item `yaml:"items"`
}

// Catalog resolves item ids to display names. It is read-only after
// construction and safe for concurrent use.
type Catalog struct {
	names map[int]string
	items []Item
}

// New builds a catalog from items.
func New(items []Item) (*Catalog, error) {
	el := errors.NewErrorList()

	c := &Catalog{names: make(map[int]string, len(items))}
	for i, it := range items {
		if it.Id <= 0 {
			el.Add(fmt.Errorf("item %d: id must be positive", i))
			continue
		}
		if it.Name == "" {
			el.Add(fmt.Errorf("item %d: name is required", it.Id))
			continue
		}
		if _, ok := c.names[it.Id]; ok {
			el.Add(fmt.Errorf("item %d: duplicate id", it.Id))
			continue
		}
		c.names[it.Id] = it.Name
		c.items = append(c.items, it)
	}

	if err := el.Err(); err != nil {
		return nil, err
	}

	slices.SortFunc(c.items, func(a, b Item) int { return a.Id - b.Id })
	return c, nil
}

// Load reads a YAML catalog file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}

	var f catalogFile
	err = yaml.Unmarshal(data, &f)
	if err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", path, err)
	}

	return New(f.Items)
}

// ItemName satisfies loadout.NameLookup.
func (c *Catalog) ItemName(id int) string {
	if n, ok := c.names[id]; ok {
		return n
	}
	return loadout.UnknownItemName
}

// Len returns the number of items.
func (c *Catalog) Len() int {
	return len(c.items)
}

// itemNames satisfies fuzzy.Source.
type itemNames []Item

func (s itemNames) String(i int) string { return s[i].Name }
func (s itemNames) Len() int            { return len(s) }

// Search returns up to limit items whose names fuzzily match query, best
// matches first. A numeric query that is a known id returns that item.
func (c *Catalog) Search(query string, limit int) []Item {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	var id int
	if _, err := fmt.Sscanf(query, "%d", &id); err == nil {
		if n, ok := c.names[id]; ok {
			return []Item{{Id: id, Name: n}}
		}
	}

	matches := fuzzy.FindFrom(query, itemNames(c.items))
	out := make([]Item, 0, min(limit, len(matches)))
	for _, m := range matches {
		if len(out) == limit {
			break
		}
		out = append(out, c.items[m.Index])
	}
	return out
}
