package loadout

import (
	"fmt"
	"strings"
)

// NoSlot marks an absent slot: an unbound requirement, or a mismatch that
// could not be attributed to any live slot.
const NoSlot = -1

// UnknownItemName is returned by name lookups that cannot resolve an item id.
const UnknownItemName = "null"

// ContainerType identifies a slot array exposed by the game client.
type ContainerType int

const (
	ContainerUnknown ContainerType = iota
	ContainerInventory
	ContainerBank
	ContainerEquipment
)

var containerTypeNames = map[ContainerType]string{
	ContainerInventory: "INVENTORY",
	ContainerBank:      "BANK",
	ContainerEquipment: "EQUIPMENT",
}

// ContainerTypes lists every known container type in a stable order.
func ContainerTypes() []ContainerType {
	return []ContainerType{ContainerInventory, ContainerBank, ContainerEquipment}
}

func (ct ContainerType) String() string {
	if s, ok := containerTypeNames[ct]; ok {
		return s
	}
	return "UNKNOWN"
}

func (ct ContainerType) MarshalText() ([]byte, error) {
	if _, ok := containerTypeNames[ct]; !ok {
		return nil, fmt.Errorf("unknown container type: %d", int(ct))
	}
	return []byte(ct.String()), nil
}

func (ct *ContainerType) UnmarshalText(text []byte) error {
	parsed, err := ParseContainerType(string(text))
	if err != nil {
		return err
	}
	*ct = parsed
	return nil
}

// ParseContainerType parses a container type name, ignoring case.
func ParseContainerType(s string) (ContainerType, error) {
	for ct, name := range containerTypeNames {
		if strings.EqualFold(name, s) {
			return ct, nil
		}
	}
	return ContainerUnknown, fmt.Errorf("unknown container type: %s", s)
}

// LiveItem is the observed content of one container slot.
type LiveItem struct {
	Id       int `json:"id"`
	Quantity int `json:"quantity"`
}

// Empty reports whether the slot holds nothing.
func (i LiveItem) Empty() bool {
	return i.Id <= 0 || i.Quantity <= 0
}

// LiveContainer is the ordered slot list of a container. A nil LiveContainer
// means the container is absent (not loaded by the client).
type LiveContainer []LiveItem

// Clone returns a copy that does not share backing storage.
func (lc LiveContainer) Clone() LiveContainer {
	if lc == nil {
		return nil
	}
	out := make(LiveContainer, len(lc))
	copy(out, lc)
	return out
}

// ContainerAccessor resolves the live state of a container.
type ContainerAccessor interface {
	Container(ContainerType) LiveContainer
}

// ContainerAccessorFunc adapts a function to ContainerAccessor.
type ContainerAccessorFunc func(ContainerType) LiveContainer

func (f ContainerAccessorFunc) Container(ct ContainerType) LiveContainer {
	return f(ct)
}

// NameLookup resolves an item id to its display name. Implementations
// return UnknownItemName when the id cannot be resolved.
type NameLookup interface {
	ItemName(id int) string
}

// NameLookupFunc adapts a function to NameLookup.
type NameLookupFunc func(int) string

func (f NameLookupFunc) ItemName(id int) string {
	return f(id)
}

// NameCache memoizes lookups for the duration of a single validation call
// or frame. Unresolvable ids, including those seen with a nil lookup, map
// to UnknownItemName.
type NameCache struct {
	names NameLookup
	cache map[int]string
}

func NewNameCache(names NameLookup) *NameCache {
	return &NameCache{names: names, cache: map[int]string{}}
}

func (c *NameCache) ItemName(id int) string {
	if n, ok := c.cache[id]; ok {
		return n
	}
	n := UnknownItemName
	if c.names != nil && id > 0 {
		if resolved := c.names.ItemName(id); resolved != "" {
			n = resolved
		}
	}
	c.cache[id] = n
	return n
}
