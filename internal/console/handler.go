package console

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/pixil98/go-loadout/internal/catalog"
	"github.com/pixil98/go-loadout/internal/loadout"
	"github.com/pixil98/go-loadout/internal/profiles"
	"github.com/pixil98/go-loadout/internal/storage"
)

// ProfileRegistry is the subset of profiles.Registry the console drives.
type ProfileRegistry interface {
	Profiles() []*loadout.Profile
	Find(query string) (*loadout.Profile, error)
	Create(ctx context.Context, set storage.Identifier, p *loadout.Profile) error
	Update(ctx context.Context, id string, fn func(*loadout.Profile) error) (*loadout.Profile, error)
	Delete(ctx context.Context, id string) error
}

// ItemSearcher finds catalog items by name or id.
type ItemSearcher interface {
	Search(query string, limit int) []catalog.Item
}

// HostState is the live client state commands inspect.
type HostState interface {
	loadout.ContainerAccessor
	loadout.RenderStateChecker
	ActiveStates() []loadout.RenderState
}

// CommandFunc runs a command and returns the text to show the user.
type CommandFunc func(ctx context.Context, args []string) (string, error)

type command struct {
	name        string
	usage       string
	description string
	run         CommandFunc
}

type Handler struct {
	registry ProfileRegistry
	state    HostState
	names    loadout.NameLookup
	items    ItemSearcher
	commands map[string]*command
	status   []statusFunc
}

func NewHandler(registry ProfileRegistry, state HostState, names loadout.NameLookup, items ItemSearcher) *Handler {
	h := &Handler{
		registry: registry,
		state:    state,
		names:    names,
		items:    items,
		commands: map[string]*command{},
	}

	h.register("profiles", "profiles", "List profiles with their state and whether they currently pass.", h.listProfiles)
	h.register("check", "check <profile>", "Validate a profile against the live container and list what is missing or unexpected.", h.checkProfile)
	h.register("capture", "capture <container> <name> [bound|floating] [exact|any]", "Create a profile from the current contents of a container. Bound captures pin every item to its slot; floating captures accept items in any slot. Exact captures require the observed quantities.", h.capture)
	h.register("enable", "enable <profile>", "Enable a profile.", h.setEnabled(true))
	h.register("disable", "disable <profile>", "Disable a profile.", h.setEnabled(false))
	h.register("preview", "preview <profile> on|off", "Render a profile regardless of which interface is open.", h.toggle("preview", func(p *loadout.Profile, on bool) { p.PreviewMode = on }))
	h.register("prioritize", "prioritize <profile> on|off", "Let a profile win slots that other active profiles also bind.", h.toggle("priority", func(p *loadout.Profile, on bool) { p.Prioritized = on }))
	h.register("enforce", "enforce <profile> on|off", "Treat occupied slots that no requirement accounts for as mismatches.", h.toggle("empty slot enforcement", func(p *loadout.Profile, on bool) { p.Snapshot.SetEnforceEmptySlots(on) }))
	h.register("add", "add <profile> slot <n> <id> [condition [qty [max]]] | add <profile> item <id> [condition [qty [max]]]", "Require an item. Slot requirements are pinned to one slot; item requirements accept any slot. Conditions are exact, at_least, at_most, between and any; with no condition any non-zero quantity passes.", h.add)
	h.register("alt", "alt <profile> <id> <alternate id or name>", "Accept another item id or name wherever the given item is required.", h.alt)
	h.register("quantity", "quantity <profile> <id> <condition> [qty [max]]", "Change the quantity rule for an item.", h.quantity)
	h.register("flag", "flag <profile> <id> ignore_quantity|ignore_name on|off", "Skip the quantity or name check for an item.", h.flag)
	h.register("presence", "presence <profile> all|any|at_least_n [n]", "Choose how many requirements must match for the profile to pass.", h.presence)
	h.register("render", "render <profile> <state>", "Only show the profile while the given interface is open: always, inventory_open, bank_open, equipment_open or deposit_box_open.", h.render)
	h.register("remove", "remove <profile> slot <n> | remove <profile> item <id>", "Remove the requirement bound to a slot, or every requirement for an item id.", h.remove)
	h.register("delete", "delete <profile>", "Delete a profile.", h.deleteProfile)
	h.register("status", "status", "Show what the console knows about the client and the service.", h.showStatus)
	h.register("items", "items <query>", "Search the item catalog by name or id.", h.searchItems)
	h.register("help", "help [command]", "Show available commands.", h.help)
	h.register("quit", "quit", "Close the console.", h.quit)

	return h
}

func (h *Handler) register(name, usage, description string, run CommandFunc) {
	h.commands[name] = &command{name: name, usage: usage, description: description, run: run}
}

// Exec runs the named command.
func (h *Handler) Exec(ctx context.Context, name string, args ...string) (string, error) {
	cmd, ok := h.commands[strings.ToLower(name)]
	if !ok {
		return "", NewUserError(fmt.Sprintf("Unknown command %q. Type 'help' for a list.", name))
	}
	return cmd.run(ctx, args)
}

func (h *Handler) commandNames() []string {
	names := make([]string, 0, len(h.commands))
	for n := range h.commands {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

func (h *Handler) usage(name string) error {
	return NewUserError("Usage: " + h.commands[name].usage)
}

// resolve finds the profile named by query.
func (h *Handler) resolve(query string) (*loadout.Profile, error) {
	if query == "" {
		return nil, NewUserError("Which profile?")
	}
	p, err := h.registry.Find(query)
	if errors.Is(err, profiles.ErrProfileNotFound) {
		return nil, NewUserError(fmt.Sprintf("No profile matches %q.", query))
	}
	if err != nil {
		return nil, fmt.Errorf("finding profile: %w", err)
	}
	return p, nil
}

// update resolves query and applies fn to a copy of the profile.
func (h *Handler) update(ctx context.Context, query string, fn func(*loadout.Profile) error) (*loadout.Profile, error) {
	p, err := h.resolve(query)
	if err != nil {
		return nil, err
	}

	updated, err := h.registry.Update(ctx, p.Id, fn)
	if err != nil {
		var userErr *UserError
		if errors.As(err, &userErr) {
			return nil, err
		}
		return nil, fmt.Errorf("updating profile %s: %w", p.Id, err)
	}
	return updated, nil
}

func parseOnOff(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on":
		return true, nil
	case "off":
		return false, nil
	}
	return false, NewUserError(fmt.Sprintf("Expected on or off, got %q.", s))
}
