package profiles

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/pixil98/go-loadout/internal/loadout"
	"github.com/pixil98/go-loadout/internal/messaging"
	"github.com/pixil98/go-loadout/internal/messaging/messagingtest"
	"github.com/pixil98/go-loadout/internal/storage"
	"github.com/pixil98/go-testutil"
)

func newTestProfile(t *testing.T, id, name string, ct loadout.ContainerType) *loadout.Profile {
	t.Helper()
	s := loadout.NewSnapshot(ct)
	if _, err := s.AddFloating(loadout.NewRequirement(995, "Coins", 1, loadout.QuantityAny)); err != nil {
		t.Fatalf("adding requirement: %v", err)
	}
	p := loadout.NewProfile(name, s)
	p.Id = id
	return p
}

func newTestRegistry(t *testing.T, bus *messagingtest.Bus) (*Registry, *storage.FileStore[*ProfileSet]) {
	t.Helper()
	store, err := storage.NewFileStore[*ProfileSet](t.TempDir())
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}
	var pub messaging.Publisher
	if bus != nil {
		pub = bus
	}
	return NewRegistry(store, pub, messaging.NewSubjects("")), store
}

func TestProfileSet_Validate(t *testing.T) {
	tests := map[string]struct {
		set    func(t *testing.T) *ProfileSet
		expErr string
	}{
		"valid": {
			set: func(t *testing.T) *ProfileSet {
				return &ProfileSet{Profiles: []*loadout.Profile{
					newTestProfile(t, "a", "Barrows", loadout.ContainerInventory),
					newTestProfile(t, "b", "Zulrah", loadout.ContainerInventory),
				}}
			},
		},
		"duplicate id": {
			set: func(t *testing.T) *ProfileSet {
				return &ProfileSet{Profiles: []*loadout.Profile{
					newTestProfile(t, "a", "Barrows", loadout.ContainerInventory),
					newTestProfile(t, "a", "Zulrah", loadout.ContainerInventory),
				}}
			},
			expErr: "duplicate profile id",
		},
		"nil profile": {
			set: func(t *testing.T) *ProfileSet {
				return &ProfileSet{Profiles: []*loadout.Profile{nil}}
			},
			expErr: "profile 0 is empty",
		},
		"invalid profile": {
			set: func(t *testing.T) *ProfileSet {
				p := newTestProfile(t, "a", "", loadout.ContainerInventory)
				return &ProfileSet{Profiles: []*loadout.Profile{p}}
			},
			expErr: "profile name is required",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := tt.set(t).Validate()
			if tt.expErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			testutil.AssertErrorContains(t, err, tt.expErr)
		})
	}
}

func TestRegistry_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	bus := messagingtest.NewBus()
	r, _ := newTestRegistry(t, bus)

	testutil.AssertEqual(t, "empty", r.Current().Len(), 0)

	for _, p := range []*loadout.Profile{
		newTestProfile(t, "p1", "Barrows brothers", loadout.ContainerInventory),
		newTestProfile(t, "p2", "Zulrah", loadout.ContainerEquipment),
	} {
		if err := r.Create(ctx, DefaultSet, p); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	testutil.AssertEqual(t, "count", r.Current().Len(), 2)
	testutil.AssertEqual(t, "sync messages", len(bus.Published("loadout.profiles.sync")), 2)

	var msg SyncMessage
	if err := json.Unmarshal(bus.Published("loadout.profiles.sync")[0].Data, &msg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "origin", msg.Origin, r.Origin())
	testutil.AssertEqual(t, "set", msg.Set, storage.Identifier(DefaultSet))

	tests := map[string]struct {
		query  string
		expId  string
		expErr error
	}{
		"by id":          {query: "p2", expId: "p2"},
		"by name":        {query: "zulrah", expId: "p2"},
		"fuzzy":          {query: "barrows", expId: "p1"},
		"no match":       {query: "vorkath", expErr: ErrProfileNotFound},
		"empty is error": {query: "", expErr: ErrProfileNotFound},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			p, err := r.Find(tt.query)
			if tt.expErr != nil {
				testutil.AssertEqual(t, "error", errors.Is(err, tt.expErr), true)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "id", p.Id, tt.expId)
		})
	}
}

func TestRegistry_CreateRejectsDuplicate(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRegistry(t, nil)

	err := r.Create(ctx, "a", newTestProfile(t, "p1", "One", loadout.ContainerInventory))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = r.Create(ctx, "b", newTestProfile(t, "p1", "Other", loadout.ContainerInventory))
	testutil.AssertEqual(t, "duplicate", errors.Is(err, ErrDuplicateId), true)
}

func TestRegistry_UpdateCopyOnWrite(t *testing.T) {
	ctx := context.Background()
	r, store := newTestRegistry(t, nil)

	err := r.Create(ctx, DefaultSet, newTestProfile(t, "p1", "Bank setup", loadout.ContainerBank))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	before := r.Profiles()[0]

	updated, err := r.Update(ctx, "p1", func(p *loadout.Profile) error {
		p.Enabled = false
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "returned", updated.Enabled, false)
	testutil.AssertEqual(t, "previous view untouched", before.Enabled, true)
	testutil.AssertEqual(t, "published", r.Profiles()[0].Enabled, false)
	testutil.AssertEqual(t, "stored", store.Get(DefaultSet).Profiles[0].Enabled, false)
}

func TestRegistry_UpdateErrors(t *testing.T) {
	ctx := context.Background()
	r, store := newTestRegistry(t, nil)

	err := r.Create(ctx, DefaultSet, newTestProfile(t, "p1", "Bank setup", loadout.ContainerBank))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := map[string]struct {
		id     string
		fn     func(*loadout.Profile) error
		expErr string
	}{
		"unknown profile": {
			id:     "nope",
			fn:     func(*loadout.Profile) error { return nil },
			expErr: "profile not found",
		},
		"callback error": {
			id:     "p1",
			fn:     func(*loadout.Profile) error { return errors.New("boom") },
			expErr: "boom",
		},
		"id change": {
			id: "p1",
			fn: func(p *loadout.Profile) error {
				p.Id = "p2"
				return nil
			},
			expErr: "profile id cannot change",
		},
		"invalid result": {
			id: "p1",
			fn: func(p *loadout.Profile) error {
				p.Name = ""
				return nil
			},
			expErr: "profile name is required",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := r.Update(ctx, tt.id, tt.fn)
			testutil.AssertErrorContains(t, err, tt.expErr)
			testutil.AssertEqual(t, "published name", r.Profiles()[0].Name, "Bank setup")
			testutil.AssertEqual(t, "stored name", store.Get(DefaultSet).Profiles[0].Name, "Bank setup")
		})
	}
}

func TestRegistry_Delete(t *testing.T) {
	ctx := context.Background()
	r, store := newTestRegistry(t, nil)

	for _, id := range []string{"p1", "p2"} {
		if err := r.Create(ctx, DefaultSet, newTestProfile(t, id, "Profile "+id, loadout.ContainerInventory)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if err := r.Delete(ctx, "p1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "remaining", r.Current().Len(), 1)

	if err := r.Delete(ctx, "p2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "empty", r.Current().Len(), 0)
	testutil.AssertEqual(t, "set removed", store.Get(DefaultSet) == nil, true)

	err := r.Delete(ctx, "p1")
	testutil.AssertEqual(t, "missing", errors.Is(err, ErrProfileNotFound), true)
}

func TestRegistry_Active(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRegistry(t, nil)

	always := newTestProfile(t, "p1", "Always", loadout.ContainerInventory)
	bank := newTestProfile(t, "p2", "Bank only", loadout.ContainerInventory)
	bank.RequiredRenderState = loadout.RenderBankOpen
	disabled := newTestProfile(t, "p3", "Off", loadout.ContainerInventory)
	disabled.Enabled = false

	for _, p := range []*loadout.Profile{always, bank, disabled} {
		if err := r.Create(ctx, DefaultSet, p); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	ids := func(ps []*loadout.Profile) []string {
		var out []string
		for _, p := range ps {
			out = append(out, p.Id)
		}
		return out
	}

	closed := loadout.RenderStateCheckerFunc(func(rs loadout.RenderState) bool { return rs == loadout.RenderAlways })
	open := loadout.RenderStateCheckerFunc(func(loadout.RenderState) bool { return true })

	testutil.AssertEqual(t, "bank closed", ids(r.Active(closed)), []string{"p1"})
	testutil.AssertEqual(t, "bank open", ids(r.Active(open)), []string{"p1", "p2"})
}

func TestRegistry_LoadOrdersBySet(t *testing.T) {
	r, store := newTestRegistry(t, nil)

	err := store.Save("b", &ProfileSet{Profiles: []*loadout.Profile{newTestProfile(t, "p3", "Third", loadout.ContainerBank)}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err = store.Save("a", &ProfileSet{Profiles: []*loadout.Profile{
		newTestProfile(t, "p1", "First", loadout.ContainerBank),
		newTestProfile(t, "p2", "Second", loadout.ContainerBank),
	}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := r.Load(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var names []string
	for _, p := range r.Profiles() {
		names = append(names, p.Name)
	}
	testutil.AssertEqual(t, "order", names, []string{"First", "Second", "Third"})

	err = store.Save("c", &ProfileSet{Profiles: []*loadout.Profile{newTestProfile(t, "p1", "Copy", loadout.ContainerBank)}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err = r.Load()
	testutil.AssertEqual(t, "cross-set duplicate", errors.Is(err, ErrDuplicateId), true)
	testutil.AssertEqual(t, "previous list kept", r.Current().Len(), 3)
}
