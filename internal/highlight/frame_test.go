package highlight

import (
	"testing"

	"github.com/pixil98/go-loadout/internal/loadout"
	"github.com/pixil98/go-testutil"
)

var testNames = loadout.NameLookupFunc(func(id int) string {
	switch id {
	case 995:
		return "Coins"
	case 385:
		return "Shark"
	case 561:
		return "Nature rune"
	case 4151:
		return "Abyssal whip"
	}
	return loadout.UnknownItemName
})

type slotReq struct {
	slot int
	req  loadout.Requirement
}

func testProfile(t *testing.T, id string, ct loadout.ContainerType, bound []slotReq, floating ...loadout.Requirement) *loadout.Profile {
	t.Helper()
	s := loadout.NewSnapshot(ct)
	for _, b := range bound {
		if err := s.AddBound(b.slot, b.req); err != nil {
			t.Fatalf("adding bound requirement: %v", err)
		}
	}
	for _, r := range floating {
		if _, err := s.AddFloating(r); err != nil {
			t.Fatalf("adding floating requirement: %v", err)
		}
	}
	p := loadout.NewProfile(id, s)
	p.Id = id
	return p
}

func TestFrame_Classify(t *testing.T) {
	coins := loadout.NewRequirement(995, "Coins", 1000, loadout.QuantityExact)
	sharks := loadout.NewRequirement(385, "Shark", 5, loadout.QuantityAtLeast)
	runes := loadout.NewRequirement(0, "rune", 1, loadout.QuantityAny)

	tests := map[string]struct {
		profiles func(t *testing.T) []*loadout.Profile
		live     loadout.LiveContainer
		exp      []Class
	}{
		"bound match and mismatch": {
			profiles: func(t *testing.T) []*loadout.Profile {
				return []*loadout.Profile{testProfile(t, "a", loadout.ContainerInventory, []slotReq{{0, coins}, {1, coins}})}
			},
			live: loadout.LiveContainer{{Id: 995, Quantity: 1000}, {Id: 995, Quantity: 10}},
			exp:  []Class{ClassMatch, ClassMismatch},
		},
		"bound slot empty": {
			profiles: func(t *testing.T) []*loadout.Profile {
				return []*loadout.Profile{testProfile(t, "a", loadout.ContainerInventory, []slotReq{{1, coins}})}
			},
			live: loadout.LiveContainer{{Id: 995, Quantity: 1000}, {Id: -1, Quantity: 0}},
			exp:  []Class{ClassNone, ClassMismatch},
		},
		"floating": {
			profiles: func(t *testing.T) []*loadout.Profile {
				return []*loadout.Profile{testProfile(t, "a", loadout.ContainerInventory, nil, sharks)}
			},
			live: loadout.LiveContainer{{Id: 385, Quantity: 6}, {Id: 385, Quantity: 2}, {Id: 4151, Quantity: 1}, {}},
			exp:  []Class{ClassMatch, ClassMismatch, ClassNone, ClassNone},
		},
		"name only floating": {
			profiles: func(t *testing.T) []*loadout.Profile {
				return []*loadout.Profile{testProfile(t, "a", loadout.ContainerInventory, nil, runes)}
			},
			live: loadout.LiveContainer{{Id: 561, Quantity: 50}, {Id: 4151, Quantity: 1}},
			exp:  []Class{ClassMatch, ClassNone},
		},
		"bound outside live range is dropped": {
			profiles: func(t *testing.T) []*loadout.Profile {
				return []*loadout.Profile{testProfile(t, "a", loadout.ContainerInventory, []slotReq{{5, coins}})}
			},
			live: loadout.LiveContainer{{Id: 995, Quantity: 1000}},
			exp:  []Class{ClassNone},
		},
		"other container ignored": {
			profiles: func(t *testing.T) []*loadout.Profile {
				return []*loadout.Profile{testProfile(t, "a", loadout.ContainerBank, []slotReq{{0, coins}})}
			},
			live: loadout.LiveContainer{{Id: 995, Quantity: 1}},
			exp:  []Class{ClassNone},
		},
		"prioritized profile wins slot": {
			profiles: func(t *testing.T) []*loadout.Profile {
				exact := testProfile(t, "a", loadout.ContainerInventory, []slotReq{{0, coins}})
				loose := testProfile(t, "b", loadout.ContainerInventory, []slotReq{{0, coins.WithQuantity(loadout.QuantityAny, 1, 0)}})
				loose.Prioritized = true
				return []*loadout.Profile{exact, loose}
			},
			live: loadout.LiveContainer{{Id: 995, Quantity: 5}},
			exp:  []Class{ClassMatch},
		},
		"earlier profile wins slot": {
			profiles: func(t *testing.T) []*loadout.Profile {
				exact := testProfile(t, "a", loadout.ContainerInventory, []slotReq{{0, coins}})
				loose := testProfile(t, "b", loadout.ContainerInventory, []slotReq{{0, coins.WithQuantity(loadout.QuantityAny, 1, 0)}})
				return []*loadout.Profile{exact, loose}
			},
			live: loadout.LiveContainer{{Id: 995, Quantity: 5}},
			exp:  []Class{ClassMismatch},
		},
		"any floating candidate may match": {
			profiles: func(t *testing.T) []*loadout.Profile {
				return []*loadout.Profile{
					testProfile(t, "a", loadout.ContainerInventory, nil, coins),
					testProfile(t, "b", loadout.ContainerInventory, nil, coins.WithQuantity(loadout.QuantityAtMost, 10, 0)),
				}
			},
			live: loadout.LiveContainer{{Id: 995, Quantity: 5}},
			exp:  []Class{ClassMatch},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			f := NewFrame(tt.profiles(t), loadout.ContainerInventory, len(tt.live))
			testutil.AssertEqual(t, "classes", f.Classify(tt.live, testNames), tt.exp)
		})
	}
}

func TestFrame_ClassifyDoesNotMutateProfiles(t *testing.T) {
	p := testProfile(t, "a", loadout.ContainerInventory, []slotReq{{0, loadout.NewRequirement(995, "Coins", 1, loadout.QuantityAny)}})
	before := p.Snapshot.Requirements()

	f := NewFrame([]*loadout.Profile{p}, loadout.ContainerInventory, 1)
	f.Classify(loadout.LiveContainer{{Id: 995, Quantity: 1}}, testNames)

	testutil.AssertEqual(t, "requirements", p.Snapshot.Requirements(), before)
}

func TestClass_Text(t *testing.T) {
	b, err := ClassMismatch.MarshalText()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "text", string(b), "MISMATCH")

	var c Class
	if err := c.UnmarshalText([]byte("MATCH")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "class", c, ClassMatch)

	testutil.AssertErrorContains(t, c.UnmarshalText([]byte("maybe")), "unknown class")
}
