package loadout

import (
	"fmt"
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestQuantityCondition_Satisfied(t *testing.T) {
	tests := map[string]struct {
		cond     QuantityCondition
		actual   int
		expected int
		max      int
		exp      bool
	}{
		"exact equal":          {cond: QuantityExact, actual: 5, expected: 5, exp: true},
		"exact below":          {cond: QuantityExact, actual: 4, expected: 5, exp: false},
		"exact above":          {cond: QuantityExact, actual: 6, expected: 5, exp: false},
		"at least equal":       {cond: QuantityAtLeast, actual: 5, expected: 5, exp: true},
		"at least above":       {cond: QuantityAtLeast, actual: 9, expected: 5, exp: true},
		"at least below":       {cond: QuantityAtLeast, actual: 4, expected: 5, exp: false},
		"at most equal":        {cond: QuantityAtMost, actual: 5, expected: 5, exp: true},
		"at most below":        {cond: QuantityAtMost, actual: 0, expected: 5, exp: true},
		"at most above":        {cond: QuantityAtMost, actual: 6, expected: 5, exp: false},
		"between below min":    {cond: QuantityBetween, actual: 9, expected: 10, max: 20, exp: false},
		"between min":          {cond: QuantityBetween, actual: 10, expected: 10, max: 20, exp: true},
		"between max":          {cond: QuantityBetween, actual: 20, expected: 10, max: 20, exp: true},
		"between max plus one": {cond: QuantityBetween, actual: 21, expected: 10, max: 20, exp: false},
		"between inverted":     {cond: QuantityBetween, actual: 15, expected: 20, max: 10, exp: false},
		"any positive":         {cond: QuantityAny, actual: 1, expected: 100, exp: true},
		"any zero":             {cond: QuantityAny, actual: 0, expected: 0, exp: false},
		"unknown condition":    {cond: QuantityCondition(99), actual: 1, expected: 1, exp: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "satisfied", tt.cond.Satisfied(tt.actual, tt.expected, tt.max), tt.exp)
		})
	}
}

func TestQuantityCondition_Text(t *testing.T) {
	var qc QuantityCondition
	err := qc.UnmarshalText([]byte("at_least"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "condition", qc, QuantityAtLeast)

	b, err := QuantityBetween.MarshalText()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "text", string(b), "BETWEEN")

	err = qc.UnmarshalText([]byte("most"))
	testutil.AssertErrorContains(t, err, "unknown quantity condition")
}

func TestRequirement_Matches(t *testing.T) {
	coins := NewRequirement(995, "Coins", 1000, QuantityExact)

	tests := map[string]struct {
		req        Requirement
		actualId   int
		actualName string
		actualQty  int
		actualSlot int
		exp        bool
	}{
		"exact quantity": {
			req: coins, actualId: 995, actualName: "Coins", actualQty: 1000, actualSlot: 0, exp: true,
		},
		"exact quantity minus one": {
			req: coins, actualId: 995, actualName: "Coins", actualQty: 999, actualSlot: 0, exp: false,
		},
		"exact quantity plus one": {
			req: coins, actualId: 995, actualName: "Coins", actualQty: 1001, actualSlot: 0, exp: false,
		},
		"wrong id": {
			req: coins, actualId: 996, actualName: "Coins", actualQty: 1000, actualSlot: 0, exp: false,
		},
		"name is case insensitive substring": {
			req:      NewRequirement(2434, "prayer potion", 1, QuantityAny),
			actualId: 2434, actualName: "Prayer potion(4)", actualQty: 1, actualSlot: 3, exp: true,
		},
		"name mismatch on primary id": {
			req:      NewRequirement(2434, "Super restore", 1, QuantityAny),
			actualId: 2434, actualName: "Prayer potion(4)", actualQty: 1, actualSlot: 3, exp: false,
		},
		"alternate id skips name": {
			req:      NewRequirement(100, "Something else", 1, QuantityAny, WithAltIds(200)),
			actualId: 200, actualName: "Unrelated", actualQty: 1, actualSlot: 0, exp: true,
		},
		"alternate name accepted": {
			req:      NewRequirement(0, "Shark", 1, QuantityAny, WithAltNames("Manta ray")),
			actualId: 391, actualName: "Manta ray", actualQty: 1, actualSlot: 0, exp: true,
		},
		"name only requirement": {
			req:      NewRequirement(0, "rune", 1, QuantityAtLeast),
			actualId: 561, actualName: "Nature rune", actualQty: 50, actualSlot: NoSlot, exp: true,
		},
		"ignore name flag": {
			req:      NewRequirement(995, "Gold", 1, QuantityAny).WithFlags(FlagIgnoreName),
			actualId: 995, actualName: "Coins", actualQty: 10, actualSlot: 0, exp: true,
		},
		"exact slot matches": {
			req:      coins.WithSlot(4).WithFlags(FlagRequireExactSlot),
			actualId: 995, actualName: "Coins", actualQty: 1000, actualSlot: 4, exp: true,
		},
		"exact slot wrong slot": {
			req:      coins.WithSlot(4).WithFlags(FlagRequireExactSlot),
			actualId: 995, actualName: "Coins", actualQty: 1000, actualSlot: 5, exp: false,
		},
		"exact slot absent slot": {
			req:      coins.WithSlot(4).WithFlags(FlagRequireExactSlot),
			actualId: 995, actualName: "Coins", actualQty: 1000, actualSlot: NoSlot, exp: false,
		},
		"exact slot flag without target slot": {
			req:      coins.WithFlags(FlagRequireExactSlot),
			actualId: 995, actualName: "Coins", actualQty: 1000, actualSlot: 9, exp: true,
		},
		"ignore quantity": {
			req:      coins.WithFlags(FlagIgnoreQuantity),
			actualId: 995, actualName: "Coins", actualQty: 1, actualSlot: 0, exp: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := tt.req.Matches(tt.actualId, tt.actualName, tt.actualQty, tt.actualSlot)
			testutil.AssertEqual(t, "matches", got, tt.exp)
		})
	}
}

func TestRequirement_MatchesBetweenBoundaries(t *testing.T) {
	req := NewRequirement(385, "Shark", 5, QuantityBetween, WithMaxQuantity(10))

	for actual, exp := range map[int]bool{4: false, 5: true, 10: true, 11: false} {
		testutil.AssertEqual(t, "matches", req.Matches(385, "Shark", actual, NoSlot), exp)
	}
}

func TestRequirement_Validate(t *testing.T) {
	tests := map[string]struct {
		req    Requirement
		expErr string
	}{
		"valid": {
			req: NewRequirement(995, "Coins", 1, QuantityExact),
		},
		"valid name only": {
			req: NewRequirement(0, "Coins", 1, QuantityAny),
		},
		"no identity": {
			req:    NewRequirement(0, "", 1, QuantityAny),
			expErr: "must have an id or a name",
		},
		"inverted range": {
			req:    NewRequirement(995, "Coins", 10, QuantityBetween, WithMaxQuantity(5)),
			expErr: "quantity range 10-5 is empty",
		},
		"negative quantity": {
			req:    NewRequirement(995, "Coins", -1, QuantityAtMost),
			expErr: "quantity must not be negative",
		},
		"unknown condition": {
			req:    NewRequirement(995, "Coins", 1, QuantityCondition(42)),
			expErr: "unknown quantity condition",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := tt.req.Validate()
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

func TestRequirement_DerivedCopiesDoNotAlias(t *testing.T) {
	orig := NewRequirement(100, "Rune scimitar", 1, QuantityExact, WithAltIds(200), WithAltNames("Scim"))

	derived := orig.WithFlags(FlagIgnoreQuantity)
	derived.AltIds[0] = 300
	derived.AltNames[0] = "Other"

	testutil.AssertEqual(t, "orig alt id", orig.AltIds[0], 200)
	testutil.AssertEqual(t, "orig alt name", orig.AltNames[0], "Scim")
	testutil.AssertEqual(t, "orig flags", orig.Flags.Has(FlagIgnoreQuantity), false)
	testutil.AssertEqual(t, "derived flags", derived.Flags.Has(FlagIgnoreQuantity), true)

	stripped := derived.WithoutFlags(FlagIgnoreQuantity)
	testutil.AssertEqual(t, "stripped flags", stripped.Flags.Has(FlagIgnoreQuantity), false)
}

func TestIdentity_Overlaps(t *testing.T) {
	a := Identity{Id: 100, AltIds: []int{200}}

	testutil.AssertEqual(t, "primary vs alt", a.Overlaps(Identity{Id: 200}), true)
	testutil.AssertEqual(t, "alt vs alt", a.Overlaps(Identity{Id: 5, AltIds: []int{200}}), true)
	testutil.AssertEqual(t, "disjoint", a.Overlaps(Identity{Id: 300}), false)
	testutil.AssertEqual(t, "name only", a.Overlaps(Identity{Name: "thing"}), false)
}

func TestFlags_JSON(t *testing.T) {
	f := NewFlags(FlagRequireExactSlot, FlagIgnoreName)

	b, err := f.MarshalJSON()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "json", string(b), `["REQUIRE_EXACT_SLOT","IGNORE_NAME"]`)

	var parsed Flags
	err = parsed.UnmarshalJSON([]byte(`["ignore_quantity"]`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "parsed", parsed, NewFlags(FlagIgnoreQuantity))

	err = parsed.UnmarshalJSON([]byte(`["NOPE"]`))
	testutil.AssertErrorContains(t, err, "unknown flag")

	f, err := ParseFlag("Ignore_Name")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "parsed flag", f, FlagIgnoreName)
}

func TestRequirement_Describe(t *testing.T) {
	tests := map[string]struct {
		req Requirement
		exp string
	}{
		"exact":   {req: NewRequirement(995, "Coins", 1000, QuantityExact), exp: "Coins (995) x1000"},
		"between": {req: NewRequirement(385, "Shark", 5, QuantityBetween, WithMaxQuantity(10)), exp: "Shark (385) x5-10"},
		"any":     {req: NewRequirement(4151, "Abyssal whip", 1, QuantityAny), exp: "Abyssal whip (4151)"},
		"no name": {req: NewRequirement(12, "", 2, QuantityAtLeast), exp: "item (12) x2+"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "describe", tt.req.Describe(), tt.exp)
		})
	}
}

func TestRequirement_DescribeWith(t *testing.T) {
	req := NewRequirement(385, "Shark", 5, QuantityBetween, WithMaxQuantity(10))
	got := req.DescribeWith(func(n int) string { return fmt.Sprintf("<%d>", n) })
	testutil.AssertEqual(t, "describe", got, "Shark (385) x<5>-<10>")
}
