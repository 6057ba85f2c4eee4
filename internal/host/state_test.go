package host

import (
	"testing"

	"github.com/pixil98/go-loadout/internal/loadout"
	"github.com/pixil98/go-testutil"
)

func TestState_Container(t *testing.T) {
	s := NewState()

	testutil.AssertEqual(t, "unreported", s.Container(loadout.ContainerBank) == nil, true)

	live := loadout.LiveContainer{{Id: 995, Quantity: 10}}
	s.SetContainer(loadout.ContainerBank, live)
	live[0].Quantity = 1

	got := s.Container(loadout.ContainerBank)
	testutil.AssertEqual(t, "stored copy", got, loadout.LiveContainer{{Id: 995, Quantity: 10}})

	got[0].Id = 1
	testutil.AssertEqual(t, "returned copy", s.Container(loadout.ContainerBank)[0].Id, 995)

	s.SetContainer(loadout.ContainerBank, nil)
	testutil.AssertEqual(t, "absent", s.Container(loadout.ContainerBank) == nil, true)
}

func TestState_IsActive(t *testing.T) {
	s := NewState()

	testutil.AssertEqual(t, "always", s.IsActive(loadout.RenderAlways), true)
	testutil.AssertEqual(t, "bank closed", s.IsActive(loadout.RenderBankOpen), false)

	s.SetActive([]loadout.RenderState{loadout.RenderInventoryOpen, loadout.RenderBankOpen})
	testutil.AssertEqual(t, "bank open", s.IsActive(loadout.RenderBankOpen), true)
	testutil.AssertEqual(t, "states", s.ActiveStates(), []loadout.RenderState{loadout.RenderBankOpen, loadout.RenderInventoryOpen})

	s.SetActive(nil)
	testutil.AssertEqual(t, "cleared", s.IsActive(loadout.RenderBankOpen), false)
}
