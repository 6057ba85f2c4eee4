package loadout

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-loadout/internal/storage"
)

// Presence is the aggregate policy a profile validates with.
type Presence struct {
	Mode      PresenceMode `json:"mode"`
	Threshold int          `json:"threshold,omitempty"`
}

// Profile pairs a container snapshot with enablement and render gating.
type Profile struct {
	Id                  string                 `json:"id"`
	Name                string                 `json:"name"`
	ContainerType       ContainerType          `json:"containerType"`
	Snapshot            *Snapshot              `json:"snapshot"`
	Enabled             bool                   `json:"enabled"`
	PreviewMode         bool                   `json:"previewMode"`
	Prioritized         bool                   `json:"prioritized"`
	RequiredRenderState RenderState            `json:"requiredRenderState"`
	Presence            Presence               `json:"presence"`
	Extensions          storage.ExtensionState `json:"extensions,omitempty"`
}

// NewProfile creates an enabled profile with a fresh id.
func NewProfile(name string, snapshot *Snapshot) *Profile {
	return &Profile{
		Id:                  uuid.New().String(),
		Name:                name,
		ContainerType:       snapshot.ContainerType(),
		Snapshot:            snapshot,
		Enabled:             true,
		RequiredRenderState: RenderAlways,
	}
}

// Verify reports structural problems with the profile and its requirements.
func (p *Profile) Verify() error {
	el := errors.NewErrorList()

	if p.Id == "" {
		el.Add(fmt.Errorf("profile id is required"))
	}
	if p.Name == "" {
		el.Add(fmt.Errorf("profile name is required"))
	}
	if p.ContainerType == ContainerUnknown {
		el.Add(fmt.Errorf("profile container type is required"))
	}
	if p.Presence.Mode == PresenceAtLeast && p.Presence.Threshold < 1 {
		el.Add(fmt.Errorf("presence threshold must be at least 1"))
	}

	if p.Snapshot != nil {
		if p.Snapshot.ContainerType() != p.ContainerType {
			el.Add(fmt.Errorf("snapshot container %s does not match profile container %s", p.Snapshot.ContainerType(), p.ContainerType))
		}
		for _, r := range p.Snapshot.Requirements() {
			if err := r.Validate(); err != nil {
				el.Add(fmt.Errorf("requirement %s: %w", r.Describe(), err))
			}
		}
	}

	return el.Err()
}

// Validate reports whether the live container satisfies the profile.
// Disabled profiles and profiles without a snapshot never validate.
func (p *Profile) Validate(acc ContainerAccessor, names NameLookup) bool {
	res := p.ValidateDetailed(acc, names)
	if res == nil {
		return false
	}
	return res.Satisfies(p.Presence.Mode, p.Presence.Threshold)
}

// ValidateDetailed returns the full result, or nil when the profile is
// disabled or has no snapshot.
func (p *Profile) ValidateDetailed(acc ContainerAccessor, names NameLookup) *Result {
	if !p.Enabled || p.Snapshot == nil {
		return nil
	}

	var live LiveContainer
	if acc != nil {
		live = acc.Container(p.ContainerType)
	}
	return p.Snapshot.ValidateDetailed(live, names)
}

// ShouldRender gates overlay rendering. Preview mode bypasses the render
// state check and an unset render state behaves as RenderAlways. The result
// is recomputed on every call.
func (p *Profile) ShouldRender(states RenderStateChecker) bool {
	if !p.Enabled {
		return false
	}
	if p.PreviewMode {
		return true
	}
	if states == nil {
		return false
	}
	rs := p.RequiredRenderState
	if rs == "" {
		rs = RenderAlways
	}
	return states.IsActive(rs)
}

// Clone returns a deep copy.
func (p *Profile) Clone() *Profile {
	c := *p
	if p.Snapshot != nil {
		c.Snapshot = p.Snapshot.Clone()
	}
	c.Extensions = p.Extensions.Clone()
	return &c
}
