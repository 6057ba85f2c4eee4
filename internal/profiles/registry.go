package profiles

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/pixil98/go-loadout/internal/loadout"
	"github.com/pixil98/go-loadout/internal/messaging"
	"github.com/pixil98/go-loadout/internal/storage"
	"github.com/sahilm/fuzzy"
)

// Entry is one published profile and the set that stores it.
type Entry struct {
	Set     storage.Identifier
	Profile *loadout.Profile
}

// List is an immutable, ordered view of every loaded profile. Profiles
// reachable from a List must not be modified; edits go through Registry.
type List struct {
	entries []Entry
}

func (l *List) Len() int {
	return len(l.entries)
}

// Profiles returns the profiles in registry order.
func (l *List) Profiles() []*loadout.Profile {
	out := make([]*loadout.Profile, len(l.entries))
	for i, e := range l.entries {
		out[i] = e.Profile
	}
	return out
}

func (l *List) entry(id string) (Entry, bool) {
	for _, e := range l.entries {
		if e.Profile.Id == id {
			return e, true
		}
	}
	return Entry{}, false
}

// SyncMessage announces a change to the stored profile sets.
type SyncMessage struct {
	Origin string             `json:"origin"`
	Set    storage.Identifier `json:"set"`
}

// Registry publishes the current profile list to lock-free readers and
// serializes edits through the backing store.
type Registry struct {
	store    storage.Storer[*ProfileSet]
	pub      messaging.Publisher
	subjects messaging.Subjects
	origin   string

	mu   sync.Mutex
	list atomic.Pointer[List]
}

func NewRegistry(store storage.Storer[*ProfileSet], pub messaging.Publisher, subjects messaging.Subjects) *Registry {
	r := &Registry{
		store:    store,
		pub:      pub,
		subjects: subjects,
		origin:   uuid.New().String(),
	}
	r.list.Store(&List{})
	return r
}

// Origin identifies this registry in sync messages.
func (r *Registry) Origin() string {
	return r.origin
}

// Load rebuilds the list from the store's cached sets and publishes it.
func (r *Registry) Load() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

// Reload re-reads the store from disk, then loads.
func (r *Registry) Reload() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	err := r.store.Reload()
	if err != nil {
		return fmt.Errorf("reloading profile store: %w", err)
	}
	return r.load()
}

func (r *Registry) load() error {
	sets := r.store.GetAll()
	ids := make([]storage.Identifier, 0, len(sets))
	for id := range sets {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	list := &List{}
	seen := map[string]storage.Identifier{}
	for _, id := range ids {
		for _, p := range sets[id].Profiles {
			if other, ok := seen[p.Id]; ok {
				return fmt.Errorf("%w %s in sets %s and %s", ErrDuplicateId, p.Id, other, id)
			}
			seen[p.Id] = id
			list.entries = append(list.entries, Entry{Set: id, Profile: p.Clone()})
		}
	}

	r.Publish(list)
	return nil
}

// Publish swaps in list as the current view.
func (r *Registry) Publish(list *List) {
	r.list.Store(list)
}

// Current returns the published list.
func (r *Registry) Current() *List {
	return r.list.Load()
}

// Profiles returns the published profiles in registry order.
func (r *Registry) Profiles() []*loadout.Profile {
	return r.Current().Profiles()
}

// Active returns the profiles that should render under states.
func (r *Registry) Active(states loadout.RenderStateChecker) []*loadout.Profile {
	var out []*loadout.Profile
	for _, e := range r.Current().entries {
		if e.Profile.ShouldRender(states) {
			out = append(out, e.Profile)
		}
	}
	return out
}

type profileNames []Entry

func (s profileNames) String(i int) string { return s[i].Profile.Name }
func (s profileNames) Len() int            { return len(s) }

// Find resolves query to a profile by id, then by name ignoring case, then
// by the best fuzzy name match.
func (r *Registry) Find(query string) (*loadout.Profile, error) {
	query = strings.TrimSpace(query)
	list := r.Current()

	if e, ok := list.entry(query); ok {
		return e.Profile, nil
	}
	for _, e := range list.entries {
		if strings.EqualFold(e.Profile.Name, query) {
			return e.Profile, nil
		}
	}

	if query != "" {
		matches := fuzzy.FindFrom(query, profileNames(list.entries))
		if len(matches) > 0 {
			return list.entries[matches[0].Index].Profile, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, query)
}

// Create appends p to set, creating the set when it does not exist.
func (r *Registry) Create(ctx context.Context, set storage.Identifier, p *loadout.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.Current().entry(p.Id); ok {
		return fmt.Errorf("%w %s", ErrDuplicateId, p.Id)
	}

	ps := &ProfileSet{}
	if existing := r.store.Get(set); existing != nil {
		ps = existing.Clone()
	}
	ps.Profiles = append(ps.Profiles, p.Clone())

	return r.save(ctx, set, ps)
}

// Update applies fn to a copy of the profile with the given id and persists
// the result. Readers keep seeing the previous list until the save succeeds.
func (r *Registry) Update(ctx context.Context, id string, fn func(*loadout.Profile) error) (*loadout.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.Current().entry(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, id)
	}
	existing := r.store.Get(e.Set)
	if existing == nil {
		return nil, fmt.Errorf("%w: set %s", ErrProfileNotFound, e.Set)
	}

	ps := existing.Clone()
	i := ps.indexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, id)
	}

	updated := ps.Profiles[i]
	err := fn(updated)
	if err != nil {
		return nil, err
	}
	if updated.Id != id {
		return nil, fmt.Errorf("profile id cannot change")
	}

	err = r.save(ctx, e.Set, ps)
	if err != nil {
		return nil, err
	}
	return updated.Clone(), nil
}

// Delete removes the profile with the given id. Emptied sets are deleted.
func (r *Registry) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.Current().entry(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrProfileNotFound, id)
	}
	existing := r.store.Get(e.Set)
	if existing == nil {
		return fmt.Errorf("%w: set %s", ErrProfileNotFound, e.Set)
	}

	ps := existing.Clone()
	ps.Profiles = slices.DeleteFunc(ps.Profiles, func(p *loadout.Profile) bool {
		return p.Id == id
	})

	if len(ps.Profiles) == 0 {
		err := r.store.Delete(e.Set)
		if err != nil {
			return fmt.Errorf("deleting set %s: %w", e.Set, err)
		}
		return r.afterWrite(ctx, e.Set)
	}
	return r.save(ctx, e.Set, ps)
}

func (r *Registry) save(ctx context.Context, set storage.Identifier, ps *ProfileSet) error {
	err := r.store.Save(set, ps)
	if err != nil {
		return fmt.Errorf("saving set %s: %w", set, err)
	}
	return r.afterWrite(ctx, set)
}

// afterWrite republishes locally and tells other processes to reload.
func (r *Registry) afterWrite(ctx context.Context, set storage.Identifier) error {
	err := r.load()
	if err != nil {
		return err
	}

	if r.pub == nil {
		return nil
	}
	err = messaging.PublishJSON(r.pub, r.subjects.ProfileSync(), SyncMessage{Origin: r.origin, Set: set})
	if err != nil {
		// The local write already succeeded; peers catch up on their next change.
		slog.WarnContext(ctx, "publishing profile sync", "set", set, "error", err)
	}
	return nil
}
