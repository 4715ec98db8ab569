package dagset

import "github.com/hupe1980/dagset/core"

// Flags is a bitset of cached set properties used to gate fast paths.
// Flags are advisory: removing a flag is always safe, while a flag must
// never claim a property the set does not actually have.
type Flags uint32

const (
	// FlagIDAsc means iteration yields strictly ascending ids.
	FlagIDAsc Flags = 1 << iota
	// FlagIDDesc means iteration yields strictly descending ids.
	FlagIDDesc
	// FlagTopoDesc means iteration is topologically descending
	// (every commit is yielded before its ancestors).
	FlagTopoDesc
	// FlagEmpty means the set has no members.
	FlagEmpty
	// FlagFull means the set covers every known commit.
	FlagFull
	// FlagAncestors means the set is closed under ancestry.
	FlagAncestors
)

// Contains reports whether every flag in other is set.
func (f Flags) Contains(other Flags) bool {
	return f&other == other
}

// Hints caches derived properties of a set: boolean flags plus optional
// id bounds. Hints travel with the set and are invalidated by operations
// that could break the property they assert.
type Hints struct {
	flags  Flags
	minID  core.Id
	maxID  core.Id
	hasMin bool
	hasMax bool
}

// Flags returns the cached property flags.
func (h Hints) Flags() Flags {
	return h.flags
}

// Contains reports whether every flag in f is set.
func (h Hints) Contains(f Flags) bool {
	return h.flags.Contains(f)
}

// MinId returns the cached lower id bound, if known.
func (h Hints) MinId() (core.Id, bool) {
	return h.minID, h.hasMin
}

// MaxId returns the cached upper id bound, if known.
func (h Hints) MaxId() (core.Id, bool) {
	return h.maxID, h.hasMax
}

// Add sets the given flags. The caller must guarantee the properties hold.
func (h *Hints) Add(f Flags) {
	h.flags |= f
}

// Remove clears the given flags. Always safe.
func (h *Hints) Remove(f Flags) {
	h.flags &^= f
}

func (h *Hints) setBounds(minID, maxID core.Id) {
	h.minID, h.maxID = minID, maxID
	h.hasMin, h.hasMax = true, true
}

func (h *Hints) clearBounds() {
	h.hasMin, h.hasMax = false, false
}
