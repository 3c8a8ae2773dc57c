// Package status implements the stacking status-effect model shared by every
// combatant: apply-and-merge semantics, the stack cap, cleansing, and the
// speed adjustments used by the initiative scheduler.
package status

// Kind identifies a status effect.
type Kind string

const (
	Burn      Kind = "burn"
	Poison    Kind = "poison"
	Leech     Kind = "leech"
	Paralysis Kind = "paralysis"
	Slow      Kind = "slow"
	Haste     Kind = "haste"
	Sleep     Kind = "sleep"
	Enfeeble  Kind = "enfeeble"
	Strength  Kind = "strength"
	Evasion   Kind = "evasion"
	Taunt     Kind = "taunt"
)

// MaxStacks caps how high a single status can stack.
const MaxStacks = 10

// Known reports whether the kind names a real status.
func Known(k Kind) bool {
	switch k {
	case Burn, Poison, Leech, Paralysis, Slow, Haste, Sleep,
		Enfeeble, Strength, Evasion, Taunt:
		return true
	}
	return false
}

// Negative reports whether the status is removed by a cleanse.
func Negative(k Kind) bool {
	switch k {
	case Burn, Poison, Paralysis, Slow, Enfeeble, Sleep, Leech, Taunt:
		return true
	}
	return false
}

// Instance is one active status on a combatant. SourceID records the
// applier, which leech uses as its attacker of record.
type Instance struct {
	Kind     Kind   `msgpack:"kind"`
	Stacks   int    `msgpack:"stacks"`
	SourceID string `msgpack:"source_id"`
}

// Set holds a combatant's active statuses. Duplicate kinds are merged on
// apply; iteration follows application order so replays are deterministic.
type Set struct {
	list []Instance
}

// NewSet creates an empty status set.
func NewSet() *Set {
	return &Set{}
}

// Restore rebuilds a set from persisted instances.
func Restore(instances []Instance) *Set {
	s := &Set{list: make([]Instance, len(instances))}
	copy(s.list, instances)
	return s
}

// Apply adds stacks of a status, merging with an existing instance of the
// same kind. The merged total is capped at MaxStacks. It returns the stack
// count after merging. Applying an unknown kind or non-positive stacks is
// a no-op returning 0.
func (s *Set) Apply(kind Kind, stacks int, sourceID string) int {
	if !Known(kind) || stacks <= 0 {
		return 0
	}
	for i := range s.list {
		if s.list[i].Kind == kind {
			s.list[i].Stacks += stacks
			if s.list[i].Stacks > MaxStacks {
				s.list[i].Stacks = MaxStacks
			}
			s.list[i].SourceID = sourceID
			return s.list[i].Stacks
		}
	}
	if stacks > MaxStacks {
		stacks = MaxStacks
	}
	s.list = append(s.list, Instance{Kind: kind, Stacks: stacks, SourceID: sourceID})
	return stacks
}

// Stacks returns the stack count for a kind, zero when absent.
func (s *Set) Stacks(kind Kind) int {
	for _, in := range s.list {
		if in.Kind == kind {
			return in.Stacks
		}
	}
	return 0
}

// Source returns the applier recorded for a kind.
func (s *Set) Source(kind Kind) string {
	for _, in := range s.list {
		if in.Kind == kind {
			return in.SourceID
		}
	}
	return ""
}

// Has reports whether the kind is active.
func (s *Set) Has(kind Kind) bool {
	return s.Stacks(kind) > 0
}

// HasNegative reports whether any cleansable status is active.
func (s *Set) HasNegative() bool {
	for _, in := range s.list {
		if Negative(in.Kind) {
			return true
		}
	}
	return false
}

// Remove drops a status entirely.
func (s *Set) Remove(kind Kind) {
	for i, in := range s.list {
		if in.Kind == kind {
			s.list = append(s.list[:i], s.list[i+1:]...)
			return
		}
	}
}

// Consume removes n stacks from a status; the instance is dropped when its
// stacks reach zero. It returns the stacks actually consumed.
func (s *Set) Consume(kind Kind, n int) int {
	for i := range s.list {
		if s.list[i].Kind != kind {
			continue
		}
		if n > s.list[i].Stacks {
			n = s.list[i].Stacks
		}
		s.list[i].Stacks -= n
		if s.list[i].Stacks <= 0 {
			s.list = append(s.list[:i], s.list[i+1:]...)
		}
		return n
	}
	return 0
}

// Cleanse removes every negative status and returns the removed kinds in
// application order.
func (s *Set) Cleanse() []Kind {
	var removed []Kind
	kept := s.list[:0]
	for _, in := range s.list {
		if Negative(in.Kind) {
			removed = append(removed, in.Kind)
			continue
		}
		kept = append(kept, in)
	}
	s.list = kept
	return removed
}

// All returns the active instances in application order.
func (s *Set) All() []Instance {
	out := make([]Instance, len(s.list))
	copy(out, s.list)
	return out
}

// Len returns the number of distinct active statuses.
func (s *Set) Len() int {
	return len(s.list)
}

// EffectiveSpeed applies slow and haste to a base speed. Speed never drops
// below 1.
func EffectiveSpeed(base int, s *Set) int {
	speed := base - 2*s.Stacks(Slow) + 3*s.Stacks(Haste)
	if speed < 1 {
		speed = 1
	}
	return speed
}
