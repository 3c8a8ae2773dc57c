// Package battle implements the combat core: the turn orchestrator, the
// card-effect interpreter, the passive-ability bus, and the initiative
// scheduler. A battle is single-threaded and deterministic: the same setup,
// seed, and intent sequence reproduces the same state and log bit for bit.
package battle

import (
	"fmt"
	"math/rand/v2"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/davidmovas/pokespire/internal/core/card"
	"github.com/davidmovas/pokespire/internal/core/status"
	"github.com/davidmovas/pokespire/internal/data"
	"github.com/davidmovas/pokespire/internal/world/grid"
)

// Phase is the battle-level state machine.
type Phase string

const (
	PhaseOngoing Phase = "ongoing"
	PhaseVictory Phase = "victory"
	PhaseDefeat  Phase = "defeat"
)

// maxSlots is the formation capacity of one side.
const maxSlots = 6

// SwitchCost is the energy price of a positional switch.
const SwitchCost = 2

// Slot describes one combatant of a battle setup.
type Slot struct {
	SpeciesID     string        `msgpack:"species_id" yaml:"species"`
	Pos           grid.Position `msgpack:"pos" yaml:"pos"`
	HPOverride    int           `msgpack:"hp_override,omitempty" yaml:"hp-override,omitempty"`
	ExtraPassives []string      `msgpack:"extra_passives,omitempty" yaml:"extra-passives,omitempty"`
}

// Setup is the external input a battle is constructed from. Party
// selection, the run map, and the sandbox all produce one.
type Setup struct {
	Players []Slot `msgpack:"players" yaml:"players"`
	Enemies []Slot `msgpack:"enemies" yaml:"enemies"`
	Seed    uint64 `msgpack:"seed" yaml:"seed"`
}

// State is the complete mutable battle state. Snapshot returns it by deep
// copy; only the orchestrator writes it.
type State struct {
	Combatants   []*Combatant
	Order        []string
	CurrentIndex int
	Round        int
	Phase        Phase
	Log          []LogEntry
	GoldEarned   int
	Seed         uint64
}

// Combatant finds a combatant by id.
func (s *State) Combatant(id string) (*Combatant, bool) {
	for _, c := range s.Combatants {
		if c.ID == id {
			return c, true
		}
	}
	return nil, false
}

// Current returns the acting combatant, nil when the battle is over.
func (s *State) Current() *Combatant {
	if s.Phase != PhaseOngoing {
		return nil
	}
	if s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Order) {
		return nil
	}
	c, ok := s.Combatant(s.Order[s.CurrentIndex])
	if !ok {
		return nil
	}
	return c
}

// LiveOn returns the live combatants of one side in slot order.
func (s *State) LiveOn(side grid.Side) []*Combatant {
	var out []*Combatant
	for _, c := range s.Combatants {
		if c.Alive && c.Side == side {
			out = append(out, c)
		}
	}
	return out
}

func (s *State) board() grid.Board {
	occupants := make([]grid.Occupant, 0, len(s.Combatants))
	for _, c := range s.Combatants {
		occupants = append(occupants, c.Occupant())
	}
	return grid.NewBoard(occupants)
}

// Battle owns one combat encounter. All mutation goes through the intent
// methods; everything else observes.
type Battle struct {
	id      string
	reg     *data.Registry
	state   *State
	rng     *rand.Rand
	setup   Setup
	journal []Intent

	// depth bounds recursive passive triggers within a single event.
	depth int
}

// New constructs a battle from a setup, validates it against the catalogs,
// shuffles every deck, resolves initiative, fires enter-battle passives, and
// begins the first turn.
func New(reg *data.Registry, setup Setup) (*Battle, error) {
	if len(setup.Players) == 0 || len(setup.Players) > maxSlots {
		return nil, fmt.Errorf("player side has %d combatants, want 1..%d", len(setup.Players), maxSlots)
	}
	if len(setup.Enemies) == 0 || len(setup.Enemies) > maxSlots {
		return nil, fmt.Errorf("enemy side has %d combatants, want 1..%d", len(setup.Enemies), maxSlots)
	}

	b := &Battle{
		id:    gonanoid.Must(),
		reg:   reg,
		setup: setup,
		rng:   rand.New(rand.NewPCG(setup.Seed, setup.Seed)),
		state: &State{
			Round: 1,
			Phase: PhaseOngoing,
			Seed:  setup.Seed,
		},
	}

	for i, slot := range setup.Players {
		c, err := b.spawn(grid.SidePlayer, i, slot)
		if err != nil {
			return nil, err
		}
		b.state.Combatants = append(b.state.Combatants, c)
	}
	for i, slot := range setup.Enemies {
		c, err := b.spawn(grid.SideEnemy, i, slot)
		if err != nil {
			return nil, err
		}
		b.state.Combatants = append(b.state.Combatants, c)
	}
	if err := b.validatePlacement(); err != nil {
		return nil, err
	}

	for _, c := range b.state.Combatants {
		c.Piles.Shuffle(b.rng)
	}

	b.computeOrder()
	for _, id := range b.state.Order {
		c, _ := b.state.Combatant(id)
		b.firePassives(hookEnterBattle, c, nil, 0, nil)
	}
	b.beginRoundTurn()
	return b, nil
}

// ID is the battle's session identity. It is operational only and takes no
// part in replay determinism.
func (b *Battle) ID() string {
	return b.id
}

// Setup returns the setup the battle was constructed from.
func (b *Battle) Setup() Setup {
	return b.setup
}

// Registry returns the catalog the battle runs on.
func (b *Battle) Registry() *data.Registry {
	return b.reg
}

// Phase returns the battle-level phase.
func (b *Battle) Phase() Phase {
	return b.state.Phase
}

// Current returns the acting combatant, nil when the battle is over.
func (b *Battle) Current() *Combatant {
	return b.state.Current()
}

// Combatant finds a combatant by id.
func (b *Battle) Combatant(id string) (*Combatant, bool) {
	return b.state.Combatant(id)
}

// CardInHand resolves the move definition at a hand index of the acting
// combatant.
func (b *Battle) CardInHand(index int) (card.Move, error) {
	c := b.state.Current()
	if c == nil {
		return card.Move{}, ErrNotYourTurn
	}
	if index < 0 || index >= len(c.Piles.Hand) {
		return card.Move{}, ErrUnknownCard
	}
	return b.reg.Move(c.Piles.Hand[index])
}

func (b *Battle) spawn(side grid.Side, slotIndex int, slot Slot) (*Combatant, error) {
	sp, err := b.reg.Species(slot.SpeciesID)
	if err != nil {
		return nil, fmt.Errorf("%s slot %d: %w", side, slotIndex, err)
	}
	if !slot.Pos.Valid() {
		return nil, fmt.Errorf("%s slot %d: invalid position %+v", side, slotIndex, slot.Pos)
	}

	hp := sp.MaxHP
	if slot.HPOverride > 0 {
		hp = slot.HPOverride
		if hp > sp.MaxHP {
			hp = sp.MaxHP
		}
	}

	passives := append([]string(nil), sp.Passives...)
	for _, id := range slot.ExtraPassives {
		if _, err := b.reg.Passive(id); err != nil {
			return nil, fmt.Errorf("%s slot %d: %w", side, slotIndex, err)
		}
		passives = append(passives, id)
	}
	for _, id := range passives {
		if _, ok := passiveHandlers[id]; !ok {
			return nil, fmt.Errorf("%s slot %d: passive %q has no registered handler", side, slotIndex, id)
		}
	}

	return &Combatant{
		ID:            fmt.Sprintf("%s-%d-%s", side, slotIndex, sp.ID),
		Side:          side,
		SlotIndex:     slotIndex,
		Pos:           slot.Pos,
		SpeciesID:     sp.ID,
		Name:          sp.Name,
		Types:         append([]card.Type(nil), sp.Types...),
		CurrentHP:     hp,
		MaxHP:         sp.MaxHP,
		Energy:        0,
		EnergyCap:     sp.EnergyCap,
		EnergyPerTurn: sp.EnergyPerTurn,
		BaseSpeed:     sp.Speed,
		HandSize:      sp.HandSize,
		Gold:          sp.Gold,
		Piles:         card.NewPiles(sp.Deck),
		Statuses:      status.NewSet(),
		Passives:      passives,
		IsFirstTurn:   true,
		Alive:         true,
	}, nil
}

func (b *Battle) validatePlacement() error {
	seen := make(map[string]string)
	for _, c := range b.state.Combatants {
		key := fmt.Sprintf("%s/%s/%d", c.Side, c.Pos.Row, c.Pos.Column)
		if other, ok := seen[key]; ok {
			return fmt.Errorf("combatants %s and %s share cell %s", other, c.ID, key)
		}
		seen[key] = c.ID
	}
	return nil
}
