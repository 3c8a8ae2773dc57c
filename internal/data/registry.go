// Package data loads the immutable move, species, and passive catalogs the
// battle engine runs on. Catalogs are embedded YAML keyed by kebab-case id;
// a missing id is a configuration error surfaced at load or lookup time,
// never silently defaulted.
package data

import (
	"embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/davidmovas/pokespire/internal/core/card"
)

//go:embed catalogs/moves.yaml catalogs/species.yaml catalogs/passives.yaml
var catalogFS embed.FS

// ParentalSuffix marks a synthesized echo copy of a move. Resolving
// "<id>__parental" returns the base move at zero cost, vanishing, with every
// damage-bearing value halved.
const ParentalSuffix = "__parental"

// Species is an immutable combatant template.
type Species struct {
	ID            string      `yaml:"-"`
	Name          string      `yaml:"name"`
	Types         []card.Type `yaml:"types"`
	MaxHP         int         `yaml:"max-hp"`
	Speed         int         `yaml:"speed"`
	EnergyPerTurn int         `yaml:"energy-per-turn"`
	EnergyCap     int         `yaml:"energy-cap"`
	HandSize      int         `yaml:"hand-size"`
	Gold          int         `yaml:"gold"`
	EvolvesInto   string      `yaml:"evolves-into"`
	Passives      []string    `yaml:"passives"`
	Deck          []string    `yaml:"deck"`
}

// Validate checks the template for catalog-load errors.
func (s Species) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("species %s: empty name", s.ID)
	}
	if len(s.Types) == 0 {
		return fmt.Errorf("species %s: no types", s.ID)
	}
	if s.MaxHP <= 0 || s.Speed <= 0 {
		return fmt.Errorf("species %s: max-hp %d speed %d", s.ID, s.MaxHP, s.Speed)
	}
	if s.EnergyPerTurn <= 0 || s.EnergyCap < s.EnergyPerTurn {
		return fmt.Errorf("species %s: energy-per-turn %d cap %d", s.ID, s.EnergyPerTurn, s.EnergyCap)
	}
	if s.HandSize <= 0 {
		return fmt.Errorf("species %s: hand-size %d", s.ID, s.HandSize)
	}
	if len(s.Deck) == 0 {
		return fmt.Errorf("species %s: empty deck", s.ID)
	}
	return nil
}

// Passive is catalog metadata for a passive ability. Behavior lives in the
// battle package's handler table, keyed by the same id.
type Passive struct {
	ID          string `yaml:"-"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Hook        string `yaml:"hook"`
}

// Registry is the read-only catalog the engine consults during battle.
type Registry struct {
	moves    map[string]card.Move
	species  map[string]Species
	passives map[string]Passive
}

// Load parses the embedded catalogs.
func Load() (*Registry, error) {
	moves, err := catalogFS.ReadFile("catalogs/moves.yaml")
	if err != nil {
		return nil, fmt.Errorf("read moves catalog: %w", err)
	}
	species, err := catalogFS.ReadFile("catalogs/species.yaml")
	if err != nil {
		return nil, fmt.Errorf("read species catalog: %w", err)
	}
	passives, err := catalogFS.ReadFile("catalogs/passives.yaml")
	if err != nil {
		return nil, fmt.Errorf("read passives catalog: %w", err)
	}
	return LoadBytes(moves, species, passives)
}

// LoadBytes parses catalogs from raw YAML, validating every record and every
// cross-reference.
func LoadBytes(movesYAML, speciesYAML, passivesYAML []byte) (*Registry, error) {
	var moves map[string]card.Move
	if err := yaml.Unmarshal(movesYAML, &moves); err != nil {
		return nil, fmt.Errorf("parse moves catalog: %w", err)
	}
	var species map[string]Species
	if err := yaml.Unmarshal(speciesYAML, &species); err != nil {
		return nil, fmt.Errorf("parse species catalog: %w", err)
	}
	var passives map[string]Passive
	if err := yaml.Unmarshal(passivesYAML, &passives); err != nil {
		return nil, fmt.Errorf("parse passives catalog: %w", err)
	}

	r := &Registry{
		moves:    make(map[string]card.Move, len(moves)),
		species:  make(map[string]Species, len(species)),
		passives: make(map[string]Passive, len(passives)),
	}
	for id, m := range moves {
		m.ID = id
		if err := m.Validate(); err != nil {
			return nil, err
		}
		r.moves[id] = m
	}
	for id, p := range passives {
		p.ID = id
		if p.Name == "" || p.Hook == "" {
			return nil, fmt.Errorf("passive %s: incomplete record", id)
		}
		r.passives[id] = p
	}
	for id, s := range species {
		s.ID = id
		if err := s.Validate(); err != nil {
			return nil, err
		}
		for _, moveID := range s.Deck {
			if _, ok := r.moves[moveID]; !ok {
				return nil, fmt.Errorf("species %s: unknown move %q in deck", id, moveID)
			}
		}
		for _, passiveID := range s.Passives {
			if _, ok := r.passives[passiveID]; !ok {
				return nil, fmt.Errorf("species %s: unknown passive %q", id, passiveID)
			}
		}
		r.species[id] = s
	}
	// Evolution targets can only be checked once every species is in.
	for id, s := range r.species {
		if s.EvolvesInto == "" {
			continue
		}
		if _, ok := r.species[s.EvolvesInto]; !ok {
			return nil, fmt.Errorf("species %s: unknown evolution target %q", id, s.EvolvesInto)
		}
	}
	return r, nil
}

// Move resolves a move id. Ids carrying ParentalSuffix resolve to the echo
// form of the base move.
func (r *Registry) Move(id string) (card.Move, error) {
	if base, ok := strings.CutSuffix(id, ParentalSuffix); ok {
		m, err := r.Move(base)
		if err != nil {
			return card.Move{}, err
		}
		return echo(m), nil
	}
	m, ok := r.moves[id]
	if !ok {
		return card.Move{}, fmt.Errorf("unknown move id %q", id)
	}
	return m, nil
}

// Species resolves a species id.
func (r *Registry) Species(id string) (Species, error) {
	s, ok := r.species[id]
	if !ok {
		return Species{}, fmt.Errorf("unknown species id %q", id)
	}
	return s, nil
}

// Passive resolves a passive id.
func (r *Registry) Passive(id string) (Passive, error) {
	p, ok := r.passives[id]
	if !ok {
		return Passive{}, fmt.Errorf("unknown passive id %q", id)
	}
	return p, nil
}

// MoveIDs returns every catalog move id in sorted order.
func (r *Registry) MoveIDs() []string {
	ids := make([]string, 0, len(r.moves))
	for id := range r.moves {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// SpeciesIDs returns every catalog species id in sorted order.
func (r *Registry) SpeciesIDs() []string {
	ids := make([]string, 0, len(r.species))
	for id := range r.species {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// PoolMoves returns the moves that roll from a type pool, sorted by id. A
// move belongs to a pool when the pool is its own type or appears in its
// pools list.
func (r *Registry) PoolMoves(pool card.Type) []card.Move {
	var out []card.Move
	for _, id := range r.MoveIDs() {
		m := r.moves[id]
		if m.Type == pool {
			out = append(out, m)
			continue
		}
		for _, p := range m.Pools {
			if p == pool {
				out = append(out, m)
				break
			}
		}
	}
	return out
}

// echo derives the parental-bond copy of a move: free, vanishing, and
// hitting for half of every damage-bearing value.
func echo(base card.Move) card.Move {
	m := base
	m.ID = base.ID + ParentalSuffix
	m.Name = base.Name + " (Echo)"
	m.Cost = 0
	m.Vanish = true
	m.Effects = make([]card.Effect, len(base.Effects))
	copy(m.Effects, base.Effects)
	for i, e := range m.Effects {
		switch e.Kind {
		case card.EffectDamage, card.EffectMultiHit, card.EffectSetDamage,
			card.EffectPercentHP, card.EffectRecoil, card.EffectSelfKO:
			m.Effects[i].Value = e.Value / 2
		}
	}
	return m
}
