// Package entity holds ships, monsters and their components in an ID-indexed arena.
package entity

import "github.com/mitchelldurbincs/Archipelago/internal/game/core"

// Kind separates the player from the things that hunt it
type Kind int

const (
	KindPlayer Kind = iota
	KindMonster
	KindRival
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindMonster:
		return "monster"
	case KindRival:
		return "rival"
	default:
		return "unknown"
	}
}

// Policy selects an AI behaviour
type Policy int

const (
	PolicyWander Policy = iota
	PolicyHostile
)

func (p Policy) String() string {
	if p == PolicyHostile {
		return "hostile"
	}
	return "wander"
}

// AIState is the memory an AI-controlled entity carries between turns
type AIState struct {
	Policy         Policy
	Target         core.Coordinate
	HasTarget      bool
	TurnsSinceSeen int
}

// Entity is anything that occupies a hex: the player ship, rivals and monsters.
// Optional components are nil when absent.
type Entity struct {
	ID           core.EntityID
	Name         string
	Icon         string
	Kind         Kind
	Position     core.Coordinate
	Facing       core.Direction
	ProfileName  string
	Profile      core.ElevationSet // empty means the plain sailing rule
	Flying       bool
	Alive        bool
	Corpse       bool
	Salvaged     bool
	ViewDistance int
	FOV          core.CoordSet

	Fighter    *Fighter
	Sails      *Sails
	Broadsides *Broadsides
	Crew       *Crew
	Cargo      *Cargo
	AI         *AIState
	Effects    []Effect
}

func (e *Entity) IsPlayer() bool { return e.Kind == KindPlayer }

// CanEnter reports whether the entity's movement rules allow standing on c
func (e *Entity) CanEnter(g *core.Grid, c core.Coordinate) bool {
	if e.Profile.IsEmpty() {
		return g.CanSailTo(c.X, c.Y)
	}
	return g.CanMoveTo(c.X, c.Y, e.Profile)
}

// Ahead is the hex directly in front of the entity
func (e *Entity) Ahead() core.Coordinate {
	return core.Neighbor(e.Position, e.Facing)
}

// Sees reports whether c is in the entity's current field of view
func (e *Entity) Sees(c core.Coordinate) bool {
	return e.FOV != nil && e.FOV.Has(c)
}

// EffectiveViewDistance is ViewDistance plus lookout bonuses
func (e *Entity) EffectiveViewDistance() int {
	if !e.Alive {
		return 0
	}
	d := e.ViewDistance
	for _, eff := range e.Effects {
		d += eff.ExtraView
	}
	return d
}

// ExtraMistView totals scrying bonuses
func (e *Entity) ExtraMistView() int {
	n := 0
	for _, eff := range e.Effects {
		n += eff.ExtraMistView
	}
	return n
}

// AddEffect applies a timed effect, refreshing one with the same name
func (e *Entity) AddEffect(eff Effect) {
	for i := range e.Effects {
		if e.Effects[i].Name == eff.Name {
			e.Effects[i] = eff
			return
		}
	}
	e.Effects = append(e.Effects, eff)
}

// TickEffects counts effects down and drops the expired ones
func (e *Entity) TickEffects() {
	kept := e.Effects[:0]
	for _, eff := range e.Effects {
		eff.TurnsLeft--
		if eff.TurnsLeft > 0 {
			kept = append(kept, eff)
		}
	}
	e.Effects = kept
}

// Hostile reports whether a and b are enemies. Only the player is anyone's enemy.
func Hostile(a, b *Entity) bool {
	return a.IsPlayer() != b.IsPlayer()
}
