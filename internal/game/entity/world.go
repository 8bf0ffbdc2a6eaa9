package entity

import (
	"fmt"

	"github.com/mitchelldurbincs/Archipelago/internal/game/core"
)

// World owns every entity. Entities are addressed by ID and never removed;
// dead ones stay as corpses.
type World struct {
	entities []*Entity
	player   core.EntityID
}

func NewWorld() *World {
	return &World{}
}

// Spawn adds e to the arena and assigns its ID. Weapons are re-pointed at the new ID.
func (w *World) Spawn(e *Entity) core.EntityID {
	e.ID = core.EntityID(len(w.entities) + 1)
	if e.Broadsides != nil {
		for _, wp := range e.Broadsides.All() {
			wp.Owner = e.ID
		}
	}
	if e.FOV == nil {
		e.FOV = core.NewCoordSet()
	}
	w.entities = append(w.entities, e)
	if e.Kind == KindPlayer && w.player == core.NoEntity {
		w.player = e.ID
	}
	return e.ID
}

// Get returns the entity with the given ID
func (w *World) Get(id core.EntityID) (*Entity, error) {
	idx := int(id) - 1
	if idx < 0 || idx >= len(w.entities) {
		return nil, fmt.Errorf("%w: %d", core.ErrInvalidEntity, id)
	}
	return w.entities[idx], nil
}

// Player returns the player entity, or nil before one is spawned
func (w *World) Player() *Entity {
	if w.player == core.NoEntity {
		return nil
	}
	e, _ := w.Get(w.player)
	return e
}

func (w *World) PlayerID() core.EntityID { return w.player }

// All returns every entity in ID order, dead ones included
func (w *World) All() []*Entity { return w.entities }

func (w *World) Len() int { return len(w.entities) }

// Living returns the living entities in ID order
func (w *World) Living() []*Entity {
	out := make([]*Entity, 0, len(w.entities))
	for _, e := range w.entities {
		if e.Alive {
			out = append(out, e)
		}
	}
	return out
}

// At returns the living entity standing on c
func (w *World) At(c core.Coordinate) *Entity {
	for _, e := range w.entities {
		if e.Alive && e.Position == c {
			return e
		}
	}
	return nil
}

// Occupied reports whether a living entity other than except stands on c
func (w *World) Occupied(c core.Coordinate, except core.EntityID) bool {
	for _, e := range w.entities {
		if e.Alive && e.ID != except && e.Position == c {
			return true
		}
	}
	return false
}

// CorpsesNear returns unsalvaged corpses within radius of c in ID order
func (w *World) CorpsesNear(c core.Coordinate, radius int) []*Entity {
	var out []*Entity
	for _, e := range w.entities {
		if e.Corpse && !e.Salvaged && core.Distance(e.Position, c) <= radius {
			out = append(out, e)
		}
	}
	return out
}

// Kill turns an entity into a corpse. It reports whether this call did the
// transition; killing a corpse again changes nothing.
func (w *World) Kill(id core.EntityID) (bool, error) {
	e, err := w.Get(id)
	if err != nil {
		return false, core.WrapEntityError(id, "kill", err)
	}
	if !e.Alive {
		return false, nil
	}
	e.Alive = false
	e.AI = nil
	e.Corpse = true
	e.ViewDistance = 0
	e.Facing = core.Up
	e.FOV = core.NewCoordSet()
	e.Effects = nil
	return true, nil
}
