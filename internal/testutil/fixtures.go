package testutil

import (
	"github.com/mitchelldurbincs/Archipelago/internal/game/core"
	"github.com/mitchelldurbincs/Archipelago/internal/game/entity"
)

// OceanGrid creates a grid of open ocean
func OceanGrid(width, height int) *core.Grid {
	return core.NewGrid(width, height, core.Ocean)
}

// GridWithTiles creates an ocean grid and overrides specific tiles
func GridWithTiles(width, height int, tiles map[core.Coordinate]core.Tile) *core.Grid {
	g := OceanGrid(width, height)
	for c, t := range tiles {
		*g.At(c) = t
	}
	return g
}

// NewShip creates a living player ship with hull, sails, crew, a stocked hold
// and one gun on each side
func NewShip(name string, at core.Coordinate, facing core.Direction) *entity.Entity {
	cargo := entity.NewCargo(100, 500, 500)
	cargo.Add(entity.ItemArrows, 20)
	cargo.Add(entity.ItemCannonballs, 10)
	cargo.Add(entity.ItemWood, 6)

	e := &entity.Entity{
		Name:         name,
		Icon:         "@",
		Kind:         entity.KindPlayer,
		Position:     at,
		Facing:       facing,
		Profile:      core.ElevationRange(core.Ocean, core.Shallows),
		ProfileName:  "water",
		Alive:        true,
		ViewDistance: 5,
		Fighter:      &entity.Fighter{HP: 30, MaxHP: 30, Defense: 1, Power: 3},
		Sails:        &entity.Sails{HP: 10, MaxHP: 10},
		Broadsides:   &entity.Broadsides{},
		Crew:         &entity.Crew{Count: 8, Max: 12},
		Cargo:        cargo,
	}
	e.Broadsides.Mount(core.Port, NewGun("carronade", 6, 2, 3))
	e.Broadsides.Mount(core.Starboard, NewGun("long_gun", 4, 4, 4))
	return e
}

// NewGun creates a loaded weapon
func NewGun(name string, power, rng, cooldown int) *entity.Weapon {
	return &entity.Weapon{Name: name, HP: 10, MaxHP: 10, Power: power, Range: rng, CooldownMax: cooldown}
}

// NewMonster creates a hostile sea monster with no crew or cargo
func NewMonster(name string, at core.Coordinate, facing core.Direction, hp, power int) *entity.Entity {
	return &entity.Entity{
		Name:         name,
		Icon:         "S",
		Kind:         entity.KindMonster,
		Position:     at,
		Facing:       facing,
		Profile:      core.ElevationRange(core.Ocean, core.Shallows),
		ProfileName:  "water",
		Alive:        true,
		ViewDistance: 6,
		Fighter:      &entity.Fighter{HP: hp, MaxHP: hp, Power: power},
		AI:           &entity.AIState{Policy: entity.PolicyHostile},
	}
}

// NewWorld spawns the given entities in order; the first player becomes the world's player
func NewWorld(entities ...*entity.Entity) *entity.World {
	w := entity.NewWorld()
	for _, e := range entities {
		w.Spawn(e)
	}
	return w
}
