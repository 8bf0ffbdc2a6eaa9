package main

import (
	"math/rand"

	"github.com/mitchelldurbincs/Archipelago/internal/game"
	"github.com/mitchelldurbincs/Archipelago/internal/game/core"
	"github.com/mitchelldurbincs/Archipelago/internal/game/entity"
	"github.com/mitchelldurbincs/Archipelago/internal/game/states"
)

// captain is a scripted player: fight what is in reach, loot what is near,
// patch the hull when it is low, restock in port, otherwise explore.
type captain struct {
	rng       *rand.Rand
	shopping  []core.Action
	restocked bool
}

func newCaptain(rng *rand.Rand) *captain {
	return &captain{rng: rng}
}

// next picks the player's next action
func (c *captain) next(e *game.Engine) core.Action {
	p := e.Player()
	id := p.ID

	if e.Phase() == states.PhaseDocked {
		return c.inPort(e, p)
	}
	c.restocked = false

	legal := e.LegalActions()
	has := func(a core.Action) bool {
		for _, l := range legal {
			if l == a {
				return true
			}
		}
		return false
	}

	attacks := []core.Action{
		core.NewBroadside(id, core.Starboard),
		core.NewBroadside(id, core.Port),
		core.NewArrowAttack(id),
	}
	for _, a := range attacks {
		if has(a) {
			return a
		}
	}
	if has(core.NewSalvage(id)) {
		return core.NewSalvage(id)
	}
	if p.Fighter != nil && p.Fighter.HP*2 < p.Fighter.MaxHP && has(core.NewRepair(id, core.RepairHull)) {
		return core.NewRepair(id, core.RepairHull)
	}
	if has(core.NewRepair(id, core.RepairSails)) {
		return core.NewRepair(id, core.RepairSails)
	}
	if has(core.NewDock(id)) && c.rng.Intn(4) == 0 {
		return core.NewDock(id)
	}
	for _, a := range legal {
		if _, ok := a.(core.CrewAction); ok && c.rng.Intn(8) == 0 {
			return a
		}
	}

	if has(core.NewMove(id)) && c.rng.Intn(4) != 0 {
		return core.NewMove(id)
	}
	if c.rng.Intn(2) == 0 {
		return core.NewRotate(id, core.RotateLeft)
	}
	return core.NewRotate(id, core.RotateRight)
}

// inPort sells trade goods, tops up ammunition and wood, then casts off
func (c *captain) inPort(e *game.Engine, p *entity.Entity) core.Action {
	id := p.ID
	if !c.restocked {
		c.restocked = true
		c.shopping = c.shopping[:0]
		for _, name := range e.Items().Names() {
			stats, _ := e.Items().Get(name)
			if stats.Kind == "trade" && p.Cargo.Count(name) > 0 {
				c.shopping = append(c.shopping, core.NewSell(id, name, p.Cargo.Count(name)))
			}
		}
		c.shopping = append(c.shopping,
			core.NewBuy(id, entity.ItemCannonballs, 4),
			core.NewBuy(id, entity.ItemArrows, 10),
			core.NewBuy(id, entity.ItemWood, 2),
		)
	}
	if len(c.shopping) > 0 {
		a := c.shopping[0]
		c.shopping = c.shopping[1:]
		return a
	}
	return core.NewUndock(id)
}
