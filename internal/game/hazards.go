package game

import (
	"github.com/mitchelldurbincs/Archipelago/internal/game/core"
	"github.com/mitchelldurbincs/Archipelago/internal/game/entity"
	"github.com/mitchelldurbincs/Archipelago/internal/game/events"
)

// applyHazards resolves the decoration under a ship or swimming monster.
// Minefields always bite and bite harder in a storm; reefs only tear hulls in
// a storm. Flyers pass over both.
func (e *Engine) applyHazards(ship *entity.Entity) error {
	if ship == nil || !ship.Alive || ship.Flying || ship.Fighter == nil {
		return nil
	}
	tile := e.gs.Grid.At(ship.Position)
	if tile == nil {
		return nil
	}

	stormy := e.gs.Weather != nil && e.gs.Weather.Stormy()
	decoration := tile.Decoration
	var damage int
	consumed := false
	switch decoration {
	case core.DecorationMinefield:
		damage = e.settings.MinefieldDamage
		if stormy {
			damage += e.settings.StormBonus
		}
		if e.settings.MinefieldMode == MinefieldOneShot {
			tile.Decoration = core.DecorationNone
			consumed = true
		}
	case core.DecorationReef:
		if !stormy {
			return nil
		}
		damage = e.settings.ReefDamage
	default:
		return nil
	}

	if ship.IsPlayer() {
		e.stats.HazardsHit++
	}
	e.logger.Info().
		Int("entity_id", int(ship.ID)).
		Str("decoration", string(decoration)).
		Int("damage", damage).
		Bool("stormy", stormy).
		Msg("Hazard triggered")
	e.publish(events.NewHazardTriggeredEvent(e.gs.SessionID, e.gs.Turn, int(ship.ID), string(decoration), damage, consumed))
	return e.damageHull(core.NoEntity, ship, damage)
}
