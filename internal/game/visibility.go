package game

// This file contains all field-of-view functionality for the game engine.

import (
	"github.com/mitchelldurbincs/Archipelago/internal/game/core"
	"github.com/mitchelldurbincs/Archipelago/internal/game/entity"
	"github.com/mitchelldurbincs/Archipelago/internal/game/fov"
)

// viewerFor describes what an entity can see from where it stands
func (e *Engine) viewerFor(ent *entity.Entity) fov.Viewer {
	return fov.Viewer{
		Origin:         ent.Position,
		ViewDistance:   ent.EffectiveViewDistance(),
		BlockAt:        e.settings.blockElevation(ent.Flying),
		ExtraMistView:  ent.ExtraMistView(),
		RevealExplored: ent.IsPlayer(),
	}
}

// updateFOV replaces an entity's field of view. Corpses see nothing.
func (e *Engine) updateFOV(ent *entity.Entity) {
	if !ent.Alive {
		ent.FOV = core.NewCoordSet()
		return
	}
	ent.FOV = e.fov.Compute(e.gs.Grid, e.viewerFor(ent))
}

// updateAllFOV recomputes every living entity's field of view from scratch
func (e *Engine) updateAllFOV() {
	for _, ent := range e.gs.World.Living() {
		e.updateFOV(ent)
	}
	e.logger.Debug().Int("explored", e.gs.Grid.ExploredTiles()).Msg("Performed full visibility update")
}
