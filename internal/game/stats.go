package game

// This file contains session statistics bookkeeping for the game engine.

import (
	"github.com/mitchelldurbincs/Archipelago/internal/game/core"
	"github.com/mitchelldurbincs/Archipelago/internal/game/entity"
)

// Stats are running totals for the player's session
type Stats struct {
	TurnsPlayed     int `json:"turns_played"`
	Kills           int `json:"kills"`
	DamageDealt     int `json:"damage_dealt"`
	DamageTaken     int `json:"damage_taken"`
	CoinsEarned     int `json:"coins_earned"`
	CoinsSpent      int `json:"coins_spent"`
	HazardsHit      int `json:"hazards_hit"`
	ActionsRejected int `json:"actions_rejected"`
	AIActions       int `json:"ai_actions"`
}

// recordDamage credits damage dealt by the player and damage the player takes
func (e *Engine) recordDamage(source core.EntityID, target *entity.Entity, dealt int) {
	switch {
	case target.IsPlayer():
		e.stats.DamageTaken += dealt
	case source != core.NoEntity && source == e.gs.World.PlayerID():
		e.stats.DamageDealt += dealt
	}
}
