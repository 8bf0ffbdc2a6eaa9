package game

import (
	"github.com/mitchelldurbincs/Archipelago/internal/game/core"
	"github.com/mitchelldurbincs/Archipelago/internal/game/entity"
	"github.com/mitchelldurbincs/Archipelago/internal/game/weather"
)

// GameState is everything a turn reads and mutates. It is owned by one Engine
// and never shared across goroutines.
type GameState struct {
	SessionID string
	Seed      int64
	Turn      int
	Grid      *core.Grid
	World     *entity.World
	Weather   *weather.Weather
}

// Player returns the player's ship
func (gs *GameState) Player() *entity.Entity {
	return gs.World.Player()
}
