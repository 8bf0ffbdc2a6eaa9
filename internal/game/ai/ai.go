// Package ai decides one action per turn for computer-controlled entities.
package ai

import (
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/Archipelago/internal/game/core"
	"github.com/mitchelldurbincs/Archipelago/internal/game/entity"
	"github.com/mitchelldurbincs/Archipelago/internal/game/pathing"
)

// Context is what a policy may read while deciding. Decisions never mutate
// the grid or other entities; only the deciding entity's AI memory changes.
type Context struct {
	Grid   *core.Grid
	World  *entity.World
	Rng    *rand.Rand
	Logger zerolog.Logger
	// ForgetAfter drops a remembered target after this many turns out of sight; 0 never forgets
	ForgetAfter int
}

// Policy chooses an action for self
type Policy interface {
	Decide(ctx *Context, self *entity.Entity) core.Action
}

// For returns the policy implementation for a policy tag
func For(p entity.Policy) Policy {
	if p == entity.PolicyHostile {
		return Hostile{}
	}
	return Wander{}
}

// Decide runs the entity's own policy. Entities without AI wait.
func Decide(ctx *Context, self *entity.Entity) core.Action {
	if self.AI == nil || !self.Alive {
		return core.NewWait(self.ID)
	}
	return For(self.AI.Policy).Decide(ctx, self)
}

// Wander drifts: rotate left, rotate right or move ahead with equal odds.
type Wander struct{}

func (Wander) Decide(ctx *Context, self *entity.Entity) core.Action {
	switch ctx.Rng.Intn(3) {
	case 0:
		return core.NewRotate(self.ID, core.RotateLeft)
	case 1:
		return core.NewRotate(self.ID, core.RotateRight)
	}
	if canAdvance(ctx, self) {
		return core.NewMove(self.ID)
	}
	return randomRotation(ctx, self)
}

// Hostile hunts the player. The last sighting is remembered and chased even
// after the player slips out of view, which can leave a hunter circling an
// island it cannot path across.
type Hostile struct{}

func (Hostile) Decide(ctx *Context, self *entity.Entity) core.Action {
	st := self.AI
	updateTarget(ctx, self, st)
	if !st.HasTarget || st.Target == self.Position {
		return Wander{}.Decide(ctx, self)
	}

	if core.Distance(self.Position, st.Target) < 2 {
		return core.NewMelee(self.ID, st.Target)
	}

	field := pathing.Generate(ctx.Grid, st.Target, traversal(self))
	return steer(ctx, self, field)
}

func updateTarget(ctx *Context, self *entity.Entity, st *entity.AIState) {
	player := ctx.World.Player()
	if player != nil && player.Alive && self.Sees(player.Position) {
		st.Target = player.Position
		st.HasTarget = true
		st.TurnsSinceSeen = 0
		return
	}
	if !st.HasTarget {
		return
	}
	st.TurnsSinceSeen++
	if ctx.ForgetAfter > 0 && st.TurnsSinceSeen >= ctx.ForgetAfter {
		ctx.Logger.Debug().Int("entity_id", int(self.ID)).Str("target", st.Target.String()).Msg("Lost track of target")
		st.HasTarget = false
	}
}

// steer moves ahead when the facing hex is already as close as any neighbor,
// otherwise turns toward the nearest rotation that reaches such a hex.
func steer(ctx *Context, self *entity.Entity, field *pathing.Field) core.Action {
	_, best, ok := field.Best(self.Position)
	if !ok {
		return Wander{}.Decide(ctx, self)
	}

	if d, reached := field.At(self.Ahead()); reached && d == best {
		return core.NewMove(self.ID)
	}

	atBest := func(dir core.Direction) bool {
		d, reached := field.At(core.Neighbor(self.Position, dir))
		return reached && d == best
	}
	for steps := 1; steps <= 2; steps++ {
		left := atBest(self.Facing.Rotate(-steps))
		right := atBest(self.Facing.Rotate(steps))
		switch {
		case left && right:
			return randomRotation(ctx, self)
		case left:
			return core.NewRotate(self.ID, core.RotateLeft)
		case right:
			return core.NewRotate(self.ID, core.RotateRight)
		}
	}
	return randomRotation(ctx, self)
}

func randomRotation(ctx *Context, self *entity.Entity) core.Action {
	if ctx.Rng.Intn(2) == 0 {
		return core.NewRotate(self.ID, core.RotateLeft)
	}
	return core.NewRotate(self.ID, core.RotateRight)
}

func canAdvance(ctx *Context, self *entity.Entity) bool {
	ahead := self.Ahead()
	return self.CanEnter(ctx.Grid, ahead) && !ctx.World.Occupied(ahead, self.ID)
}

// traversal is the elevation set an entity can path over
func traversal(self *entity.Entity) core.ElevationSet {
	if self.Profile.IsEmpty() {
		return core.ElevationRange(core.Ocean, core.Shallows)
	}
	return self.Profile
}
