package ai

import (
	"math/rand"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/Archipelago/internal/game/core"
	"github.com/mitchelldurbincs/Archipelago/internal/game/entity"
)

func newTestRNG() *rand.Rand {
	return rand.New(rand.NewSource(12345))
}

type fixture struct {
	ctx     *Context
	player  *entity.Entity
	monster *entity.Entity
}

func newFixture(w, h int, playerAt, monsterAt core.Coordinate, facing core.Direction) *fixture {
	world := entity.NewWorld()
	player := &entity.Entity{Name: "Gull", Kind: entity.KindPlayer, Alive: true, Position: playerAt}
	monster := &entity.Entity{
		Name: "Serpent", Kind: entity.KindMonster, Alive: true, Position: monsterAt, Facing: facing,
		ViewDistance: 6, AI: &entity.AIState{Policy: entity.PolicyHostile},
	}
	world.Spawn(player)
	world.Spawn(monster)
	return &fixture{
		ctx: &Context{
			Grid:   core.NewGrid(w, h, core.Ocean),
			World:  world,
			Rng:    newTestRNG(),
			Logger: zerolog.Nop(),
		},
		player:  player,
		monster: monster,
	}
}

func (f *fixture) sight(visible bool) {
	if visible {
		f.monster.FOV = core.NewCoordSet(f.monster.Position, f.player.Position)
	} else {
		f.monster.FOV = core.NewCoordSet(f.monster.Position)
	}
}

func TestWander_NeverMovesIntoBlockedHex(t *testing.T) {
	f := newFixture(5, 5, core.Coordinate{X: 0, Y: 0}, core.Coordinate{X: 2, Y: 2}, core.Up)
	for i := range f.ctx.Grid.T {
		f.ctx.Grid.T[i].Elevation = core.Grass
	}
	f.ctx.Grid.At(f.monster.Position).Elevation = core.Ocean
	f.monster.AI.Policy = entity.PolicyWander

	for i := 0; i < 200; i++ {
		a := Decide(f.ctx, f.monster)
		_, isRotate := a.(core.RotateAction)
		assert.True(t, isRotate, "expected a rotation, got %s", core.DescribeAction(a))
	}
}

func TestWander_ChoosesAllThreeOnOpenWater(t *testing.T) {
	f := newFixture(9, 9, core.Coordinate{X: 0, Y: 0}, core.Coordinate{X: 4, Y: 4}, core.Up)
	f.monster.AI.Policy = entity.PolicyWander

	counts := map[string]int{}
	for i := 0; i < 300; i++ {
		counts[core.DescribeAction(Decide(f.ctx, f.monster))]++
	}
	assert.Greater(t, counts["move"], 50)
	assert.Greater(t, counts["rotate left"], 50)
	assert.Greater(t, counts["rotate right"], 50)
}

func TestWander_DoesNotRamOccupiedHex(t *testing.T) {
	f := newFixture(9, 9, core.Coordinate{X: 4, Y: 5}, core.Coordinate{X: 4, Y: 4}, core.Up)
	f.monster.AI.Policy = entity.PolicyWander
	for i := 0; i < 100; i++ {
		_, isMove := Decide(f.ctx, f.monster).(core.MoveAction)
		assert.False(t, isMove)
	}
}

func TestHostile_MeleeWhenAdjacent(t *testing.T) {
	f := newFixture(9, 9, core.Coordinate{X: 4, Y: 5}, core.Coordinate{X: 4, Y: 4}, core.Down)
	f.sight(true)

	a := Decide(f.ctx, f.monster)
	require.IsType(t, core.MeleeAction{}, a)
	assert.Equal(t, f.player.Position, a.(core.MeleeAction).Target)
	assert.True(t, f.monster.AI.HasTarget)
	assert.Equal(t, f.player.Position, f.monster.AI.Target)
}

func TestHostile_Steering(t *testing.T) {
	tests := []struct {
		name   string
		facing core.Direction
		want   core.Action
	}{
		{"facing the target moves", core.Up, core.NewMove(2)},
		{"one step right of course turns left", core.UpperRight, core.NewRotate(2, core.RotateLeft)},
		{"two steps right of course turns left", core.LowerRight, core.NewRotate(2, core.RotateLeft)},
		{"one step left of course turns right", core.UpperLeft, core.NewRotate(2, core.RotateRight)},
		{"two steps left of course turns right", core.LowerLeft, core.NewRotate(2, core.RotateRight)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(9, 9, core.Coordinate{X: 4, Y: 6}, core.Coordinate{X: 4, Y: 1}, tt.facing)
			f.sight(true)
			assert.Equal(t, tt.want, Decide(f.ctx, f.monster))
		})
	}

	t.Run("facing away picks a random rotation", func(t *testing.T) {
		f := newFixture(9, 9, core.Coordinate{X: 4, Y: 6}, core.Coordinate{X: 4, Y: 1}, core.Down)
		f.sight(true)
		assert.IsType(t, core.RotateAction{}, Decide(f.ctx, f.monster))
	})

	t.Run("tie on both sides picks a random rotation", func(t *testing.T) {
		f := newFixture(9, 9, core.Coordinate{X: 4, Y: 6}, core.Coordinate{X: 4, Y: 1}, core.Up)
		f.ctx.Grid.At(core.Coordinate{X: 4, Y: 2}).Elevation = core.Grass
		f.sight(true)
		assert.IsType(t, core.RotateAction{}, Decide(f.ctx, f.monster))
	})
}

func TestHostile_StickyTarget(t *testing.T) {
	f := newFixture(9, 9, core.Coordinate{X: 4, Y: 6}, core.Coordinate{X: 4, Y: 1}, core.Up)
	f.sight(true)
	Decide(f.ctx, f.monster)
	seenAt := f.player.Position

	f.player.Position = core.Coordinate{X: 8, Y: 8}
	f.sight(false)
	for turn := 1; turn <= 20; turn++ {
		a := Decide(f.ctx, f.monster)
		assert.Equal(t, core.NewMove(2), a, "keeps closing on the last sighting")
		assert.True(t, f.monster.AI.HasTarget)
		assert.Equal(t, seenAt, f.monster.AI.Target)
		assert.Equal(t, turn, f.monster.AI.TurnsSinceSeen)
	}
}

func TestHostile_ForgetAfter(t *testing.T) {
	f := newFixture(9, 9, core.Coordinate{X: 4, Y: 6}, core.Coordinate{X: 4, Y: 1}, core.Up)
	f.ctx.ForgetAfter = 2
	f.sight(true)
	Decide(f.ctx, f.monster)
	require.True(t, f.monster.AI.HasTarget)

	f.sight(false)
	Decide(f.ctx, f.monster)
	assert.True(t, f.monster.AI.HasTarget)
	Decide(f.ctx, f.monster)
	assert.False(t, f.monster.AI.HasTarget)

	f.sight(true)
	Decide(f.ctx, f.monster)
	assert.True(t, f.monster.AI.HasTarget)
	assert.Zero(t, f.monster.AI.TurnsSinceSeen)
}

func TestHostile_UnreachableTargetFallsBackToWander(t *testing.T) {
	f := newFixture(9, 9, core.Coordinate{X: 4, Y: 6}, core.Coordinate{X: 4, Y: 1}, core.Up)
	for _, n := range core.Neighbors(f.player.Position) {
		f.ctx.Grid.At(n).Elevation = core.Mountain
	}
	f.sight(true)

	for i := 0; i < 30; i++ {
		a := Decide(f.ctx, f.monster)
		_, isMelee := a.(core.MeleeAction)
		assert.False(t, isMelee)
	}
	assert.True(t, f.monster.AI.HasTarget)
}

func TestHostile_ReachedLastSightingWanders(t *testing.T) {
	f := newFixture(9, 9, core.Coordinate{X: 8, Y: 8}, core.Coordinate{X: 4, Y: 4}, core.Up)
	f.monster.AI.HasTarget = true
	f.monster.AI.Target = f.monster.Position
	f.sight(false)

	a := Decide(f.ctx, f.monster)
	_, isMelee := a.(core.MeleeAction)
	assert.False(t, isMelee)
}

func TestDecide_DeadOrPassive(t *testing.T) {
	f := newFixture(5, 5, core.Coordinate{X: 0, Y: 0}, core.Coordinate{X: 2, Y: 2}, core.Up)
	assert.Equal(t, core.NewWait(1), Decide(f.ctx, f.player))

	f.monster.Alive = false
	assert.Equal(t, core.NewWait(2), Decide(f.ctx, f.monster))
}
