package rules

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/Archipelago/internal/game/core"
	"github.com/mitchelldurbincs/Archipelago/internal/game/entity"
)

func TestSplitDamage(t *testing.T) {
	tests := []struct {
		name    string
		power   int
		targets int
		want    int
	}{
		{"single target takes everything", 9, 1, 9},
		{"even split", 8, 2, 4},
		{"floor division", 7, 2, 3},
		{"more targets than power", 2, 5, 0},
		{"arrow volley crew 8 two targets", ArrowAmmo(8, 4), 2, 1},
		{"no power", 0, 3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SplitDamage(tt.power, tt.targets)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.power/tt.targets, got)
		})
	}

	t.Run("zero targets is impossible", func(t *testing.T) {
		_, err := SplitDamage(10, 0)
		require.Error(t, err)
		assert.True(t, core.IsImpossible(err))
		assert.True(t, errors.Is(err, &core.Impossible{Code: core.ReasonNoTarget}))
	})
}

func TestSplitDamage_MoreTargetsNeverMoreDamage(t *testing.T) {
	for power := 0; power <= 30; power++ {
		prev := power + 1
		for n := 1; n <= 10; n++ {
			share, err := SplitDamage(power, n)
			require.NoError(t, err)
			assert.LessOrEqual(t, share, prev)
			prev = share
		}
	}
}

func TestDamageAfterDefense(t *testing.T) {
	assert.Equal(t, 3, DamageAfterDefense(5, 2))
	assert.Zero(t, DamageAfterDefense(2, 2))
	assert.Zero(t, DamageAfterDefense(1, 4), "defense never heals")
}

func TestAmmoAndManning(t *testing.T) {
	assert.Equal(t, 2, ArrowAmmo(8, 4))
	assert.Equal(t, 1, ArrowAmmo(7, 4))
	assert.Zero(t, ArrowAmmo(3, 4))
	assert.Zero(t, ArrowAmmo(8, 0))

	assert.Equal(t, 3, GunsManned(6, 2, 4))
	assert.Equal(t, 4, GunsManned(20, 2, 4))
	assert.Zero(t, GunsManned(1, 2, 4))
	assert.Zero(t, GunsManned(0, 2, 4))
}

func TestBroadsideArc(t *testing.T) {
	tests := []struct {
		facing core.Direction
		side   core.Side
		want   [2]core.Direction
	}{
		{core.Up, core.Starboard, [2]core.Direction{core.UpperRight, core.LowerRight}},
		{core.Up, core.Port, [2]core.Direction{core.LowerLeft, core.UpperLeft}},
		{core.Down, core.Starboard, [2]core.Direction{core.LowerLeft, core.UpperLeft}},
		{core.UpperLeft, core.Port, [2]core.Direction{core.Down, core.LowerLeft}},
	}

	for _, tt := range tests {
		t.Run(tt.facing.String()+" "+tt.side.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, BroadsideArc(tt.facing, tt.side))
		})
	}
}

func TestInArc(t *testing.T) {
	ship := core.Coordinate{X: 4, Y: 4}
	right := core.Neighbor(ship, core.UpperRight)
	left := core.Neighbor(ship, core.UpperLeft)
	ahead := core.Neighbor(ship, core.Up)

	assert.True(t, InArc(ship, core.Up, core.Starboard, right))
	assert.False(t, InArc(ship, core.Up, core.Port, right))
	assert.True(t, InArc(ship, core.Up, core.Port, left))
	assert.False(t, InArc(ship, core.Up, core.Starboard, ahead))
	assert.False(t, InArc(ship, core.Up, core.Port, ahead))
	assert.False(t, InArc(ship, core.Up, core.Port, ship))

	far := core.Neighbor(core.Neighbor(right, core.UpperRight), core.UpperRight)
	assert.True(t, InArc(ship, core.Up, core.Starboard, far))
}

func TestInArc_SidesMirror(t *testing.T) {
	ship := core.Coordinate{X: 4, Y: 4}
	// reflect across the ship's fore-aft line when facing up
	mirror := func(c core.Coordinate) core.Coordinate {
		d := core.ToCube(c).Sub(core.ToCube(ship))
		return core.ToHex(core.ToCube(ship).Add(core.Cube{A: -d.A, B: -d.C, C: -d.B}))
	}

	assert.True(t, InArc(ship, core.Up, core.Starboard, core.Coordinate{X: 5, Y: 3}))
	assert.True(t, InArc(ship, core.Up, core.Port, core.Coordinate{X: 3, Y: 3}))
	assert.Equal(t, core.Coordinate{X: 3, Y: 3}, mirror(core.Coordinate{X: 5, Y: 3}))

	for _, h := range core.Area(ship, 3) {
		assert.Equal(t, InArc(ship, core.Up, core.Starboard, h), InArc(ship, core.Up, core.Port, mirror(h)), "starboard %s vs port %s", h, mirror(h))
		assert.False(t, InArc(ship, core.Up, core.Starboard, h) && InArc(ship, core.Up, core.Port, h), "%s in both arcs", h)
	}
}

func TestGameOverChecker(t *testing.T) {
	logger := zerolog.Nop()

	newWorld := func() (*entity.World, core.EntityID, core.EntityID) {
		w := entity.NewWorld()
		p := w.Spawn(&entity.Entity{Name: "Gull", Kind: entity.KindPlayer, Alive: true})
		m := w.Spawn(&entity.Entity{Name: "Serpent", Kind: entity.KindMonster, Alive: true, Position: core.Coordinate{X: 3, Y: 3}})
		return w, p, m
	}

	t.Run("ongoing", func(t *testing.T) {
		w, _, _ := newWorld()
		over, outcome := NewGameOverChecker(logger, true).CheckGameOver(w)
		assert.False(t, over)
		assert.Equal(t, OutcomeNone, outcome)
	})

	t.Run("player sunk", func(t *testing.T) {
		w, p, _ := newWorld()
		_, err := w.Kill(p)
		require.NoError(t, err)
		over, outcome := NewGameOverChecker(logger, false).CheckGameOver(w)
		assert.True(t, over)
		assert.Equal(t, OutcomeSunk, outcome)
	})

	t.Run("cleared waters", func(t *testing.T) {
		w, _, m := newWorld()
		_, err := w.Kill(m)
		require.NoError(t, err)

		over, _ := NewGameOverChecker(logger, false).CheckGameOver(w)
		assert.False(t, over, "exploration continues without victory condition")

		over, outcome := NewGameOverChecker(logger, true).CheckGameOver(w)
		assert.True(t, over)
		assert.Equal(t, OutcomeVictory, outcome)
	})

	t.Run("no player", func(t *testing.T) {
		over, outcome := NewGameOverChecker(logger, false).CheckGameOver(entity.NewWorld())
		assert.True(t, over)
		assert.Equal(t, OutcomeSunk, outcome)
	})
}

type stubValidator struct {
	allow map[string]bool
}

func (s stubValidator) Validate(a core.Action) error {
	if s.allow[a.Kind()] {
		return nil
	}
	return core.NewImpossible(core.ReasonInvalidState, "not allowed")
}

func TestLegalActionCalculator(t *testing.T) {
	e := &entity.Entity{ID: 1, Alive: true, Broadsides: &entity.Broadsides{},
		Crew: &entity.Crew{Count: 4, Max: 4, Keys: map[int]int{3: 0, 1: 1}}}
	e.Broadsides.Mount(core.Port, &entity.Weapon{Name: "gun"})

	lac := NewLegalActionCalculator()
	candidates := lac.Candidates(e)
	require.Len(t, candidates, 15)
	assert.Equal(t, core.NewRepairWeapon(1, core.Port, 0), candidates[10])
	assert.Equal(t, core.NewCrewAction(1, 1), candidates[11])
	assert.Equal(t, core.NewCrewAction(1, 3), candidates[12])

	v := stubValidator{allow: map[string]bool{"move": true, "wait": true}}
	mask := lac.GetLegalActionMask(v, candidates)
	require.Len(t, mask, len(candidates))
	assert.True(t, mask[0])
	assert.False(t, mask[1])
	assert.True(t, mask[3])

	legal := lac.LegalActions(v, e)
	assert.Equal(t, []core.Action{core.NewMove(1), core.NewWait(1)}, legal)

	e.Alive = false
	assert.Nil(t, lac.LegalActions(v, e))
}
