package game

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/Archipelago/internal/game/core"
	"github.com/mitchelldurbincs/Archipelago/internal/game/entity"
	"github.com/mitchelldurbincs/Archipelago/internal/testutil"
)

func TestRepair(t *testing.T) {
	t.Run("hull", func(t *testing.T) {
		ship := testutil.NewShip("Wayfarer", core.NewCoordinate(1, 1), core.Up)
		ship.Fighter.HP = 20
		e, _ := newTestEngine(t, testutil.OceanGrid(4, 4), ship)

		out := submit(t, e, core.NewRepair(ship.ID, core.RepairHull))

		require.Equal(t, ActionApplied, out.State)
		assert.True(t, out.TurnAdvanced)
		assert.Equal(t, 25, ship.Fighter.HP)
		assert.Equal(t, 4, ship.Cargo.Count(entity.ItemWood))
	})

	t.Run("sails clamp at max", func(t *testing.T) {
		ship := testutil.NewShip("Wayfarer", core.NewCoordinate(1, 1), core.Up)
		ship.Sails.HP = 8
		e, _ := newTestEngine(t, testutil.OceanGrid(4, 4), ship)

		submit(t, e, core.NewRepair(ship.ID, core.RepairSails))
		assert.Equal(t, 10, ship.Sails.HP)
	})

	t.Run("weapon slot", func(t *testing.T) {
		ship := testutil.NewShip("Wayfarer", core.NewCoordinate(1, 1), core.Up)
		gun, _ := ship.Broadsides.Weapon(core.Port, 0)
		gun.HP = 2
		e, _ := newTestEngine(t, testutil.OceanGrid(4, 4), ship)

		submit(t, e, core.NewRepairWeapon(ship.ID, core.Port, 0))
		assert.Equal(t, 7, gun.HP)

		requireRejected(t, submit(t, e, core.NewRepairWeapon(ship.ID, core.Port, 3)), core.ReasonInvalidState)
	})

	t.Run("rejections", func(t *testing.T) {
		ship := testutil.NewShip("Wayfarer", core.NewCoordinate(1, 1), core.Up)
		e, _ := newTestEngine(t, testutil.OceanGrid(4, 4), ship)

		requireRejected(t, submit(t, e, core.NewRepair(ship.ID, core.RepairHull)), core.ReasonAtMax)

		ship.Fighter.HP = 10
		ship.Cargo.Items[entity.ItemWood] = 1
		requireRejected(t, submit(t, e, core.NewRepair(ship.ID, core.RepairHull)), core.ReasonInsufficientFunds)
		assert.Equal(t, 10, ship.Fighter.HP)
		assert.Equal(t, 1, ship.Cargo.Count(entity.ItemWood))
	})
}

func TestSalvage_Corpse(t *testing.T) {
	ship := testutil.NewShip("Wayfarer", core.NewCoordinate(2, 2), core.Up)
	wreck := dummy("Rival", core.NewCoordinate(2, 3), 5)
	wreck.Cargo = entity.NewCargo(30, 0, 0)
	wreck.Cargo.Add("rum", 2)
	wreck.Cargo.Add(entity.ItemCannonballs, 3)
	world := testutil.NewWorld(ship, wreck)
	_, err := world.Kill(wreck.ID)
	require.NoError(t, err)

	e, err := NewEngine(context.Background(), GameConfig{
		Settings: DefaultSettings(),
		Logger:   testutil.NopLogger(),
		Seed:     7,
		Grid:     testutil.OceanGrid(5, 5),
		World:    world,
		Weather:  fixedWeather(t, "calm"),
	})
	require.NoError(t, err)

	out := submit(t, e, core.NewSalvage(ship.ID))

	require.Equal(t, ActionApplied, out.State)
	assert.Equal(t, 130, ship.Cargo.Coins)
	assert.Equal(t, 2, ship.Cargo.Count("rum"))
	assert.Equal(t, 13, ship.Cargo.Count(entity.ItemCannonballs))
	assert.True(t, wreck.Salvaged)
	assert.True(t, wreck.Cargo.Empty())
	assert.Equal(t, 30, e.Stats().CoinsEarned)

	requireRejected(t, submit(t, e, core.NewSalvage(ship.ID)), core.ReasonNothingToSalvage)
}

func TestSalvage_HoldLimitsGoods(t *testing.T) {
	ship := testutil.NewShip("Wayfarer", core.NewCoordinate(2, 2), core.Up)
	// arrows 20, cannonballs 40, wood 18 by weight
	ship.Cargo.MaxWeight = 78 + 4
	corpse := dummy("Rival", core.NewCoordinate(2, 1), 5)
	corpse.Cargo = entity.NewCargo(0, 0, 0)
	corpse.Cargo.Add("rum", 5)
	world := testutil.NewWorld(ship, corpse)
	_, err := world.Kill(corpse.ID)
	require.NoError(t, err)

	e, err := NewEngine(context.Background(), GameConfig{
		Settings: DefaultSettings(),
		Logger:   testutil.NopLogger(),
		Seed:     7,
		Grid:     testutil.OceanGrid(5, 5),
		World:    world,
		Weather:  fixedWeather(t, "calm"),
	})
	require.NoError(t, err)

	submit(t, e, core.NewSalvage(ship.ID))
	assert.Equal(t, 2, ship.Cargo.Count("rum"), "what does not fit is lost")
	assert.True(t, corpse.Salvaged)
}

func TestSalvage_WreckTile(t *testing.T) {
	at := core.NewCoordinate(1, 1)
	ship := testutil.NewShip("Wayfarer", at, core.Up)
	grid := testutil.GridWithTiles(4, 4, map[core.Coordinate]core.Tile{
		at: {Elevation: core.Ocean, Decoration: core.DecorationWreck},
	})
	e, _ := newTestEngine(t, grid, ship)

	submit(t, e, core.NewSalvage(ship.ID))

	assert.Equal(t, 100+wreckCoins, ship.Cargo.Coins)
	assert.Equal(t, 6+wreckWood, ship.Cargo.Count(entity.ItemWood))
	assert.Equal(t, core.DecorationNone, e.Grid().At(at).Decoration)
	requireRejected(t, submit(t, e, core.NewSalvage(ship.ID)), core.ReasonNothingToSalvage)
}

func TestValidate_DoesNotMutate(t *testing.T) {
	ship := testutil.NewShip("Wayfarer", core.NewCoordinate(2, 2), core.Up)
	ship.Fighter.HP = 10
	target := dummy("Turtle", core.NewCoordinate(2, 1), 10)
	e, _ := newTestEngine(t, testutil.OceanGrid(5, 5), ship, target)

	for _, a := range []core.Action{
		core.NewMove(ship.ID),
		core.NewArrowAttack(ship.ID),
		core.NewMelee(ship.ID, target.Position),
		core.NewRepair(ship.ID, core.RepairHull),
	} {
		assert.NoError(t, e.Validate(a), core.DescribeAction(a))
	}
	assert.Equal(t, core.NewCoordinate(2, 2), ship.Position)
	assert.Equal(t, 20, ship.Cargo.Count(entity.ItemArrows))
	assert.Equal(t, 10, target.Fighter.HP)
	assert.Equal(t, 10, ship.Fighter.HP)
	assert.Equal(t, 0, e.Turn())
}
