package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/Archipelago/internal/game/core"
	"github.com/mitchelldurbincs/Archipelago/internal/game/entity"
	"github.com/mitchelldurbincs/Archipelago/internal/testutil"
)

func shipWithOfficer(ability string, power int) *entity.Entity {
	ship := testutil.NewShip("Wayfarer", core.NewCoordinate(3, 3), core.Up)
	ship.Crew.Officers = []*entity.CrewMember{{Name: officerTitles[ability], Ability: ability, Power: power, CooldownMax: 10}}
	ship.Crew.Keys = map[int]int{1: 0}
	return ship
}

func TestCrew_Carpenter(t *testing.T) {
	ship := shipWithOfficer(AbilityCarpenter, 4)
	ship.Fighter.HP = 20
	e, _ := newTestEngine(t, testutil.OceanGrid(8, 8), ship)

	out := submit(t, e, core.NewCrewAction(ship.ID, 1))

	require.Equal(t, ActionApplied, out.State)
	assert.True(t, out.TurnAdvanced)
	assert.Equal(t, 24, ship.Fighter.HP)
	officer, _ := ship.Crew.Officer(1)
	assert.Equal(t, 9, officer.Cooldown, "cooldown starts at max and ticks at end of turn")

	requireRejected(t, submit(t, e, core.NewCrewAction(ship.ID, 1)), core.ReasonCooldown)
}

func TestCrew_CarpenterOnSoundHull(t *testing.T) {
	ship := shipWithOfficer(AbilityCarpenter, 4)
	e, _ := newTestEngine(t, testutil.OceanGrid(8, 8), ship)

	requireRejected(t, submit(t, e, core.NewCrewAction(ship.ID, 1)), core.ReasonAtMax)
}

func TestCrew_Lookout(t *testing.T) {
	ship := shipWithOfficer(AbilityLookout, 2)
	e, _ := newTestEngine(t, testutil.OceanGrid(16, 16), ship)
	far := core.NewCoordinate(3, 10)
	require.False(t, ship.Sees(far))

	submit(t, e, core.NewCrewAction(ship.ID, 1))

	assert.Equal(t, 7, ship.EffectiveViewDistance())
	assert.True(t, ship.Sees(far))
}

func TestCrew_Scry(t *testing.T) {
	ship := shipWithOfficer(AbilityScry, 3)
	e, _ := newTestEngine(t, testutil.OceanGrid(8, 8), ship)

	submit(t, e, core.NewCrewAction(ship.ID, 1))

	assert.Equal(t, 3, ship.ExtraMistView())
	require.Len(t, ship.Effects, 1)
	assert.Equal(t, e.Settings().Crew.ScryTurns-1, ship.Effects[0].TurnsLeft)
}

func TestCrew_GunnerReloads(t *testing.T) {
	ship := shipWithOfficer(AbilityGunner, 0)
	target := dummy("Kraken", core.Neighbor(ship.Position, core.UpperRight), 30)
	e, _ := newTestEngine(t, testutil.OceanGrid(8, 8), ship, target)
	gun, _ := ship.Broadsides.Weapon(core.Starboard, 0)

	requireRejected(t, submit(t, e, core.NewCrewAction(ship.ID, 1)), core.ReasonAtMax)

	submit(t, e, core.NewBroadside(ship.ID, core.Starboard))
	require.False(t, gun.Active())

	submit(t, e, core.NewCrewAction(ship.ID, 1))
	assert.True(t, gun.Active())
	assert.Equal(t, ActionApplied, submit(t, e, core.NewBroadside(ship.ID, core.Starboard)).State)
}

func TestCrew_NoOfficerOnKey(t *testing.T) {
	ship := testutil.NewShip("Wayfarer", core.NewCoordinate(3, 3), core.Up)
	e, _ := newTestEngine(t, testutil.OceanGrid(8, 8), ship)

	requireRejected(t, submit(t, e, core.NewCrewAction(ship.ID, 1)), core.ReasonNoCrew)
}
