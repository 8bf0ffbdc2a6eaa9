package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/Archipelago/internal/game/core"
)

func TestFighter_DamageClampsAndDiesOnce(t *testing.T) {
	tests := []struct {
		name      string
		hp        int
		damage    int
		wantHP    int
		wantDealt int
		wantDied  bool
	}{
		{"partial", 10, 3, 7, 3, false},
		{"exact kill", 10, 10, 0, 10, true},
		{"overkill clamps", 4, 50, 0, 4, true},
		{"already dead", 0, 5, 0, 0, false},
		{"negative damage ignored", 6, -2, 6, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &Fighter{HP: tt.hp, MaxHP: 10}
			dealt, died := f.Damage(tt.damage)
			assert.Equal(t, tt.wantHP, f.HP)
			assert.Equal(t, tt.wantDealt, dealt)
			assert.Equal(t, tt.wantDied, died)
		})
	}
}

func TestHeal_ClampsToMax(t *testing.T) {
	f := &Fighter{HP: 8, MaxHP: 10}
	assert.Equal(t, 2, f.Heal(5))
	assert.Equal(t, 10, f.HP)
	assert.Zero(t, f.Heal(5))

	s := &Sails{HP: 0, MaxHP: 6}
	assert.Equal(t, 6, s.Heal(100))
	assert.Equal(t, 6, s.Damage(9))
	assert.Zero(t, s.HP)

	c := &Crew{Count: 3, Max: 4}
	assert.Equal(t, 1, c.Heal(3))
	assert.Equal(t, 4, c.Count)
}

// Every combination of damage and heal keeps HP inside [0, max].
func TestHP_AlwaysWithinBounds(t *testing.T) {
	amounts := []int{-3, 0, 1, 2, 5, 9, 20}
	for _, start := range []int{0, 1, 5, 10} {
		for _, a := range amounts {
			for _, b := range amounts {
				f := &Fighter{HP: start, MaxHP: 10}
				f.Damage(a)
				f.Heal(b)
				f.Damage(b)
				assert.GreaterOrEqual(t, f.HP, 0)
				assert.LessOrEqual(t, f.HP, f.MaxHP)

				w := &Weapon{HP: start, MaxHP: 10}
				w.Heal(a)
				w.Damage(b)
				assert.GreaterOrEqual(t, w.HP, 0)
				assert.LessOrEqual(t, w.HP, w.MaxHP)
			}
		}
	}
}

func TestCrew_DiesWhenLastHandFalls(t *testing.T) {
	c := &Crew{Count: 2, Max: 8}
	_, died := c.Damage(1)
	assert.False(t, died)
	dealt, died := c.Damage(5)
	assert.Equal(t, 1, dealt)
	assert.True(t, died)
	_, died = c.Damage(1)
	assert.False(t, died, "death triggers once")
}

func TestWeapon_CooldownCycle(t *testing.T) {
	w := &Weapon{Name: "cannon", HP: 5, MaxHP: 5, CooldownMax: 4}
	require.True(t, w.Active())

	w.Fire()
	assert.Equal(t, 4, w.Cooldown)
	assert.False(t, w.Active())

	w.Cooldown = 2
	w.Fire()
	assert.Equal(t, 2, w.Cooldown, "firing while cooling down does not reset the counter")

	w.Cooldown = 4
	for i := 0; i < 4; i++ {
		assert.False(t, w.Active())
		w.Tick()
	}
	assert.Zero(t, w.Cooldown)
	assert.True(t, w.Active())
	w.Tick()
	assert.Zero(t, w.Cooldown, "cooldown floors at zero")

	w.Damage(5)
	assert.False(t, w.Active(), "broken weapons cannot fire")
}

func TestBroadsides(t *testing.T) {
	b := &Broadsides{}
	b.Mount(core.Port, &Weapon{Name: "p0", HP: 3, MaxHP: 3})
	b.Mount(core.Port, &Weapon{Name: "p1", HP: 3, MaxHP: 3, Cooldown: 2})
	b.Mount(core.Starboard, &Weapon{Name: "s0", HP: 0, MaxHP: 3})

	assert.Len(t, b.Side(core.Port), 2)
	assert.Equal(t, 1, b.Port[1].Slot)
	assert.Equal(t, core.Starboard, b.Starboard[0].Side)

	active := b.Active(core.Port)
	require.Len(t, active, 1)
	assert.Equal(t, "p0", active[0].Name)
	assert.Empty(t, b.Active(core.Starboard))

	w, ok := b.Weapon(core.Port, 1)
	require.True(t, ok)
	assert.Equal(t, "p1", w.Name)
	_, ok = b.Weapon(core.Starboard, 3)
	assert.False(t, ok)

	b.Tick()
	b.Tick()
	assert.Len(t, b.Active(core.Port), 2)
	assert.Len(t, b.All(), 3)
}

func TestCrew_AssignAndTick(t *testing.T) {
	c := &Crew{Count: 8, Max: 8, Officers: []*CrewMember{
		{Name: "Ada", Ability: "lookout", CooldownMax: 3},
		{Name: "Bo", Ability: "gunner", CooldownMax: 5},
	}}

	require.NoError(t, c.Assign(0, 1))
	require.NoError(t, c.Assign(0, 2))
	_, ok := c.Officer(1)
	assert.False(t, ok, "reassigning moves the officer")
	m, ok := c.Officer(2)
	require.True(t, ok)
	assert.Equal(t, "Ada", m.Name)
	assert.Error(t, c.Assign(7, 1))

	m.Cooldown = 1
	c.Tick()
	assert.True(t, m.Ready())
	c.Tick()
	assert.Zero(t, m.Cooldown)
}

func TestCargo(t *testing.T) {
	c := NewCargo(100, 50, 50)
	c.Add(ItemArrows, 10)
	c.Add(ItemWood, 0)
	assert.Equal(t, 10, c.Count(ItemArrows))
	assert.Zero(t, c.Count(ItemWood))

	require.NoError(t, c.Remove(ItemArrows, 4))
	assert.Equal(t, 6, c.Count(ItemArrows))
	assert.Error(t, c.Remove(ItemArrows, 7))
	require.NoError(t, c.Remove(ItemArrows, 6))
	_, present := c.Items[ItemArrows]
	assert.False(t, present)

	c.Add(ItemWood, 3)
	c.Add(ItemCannonballs, 2)
	w, v := c.Totals(func(item string) (int, int) {
		if item == ItemWood {
			return 2, 3
		}
		return 5, 1
	})
	assert.Equal(t, 16, w)
	assert.Equal(t, 11, v)
	assert.False(t, c.Empty())
	assert.True(t, NewCargo(0, 1, 1).Empty())
}

func TestEntity_Effects(t *testing.T) {
	e := &Entity{Alive: true, ViewDistance: 4}
	e.AddEffect(Effect{Name: "lookout", TurnsLeft: 2, ExtraView: 2})
	e.AddEffect(Effect{Name: "scry", TurnsLeft: 1, ExtraMistView: 3})
	assert.Equal(t, 6, e.EffectiveViewDistance())
	assert.Equal(t, 3, e.ExtraMistView())

	e.AddEffect(Effect{Name: "lookout", TurnsLeft: 3, ExtraView: 1})
	assert.Len(t, e.Effects, 2, "same effect refreshes")

	e.TickEffects()
	require.Len(t, e.Effects, 1)
	assert.Equal(t, "lookout", e.Effects[0].Name)
	e.TickEffects()
	e.TickEffects()
	assert.Empty(t, e.Effects)
	assert.Equal(t, 4, e.EffectiveViewDistance())
}

func TestEntity_CanEnter(t *testing.T) {
	g := core.NewGrid(3, 3, core.Ocean)
	g.At(core.Coordinate{X: 1, Y: 1}).Elevation = core.Grass

	ship := &Entity{}
	assert.True(t, ship.CanEnter(g, core.Coordinate{X: 0, Y: 0}))
	assert.False(t, ship.CanEnter(g, core.Coordinate{X: 1, Y: 1}))
	assert.False(t, ship.CanEnter(g, core.Coordinate{X: 5, Y: 5}))

	bird := &Entity{Profile: core.ElevationRange(core.Ocean, core.Volcano)}
	assert.True(t, bird.CanEnter(g, core.Coordinate{X: 1, Y: 1}))
}

func TestHostile(t *testing.T) {
	player := &Entity{Kind: KindPlayer}
	serpent := &Entity{Kind: KindMonster}
	rival := &Entity{Kind: KindRival}
	assert.True(t, Hostile(player, serpent))
	assert.True(t, Hostile(rival, player))
	assert.False(t, Hostile(serpent, rival))
}

func TestWorld_SpawnAndLookup(t *testing.T) {
	w := NewWorld()
	assert.Nil(t, w.Player())

	ship := &Entity{Name: "Gull", Kind: KindPlayer, Alive: true, Position: core.Coordinate{X: 1, Y: 1},
		Broadsides: &Broadsides{Port: []*Weapon{{Name: "gun"}}}}
	id := w.Spawn(ship)
	assert.Equal(t, core.EntityID(1), id)
	assert.Equal(t, id, ship.Broadsides.Port[0].Owner)
	assert.Same(t, ship, w.Player())

	serpentID := w.Spawn(&Entity{Name: "Serpent", Kind: KindMonster, Alive: true, Position: core.Coordinate{X: 2, Y: 2}})
	assert.Equal(t, core.EntityID(2), serpentID)

	got, err := w.Get(serpentID)
	require.NoError(t, err)
	assert.Equal(t, "Serpent", got.Name)

	_, err = w.Get(9)
	assert.ErrorIs(t, err, core.ErrInvalidEntity)
	_, err = w.Get(core.NoEntity)
	assert.ErrorIs(t, err, core.ErrInvalidEntity)

	assert.Same(t, ship, w.At(core.Coordinate{X: 1, Y: 1}))
	assert.Nil(t, w.At(core.Coordinate{X: 0, Y: 0}))
	assert.True(t, w.Occupied(core.Coordinate{X: 2, Y: 2}, id))
	assert.False(t, w.Occupied(core.Coordinate{X: 2, Y: 2}, serpentID))
}

func TestWorld_KillIsTerminalAndIdempotent(t *testing.T) {
	w := NewWorld()
	id := w.Spawn(&Entity{
		Name: "Kraken", Kind: KindMonster, Alive: true, Facing: core.LowerLeft, ViewDistance: 5,
		Position: core.Coordinate{X: 3, Y: 3}, AI: &AIState{Policy: PolicyHostile},
		FOV: core.NewCoordSet(core.Coordinate{X: 3, Y: 3}, core.Coordinate{X: 3, Y: 4}),
	})

	killed, err := w.Kill(id)
	require.NoError(t, err)
	assert.True(t, killed)

	e, _ := w.Get(id)
	assert.False(t, e.Alive)
	assert.True(t, e.Corpse)
	assert.Nil(t, e.AI)
	assert.Zero(t, e.ViewDistance)
	assert.Equal(t, core.Up, e.Facing)
	assert.Zero(t, e.FOV.Len())
	assert.Empty(t, w.Living())
	assert.Nil(t, w.At(core.Coordinate{X: 3, Y: 3}), "corpses do not occupy hexes")
	assert.Len(t, w.CorpsesNear(core.Coordinate{X: 3, Y: 4}, 1), 1)

	killed, err = w.Kill(id)
	require.NoError(t, err)
	assert.False(t, killed)

	_, err = w.Kill(42)
	assert.ErrorIs(t, err, core.ErrInvalidEntity)
}

func TestWorld_RecordsRoundTrip(t *testing.T) {
	w := NewWorld()
	profiles := core.DefaultProfiles()
	water, _ := profiles.Lookup(core.ProfileWater)

	ship := &Entity{
		Name: "Gull", Icon: "@", Kind: KindPlayer, Alive: true, Position: core.Coordinate{X: 4, Y: 2},
		Facing: core.LowerRight, ViewDistance: 5, ProfileName: core.ProfileWater, Profile: water,
		Fighter:    &Fighter{HP: 20, MaxHP: 30, Defense: 1, Power: 2},
		Sails:      &Sails{HP: 4, MaxHP: 10},
		Broadsides: &Broadsides{},
		Crew: &Crew{Count: 8, Max: 10, Officers: []*CrewMember{{Name: "Ada", Ability: "scry", CooldownMax: 6}},
			Keys: map[int]int{1: 0}},
		Cargo:   &Cargo{Coins: 55, Items: map[string]int{ItemArrows: 12}, MaxWeight: 100, MaxVolume: 80},
		Effects: []Effect{{Name: "scry", TurnsLeft: 2, ExtraMistView: 3}},
	}
	ship.Broadsides.Mount(core.Starboard, &Weapon{Name: "cannon", HP: 5, MaxHP: 5, Power: 6, Range: 3, Cooldown: 1, CooldownMax: 4})
	w.Spawn(ship)
	w.Spawn(&Entity{Name: "Serpent", Kind: KindMonster, Alive: true, AI: &AIState{Policy: PolicyHostile, HasTarget: true, Target: core.Coordinate{X: 4, Y: 2}}})

	data, err := json.Marshal(w.Records())
	require.NoError(t, err)

	var records []EntityRecord
	require.NoError(t, json.Unmarshal(data, &records))
	restored, err := Restore(records, profiles)
	require.NoError(t, err)

	require.Equal(t, 2, restored.Len())
	got := restored.Player()
	require.NotNil(t, got)
	assert.Equal(t, ship.Position, got.Position)
	assert.Equal(t, ship.Facing, got.Facing)
	assert.Equal(t, water, got.Profile)
	assert.Equal(t, *ship.Fighter, *got.Fighter)
	assert.Equal(t, *ship.Sails, *got.Sails)
	require.Len(t, got.Broadsides.Starboard, 1)
	assert.Equal(t, *ship.Broadsides.Starboard[0], *got.Broadsides.Starboard[0])
	assert.Equal(t, ship.Crew.Keys, got.Crew.Keys)
	assert.Equal(t, 12, got.Cargo.Count(ItemArrows))
	assert.Equal(t, ship.Effects, got.Effects)

	serpent, err := restored.Get(2)
	require.NoError(t, err)
	require.NotNil(t, serpent.AI)
	assert.Equal(t, PolicyHostile, serpent.AI.Policy)
	assert.True(t, serpent.AI.HasTarget)

	records[1].ID = 7
	_, err = Restore(records, profiles)
	assert.ErrorIs(t, err, core.ErrInvalidEntity)
}
