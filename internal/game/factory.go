package game

import (
	"fmt"
	"math/rand"

	"github.com/mitchelldurbincs/Archipelago/internal/game/core"
	"github.com/mitchelldurbincs/Archipelago/internal/game/entity"
	"github.com/mitchelldurbincs/Archipelago/internal/items"
)

// monsterTemplate is the stat line a monster is spawned from
type monsterTemplate struct {
	name    string
	icon    string
	hp      int
	defense int
	power   int
	view    int
	profile string
	flying  bool
	policy  entity.Policy
	loot    int
}

var monsterTemplates = []monsterTemplate{
	{name: "Sea Serpent", icon: "S", hp: 16, power: 4, view: 6, profile: "water", policy: entity.PolicyHostile, loot: 20},
	{name: "Kraken", icon: "K", hp: 24, defense: 1, power: 5, view: 5, profile: "deep_water", policy: entity.PolicyHostile, loot: 40},
	{name: "Harpies", icon: "H", hp: 8, power: 2, view: 7, profile: "fly", flying: true, policy: entity.PolicyHostile, loot: 10},
	{name: "Giant Turtle", icon: "T", hp: 20, defense: 2, power: 2, view: 4, profile: "shallows", policy: entity.PolicyWander, loot: 15},
}

var rivalNames = []string{"Black Gull", "Red Tide", "Salt Widow", "Grey Heron"}

// shipFactory builds entities from settings and the item table
type shipFactory struct {
	settings Settings
	items    *items.Table
}

func newShipFactory(settings Settings, table *items.Table) *shipFactory {
	return &shipFactory{settings: settings, items: table}
}

// Player builds the player's ship at its starting position
func (f *shipFactory) Player(at core.Coordinate) (*entity.Entity, error) {
	p := f.settings.Player
	profile, err := f.settings.Profiles.Lookup(p.Profile)
	if err != nil {
		return nil, fmt.Errorf("player profile: %w", err)
	}

	cargo := entity.NewCargo(p.Coins, p.MaxWeight, p.MaxVolume)
	cargo.Add(entity.ItemArrows, p.Arrows)
	cargo.Add(entity.ItemCannonballs, p.Cannonballs)
	cargo.Add(entity.ItemWood, p.Wood)

	ship := &entity.Entity{
		Name:         p.Name,
		Icon:         "@",
		Kind:         entity.KindPlayer,
		Position:     at,
		Facing:       core.Up,
		ProfileName:  p.Profile,
		Profile:      profile,
		Alive:        true,
		ViewDistance: p.ViewDistance,
		Fighter:      &entity.Fighter{HP: p.HP, MaxHP: p.HP, Defense: p.Defense, Power: p.Power},
		Sails:        &entity.Sails{HP: p.Sails, MaxHP: p.Sails},
		Broadsides:   &entity.Broadsides{},
		Crew:         &entity.Crew{Count: p.Crew, Max: p.CrewMax},
		Cargo:        cargo,
	}
	if err := f.arm(ship, core.Port, p.PortGuns); err != nil {
		return nil, err
	}
	if err := f.arm(ship, core.Starboard, p.StarboardGuns); err != nil {
		return nil, err
	}

	for i, ability := range p.Officers {
		ship.Crew.Officers = append(ship.Crew.Officers, f.officer(ability))
		if err := ship.Crew.Assign(i, i+1); err != nil {
			return nil, err
		}
	}
	return ship, nil
}

// Monster builds a random monster. A monster whose own profile cannot hold
// the spawn tile falls back to plain water movement.
func (f *shipFactory) Monster(at core.Coordinate, g *core.Grid, rng *rand.Rand) (*entity.Entity, error) {
	t := monsterTemplates[rng.Intn(len(monsterTemplates))]
	profile, err := f.settings.Profiles.Lookup(t.profile)
	if err != nil {
		return nil, fmt.Errorf("monster %s profile: %w", t.name, err)
	}
	if !g.CanMoveTo(at.X, at.Y, profile) {
		t.profile = core.ProfileWater
		if profile, err = f.settings.Profiles.Lookup(t.profile); err != nil {
			return nil, err
		}
	}
	return &entity.Entity{
		Name:         t.name,
		Icon:         t.icon,
		Kind:         entity.KindMonster,
		Position:     at,
		Facing:       core.Direction(rng.Intn(core.NumDirections)),
		ProfileName:  t.profile,
		Profile:      profile,
		Flying:       t.flying,
		Alive:        true,
		ViewDistance: t.view,
		Fighter:      &entity.Fighter{HP: t.hp, MaxHP: t.hp, Defense: t.defense, Power: t.power},
		Cargo:        entity.NewCargo(t.loot/2+rng.Intn(t.loot), 0, 0),
		AI:           &entity.AIState{Policy: t.policy},
	}, nil
}

// Rival builds a hostile ship with a light battery and a hold worth taking
func (f *shipFactory) Rival(at core.Coordinate, rng *rand.Rand) (*entity.Entity, error) {
	profile, err := f.settings.Profiles.Lookup(core.ProfileWater)
	if err != nil {
		return nil, err
	}
	cargo := entity.NewCargo(30+rng.Intn(40), 0, 0)
	cargo.Add(entity.ItemArrows, 10)
	cargo.Add(entity.ItemCannonballs, 4+rng.Intn(4))
	cargo.Add(entity.ItemWood, 2+rng.Intn(3))

	ship := &entity.Entity{
		Name:         rivalNames[rng.Intn(len(rivalNames))],
		Icon:         "R",
		Kind:         entity.KindRival,
		Position:     at,
		Facing:       core.Direction(rng.Intn(core.NumDirections)),
		ProfileName:  core.ProfileWater,
		Profile:      profile,
		Alive:        true,
		ViewDistance: 5,
		Fighter:      &entity.Fighter{HP: 20, MaxHP: 20, Defense: 1, Power: 3},
		Sails:        &entity.Sails{HP: 8, MaxHP: 8},
		Broadsides:   &entity.Broadsides{},
		Crew:         &entity.Crew{Count: 6, Max: 8},
		Cargo:        cargo,
		AI:           &entity.AIState{Policy: entity.PolicyHostile},
	}
	if err := f.arm(ship, core.Port, []string{"carronade"}); err != nil {
		return nil, err
	}
	if err := f.arm(ship, core.Starboard, []string{"carronade"}); err != nil {
		return nil, err
	}
	return ship, nil
}

func (f *shipFactory) arm(ship *entity.Entity, side core.Side, guns []string) error {
	for _, name := range guns {
		ws, err := f.items.Weapon(name)
		if err != nil {
			return fmt.Errorf("%s %s battery: %w", ship.Name, side, err)
		}
		ship.Broadsides.Mount(side, &entity.Weapon{
			Name:        ws.Name,
			HP:          ws.HP,
			MaxHP:       ws.HP,
			Power:       ws.Power,
			Range:       ws.Range,
			CooldownMax: ws.Cooldown,
		})
	}
	return nil
}

func (f *shipFactory) officer(ability string) *entity.CrewMember {
	m := &entity.CrewMember{Name: officerTitles[ability], Ability: ability, CooldownMax: f.settings.Crew.Cooldown}
	if m.Name == "" {
		m.Name = ability
	}
	switch ability {
	case AbilityScry:
		m.Power = f.settings.Crew.ScryBonus
	case AbilityLookout:
		m.Power = f.settings.Crew.LookoutBonus
	case AbilityCarpenter:
		m.Power = f.settings.Crew.CarpenterAmount
	}
	return m
}
