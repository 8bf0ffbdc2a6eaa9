package game

import (
	"github.com/mitchelldurbincs/Archipelago/internal/game/core"
	"github.com/mitchelldurbincs/Archipelago/internal/game/entity"
)

// Officer abilities
const (
	AbilityScry      = "scry"
	AbilityLookout   = "lookout"
	AbilityCarpenter = "carpenter"
	AbilityGunner    = "gunner"
)

var officerTitles = map[string]string{
	AbilityScry:      "Sea Witch",
	AbilityLookout:   "Lookout",
	AbilityCarpenter: "Carpenter",
	AbilityGunner:    "Master Gunner",
}

func (e *Engine) crewOfficer(actor *entity.Entity, key int) (*entity.CrewMember, error) {
	if actor.Crew == nil || actor.Crew.Count == 0 {
		return nil, core.NewImpossible(core.ReasonNoCrew, "no crew aboard")
	}
	m, ok := actor.Crew.Officer(key)
	if !ok {
		return nil, core.NewImpossible(core.ReasonNoCrew, "no officer answers to key %d", key)
	}
	if !m.Ready() {
		return nil, core.NewImpossible(core.ReasonCooldown, "%s needs %d more turns", m.Name, m.Cooldown)
	}

	switch m.Ability {
	case AbilityScry, AbilityLookout:
	case AbilityCarpenter:
		if actor.Fighter == nil || actor.Fighter.HP >= actor.Fighter.MaxHP {
			return nil, core.NewImpossible(core.ReasonAtMax, "hull is already sound")
		}
	case AbilityGunner:
		if actor.Broadsides == nil || !anyReloading(actor.Broadsides) {
			return nil, core.NewImpossible(core.ReasonAtMax, "every gun is already loaded")
		}
	default:
		return nil, core.NewImpossible(core.ReasonInvalidState, "%s has no usable ability %q", m.Name, m.Ability)
	}
	return m, nil
}

// applyCrew triggers the officer's ability and starts its cooldown
func (e *Engine) applyCrew(actor *entity.Entity, key int) error {
	m, err := e.crewOfficer(actor, key)
	if err != nil {
		return err
	}
	switch m.Ability {
	case AbilityScry:
		actor.AddEffect(entity.Effect{Name: AbilityScry, TurnsLeft: e.settings.Crew.ScryTurns, ExtraMistView: m.Power})
	case AbilityLookout:
		actor.AddEffect(entity.Effect{Name: AbilityLookout, TurnsLeft: e.settings.Crew.LookoutTurns, ExtraView: m.Power})
	case AbilityCarpenter:
		actor.Fighter.Heal(m.Power)
	case AbilityGunner:
		for _, w := range actor.Broadsides.All() {
			w.Cooldown = 0
		}
	}
	m.Cooldown = m.CooldownMax

	e.logger.Debug().
		Int("entity_id", int(actor.ID)).
		Str("officer", m.Name).
		Str("ability", m.Ability).
		Msg("Officer acted")
	return nil
}

func (e *Engine) validateAssign(actor *entity.Entity, a core.AssignCrewAction) error {
	if actor.Crew == nil || a.Member < 0 || a.Member >= len(actor.Crew.Officers) {
		return core.NewImpossible(core.ReasonNoCrew, "no officer %d aboard", a.Member)
	}
	if a.Key < 1 {
		return core.NewImpossible(core.ReasonInvalidState, "key %d cannot be bound", a.Key)
	}
	return nil
}

func anyReloading(b *entity.Broadsides) bool {
	for _, w := range b.All() {
		if w.Cooldown > 0 {
			return true
		}
	}
	return false
}
