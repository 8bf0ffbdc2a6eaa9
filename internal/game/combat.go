package game

import (
	"github.com/mitchelldurbincs/Archipelago/internal/game/core"
	"github.com/mitchelldurbincs/Archipelago/internal/game/entity"
	"github.com/mitchelldurbincs/Archipelago/internal/game/events"
	"github.com/mitchelldurbincs/Archipelago/internal/game/rules"
)

// volley is a validated arrow attack
type volley struct {
	ammo    int
	share   int
	targets []*entity.Entity
}

func (e *Engine) planArrows(actor *entity.Entity) (volley, error) {
	if actor.Crew == nil || actor.Cargo == nil {
		return volley{}, core.NewImpossible(core.ReasonNoCrew, "%s has no archers", actor.Name)
	}
	ammo := rules.ArrowAmmo(actor.Crew.Count, e.settings.CrewPerArrow)
	if ammo == 0 {
		return volley{}, core.NewImpossible(core.ReasonNoCrew, "need at least %d crew to loose arrows", e.settings.CrewPerArrow)
	}
	if have := actor.Cargo.Count(entity.ItemArrows); have < ammo {
		return volley{}, core.NewImpossible(core.ReasonNoAmmo, "need %d arrows, have %d", ammo, have)
	}
	targets := e.arrowTargets(actor)
	share, err := rules.SplitDamage(ammo, len(targets))
	if err != nil {
		return volley{}, err
	}
	return volley{ammo: ammo, share: share, targets: targets}, nil
}

// arrowTargets are the visible hostiles within bow range, in ID order
func (e *Engine) arrowTargets(actor *entity.Entity) []*entity.Entity {
	var out []*entity.Entity
	for _, other := range e.gs.World.Living() {
		if !entity.Hostile(actor, other) {
			continue
		}
		if core.Distance(actor.Position, other.Position) > e.settings.ArrowRange || !actor.Sees(other.Position) {
			continue
		}
		out = append(out, other)
	}
	return out
}

// applyArrows spends the volley once and splits it across every target.
// Arrows strike the crew while any are left, then the hull.
func (e *Engine) applyArrows(actor *entity.Entity) error {
	v, err := e.planArrows(actor)
	if err != nil {
		return err
	}
	if err := actor.Cargo.Remove(entity.ItemArrows, v.ammo); err != nil {
		return err
	}
	e.publish(events.NewWeaponFiredEvent(e.gs.SessionID, e.gs.Turn, int(actor.ID), "arrows", v.ammo, len(v.targets), v.ammo))

	for _, t := range v.targets {
		dealt := rules.DamageAfterDefense(v.share, defenseOf(t))
		if t.Crew != nil && t.Crew.Count > 0 {
			err = e.damageCrew(actor.ID, t, dealt)
		} else {
			err = e.damageHull(actor.ID, t, dealt)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// gunHit is one gun's share of a broadside
type gunHit struct {
	gun     *entity.Weapon
	share   int
	targets []*entity.Entity
}

// salvo is a validated broadside
type salvo struct {
	side core.Side
	guns []*entity.Weapon
	hits []gunHit
}

// planBroadside picks the loaded guns the crew can man and the cannonballs
// allow, then the hostiles off that side each gun can reach.
func (e *Engine) planBroadside(actor *entity.Entity, side core.Side) (salvo, error) {
	if actor.Broadsides == nil || len(actor.Broadsides.Side(side)) == 0 {
		return salvo{}, core.NewImpossible(core.ReasonInvalidState, "no guns on the %s side", side)
	}
	active := actor.Broadsides.Active(side)
	if len(active) == 0 {
		return salvo{}, core.NewImpossible(core.ReasonCooldown, "%s guns are still reloading", side)
	}
	crew := 0
	if actor.Crew != nil {
		crew = actor.Crew.Count
	}
	manned := rules.GunsManned(crew, e.settings.CrewPerGun, len(active))
	if manned == 0 {
		return salvo{}, core.NewImpossible(core.ReasonNoCrew, "not enough crew to man the %s guns", side)
	}
	balls := 0
	if actor.Cargo != nil {
		balls = actor.Cargo.Count(entity.ItemCannonballs)
	}
	if balls == 0 {
		return salvo{}, core.NewImpossible(core.ReasonNoAmmo, "no cannonballs aboard")
	}

	s := salvo{side: side, guns: active[:min(manned, balls)]}
	var candidates []*entity.Entity
	for _, other := range e.gs.World.Living() {
		if entity.Hostile(actor, other) && actor.Sees(other.Position) &&
			rules.InArc(actor.Position, actor.Facing, side, other.Position) {
			candidates = append(candidates, other)
		}
	}
	for _, gun := range s.guns {
		var inRange []*entity.Entity
		for _, c := range candidates {
			if core.Distance(actor.Position, c.Position) <= gun.Range {
				inRange = append(inRange, c)
			}
		}
		if len(inRange) == 0 {
			continue
		}
		share, err := rules.SplitDamage(gun.Power, len(inRange))
		if err != nil {
			return salvo{}, err
		}
		s.hits = append(s.hits, gunHit{gun: gun, share: share, targets: inRange})
	}
	if len(s.hits) == 0 {
		return salvo{}, core.NewImpossible(core.ReasonNoTarget, "nothing off the %s side within range", side)
	}
	return s, nil
}

// applyBroadside fires every manned gun, one cannonball each, even those with nothing in range
func (e *Engine) applyBroadside(actor *entity.Entity, side core.Side) error {
	s, err := e.planBroadside(actor, side)
	if err != nil {
		return err
	}
	if err := actor.Cargo.Remove(entity.ItemCannonballs, len(s.guns)); err != nil {
		return err
	}
	for _, gun := range s.guns {
		gun.Fire()
	}

	struck := make(map[core.EntityID]struct{})
	for _, hit := range s.hits {
		for _, t := range hit.targets {
			if !t.Alive {
				continue
			}
			struck[t.ID] = struct{}{}
			if err := e.damageHull(actor.ID, t, rules.DamageAfterDefense(hit.share, defenseOf(t))); err != nil {
				return err
			}
		}
	}
	e.publish(events.NewWeaponFiredEvent(e.gs.SessionID, e.gs.Turn, int(actor.ID), "broadside_"+side.String(), len(s.guns), len(struck), len(s.guns)))
	return nil
}

func (e *Engine) meleeTarget(actor *entity.Entity, at core.Coordinate) (*entity.Entity, error) {
	if actor.Fighter == nil {
		return nil, core.NewImpossible(core.ReasonInvalidState, "%s cannot fight", actor.Name)
	}
	if core.Distance(actor.Position, at) > 1 {
		return nil, core.NewImpossible(core.ReasonNoTarget, "%s is out of reach", at)
	}
	target := e.gs.World.At(at)
	if target == nil || target.ID == actor.ID || !entity.Hostile(actor, target) {
		return nil, core.NewImpossible(core.ReasonNoTarget, "nothing to attack at %s", at)
	}
	return target, nil
}

func (e *Engine) applyMelee(actor *entity.Entity, at core.Coordinate) error {
	target, err := e.meleeTarget(actor, at)
	if err != nil {
		return err
	}
	return e.damageHull(actor.ID, target, rules.DamageAfterDefense(actor.Fighter.Power, defenseOf(target)))
}

// damageHull lowers a target's HP and sinks it on the killing blow. Hazards pass core.NoEntity as source.
func (e *Engine) damageHull(source core.EntityID, target *entity.Entity, amount int) error {
	if target.Fighter == nil || !target.Alive {
		return nil
	}
	dealt, died := target.Fighter.Damage(amount)
	e.recordDamage(source, target, dealt)
	e.publish(events.NewEntityDamagedEvent(e.gs.SessionID, e.gs.Turn, int(target.ID), int(source), "hull", dealt, target.Fighter.HP))
	if died {
		return e.kill(target, source)
	}
	return nil
}

// damageCrew kills hands aboard; losing the last hand loses the ship
func (e *Engine) damageCrew(source core.EntityID, target *entity.Entity, amount int) error {
	if target.Crew == nil || !target.Alive {
		return nil
	}
	dealt, died := target.Crew.Damage(amount)
	e.recordDamage(source, target, dealt)
	e.publish(events.NewEntityDamagedEvent(e.gs.SessionID, e.gs.Turn, int(target.ID), int(source), "crew", dealt, target.Crew.Count))
	if died {
		return e.kill(target, source)
	}
	return nil
}

func (e *Engine) kill(target *entity.Entity, by core.EntityID) error {
	killed, err := e.gs.World.Kill(target.ID)
	if err != nil {
		return err
	}
	if !killed {
		return nil
	}
	if by == e.gs.World.PlayerID() && by != core.NoEntity {
		e.stats.Kills++
	}
	e.logger.Info().
		Int("entity_id", int(target.ID)).
		Str("name", target.Name).
		Int("killed_by", int(by)).
		Int("turn", e.gs.Turn).
		Msg("Entity sunk")
	e.publish(events.NewEntityDiedEvent(e.gs.SessionID, e.gs.Turn, int(target.ID), target.Name, int(by), target.Position.X, target.Position.Y))
	return nil
}

func defenseOf(e *entity.Entity) int {
	if e.Fighter == nil {
		return 0
	}
	return e.Fighter.Defense
}
