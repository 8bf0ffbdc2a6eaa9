package game

import (
	"fmt"
	"sort"

	"github.com/mitchelldurbincs/Archipelago/internal/game/core"
	"github.com/mitchelldurbincs/Archipelago/internal/game/entity"
)

// validate checks whether actor may perform action. It never mutates state
// and returns a *core.Impossible for every ordinary refusal.
func (e *Engine) validate(actor *entity.Entity, action core.Action) error {
	if !actor.Alive {
		return core.NewImpossible(core.ReasonInvalidState, "%s has been sunk", actor.Name)
	}
	if actor.IsPlayer() && action.AdvancesTurn() && !e.stateMachine.CurrentPhase().CanAdvanceTurn() {
		return core.NewImpossible(core.ReasonInvalidState, "cast off before giving that order")
	}

	switch a := action.(type) {
	case core.MoveAction:
		return e.validateMove(actor)
	case core.RotateAction, core.WaitAction:
		return nil
	case core.ArrowAttackAction:
		_, err := e.planArrows(actor)
		return err
	case core.BroadsideAttackAction:
		_, err := e.planBroadside(actor, a.Side)
		return err
	case core.MeleeAction:
		_, err := e.meleeTarget(actor, a.Target)
		return err
	case core.SalvageAction:
		_, err := e.salvageSource(actor)
		return err
	case core.RepairAction:
		_, err := e.repairTarget(actor, a)
		return err
	case core.CrewAction:
		_, err := e.crewOfficer(actor, a.Key)
		return err
	case core.AssignCrewAction:
		return e.validateAssign(actor, a)
	case core.DockAction:
		_, err := e.dockingPort(actor)
		return err
	case core.UndockAction:
		return e.validateUndock()
	case core.BuyAction:
		_, err := e.planBuy(actor, a)
		return err
	case core.SellAction:
		_, err := e.planSell(actor, a)
		return err
	default:
		return fmt.Errorf("unhandled action %T", action)
	}
}

// apply mutates state for an action that already passed validate
func (e *Engine) apply(actor *entity.Entity, action core.Action) error {
	switch a := action.(type) {
	case core.MoveAction:
		actor.Position = actor.Ahead()
		return nil
	case core.RotateAction:
		actor.Facing = actor.Facing.Rotate(a.Rotation.Steps())
		return nil
	case core.WaitAction:
		return nil
	case core.ArrowAttackAction:
		return e.applyArrows(actor)
	case core.BroadsideAttackAction:
		return e.applyBroadside(actor, a.Side)
	case core.MeleeAction:
		return e.applyMelee(actor, a.Target)
	case core.SalvageAction:
		return e.applySalvage(actor)
	case core.RepairAction:
		return e.applyRepair(actor, a)
	case core.CrewAction:
		return e.applyCrew(actor, a.Key)
	case core.AssignCrewAction:
		return actor.Crew.Assign(a.Member, a.Key)
	case core.DockAction:
		return e.applyDock(actor)
	case core.UndockAction:
		return e.stateMachine.CastOff()
	case core.BuyAction:
		return e.applyBuy(actor, a)
	case core.SellAction:
		return e.applySell(actor, a)
	default:
		return fmt.Errorf("unhandled action %T", action)
	}
}

func (e *Engine) validateMove(actor *entity.Entity) error {
	if actor.Sails != nil && actor.Sails.HP <= 0 {
		return core.NewImpossible(core.ReasonSailsDamaged, "sails too damaged to get under way")
	}
	ahead := actor.Ahead()
	if !e.gs.Grid.Contains(ahead) || !actor.CanEnter(e.gs.Grid, ahead) {
		return core.NewImpossible(core.ReasonBlocked, "cannot sail to %s", ahead)
	}
	if e.gs.World.Occupied(ahead, actor.ID) {
		return core.NewImpossible(core.ReasonBlocked, "%s is occupied", ahead)
	}
	return nil
}

// salvage is where loot comes from: a corpse or a wreck tile
type salvage struct {
	corpse *entity.Entity
	wreck  *core.Tile
}

func (e *Engine) salvageSource(actor *entity.Entity) (salvage, error) {
	if actor.Cargo == nil {
		return salvage{}, core.NewImpossible(core.ReasonInvalidState, "%s has no hold", actor.Name)
	}
	for _, c := range e.gs.World.CorpsesNear(actor.Position, 1) {
		if c.Cargo != nil && !c.Cargo.Empty() {
			return salvage{corpse: c}, nil
		}
	}
	if t := e.gs.Grid.At(actor.Position); t != nil && t.Decoration == core.DecorationWreck {
		return salvage{wreck: t}, nil
	}
	return salvage{}, core.NewImpossible(core.ReasonNothingToSalvage, "nothing to salvage here")
}

// applySalvage empties the source into the hold. Coins always fit; goods are
// taken in name order until the hold is full and the rest is lost.
func (e *Engine) applySalvage(actor *entity.Entity) error {
	src, err := e.salvageSource(actor)
	if err != nil {
		return err
	}
	hold := actor.Cargo

	if src.wreck != nil {
		src.wreck.Decoration = core.DecorationNone
		hold.Coins += wreckCoins
		hold.Add(entity.ItemWood, min(wreckWood, e.room(hold, entity.ItemWood)))
		e.stats.CoinsEarned += wreckCoins
		e.logger.Debug().Str("at", actor.Position.String()).Msg("Wreck salvaged")
		return nil
	}

	loot := src.corpse.Cargo
	hold.Coins += loot.Coins
	e.stats.CoinsEarned += loot.Coins
	names := make([]string, 0, len(loot.Items))
	for name := range loot.Items {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		hold.Add(name, min(loot.Items[name], e.room(hold, name)))
	}
	src.corpse.Cargo = entity.NewCargo(0, 0, 0)
	src.corpse.Salvaged = true

	e.logger.Debug().
		Int("entity_id", int(actor.ID)).
		Str("corpse", src.corpse.Name).
		Int("coins", loot.Coins).
		Msg("Corpse salvaged")
	return nil
}

// room is how many more of item fit in the hold. Limits of zero are unlimited.
func (e *Engine) room(hold *entity.Cargo, item string) int {
	const unlimited = int(^uint(0) >> 1)
	weight, volume := hold.Totals(e.items.Measure)
	w, v := e.items.Measure(item)

	n := unlimited
	if hold.MaxWeight > 0 && w > 0 {
		n = min(n, max(0, hold.MaxWeight-weight)/w)
	}
	if hold.MaxVolume > 0 && v > 0 {
		n = min(n, max(0, hold.MaxVolume-volume)/v)
	}
	return n
}

// mendable is any component repair can heal
type mendable interface {
	Heal(n int) int
}

func (e *Engine) repairTarget(actor *entity.Entity, a core.RepairAction) (mendable, error) {
	cost := e.settings.RepairWoodCost
	if actor.Cargo == nil || actor.Cargo.Count(entity.ItemWood) < cost {
		return nil, core.NewImpossible(core.ReasonInsufficientFunds, "repairs need %d wood", cost)
	}

	switch a.Target {
	case core.RepairHull:
		if actor.Fighter == nil {
			return nil, core.NewImpossible(core.ReasonInvalidState, "%s has no hull", actor.Name)
		}
		if actor.Fighter.HP >= actor.Fighter.MaxHP {
			return nil, core.NewImpossible(core.ReasonAtMax, "hull is already sound")
		}
		return actor.Fighter, nil
	case core.RepairSails:
		if actor.Sails == nil {
			return nil, core.NewImpossible(core.ReasonInvalidState, "%s has no sails", actor.Name)
		}
		if actor.Sails.HP >= actor.Sails.MaxHP {
			return nil, core.NewImpossible(core.ReasonAtMax, "sails are already whole")
		}
		return actor.Sails, nil
	case core.RepairWeapon:
		if actor.Broadsides == nil {
			return nil, core.NewImpossible(core.ReasonInvalidState, "%s carries no guns", actor.Name)
		}
		w, ok := actor.Broadsides.Weapon(a.Side, a.Slot)
		if !ok {
			return nil, core.NewImpossible(core.ReasonInvalidState, "no gun in %s slot %d", a.Side, a.Slot)
		}
		if w.HP >= w.MaxHP {
			return nil, core.NewImpossible(core.ReasonAtMax, "%s is already in good order", w.Name)
		}
		return w, nil
	default:
		return nil, fmt.Errorf("unknown repair target %d", a.Target)
	}
}

func (e *Engine) applyRepair(actor *entity.Entity, a core.RepairAction) error {
	target, err := e.repairTarget(actor, a)
	if err != nil {
		return err
	}
	if err := actor.Cargo.Remove(entity.ItemWood, e.settings.RepairWoodCost); err != nil {
		return err
	}
	healed := target.Heal(e.settings.RepairAmount)
	e.logger.Debug().
		Int("entity_id", int(actor.ID)).
		Str("target", a.Target.String()).
		Int("healed", healed).
		Msg("Repaired")
	return nil
}
