package game

import (
	"github.com/mitchelldurbincs/Archipelago/internal/game/core"
	"github.com/mitchelldurbincs/Archipelago/internal/game/entity"
	"github.com/mitchelldurbincs/Archipelago/internal/game/events"
	"github.com/mitchelldurbincs/Archipelago/internal/game/states"
	"github.com/mitchelldurbincs/Archipelago/internal/items"
)

// dockingPort finds a port on or next to the ship
func (e *Engine) dockingPort(actor *entity.Entity) (core.Coordinate, error) {
	if e.stateMachine.CurrentPhase() == states.PhaseDocked {
		return core.Coordinate{}, core.NewImpossible(core.ReasonInvalidState, "already docked")
	}
	if !actor.IsPlayer() {
		return core.Coordinate{}, core.NewImpossible(core.ReasonInvalidState, "%s does not trade", actor.Name)
	}
	for _, c := range core.Area(actor.Position, 1) {
		if t := e.gs.Grid.At(c); t != nil && t.IsPort() {
			return c, nil
		}
	}
	return core.Coordinate{}, core.NewImpossible(core.ReasonNotAtPort, "no port within reach")
}

func (e *Engine) applyDock(actor *entity.Entity) error {
	port, err := e.dockingPort(actor)
	if err != nil {
		return err
	}
	return e.stateMachine.Moor(port)
}

func (e *Engine) validateUndock() error {
	if e.stateMachine.CurrentPhase() != states.PhaseDocked {
		return core.NewImpossible(core.ReasonInvalidState, "not docked")
	}
	return nil
}

// deal is a validated trade
type deal struct {
	item  items.Stats
	qty   int
	coins int
}

func (e *Engine) planBuy(actor *entity.Entity, a core.BuyAction) (deal, error) {
	stats, err := e.market(actor, a.Item, a.Qty)
	if err != nil {
		return deal{}, err
	}
	cost := stats.Buy * a.Qty
	if actor.Cargo.Coins < cost {
		return deal{}, core.NewImpossible(core.ReasonInsufficientFunds, "%d coins needed, %d aboard", cost, actor.Cargo.Coins)
	}
	if room := e.room(actor.Cargo, a.Item); room < a.Qty {
		return deal{}, core.NewImpossible(core.ReasonCargoFull, "hold has room for %d %s", room, a.Item)
	}
	return deal{item: stats, qty: a.Qty, coins: cost}, nil
}

func (e *Engine) planSell(actor *entity.Entity, a core.SellAction) (deal, error) {
	stats, err := e.market(actor, a.Item, a.Qty)
	if err != nil {
		return deal{}, err
	}
	if have := actor.Cargo.Count(a.Item); have < a.Qty {
		return deal{}, core.NewImpossible(core.ReasonInvalidState, "only %d %s aboard", have, a.Item)
	}
	return deal{item: stats, qty: a.Qty, coins: stats.Sell * a.Qty}, nil
}

// market checks the conditions shared by buying and selling
func (e *Engine) market(actor *entity.Entity, item string, qty int) (items.Stats, error) {
	if e.stateMachine.CurrentPhase() != states.PhaseDocked || actor.Cargo == nil {
		return items.Stats{}, core.NewImpossible(core.ReasonNotAtPort, "dock at a port to trade")
	}
	if qty <= 0 {
		return items.Stats{}, core.NewImpossible(core.ReasonInvalidState, "quantity must be positive")
	}
	stats, err := e.items.Get(item)
	if err != nil {
		return items.Stats{}, core.NewImpossible(core.ReasonUnknownItem, "no market for %q", item)
	}
	return stats, nil
}

func (e *Engine) applyBuy(actor *entity.Entity, a core.BuyAction) error {
	d, err := e.planBuy(actor, a)
	if err != nil {
		return err
	}
	actor.Cargo.Coins -= d.coins
	actor.Cargo.Add(d.item.Name, d.qty)
	e.stats.CoinsSpent += d.coins
	e.publish(events.NewTradeCompletedEvent(e.gs.SessionID, e.gs.Turn, int(actor.ID), d.item.Name, d.qty, d.coins, true))
	return nil
}

func (e *Engine) applySell(actor *entity.Entity, a core.SellAction) error {
	d, err := e.planSell(actor, a)
	if err != nil {
		return err
	}
	if err := actor.Cargo.Remove(d.item.Name, d.qty); err != nil {
		return err
	}
	actor.Cargo.Coins += d.coins
	e.stats.CoinsEarned += d.coins
	e.publish(events.NewTradeCompletedEvent(e.gs.SessionID, e.gs.Turn, int(actor.ID), d.item.Name, d.qty, d.coins, false))
	return nil
}
