package core

import "fmt"

// EntityID is the stable handle of an entity in the world arena
type EntityID int

// NoEntity is the zero handle; real entities start at 1
const NoEntity EntityID = 0

// Side selects a broadside battery
type Side int

const (
	Port Side = iota
	Starboard
)

func (s Side) String() string {
	switch s {
	case Port:
		return "port"
	case Starboard:
		return "starboard"
	default:
		return fmt.Sprintf("Side(%d)", int(s))
	}
}

// Rotation is a single-step turn
type Rotation int

const (
	RotateLeft Rotation = iota
	RotateRight
)

// Steps returns the signed direction delta for the rotation
func (r Rotation) Steps() int {
	if r == RotateLeft {
		return -1
	}
	return 1
}

func (r Rotation) String() string {
	if r == RotateLeft {
		return "left"
	}
	return "right"
}

// RepairTarget chooses what a repair action mends
type RepairTarget int

const (
	RepairHull RepairTarget = iota
	RepairSails
	RepairWeapon
)

func (r RepairTarget) String() string {
	switch r {
	case RepairHull:
		return "hull"
	case RepairSails:
		return "sails"
	case RepairWeapon:
		return "weapon"
	default:
		return fmt.Sprintf("RepairTarget(%d)", int(r))
	}
}

// Action is a decoded request from the player or an AI policy.
// The set of implementations is closed; the engine switches over them.
type Action interface {
	ActorID() EntityID
	Kind() string
	// AdvancesTurn is false for menu actions, which never trigger the end-of-turn sequence
	AdvancesTurn() bool
	isAction()
}

type actor struct {
	Actor EntityID
}

func (a actor) ActorID() EntityID { return a.Actor }
func (actor) isAction()           {}

type turnAction struct{ actor }

func (turnAction) AdvancesTurn() bool { return true }

type menuAction struct{ actor }

func (menuAction) AdvancesTurn() bool { return false }

// MoveAction sails one hex in the facing direction
type MoveAction struct{ turnAction }

// RotateAction turns the ship one step
type RotateAction struct {
	turnAction
	Rotation Rotation
}

// WaitAction passes the turn
type WaitAction struct{ turnAction }

// ArrowAttackAction volleys arrows at every visible hostile in range
type ArrowAttackAction struct{ turnAction }

// BroadsideAttackAction fires the active guns on one side
type BroadsideAttackAction struct {
	turnAction
	Side Side
}

// MeleeAction strikes whatever hostile occupies Target
type MeleeAction struct {
	turnAction
	Target Coordinate
}

// SalvageAction strips cargo from an adjacent wreck
type SalvageAction struct{ turnAction }

// RepairAction spends wood to mend hull, sails or one weapon
type RepairAction struct {
	turnAction
	Target RepairTarget
	Side   Side
	Slot   int
}

// CrewAction triggers the officer bound to Key
type CrewAction struct {
	turnAction
	Key int
}

// AssignCrewAction binds officer Member to Key
type AssignCrewAction struct {
	menuAction
	Member int
	Key    int
}

// BuyAction purchases Qty of Item at a port
type BuyAction struct {
	menuAction
	Item string
	Qty  int
}

// SellAction sells Qty of Item at a port
type SellAction struct {
	menuAction
	Item string
	Qty  int
}

// DockAction enters an adjacent port
type DockAction struct{ menuAction }

// UndockAction leaves port
type UndockAction struct{ menuAction }

func (MoveAction) Kind() string            { return "move" }
func (RotateAction) Kind() string          { return "rotate" }
func (WaitAction) Kind() string            { return "wait" }
func (ArrowAttackAction) Kind() string     { return "attack_arrows" }
func (BroadsideAttackAction) Kind() string { return "attack_broadside" }
func (MeleeAction) Kind() string           { return "melee" }
func (SalvageAction) Kind() string         { return "salvage" }
func (RepairAction) Kind() string          { return "repair" }
func (CrewAction) Kind() string            { return "crew" }
func (AssignCrewAction) Kind() string      { return "assign_crew" }
func (BuyAction) Kind() string             { return "buy" }
func (SellAction) Kind() string            { return "sell" }
func (DockAction) Kind() string            { return "dock" }
func (UndockAction) Kind() string          { return "undock" }

// Constructors keep the embedded actor plumbing out of callers.

func NewMove(id EntityID) MoveAction { return MoveAction{turnAction{actor{id}}} }
func NewRotate(id EntityID, r Rotation) RotateAction {
	return RotateAction{turnAction: turnAction{actor{id}}, Rotation: r}
}
func NewWait(id EntityID) WaitAction               { return WaitAction{turnAction{actor{id}}} }
func NewArrowAttack(id EntityID) ArrowAttackAction { return ArrowAttackAction{turnAction{actor{id}}} }
func NewBroadside(id EntityID, side Side) BroadsideAttackAction {
	return BroadsideAttackAction{turnAction: turnAction{actor{id}}, Side: side}
}
func NewMelee(id EntityID, target Coordinate) MeleeAction {
	return MeleeAction{turnAction: turnAction{actor{id}}, Target: target}
}
func NewSalvage(id EntityID) SalvageAction { return SalvageAction{turnAction{actor{id}}} }
func NewRepair(id EntityID, target RepairTarget) RepairAction {
	return RepairAction{turnAction: turnAction{actor{id}}, Target: target}
}
func NewRepairWeapon(id EntityID, side Side, slot int) RepairAction {
	return RepairAction{turnAction: turnAction{actor{id}}, Target: RepairWeapon, Side: side, Slot: slot}
}
func NewCrewAction(id EntityID, key int) CrewAction {
	return CrewAction{turnAction: turnAction{actor{id}}, Key: key}
}
func NewAssignCrew(id EntityID, member, key int) AssignCrewAction {
	return AssignCrewAction{menuAction: menuAction{actor{id}}, Member: member, Key: key}
}
func NewBuy(id EntityID, item string, qty int) BuyAction {
	return BuyAction{menuAction: menuAction{actor{id}}, Item: item, Qty: qty}
}
func NewSell(id EntityID, item string, qty int) SellAction {
	return SellAction{menuAction: menuAction{actor{id}}, Item: item, Qty: qty}
}
func NewDock(id EntityID) DockAction     { return DockAction{menuAction{actor{id}}} }
func NewUndock(id EntityID) UndockAction { return UndockAction{menuAction{actor{id}}} }

// DescribeAction renders an action for logs and error messages
func DescribeAction(a Action) string {
	if a == nil {
		return "nil"
	}
	switch act := a.(type) {
	case RotateAction:
		return fmt.Sprintf("rotate %s", act.Rotation)
	case BroadsideAttackAction:
		return fmt.Sprintf("broadside %s", act.Side)
	case MeleeAction:
		return fmt.Sprintf("melee at %s", act.Target)
	case RepairAction:
		if act.Target == RepairWeapon {
			return fmt.Sprintf("repair %s weapon %d", act.Side, act.Slot)
		}
		return fmt.Sprintf("repair %s", act.Target)
	case CrewAction:
		return fmt.Sprintf("crew key %d", act.Key)
	case AssignCrewAction:
		return fmt.Sprintf("assign crew %d to key %d", act.Member, act.Key)
	case BuyAction:
		return fmt.Sprintf("buy %d %s", act.Qty, act.Item)
	case SellAction:
		return fmt.Sprintf("sell %d %s", act.Qty, act.Item)
	default:
		return a.Kind()
	}
}
