package events

import (
	"time"
)

// Event type constants
const (
	TypeSessionStarted  = "session.started"
	TypeSessionEnded    = "session.ended"
	TypeTurnStarted     = "turn.started"
	TypeTurnEnded       = "turn.ended"
	TypeActionApplied   = "action.applied"
	TypeActionRejected  = "action.rejected"
	TypeEntityDamaged   = "entity.damaged"
	TypeEntityDied      = "entity.died"
	TypeWeaponFired     = "weapon.fired"
	TypeWeatherChanged  = "weather.changed"
	TypeHazardTriggered = "hazard.triggered"
	TypeTradeCompleted  = "trade.completed"
	TypeStateTransition = "state.transition"
)

// SessionStartedEvent is published once the map is generated and ships are placed
type SessionStartedEvent struct {
	BaseEvent
	MapWidth  int   `json:"map_width"`
	MapHeight int   `json:"map_height"`
	Seed      int64 `json:"seed"`
	Entities  int   `json:"entities"`
}

// NewSessionStartedEvent creates a new SessionStartedEvent
func NewSessionStartedEvent(sessionID string, width, height int, seed int64, entities int) *SessionStartedEvent {
	return &SessionStartedEvent{
		BaseEvent: newBase(TypeSessionStarted, sessionID),
		MapWidth:  width,
		MapHeight: height,
		Seed:      seed,
		Entities:  entities,
	}
}

// SessionEndedEvent is published when the game-over check fires
type SessionEndedEvent struct {
	BaseEvent
	Outcome   string        `json:"outcome"`
	FinalTurn int           `json:"final_turn"`
	Duration  time.Duration `json:"duration"`
}

// NewSessionEndedEvent creates a new SessionEndedEvent
func NewSessionEndedEvent(sessionID, outcome string, finalTurn int, duration time.Duration) *SessionEndedEvent {
	return &SessionEndedEvent{
		BaseEvent: newBase(TypeSessionEnded, sessionID),
		Outcome:   outcome,
		FinalTurn: finalTurn,
		Duration:  duration,
	}
}

// TurnStartedEvent is published before the end-of-turn sequence runs
type TurnStartedEvent struct {
	BaseEvent
	TurnNumber int `json:"turn"`
}

// NewTurnStartedEvent creates a new TurnStartedEvent
func NewTurnStartedEvent(sessionID string, turn int) *TurnStartedEvent {
	return &TurnStartedEvent{
		BaseEvent:  newBase(TypeTurnStarted, sessionID),
		TurnNumber: turn,
	}
}

// TurnEndedEvent is published after the turn counter advances
type TurnEndedEvent struct {
	BaseEvent
	TurnNumber    int           `json:"turn"`
	AIActions     int           `json:"ai_actions"`
	ProcessedTime time.Duration `json:"process_time"`
}

// NewTurnEndedEvent creates a new TurnEndedEvent
func NewTurnEndedEvent(sessionID string, turn, aiActions int, processTime time.Duration) *TurnEndedEvent {
	return &TurnEndedEvent{
		BaseEvent:     newBase(TypeTurnEnded, sessionID),
		TurnNumber:    turn,
		AIActions:     aiActions,
		ProcessedTime: processTime,
	}
}

// ActionAppliedEvent is published after an action mutates the session
type ActionAppliedEvent struct {
	BaseEvent
	Metadata EventMetadata `json:"metadata"`
	Kind     string        `json:"kind"`
	Action   string        `json:"action"`
}

// NewActionAppliedEvent creates a new ActionAppliedEvent
func NewActionAppliedEvent(sessionID string, entityID, turn int, kind, description string) *ActionAppliedEvent {
	return &ActionAppliedEvent{
		BaseEvent: newBase(TypeActionApplied, sessionID),
		Metadata:  EventMetadata{EntityID: entityID, Turn: turn},
		Kind:      kind,
		Action:    description,
	}
}

// ActionRejectedEvent is published when validation refuses an action
type ActionRejectedEvent struct {
	BaseEvent
	Metadata EventMetadata `json:"metadata"`
	Kind     string        `json:"kind"`
	Code     string        `json:"code"`
	Reason   string        `json:"reason"`
}

// NewActionRejectedEvent creates a new ActionRejectedEvent
func NewActionRejectedEvent(sessionID string, entityID, turn int, kind, code, reason string) *ActionRejectedEvent {
	return &ActionRejectedEvent{
		BaseEvent: newBase(TypeActionRejected, sessionID),
		Metadata:  EventMetadata{EntityID: entityID, Turn: turn},
		Kind:      kind,
		Code:      code,
		Reason:    reason,
	}
}

// EntityDamagedEvent is published for every hit that lands, including zero-damage hits
type EntityDamagedEvent struct {
	BaseEvent
	Metadata  EventMetadata `json:"metadata"`
	SourceID  int           `json:"source_id"`
	Component string        `json:"component"`
	Amount    int           `json:"amount"`
	Remaining int           `json:"remaining"`
}

// NewEntityDamagedEvent creates a new EntityDamagedEvent
func NewEntityDamagedEvent(sessionID string, turn, targetID, sourceID int, component string, amount, remaining int) *EntityDamagedEvent {
	return &EntityDamagedEvent{
		BaseEvent: newBase(TypeEntityDamaged, sessionID),
		Metadata:  EventMetadata{EntityID: targetID, Turn: turn},
		SourceID:  sourceID,
		Component: component,
		Amount:    amount,
		Remaining: remaining,
	}
}

// EntityDiedEvent is published exactly once per entity, when it becomes a corpse
type EntityDiedEvent struct {
	BaseEvent
	Metadata EventMetadata `json:"metadata"`
	Name     string        `json:"name"`
	KilledBy int           `json:"killed_by"`
	X        int           `json:"x"`
	Y        int           `json:"y"`
}

// NewEntityDiedEvent creates a new EntityDiedEvent
func NewEntityDiedEvent(sessionID string, turn, entityID int, name string, killedBy, x, y int) *EntityDiedEvent {
	return &EntityDiedEvent{
		BaseEvent: newBase(TypeEntityDied, sessionID),
		Metadata:  EventMetadata{EntityID: entityID, Turn: turn},
		Name:      name,
		KilledBy:  killedBy,
		X:         x,
		Y:         y,
	}
}

// WeaponFiredEvent is published once per volley
type WeaponFiredEvent struct {
	BaseEvent
	Metadata EventMetadata `json:"metadata"`
	Weapon   string        `json:"weapon"`
	Fired    int           `json:"fired"`
	Targets  int           `json:"targets"`
	Ammo     int           `json:"ammo"`
}

// NewWeaponFiredEvent creates a new WeaponFiredEvent
func NewWeaponFiredEvent(sessionID string, turn, entityID int, weapon string, fired, targets, ammo int) *WeaponFiredEvent {
	return &WeaponFiredEvent{
		BaseEvent: newBase(TypeWeaponFired, sessionID),
		Metadata:  EventMetadata{EntityID: entityID, Turn: turn},
		Weapon:    weapon,
		Fired:     fired,
		Targets:   targets,
		Ammo:      ammo,
	}
}

// WeatherChangedEvent is published when a new spell of weather begins
type WeatherChangedEvent struct {
	BaseEvent
	Turn          int    `json:"turn"`
	From          string `json:"from"`
	To            string `json:"to"`
	WindDirection string `json:"wind_direction"`
	WindForce     int    `json:"wind_force"`
}

// NewWeatherChangedEvent creates a new WeatherChangedEvent
func NewWeatherChangedEvent(sessionID string, turn int, from, to, windDirection string, windForce int) *WeatherChangedEvent {
	return &WeatherChangedEvent{
		BaseEvent:     newBase(TypeWeatherChanged, sessionID),
		Turn:          turn,
		From:          from,
		To:            to,
		WindDirection: windDirection,
		WindForce:     windForce,
	}
}

// HazardTriggeredEvent is published when a decorated tile damages a ship
type HazardTriggeredEvent struct {
	BaseEvent
	Metadata   EventMetadata `json:"metadata"`
	Decoration string        `json:"decoration"`
	Damage     int           `json:"damage"`
	Consumed   bool          `json:"consumed"`
}

// NewHazardTriggeredEvent creates a new HazardTriggeredEvent
func NewHazardTriggeredEvent(sessionID string, turn, entityID int, decoration string, damage int, consumed bool) *HazardTriggeredEvent {
	return &HazardTriggeredEvent{
		BaseEvent:  newBase(TypeHazardTriggered, sessionID),
		Metadata:   EventMetadata{EntityID: entityID, Turn: turn},
		Decoration: decoration,
		Damage:     damage,
		Consumed:   consumed,
	}
}

// TradeCompletedEvent is published after a buy or sell at port
type TradeCompletedEvent struct {
	BaseEvent
	Metadata EventMetadata `json:"metadata"`
	Item     string        `json:"item"`
	Quantity int           `json:"quantity"`
	Coins    int           `json:"coins"`
	Bought   bool          `json:"bought"`
}

// NewTradeCompletedEvent creates a new TradeCompletedEvent. Coins is the amount paid or received.
func NewTradeCompletedEvent(sessionID string, turn, entityID int, item string, qty, coins int, bought bool) *TradeCompletedEvent {
	return &TradeCompletedEvent{
		BaseEvent: newBase(TypeTradeCompleted, sessionID),
		Metadata:  EventMetadata{EntityID: entityID, Turn: turn},
		Item:      item,
		Quantity:  qty,
		Coins:     coins,
		Bought:    bought,
	}
}

// StateTransitionEvent is published when the session state machine transitions between phases
type StateTransitionEvent struct {
	BaseEvent
	FromPhase string `json:"from_phase"`
	ToPhase   string `json:"to_phase"`
	Reason    string `json:"reason"`
}

// NewStateTransitionEvent creates a new StateTransitionEvent
func NewStateTransitionEvent(sessionID, fromPhase, toPhase, reason string) *StateTransitionEvent {
	return &StateTransitionEvent{
		BaseEvent: newBase(TypeStateTransition, sessionID),
		FromPhase: fromPhase,
		ToPhase:   toPhase,
		Reason:    reason,
	}
}
