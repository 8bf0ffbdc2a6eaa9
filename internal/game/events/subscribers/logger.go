package subscribers

import (
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/Archipelago/internal/game/events"
)

// LoggerSubscriber logs events to structured logs
type LoggerSubscriber struct {
	id              string
	logger          zerolog.Logger
	logLevel        zerolog.Level
	eventTypeFilter map[string]bool // If non-nil, only log these event types
	devMode         bool            // If true, log full event details
}

// NewLoggerSubscriber creates a new logger subscriber
func NewLoggerSubscriber(id string, logger zerolog.Logger, logLevel zerolog.Level) *LoggerSubscriber {
	return &LoggerSubscriber{
		id:       id,
		logger:   logger.With().Str("subscriber", "event_logger").Logger(),
		logLevel: logLevel,
	}
}

// ID returns the subscriber's unique identifier
func (ls *LoggerSubscriber) ID() string {
	return ls.id
}

// SetEventFilter sets which event types to log (nil means log all)
func (ls *LoggerSubscriber) SetEventFilter(eventTypes []string) {
	if len(eventTypes) == 0 {
		ls.eventTypeFilter = nil
		return
	}

	ls.eventTypeFilter = make(map[string]bool)
	for _, eventType := range eventTypes {
		ls.eventTypeFilter[eventType] = true
	}
}

// SetDevMode enables or disables development mode logging
func (ls *LoggerSubscriber) SetDevMode(enabled bool) {
	ls.devMode = enabled
}

// InterestedIn returns true if the subscriber wants to receive this event type
func (ls *LoggerSubscriber) InterestedIn(eventType string) bool {
	if ls.eventTypeFilter == nil {
		return true
	}
	return ls.eventTypeFilter[eventType]
}

// HandleEvent processes an event by logging it
func (ls *LoggerSubscriber) HandleEvent(event events.Event) {
	eventLogger := ls.logger.With().
		Str("event_type", event.Type()).
		Str("session_id", event.SessionID()).
		Time("timestamp", event.Timestamp()).
		Logger()

	var logEvent *zerolog.Event
	switch ls.logLevel {
	case zerolog.DebugLevel:
		logEvent = eventLogger.Debug()
	case zerolog.InfoLevel:
		logEvent = eventLogger.Info()
	case zerolog.WarnLevel:
		logEvent = eventLogger.Warn()
	case zerolog.ErrorLevel:
		logEvent = eventLogger.Error()
	default:
		logEvent = eventLogger.Info()
	}

	switch e := event.(type) {
	case *events.SessionStartedEvent:
		logEvent.
			Int("map_width", e.MapWidth).
			Int("map_height", e.MapHeight).
			Int64("seed", e.Seed).
			Int("entities", e.Entities)

	case *events.SessionEndedEvent:
		logEvent.
			Str("outcome", e.Outcome).
			Int("final_turn", e.FinalTurn).
			Dur("duration", e.Duration)

	case *events.TurnStartedEvent:
		logEvent.Int("turn", e.TurnNumber)

	case *events.TurnEndedEvent:
		logEvent.
			Int("turn", e.TurnNumber).
			Int("ai_actions", e.AIActions).
			Dur("process_time", e.ProcessedTime)

	case *events.ActionAppliedEvent:
		logEvent.
			Int("entity_id", e.Metadata.EntityID).
			Int("turn", e.Metadata.Turn).
			Str("kind", e.Kind).
			Str("action", e.Action)

	case *events.ActionRejectedEvent:
		logEvent.
			Int("entity_id", e.Metadata.EntityID).
			Int("turn", e.Metadata.Turn).
			Str("kind", e.Kind).
			Str("code", e.Code).
			Str("reason", e.Reason)

	case *events.EntityDamagedEvent:
		logEvent.
			Int("entity_id", e.Metadata.EntityID).
			Int("source_id", e.SourceID).
			Str("component", e.Component).
			Int("amount", e.Amount).
			Int("remaining", e.Remaining)

	case *events.EntityDiedEvent:
		logEvent.
			Int("entity_id", e.Metadata.EntityID).
			Str("name", e.Name).
			Int("killed_by", e.KilledBy).
			Int("x", e.X).
			Int("y", e.Y)

	case *events.WeaponFiredEvent:
		logEvent.
			Int("entity_id", e.Metadata.EntityID).
			Str("weapon", e.Weapon).
			Int("fired", e.Fired).
			Int("targets", e.Targets).
			Int("ammo", e.Ammo)

	case *events.WeatherChangedEvent:
		logEvent.
			Int("turn", e.Turn).
			Str("from", e.From).
			Str("to", e.To).
			Str("wind_direction", e.WindDirection).
			Int("wind_force", e.WindForce)

	case *events.HazardTriggeredEvent:
		logEvent.
			Int("entity_id", e.Metadata.EntityID).
			Str("decoration", e.Decoration).
			Int("damage", e.Damage).
			Bool("consumed", e.Consumed)

	case *events.TradeCompletedEvent:
		logEvent.
			Int("entity_id", e.Metadata.EntityID).
			Str("item", e.Item).
			Int("quantity", e.Quantity).
			Int("coins", e.Coins).
			Bool("bought", e.Bought)

	case *events.StateTransitionEvent:
		logEvent.
			Str("from_phase", e.FromPhase).
			Str("to_phase", e.ToPhase).
			Str("reason", e.Reason)
	}

	if ls.devMode {
		if jsonData, err := json.Marshal(event); err == nil {
			logEvent.RawJSON("event_data", jsonData)
		}
	}

	logEvent.Msg("Session event")
}
