package monitoring

import (
	"runtime"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/Archipelago/internal/game/events"
)

// TurnMonitor tracks how long end-of-turn resolution takes and how many
// events a session publishes. It subscribes to the session's event bus.
type TurnMonitor struct {
	mu            sync.RWMutex
	turns         int
	total         time.Duration
	last          time.Duration
	peak          time.Duration
	peakTurn      int
	slowThreshold time.Duration
	reportEvery   int
	lastAlert     time.Time
	alertCooldown time.Duration
	eventCounts   map[string]int
}

// NewTurnMonitor creates a monitor that warns about turns slower than
// slowThreshold and logs a metrics line every reportEvery turns (0 disables it)
func NewTurnMonitor(slowThreshold time.Duration, reportEvery int) *TurnMonitor {
	return &TurnMonitor{
		slowThreshold: slowThreshold,
		reportEvery:   reportEvery,
		alertCooldown: 10 * time.Second,
		eventCounts:   make(map[string]int),
	}
}

func (tm *TurnMonitor) ID() string { return "turn-monitor" }

func (tm *TurnMonitor) InterestedIn(string) bool { return true }

// HandleEvent counts the event and records turn timings
func (tm *TurnMonitor) HandleEvent(e events.Event) {
	ended, ok := e.(*events.TurnEndedEvent)

	tm.mu.Lock()
	tm.eventCounts[e.Type()]++
	if !ok {
		tm.mu.Unlock()
		return
	}
	tm.turns++
	tm.total += ended.ProcessedTime
	tm.last = ended.ProcessedTime
	if ended.ProcessedTime > tm.peak {
		tm.peak = ended.ProcessedTime
		tm.peakTurn = ended.TurnNumber
	}
	slow := tm.slowThreshold > 0 && ended.ProcessedTime > tm.slowThreshold &&
		time.Since(tm.lastAlert) > tm.alertCooldown
	if slow {
		tm.lastAlert = time.Now()
	}
	report := tm.reportEvery > 0 && tm.turns%tm.reportEvery == 0
	tm.mu.Unlock()

	if slow {
		log.Warn().
			Int("turn", ended.TurnNumber).
			Dur("took", ended.ProcessedTime).
			Dur("threshold", tm.slowThreshold).
			Msg("Slow turn")
	}
	if report {
		m := tm.GetMetrics()
		log.Debug().
			Int("turns", m.Turns).
			Dur("average", m.Average).
			Dur("peak", m.Peak).
			Int("goroutines", m.Goroutines).
			Str("heap", humanize.Bytes(m.HeapAlloc)).
			Msg("Turn metrics")
	}
}

// GetMetrics returns current turn metrics along with a runtime sample
func (tm *TurnMonitor) GetMetrics() TurnMetrics {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	tm.mu.RLock()
	defer tm.mu.RUnlock()

	m := TurnMetrics{
		Turns:       tm.turns,
		Last:        tm.last,
		Peak:        tm.peak,
		PeakTurn:    tm.peakTurn,
		Goroutines:  runtime.NumGoroutine(),
		HeapAlloc:   mem.HeapAlloc,
		EventCounts: copyMap(tm.eventCounts),
	}
	if tm.turns > 0 {
		m.Average = tm.total / time.Duration(tm.turns)
	}
	return m
}

// TurnMetrics contains turn timing statistics
type TurnMetrics struct {
	Turns       int            `json:"turns"`
	Average     time.Duration  `json:"average"`
	Last        time.Duration  `json:"last"`
	Peak        time.Duration  `json:"peak"`
	PeakTurn    int            `json:"peak_turn"`
	Goroutines  int            `json:"goroutines"`
	HeapAlloc   uint64         `json:"heap_alloc"`
	EventCounts map[string]int `json:"event_counts"`
}

func copyMap(m map[string]int) map[string]int {
	result := make(map[string]int, len(m))
	for k, v := range m {
		result[k] = v
	}
	return result
}
