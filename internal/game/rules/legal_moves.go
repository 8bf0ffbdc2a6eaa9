package rules

import (
	"sort"

	"github.com/mitchelldurbincs/Archipelago/internal/game/core"
	"github.com/mitchelldurbincs/Archipelago/internal/game/entity"
)

// Validator checks an action without applying it
type Validator interface {
	Validate(action core.Action) error
}

// LegalActionCalculator enumerates the actions an entity could attempt
// and filters them through the engine's validation.
type LegalActionCalculator struct{}

// NewLegalActionCalculator creates a new legal action calculator
func NewLegalActionCalculator() *LegalActionCalculator {
	return &LegalActionCalculator{}
}

// Candidates lists every action shape available to e, legal or not.
// The order is stable so it can back a fixed-size action mask.
func (lac *LegalActionCalculator) Candidates(e *entity.Entity) []core.Action {
	id := e.ID
	out := []core.Action{
		core.NewMove(id),
		core.NewRotate(id, core.RotateLeft),
		core.NewRotate(id, core.RotateRight),
		core.NewWait(id),
		core.NewArrowAttack(id),
		core.NewBroadside(id, core.Port),
		core.NewBroadside(id, core.Starboard),
		core.NewSalvage(id),
		core.NewRepair(id, core.RepairHull),
		core.NewRepair(id, core.RepairSails),
	}
	if e.Broadsides != nil {
		for _, w := range e.Broadsides.All() {
			out = append(out, core.NewRepairWeapon(id, w.Side, w.Slot))
		}
	}
	if e.Crew != nil {
		keys := make([]int, 0, len(e.Crew.Keys))
		for key := range e.Crew.Keys {
			keys = append(keys, key)
		}
		sort.Ints(keys)
		for _, key := range keys {
			out = append(out, core.NewCrewAction(id, key))
		}
	}
	out = append(out, core.NewDock(id), core.NewUndock(id))
	return out
}

// GetLegalActionMask validates each candidate; true means the action would be accepted
func (lac *LegalActionCalculator) GetLegalActionMask(v Validator, candidates []core.Action) []bool {
	mask := make([]bool, len(candidates))
	for i, a := range candidates {
		mask[i] = v.Validate(a) == nil
	}
	return mask
}

// LegalActions returns only the candidates that validate
func (lac *LegalActionCalculator) LegalActions(v Validator, e *entity.Entity) []core.Action {
	if !e.Alive {
		return nil
	}
	candidates := lac.Candidates(e)
	mask := lac.GetLegalActionMask(v, candidates)
	out := make([]core.Action, 0, len(candidates))
	for i, ok := range mask {
		if ok {
			out = append(out, candidates[i])
		}
	}
	return out
}
