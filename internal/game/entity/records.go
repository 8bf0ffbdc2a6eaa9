package entity

import (
	"fmt"

	"github.com/mitchelldurbincs/Archipelago/internal/game/core"
)

type FighterRecord struct {
	HP      int `json:"hp"`
	MaxHP   int `json:"max_hp"`
	Defense int `json:"defense"`
	Power   int `json:"power"`
}

type SailsRecord struct {
	HP    int `json:"hp"`
	MaxHP int `json:"max_hp"`
}

type WeaponRecord struct {
	Name        string `json:"name"`
	HP          int    `json:"hp"`
	MaxHP       int    `json:"max_hp"`
	Power       int    `json:"power"`
	Range       int    `json:"range"`
	Cooldown    int    `json:"cooldown"`
	CooldownMax int    `json:"cooldown_max"`
}

type BroadsidesRecord struct {
	Port      []WeaponRecord `json:"port"`
	Starboard []WeaponRecord `json:"starboard"`
}

type CrewMemberRecord struct {
	Name        string `json:"name"`
	Ability     string `json:"ability"`
	Power       int    `json:"power"`
	Cooldown    int    `json:"cooldown"`
	CooldownMax int    `json:"cooldown_max"`
}

type CrewRecord struct {
	Count    int                `json:"count"`
	Max      int                `json:"max"`
	Officers []CrewMemberRecord `json:"officers,omitempty"`
	Keys     map[int]int        `json:"keys,omitempty"`
}

type CargoRecord struct {
	Coins     int            `json:"coins"`
	Items     map[string]int `json:"items,omitempty"`
	MaxWeight int            `json:"max_weight"`
	MaxVolume int            `json:"max_volume"`
}

type AIRecord struct {
	Policy         string           `json:"policy"`
	Target         core.CoordRecord `json:"target"`
	HasTarget      bool             `json:"has_target"`
	TurnsSinceSeen int              `json:"turns_since_seen"`
}

type EffectRecord struct {
	Name          string `json:"name"`
	TurnsLeft     int    `json:"turns_left"`
	ExtraView     int    `json:"extra_view,omitempty"`
	ExtraMistView int    `json:"extra_mist_view,omitempty"`
}

// EntityRecord is the plain form of an Entity. FOV is not stored; it is
// recomputed on the next turn.
type EntityRecord struct {
	ID           int               `json:"id"`
	Name         string            `json:"name"`
	Icon         string            `json:"icon,omitempty"`
	Kind         string            `json:"kind"`
	Position     core.CoordRecord  `json:"position"`
	Facing       int               `json:"facing"`
	Profile      string            `json:"profile,omitempty"`
	Flying       bool              `json:"flying,omitempty"`
	Alive        bool              `json:"alive"`
	Corpse       bool              `json:"corpse,omitempty"`
	Salvaged     bool              `json:"salvaged,omitempty"`
	ViewDistance int               `json:"view_distance"`
	Fighter      *FighterRecord    `json:"fighter,omitempty"`
	Sails        *SailsRecord      `json:"sails,omitempty"`
	Broadsides   *BroadsidesRecord `json:"broadsides,omitempty"`
	Crew         *CrewRecord       `json:"crew,omitempty"`
	Cargo        *CargoRecord      `json:"cargo,omitempty"`
	AI           *AIRecord         `json:"ai,omitempty"`
	Effects      []EffectRecord    `json:"effects,omitempty"`
}

func (e *Entity) ToRecord() EntityRecord {
	rec := EntityRecord{
		ID:           int(e.ID),
		Name:         e.Name,
		Icon:         e.Icon,
		Kind:         e.Kind.String(),
		Position:     e.Position.ToRecord(),
		Facing:       int(e.Facing),
		Profile:      e.ProfileName,
		Flying:       e.Flying,
		Alive:        e.Alive,
		Corpse:       e.Corpse,
		Salvaged:     e.Salvaged,
		ViewDistance: e.ViewDistance,
	}
	if f := e.Fighter; f != nil {
		rec.Fighter = &FighterRecord{HP: f.HP, MaxHP: f.MaxHP, Defense: f.Defense, Power: f.Power}
	}
	if s := e.Sails; s != nil {
		rec.Sails = &SailsRecord{HP: s.HP, MaxHP: s.MaxHP}
	}
	if b := e.Broadsides; b != nil {
		rec.Broadsides = &BroadsidesRecord{Port: weaponRecords(b.Port), Starboard: weaponRecords(b.Starboard)}
	}
	if c := e.Crew; c != nil {
		cr := &CrewRecord{Count: c.Count, Max: c.Max}
		for _, m := range c.Officers {
			cr.Officers = append(cr.Officers, CrewMemberRecord{
				Name: m.Name, Ability: m.Ability, Power: m.Power, Cooldown: m.Cooldown, CooldownMax: m.CooldownMax,
			})
		}
		if len(c.Keys) > 0 {
			cr.Keys = make(map[int]int, len(c.Keys))
			for k, v := range c.Keys {
				cr.Keys[k] = v
			}
		}
		rec.Crew = cr
	}
	if c := e.Cargo; c != nil {
		cr := &CargoRecord{Coins: c.Coins, MaxWeight: c.MaxWeight, MaxVolume: c.MaxVolume}
		if len(c.Items) > 0 {
			cr.Items = make(map[string]int, len(c.Items))
			for k, v := range c.Items {
				cr.Items[k] = v
			}
		}
		rec.Cargo = cr
	}
	if a := e.AI; a != nil {
		rec.AI = &AIRecord{Policy: a.Policy.String(), Target: a.Target.ToRecord(), HasTarget: a.HasTarget, TurnsSinceSeen: a.TurnsSinceSeen}
	}
	for _, eff := range e.Effects {
		rec.Effects = append(rec.Effects, EffectRecord(eff))
	}
	return rec
}

func weaponRecords(ws []*Weapon) []WeaponRecord {
	out := make([]WeaponRecord, 0, len(ws))
	for _, w := range ws {
		out = append(out, WeaponRecord{
			Name: w.Name, HP: w.HP, MaxHP: w.MaxHP, Power: w.Power, Range: w.Range,
			Cooldown: w.Cooldown, CooldownMax: w.CooldownMax,
		})
	}
	return out
}

func parseKind(s string) (Kind, error) {
	for _, k := range []Kind{KindPlayer, KindMonster, KindRival} {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown entity kind %q", s)
}

// FromRecord rebuilds an entity. profiles resolves the stored movement profile name.
func FromRecord(r EntityRecord, profiles *core.ProfileTable) (*Entity, error) {
	kind, err := parseKind(r.Kind)
	if err != nil {
		return nil, err
	}
	e := &Entity{
		ID:           core.EntityID(r.ID),
		Name:         r.Name,
		Icon:         r.Icon,
		Kind:         kind,
		Position:     core.CoordinateFromRecord(r.Position),
		Facing:       core.Direction(r.Facing).Rotate(0),
		ProfileName:  r.Profile,
		Flying:       r.Flying,
		Alive:        r.Alive,
		Corpse:       r.Corpse,
		Salvaged:     r.Salvaged,
		ViewDistance: r.ViewDistance,
		FOV:          core.NewCoordSet(),
	}
	if r.Profile != "" {
		set, err := profiles.Lookup(r.Profile)
		if err != nil {
			return nil, core.WrapEntityError(e.ID, "restore", err)
		}
		e.Profile = set
	}
	if f := r.Fighter; f != nil {
		e.Fighter = &Fighter{HP: f.HP, MaxHP: f.MaxHP, Defense: f.Defense, Power: f.Power}
	}
	if s := r.Sails; s != nil {
		e.Sails = &Sails{HP: s.HP, MaxHP: s.MaxHP}
	}
	if b := r.Broadsides; b != nil {
		e.Broadsides = &Broadsides{}
		for _, side := range []core.Side{core.Port, core.Starboard} {
			src := b.Port
			if side == core.Starboard {
				src = b.Starboard
			}
			for _, wr := range src {
				e.Broadsides.Mount(side, &Weapon{
					Name: wr.Name, Owner: e.ID, HP: wr.HP, MaxHP: wr.MaxHP, Power: wr.Power,
					Range: wr.Range, Cooldown: wr.Cooldown, CooldownMax: wr.CooldownMax,
				})
			}
		}
	}
	if c := r.Crew; c != nil {
		crew := &Crew{Count: c.Count, Max: c.Max, Keys: make(map[int]int, len(c.Keys))}
		for _, m := range c.Officers {
			crew.Officers = append(crew.Officers, &CrewMember{
				Name: m.Name, Ability: m.Ability, Power: m.Power, Cooldown: m.Cooldown, CooldownMax: m.CooldownMax,
			})
		}
		for k, v := range c.Keys {
			crew.Keys[k] = v
		}
		e.Crew = crew
	}
	if c := r.Cargo; c != nil {
		cargo := NewCargo(c.Coins, c.MaxWeight, c.MaxVolume)
		for k, v := range c.Items {
			cargo.Items[k] = v
		}
		e.Cargo = cargo
	}
	if a := r.AI; a != nil {
		policy := PolicyWander
		if a.Policy == PolicyHostile.String() {
			policy = PolicyHostile
		}
		e.AI = &AIState{Policy: policy, Target: core.CoordinateFromRecord(a.Target), HasTarget: a.HasTarget, TurnsSinceSeen: a.TurnsSinceSeen}
	}
	for _, er := range r.Effects {
		e.Effects = append(e.Effects, Effect(er))
	}
	return e, nil
}

// Restore rebuilds a world from records. Records must be in ID order starting at 1.
func Restore(records []EntityRecord, profiles *core.ProfileTable) (*World, error) {
	w := NewWorld()
	for i, r := range records {
		if r.ID != i+1 {
			return nil, fmt.Errorf("record %d has id %d: %w", i, r.ID, core.ErrInvalidEntity)
		}
		e, err := FromRecord(r, profiles)
		if err != nil {
			return nil, err
		}
		w.Spawn(e)
	}
	return w, nil
}

// Records exports every entity in ID order
func (w *World) Records() []EntityRecord {
	out := make([]EntityRecord, 0, len(w.entities))
	for _, e := range w.entities {
		out = append(out, e.ToRecord())
	}
	return out
}
