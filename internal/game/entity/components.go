package entity

import (
	"fmt"

	"github.com/mitchelldurbincs/Archipelago/internal/game/core"
)

// Fighter is the hull of a ship or the body of a monster.
type Fighter struct {
	HP      int
	MaxHP   int
	Defense int
	Power   int
}

// Damage lowers HP by n, clamped at zero. died is true only on the hit that
// takes HP from positive to zero.
func (f *Fighter) Damage(n int) (dealt int, died bool) {
	dealt, f.HP = clampDown(f.HP, n)
	return dealt, dealt > 0 && f.HP == 0
}

// Heal raises HP by n, clamped at MaxHP
func (f *Fighter) Heal(n int) int {
	var healed int
	healed, f.HP = clampUp(f.HP, f.MaxHP, n)
	return healed
}

// Sails drive movement; a ship with no sail HP cannot move.
type Sails struct {
	HP    int
	MaxHP int
}

func (s *Sails) Damage(n int) int {
	dealt, hp := clampDown(s.HP, n)
	s.HP = hp
	return dealt
}

func (s *Sails) Heal(n int) int {
	var healed int
	healed, s.HP = clampUp(s.HP, s.MaxHP, n)
	return healed
}

// Weapon is one gun mounted in a broadside slot. Owner is a handle, not a pointer.
type Weapon struct {
	Name        string
	Owner       core.EntityID
	Side        core.Side
	Slot        int
	HP          int
	MaxHP       int
	Power       int
	Range       int
	Cooldown    int
	CooldownMax int
}

// Active weapons are loaded and not broken
func (w *Weapon) Active() bool {
	return w.Cooldown == 0 && w.HP > 0
}

// Fire puts the weapon on cooldown. A weapon already cooling down keeps its counter.
func (w *Weapon) Fire() {
	if w.Cooldown == 0 {
		w.Cooldown = w.CooldownMax
	}
}

// Tick counts the cooldown down by one, floor 0
func (w *Weapon) Tick() {
	if w.Cooldown > 0 {
		w.Cooldown--
	}
}

func (w *Weapon) Damage(n int) int {
	dealt, hp := clampDown(w.HP, n)
	w.HP = hp
	return dealt
}

func (w *Weapon) Heal(n int) int {
	var healed int
	healed, w.HP = clampUp(w.HP, w.MaxHP, n)
	return healed
}

// Broadsides holds the guns mounted on each side of a ship
type Broadsides struct {
	Port      []*Weapon
	Starboard []*Weapon
}

// Mount appends a weapon to a side and records its slot
func (b *Broadsides) Mount(side core.Side, w *Weapon) {
	w.Side = side
	if side == core.Port {
		w.Slot = len(b.Port)
		b.Port = append(b.Port, w)
		return
	}
	w.Slot = len(b.Starboard)
	b.Starboard = append(b.Starboard, w)
}

// Side returns every weapon on the given side
func (b *Broadsides) Side(side core.Side) []*Weapon {
	if side == core.Port {
		return b.Port
	}
	return b.Starboard
}

// Active returns the weapons on a side that can fire this turn
func (b *Broadsides) Active(side core.Side) []*Weapon {
	var out []*Weapon
	for _, w := range b.Side(side) {
		if w.Active() {
			out = append(out, w)
		}
	}
	return out
}

// Weapon looks up a slot on a side
func (b *Broadsides) Weapon(side core.Side, slot int) (*Weapon, bool) {
	ws := b.Side(side)
	if slot < 0 || slot >= len(ws) {
		return nil, false
	}
	return ws[slot], true
}

// All returns port then starboard weapons
func (b *Broadsides) All() []*Weapon {
	out := make([]*Weapon, 0, len(b.Port)+len(b.Starboard))
	out = append(out, b.Port...)
	return append(out, b.Starboard...)
}

func (b *Broadsides) Tick() {
	for _, w := range b.All() {
		w.Tick()
	}
}

// CrewMember is an officer with a triggered ability
type CrewMember struct {
	Name        string
	Ability     string
	Power       int
	Cooldown    int
	CooldownMax int
}

func (m *CrewMember) Ready() bool { return m.Cooldown == 0 }

// Crew counts the hands aboard and the officers bound to action keys.
type Crew struct {
	Count    int
	Max      int
	Officers []*CrewMember
	Keys     map[int]int // action key -> officer index
}

// Damage kills Count crew, clamped at zero. died is true only when the last hand falls.
func (c *Crew) Damage(n int) (dealt int, died bool) {
	dealt, c.Count = clampDown(c.Count, n)
	return dealt, dealt > 0 && c.Count == 0
}

func (c *Crew) Heal(n int) int {
	var healed int
	healed, c.Count = clampUp(c.Count, c.Max, n)
	return healed
}

// Assign binds officer member to key, replacing any previous binding for that key
func (c *Crew) Assign(member, key int) error {
	if member < 0 || member >= len(c.Officers) {
		return fmt.Errorf("no officer %d aboard", member)
	}
	if c.Keys == nil {
		c.Keys = make(map[int]int)
	}
	for k, m := range c.Keys {
		if m == member {
			delete(c.Keys, k)
		}
	}
	c.Keys[key] = member
	return nil
}

// Officer returns the officer bound to key
func (c *Crew) Officer(key int) (*CrewMember, bool) {
	idx, ok := c.Keys[key]
	if !ok || idx < 0 || idx >= len(c.Officers) {
		return nil, false
	}
	return c.Officers[idx], true
}

func (c *Crew) Tick() {
	for _, m := range c.Officers {
		if m.Cooldown > 0 {
			m.Cooldown--
		}
	}
}

// Cargo item names with engine meaning
const (
	ItemArrows      = "arrows"
	ItemCannonballs = "cannonballs"
	ItemWood        = "wood"
)

// Cargo is the hold of a ship or the loot of a corpse.
type Cargo struct {
	Coins     int
	Items     map[string]int
	MaxWeight int
	MaxVolume int
}

func NewCargo(coins, maxWeight, maxVolume int) *Cargo {
	return &Cargo{Coins: coins, Items: make(map[string]int), MaxWeight: maxWeight, MaxVolume: maxVolume}
}

func (c *Cargo) Count(item string) int { return c.Items[item] }

func (c *Cargo) Add(item string, n int) {
	if n <= 0 {
		return
	}
	if c.Items == nil {
		c.Items = make(map[string]int)
	}
	c.Items[item] += n
}

// Remove takes n of item out of the hold
func (c *Cargo) Remove(item string, n int) error {
	have := c.Items[item]
	if n > have {
		return fmt.Errorf("need %d %s, have %d", n, item, have)
	}
	if have == n {
		delete(c.Items, item)
		return nil
	}
	c.Items[item] = have - n
	return nil
}

// Totals sums weight and volume using the provided per-item measures
func (c *Cargo) Totals(measure func(item string) (weight, volume int)) (weight, volume int) {
	for item, n := range c.Items {
		w, v := measure(item)
		weight += w * n
		volume += v * n
	}
	return weight, volume
}

// Empty reports whether there is nothing left to take
func (c *Cargo) Empty() bool {
	return c.Coins == 0 && len(c.Items) == 0
}

// Effect is a timed status on an entity
type Effect struct {
	Name          string
	TurnsLeft     int
	ExtraView     int
	ExtraMistView int
}

func clampDown(hp, n int) (dealt, after int) {
	if n <= 0 || hp <= 0 {
		return 0, max(hp, 0)
	}
	dealt = min(n, hp)
	return dealt, hp - dealt
}

func clampUp(hp, maxHP, n int) (healed, after int) {
	if n <= 0 || hp >= maxHP {
		return 0, min(hp, maxHP)
	}
	healed = min(n, maxHP-hp)
	return healed, hp + healed
}
