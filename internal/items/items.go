// Package items loads the item and weapon statistics table used for trade,
// cargo limits and fitting out ships.
package items

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownItem   = errors.New("unknown item")
	ErrUnknownWeapon = errors.New("unknown weapon")
)

// Stats describes one tradeable item
type Stats struct {
	Name   string `yaml:"-"`
	Kind   string `yaml:"kind"`
	Weight int    `yaml:"weight"`
	Volume int    `yaml:"volume"`
	Buy    int    `yaml:"buy"`
	Sell   int    `yaml:"sell"`
}

// WeaponStats is the template a mounted weapon is built from
type WeaponStats struct {
	Name     string `yaml:"-"`
	Power    int    `yaml:"power"`
	Range    int    `yaml:"range"`
	Cooldown int    `yaml:"cooldown"`
	HP       int    `yaml:"hp"`
	Price    int    `yaml:"price"`
}

// Table is an immutable lookup of item and weapon statistics
type Table struct {
	items   map[string]Stats
	weapons map[string]WeaponStats
}

type rawTable struct {
	Items   map[string]Stats       `yaml:"items"`
	Weapons map[string]WeaponStats `yaml:"weapons"`
}

// Parse reads a table from YAML
func Parse(data []byte) (*Table, error) {
	var raw rawTable
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse item table: %w", err)
	}

	t := &Table{items: make(map[string]Stats), weapons: make(map[string]WeaponStats)}
	for name, s := range raw.Items {
		if s.Weight < 0 || s.Volume < 0 || s.Buy < 0 || s.Sell < 0 {
			return nil, fmt.Errorf("item %q: weight, volume and prices must be non-negative", name)
		}
		if s.Sell > s.Buy {
			return nil, fmt.Errorf("item %q: sell price %d exceeds buy price %d", name, s.Sell, s.Buy)
		}
		s.Name = name
		t.items[name] = s
	}
	for name, w := range raw.Weapons {
		if w.Power < 0 || w.Range < 1 || w.Cooldown < 0 || w.HP < 1 {
			return nil, fmt.Errorf("weapon %q: needs power >= 0, range >= 1, cooldown >= 0, hp >= 1", name)
		}
		w.Name = name
		t.weapons[name] = w
	}
	return t, nil
}

// Load reads a table from a YAML file. An empty path yields the built-in table.
func Load(path string) (*Table, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read item table: %w", err)
	}
	return Parse(data)
}

// Default returns the built-in table
func Default() *Table {
	t, err := Parse([]byte(defaultTable))
	if err != nil {
		panic("built-in item table is invalid: " + err.Error())
	}
	return t
}

// Get looks up an item
func (t *Table) Get(name string) (Stats, error) {
	s, ok := t.items[name]
	if !ok {
		return Stats{}, fmt.Errorf("%w: %q", ErrUnknownItem, name)
	}
	return s, nil
}

// Weapon looks up a weapon template
func (t *Table) Weapon(name string) (WeaponStats, error) {
	w, ok := t.weapons[name]
	if !ok {
		return WeaponStats{}, fmt.Errorf("%w: %q", ErrUnknownWeapon, name)
	}
	return w, nil
}

// Measure returns weight and volume per unit. Unknown items weigh nothing.
// Its signature matches entity.Cargo.Totals.
func (t *Table) Measure(name string) (weight, volume int) {
	s := t.items[name]
	return s.Weight, s.Volume
}

// Names lists the tradeable items in stable order
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.items))
	for n := range t.items {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// WeaponNames lists the weapon templates in stable order
func (t *Table) WeaponNames() []string {
	names := make([]string, 0, len(t.weapons))
	for n := range t.weapons {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

const defaultTable = `
items:
  arrows:
    kind: ammo
    weight: 1
    volume: 1
    buy: 2
    sell: 1
  cannonballs:
    kind: ammo
    weight: 4
    volume: 2
    buy: 6
    sell: 3
  wood:
    kind: material
    weight: 3
    volume: 3
    buy: 4
    sell: 2
  rum:
    kind: trade
    weight: 2
    volume: 2
    buy: 12
    sell: 8
  spice:
    kind: trade
    weight: 1
    volume: 1
    buy: 20
    sell: 14
  pearls:
    kind: trade
    weight: 0
    volume: 0
    buy: 60
    sell: 45
weapons:
  carronade:
    power: 8
    range: 2
    cooldown: 3
    hp: 10
    price: 120
  long_gun:
    power: 5
    range: 4
    cooldown: 4
    hp: 8
    price: 150
  ballista:
    power: 4
    range: 3
    cooldown: 2
    hp: 6
    price: 80
`
