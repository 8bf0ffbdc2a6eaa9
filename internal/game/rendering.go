package game

import (
	"fmt"
	"strings"

	"github.com/mitchelldurbincs/Archipelago/internal/game/core"
	"github.com/mitchelldurbincs/Archipelago/internal/game/entity"
)

// This file contains all map rendering functionality for the game engine.

// ANSI color codes
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorPurple = "\033[35m"
	ColorCyan   = "\033[36m"
	ColorWhite  = "\033[37m"
	ColorGray   = "\033[90m"
)

var elevationGlyphs = [core.NumElevations]struct {
	color  string
	symbol string
}{
	core.Ocean:    {ColorBlue, "≈"},
	core.Water:    {ColorBlue, "~"},
	core.Shallows: {ColorCyan, "-"},
	core.Beach:    {ColorYellow, "."},
	core.Grass:    {ColorGreen, "\""},
	core.Jungle:   {ColorGreen, "♣"},
	core.Mountain: {ColorWhite, "▲"},
	core.Volcano:  {ColorRed, "^"},
}

var decorationGlyphs = map[core.Decoration]string{
	core.DecorationPort:      "P",
	core.DecorationMinefield: "*",
	core.DecorationReef:      "%",
	core.DecorationWreck:     "w",
}

// Render draws the map as the player knows it. Rows are printed top down,
// so the highest y comes first. Tiles in sight show what is on them, explored
// tiles outside sight show terrain only, and unexplored tiles are blank.
// color toggles ANSI escapes.
func (e *Engine) Render(color bool) string {
	grid := e.gs.Grid
	player := e.gs.Player()

	var sb strings.Builder
	sb.Grow((grid.W*12 + 8) * (grid.H + 4))

	sb.WriteString("    ")
	for x := 0; x < grid.W; x++ {
		fmt.Fprintf(&sb, "%2d", x%100)
	}
	sb.WriteString("\n")

	for y := grid.H - 1; y >= 0; y-- {
		fmt.Fprintf(&sb, "%3d ", y)
		for x := 0; x < grid.W; x++ {
			c := core.NewCoordinate(x, y)
			col, sym := e.tileGlyph(c, player)
			if color && col != "" {
				sb.WriteString(col)
				sb.WriteString(sym)
				sb.WriteString(ColorReset)
			} else {
				sb.WriteString(sym)
			}
			sb.WriteString(" ")
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(e.statusLine())
	sb.WriteString("\n")
	return sb.String()
}

// tileGlyph picks what to show for one tile: a visible entity, then a
// decoration, then mist, then terrain
func (e *Engine) tileGlyph(c core.Coordinate, player *entity.Entity) (string, string) {
	tile := e.gs.Grid.At(c)
	visible := player == nil || player.Sees(c)

	if !visible && !tile.Explored {
		return "", " "
	}

	if visible {
		if ent := e.gs.World.At(c); ent != nil {
			return entityColor(ent), ent.Icon
		}
		for _, corpse := range e.gs.World.CorpsesNear(c, 0) {
			if !corpse.Salvaged {
				return ColorGray, "x"
			}
		}
		if tile.Mist {
			return ColorWhite, "░"
		}
	}

	if sym, ok := decorationGlyphs[tile.Decoration]; ok && (visible || tile.IsPort()) {
		return ColorPurple, sym
	}

	g := elevationGlyphs[tile.Elevation]
	if !visible {
		return ColorGray, g.symbol
	}
	return g.color, g.symbol
}

func entityColor(ent *entity.Entity) string {
	switch {
	case ent.IsPlayer():
		return ColorYellow
	case ent.Kind == entity.KindMonster:
		return ColorRed
	default:
		return ColorPurple
	}
}

// statusLine summarizes the player's ship and the weather
func (e *Engine) statusLine() string {
	p := e.gs.Player()
	if p == nil {
		return fmt.Sprintf("turn %d  %s", e.gs.Turn, e.stateMachine.CurrentPhase())
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "turn %d  %s  pos %s facing %s", e.gs.Turn, e.stateMachine.CurrentPhase(), p.Position, p.Facing)
	if p.Fighter != nil {
		fmt.Fprintf(&sb, "  hull %d/%d", p.Fighter.HP, p.Fighter.MaxHP)
	}
	if p.Sails != nil {
		fmt.Fprintf(&sb, "  sails %d/%d", p.Sails.HP, p.Sails.MaxHP)
	}
	if p.Crew != nil {
		fmt.Fprintf(&sb, "  crew %d/%d", p.Crew.Count, p.Crew.Max)
	}
	if p.Cargo != nil {
		fmt.Fprintf(&sb, "  coins %d", p.Cargo.Coins)
	}
	w := e.gs.Weather
	fmt.Fprintf(&sb, "  %s, wind %s force %d", w.Condition, w.WindDirection, w.WindForce)
	return sb.String()
}
