package rules

import (
	"github.com/mitchelldurbincs/Archipelago/internal/game/core"
)

// SplitDamage divides total power evenly between n targets, rounding down.
// Zero targets is rejected before anything is computed.
func SplitDamage(power, n int) (int, error) {
	if n <= 0 {
		return 0, core.NewImpossible(core.ReasonNoTarget, "no targets in range")
	}
	if power <= 0 {
		return 0, nil
	}
	return power / n, nil
}

// DamageAfterDefense subtracts a target's defense from its share, never below zero
func DamageAfterDefense(share, defense int) int {
	return max(0, share-defense)
}

// ArrowAmmo is the number of arrows a crew can loose in one volley
func ArrowAmmo(crew, crewPerArrow int) int {
	if crewPerArrow <= 0 || crew <= 0 {
		return 0
	}
	return crew / crewPerArrow
}

// GunsManned is how many of the available guns the crew can work at once
func GunsManned(crew, crewPerGun, available int) int {
	if crewPerGun <= 0 || crew <= 0 {
		return 0
	}
	return min(available, crew/crewPerGun)
}

// BroadsideArc returns the two hex directions a side's guns bear on.
// Starboard is the right-hand pair, port the left-hand pair.
func BroadsideArc(facing core.Direction, side core.Side) [2]core.Direction {
	if side == core.Starboard {
		return [2]core.Direction{facing.Rotate(1), facing.Rotate(2)}
	}
	return [2]core.Direction{facing.Rotate(4), facing.Rotate(5)}
}

// InArc reports whether target lies off the given side of a ship at from.
// A target on the seam between an arc direction and its neighbor counts as
// in the arc, so port and starboard mirror each other.
func InArc(from core.Coordinate, facing core.Direction, side core.Side, target core.Coordinate) bool {
	arc := BroadsideArc(facing, side)
	for _, bearing := range core.BearingsTo(from, target) {
		if bearing == arc[0] || bearing == arc[1] {
			return true
		}
	}
	return false
}
