package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestElevation_Ordering(t *testing.T) {
	sailable := []Elevation{Ocean, Water, Shallows}
	for _, e := range sailable {
		assert.True(t, e.Sailable(), e.String())
	}
	for e := Beach; e <= Volcano; e++ {
		assert.False(t, e.Sailable(), e.String())
	}
	assert.Less(t, Shallows, Beach)
	assert.Less(t, Mountain, Volcano)
}

func TestParseElevation(t *testing.T) {
	for e := Ocean; e <= Volcano; e++ {
		parsed, err := ParseElevation(e.String())
		require.NoError(t, err)
		assert.Equal(t, e, parsed)
	}

	parsed, err := ParseElevation("  Jungle ")
	require.NoError(t, err)
	assert.Equal(t, Jungle, parsed)

	_, err = ParseElevation("lava")
	assert.Error(t, err)
}

func TestElevationSet(t *testing.T) {
	s := NewElevationSet(Ocean, Grass)
	assert.True(t, s.Has(Ocean))
	assert.True(t, s.Has(Grass))
	assert.False(t, s.Has(Water))
	assert.False(t, s.Has(Elevation(42)))
	assert.Equal(t, "{ocean,grass}", s.String())
	assert.Equal(t, []Elevation{Water, Shallows, Beach}, ElevationRange(Water, Beach).Elevations())
	assert.True(t, ElevationSet(0).IsEmpty())
	assert.Equal(t, NewElevationSet(Ocean, Grass, Volcano), s.Union(NewElevationSet(Volcano)))
}

func TestElevationClassesForMovement(t *testing.T) {
	tests := []struct {
		profile  string
		includes []Elevation
		excludes []Elevation
	}{
		{ProfileWater, []Elevation{Ocean, Water, Shallows}, []Elevation{Beach, Grass}},
		{ProfileDeepWater, []Elevation{Ocean, Water}, []Elevation{Shallows, Beach}},
		{ProfileShore, []Elevation{Water, Beach, Grass}, []Elevation{Ocean, Jungle}},
		{ProfileLand, []Elevation{Beach, Grass, Jungle}, []Elevation{Shallows, Mountain}},
		{ProfileHighLand, []Elevation{Grass, Mountain, Volcano}, []Elevation{Beach}},
		{ProfileFly, []Elevation{Ocean, Mountain, Volcano}, nil},
		{ProfileAll, []Elevation{Ocean, Volcano}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.profile, func(t *testing.T) {
			set, err := ElevationClassesForMovement(tt.profile)
			require.NoError(t, err)
			for _, e := range tt.includes {
				assert.True(t, set.Has(e), "%s should include %s", tt.profile, e)
			}
			for _, e := range tt.excludes {
				assert.False(t, set.Has(e), "%s should exclude %s", tt.profile, e)
			}
		})
	}

	_, err := ElevationClassesForMovement("submarine")
	assert.ErrorIs(t, err, ErrUnknownProfile)
}

func TestProfileTable_Overrides(t *testing.T) {
	pt, err := NewProfileTable(map[string][]string{
		"amphibious": {"shallows", "beach", "grass"},
		ProfileWater: {"ocean"},
	})
	require.NoError(t, err)

	amphibious, err := pt.Lookup("amphibious")
	require.NoError(t, err)
	assert.Equal(t, NewElevationSet(Shallows, Beach, Grass), amphibious)

	water, err := pt.Lookup(ProfileWater)
	require.NoError(t, err)
	assert.Equal(t, NewElevationSet(Ocean), water)

	land, err := pt.Lookup(ProfileLand)
	require.NoError(t, err)
	assert.True(t, land.Has(Jungle))
	assert.Contains(t, pt.Names(), "amphibious")

	_, err = NewProfileTable(map[string][]string{"bad": {"magma"}})
	assert.Error(t, err)
	_, err = NewProfileTable(map[string][]string{"empty": {}})
	assert.ErrorIs(t, err, ErrUnknownProfile)
	_, err = DefaultProfiles().Lookup("amphibious")
	assert.ErrorIs(t, err, ErrUnknownProfile)
}

func TestNewGrid(t *testing.T) {
	g := NewGrid(6, 4, Ocean)
	assert.Equal(t, 6, g.W)
	assert.Equal(t, 4, g.H)
	require.Len(t, g.T, 24)
	for i := range g.T {
		assert.Equal(t, Ocean, g.T[i].Elevation)
		assert.False(t, g.T[i].Explored)
		assert.False(t, g.T[i].Mist)
		assert.False(t, g.T[i].IsDecorated())
	}

	idx := g.Idx(5, 3)
	x, y := g.XY(idx)
	assert.Equal(t, 5, x)
	assert.Equal(t, 3, y)
}

func TestGrid_InBoundsAndTiles(t *testing.T) {
	g := NewGrid(5, 5, Ocean)
	tests := []struct {
		name string
		x, y int
		ok   bool
	}{
		{"origin", 0, 0, true},
		{"far corner", 4, 4, true},
		{"negative", -1, 0, false},
		{"past width", 5, 0, false},
		{"past height", 0, 5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.ok, g.InBounds(tt.x, tt.y))
			assert.Equal(t, tt.ok, g.GetTile(tt.x, tt.y) != nil)
			assert.Equal(t, tt.ok, g.At(Coordinate{tt.x, tt.y}) != nil)
		})
	}

	g.At(Coordinate{2, 2}).Decoration = DecorationPort
	assert.True(t, g.T[g.Idx(2, 2)].IsPort())
}

func TestGrid_MovementRules(t *testing.T) {
	g := NewGrid(4, 4, Ocean)
	g.At(Coordinate{1, 1}).Elevation = Beach
	g.At(Coordinate{2, 1}).Elevation = Shallows
	g.At(Coordinate{3, 3}).Elevation = Mountain

	water, _ := ElevationClassesForMovement(ProfileWater)
	land, _ := ElevationClassesForMovement(ProfileLand)

	assert.True(t, g.CanSailTo(0, 0))
	assert.True(t, g.CanSailTo(2, 1))
	assert.False(t, g.CanSailTo(1, 1))
	assert.False(t, g.CanSailTo(-1, 0))

	assert.True(t, g.CanMoveTo(2, 1, water))
	assert.False(t, g.CanMoveTo(1, 1, water))
	assert.True(t, g.CanMoveTo(1, 1, land))
	assert.False(t, g.CanMoveTo(3, 3, land))
	assert.False(t, g.CanMoveTo(4, 0, ElevationRange(Ocean, Volcano)))
}

func TestGrid_NeighborsAtElevations(t *testing.T) {
	g := NewGrid(3, 3, Ocean)
	g.At(Coordinate{1, 2}).Elevation = Grass

	water, _ := ElevationClassesForMovement(ProfileWater)

	// (0,0) has three in-bounds neighbors: up (0,1), upper-right (1,1), lower-right (1,0)
	assert.Equal(t, []Coordinate{{0, 1}, {1, 1}, {1, 0}}, g.NeighborsAtElevations(0, 0, water))

	// centre of an odd column touches (1,2) which is grass
	got := g.NeighborsAtElevations(1, 1, water)
	assert.Len(t, got, 5)
	assert.NotContains(t, got, Coordinate{1, 2})
	assert.Equal(t, []Coordinate{{1, 2}}, g.NeighborsAtElevations(1, 1, NewElevationSet(Grass)))
}

func TestSailScenario_FromOriginFacingUp(t *testing.T) {
	g := NewGrid(5, 5, Ocean)
	next := Neighbor(Coordinate{0, 0}, Up)
	assert.Equal(t, Coordinate{0, 1}, next)
	assert.True(t, g.CanSailTo(next.X, next.Y))
}

func TestGrid_Counters(t *testing.T) {
	g := NewGrid(3, 3, Ocean)
	g.T[0].Mist = true
	g.T[4].Mist = true
	g.T[4].Explored = true
	assert.Equal(t, 2, g.MistTiles())
	assert.Equal(t, 1, g.ExploredTiles())
}
