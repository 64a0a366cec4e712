// Package board holds the map primitives: axial hex coordinates, terrain,
// sites, and the base movement cost table.
package board

import "fmt"

// Coord is an axial hex coordinate.
type Coord struct {
	Q int `json:"q"`
	R int `json:"r"`
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Q, c.R)
}

// directions lists the six axial neighbor offsets, clockwise from east.
var directions = [6]Coord{
	{Q: 1, R: 0},
	{Q: 1, R: -1},
	{Q: 0, R: -1},
	{Q: -1, R: 0},
	{Q: -1, R: 1},
	{Q: 0, R: 1},
}

// Neighbors returns the six adjacent coordinates.
func (c Coord) Neighbors() []Coord {
	out := make([]Coord, 0, len(directions))
	for _, d := range directions {
		out = append(out, Coord{Q: c.Q + d.Q, R: c.R + d.R})
	}
	return out
}

// Adjacent reports whether a and b share an edge.
func Adjacent(a, b Coord) bool {
	for _, d := range directions {
		if a.Q+d.Q == b.Q && a.R+d.R == b.R {
			return true
		}
	}
	return false
}

// Terrain identifies a hex terrain type.
type Terrain string

const (
	TerrainPlains    Terrain = "plains"
	TerrainHills     Terrain = "hills"
	TerrainForest    Terrain = "forest"
	TerrainWasteland Terrain = "wasteland"
	TerrainDesert    Terrain = "desert"
	TerrainSwamp     Terrain = "swamp"
	TerrainLake      Terrain = "lake"
	TerrainMountain  Terrain = "mountain"
	TerrainCity      Terrain = "city"
)

// TimeOfDay flips every round.
type TimeOfDay string

const (
	Day   TimeOfDay = "day"
	Night TimeOfDay = "night"
)

// Other returns the opposite time of day.
func (t TimeOfDay) Other() TimeOfDay {
	if t == Night {
		return Day
	}
	return Night
}

// Impassable is the cost reported for terrain that cannot be entered.
const Impassable = -1

type costs struct {
	day   int
	night int
}

var baseCosts = map[Terrain]costs{
	TerrainPlains:    {day: 2, night: 2},
	TerrainHills:     {day: 3, night: 3},
	TerrainForest:    {day: 3, night: 5},
	TerrainWasteland: {day: 4, night: 4},
	TerrainDesert:    {day: 5, night: 3},
	TerrainSwamp:     {day: 5, night: 5},
	TerrainCity:      {day: 2, night: 2},
	TerrainLake:      {day: Impassable, night: Impassable},
	TerrainMountain:  {day: Impassable, night: Impassable},
}

// BaseCost returns the unmodified movement cost of terrain, or Impassable.
// Unknown terrain is impassable.
func BaseCost(t Terrain, tod TimeOfDay) int {
	c, ok := baseCosts[t]
	if !ok {
		return Impassable
	}
	if tod == Night {
		return c.night
	}
	return c.day
}

// Passable reports whether terrain can ever be entered.
func Passable(t Terrain) bool {
	return BaseCost(t, Day) != Impassable
}

// SiteKind identifies what stands on a hex.
type SiteKind string

const (
	SiteNone       SiteKind = ""
	SiteVillage    SiteKind = "village"
	SiteKeep       SiteKind = "keep"
	SiteMonsterDen SiteKind = "monster_den"
)

// Recruits reports whether units can be recruited at the site.
func (s SiteKind) Recruits() bool {
	return s == SiteVillage || s == SiteKeep
}

// Hex is one revealed map space.
type Hex struct {
	Coord   Coord    `json:"coord"`
	Terrain Terrain  `json:"terrain"`
	Site    SiteKind `json:"site,omitempty"`
	// EnemyPile names the enemy pile drawn from when combat starts here.
	EnemyPile string `json:"enemy_pile,omitempty"`
	// Conquered is set once the site's defenders are defeated.
	Conquered bool `json:"conquered,omitempty"`
}
