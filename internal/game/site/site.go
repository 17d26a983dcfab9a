// Package site maps the settlement tile grid onto world coordinates and
// describes the plot reserved for a single building.
package site

import (
	"fmt"

	"github.com/cory-johannsen/tavern/internal/game/geom"
)

// Site anchors a tile grid in the world.
//
// Invariant: TileSize > 0.
type Site struct {
	Origin   geom.Vec2 `yaml:"origin"`
	TileSize int       `yaml:"tile_size"`
}

// New creates a Site.
//
// Precondition: tileSize > 0.
// Postcondition: Returns an error when tileSize is not positive.
func New(origin geom.Vec2, tileSize int) (*Site, error) {
	if tileSize <= 0 {
		return nil, fmt.Errorf("site: tile size must be positive, got %d", tileSize)
	}
	return &Site{Origin: origin, TileSize: tileSize}, nil
}

// TileWpos returns the world position of the minimum corner of tile.
func (s *Site) TileWpos(tile geom.Vec2) geom.Vec2 {
	return s.Origin.Add(tile.Scale(s.TileSize))
}

// TileCenterWpos returns the world position of the center of tile.
func (s *Site) TileCenterWpos(tile geom.Vec2) geom.Vec2 {
	return s.TileWpos(tile).Add(geom.Broadcast(s.TileSize / 2))
}

// WposTile returns the tile containing wpos.
func (s *Site) WposTile(wpos geom.Vec2) geom.Vec2 {
	d := wpos.Sub(s.Origin)
	return geom.V2(floorDiv(d.X, s.TileSize), floorDiv(d.Y, s.TileSize))
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// Plot is the tile area reserved for one building plus its entrance.
type Plot struct {
	// Tiles is the inclusive tile range of the plot.
	Tiles geom.Aabr `yaml:"tiles"`
	// DoorTile is the tile the entrance opens onto, usually just outside
	// Tiles.
	DoorTile geom.Vec2 `yaml:"door_tile"`
	// DoorDir points from the building out through the entrance.
	DoorDir geom.Dir `yaml:"door_dir"`
	// Alt fixes the entrance altitude; nil samples the terrain.
	Alt *int `yaml:"alt,omitempty"`
}

// Validate checks the plot is well formed.
//
// Postcondition: Returns nil when Tiles is valid.
func (p Plot) Validate() error {
	if !p.Tiles.IsValid() {
		return fmt.Errorf("site: plot tiles %v are not a valid range", p.Tiles)
	}
	if p.DoorDir > geom.NegY {
		return fmt.Errorf("site: invalid door direction %d", p.DoorDir)
	}
	return nil
}

// WorldBounds returns the world rectangle spanned by the plot's tile minimum
// corners.
func (p Plot) WorldBounds(s *Site) geom.Aabr {
	return geom.Aabr{Min: s.TileWpos(p.Tiles.Min), Max: s.TileWpos(p.Tiles.Max)}
}
