// Package tavern generates the architectural layout of a tavern: rooms grown
// from the entrance across a plot, the walls and doors between them, roofs
// over the result, and furnishings inside.
//
// Generation is a pure function of the plot, the terrain sampler, and the
// random source. It performs no I/O and shares no state between calls, so
// independent generations may run in parallel with separate sources.
package tavern

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/tavern/internal/game/dice"
	"github.com/cory-johannsen/tavern/internal/game/geom"
	"github.com/cory-johannsen/tavern/internal/game/namegen"
	"github.com/cory-johannsen/tavern/internal/game/site"
	"github.com/cory-johannsen/tavern/internal/game/terrain"
)

// ErrPlotTooSmall is returned when the plot cannot hold even the entrance
// room. It signals a site layout bug rather than bad luck.
var ErrPlotTooSmall = errors.New("tavern: plot too small for an entrance room")

// ErrAltitudeOutOfRange is returned when the entrance altitude is not finite
// or lies beyond terrain.MaxAlt.
var ErrAltitudeOutOfRange = errors.New("tavern: entrance altitude out of range")

// idNamespace scopes layout-derived tavern IDs.
var idNamespace = uuid.MustParse("6f1c2d7e-3a52-4b8e-9c1d-5e0f7a4b2c19")

// Generator builds taverns.
type Generator struct {
	logger *zap.Logger
	names  *namegen.Generator
}

// NewGenerator creates a Generator that logs soft failures at debug level.
//
// Precondition: logger must be non-nil.
func NewGenerator(logger *zap.Logger) *Generator {
	return &Generator{logger: logger, names: namegen.Default()}
}

// WithNames returns a copy of g that draws display names from names.
func (g *Generator) WithNames(names *namegen.Generator) *Generator {
	c := *g
	c.names = names
	return &c
}

// Generate lays out a tavern on plot.
//
// Precondition: plot.Validate() == nil; s, land and src must be non-nil.
// Postcondition: Returns a tavern satisfying Validate, ErrPlotTooSmall when
// no entrance fits, or ErrAltitudeOutOfRange when the entrance altitude is
// not finite or beyond terrain.MaxAlt. The result is identical for equal inputs and equal
// source streams.
func (g *Generator) Generate(s *site.Site, plot site.Plot, land terrain.Sampler, src dice.Source) (*Tavern, error) {
	if err := plot.Validate(); err != nil {
		return nil, err
	}
	name := g.names.Tavern(src)

	bounds := plot.WorldBounds(s)
	ibounds := geom.Aabr{Min: bounds.Min.AddScalar(1), Max: bounds.Max.AddScalar(-2)}
	if !ibounds.IsValid() {
		return nil, ErrPlotTooSmall
	}

	doorXY := ibounds.ProjectedPoint(plot.DoorDir.SelectAabrWith(ibounds, s.TileCenterWpos(plot.DoorTile)))
	temperature := land.Temperature(doorXY)
	doorAlt := land.AltApprox(doorXY)
	if plot.Alt != nil {
		doorAlt = float64(*plot.Alt)
	}
	if !terrain.AltInRange(doorAlt) {
		return nil, fmt.Errorf("%w: %g at %v", ErrAltitudeOutOfRange, doorAlt, doorXY)
	}
	doorZ := int(math.Ceil(doorAlt))
	door := doorXY.WithZ(doorZ)

	b := &builder{
		src:         src,
		land:        land,
		logger:      g.logger.With(zap.String("tavern", name)),
		ibounds:     ibounds,
		temperature: temperature,
	}

	entrance, err := b.placeEntrance(plot.DoorDir, &door)
	if err != nil {
		return nil, err
	}
	b.grow(entrance)
	b.logger.Debug("growth finished", zap.Int("rooms", len(b.rooms)))
	b.partitionWalls()
	b.assignRoofs()
	b.computeDetailAreas()
	b.furnish()

	t := &Tavern{
		name:     name,
		rooms:    b.rooms,
		walls:    b.walls,
		roofs:    b.roofs,
		bounds:   bounds,
		doorTile: plot.DoorTile,
		doorWpos: door,
	}
	t.id = layoutID(t)
	return t, nil
}

// layoutID derives a name-based UUID from the serialised layout.
func layoutID(t *Tavern) uuid.UUID {
	data, err := marshalLayout(t)
	if err != nil {
		// Layout types always serialise; fall back to the name alone.
		return uuid.NewSHA1(idNamespace, []byte(t.name))
	}
	return uuid.NewSHA1(idNamespace, data)
}
