package tavern

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/cory-johannsen/tavern/internal/game/geom"
)

// RoomID indexes Tavern.Rooms.
type RoomID int

// NoRoom marks the exterior side of a wall.
const NoRoom RoomID = -1

// WallID indexes Tavern.Walls.
type WallID int

// RoofID indexes Tavern.Roofs.
type RoofID int

// Room is one box of the building.
//
// Invariant: Bounds is never moved or resized after creation.
type Room struct {
	Bounds geom.Aabb `yaml:"bounds"`
	Kind   Kind      `yaml:"kind"`
	// Walls lists the walls on each side of the room, indexed by geom.Dir.
	Walls [4][]WallID `yaml:"walls"`
	// Floors are roofs the room stands on.
	Floors []RoofID `yaml:"floors,omitempty"`
	// Roofs are roofs covering the room.
	Roofs       []RoofID    `yaml:"roofs,omitempty"`
	DetailAreas []geom.Aabr `yaml:"detail_areas,omitempty"`
	Details     []Detail    `yaml:"details,omitempty"`
}

// Footprint returns the horizontal extent of the room.
func (r *Room) Footprint() geom.Aabr { return r.Bounds.XY() }

// IsCoveredByRoof reports whether some roof in r.Roofs contains the room's
// whole footprint.
func (r *Room) IsCoveredByRoof(roofs []Roof) bool {
	fp := r.Footprint()
	for _, id := range r.Roofs {
		if roofs[id].Bounds.ContainsAabr(fp) {
			return true
		}
	}
	return false
}

func (r Room) clone() Room {
	for i := range r.Walls {
		r.Walls[i] = slices.Clone(r.Walls[i])
	}
	r.Floors = slices.Clone(r.Floors)
	r.Roofs = slices.Clone(r.Roofs)
	r.DetailAreas = slices.Clone(r.DetailAreas)
	r.Details = slices.Clone(r.Details)
	return r
}

// DoorRange is an opening in a wall, as inclusive offsets from Wall.Start
// along the wall.
type DoorRange struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// Width returns the number of cells in the opening.
func (d DoorRange) Width() int { return d.Max - d.Min + 1 }

// Wall is a straight segment separating a room from a neighbour or the
// outside.
//
// Invariant: Start and End share the coordinate on ToDir's axis, and Start
// is not past End along ToDir.Orthogonal().
type Wall struct {
	Start   geom.Vec2 `yaml:"start"`
	End     geom.Vec2 `yaml:"end"`
	BaseAlt int       `yaml:"base_alt"`
	TopAlt  int       `yaml:"top_alt"`
	From    RoomID    `yaml:"from"`
	To      RoomID    `yaml:"to"`
	// ToDir points from From towards To.
	ToDir geom.Dir   `yaml:"to_dir"`
	Door  *DoorRange `yaml:"door,omitempty"`
}

// HasDoor reports whether the wall has an opening.
func (w *Wall) HasDoor() bool { return w.Door != nil }

// Len returns the number of cells from Start to End along the wall.
func (w *Wall) Len() int {
	return w.ToDir.Orthogonal().Select(w.End.Sub(w.Start))
}

// DoorBounds returns the world cells of the door opening.
func (w *Wall) DoorBounds() (geom.Aabr, bool) {
	if w.Door == nil {
		return geom.Aabr{}, false
	}
	step := w.ToDir.Orthogonal().ToVec2()
	return geom.Aabr{
		Min: w.Start.Add(step.Scale(w.Door.Min)),
		Max: w.Start.Add(step.Scale(w.Door.Max)),
	}, true
}

func (w Wall) clone() Wall {
	if w.Door != nil {
		d := *w.Door
		w.Door = &d
	}
	return w
}

// RoofKind is the shape of a roof.
type RoofKind uint8

// Roof shapes.
const (
	Flat RoofKind = iota
	FlatBars
	LeanTo
	Gable
	Hip
	Floor
	numRoofKinds
)

var roofKindNames = [numRoofKinds]string{"flat", "flat_bars", "lean_to", "gable", "hip", "floor"}

func (k RoofKind) String() string {
	if k < numRoofKinds {
		return roofKindNames[k]
	}
	return fmt.Sprintf("RoofKind(%d)", uint8(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k RoofKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *RoofKind) UnmarshalText(b []byte) error {
	for i, n := range roofKindNames {
		if string(b) == n {
			*k = RoofKind(i)
			return nil
		}
	}
	return fmt.Errorf("tavern: unknown roof kind %q", string(b))
}

// RoofStyle is a roof shape with its parameters. Dir is meaningful for
// FlatBars, LeanTo and Gable; MaxZ for LeanTo, Gable and Hip.
type RoofStyle struct {
	Kind RoofKind `yaml:"kind"`
	Dir  geom.Dir `yaml:"dir"`
	MaxZ int      `yaml:"max_z"`
}

func (s RoofStyle) String() string {
	switch s.Kind {
	case FlatBars:
		return fmt.Sprintf("%v(%v)", s.Kind, s.Dir)
	case LeanTo, Gable:
		return fmt.Sprintf("%v(%v, %d)", s.Kind, s.Dir, s.MaxZ)
	case Hip:
		return fmt.Sprintf("%v(%d)", s.Kind, s.MaxZ)
	default:
		return s.Kind.String()
	}
}

// Stairs connect a room below a roof to a room standing on it. Dir is the
// run direction.
type Stairs struct {
	Bounds geom.Aabb `yaml:"bounds"`
	Dir    geom.Dir  `yaml:"dir"`
}

// Roof covers one or more rooms.
type Roof struct {
	Bounds geom.Aabr `yaml:"bounds"`
	MinZ   int       `yaml:"min_z"`
	Style  RoofStyle `yaml:"style"`
	Stairs *Stairs   `yaml:"stairs,omitempty"`
}

func (r Roof) clone() Roof {
	if r.Stairs != nil {
		s := *r.Stairs
		r.Stairs = &s
	}
	return r
}

// DetailKind is the type of a furnishing.
type DetailKind uint8

// Furnishing types.
const (
	BarCounter DetailKind = iota
	Table
	StagePlatform
	numDetailKinds
)

var detailKindNames = [numDetailKinds]string{"bar", "table", "stage"}

func (k DetailKind) String() string {
	if k < numDetailKinds {
		return detailKindNames[k]
	}
	return fmt.Sprintf("DetailKind(%d)", uint8(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k DetailKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *DetailKind) UnmarshalText(b []byte) error {
	for i, n := range detailKindNames {
		if string(b) == n {
			*k = DetailKind(i)
			return nil
		}
	}
	return fmt.Errorf("tavern: unknown detail kind %q", string(b))
}

// Detail is a furnishing placed in a detail area. Area is the detail area it
// consumed; Pos and Chairs are set for tables only.
type Detail struct {
	Kind   DetailKind  `yaml:"kind"`
	Area   geom.Aabr   `yaml:"area"`
	Pos    geom.Vec2   `yaml:"pos,omitempty"`
	Chairs geom.DirSet `yaml:"chairs,omitempty"`
}

// Tavern is a generated building. It is immutable; accessors return copies.
type Tavern struct {
	id       uuid.UUID
	name     string
	rooms    []Room
	walls    []Wall
	roofs    []Roof
	bounds   geom.Aabr
	doorTile geom.Vec2
	doorWpos geom.Vec3
}

// ID returns the layout-derived identifier. Equal layouts have equal IDs.
func (t *Tavern) ID() uuid.UUID { return t.id }

// Name returns the display name.
func (t *Tavern) Name() string { return t.name }

// Bounds returns the plot's world bounds.
func (t *Tavern) Bounds() geom.Aabr { return t.bounds }

// DoorTile returns the tile the entrance opens onto.
func (t *Tavern) DoorTile() geom.Vec2 { return t.doorTile }

// DoorWpos returns the world position of the entrance door.
func (t *Tavern) DoorWpos() geom.Vec3 { return t.doorWpos }

// NumRooms returns the number of rooms.
func (t *Tavern) NumRooms() int { return len(t.rooms) }

// Room returns a copy of room id.
//
// Precondition: 0 <= id < NumRooms().
func (t *Tavern) Room(id RoomID) Room { return t.rooms[id].clone() }

// Wall returns a copy of wall id.
func (t *Tavern) Wall(id WallID) Wall { return t.walls[id].clone() }

// Roof returns a copy of roof id.
func (t *Tavern) Roof(id RoofID) Roof { return t.roofs[id].clone() }

// Rooms returns copies of every room in creation order.
func (t *Tavern) Rooms() []Room {
	out := make([]Room, len(t.rooms))
	for i, r := range t.rooms {
		out[i] = r.clone()
	}
	return out
}

// Walls returns copies of every wall in creation order.
func (t *Tavern) Walls() []Wall {
	out := make([]Wall, len(t.walls))
	for i, w := range t.walls {
		out[i] = w.clone()
	}
	return out
}

// Roofs returns copies of every roof in creation order.
func (t *Tavern) Roofs() []Roof {
	out := make([]Roof, len(t.roofs))
	for i, r := range t.roofs {
		out[i] = r.clone()
	}
	return out
}

// WallRooms resolves the rooms on either side of wall id. A side is nil when
// it faces the outside.
func (t *Tavern) WallRooms(id WallID) (from, to *Room) {
	w := t.walls[id]
	if w.From != NoRoom {
		r := t.rooms[w.From].clone()
		from = &r
	}
	if w.To != NoRoom {
		r := t.rooms[w.To].clone()
		to = &r
	}
	return from, to
}
