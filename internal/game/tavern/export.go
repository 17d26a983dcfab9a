package tavern

import (
	"fmt"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/tavern/internal/game/geom"
)

// yamlTavernFile is the top-level YAML structure of an exported tavern.
type yamlTavernFile struct {
	Tavern yamlTavern `yaml:"tavern"`
}

// yamlTavern is the YAML representation of a tavern.
type yamlTavern struct {
	ID       string    `yaml:"id,omitempty"`
	Name     string    `yaml:"name"`
	Bounds   geom.Aabr `yaml:"bounds"`
	DoorTile geom.Vec2 `yaml:"door_tile"`
	DoorWpos geom.Vec3 `yaml:"door_wpos"`
	Rooms    []Room    `yaml:"rooms"`
	Walls    []Wall    `yaml:"walls"`
	Roofs    []Roof    `yaml:"roofs"`
}

func toYAML(t *Tavern, withID bool) yamlTavernFile {
	y := yamlTavern{
		Name:     t.name,
		Bounds:   t.bounds,
		DoorTile: t.doorTile,
		DoorWpos: t.doorWpos,
		Rooms:    t.rooms,
		Walls:    t.walls,
		Roofs:    t.roofs,
	}
	if withID {
		y.ID = t.id.String()
	}
	return yamlTavernFile{Tavern: y}
}

// marshalLayout serialises everything but the ID.
func marshalLayout(t *Tavern) ([]byte, error) {
	return yaml.Marshal(toYAML(t, false))
}

// MarshalYAML serialises t for the external renderer.
//
// Postcondition: UnmarshalYAML of the result yields an equal tavern.
func MarshalYAML(t *Tavern) ([]byte, error) {
	data, err := yaml.Marshal(toYAML(t, true))
	if err != nil {
		return nil, fmt.Errorf("marshalling tavern %q: %w", t.name, err)
	}
	return data, nil
}

// UnmarshalYAML parses and validates a tavern exported by MarshalYAML.
//
// Postcondition: Returns a validated Tavern or a non-nil error.
func UnmarshalYAML(data []byte) (*Tavern, error) {
	var file yamlTavernFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing tavern YAML: %w", err)
	}
	y := file.Tavern
	t := &Tavern{
		name:     y.Name,
		rooms:    y.Rooms,
		walls:    y.Walls,
		roofs:    y.Roofs,
		bounds:   y.Bounds,
		doorTile: y.DoorTile,
		doorWpos: y.DoorWpos,
	}
	if y.ID != "" {
		id, err := uuid.Parse(y.ID)
		if err != nil {
			return nil, fmt.Errorf("parsing tavern id: %w", err)
		}
		t.id = id
	} else {
		t.id = layoutID(t)
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("validating tavern: %w", err)
	}
	return t, nil
}
