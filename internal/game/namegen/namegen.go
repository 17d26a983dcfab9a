// Package namegen produces display names for generated buildings.
package namegen

import (
	_ "embed"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/tavern/internal/game/dice"
)

//go:embed words.yaml
var defaultWords []byte

// yamlWords is the YAML representation of a word table file.
type yamlWords struct {
	Names struct {
		Start  []string `yaml:"start"`
		Middle []string `yaml:"middle"`
		End    []string `yaml:"end"`
	} `yaml:"names"`
	Tavern struct {
		Adjectives []string `yaml:"adjectives"`
		Nouns      []string `yaml:"nouns"`
		Places     []string `yaml:"places"`
	} `yaml:"tavern"`
}

// Generator draws names from word tables.
//
// Invariant: every table is non-empty.
type Generator struct {
	words yamlWords
}

// Default returns a Generator over the built-in word tables.
//
// Postcondition: never fails; the embedded tables are validated by tests.
func Default() *Generator {
	g, err := FromBytes(defaultWords)
	if err != nil {
		panic(fmt.Sprintf("namegen: embedded word tables: %v", err))
	}
	return g
}

// FromBytes parses and validates word tables from YAML bytes.
//
// Postcondition: Returns a Generator or an error naming the first empty table
// or blank entry.
func FromBytes(data []byte) (*Generator, error) {
	var w yamlWords
	if err := yaml.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("parsing word tables: %w", err)
	}
	tables := []struct {
		name string
		list []string
	}{
		{"names.start", w.Names.Start},
		{"names.middle", w.Names.Middle},
		{"names.end", w.Names.End},
		{"tavern.adjectives", w.Tavern.Adjectives},
		{"tavern.nouns", w.Tavern.Nouns},
		{"tavern.places", w.Tavern.Places},
	}
	for _, tb := range tables {
		if len(tb.list) == 0 {
			return nil, fmt.Errorf("word table %s is empty", tb.name)
		}
		for i, word := range tb.list {
			if strings.TrimSpace(word) == "" {
				return nil, fmt.Errorf("word table %s entry %d is blank", tb.name, i)
			}
			if !utf8.ValidString(word) {
				return nil, fmt.Errorf("word table %s entry %d is not valid UTF-8", tb.name, i)
			}
		}
	}
	return &Generator{words: w}, nil
}

// Location returns a proper name built from syllables, e.g. "Belarwick".
func (g *Generator) Location(src dice.Source) string {
	var b strings.Builder
	b.WriteString(dice.Pick(src, g.words.Names.Start))
	if dice.Chance(src, 0.5) {
		b.WriteString(dice.Pick(src, g.words.Names.Middle))
	}
	b.WriteString(dice.Pick(src, g.words.Names.End))
	s := b.String()
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// Tavern returns a tavern name in one of three patterns:
// "The <Adjective> <Noun>", "<Location>'s <Place>", or
// "The <Noun> of <Location>".
func (g *Generator) Tavern(src dice.Source) string {
	switch src.Intn(3) {
	case 0:
		return fmt.Sprintf("The %s %s", dice.Pick(src, g.words.Tavern.Adjectives), dice.Pick(src, g.words.Tavern.Nouns))
	case 1:
		return fmt.Sprintf("%s's %s", g.Location(src), dice.Pick(src, g.words.Tavern.Places))
	default:
		return fmt.Sprintf("The %s of %s", dice.Pick(src, g.words.Tavern.Nouns), g.Location(src))
	}
}
