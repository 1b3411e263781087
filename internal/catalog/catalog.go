// Package catalog loads the card pool and deck lists from YAML. Card
// entries carry authored ability records; compiling them into effect
// definitions happens at load time so the engine only ever sees
// structured effects.
package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/peterkuimelis/vicegrid/internal/ability"
	"github.com/peterkuimelis/vicegrid/internal/engine"
)

//go:embed cards.yaml
var defaultCards []byte

//go:embed decks.yaml
var defaultDecks []byte

// CardFile is the top-level structure of a card catalog file.
type CardFile struct {
	Cards []CardEntry `yaml:"cards"`
}

// CardEntry is one card as authored: stats plus ability records.
type CardEntry struct {
	ID        string           `yaml:"id"`
	Name      string           `yaml:"name"`
	Type      engine.CardType  `yaml:"type"`
	Rarity    string           `yaml:"rarity,omitempty"`
	Level     int              `yaml:"level,omitempty"`
	Attack    int              `yaml:"attack,omitempty"`
	Defense   int              `yaml:"defense,omitempty"`
	Spell     string           `yaml:"spell,omitempty"`
	Abilities []ability.Record `yaml:"abilities,omitempty"`
}

// DeckFile is the top-level structure of a deck list file.
type DeckFile struct {
	Decks []DeckEntry `yaml:"decks"`
}

// DeckEntry is a named deck built from catalog card ids.
type DeckEntry struct {
	Name  string     `yaml:"name"`
	Cards []DeckSlot `yaml:"cards"`
}

// DeckSlot is a card id and how many copies the deck runs.
type DeckSlot struct {
	ID    string `yaml:"id"`
	Count int    `yaml:"count"`
}

// Parse builds a registry from raw catalog YAML.
func Parse(data []byte) (engine.Registry, error) {
	var cf CardFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parse card YAML: %w", err)
	}

	reg := make(engine.Registry, len(cf.Cards))
	for _, entry := range cf.Cards {
		if entry.ID == "" {
			return nil, fmt.Errorf("card %q has no id", entry.Name)
		}
		if _, dup := reg[entry.ID]; dup {
			return nil, fmt.Errorf("duplicate card id %q", entry.ID)
		}
		def := &engine.CardDefinition{
			ID:      entry.ID,
			Name:    entry.Name,
			Type:    entry.Type,
			Rarity:  entry.Rarity,
			Level:   entry.Level,
			Attack:  entry.Attack,
			Defense: entry.Defense,
			Spell:   engine.SpellSubtype(entry.Spell),
			Effects: ability.CompileAll(entry.Abilities),
		}
		reg[entry.ID] = def
	}
	return reg, nil
}

// Load reads a catalog file from disk.
func Load(path string) (engine.Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Default returns the registry compiled from the embedded card pool.
func Default() (engine.Registry, error) {
	return Parse(defaultCards)
}

// ParseDecks builds deck lists (definition id slices, duplicated per
// count) from raw deck YAML, validating every id against the registry.
func ParseDecks(data []byte, reg engine.Registry) (map[string][]string, error) {
	var df DeckFile
	if err := yaml.Unmarshal(data, &df); err != nil {
		return nil, fmt.Errorf("parse deck YAML: %w", err)
	}

	decks := make(map[string][]string, len(df.Decks))
	for _, deck := range df.Decks {
		var cards []string
		for _, slot := range deck.Cards {
			if _, ok := reg[slot.ID]; !ok {
				return nil, fmt.Errorf("deck %q references unknown card %q", deck.Name, slot.ID)
			}
			for i := 0; i < slot.Count; i++ {
				cards = append(cards, slot.ID)
			}
		}
		decks[deck.Name] = cards
	}
	return decks, nil
}

// LoadDecks reads a deck list file from disk.
func LoadDecks(path string, reg engine.Registry) (map[string][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseDecks(data, reg)
}

// DefaultDecks returns the embedded deck lists.
func DefaultDecks(reg engine.Registry) (map[string][]string, error) {
	return ParseDecks(defaultDecks, reg)
}

// DeckByName returns the named deck or an error listing what exists.
func DeckByName(decks map[string][]string, name string) ([]string, error) {
	deck, ok := decks[name]
	if !ok {
		names := make([]string, 0, len(decks))
		for n := range decks {
			names = append(names, n)
		}
		return nil, fmt.Errorf("deck %q not found (have %v)", name, names)
	}
	return deck, nil
}
