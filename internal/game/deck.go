package game

import (
	_ "embed"
	"fmt"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed data/decks.yaml
var defaultDecksYAML []byte

// StarterDeckSize is the size of a generated starter deck.
const StarterDeckSize = 10

// DeckFile represents the top-level YAML structure.
type DeckFile struct {
	Decks []DeckEntry `yaml:"decks"`
}

// DeckEntry represents a single deck in the YAML file.
type DeckEntry struct {
	Name  string      `yaml:"name"`
	Hero  string      `yaml:"hero"`
	Cards []CardEntry `yaml:"cards"`
}

// CardEntry represents a card and its count in a deck.
type CardEntry struct {
	Name  string `yaml:"name"`
	Count int    `yaml:"count"`
}

// Deck is a resolved deck: a hero and its card definitions in list order.
type Deck struct {
	Name  string
	Hero  HeroID
	Cards []*Card
}

// ParseDecks parses YAML deck data against a catalog.
func ParseDecks(data []byte, cat *Catalog) ([]Deck, error) {
	var df DeckFile
	if err := yaml.Unmarshal(data, &df); err != nil {
		return nil, fmt.Errorf("parse deck YAML: %w", err)
	}

	decks := make([]Deck, 0, len(df.Decks))
	for _, entry := range df.Decks {
		deck, err := resolveDeck(entry, cat)
		if err != nil {
			return nil, err
		}
		decks = append(decks, deck)
	}
	return decks, nil
}

// ParseDeckFile parses a YAML deck file and returns a map of deck name → deck.
func ParseDeckFile(path string, cat *Catalog) (map[string]Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	decks, err := ParseDecks(data, cat)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]Deck, len(decks))
	for _, d := range decks {
		byName[d.Name] = d
	}
	return byName, nil
}

// DeckByNumber returns the Nth deck (1-indexed) from the deck file.
// An empty path selects the built-in decks.
func DeckByNumber(path string, cat *Catalog, n int) (Deck, error) {
	data := defaultDecksYAML
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return Deck{}, err
		}
	}
	decks, err := ParseDecks(data, cat)
	if err != nil {
		return Deck{}, err
	}
	if n < 1 || n > len(decks) {
		return Deck{}, fmt.Errorf("deck %d not found (have %d decks)", n, len(decks))
	}
	return decks[n-1], nil
}

// DefaultDecks returns the built-in decks resolved against the catalog.
func DefaultDecks(cat *Catalog) ([]Deck, error) {
	return ParseDecks(defaultDecksYAML, cat)
}

// StarterDeck deals n random non-token Common cards.
func StarterDeck(cat *Catalog, rng *rand.Rand, n int) []*Card {
	var commons []*Card
	for _, c := range cat.Cards() {
		if c.Rarity == RarityCommon && !c.Token {
			commons = append(commons, c)
		}
	}
	if len(commons) == 0 {
		return nil
	}
	deck := make([]*Card, n)
	for i := range deck {
		deck[i] = commons[rng.Intn(len(commons))]
	}
	return deck
}

func resolveDeck(entry DeckEntry, cat *Catalog) (Deck, error) {
	deck := Deck{Name: entry.Name, Hero: HeroID(entry.Hero)}
	if _, ok := cat.Hero(deck.Hero); !ok {
		return Deck{}, fmt.Errorf("deck %q: unknown hero %q", entry.Name, entry.Hero)
	}
	for _, ce := range entry.Cards {
		card, ok := cat.Card(ce.Name)
		if !ok {
			return Deck{}, fmt.Errorf("deck %q: unknown card %q", entry.Name, ce.Name)
		}
		if card.Token {
			return Deck{}, fmt.Errorf("deck %q: token %q cannot be in a deck", entry.Name, ce.Name)
		}
		for i := 0; i < ce.Count; i++ {
			deck.Cards = append(deck.Cards, card)
		}
	}
	return deck, nil
}
