package deck

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/arcanaland/pontifex/internal/card"
)

// FileExt is the extension of key deck files in the deck library
const FileExt = ".toml"

// KeyDeck is a named deck arrangement loaded from disk
type KeyDeck struct {
	ID          string
	Name        string
	Description string
	Path        string

	Deck *Deck

	// Raw config data
	config *DeckConfig
}

// Config returns the decoded file contents
func (k *KeyDeck) Config() *DeckConfig {
	return k.config
}

// Key deck file structures
type DeckConfig struct {
	Deck DeckSection `toml:"deck"`
}

type DeckSection struct {
	ID           string   `toml:"id"`
	Name         string   `toml:"name"`
	Description  string   `toml:"description,omitempty"`
	CardsPerSuit int      `toml:"cards_per_suit"`
	Suits        int      `toml:"suits"`
	Order        []string `toml:"order,omitempty"`
}

// Decode reads a key deck file without building the deck
func Decode(path string) (*DeckConfig, error) {
	var config DeckConfig
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", filepath.Base(path), err)
	}
	return &config, nil
}

// Load reads a key deck file and builds its deck
func Load(path string) (*KeyDeck, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("key deck not found: %s", path)
	}

	config, err := Decode(path)
	if err != nil {
		return nil, err
	}

	d, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("error building deck from %s: %w", path, err)
	}

	id := config.Deck.ID
	if id == "" {
		id = strings.TrimSuffix(filepath.Base(path), FileExt)
	}

	return &KeyDeck{
		ID:          id,
		Name:        config.Deck.Name,
		Description: config.Deck.Description,
		Path:        path,
		Deck:        d,
		config:      config,
	}, nil
}

// Build turns the decoded section into a deck. Without an order the deck is
// built in factory order for the declared dimensions.
func (c *DeckConfig) Build() (*Deck, error) {
	s := c.Deck
	if len(s.Order) == 0 {
		return New(s.CardsPerSuit, s.Suits)
	}

	cards := make([]card.Card, 0, len(s.Order))
	for _, code := range s.Order {
		cc, err := card.Parse(code)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
		}
		cards = append(cards, cc)
	}
	if err := CheckCards(cards, s.CardsPerSuit, s.Suits); err != nil {
		return nil, err
	}
	return FromCards(cards), nil
}

// CheckCards reports whether cards is a permutation of the deck New would
// build for the same dimensions.
func CheckCards(cards []card.Card, cardsPerSuit, suitCount int) error {
	want, err := New(cardsPerSuit, suitCount)
	if err != nil {
		return err
	}
	if len(cards) != want.Len() {
		return fmt.Errorf("%w: expected %d cards, got %d", ErrInvalidConfiguration, want.Len(), len(cards))
	}

	remaining := make(map[card.Card]int, want.Len())
	for _, c := range want.Cards() {
		remaining[c]++
	}
	for _, c := range cards {
		if remaining[c] == 0 {
			return fmt.Errorf("%w: unexpected or duplicate card %s", ErrInvalidConfiguration, c)
		}
		remaining[c]--
	}
	return nil
}

// Save writes d as a key deck file at path
func Save(path string, section DeckSection, d *Deck) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating deck directory: %w", err)
	}

	section.Order = make([]string, 0, d.Len())
	for _, c := range d.Cards() {
		section.Order = append(section.Order, c.String())
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating key deck file: %w", err)
	}
	defer file.Close()

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(DeckConfig{Deck: section}); err != nil {
		return fmt.Errorf("error encoding key deck: %w", err)
	}

	return nil
}
