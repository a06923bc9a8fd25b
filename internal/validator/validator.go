package validator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arcanaland/pontifex/internal/card"
	"github.com/arcanaland/pontifex/internal/deck"
)

type ValidationResults struct {
	Errors   []string
	Warnings []string
}

type Validator struct {
	DeckPath string
	Results  ValidationResults

	config *deck.DeckConfig
	cards  []card.Card
}

func NewValidator(deckPath string) *Validator {
	return &Validator{
		DeckPath: deckPath,
		Results:  ValidationResults{},
	}
}

// Validate checks a key deck file. The returned error is set only when the
// file cannot be read at all; rule violations are reported in the results.
func (v *Validator) Validate() (ValidationResults, error) {
	if err := v.validateDeckToml(); err != nil {
		return v.Results, err
	}

	v.validateMetadata()
	if !v.validateDimensions() {
		return v.Results, nil
	}
	if !v.validateCodes() {
		return v.Results, nil
	}
	v.validateJokers()
	v.validateCardSet()
	v.validateArrangement()

	return v.Results, nil
}

func (v *Validator) errorf(format string, args ...any) {
	v.Results.Errors = append(v.Results.Errors, fmt.Sprintf(format, args...))
}

func (v *Validator) warnf(format string, args ...any) {
	v.Results.Warnings = append(v.Results.Warnings, fmt.Sprintf(format, args...))
}

func (v *Validator) validateDeckToml() error {
	info, err := os.Stat(v.DeckPath)
	if os.IsNotExist(err) {
		return fmt.Errorf("key deck not found: %s", v.DeckPath)
	}
	if err == nil && info.IsDir() {
		return fmt.Errorf("%s is a directory, expected a key deck file", v.DeckPath)
	}

	config, err := deck.Decode(v.DeckPath)
	if err != nil {
		return err
	}
	v.config = config

	if ext := filepath.Ext(v.DeckPath); ext != deck.FileExt {
		v.warnf("key deck files should use the %s extension, got %q", deck.FileExt, ext)
	}
	return nil
}

// validateMetadata checks the descriptive fields
func (v *Validator) validateMetadata() {
	s := v.config.Deck
	if s.ID == "" {
		v.warnf("deck.id is not set; the file name will be used")
	} else if strings.ContainsAny(s.ID, " /\\") {
		v.errorf("deck.id must not contain spaces or path separators: %q", s.ID)
	}

	if s.Name == "" {
		v.errorf("deck.name is required")
	}

	if s.Description == "" {
		v.warnf("deck.description is empty")
	}
}

// validateDimensions checks cards_per_suit and suits
func (v *Validator) validateDimensions() bool {
	s := v.config.Deck
	ok := true
	if s.CardsPerSuit < 1 || s.CardsPerSuit > deck.MaxCardsPerSuit {
		v.errorf("deck.cards_per_suit must be between 1 and %d, got %d", deck.MaxCardsPerSuit, s.CardsPerSuit)
		ok = false
	}
	if s.Suits < 1 || s.Suits > deck.MaxSuits {
		v.errorf("deck.suits must be between 1 and %d, got %d", deck.MaxSuits, s.Suits)
		ok = false
	}
	return ok
}

// validateCodes parses every entry of deck.order
func (v *Validator) validateCodes() bool {
	order := v.config.Deck.Order
	if len(order) == 0 {
		v.warnf("deck.order is empty; the deck will be used in factory order")
		return false
	}

	bad := []string{}
	for i, code := range order {
		c, err := card.Parse(code)
		if err != nil {
			bad = append(bad, fmt.Sprintf("%d:%q", i+1, code))
			continue
		}
		v.cards = append(v.cards, c)
	}

	if len(bad) > 0 {
		v.errorf("unreadable card codes in deck.order: %s", strings.Join(bad, ", "))
		return false
	}
	return true
}

// validateJokers checks that exactly one red and one black joker are present
func (v *Validator) validateJokers() {
	for _, color := range []card.Color{card.Red, card.Black} {
		n := 0
		for _, c := range v.cards {
			if c.IsJokerColored(color) {
				n++
			}
		}
		if n != 1 {
			v.errorf("expected exactly one %s joker, found %d", color, n)
		}
	}
}

// validateCardSet checks that deck.order holds each card of the declared
// dimensions exactly once
func (v *Validator) validateCardSet() {
	s := v.config.Deck
	want, err := deck.New(s.CardsPerSuit, s.Suits)
	if err != nil {
		return
	}

	if len(v.cards) != want.Len() {
		v.errorf("deck.order has %d cards, expected %d for %d suits of %d",
			len(v.cards), want.Len(), s.Suits, s.CardsPerSuit)
	}

	expected := map[card.Card]bool{}
	for _, c := range want.Cards() {
		expected[c] = true
	}

	seen := map[card.Card]bool{}
	duplicates := []string{}
	unexpected := []string{}
	for _, c := range v.cards {
		if !expected[c] {
			unexpected = append(unexpected, c.String())
			continue
		}
		if seen[c] && !c.IsJoker() {
			duplicates = append(duplicates, c.String())
		}
		seen[c] = true
	}

	missing := []string{}
	for _, c := range want.Cards() {
		if !seen[c] && !c.IsJoker() {
			missing = append(missing, c.String())
		}
	}

	if len(duplicates) > 0 {
		v.errorf("duplicate cards in deck.order: %s", strings.Join(duplicates, ", "))
	}
	if len(unexpected) > 0 {
		v.errorf("cards outside %d suits of %d: %s", s.Suits, s.CardsPerSuit, strings.Join(unexpected, ", "))
	}
	if len(missing) > 0 {
		v.errorf("missing cards in deck.order: %s", strings.Join(missing, ", "))
	}
}

// validateArrangement warns about key decks that give no secrecy
func (v *Validator) validateArrangement() {
	s := v.config.Deck
	factory, err := deck.New(s.CardsPerSuit, s.Suits)
	if err != nil {
		return
	}

	if deck.FromCards(v.cards).String() == factory.String() {
		v.warnf("deck.order is the unshuffled factory order; anyone can reproduce this key")
	}
}
