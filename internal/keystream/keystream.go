// Package keystream generates Solitaire keystream values by repeatedly
// stepping a private copy of a key deck.
package keystream

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/arcanaland/pontifex/internal/deck"
)

var (
	ErrEmptyDeck    = errors.New("deck has no cards")
	ErrMissingJoker = errors.New("deck must hold a red and a black joker")
	ErrNoValue      = errors.New("no keystream value produced")
	ErrUnknownRules = errors.New("unknown rule set")
)

// DefaultMaxAttempts bounds the number of consecutive joker look-ups tolerated
// by Next before it gives up.
const DefaultMaxAttempts = 4096

// Rules decides how far each joker moves in one step
type Rules int

const (
	// Classic moves the red joker one card and the black joker two cards,
	// wrapping from the bottom to just below the top card.
	Classic Rules = iota
	// Legacy moves the red joker two cards when it is the bottom card and the
	// black joker three, two or one card depending on its distance from the
	// bottom.
	Legacy
)

func (r Rules) String() string {
	switch r {
	case Classic:
		return "classic"
	case Legacy:
		return "legacy"
	default:
		return fmt.Sprintf("rules(%d)", int(r))
	}
}

// ParseRules parses a rule set name, ignoring case
func ParseRules(s string) (Rules, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "classic":
		return Classic, nil
	case "legacy":
		return Legacy, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownRules, s)
}

func (r Rules) redMove(d *deck.Deck, red deck.Slot) int {
	if r == Legacy && d.Next(red) == d.Head() {
		return 2
	}
	return 1
}

func (r Rules) blackMove(d *deck.Deck, black deck.Slot) int {
	if r != Legacy {
		return 2
	}
	switch {
	case d.Next(black) == d.Head():
		return 2
	case d.Next(d.Next(black)) == d.Head():
		return 3
	default:
		return 1
	}
}

// Option configures a Generator
type Option func(*Generator)

// WithRules selects the joker move rules
func WithRules(r Rules) Option {
	return func(g *Generator) {
		g.rules = r
	}
}

// WithLogger sets the logger used for step tracing
func WithLogger(l logrus.FieldLogger) Option {
	return func(g *Generator) {
		g.log = l
	}
}

// WithMaxAttempts overrides DefaultMaxAttempts
func WithMaxAttempts(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.maxAttempts = n
		}
	}
}

// Generator owns a deck and steps it to produce keystream values. A
// Generator is not safe for concurrent use; build one per session.
type Generator struct {
	deck        *deck.Deck
	rules       Rules
	log         logrus.FieldLogger
	maxAttempts int
}

// New returns a generator keyed by a private copy of key. key is never
// modified.
func New(key *deck.Deck, opts ...Option) *Generator {
	g := &Generator{
		deck:        key.Clone(),
		rules:       Classic,
		log:         discardLogger(),
		maxAttempts: DefaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Deck returns the generator's working deck
func (g *Generator) Deck() *deck.Deck {
	return g.deck
}

// Next advances the deck until the look-up lands on a card other than a
// joker and returns that card's value.
func (g *Generator) Next() (int, error) {
	d := g.deck
	if d.Head() == deck.None {
		return 0, ErrEmptyDeck
	}

	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		if err := g.step(); err != nil {
			return 0, err
		}

		s, ok := d.LookUp()
		if ok {
			return d.Value(s), nil
		}
		g.log.WithFields(logrus.Fields{
			"attempt": attempt,
			"top":     d.Card(d.Head()).String(),
		}).Debug("look-up landed on a joker, stepping again")
	}

	return 0, fmt.Errorf("%w after %d attempts", ErrNoValue, g.maxAttempts)
}

// step runs the joker moves, the triple cut and the count cut
func (g *Generator) step() error {
	d := g.deck

	red := d.RedJoker()
	if red == deck.None {
		return fmt.Errorf("%w: red joker not found", ErrMissingJoker)
	}
	d.MoveCard(red, g.rules.redMove(d, red))

	black := d.BlackJoker()
	if black == deck.None {
		return fmt.Errorf("%w: black joker not found", ErrMissingJoker)
	}
	d.MoveCard(black, g.rules.blackMove(d, black))

	first, second := d.RedJoker(), d.BlackJoker()
	if !d.Before(first, second) {
		first, second = second, first
	}
	d.TripleCut(first, second)

	d.CountCut()
	return nil
}

// Stream returns the next n values. On error no values are returned.
func (g *Generator) Stream(n int) ([]int, error) {
	if n < 0 {
		return nil, fmt.Errorf("negative keystream length %d", n)
	}
	out := make([]int, 0, n)
	for i := 0; i < n; i++ {
		v, err := g.Next()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Generate keys a fresh generator from key and returns n values
func Generate(key *deck.Deck, n int, opts ...Option) ([]int, error) {
	return New(key, opts...).Stream(n)
}
