package card

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrInvalidColor is returned for joker colors other than red and black
	ErrInvalidColor = errors.New("jokers can only be red or black")
	// ErrInvalidCode is returned when a card code cannot be parsed
	ErrInvalidCode = errors.New("invalid card code")
)

// Suit is a playing card suit. The zero value is Clubs and the order of the
// constants is the order used for card values.
type Suit int

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

// SuitsInOrder lists the suits in value order
var SuitsInOrder = []Suit{Clubs, Diamonds, Hearts, Spades}

// RanksPerSuit is the rank span of one suit in card values
const RanksPerSuit = 13

func (s Suit) String() string {
	switch s {
	case Clubs:
		return "clubs"
	case Diamonds:
		return "diamonds"
	case Hearts:
		return "hearts"
	case Spades:
		return "spades"
	default:
		return "suit(" + strconv.Itoa(int(s)) + ")"
	}
}

// Initial returns the one-letter code of the suit
func (s Suit) Initial() string {
	return strings.ToUpper(s.String()[:1])
}

// Red reports whether the suit is printed in red
func (s Suit) Red() bool {
	return s == Diamonds || s == Hearts
}

// Color is a joker color
type Color int

const (
	Red Color = iota
	Black
)

func (c Color) String() string {
	if c == Red {
		return "red"
	}
	return "black"
}

// ParseColor parses a joker color, ignoring case
func ParseColor(s string) (Color, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "red":
		return Red, nil
	case "black":
		return Black, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidColor, s)
}

// Kind tags the variant held by a Card
type Kind int

const (
	KindPlaying Kind = iota
	KindJoker
)

// Card is either a playing card or a joker. Only the fields of its Kind are
// meaningful.
type Card struct {
	Kind  Kind
	Suit  Suit
	Rank  int
	Color Color
}

// NewPlayingCard creates a suited card
func NewPlayingCard(s Suit, rank int) Card {
	return Card{Kind: KindPlaying, Suit: s, Rank: rank}
}

// NewJoker creates a joker from a color name such as "red" or "Black"
func NewJoker(color string) (Card, error) {
	c, err := ParseColor(color)
	if err != nil {
		return Card{}, err
	}
	return Card{Kind: KindJoker, Color: c}, nil
}

// Joker creates a joker of the given color
func Joker(c Color) Card {
	return Card{Kind: KindJoker, Color: c}
}

// IsJoker reports whether the card is a joker
func (c Card) IsJoker() bool {
	return c.Kind == KindJoker
}

// IsJokerColored reports whether the card is a joker of the given color
func (c Card) IsJokerColored(color Color) bool {
	return c.Kind == KindJoker && c.Color == color
}

// Value returns the numeric value of the card inside a deck of total cards.
// Both jokers are worth total-1.
func (c Card) Value(total int) int {
	if c.Kind == KindJoker {
		return total - 1
	}
	return c.Rank + RanksPerSuit*int(c.Suit)
}

// Copy returns an independent copy of the card
func (c Card) Copy() Card {
	return c
}

// String returns the short code of the card, e.g. "AC", "10H", "QS", "RJ"
func (c Card) String() string {
	if c.Kind == KindJoker {
		return c.Color.String()[:1] + "J"
	}
	return rankCode(c.Rank) + c.Suit.Initial()
}

// Name returns the long form of the card, e.g. "Queen of Spades"
func (c Card) Name() string {
	if c.Kind == KindJoker {
		return strings.Title(c.Color.String()) + " Joker"
	}
	var rank string
	switch c.Rank {
	case 1:
		rank = "Ace"
	case 11:
		rank = "Jack"
	case 12:
		rank = "Queen"
	case 13:
		rank = "King"
	default:
		rank = strconv.Itoa(c.Rank)
	}
	return fmt.Sprintf("%s of %s", rank, strings.Title(c.Suit.String()))
}

func rankCode(rank int) string {
	switch rank {
	case 1:
		return "A"
	case 11:
		return "J"
	case 12:
		return "Q"
	case 13:
		return "K"
	default:
		return strconv.Itoa(rank)
	}
}

// Parse reads a card code as produced by String. Case is ignored.
func Parse(code string) (Card, error) {
	s := strings.ToUpper(strings.TrimSpace(code))
	switch s {
	case "RJ":
		return Joker(Red), nil
	case "BJ":
		return Joker(Black), nil
	}
	if len(s) < 2 {
		return Card{}, fmt.Errorf("%w: %q", ErrInvalidCode, code)
	}

	var suit Suit
	switch s[len(s)-1] {
	case 'C':
		suit = Clubs
	case 'D':
		suit = Diamonds
	case 'H':
		suit = Hearts
	case 'S':
		suit = Spades
	default:
		return Card{}, fmt.Errorf("%w: unknown suit in %q", ErrInvalidCode, code)
	}

	var rank int
	switch r := s[:len(s)-1]; r {
	case "A":
		rank = 1
	case "J":
		rank = 11
	case "Q":
		rank = 12
	case "K":
		rank = 13
	default:
		n, err := strconv.Atoi(r)
		if err != nil || n < 2 || n > 10 {
			return Card{}, fmt.Errorf("%w: unknown rank in %q", ErrInvalidCode, code)
		}
		rank = n
	}

	return NewPlayingCard(suit, rank), nil
}
