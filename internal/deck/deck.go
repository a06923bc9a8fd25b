package deck

import (
	"errors"
	"fmt"
	"strings"

	"github.com/arcanaland/pontifex/internal/card"
)

// ErrInvalidConfiguration is returned when a deck cannot be built from the
// requested dimensions or card list
var ErrInvalidConfiguration = errors.New("invalid deck configuration")

const (
	MaxCardsPerSuit = card.RanksPerSuit
	MaxSuits        = 4
)

// Slot addresses a card inside one Deck. Slots stay valid for the life of the
// deck; cards move by relinking, never by changing slot.
type Slot int

// None is the slot returned when a lookup finds nothing
const None Slot = -1

// Deck is a circular, doubly linked sequence of cards. Following Next from
// any slot Len times returns to that slot. Head marks the logical top card and
// Prev(Head) is the bottom card.
type Deck struct {
	cards []card.Card
	next  []Slot
	prev  []Slot
	head  Slot
}

// Empty returns a deck with no cards
func Empty() *Deck {
	return &Deck{head: None}
}

// New builds an unshuffled deck of suitCount suits with cardsPerSuit cards
// each, ranked from 1, followed by the red joker and then the black joker.
func New(cardsPerSuit, suitCount int) (*Deck, error) {
	if cardsPerSuit < 1 || cardsPerSuit > MaxCardsPerSuit {
		return nil, fmt.Errorf("%w: cards per suit must be in [1,%d], got %d",
			ErrInvalidConfiguration, MaxCardsPerSuit, cardsPerSuit)
	}
	if suitCount < 1 || suitCount > MaxSuits {
		return nil, fmt.Errorf("%w: suit count must be in [1,%d], got %d",
			ErrInvalidConfiguration, MaxSuits, suitCount)
	}

	n := cardsPerSuit*suitCount + 2
	d := &Deck{
		cards: make([]card.Card, 0, n),
		next:  make([]Slot, 0, n),
		prev:  make([]Slot, 0, n),
		head:  None,
	}
	for _, suit := range card.SuitsInOrder[:suitCount] {
		for rank := 1; rank <= cardsPerSuit; rank++ {
			d.Append(card.NewPlayingCard(suit, rank))
		}
	}
	d.Append(card.Joker(card.Red))
	d.Append(card.Joker(card.Black))

	return d, nil
}

// FromCards builds a deck holding cards in top-to-bottom order
func FromCards(cards []card.Card) *Deck {
	d := Empty()
	for _, c := range cards {
		d.Append(c)
	}
	return d
}

// Clone returns a deep copy sharing no state with d. The copy is laid out
// top to bottom, so its slots do not match the slots of d.
func (d *Deck) Clone() *Deck {
	cp := Empty()
	if d.head == None {
		return cp
	}

	n := d.Len()
	cp.cards = make([]card.Card, 0, n)
	cp.next = make([]Slot, 0, n)
	cp.prev = make([]Slot, 0, n)

	s := d.head
	for i := 0; i < n; i++ {
		cp.Append(d.cards[s].Copy())
		s = d.next[s]
	}
	return cp
}

// Append adds c at the bottom of the deck and returns its slot
func (d *Deck) Append(c card.Card) Slot {
	s := Slot(len(d.cards))
	d.cards = append(d.cards, c)

	if d.head == None {
		d.next = append(d.next, s)
		d.prev = append(d.prev, s)
		d.head = s
		return s
	}

	tail := d.prev[d.head]
	d.next = append(d.next, d.head)
	d.prev = append(d.prev, tail)
	d.next[tail] = s
	d.prev[d.head] = s
	return s
}

// Len returns the number of cards in the deck
func (d *Deck) Len() int {
	return len(d.cards)
}

// Head returns the slot of the top card, or None when the deck is empty
func (d *Deck) Head() Slot {
	return d.head
}

// Tail returns the slot of the bottom card, or None when the deck is empty
func (d *Deck) Tail() Slot {
	if d.head == None {
		return None
	}
	return d.prev[d.head]
}

// Next returns the slot following s
func (d *Deck) Next(s Slot) Slot {
	return d.next[s]
}

// Prev returns the slot preceding s
func (d *Deck) Prev(s Slot) Slot {
	return d.prev[s]
}

// Card returns the card held in s
func (d *Deck) Card(s Slot) card.Card {
	return d.cards[s]
}

// Value returns the value of the card in s within this deck
func (d *Deck) Value(s Slot) int {
	return d.cards[s].Value(d.Len())
}

// Cards returns the cards from top to bottom
func (d *Deck) Cards() []card.Card {
	out := make([]card.Card, 0, d.Len())
	if d.head == None {
		return out
	}
	s := d.head
	for i := 0; i < d.Len(); i++ {
		out = append(out, d.cards[s])
		s = d.next[s]
	}
	return out
}

// Values returns the card values from top to bottom
func (d *Deck) Values() []int {
	cards := d.Cards()
	out := make([]int, len(cards))
	for i, c := range cards {
		out[i] = c.Value(len(cards))
	}
	return out
}

func (d *Deck) String() string {
	cards := d.Cards()
	codes := make([]string, len(cards))
	for i, c := range cards {
		codes[i] = c.String()
	}
	return strings.Join(codes, " ")
}

// Intner is the random source used by Shuffle. *math/rand.Rand satisfies it.
type Intner interface {
	Intn(n int) int
}

// Shuffle applies a Fisher-Yates permutation drawn from rng and relinks the
// ring in the shuffled order.
func (d *Deck) Shuffle(rng Intner) {
	n := d.Len()
	if n <= 1 {
		return
	}

	order := make([]Slot, n)
	s := d.head
	for i := range order {
		order[i] = s
		s = d.next[s]
	}

	for i := n - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		order[i], order[j] = order[j], order[i]
	}

	for i, s := range order {
		d.next[s] = order[(i+1)%n]
		d.prev[s] = order[(i-1+n)%n]
	}
	d.head = order[0]
}

// LocateJoker returns the slot of the joker with the given color name, or
// None when there is none. Color matching ignores case.
func (d *Deck) LocateJoker(color string) Slot {
	c, err := card.ParseColor(color)
	if err != nil {
		return None
	}
	return d.locate(c)
}

func (d *Deck) locate(color card.Color) Slot {
	if d.head == None {
		return None
	}
	s := d.head
	for {
		if d.cards[s].IsJokerColored(color) {
			return s
		}
		s = d.next[s]
		if s == d.head {
			return None
		}
	}
}

// RedJoker returns the slot of the red joker, or None
func (d *Deck) RedJoker() Slot {
	return d.locate(card.Red)
}

// BlackJoker returns the slot of the black joker, or None
func (d *Deck) BlackJoker() Slot {
	return d.locate(card.Black)
}

// Before reports whether a comes no later than b when walking down from the
// top of the deck.
func (d *Deck) Before(a, b Slot) bool {
	for s := d.head; ; s = d.next[s] {
		if s == a {
			return true
		}
		if s == b {
			return false
		}
	}
}

// MoveCard moves the card in s p places down the deck, counting from the card
// that followed it, and wrapping from the bottom back to the top. The card
// must belong to the deck. When s was the top card the card that followed it
// becomes the new top.
func (d *Deck) MoveCard(s Slot, p int) {
	if p <= 0 || d.Len() <= 1 {
		return
	}

	from := d.next[s]
	wasHead := d.head == s
	d.unlink(s)

	at := from
	for i := 1; i < p; i++ {
		at = d.next[at]
	}
	d.insertAfter(at, s)

	if wasHead {
		d.head = from
	}
}

func (d *Deck) unlink(s Slot) {
	d.next[d.prev[s]] = d.next[s]
	d.prev[d.next[s]] = d.prev[s]
}

func (d *Deck) insertAfter(at, s Slot) {
	d.next[s] = d.next[at]
	d.prev[s] = at
	d.prev[d.next[at]] = s
	d.next[at] = s
}

// TripleCut swaps the cards above first with the cards below second, leaving
// first..second in place. first must not come after second from the top.
func (d *Deck) TripleCut(first, second Slot) {
	if d.head == None || first == None || second == None {
		return
	}
	// Nothing above first and nothing below second.
	if d.prev[first] == second {
		return
	}

	top := d.head
	aboveEnd := d.prev[first]
	belowStart := d.next[second]
	bottom := d.prev[d.head]

	switch {
	case top == first:
		d.head = belowStart
	case belowStart == top:
		d.head = first
	default:
		d.next[bottom] = first
		d.prev[first] = bottom

		d.next[second] = top
		d.prev[top] = second

		d.next[aboveEnd] = belowStart
		d.prev[belowStart] = aboveEnd

		d.head = belowStart
	}
}

// CountCut takes as many cards from the top as the value of the bottom card
// (modulo the deck size) and puts them just above the bottom card.
func (d *Deck) CountCut() {
	n := d.Len()
	if n <= 1 {
		return
	}

	bottom := d.prev[d.head]
	cuts := d.Value(bottom) % n
	// Cutting n-1 cards puts them straight back where they were.
	if cuts == 0 || cuts == n-1 {
		return
	}

	first := d.head
	last := first
	for i := 1; i < cuts; i++ {
		last = d.next[last]
	}
	newHead := d.next[last]
	aboveBottom := d.prev[bottom]

	d.next[aboveBottom] = first
	d.prev[first] = aboveBottom

	d.next[last] = bottom
	d.prev[bottom] = last

	d.next[bottom] = newHead
	d.prev[newHead] = bottom

	d.head = newHead
}

// LookUp counts down from the top by the value of the top card and returns
// the card found there. ok is false when that card is a joker or the deck is
// empty.
func (d *Deck) LookUp() (s Slot, ok bool) {
	if d.head == None {
		return None, false
	}

	s = d.head
	for i := d.Value(d.head); i > 0; i-- {
		s = d.next[s]
	}
	if d.cards[s].IsJoker() {
		return None, false
	}
	return s, true
}
