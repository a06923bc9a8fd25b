// Package cipher encodes and decodes letters with a Solitaire keystream.
package cipher

import (
	"strings"

	"github.com/arcanaland/pontifex/internal/deck"
	"github.com/arcanaland/pontifex/internal/keystream"
)

const alphabet = 26

// Cipher holds a key deck. Every Encode and Decode keys a fresh generator
// from its own copy of the deck, so one Cipher can serve many goroutines and
// always starts from the same key.
type Cipher struct {
	key  *deck.Deck
	opts []keystream.Option
}

// New copies key; later changes to key do not affect the cipher.
func New(key *deck.Deck, opts ...keystream.Option) *Cipher {
	return &Cipher{key: key.Clone(), opts: opts}
}

// Keystream returns the first n keystream values for the key
func (c *Cipher) Keystream(n int) ([]int, error) {
	return keystream.Generate(c.key, n, c.opts...)
}

// Encode normalizes msg and shifts each letter forward by its keystream
// value.
func (c *Cipher) Encode(msg string) (string, error) {
	letters := Normalize(msg)
	if letters == "" {
		return "", nil
	}

	ks, err := c.Keystream(len(letters))
	if err != nil {
		return "", err
	}

	out := make([]byte, len(letters))
	for i := 0; i < len(letters); i++ {
		a := int(letters[i] - 'A')
		out[i] = byte('A' + (a+ks[i])%alphabet)
	}
	return string(out), nil
}

// Decode normalizes msg and shifts each letter back by its keystream value.
func (c *Cipher) Decode(msg string) (string, error) {
	letters := Normalize(msg)
	if letters == "" {
		return "", nil
	}

	ks, err := c.Keystream(len(letters))
	if err != nil {
		return "", err
	}

	out := make([]byte, len(letters))
	for i := 0; i < len(letters); i++ {
		// letters count from A=1 on this side
		v := int(letters[i]-'A') + 1
		p := mod(v-ks[i]-1, alphabet) + 1
		out[i] = byte('A' + p - 1)
	}
	return string(out), nil
}

func mod(a, m int) int {
	return ((a % m) + m) % m
}

// Normalize keeps only ASCII letters and upper-cases them
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case ch >= 'A' && ch <= 'Z':
			b.WriteByte(ch)
		case ch >= 'a' && ch <= 'z':
			b.WriteByte(ch - 'a' + 'A')
		}
	}
	return b.String()
}

// Group splits s into space separated blocks of n characters. n <= 0 returns
// s unchanged.
func Group(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}

	var b strings.Builder
	for i := 0; i < len(s); i += n {
		if i > 0 {
			b.WriteByte(' ')
		}
		end := i + n
		if end > len(s) {
			end = len(s)
		}
		b.WriteString(s[i:end])
	}
	return b.String()
}
