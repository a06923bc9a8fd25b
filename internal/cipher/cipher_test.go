package cipher

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/pontifex/internal/deck"
	"github.com/arcanaland/pontifex/internal/keystream"
)

func unkeyed(t *testing.T) *deck.Deck {
	t.Helper()
	d, err := deck.New(13, 4)
	require.NoError(t, err)
	return d
}

func TestEncodeKnownAnswer(t *testing.T) {
	c := New(unkeyed(t))

	out, err := c.Encode("AAAAA AAAAA AAAAA")
	require.NoError(t, err)
	assert.Equal(t, "EXKYIZSGEHUNTIQ", out)

	plain, err := c.Decode("EXKYI ZSGEH UNTIQ")
	require.NoError(t, err)
	assert.Equal(t, "AAAAAAAAAAAAAAA", plain)
}

func TestRoundTrip(t *testing.T) {
	key := unkeyed(t)
	key.Shuffle(rand.New(rand.NewSource(2024)))

	messages := []string{
		"Do not use PC!",
		"meet me at the usual place at ten rather than eight",
		"Z",
		"the quick brown fox jumps over the lazy dog",
	}

	for _, rules := range []keystream.Rules{keystream.Classic, keystream.Legacy} {
		c := New(key, keystream.WithRules(rules))
		for _, msg := range messages {
			enc, err := c.Encode(msg)
			require.NoError(t, err)
			assert.Len(t, enc, len(Normalize(msg)))

			dec, err := c.Decode(enc)
			require.NoError(t, err)
			assert.Equal(t, Normalize(msg), dec, rules.String())
		}
	}
}

func TestEmptyInput(t *testing.T) {
	c := New(unkeyed(t))

	out, err := c.Encode("1234 !?")
	require.NoError(t, err)
	assert.Equal(t, "", out)

	out, err = c.Decode("")
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestCipherCopiesKey(t *testing.T) {
	key := unkeyed(t)
	c := New(key)
	key.Shuffle(rand.New(rand.NewSource(1)))

	out, err := c.Encode("AAAAA")
	require.NoError(t, err)
	assert.Equal(t, "EXKYI", out)
}

func TestConcurrentSessions(t *testing.T) {
	key := unkeyed(t)
	key.Shuffle(rand.New(rand.NewSource(77)))
	c := New(key)

	want, err := c.Encode("attack at dawn")
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]string, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = c.Encode("attack at dawn")
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestEmptyKey(t *testing.T) {
	_, err := New(deck.Empty()).Encode("hello")
	assert.ErrorIs(t, err, keystream.ErrEmptyDeck)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "DONOTUSEPC", Normalize("Do not use PC!"))
	assert.Equal(t, "", Normalize("123 ..."))
	assert.Equal(t, "AB", Normalize("aéb"))
}

func TestGroup(t *testing.T) {
	assert.Equal(t, "EXKYI ZSGEH UNTIQ", Group("EXKYIZSGEHUNTIQ", 5))
	assert.Equal(t, "EXKYI ZS", Group("EXKYIZS", 5))
	assert.Equal(t, "EXK", Group("EXK", 5))
	assert.Equal(t, "EXKYIZS", Group("EXKYIZS", 0))
}
