package deck

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	d := mustNew(t, 13, 4)
	d.Shuffle(rand.New(rand.NewSource(11)))

	path := filepath.Join(t.TempDir(), "decks", "agent"+FileExt)
	err := Save(path, DeckSection{ID: "agent", Name: "Agent", CardsPerSuit: 13, Suits: 4}, d)
	require.NoError(t, err)

	k, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "agent", k.ID)
	assert.Equal(t, "Agent", k.Name)
	assert.Equal(t, d.String(), k.Deck.String())
	assert.Len(t, k.Config().Deck.Order, 54)
}

func TestLoadFactoryOrderWhenOrderMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "small.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[deck]
name = "Small"
cards_per_suit = 3
suits = 2
`), 0644))

	k, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "small", k.ID)
	assert.Equal(t, "AC 2C 3C AD 2D 3D RJ BJ", k.Deck.String())
}

func TestLoadRejectsBadOrder(t *testing.T) {
	tests := map[string]string{
		"duplicate":     `order = ["AC", "AC", "RJ", "BJ"]`,
		"short":         `order = ["AC", "RJ"]`,
		"bad code":      `order = ["AC", "2C", "ZZ", "BJ"]`,
		"out of bounds": `order = ["AC", "3C", "RJ", "BJ"]`,
	}

	for name, order := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.toml")
			content := "[deck]\ncards_per_suit = 2\nsuits = 1\n" + order + "\n"
			require.NoError(t, os.WriteFile(path, []byte(content), 0644))

			_, err := Load(path)
			assert.ErrorIs(t, err, ErrInvalidConfiguration)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}
