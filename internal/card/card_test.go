package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayingCardValue(t *testing.T) {
	tests := []struct {
		card Card
		want int
	}{
		{NewPlayingCard(Clubs, 1), 1},
		{NewPlayingCard(Clubs, 13), 13},
		{NewPlayingCard(Diamonds, 1), 14},
		{NewPlayingCard(Hearts, 5), 31},
		{NewPlayingCard(Spades, 13), 52},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.card.Value(54), tt.card.String())
	}
}

func TestJokerValueIsDeckMaximum(t *testing.T) {
	for _, color := range []Color{Red, Black} {
		j := Joker(color)
		assert.Equal(t, 53, j.Value(54))
		assert.Equal(t, 2, j.Value(3))
	}
}

func TestNewJoker(t *testing.T) {
	j, err := NewJoker("RED")
	require.NoError(t, err)
	assert.True(t, j.IsJokerColored(Red))

	j, err = NewJoker(" black ")
	require.NoError(t, err)
	assert.True(t, j.IsJokerColored(Black))
	assert.False(t, j.IsJokerColored(Red))

	_, err = NewJoker("green")
	assert.ErrorIs(t, err, ErrInvalidColor)
}

func TestCopyIsIndependent(t *testing.T) {
	c := NewPlayingCard(Hearts, 7)
	cp := c.Copy()
	cp.Rank = 8
	assert.Equal(t, 7, c.Rank)
}

func TestCodes(t *testing.T) {
	tests := map[string]Card{
		"AC":  NewPlayingCard(Clubs, 1),
		"10H": NewPlayingCard(Hearts, 10),
		"QS":  NewPlayingCard(Spades, 12),
		"7D":  NewPlayingCard(Diamonds, 7),
		"RJ":  Joker(Red),
		"BJ":  Joker(Black),
	}

	for code, want := range tests {
		got, err := Parse(code)
		require.NoError(t, err, code)
		assert.Equal(t, want, got)
		assert.Equal(t, code, want.String())
	}

	got, err := Parse("kd")
	require.NoError(t, err)
	assert.Equal(t, NewPlayingCard(Diamonds, 13), got)
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, code := range []string{"", "X", "1C", "11C", "AX", "ZZ", "GJ"} {
		_, err := Parse(code)
		assert.ErrorIs(t, err, ErrInvalidCode, code)
	}
}

func TestName(t *testing.T) {
	assert.Equal(t, "Queen of Spades", NewPlayingCard(Spades, 12).Name())
	assert.Equal(t, "Ace of Clubs", NewPlayingCard(Clubs, 1).Name())
	assert.Equal(t, "Red Joker", Joker(Red).Name())
}
