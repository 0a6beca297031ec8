package request

import (
	"bytes"
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ticketPattern = regexp.MustCompile(`^[A-Z0-9]{2,}-\d{8}-[A-Z0-9]{6}$`)

func TestRandomTicketGenerator_Format(t *testing.T) {
	fixed := time.Date(2026, 8, 31, 23, 59, 0, 0, time.UTC)
	gen := NewRandomTicketGenerator("SKY", WithClock(func() time.Time { return fixed }))

	code, err := gen.Generate(context.Background())
	require.NoError(t, err)

	assert.Regexp(t, ticketPattern, code)
	assert.Equal(t, "SKY-20260831-", code[:13])
}

func TestRandomTicketGenerator_UsesUTCDate(t *testing.T) {
	// 23:30 in UTC-6 is already the next day in UTC.
	loc := time.FixedZone("UTC-6", -6*60*60)
	local := time.Date(2026, 8, 31, 23, 30, 0, 0, loc)
	gen := NewRandomTicketGenerator("SKY", WithClock(func() time.Time { return local }))

	code, err := gen.Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "SKY-20260901-", code[:13])
}

func TestRandomTicketGenerator_NoAmbiguousCharacters(t *testing.T) {
	gen := NewRandomTicketGenerator("SKY")

	for i := 0; i < 200; i++ {
		code, err := gen.Generate(context.Background())
		require.NoError(t, err)
		tail := code[len(code)-6:]
		assert.NotContains(t, tail, "0")
		assert.NotContains(t, tail, "O")
		assert.NotContains(t, tail, "1")
		assert.NotContains(t, tail, "I")
	}
}

func TestRandomTicketGenerator_Uniqueness(t *testing.T) {
	gen := NewRandomTicketGenerator("SKY")
	seen := make(map[string]bool, 10000)

	for i := 0; i < 10000; i++ {
		code, err := gen.Generate(context.Background())
		require.NoError(t, err)
		assert.False(t, seen[code], "duplicate ticket code generated: %s", code)
		seen[code] = true
	}
}

func TestRandomTicketGenerator_DeterministicSource(t *testing.T) {
	// A zero randomness source always selects the first alphabet character,
	// which lets tests force collisions deterministically.
	zeros := bytes.NewReader(make([]byte, 1024))
	gen := NewRandomTicketGenerator("SKY", WithRandSource(zeros))

	code, err := gen.Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "AAAAAA", code[len(code)-6:])
}

func TestRandomTicketGenerator_CancelledContext(t *testing.T) {
	gen := NewRandomTicketGenerator("SKY")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := gen.Generate(ctx)
	assert.Error(t, err)
}
