package request

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"time"
)

// ticketAlphabet excludes visually confusable characters (0/O, 1/I) so the
// code survives being read over the phone.
const ticketAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// ticketTailLength is the number of random characters after the date segment.
const ticketTailLength = 6

// TicketGenerator produces human-facing ticket codes. Generated codes are
// not guaranteed unique; the caller must verify against the store and retry.
type TicketGenerator interface {
	Generate(ctx context.Context) (string, error)
}

// RandomTicketGenerator generates codes of the form PREFIX-YYYYMMDD-XXXXXX
// where the date is UTC and the tail is drawn uniformly from ticketAlphabet.
// Clock and randomness source are injectable so tests can pin dates and
// force collisions.
type RandomTicketGenerator struct {
	prefix string
	now    func() time.Time
	rand   io.Reader
}

type TicketGeneratorOption func(*RandomTicketGenerator)

// WithClock overrides the time source used for the date segment.
func WithClock(now func() time.Time) TicketGeneratorOption {
	return func(g *RandomTicketGenerator) {
		g.now = now
	}
}

// WithRandSource overrides the randomness source for the code tail.
func WithRandSource(r io.Reader) TicketGeneratorOption {
	return func(g *RandomTicketGenerator) {
		g.rand = r
	}
}

func NewRandomTicketGenerator(prefix string, opts ...TicketGeneratorOption) *RandomTicketGenerator {
	g := &RandomTicketGenerator{
		prefix: prefix,
		now:    time.Now,
		rand:   rand.Reader,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *RandomTicketGenerator) Generate(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	date := g.now().UTC().Format("20060102")

	tail := make([]byte, ticketTailLength)
	alphabetLen := big.NewInt(int64(len(ticketAlphabet)))
	for i := range tail {
		num, err := rand.Int(g.rand, alphabetLen)
		if err != nil {
			return "", fmt.Errorf("failed to generate random ticket character: %w", err)
		}
		tail[i] = ticketAlphabet[num.Int64()]
	}

	return fmt.Sprintf("%s-%s-%s", g.prefix, date, string(tail)), nil
}
