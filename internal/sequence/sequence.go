// Package sequence mints public order numbers from a persistent counter.
package sequence

import (
	"context"
	"fmt"
	"time"
)

const (
	// OrderCounter is the key of the counter document backing order numbers.
	OrderCounter = "orderNumber"

	orderPrefix = "ORD"
	dateLayout  = "060102"
)

// Counter atomically increments the named counter and returns the new value.
// Implementations must never hand the same value to two callers.
type Counter interface {
	Increment(ctx context.Context, name string) (int64, error)
}

type Generator struct {
	counter Counter
	now     func() time.Time
}

func NewGenerator(counter Counter) *Generator {
	return &Generator{counter: counter, now: time.Now}
}

// WithClock replaces the clock used for the date segment.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Next returns ORD<YYMMDD><seq>, the date taken in UTC at call time.
func (g *Generator) Next(ctx context.Context) (string, error) {
	seq, err := g.counter.Increment(ctx, OrderCounter)
	if err != nil {
		return "", fmt.Errorf("allocate order number: %w", err)
	}
	return Format(g.now(), seq), nil
}

// Format renders an order number. The sequence is zero padded to six digits
// and is never truncated once it grows past that.
func Format(at time.Time, seq int64) string {
	return fmt.Sprintf("%s%s%06d", orderPrefix, at.UTC().Format(dateLayout), seq)
}
