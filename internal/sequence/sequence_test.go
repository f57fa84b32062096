package sequence

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"sync"
	"testing"
	"time"
)

type memoryCounter struct {
	mu   sync.Mutex
	seqs map[string]int64
	err  error
}

func (m *memoryCounter) Increment(_ context.Context, name string) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.seqs == nil {
		m.seqs = map[string]int64{}
	}
	m.seqs[name]++
	return m.seqs[name], nil
}

var orderNumberPattern = regexp.MustCompile(`^ORD\d{12}$`)

func fixedClock() time.Time {
	return time.Date(2024, time.March, 7, 23, 30, 0, 0, time.UTC)
}

func TestFormat(t *testing.T) {
	if got := Format(fixedClock(), 42); got != "ORD240307000042" {
		t.Fatalf("unexpected order number %q", got)
	}
	if got := Format(fixedClock(), 1234567); got != "ORD2403071234567" {
		t.Fatalf("expected sequence to grow past six digits, got %q", got)
	}
}

func TestFormatUsesUTCDate(t *testing.T) {
	karachi := time.FixedZone("PKT", 5*60*60)
	local := time.Date(2024, time.March, 8, 2, 0, 0, 0, karachi)
	if got := Format(local, 1); got != "ORD240307000001" {
		t.Fatalf("expected UTC date segment, got %q", got)
	}
}

func TestGeneratorSequentialIsStrictlyIncreasing(t *testing.T) {
	gen := NewGenerator(&memoryCounter{}).WithClock(fixedClock)

	prev := int64(0)
	for i := 0; i < 50; i++ {
		number, err := gen.Next(context.Background())
		if err != nil {
			t.Fatalf("Next returned error: %v", err)
		}
		if !orderNumberPattern.MatchString(number) {
			t.Fatalf("order number %q does not match pattern", number)
		}
		seq, err := strconv.ParseInt(number[len(number)-6:], 10, 64)
		if err != nil {
			t.Fatalf("parse suffix: %v", err)
		}
		if seq <= prev {
			t.Fatalf("suffix %d not greater than previous %d", seq, prev)
		}
		prev = seq
	}
}

func TestGeneratorConcurrentCallsAreUnique(t *testing.T) {
	gen := NewGenerator(&memoryCounter{}).WithClock(fixedClock)

	const n = 200
	var wg sync.WaitGroup
	results := make(chan string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			number, err := gen.Next(context.Background())
			if err != nil {
				t.Errorf("Next returned error: %v", err)
				return
			}
			results <- number
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[string]struct{}, n)
	for number := range results {
		if _, dup := seen[number]; dup {
			t.Fatalf("duplicate order number %q", number)
		}
		seen[number] = struct{}{}
	}
	if len(seen) != n {
		t.Fatalf("expected %d order numbers, got %d", n, len(seen))
	}
}

func TestGeneratorPropagatesCounterFailure(t *testing.T) {
	down := errors.New("connection refused")
	gen := NewGenerator(&memoryCounter{err: down})

	number, err := gen.Next(context.Background())
	if !errors.Is(err, down) {
		t.Fatalf("expected wrapped counter error, got %v", err)
	}
	if number != "" {
		t.Fatalf("expected no order number on failure, got %q", number)
	}
}
