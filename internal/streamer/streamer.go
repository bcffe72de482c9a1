package streamer

import (
	"context"
	"fmt"
	"time"

	"codeloft/internal/generator"
	"codeloft/pkg/types"
)

// DefaultFlushInterval is how often accumulated output is pushed to the
// sink while a stream is in flight.
const DefaultFlushInterval = 50 * time.Millisecond

// ErrorMessage replaces any partial answer when generation fails. Users
// see this instead of a truncated response.
const ErrorMessage = "Sorry, something went wrong while generating the answer. Please try again."

// Streamer relays a token stream to a sink in coalesced snapshots.
type Streamer struct {
	interval time.Duration
}

// New creates a Streamer. A non-positive interval uses the default.
func New(interval time.Duration) *Streamer {
	if interval <= 0 {
		interval = DefaultFlushInterval
	}
	return &Streamer{interval: interval}
}

// Relay drains the stream, pushing the full accumulated text to sink at
// most once per flush interval, and always once more when the stream ends
// so the sink never misses the tail. On a stream error the sink receives
// ErrorMessage in place of whatever partial text it had, and the error is
// returned wrapped. The returned string is the complete answer.
func (s *Streamer) Relay(ctx context.Context, st generator.Stream, sink func(string)) (string, error) {
	defer func() { _ = st.Close() }()

	var (
		accumulated string
		flushed     string
		lastFlush   time.Time
	)
	for {
		if err := ctx.Err(); err != nil {
			sink(ErrorMessage)
			return "", fmt.Errorf("%w: %v", types.ErrGeneration, err)
		}

		delta, done, err := st.Recv()
		if err != nil {
			sink(ErrorMessage)
			return "", fmt.Errorf("%w: %v", types.ErrGeneration, err)
		}
		accumulated += delta
		if done {
			break
		}
		if accumulated != flushed && time.Since(lastFlush) >= s.interval {
			sink(accumulated)
			flushed = accumulated
			lastFlush = time.Now()
		}
	}

	// Final flush is unconditional so the sink sees the complete answer
	// even when no interval boundary was crossed.
	sink(accumulated)
	return accumulated, nil
}
