package production

import (
	"context"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/greaheisl/relaybox/internal/sim"
)

// PublishedRecord bundles a trace record with the run it belongs to.
type PublishedRecord struct {
	RunID    uuid.UUID
	Scenario string
	Record   sim.Record
}

// ChannelPublisher forwards records to a Go channel.
// Non-blocking publish with drop on backpressure.
type ChannelPublisher struct {
	ch      chan<- PublishedRecord
	dropped atomic.Uint64
}

// NewChannelPublisher creates a ChannelPublisher with the given output channel.
func NewChannelPublisher(ch chan<- PublishedRecord) *ChannelPublisher {
	return &ChannelPublisher{ch: ch}
}

// Publish sends rec unless the channel is full.
func (p *ChannelPublisher) Publish(ctx context.Context, runID uuid.UUID, scenario string, rec sim.Record) error {
	select {
	case p.ch <- PublishedRecord{RunID: runID, Scenario: scenario, Record: rec}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		p.dropped.Add(1)
		return nil
	}
}

// Hook returns a record hook for sim.WithRecordHook that publishes every
// record of the given run.
func (p *ChannelPublisher) Hook(ctx context.Context, runID uuid.UUID, scenario string) func(sim.Record) {
	return func(rec sim.Record) {
		_ = p.Publish(ctx, runID, scenario, rec)
	}
}

// Dropped returns the number of records dropped on backpressure.
func (p *ChannelPublisher) Dropped() uint64 {
	return p.dropped.Load()
}

func (p *ChannelPublisher) Close() error {
	close(p.ch)
	return nil
}
