package services

import (
	"context"
	"sync"
)

// Sequencer serializes mutating operations so that each one, validation reads
// included, observes the effects of all operations before it.
type Sequencer struct {
	mu sync.Mutex
}

// NewSequencer returns a ready to use Sequencer.
func NewSequencer() *Sequencer {
	return &Sequencer{}
}

// Do runs fn while holding the sequencer. fn must not call Do again.
func (s *Sequencer) Do(ctx context.Context, fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn()
}
