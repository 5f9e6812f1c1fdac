package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"cartonera/internal/domain/entities"

	"github.com/stretchr/testify/assert"
)

type countingExpirer struct {
	calls atomic.Int32
	err   error
}

func (c *countingExpirer) ExpireDue(context.Context) ([]entities.Quote, error) {
	c.calls.Add(1)
	return []entities.Quote{{ID: "q-1"}}, c.err
}

func TestRunQuoteExpiry_SweepsUntilCancelled(t *testing.T) {
	uc := &countingExpirer{err: errors.New("dynamodb unavailable")}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		RunQuoteExpiry(ctx, uc, 5*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return uc.calls.Load() >= 3 }, time.Second, time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after cancel")
	}
}

func TestRunQuoteExpiry_Disabled(t *testing.T) {
	uc := &countingExpirer{}
	RunQuoteExpiry(context.Background(), uc, 0)
	assert.Equal(t, int32(0), uc.calls.Load())
}
