package sync_test

import (
	gosync "sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitfolio-core/internal/domain/sync"
)

func TestInFlightGuard_RejectsOverlap(t *testing.T) {
	g := sync.NewInFlightGuard()

	release, ok := g.TryAcquire("u1")
	require.True(t, ok)

	_, ok = g.TryAcquire("u1")
	assert.False(t, ok, "second acquire for the same user must be rejected")

	other, ok := g.TryAcquire("u2")
	require.True(t, ok, "other users are independent")
	other()

	release()
	release() // idempotent
	assert.Equal(t, 0, g.Len())

	again, ok := g.TryAcquire("u1")
	require.True(t, ok, "key is reusable after release")
	again()
}

func TestInFlightGuard_ConcurrentAcquire(t *testing.T) {
	g := sync.NewInFlightGuard()

	var wins atomic.Int32
	var wg gosync.WaitGroup
	start := make(chan struct{})

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			if _, ok := g.TryAcquire("u1"); ok {
				wins.Add(1)
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
}

func TestParsePrunePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    sync.PrunePolicy
		wantErr bool
	}{
		{"keep", sync.PruneKeep, false},
		{"PRUNE", sync.PruneStale, false},
		{"", sync.PruneKeep, false},
		{"sometimes", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := sync.ParsePrunePolicy(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
