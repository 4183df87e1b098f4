package receipt

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

type memCounter struct {
	mu      sync.Mutex
	current int64
	err     error
}

func (c *memCounter) IncrementReceiptCounter(ctx context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return 0, c.err
	}
	n := c.current
	c.current++
	return n, nil
}

func TestFormat(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{1, "0001"},
		{42, "0042"},
		{9999, "9999"},
		{10000, "10000"},
		{123456, "123456"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Format(tt.n))
	}
}

func TestNext_Sequential(t *testing.T) {
	a := NewAllocator(&memCounter{current: 1})

	first, err := a.Next(context.Background())
	require.NoError(t, err)
	second, err := a.Next(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "0001", first)
	assert.Equal(t, "0002", second)
}

func TestNext_ConcurrentCallsAreDistinctAndGapless(t *testing.T) {
	const n = 200
	counter := &memCounter{current: 1}
	a := NewAllocator(counter)

	var mu sync.Mutex
	got := make([]string, 0, n)

	g, ctx := errgroup.WithContext(context.Background())
	for i := 0; i < n; i++ {
		g.Go(func() error {
			no, err := a.Next(ctx)
			if err != nil {
				return err
			}
			mu.Lock()
			got = append(got, no)
			mu.Unlock()
			return nil
		})
	}
	require.NoError(t, g.Wait())

	sort.Strings(got)
	require.Len(t, got, n)
	for i, no := range got {
		assert.Equal(t, Format(int64(i+1)), no)
	}
	assert.Equal(t, int64(n+1), counter.current)
}

func TestNext_PropagatesCounterError(t *testing.T) {
	sentinel := errors.New("counter missing")
	a := NewAllocator(&memCounter{err: sentinel})

	_, err := a.Next(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel)
}
