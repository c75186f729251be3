package refcount

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestHandle_ReleaseLast(t *testing.T) {
	var released []string
	h := New("cell", func(v string) { released = append(released, v) })
	require.Equal(t, int64(1), h.Refs())

	c := h.Clone()
	require.Equal(t, int64(2), h.Refs())
	require.Equal(t, "cell", c.Get())

	require.False(t, h.Release())
	require.Empty(t, released)
	require.Equal(t, int64(1), c.Refs())

	require.True(t, c.Release())
	require.Equal(t, []string{"cell"}, released)
	require.Zero(t, c.Refs())
}

func TestHandle_DoubleRelease(t *testing.T) {
	calls := 0
	h := New(1, func(int) { calls++ })
	c := h.Clone()

	require.False(t, c.Release())
	require.False(t, c.Release())
	require.Equal(t, int64(1), h.Refs())

	require.True(t, h.Release())
	require.False(t, h.Release())
	require.Equal(t, 1, calls)
}

func TestHandle_UseAfterRelease(t *testing.T) {
	h := New(1, nil)
	h.Release()

	require.Panics(t, func() { h.Get() })
	require.Panics(t, func() { h.Clone() })
}

func TestHandle_ConcurrentOwners(t *testing.T) {
	const owners = 64

	var calls atomic.Int32
	h := New(struct{}{}, func(struct{}) { calls.Add(1) })

	var wg sync.WaitGroup
	for i := 0; i < owners; i++ {
		c := h.Clone()
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer c.Release()
			_ = c.Get()
		}()
	}

	h.Release()
	wg.Wait()
	require.Equal(t, int32(1), calls.Load())
}
