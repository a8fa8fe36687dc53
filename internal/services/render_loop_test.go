package services

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rgbdslam/internal/domain"
)

type scriptedRenderer struct {
	calls atomic.Int32
	code  atomic.Int32
}

func (r *scriptedRenderer) Render() domain.RenderCode {
	r.calls.Add(1)
	return domain.RenderCode(r.code.Load())
}

func TestRenderLoop_RendersOnlyWhenRunning(t *testing.T) {
	clk := clock.NewMock()
	renderer := &scriptedRenderer{}
	loop := NewRenderLoop(clk, renderer, 10*time.Millisecond, nil)
	defer loop.Close()

	require.True(t, loop.Paused())
	clk.Add(100 * time.Millisecond)
	assert.Zero(t, loop.Frames())

	loop.SetPaused(false)
	assert.Eventually(t, func() bool {
		clk.Add(10 * time.Millisecond)
		return loop.Frames() >= 3
	}, 2*time.Second, time.Millisecond)
}

func TestRenderLoop_InvalidateWhilePausedRendersOnce(t *testing.T) {
	clk := clock.NewMock()
	renderer := &scriptedRenderer{}
	loop := NewRenderLoop(clk, renderer, time.Hour, nil)
	defer loop.Close()

	for i := 0; i < 5; i++ {
		loop.Invalidate()
	}

	require.Eventually(t, func() bool { return loop.Frames() == 1 }, 2*time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int64(1), loop.Frames())
}

func TestRenderLoop_ReportsErrors(t *testing.T) {
	clk := clock.NewMock()
	renderer := &scriptedRenderer{}
	renderer.code.Store(int32(domain.RenderOutOfMemory))

	var mu sync.Mutex
	var codes []domain.RenderCode
	loop := NewRenderLoop(clk, renderer, time.Hour, func(code domain.RenderCode) {
		mu.Lock()
		defer mu.Unlock()
		codes = append(codes, code)
	})

	loop.Invalidate()
	require.Eventually(t, func() bool { return loop.Frames() == 1 }, 2*time.Second, 5*time.Millisecond)
	require.NoError(t, loop.Close())
	require.NoError(t, loop.Close())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []domain.RenderCode{domain.RenderOutOfMemory}, codes)
}
