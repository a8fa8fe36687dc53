package application

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rgbdslam/internal/config"
	"rgbdslam/internal/domain"
	"rgbdslam/internal/ports"
)

type collectingSender struct {
	mu   sync.Mutex
	msgs []tea.Msg
}

func (c *collectingSender) Send(msg tea.Msg) {
	c.mu.Lock()
	c.msgs = append(c.msgs, msg)
	c.mu.Unlock()
}

func (c *collectingSender) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.msgs)
}

func testOptions(t *testing.T, dataDir string) Options {
	t.Helper()
	return Options{
		CatalogPath: filepath.Join(t.TempDir(), "catalog.db"),
		DataDir:     dataDir,
		Depth:       true,
		Permission:  ports.PermissionAuthorized,
		Settings:    config.NewStaticStore(config.Settings{}),
		StepDelay:   time.Millisecond,
	}
}

func TestNewCapture_StartsInWelcome(t *testing.T) {
	capture, err := NewCapture(testOptions(t, t.TempDir()))
	require.NoError(t, err)

	sender := &collectingSender{}
	capture.Start(sender)

	require.Eventually(t, func() bool { return sender.count() > 0 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, domain.StateWelcome, capture.Session.Snapshot().State)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, capture.Close(ctx))
}

func TestNewCapture_DataDirIsExclusive(t *testing.T) {
	dir := t.TempDir()
	first, err := NewCapture(testOptions(t, dir))
	require.NoError(t, err)

	_, err = NewCapture(testOptions(t, dir))
	assert.True(t, errors.Is(err, domain.ErrWorkspaceLocked))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, first.Close(ctx))

	second, err := NewCapture(testOptions(t, dir))
	require.NoError(t, err)
	require.NoError(t, second.Close(ctx))
}
