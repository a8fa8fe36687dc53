package server

import (
	"crypto/ed25519"
	"crypto/rand"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gossh "golang.org/x/crypto/ssh"
)

func newPublicKey(t *testing.T) gossh.PublicKey {
	t.Helper()
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	key, err := gossh.NewPublicKey(pub)
	require.NoError(t, err)
	return key
}

func TestIsKeyAuthorized(t *testing.T) {
	allowed := newPublicKey(t)
	other := newPublicKey(t)

	path := filepath.Join(t.TempDir(), "authorized_keys")
	content := "# team keys\n\nnot a key\n" + string(gossh.MarshalAuthorizedKey(allowed))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	tests := []struct {
		name string
		key  gossh.PublicKey
		path string
		want bool
	}{
		{"listed key", allowed, path, true},
		{"unknown key", other, path, false},
		{"missing file", allowed, filepath.Join(t.TempDir(), "missing"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isKeyAuthorized(tt.key, tt.path))
		})
	}
}

func TestUserDirName(t *testing.T) {
	tests := []struct {
		user string
		want string
	}{
		{"alice", "alice"},
		{"../../etc", "etc"},
		{"", "anonymous"},
		{"..", "anonymous"},
		{"field_tech-2", "field_tech-2"},
	}

	for _, tt := range tests {
		t.Run(tt.user, func(t *testing.T) {
			assert.Equal(t, tt.want, userDirName(tt.user))
		})
	}
}

func TestPump(t *testing.T) {
	t.Run("delivers in order", func(t *testing.T) {
		done := make(chan struct{})
		p := newPump(done)

		go func() {
			p.Send("first")
			p.Send("second")
		}()

		assert.Equal(t, pumpMsg{msg: "first"}, p.next()())
		assert.Equal(t, pumpMsg{msg: "second"}, p.next()())
	})

	t.Run("stops when the connection ends", func(t *testing.T) {
		done := make(chan struct{})
		p := newPump(done)
		close(done)

		p.Send("dropped")
		assert.Nil(t, p.next()())
	})
}

func TestErrorModelQuits(t *testing.T) {
	m := errorModel{err: os.ErrPermission}
	_, cmd := m.Update(tea.KeyMsg{})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.Contains(t, m.View(), "permission denied")
}
