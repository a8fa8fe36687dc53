package ar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rgbdslam/internal/ports"
)

func TestPermission_Request(t *testing.T) {
	tests := []struct {
		name    string
		status  ports.PermissionStatus
		grant   bool
		granted bool
		after   ports.PermissionStatus
	}{
		{"prompt granted", ports.PermissionNotDetermined, true, true, ports.PermissionAuthorized},
		{"prompt refused", ports.PermissionNotDetermined, false, false, ports.PermissionDenied},
		{"already denied", ports.PermissionDenied, true, false, ports.PermissionDenied},
		{"already authorized", ports.PermissionAuthorized, false, true, ports.PermissionAuthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPermission(tt.status, tt.grant)
			answers := make(chan bool, 1)

			p.Request(func(granted bool) { answers <- granted })

			select {
			case granted := <-answers:
				assert.Equal(t, tt.granted, granted)
			case <-time.After(time.Second):
				t.Fatal("request never answered")
			}
			assert.Equal(t, tt.after, p.Status())
		})
	}
}

func TestPermission_OpenSettingsAuthorizes(t *testing.T) {
	p := NewPermission(ports.PermissionDenied, false)
	p.OpenSettings()
	assert.Equal(t, ports.PermissionAuthorized, p.Status())
}

func TestParsePermission(t *testing.T) {
	status, err := ParsePermission("Denied")
	require.NoError(t, err)
	assert.Equal(t, ports.PermissionDenied, status)

	status, err = ParsePermission("")
	require.NoError(t, err)
	assert.Equal(t, ports.PermissionAuthorized, status)

	_, err = ParsePermission("maybe")
	assert.Error(t, err)
}
