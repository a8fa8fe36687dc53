package ar

import (
	"fmt"
	"strings"
	"sync"

	"rgbdslam/internal/logging"
	"rgbdslam/internal/ports"
)

var _ ports.CameraPermission = (*Permission)(nil)

// Permission is a simulated camera authorization. A pending request is
// answered with the configured grant.
type Permission struct {
	mu     sync.Mutex
	grant  bool
	status ports.PermissionStatus
}

// NewPermission creates a Permission in the given state. Requests made while
// not determined are answered with grant.
func NewPermission(status ports.PermissionStatus, grant bool) *Permission {
	return &Permission{grant: grant, status: status}
}

// ParsePermission maps "authorized", "denied" or "prompt" to a status
func ParsePermission(value string) (ports.PermissionStatus, error) {
	switch strings.ToLower(value) {
	case "authorized", "":
		return ports.PermissionAuthorized, nil
	case "denied":
		return ports.PermissionDenied, nil
	case "prompt":
		return ports.PermissionNotDetermined, nil
	default:
		return 0, fmt.Errorf("invalid camera permission %q (use authorized, denied or prompt)", value)
	}
}

// Status returns the current authorization
func (p *Permission) Status() ports.PermissionStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

// Request asks for access. done runs on another goroutine.
func (p *Permission) Request(done func(granted bool)) {
	p.mu.Lock()
	if p.status == ports.PermissionNotDetermined {
		if p.grant {
			p.status = ports.PermissionAuthorized
		} else {
			p.status = ports.PermissionDenied
		}
	}
	granted := p.status == ports.PermissionAuthorized
	p.mu.Unlock()

	logging.Logger.Info("Camera permission requested", "granted", granted)
	go done(granted)
}

// OpenSettings stands in for the system settings page: access is granted
// from then on
func (p *Permission) OpenSettings() {
	p.mu.Lock()
	p.status = ports.PermissionAuthorized
	p.mu.Unlock()
	logging.Logger.Info("Camera permission granted from settings")
}
