package ui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"rgbdslam/internal/domain"
	"rgbdslam/internal/ports"
)

var (
	_ ports.Presenter        = (*Presenter)(nil)
	_ ports.SnapshotListener = (*Presenter)(nil)
)

// Sender delivers messages to a running program. *tea.Program implements it.
type Sender interface {
	Send(msg tea.Msg)
}

// Presenter forwards everything the capture session shows to the bubbletea
// program as messages, in order. Messages sent before Attach are queued.
type Presenter struct {
	mu      sync.Mutex
	pending []tea.Msg
	sender  Sender
}

// NewPresenter creates a detached presenter
func NewPresenter() *Presenter {
	return &Presenter{}
}

// Attach starts delivering to sender, flushing queued messages first
func (p *Presenter) Attach(sender Sender) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, msg := range p.pending {
		sender.Send(msg)
	}
	p.pending = nil
	p.sender = sender
}

func (p *Presenter) send(msg tea.Msg) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.sender == nil {
		p.pending = append(p.pending, msg)
		return
	}
	p.sender.Send(msg)
}

func (p *Presenter) SessionChanged(snapshot domain.Snapshot) {
	p.send(snapshotMsg{snapshot: snapshot})
}

func (p *Presenter) Toast(message string) {
	p.send(toastMsg{message: message})
}

func (p *Presenter) ShowProgress(title string, cancellable bool) {
	p.send(progressShowMsg{cancellable: cancellable, title: title})
}

func (p *Presenter) UpdateProgress(fraction float64) {
	p.send(progressUpdateMsg{fraction: fraction})
}

func (p *Presenter) DismissProgress() {
	p.send(progressDismissMsg{})
}

func (p *Presenter) ShowPrompt(prompt domain.Prompt) {
	p.send(promptShowMsg{prompt: prompt})
}

func (p *Presenter) DismissPrompt(id string) {
	p.send(promptDismissMsg{id: id})
}

func (p *Presenter) Share(path string) {
	p.send(shareMsg{path: path})
}
