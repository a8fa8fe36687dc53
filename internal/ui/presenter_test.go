package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"rgbdslam/internal/domain"
)

func TestPresenter_QueuesUntilAttached(t *testing.T) {
	p := NewPresenter()
	p.ShowProgress("Saving", true)
	p.UpdateProgress(0.5)

	sender := &recordingSender{}
	p.Attach(sender)
	p.DismissProgress()

	assert.Equal(t, []tea.Msg{
		progressShowMsg{cancellable: true, title: "Saving"},
		progressUpdateMsg{fraction: 0.5},
		progressDismissMsg{},
	}, sender.msgs)
}

func TestPresenter_MessageTypes(t *testing.T) {
	prompt := domain.Prompt{ID: "p1", Title: "Recovery"}
	snapshot := domain.Snapshot{State: domain.StateIdle}

	tests := []struct {
		name string
		call func(p *Presenter)
		want tea.Msg
	}{
		{"toast", func(p *Presenter) { p.Toast("Database saved!") }, toastMsg{message: "Database saved!"}},
		{"show prompt", func(p *Presenter) { p.ShowPrompt(prompt) }, promptShowMsg{prompt: prompt}},
		{"dismiss prompt", func(p *Presenter) { p.DismissPrompt("p1") }, promptDismissMsg{id: "p1"}},
		{"share", func(p *Presenter) { p.Share("/tmp/scan.zip") }, shareMsg{path: "/tmp/scan.zip"}},
		{"snapshot", func(p *Presenter) { p.SessionChanged(snapshot) }, snapshotMsg{snapshot: snapshot}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := &recordingSender{}
			p := NewPresenter()
			p.Attach(sender)

			tt.call(p)

			assert.Equal(t, []tea.Msg{tt.want}, sender.msgs)
		})
	}
}
