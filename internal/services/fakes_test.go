package services

import (
	"slices"
	"sync"

	"rgbdslam/internal/domain"
)

// recordingPresenter records what the session asks the presenter to show
type recordingPresenter struct {
	mu             sync.Mutex
	dismissed      int
	progressShown  []string
	progressValues []float64
	prompts        []domain.Prompt
	shared         []string
	toasts         []string
}

func (p *recordingPresenter) Toast(message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.toasts = append(p.toasts, message)
}

func (p *recordingPresenter) ShowProgress(title string, cancellable bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.progressShown = append(p.progressShown, title)
}

func (p *recordingPresenter) UpdateProgress(fraction float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.progressValues = append(p.progressValues, fraction)
}

func (p *recordingPresenter) DismissProgress() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.dismissed++
}

func (p *recordingPresenter) ShowPrompt(prompt domain.Prompt) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.prompts = append(p.prompts, prompt)
}

func (p *recordingPresenter) DismissPrompt(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.prompts = slices.DeleteFunc(p.prompts, func(pr domain.Prompt) bool { return pr.ID == id })
}

func (p *recordingPresenter) Share(path string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.shared = append(p.shared, path)
}

func (p *recordingPresenter) Toasts() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.toasts)
}

func (p *recordingPresenter) HasToast(message string) bool {
	return slices.Contains(p.Toasts(), message)
}

func (p *recordingPresenter) Prompts() []domain.Prompt {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.prompts)
}

// PromptTitled returns the open prompt with the given title
func (p *recordingPresenter) PromptTitled(title string) (domain.Prompt, bool) {
	for _, pr := range p.Prompts() {
		if pr.Title == title {
			return pr, true
		}
	}
	return domain.Prompt{}, false
}

func (p *recordingPresenter) Shared() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.shared)
}

func (p *recordingPresenter) Dismissed() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dismissed
}

func (p *recordingPresenter) ProgressShown() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.progressShown)
}

type countingCanceller struct {
	mu    sync.Mutex
	calls int
}

func (c *countingCanceller) CancelProcessing() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
}

func (c *countingCanceller) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}
