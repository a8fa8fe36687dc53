package ports

import "rgbdslam/internal/domain"

// Notifier shows transient messages
type Notifier interface {
	Toast(message string)
}

// ProgressPresenter shows the modal progress indicator of a background job
type ProgressPresenter interface {
	DismissProgress()
	ShowProgress(title string, cancellable bool)
	UpdateProgress(fraction float64)
}

// PromptPresenter shows modal questions
type PromptPresenter interface {
	DismissPrompt(id string)
	ShowPrompt(prompt domain.Prompt)
}

// Sharer hands a file over to the platform share action
type Sharer interface {
	Share(path string)
}

// Presenter is the composite interface
type Presenter interface {
	Notifier
	ProgressPresenter
	PromptPresenter
	Sharer
}
