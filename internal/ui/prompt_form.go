package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"rgbdslam/internal/domain"
)

// PromptForm is a Bubble Tea component answering one domain.Prompt. Choice
// prompts become a select, input prompts a single line input.
type PromptForm struct {
	Completed bool
	choice    int
	form      *huh.Form
	prompt    domain.Prompt
	text      string
}

// NewPromptForm builds the form for prompt
func NewPromptForm(prompt domain.Prompt) *PromptForm {
	pf := &PromptForm{
		prompt: prompt,
		text:   prompt.Default,
	}

	var field huh.Field
	switch prompt.Kind {
	case domain.PromptInput:
		field = huh.NewInput().
			Title(prompt.Title).
			Description(prompt.Message).
			Value(&pf.text).
			CharLimit(255)
	default:
		options := make([]huh.Option[int], len(prompt.Choices))
		for i, choice := range prompt.Choices {
			options[i] = huh.NewOption(choice, i)
		}
		// The last choice is the affirmative one
		pf.choice = len(prompt.Choices) - 1
		field = huh.NewSelect[int]().
			Title(prompt.Title).
			Description(prompt.Message).
			Options(options...).
			Value(&pf.choice)
	}

	pf.form = huh.NewForm(huh.NewGroup(field)).WithShowHelp(false)
	return pf
}

// ID returns the prompt being answered
func (pf *PromptForm) ID() string {
	return pf.prompt.ID
}

func (pf *PromptForm) Init() tea.Cmd {
	return pf.form.Init()
}

func (pf *PromptForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Escape or Ctrl+C dismisses the prompt
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.String() == "esc" || keyMsg.String() == "ctrl+c" {
			pf.choice = -1
			pf.Completed = true
			return pf, nil
		}
	}

	form, cmd := pf.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		pf.form = f
	}

	if pf.form.State == huh.StateCompleted {
		pf.Completed = true
		if pf.prompt.Kind == domain.PromptInput {
			pf.choice = len(pf.prompt.Choices) - 1
		}
		return pf, nil
	}
	return pf, cmd
}

func (pf *PromptForm) View() string {
	return pf.form.View()
}

// Result returns the chosen index, -1 when dismissed, and the input text
func (pf *PromptForm) Result() (int, string) {
	return pf.choice, pf.text
}
