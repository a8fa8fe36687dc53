package ui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"rgbdslam/internal/domain"
	"rgbdslam/internal/theme"
)

func (m *Model) View() string {
	switch m.state {
	case stateHelp:
		if m.helpScreen != nil {
			return m.helpScreen.View()
		}
	case stateCommandPalette:
		if m.commandPalette != nil {
			return bottomAnchoredOverlay(m.renderCapture(), m.commandPalette.View(), m.width, m.height)
		}
	case statePrompt:
		if m.prompt != nil {
			return compositeOverlay(m.renderCapture(), theme.PanelStyle.Render(m.prompt.View()), m.width, m.height)
		}
	}

	view := m.renderCapture()
	if m.progressVisible {
		return compositeOverlay(view, m.renderProgress(), m.width, m.height)
	}
	return view
}

// renderCapture draws the capture screen: header, state line, statistics and
// the HUD bar
func (m *Model) renderCapture() string {
	snap := m.snapshot

	var b strings.Builder
	b.WriteString(renderHeader(m.devMode, ""))
	b.WriteString("\n")
	b.WriteString(m.renderStatusLine())
	b.WriteString("\n\n")

	if snap.HUDVisible {
		b.WriteString(m.renderStats())
		b.WriteString("\n")
	}

	// Bottom section: toast, else a tip on the welcome screen
	switch {
	case m.toast != "":
		b.WriteString(theme.ToastStyle.Render(m.toast))
	case snap.State == domain.StateWelcome:
		if tips := GetTips(); len(tips) > 0 {
			b.WriteString(RenderTip(tips[m.tipIndex%len(tips)]))
		}
	}
	b.WriteString("\n\n")

	if snap.HUDVisible {
		b.WriteString(m.help.View(m.keys))
	} else {
		b.WriteString(theme.DimmedStyle.Render("press " + firstKey(m.keys.Application.HUD) + " or click to show the HUD"))
	}
	return b.String()
}

func (m *Model) renderStatusLine() string {
	snap := m.snapshot
	parts := []string{theme.StateStyle(snap.State.String()).Render(snap.State.Label())}

	if snap.HasOpenedDatabase() {
		parts = append(parts, theme.NormalStyle.Render(filepath.Base(snap.OpenedDatabasePath)))
	}
	parts = append(parts, theme.DimmedStyle.Render(fmt.Sprintf("view %s · camera %s",
		strings.ReplaceAll(snap.ViewMode.String(), "_", " "),
		strings.ReplaceAll(snap.CameraType.String(), "_", " "))))
	if snap.PendingJob != nil {
		parts = append(parts, m.spinner.View()+theme.DimmedStyle.Render(snap.PendingJob.Title()))
	}
	return strings.Join(parts, "  ")
}

func (m *Model) renderStats() string {
	snap := m.snapshot
	stats := snap.LastStats

	row := func(label, value string) string {
		return theme.StatLabelStyle.Render(label) + theme.StatValueStyle.Render(value)
	}
	loops := humanize.Comma(int64(snap.TotalLoopClosures))
	if stats.LoopClosureID > 0 {
		loops += theme.LoopClosureStyle.Render(fmt.Sprintf("  last #%d", stats.LoopClosureID))
	}

	rows := []string{
		row("Nodes", humanize.Comma(int64(snap.MapNodes))),
		row("Words", humanize.Comma(int64(stats.Words))),
		row("Points", humanize.Comma(int64(stats.Points))),
		row("Polygons", humanize.Comma(int64(stats.Polygons))),
		row("Loop closures", loops),
		row("Inliers", fmt.Sprintf("%d / %d", stats.Inliers, stats.Matches)),
		row("Update", fmt.Sprintf("%s @ %.1f Hz", stats.UpdateTime.Round(100*time.Microsecond), stats.FPS)),
	}
	if stats.Rejected > 0 {
		rows = append(rows, theme.ErrorStyle.Render(fmt.Sprintf("%d update(s) rejected", stats.Rejected)))
	}
	return theme.PanelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m *Model) renderProgress() string {
	title := m.spinner.View() + theme.SubtitleStyle.Render(m.progressTitle)
	body := title + "\n\n" + m.progressBar.View()
	if m.progressCancellable {
		body += "\n\n" + theme.DimmedStyle.Render("press "+firstKey(m.keys.Application.Cancel)+" to cancel")
	}
	return theme.ProgressBoxStyle.Render(body)
}

func firstKey(k KeyWithTip) string {
	if keys := k.Binding.Keys(); len(keys) > 0 {
		return keys[0]
	}
	return "?"
}
