package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/five82/labelprint/internal/logtail"
)

func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	switch m.view {
	case viewConfig:
		b.WriteString(m.renderPanel("Config", m.cfg.Path))
	case viewLog:
		subtitle := m.cfg.LogFile
		if m.warningsOnly {
			subtitle += "  (warnings only)"
		}
		b.WriteString(m.renderPanel("Log", subtitle))
	default:
		b.WriteString(m.renderLabels())
	}
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	return b.String()
}

// renderHeader shows the title, selected printer and session totals.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	bg := lipgloss.Color(m.theme.Surface)
	on := func(s lipgloss.Style) lipgloss.Style { return s.Background(bg) }
	gap := on(lipgloss.NewStyle()).Render("  ")

	printer := m.currentPrinter()
	if printer == "" {
		printer = "none configured"
	}
	parts := []string{
		on(styles.Title).Render(m.cfg.AppTitle),
		on(styles.MutedText).Render("printer ") + on(styles.AccentText).Render(printer),
		on(styles.MutedText).Render(fmt.Sprintf("rows %d", len(m.labels))),
	}
	if jobs := len(m.snapshot.Jobs); jobs > 0 {
		parts = append(parts, on(styles.MutedText).Render(
			fmt.Sprintf("jobs %d  printed %d", jobs, m.snapshot.Printed)))
	}
	if m.printing {
		parts = append(parts, on(styles.InfoText).Render("printing"))
	}
	if m.snapshot.Failing() {
		parts = append(parts, on(styles.DangerText).Render(
			fmt.Sprintf("PRINT FAILING x%d", m.snapshot.ConsecutiveFailures)))
	}
	return styles.Header.Width(m.width).Render(strings.Join(parts, gap))
}

// renderCommandBar shows the keys relevant to the current view.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles()
	bg := lipgloss.Color(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd
	switch m.view {
	case viewLog:
		filter := "Warnings"
		if m.warningsOnly {
			filter = "All"
		}
		commands = []cmd{{"w", filter}, {"j/k", "Scroll"}, {"c", "Config"}, {"esc", "Labels"}}
	case viewConfig:
		commands = []cmd{{"j/k", "Scroll"}, {"L", "Log"}, {"esc", "Labels"}}
	default:
		printDesc := "Print"
		if !m.canPrint() {
			printDesc = "(Print)"
		}
		commands = []cmd{
			{"v", "Paste"}, {"x", "Clear"}, {"[/]", "Printer"},
			{"tab", "Focus"}, {"p", printDesc}, {"c", "Config"}, {"L", "Log"},
		}
	}
	commands = append(commands, cmd{"?", "More"}, cmd{"T", m.theme.Name})

	colon := lipgloss.NewStyle().Background(bg).Render(":")
	segments := make([]string, 0, len(commands))
	for _, c := range commands {
		segments = append(segments,
			styles.AccentText.Background(bg).Render(c.key)+colon+styles.MutedText.Background(bg).Render(c.desc))
	}
	return styles.Header.Width(m.width).Render(strings.Join(segments, lipgloss.NewStyle().Background(bg).Render("  ")))
}

func (m Model) renderLabels() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(m.table.View())
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render(explanation(len(m.columns) + 1)))
	b.WriteString("\n")

	box := func(f focus) lipgloss.Style {
		if m.focus == f {
			return styles.Active
		}
		return styles.Input
	}
	printer := m.currentPrinter()
	if printer == "" {
		printer = "-"
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Bottom,
		styles.MutedText.Render("Printer: "),
		styles.AccentText.Render(printer),
		styles.MutedText.Render("    Print range: "),
		box(focusFirst).Render(m.first.View()),
		styles.MutedText.Render(" to "),
		box(focusLast).Render(m.last.View()),
	))
	return b.String()
}

func (m Model) renderPanel(title, subtitle string) string {
	styles := m.theme.Styles()
	head := styles.AccentText.Bold(true).Render(title) + "  " + styles.FaintText.Render(subtitle)
	return head + "\n" + m.viewport.View()
}

func (m Model) renderStatus() string {
	styles := m.theme.Styles()
	switch m.tone {
	case toneError:
		return styles.DangerText.Render(m.status)
	case toneOK:
		return styles.SuccessText.Render(m.status)
	default:
		return styles.MutedText.Render(m.status)
	}
}

// updateConfigViewport lists the raw settings as aligned key/value pairs.
func (m *Model) updateConfigViewport() {
	if m.view != viewConfig {
		return
	}
	styles := m.theme.Styles()
	entries := m.cfg.Entries()
	if len(entries) == 0 {
		m.viewport.SetContent(styles.FaintText.Render("No settings."))
		return
	}
	width := 0
	for _, e := range entries {
		width = max(width, len(e.Key))
	}
	var b strings.Builder
	for _, e := range entries {
		b.WriteString(styles.AccentText.Render(fmt.Sprintf("%-*s", width, e.Key)))
		b.WriteString("  ")
		b.WriteString(styles.Text.Render(e.Value))
		b.WriteString("\n")
	}
	m.viewport.SetContent(b.String())
}

// updateLogViewport colors the tail of the log by level and keeps the view
// pinned to the newest entry.
func (m *Model) updateLogViewport() {
	if m.view != viewLog {
		return
	}
	styles := m.theme.Styles()
	if m.logErr != nil {
		m.viewport.SetContent(styles.DangerText.Render(m.logErr.Error()))
		return
	}
	lines := m.logLines
	if m.warningsOnly {
		lines = logtail.Filter(lines, logrus.WarnLevel)
	}
	if len(lines) == 0 {
		m.viewport.SetContent(styles.FaintText.Render("No log entries yet."))
		return
	}
	rendered := make([]string, 0, len(lines))
	for _, line := range lines {
		style := styles.MutedText
		if lvl, ok := logtail.Level(line); ok {
			style = styles.Level(lvl)
		}
		rendered = append(rendered, style.Render(line))
	}
	m.viewport.SetContent(strings.Join(rendered, "\n"))
	m.viewport.GotoBottom()
}
