package commands

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"logview/dashboard"
	"logview/models"
)

const timelineWidth = 40

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255"))
	styleHeader  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Underline(true)
	styleDim     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	styleInfo    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	styleWarn    = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	styleBar     = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
	styleSection = lipgloss.NewStyle().MarginTop(1)
)

func levelStyle(level string) lipgloss.Style {
	switch strings.ToUpper(level) {
	case models.LevelError, models.LevelCritical:
		return styleError
	case models.LevelWarning:
		return styleWarn
	case models.LevelInfo:
		return styleInfo
	default:
		return styleDim
	}
}

// renderSummary prints stats, the daily timeline and the most recent entries.
func renderSummary(w io.Writer, s dashboard.Summary) error {
	var b strings.Builder

	b.WriteString(styleTitle.Render(fmt.Sprintf("%d of %d logs", s.Matched, s.Total)))
	b.WriteString(styleDim.Render(fmt.Sprintf("  search=%q level=%s range=%s",
		s.Criteria.SearchTerm, s.Criteria.Level, s.Criteria.TimeRange)))
	b.WriteByte('\n')

	stats := []string{
		styleError.Render(fmt.Sprintf("Error %d", s.Stats.Error)),
		styleWarn.Render(fmt.Sprintf("Warning %d", s.Stats.Warning)),
		styleInfo.Render(fmt.Sprintf("Info %d", s.Stats.Info)),
	}
	others := make([]string, 0, len(s.Stats.Other))
	for level := range s.Stats.Other {
		others = append(others, level)
	}
	sort.Strings(others)
	for _, level := range others {
		stats = append(stats, styleDim.Render(fmt.Sprintf("%s %d", level, s.Stats.Other[level])))
	}
	b.WriteString(strings.Join(stats, "  "))
	b.WriteByte('\n')

	b.WriteString(styleSection.Render(styleHeader.Render("Timeline")))
	b.WriteByte('\n')
	if len(s.Timeline) == 0 {
		b.WriteString(styleDim.Render("no logs in range"))
		b.WriteByte('\n')
	}
	peak := 0
	for _, p := range s.Timeline {
		peak = max(peak, p.Count)
	}
	for _, p := range s.Timeline {
		width := p.Count * timelineWidth / peak
		if width == 0 {
			width = 1
		}
		fmt.Fprintf(&b, "%-12s %s %d\n", p.Date, styleBar.Render(strings.Repeat("█", width)), p.Count)
	}

	b.WriteString(styleSection.Render(styleHeader.Render("Recent")))
	b.WriteByte('\n')
	for _, entry := range s.Recent {
		level := levelStyle(entry.Level).Render(fmt.Sprintf("%-8s", entry.Level))
		fmt.Fprintf(&b, "%s %s %s\n", styleDim.Render(entry.Timestamp), level, entry.Message)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
