// Package ui renders pipeline results for the terminal.
package ui

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/snapsolve/internal/pipeline"
	"github.com/abhisek/snapsolve/internal/question"
	"github.com/abhisek/snapsolve/internal/store"
)

// Color palette
var (
	primary = lipgloss.Color("#8B5CF6") // Purple
	success = lipgloss.Color("#22C55E") // Green
	warning = lipgloss.Color("#F97316") // Orange
	failure = lipgloss.Color("#F43F5E") // Rose
	text    = lipgloss.Color("#F8FAFC") // White
	textDim = lipgloss.Color("#94A3B8") // Slate
	border  = lipgloss.Color("#334155") // Slate
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primary)

	bodyStyle = lipgloss.NewStyle().
			Foreground(text)

	dimStyle = lipgloss.NewStyle().
			Foreground(textDim)

	answerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(success)

	uncertainStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(warning)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(failure)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(1, 2)
)

// RenderResult formats every solved question as a card. With verbose
// set, the model reasoning is included.
func RenderResult(result *pipeline.ImageResult, verbose bool) string {
	var cards []string
	for _, r := range result.Questions {
		cards = append(cards, renderCard(r, verbose))
	}

	timing := dimStyle.Render(fmt.Sprintf(
		"extract %s · resolve %s · total %s",
		result.Timing.Extract.Round(time.Millisecond),
		result.Timing.Resolve.Round(time.Millisecond),
		result.Timing.Total.Round(time.Millisecond),
	))

	return strings.Join(cards, "\n") + "\n" + timing + "\n"
}

func renderCard(r pipeline.Resolved, verbose bool) string {
	var b strings.Builder

	title := "Question"
	if r.Question.Number != "" {
		title = "Question " + r.Question.Number
	}
	meta := string(r.Question.Subject)
	if r.Question.Topic != "" {
		meta += " / " + r.Question.Topic
	}
	b.WriteString(titleStyle.Render(title) + "  " + dimStyle.Render(meta) + "\n\n")

	b.WriteString(bodyStyle.Render(r.Question.Text) + "\n\n")

	b.WriteString(renderAnswer(r) + "\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("confidence %d%% · source %s", r.Solution.Confidence, r.Solution.Source)))

	if verbose && r.Solution.Reasoning != "" {
		b.WriteString("\n\n" + dimStyle.Render(r.Solution.Reasoning))
	}

	return cardStyle.Render(b.String())
}

func renderAnswer(r pipeline.Resolved) string {
	sol := r.Solution

	switch sol.Source {
	case question.SourceError:
		return errorStyle.Render("✗ failed: " + sol.Reasoning)
	case question.SourceSolvedUncertain:
		return uncertainStyle.Render(fmt.Sprintf("? %s (uncertain)", sol.Answer))
	}

	line := "✓ " + sol.Answer
	if option, ok := r.Question.Options[question.Letter(sol.Answer)]; ok {
		line += "  " + option
	}
	return answerStyle.Render(line)
}

// RenderStats formats cache and query statistics.
func RenderStats(stats *store.Statistics) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Cache") + "\n")
	b.WriteString(bodyStyle.Render(fmt.Sprintf("%d questions stored", stats.TotalQuestions)) + "\n")
	for _, s := range question.Subjects {
		if n, ok := stats.BySubject[string(s)]; ok {
			b.WriteString(dimStyle.Render(fmt.Sprintf("  %-10s %d", s, n)) + "\n")
		}
	}

	b.WriteString("\n" + titleStyle.Render("Queries") + "\n")
	b.WriteString(bodyStyle.Render(fmt.Sprintf("%d total, %d served from cache (%.0f%%)",
		stats.TotalQueries, stats.CacheHits, stats.CacheHitRate*100)) + "\n")

	return cardStyle.Render(b.String()) + "\n"
}
