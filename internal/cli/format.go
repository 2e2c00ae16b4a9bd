package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/dreamlog/internal/models"
)

var (
	dateStyle  = lipgloss.NewStyle().Bold(true)
	typeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// CountLabel renders the "N dream(s) recorded" header
func CountLabel(n int) string {
	if n == 1 {
		return "1 dream recorded"
	}
	return fmt.Sprintf("%d dreams recorded", n)
}

// Summary is a one-line preview of an entry
func Summary(e models.Entry, showID bool) string {
	text := strings.Join(strings.Fields(e.DreamText), " ")
	if len([]rune(text)) > 60 {
		text = string([]rune(text)[:57]) + "..."
	}

	idStr := ""
	if showID {
		idStr = mutedStyle.Render(fmt.Sprintf(" (ID: %d)", e.ID))
	}

	return fmt.Sprintf("%s  %s  %s%s",
		dateStyle.Render(e.SelectedDate), typeStyle.Render(e.DreamType.Label()), text, idStr)
}

// Detail renders every field of an entry
func Detail(e models.Entry) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n", dateStyle.Render(e.SelectedDate), mutedStyle.Render(fmt.Sprintf("(ID: %d)", e.ID)))
	fmt.Fprintf(&b, "Type:          %s\n", typeStyle.Render(e.DreamType.Label()))
	fmt.Fprintf(&b, "Tone:          %d/10\n", e.Tone)
	fmt.Fprintf(&b, "Sleep quality: %d/10\n", e.SleepQuality)
	if len(e.Characters) > 0 {
		fmt.Fprintf(&b, "Characters:    %s\n", JoinNames(e.Characters))
	}
	if len(e.Locations) > 0 {
		fmt.Fprintf(&b, "Locations:     %s\n", JoinNames(e.Locations))
	}
	if len(e.Emotions) > 0 {
		fmt.Fprintf(&b, "Emotions:      %s\n", JoinNames(e.Emotions))
	}
	if len(e.Hashtags) > 0 {
		fmt.Fprintf(&b, "Hashtags:      %s\n", JoinHashtags(e.Hashtags))
	}
	if e.TodayDate != "" {
		fmt.Fprintf(&b, "Recorded:      %s\n", mutedStyle.Render(e.TodayDate))
	}
	fmt.Fprintf(&b, "\n%s\n", e.DreamText)

	return b.String()
}

func JoinNames(tags []models.NamedTag) string {
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.Name
	}
	return strings.Join(names, ", ")
}

func JoinHashtags(tags []models.Hashtag) string {
	labels := make([]string, len(tags))
	for i, t := range tags {
		labels[i] = "#" + t.Label
	}
	return strings.Join(labels, " ")
}

// SplitList splits a comma-separated tag input, dropping blanks
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
