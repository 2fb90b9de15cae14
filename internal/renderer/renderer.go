// Package renderer builds a human-readable preview of a draft snapshot. The
// markdown form is deterministic given the snapshot; the terminal form runs
// it through glamour for styled display in the CLI and TUI.
package renderer

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/3cstudio/contentforge/internal/models"
)

// Markdown renders a snapshot as a markdown preview document. The platform
// definition supplies the display name and limits; it may be nil when the
// platform is unknown.
func Markdown(snapshot *models.TemplateDraft, platform *models.PlatformDefinition) string {
	var b strings.Builder

	name := snapshot.Platform
	if platform != nil {
		name = platform.Name
	}
	fmt.Fprintf(&b, "# %s Preview\n\n", name)

	if len(snapshot.Meta) > 0 {
		for _, key := range append(models.MetaKeys(), models.MetaBrandVoice) {
			if value, ok := snapshot.Meta[key]; ok {
				fmt.Fprintf(&b, "- **%s**: %s\n", FormatFieldName(key), value)
			}
		}
		b.WriteString("\n")
	}

	fields := snapshot.ContentFieldsInOrder(platform)
	for _, field := range fields {
		fmt.Fprintf(&b, "## %s\n\n%s\n\n", FormatFieldName(field), snapshot.Content[field])
	}

	if len(snapshot.Hashtags) > 0 {
		b.WriteString("## Hashtags\n\n")
		for i, tag := range snapshot.Hashtags {
			if i > 0 {
				b.WriteString(" ")
			}
			b.WriteString("#" + tag)
		}
		b.WriteString("\n\n")
	}

	if opts := optionLines(snapshot.Options); len(opts) > 0 {
		b.WriteString("## Options\n\n")
		for _, line := range opts {
			b.WriteString(line + "\n")
		}
	}

	return b.String()
}

func optionLines(opts models.DraftOptions) []string {
	var lines []string
	if opts.Tone != "" {
		lines = append(lines, "- Tone: "+opts.Tone)
	}
	if opts.ContentType != "" {
		lines = append(lines, "- Content type: "+FormatFieldName(opts.ContentType))
	}
	if opts.SchedulePost {
		when := opts.ScheduleTime
		if when == "" {
			when = "unscheduled"
		}
		lines = append(lines, "- Scheduled: "+when)
	}
	return lines
}

// FormatFieldName turns a snake_case field key into a display label, e.g.
// "media_type" -> "Media Type".
func FormatFieldName(field string) string {
	words := strings.Split(field, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// Terminal renders the markdown preview for terminal display via glamour.
func Terminal(snapshot *models.TemplateDraft, platform *models.PlatformDefinition, wordWrap int) (string, error) {
	r, err := newTermRenderer(wordWrap)
	if err != nil {
		return "", fmt.Errorf("failed to create renderer: %w", err)
	}
	return r.Render(Markdown(snapshot, platform))
}

// newTermRenderer creates a glamour renderer matched to the terminal
// background, honoring the GLAMOUR_STYLE override.
func newTermRenderer(wordWrap int) (*glamour.TermRenderer, error) {
	if style := os.Getenv("GLAMOUR_STYLE"); style != "" {
		return glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(wordWrap),
		)
	}

	style := "light"
	if lipgloss.HasDarkBackground() {
		style = "dark"
	}
	return glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(wordWrap),
	)
}
