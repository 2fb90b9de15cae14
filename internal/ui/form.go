package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/3cstudio/contentforge/internal/catalog"
	"github.com/3cstudio/contentforge/internal/draft"
	"github.com/3cstudio/contentforge/internal/models"
)

// editorForm is the field form for the active draft: one textarea for the
// platform's primary content field, textinputs for the remaining fields, the
// meta fields and the hashtag entry. Values are committed to the session as
// they change, so the session is always the source of truth.
type editorForm struct {
	session  *draft.Session
	platform *models.PlatformDefinition

	primary     textarea.Model   // first platform field
	inputs      []textinput.Model // remaining platform fields
	fieldNames  []string          // names for primary + inputs, in order
	metaInputs  []textinput.Model
	metaKeys    []string
	hashtag     textinput.Model
	focus       int
	lastErr     error
}

// focusable returns the total number of focus stops.
func (f *editorForm) focusable() int {
	return 1 + len(f.inputs) + len(f.metaInputs) + 1
}

// newEditorForm builds the form for the session's active platform, priming
// inputs from an existing draft (e.g. a restored autosave).
func newEditorForm(session *draft.Session) *editorForm {
	platform := session.Platform()
	d := session.Draft()
	if platform == nil || d == nil || len(platform.Fields) == 0 {
		return nil
	}

	f := &editorForm{
		session:    session,
		platform:   platform,
		fieldNames: platform.Fields,
		metaKeys:   models.MetaKeys(),
	}

	ta := textarea.New()
	ta.Placeholder = "Enter your " + platform.Fields[0] + " content..."
	ta.SetHeight(5)
	ta.CharLimit = 0
	ta.SetValue(d.Content[platform.Fields[0]])
	ta.Focus()
	f.primary = ta

	for _, field := range platform.Fields[1:] {
		ti := textinput.New()
		ti.Placeholder = catalog.FieldTip(field)
		ti.SetValue(d.Content[field])
		f.inputs = append(f.inputs, ti)
	}

	for _, key := range f.metaKeys {
		ti := textinput.New()
		switch key {
		case models.MetaSender:
			ti.Placeholder = strings.Join(models.Senders(), " | ")
		case models.MetaTheme:
			ti.Placeholder = "e.g. news, promotion"
		}
		ti.SetValue(d.Meta[key])
		f.metaInputs = append(f.metaInputs, ti)
	}

	ht := textinput.New()
	ht.Placeholder = "Add hashtag and press enter"
	f.hashtag = ht

	return f
}

// Update routes a message to the focused input and commits the new value.
func (f *editorForm) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.lastErr = nil

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "shift+tab":
			f.commitFocused()
			if key.String() == "tab" {
				f.focus = (f.focus + 1) % f.focusable()
			} else {
				f.focus = (f.focus - 1 + f.focusable()) % f.focusable()
			}
			f.applyFocus()
			return nil
		case "enter":
			if f.focus == f.hashtagIndex() {
				raw := f.hashtag.Value()
				f.hashtag.SetValue("")
				if err := f.session.AddHashtag(raw); err != nil {
					f.lastErr = err
				}
				return nil
			}
		case "backspace":
			// An empty hashtag input deletes the newest tag instead
			if f.focus == f.hashtagIndex() && f.hashtag.Value() == "" {
				tags := f.session.Draft().Hashtags
				if len(tags) > 0 {
					f.session.RemoveHashtag(tags[len(tags)-1])
				}
				return nil
			}
		}
	}

	switch {
	case f.focus == 0:
		f.primary, cmd = f.primary.Update(msg)
	case f.focus <= len(f.inputs):
		f.inputs[f.focus-1], cmd = f.inputs[f.focus-1].Update(msg)
	case f.focus < f.hashtagIndex():
		i := f.focus - 1 - len(f.inputs)
		f.metaInputs[i], cmd = f.metaInputs[i].Update(msg)
	default:
		f.hashtag, cmd = f.hashtag.Update(msg)
	}
	f.commitFocused()
	return cmd
}

func (f *editorForm) hashtagIndex() int {
	return f.focusable() - 1
}

// commitFocused writes the focused input's value through the session.
func (f *editorForm) commitFocused() {
	switch {
	case f.focus == 0:
		f.session.SetContentField(f.fieldNames[0], f.primary.Value())
	case f.focus <= len(f.inputs):
		f.session.SetContentField(f.fieldNames[f.focus], f.inputs[f.focus-1].Value())
	case f.focus < f.hashtagIndex():
		i := f.focus - 1 - len(f.inputs)
		f.session.SetMeta(f.metaKeys[i], f.metaInputs[i].Value())
	}
}

func (f *editorForm) applyFocus() {
	f.primary.Blur()
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
	for i := range f.metaInputs {
		f.metaInputs[i].Blur()
	}
	f.hashtag.Blur()

	switch {
	case f.focus == 0:
		f.primary.Focus()
	case f.focus <= len(f.inputs):
		f.inputs[f.focus-1].Focus()
	case f.focus < f.hashtagIndex():
		f.metaInputs[f.focus-1-len(f.inputs)].Focus()
	default:
		f.hashtag.Focus()
	}
}

// View renders the form with character counters and the hashtag row.
func (f *editorForm) View(s Styles) string {
	var b strings.Builder

	for i, field := range f.fieldNames {
		label := s.Label
		if f.focus == i {
			label = s.FocusLabel
		}
		used, limit, warn := f.session.FieldUsage(field)
		counter := s.Counter
		if warn {
			counter = s.CounterHot
		}
		b.WriteString(label.Render(displayName(field)))
		if limit > 0 {
			b.WriteString(" " + counter.Render(fmt.Sprintf("%d/%d", used, limit)))
		}
		b.WriteString("\n")
		if i == 0 {
			b.WriteString(f.primary.View())
		} else {
			b.WriteString(f.inputs[i-1].View())
		}
		b.WriteString("\n" + s.Tip.Render(catalog.FieldTip(field)) + "\n\n")
	}

	for i, key := range f.metaKeys {
		label := s.Label
		if f.focus == 1+len(f.inputs)+i {
			label = s.FocusLabel
		}
		b.WriteString(label.Render(displayName(key)) + "\n")
		b.WriteString(f.metaInputs[i].View() + "\n")
	}
	if voice := f.session.Draft().Meta[models.MetaBrandVoice]; voice != "" {
		b.WriteString(s.Tip.Render("Brand voice: "+voice) + "\n")
	}
	b.WriteString("\n")

	label := s.Label
	if f.focus == f.hashtagIndex() {
		label = s.FocusLabel
	}
	b.WriteString(label.Render("Hashtags") + " " +
		s.Counter.Render(fmt.Sprintf("%d/%d", f.session.HashtagCount(), f.platform.Hashtags.Max)))
	b.WriteString("\n" + f.hashtag.View() + "\n")
	if tags := f.session.Draft().Hashtags; len(tags) > 0 {
		rendered := make([]string, len(tags))
		for i, tag := range tags {
			rendered[i] = s.Hashtag.Render("#" + tag)
		}
		b.WriteString(strings.Join(rendered, " ") + "\n")
	}
	b.WriteString(s.Tip.Render(fmt.Sprintf("Recommended: %d hashtags | Max: %d",
		f.platform.Hashtags.Recommended, f.platform.Hashtags.Max)) + "\n")

	if f.lastErr != nil {
		b.WriteString("\n" + s.Issue.Render(f.lastErr.Error()) + "\n")
	}

	return b.String()
}

// displayName turns a snake_case key into a label.
func displayName(field string) string {
	words := strings.Split(field, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
