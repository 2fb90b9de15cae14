// Package ui implements the interactive terminal interface: a platform
// picker, the template editor form, a styled preview and a browser for saved
// templates. All state changes go through the editing session and the
// service; the UI renders results and surfaces errors, nothing more.
package ui

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/3cstudio/contentforge/internal/draft"
	"github.com/3cstudio/contentforge/internal/errors"
	"github.com/3cstudio/contentforge/internal/models"
	"github.com/3cstudio/contentforge/internal/renderer"
	"github.com/3cstudio/contentforge/internal/service"
)

// ViewMode identifies the active screen.
type ViewMode int

const (
	ViewPicker ViewMode = iota
	ViewEditor
	ViewSaveName
	ViewPreview
	ViewBrowser
)

// statusTimeoutMsg clears the transient status line.
type statusTimeoutMsg struct{}

// Model is the bubbletea model for the whole TUI.
type Model struct {
	service *service.Service
	session *draft.Session

	viewMode ViewMode
	styles   Styles

	platformList list.Model
	templateList list.Model
	form         *editorForm
	nameInput    textinput.Model
	preview      string

	errorHandler *errors.TUIErrorHandler
	statusMsg    string
	err          error

	width  int
	height int
}

// NewModel creates the TUI model. When the session already carries a draft
// (a restored autosave) the editor opens directly.
func NewModel(svc *service.Service, session *draft.Session) Model {
	styles := NewStyles()

	defs := svc.Catalog().List()
	items := make([]list.Item, len(defs))
	for i, def := range defs {
		items[i] = *def
	}
	platformList := list.New(items, list.NewDefaultDelegate(), 0, 0)
	platformList.Title = "Select a platform"

	templateList := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	templateList.Title = "Saved templates"

	nameInput := textinput.New()
	nameInput.Placeholder = "Template name"

	m := Model{
		service:      svc,
		session:      session,
		viewMode:     ViewPicker,
		styles:       styles,
		platformList: platformList,
		templateList: templateList,
		nameInput:    nameInput,
		errorHandler: errors.NewTUIErrorHandler(os.Getenv("DEBUG") == "true"),
	}

	if session.Active() {
		if form := newEditorForm(session); form != nil {
			m.form = form
			m.viewMode = ViewEditor
			m.statusMsg = "Restored autosaved draft"
		}
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.platformList.SetSize(msg.Width-4, msg.Height-6)
		m.templateList.SetSize(msg.Width-4, msg.Height-6)
		return m, nil

	case statusTimeoutMsg:
		m.statusMsg = ""
		return m, nil

	case tea.KeyMsg:
		switch m.viewMode {
		case ViewPicker:
			return m.updatePicker(msg)
		case ViewEditor:
			return m.updateEditor(msg)
		case ViewSaveName:
			return m.updateSaveName(msg)
		case ViewPreview:
			if msg.String() == "esc" || msg.String() == "q" {
				m.viewMode = ViewEditor
			}
			return m, nil
		case ViewBrowser:
			return m.updateBrowser(msg)
		}
	}
	return m, nil
}

func (m Model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.session.Close()
		return m, tea.Quit
	case "enter":
		if def, ok := m.platformList.SelectedItem().(models.PlatformDefinition); ok {
			if err := m.session.StartDraft(def.Key); err != nil {
				return m.fail(err), nil
			}
			m.form = newEditorForm(m.session)
			if m.form == nil {
				return m.fail(errors.InternalError("platform has no form fields")), nil
			}
			m.viewMode = ViewEditor
			m.err = nil
		}
		return m, nil
	case "b":
		return m.openBrowser()
	}
	var cmd tea.Cmd
	m.platformList, cmd = m.platformList.Update(msg)
	return m, cmd
}

func (m Model) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.session.Close()
		return m, tea.Quit
	case "esc":
		m.viewMode = ViewPicker
		return m, nil
	case "ctrl+s":
		m.nameInput.SetValue("")
		m.nameInput.Focus()
		m.viewMode = ViewSaveName
		return m, nil
	case "ctrl+p":
		return m.openPreview()
	case "ctrl+e":
		return m.exportDraft()
	case "ctrl+b":
		return m.openBrowser()
	}
	cmd := m.form.Update(msg)
	return m, cmd
}

func (m Model) updateSaveName(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.viewMode = ViewEditor
		return m, nil
	case "enter":
		snapshot, err := m.session.Snapshot()
		if err != nil {
			return m.fail(err), nil
		}
		id, err := m.service.SaveTemplate(m.nameInput.Value(), snapshot)
		if err != nil {
			return m.fail(err), nil
		}
		m.service.ClearAutosave()
		m.viewMode = ViewEditor
		return m.status(fmt.Sprintf("Saved as %s", id))
	}
	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m Model) updateBrowser(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.session.Close()
		return m, tea.Quit
	case "esc":
		if m.session.Active() {
			m.viewMode = ViewEditor
		} else {
			m.viewMode = ViewPicker
		}
		return m, nil
	case "enter":
		if record, ok := m.templateList.SelectedItem().(models.SavedTemplate); ok {
			if _, err := m.service.LoadTemplateIntoSession(record.ID, m.session); err != nil {
				return m.fail(err), nil
			}
			form := newEditorForm(m.session)
			if form == nil {
				return m.fail(errors.InternalError("platform has no form fields")), nil
			}
			m.form = form
			m.viewMode = ViewEditor
			return m.status(fmt.Sprintf("Loaded %q", record.Name))
		}
		return m, nil
	case "d":
		if record, ok := m.templateList.SelectedItem().(models.SavedTemplate); ok {
			if err := m.service.DeleteTemplate(record.ID); err != nil {
				return m.fail(err), nil
			}
			m.reloadTemplates()
			return m.status(fmt.Sprintf("Deleted %q", record.Name))
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.templateList, cmd = m.templateList.Update(msg)
	return m, cmd
}

func (m Model) openBrowser() (tea.Model, tea.Cmd) {
	m.reloadTemplates()
	m.viewMode = ViewBrowser
	return m, nil
}

func (m *Model) reloadTemplates() {
	records := m.service.ListTemplates()
	items := make([]list.Item, len(records))
	for i, record := range records {
		items[i] = record
	}
	m.templateList.SetItems(items)
}

func (m Model) openPreview() (tea.Model, tea.Cmd) {
	snapshot, err := m.session.Snapshot()
	if err != nil {
		return m.fail(err), nil
	}
	width := m.width - 4
	if width <= 0 || width > 100 {
		width = 80
	}
	rendered, err := renderer.Terminal(snapshot, m.session.Platform(), width)
	if err != nil {
		rendered = renderer.Markdown(snapshot, m.session.Platform())
	}
	m.preview = rendered
	m.viewMode = ViewPreview
	return m, nil
}

func (m Model) exportDraft() (tea.Model, tea.Cmd) {
	snapshot, err := m.session.Snapshot()
	if err != nil {
		return m.fail(err), nil
	}
	data, filename, err := m.service.ExportTemplate(snapshot, "json")
	if err != nil {
		return m.fail(err), nil
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return m.fail(errors.PersistenceError("write export", err)), nil
	}
	return m.status("Exported to " + filename)
}

func (m Model) fail(err error) Model {
	m.errorHandler.HandleError(err)
	m.err = err
	return m
}

func (m Model) status(text string) (tea.Model, tea.Cmd) {
	m.statusMsg = text
	m.err = nil
	return m, tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return statusTimeoutMsg{}
	})
}

// View implements tea.Model.
func (m Model) View() string {
	var body string

	switch m.viewMode {
	case ViewPicker:
		body = m.platformList.View() +
			m.styles.Help.Render("\nenter: open editor • b: saved templates • q: quit")
	case ViewEditor:
		platform := m.session.Platform()
		header := m.styles.Title.Render(platform.Name + " Content Template")
		stats := m.styles.Subtitle.Render(
			fmt.Sprintf("%d features • character limits apply", len(platform.Features)))
		issues := ""
		for _, issue := range m.session.Validate() {
			issues += m.styles.Issue.Render("• "+issue.Field+": "+issue.Reason) + "\n"
		}
		body = lipgloss.JoinVertical(lipgloss.Left,
			header, stats, "", m.form.View(m.styles), issues,
			m.styles.Help.Render("tab: next field • ctrl+s: save • ctrl+p: preview • ctrl+e: export • ctrl+b: browse • esc: platforms"))
	case ViewSaveName:
		body = m.styles.Title.Render("Save template") + "\n" +
			m.nameInput.View() +
			m.styles.Help.Render("\nenter: save • esc: cancel")
	case ViewPreview:
		body = m.preview + m.styles.Help.Render("\nesc: back to editor")
	case ViewBrowser:
		body = m.templateList.View() +
			m.styles.Help.Render("\nenter: load • d: delete • esc: back")
	}

	footer := ""
	if m.statusMsg != "" {
		footer = "\n" + m.styles.Status.Render(m.statusMsg)
	}
	if m.err != nil {
		icon, _ := m.errorHandler.GetErrorStyle(m.err)
		footer = "\n" + m.styles.Error.Render(icon+" "+m.errorHandler.FormatError(m.err))
	}

	return body + footer
}

// Run starts the interactive TUI, restoring any autosaved draft first.
func Run(svc *service.Service) error {
	session := svc.NewSession()
	// A leftover autosave means the previous session ended mid-edit
	svc.RestoreAutosave(session)

	p := tea.NewProgram(NewModel(svc, session), tea.WithAltScreen())
	_, err := p.Run()
	session.Close()
	return err
}
