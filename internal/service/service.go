// Package service wires the engine together: the platform catalog, the
// template store, the registries, the autosave slot and the export adapter.
// Interfaces (CLI, TUI) construct one Service and go through it for
// everything except live draft editing, which happens on a Session the
// Service hands out.
package service

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/3cstudio/contentforge/internal/catalog"
	"github.com/3cstudio/contentforge/internal/draft"
	"github.com/3cstudio/contentforge/internal/errors"
	"github.com/3cstudio/contentforge/internal/export"
	"github.com/3cstudio/contentforge/internal/models"
	"github.com/3cstudio/contentforge/internal/storage"
)

// PlatformsFile is the optional catalog override inside the data directory.
const PlatformsFile = "platforms.yaml"

// Service provides business logic for template management
type Service struct {
	kv        storage.KV
	catalog   *catalog.Catalog
	store     *storage.TemplateStore
	labels    *storage.Registry
	audiences *storage.Registry
	autosave  *storage.AutosaveSlot
	forwards  *storage.ForwardLog
	adapter   *export.Adapter
}

// NewService creates a service backed by the file store in the data
// directory (CONTENT_FORGE_DIR or ~/.content-forge).
func NewService() (*Service, error) {
	kv, err := storage.NewFileKV("")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	cat := catalog.Load(filepath.Join(kv.BaseDir(), PlatformsFile))
	return NewServiceWith(kv, cat), nil
}

// NewServiceWith creates a service over an explicit store and catalog, so
// tests can inject an in-memory KV.
func NewServiceWith(kv storage.KV, cat *catalog.Catalog) *Service {
	return &Service{
		kv:        kv,
		catalog:   cat,
		store:     storage.NewTemplateStore(kv),
		labels:    storage.NewLabelRegistry(kv),
		audiences: storage.NewAudienceRegistry(kv),
		autosave:  storage.NewAutosaveSlot(kv),
		forwards:  storage.NewForwardLog(kv),
		adapter:   export.NewAdapter(),
	}
}

// Catalog returns the platform catalog.
func (s *Service) Catalog() *catalog.Catalog {
	return s.catalog
}

// Labels returns the theme-label registry.
func (s *Service) Labels() *storage.Registry {
	return s.labels
}

// Audiences returns the audience registry.
func (s *Service) Audiences() *storage.Registry {
	return s.audiences
}

// NewSession creates an editing session with a debounced autosaver writing
// into the single autosave slot.
func (s *Service) NewSession() *draft.Session {
	session := draft.NewSession(s.catalog, s.labels, s.audiences)
	session.SetAutosaver(draft.NewAutosaver(draft.DefaultAutosaveDelay, s.autosave.Save))
	return session
}

// RestoreAutosave resumes the autosaved draft, if any, into the session.
func (s *Service) RestoreAutosave(session *draft.Session) error {
	snapshot, err := s.autosave.Load()
	if err != nil {
		return err
	}
	return session.Restore(snapshot)
}

// ClearAutosave empties the autosave slot, typically after an explicit save.
func (s *Service) ClearAutosave() error {
	return s.autosave.Clear()
}

// SaveTemplate validates nothing beyond the name; callers decide whether an
// invalid draft may still be saved as work in progress.
func (s *Service) SaveTemplate(name string, snapshot *models.TemplateDraft) (string, error) {
	return s.store.Save(name, snapshot)
}

// LoadTemplate returns a saved record by id.
func (s *Service) LoadTemplate(id string) (*models.SavedTemplate, error) {
	return s.store.Load(id)
}

// LoadTemplateIntoSession resumes a saved template as the session's draft.
func (s *Service) LoadTemplateIntoSession(id string, session *draft.Session) (*models.SavedTemplate, error) {
	record, err := s.store.Load(id)
	if err != nil {
		return nil, err
	}
	if err := session.Restore(&record.Data); err != nil {
		return nil, err
	}
	return record, nil
}

// ListTemplates returns all saved templates, newest first.
func (s *Service) ListTemplates() []models.SavedTemplate {
	return s.store.List()
}

// SearchTemplates fuzzy-matches saved templates by name, platform and
// hashtags.
func (s *Service) SearchTemplates(query string) []models.SavedTemplate {
	records := s.store.List()
	if query == "" {
		return records
	}

	var searchStrings []string
	for _, record := range records {
		searchStr := fmt.Sprintf("%s %s %s",
			record.Name,
			record.Platform,
			strings.Join(record.Data.Hashtags, " "))
		searchStrings = append(searchStrings, searchStr)
	}

	matches := fuzzy.Find(query, searchStrings)

	var results []models.SavedTemplate
	for _, match := range matches {
		results = append(results, records[match.Index])
	}
	return results
}

// DeleteTemplate removes a saved template permanently.
func (s *Service) DeleteTemplate(id string) error {
	return s.store.Delete(id)
}

// ExportTemplate renders a snapshot as an export document in the requested
// format ("json" or "yaml") and returns the document bytes and the
// conventional filename.
func (s *Service) ExportTemplate(snapshot *models.TemplateDraft, format string) ([]byte, string, error) {
	doc := s.adapter.Document(snapshot)
	filename := s.adapter.Filename(snapshot)

	switch format {
	case "", "json":
		data, err := export.MarshalJSON(doc)
		return data, filename, err
	case "yaml":
		data, err := export.MarshalYAML(doc)
		return data, strings.TrimSuffix(filename, ".json") + ".yaml", err
	default:
		return nil, "", errors.NewAppError(errors.ErrCodeInvalidInput,
			fmt.Sprintf("Unknown export format '%s'", format))
	}
}

// ImportTemplate reads a JSON export document and saves its template under
// the given name. The document's platform must exist in the catalog.
func (s *Service) ImportTemplate(name string, data []byte) (string, error) {
	doc, err := export.UnmarshalDocument(data)
	if err != nil {
		return "", err
	}
	if !s.catalog.Has(doc.Template.Platform) {
		return "", errors.UnknownPlatformError(doc.Template.Platform)
	}
	return s.store.Save(name, &doc.Template)
}

// ForwardTemplate assigns a snapshot to a team member and records the
// hand-off for the external dashboard.
func (s *Service) ForwardTemplate(snapshot *models.TemplateDraft, member string) (*models.ForwardRecord, error) {
	record, err := s.adapter.AssignForward(snapshot, member)
	if err != nil {
		return nil, err
	}
	if err := s.forwards.Append(record); err != nil {
		return nil, err
	}
	return &record, nil
}

// ListForwards returns all recorded hand-offs.
func (s *Service) ListForwards() []models.ForwardRecord {
	return s.forwards.List()
}

// SuggestHashtags returns starter hashtags for the session's current theme,
// capped at the platform's recommended count.
func (s *Service) SuggestHashtags(session *draft.Session) []string {
	d := session.Draft()
	platform := session.Platform()
	if d == nil || platform == nil {
		return nil
	}
	return catalog.SuggestHashtags(d.Meta[models.MetaTheme], platform.Hashtags.Recommended)
}
