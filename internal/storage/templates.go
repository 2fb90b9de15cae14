package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/3cstudio/contentforge/internal/errors"
	"github.com/3cstudio/contentforge/internal/models"
	"github.com/oklog/ulid/v2"
)

// TemplateStore owns the saved-template collection. Records are append-only
// under fresh ids; there is no update-in-place. Every mutation flushes the
// whole collection to the backing store before it reports success, and rolls
// the in-memory state back when the flush fails.
type TemplateStore struct {
	kv        KV
	templates map[string]models.SavedTemplate
}

// NewTemplateStore loads the saved-template collection from the backing
// store. A corrupt payload falls back to an empty collection with a warning
// instead of failing.
func NewTemplateStore(kv KV) *TemplateStore {
	s := &TemplateStore{
		kv:        kv,
		templates: make(map[string]models.SavedTemplate),
	}

	raw, ok, err := kv.Get(KeyTemplates)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", errors.LoadError("saved templates", err))
		return s
	}
	if !ok {
		return s
	}
	if err := json.Unmarshal([]byte(raw), &s.templates); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", errors.LoadError("saved templates", err))
		s.templates = make(map[string]models.SavedTemplate)
	}
	return s
}

// newTemplateID generates a fresh id: a ULID is time-ordered with a random
// suffix, so collisions are treated as practically impossible.
func newTemplateID() string {
	return "template_" + ulid.Make().String()
}

// Save snapshots the draft under a user-supplied name and returns the new
// record's id.
func (s *TemplateStore) Save(name string, snapshot *models.TemplateDraft) (string, error) {
	if name == "" {
		return "", errors.EmptyNameError()
	}

	record := models.SavedTemplate{
		ID:       newTemplateID(),
		Name:     name,
		Platform: snapshot.Platform,
		Created:  time.Now(),
		Data:     *snapshot.Clone(),
	}

	s.templates[record.ID] = record
	if err := s.flush(); err != nil {
		delete(s.templates, record.ID)
		return "", err
	}
	return record.ID, nil
}

// Load returns the saved record for id. The returned record holds its own
// copy of the draft data.
func (s *TemplateStore) Load(id string) (*models.SavedTemplate, error) {
	record, ok := s.templates[id]
	if !ok {
		return nil, errors.NotFoundError("Template " + id)
	}
	record.Data = *record.Data.Clone()
	return &record, nil
}

// List returns all saved records, newest first.
func (s *TemplateStore) List() []models.SavedTemplate {
	records := make([]models.SavedTemplate, 0, len(s.templates))
	for _, record := range s.templates {
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Created.After(records[j].Created)
	})
	return records
}

// Delete removes a record permanently.
func (s *TemplateStore) Delete(id string) error {
	record, ok := s.templates[id]
	if !ok {
		return errors.NotFoundError("Template " + id)
	}

	delete(s.templates, id)
	if err := s.flush(); err != nil {
		s.templates[id] = record
		return err
	}
	return nil
}

// Count returns the number of saved records.
func (s *TemplateStore) Count() int {
	return len(s.templates)
}

func (s *TemplateStore) flush() error {
	data, err := json.MarshalIndent(s.templates, "", "  ")
	if err != nil {
		return errors.PersistenceError("serialize templates", err)
	}
	if err := s.kv.Set(KeyTemplates, string(data)); err != nil {
		return errors.PersistenceError("write templates", err)
	}
	return nil
}
