package storage

import (
	"encoding/json"

	"github.com/3cstudio/contentforge/internal/errors"
	"github.com/3cstudio/contentforge/internal/models"
)

// AutosaveSlot is the single, overwritable autosave snapshot. It sits outside
// the template store's identity space: no id, no name, best effort only.
type AutosaveSlot struct {
	kv KV
}

// NewAutosaveSlot returns the autosave slot backed by kv.
func NewAutosaveSlot(kv KV) *AutosaveSlot {
	return &AutosaveSlot{kv: kv}
}

// Save overwrites the slot with a snapshot of the draft.
func (a *AutosaveSlot) Save(snapshot *models.TemplateDraft) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return errors.PersistenceError("serialize autosave", err)
	}
	if err := a.kv.Set(KeyAutosave, string(data)); err != nil {
		return errors.PersistenceError("write autosave", err)
	}
	return nil
}

// Load returns the autosaved draft, or NOT_FOUND when the slot is empty. A
// corrupt payload is treated as an empty slot.
func (a *AutosaveSlot) Load() (*models.TemplateDraft, error) {
	raw, ok, err := a.kv.Get(KeyAutosave)
	if err != nil {
		return nil, errors.LoadError("autosave snapshot", err)
	}
	if !ok {
		return nil, errors.NotFoundError("Autosave snapshot")
	}

	var draft models.TemplateDraft
	if err := json.Unmarshal([]byte(raw), &draft); err != nil {
		return nil, errors.NotFoundError("Autosave snapshot")
	}
	return &draft, nil
}

// Clear empties the slot.
func (a *AutosaveSlot) Clear() error {
	if err := a.kv.Delete(KeyAutosave); err != nil {
		return errors.PersistenceError("clear autosave", err)
	}
	return nil
}
