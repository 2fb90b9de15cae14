package storage

import (
	"strings"
	"testing"
	"time"

	"github.com/3cstudio/contentforge/internal/errors"
	"github.com/3cstudio/contentforge/internal/models"
)

func sampleDraft(platform string) *models.TemplateDraft {
	d := models.NewTemplateDraft(platform)
	d.Meta[models.MetaTheme] = "promotion"
	d.Meta[models.MetaSender] = "anica"
	d.Content["caption"] = "Launch day is here"
	d.Hashtags = []string{"launch", "newrelease"}
	return d
}

func TestTemplateStoreSaveAndLoad(t *testing.T) {
	kv := NewMemoryKV()
	store := NewTemplateStore(kv)

	id, err := store.Save("Launch Post", sampleDraft("instagram"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !strings.HasPrefix(id, "template_") {
		t.Errorf("id = %q, want template_ prefix", id)
	}

	record, err := store.Load(id)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if record.Name != "Launch Post" || record.Platform != "instagram" {
		t.Errorf("record = %+v", record)
	}
	if record.Data.Content["caption"] != "Launch day is here" {
		t.Errorf("caption = %q", record.Data.Content["caption"])
	}

	// A fresh store over the same KV sees the persisted record
	reloaded := NewTemplateStore(kv)
	if reloaded.Count() != 1 {
		t.Errorf("reloaded count = %d, want 1", reloaded.Count())
	}
	if _, err := reloaded.Load(id); err != nil {
		t.Errorf("Load after reload failed: %v", err)
	}
}

func TestTemplateStoreSaveIsolatesSnapshot(t *testing.T) {
	store := NewTemplateStore(NewMemoryKV())

	snapshot := sampleDraft("instagram")
	id, err := store.Save("Isolated", snapshot)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Mutating the caller's snapshot must not affect the stored record
	snapshot.Content["caption"] = "edited afterwards"
	snapshot.Hashtags[0] = "changed"

	record, err := store.Load(id)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if record.Data.Content["caption"] != "Launch day is here" {
		t.Error("stored record aliased the caller's snapshot")
	}
	if record.Data.Hashtags[0] != "launch" {
		t.Error("stored hashtags aliased the caller's snapshot")
	}

	// And mutating a loaded record must not affect the store
	record.Data.Content["caption"] = "tampered"
	again, err := store.Load(id)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if again.Data.Content["caption"] != "Launch day is here" {
		t.Error("loaded record aliased the stored data")
	}
}

func TestTemplateStoreSaveEmptyName(t *testing.T) {
	store := NewTemplateStore(NewMemoryKV())
	_, err := store.Save("", sampleDraft("instagram"))
	if !errors.HasCode(err, errors.ErrCodeEmptyName) {
		t.Fatalf("expected EMPTY_NAME, got %v", err)
	}
	if store.Count() != 0 {
		t.Errorf("count = %d after rejected save", store.Count())
	}
}

func TestTemplateStoreDelete(t *testing.T) {
	store := NewTemplateStore(NewMemoryKV())
	id, err := store.Save("Doomed", sampleDraft("linkedin"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if err := store.Delete(id); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Load(id); !errors.HasCode(err, errors.ErrCodeNotFound) {
		t.Errorf("expected NOT_FOUND after delete, got %v", err)
	}
	if err := store.Delete(id); !errors.HasCode(err, errors.ErrCodeNotFound) {
		t.Errorf("expected NOT_FOUND on second delete, got %v", err)
	}
}

func TestTemplateStoreListNewestFirst(t *testing.T) {
	store := NewTemplateStore(NewMemoryKV())
	for _, name := range []string{"first", "second", "third"} {
		if _, err := store.Save(name, sampleDraft("instagram")); err != nil {
			t.Fatalf("Save %s failed: %v", name, err)
		}
		time.Sleep(2 * time.Millisecond)
	}

	records := store.List()
	if len(records) != 3 {
		t.Fatalf("len = %d, want 3", len(records))
	}
	if records[0].Name != "third" || records[2].Name != "first" {
		t.Errorf("order = %s, %s, %s; want newest first",
			records[0].Name, records[1].Name, records[2].Name)
	}
}

func TestTemplateStoreRollbackOnWriteFailure(t *testing.T) {
	kv := NewMemoryKV()
	store := NewTemplateStore(kv)
	id, err := store.Save("Survivor", sampleDraft("instagram"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	kv.FailWrites = true

	// A failed save leaves no phantom record behind
	if _, err := store.Save("Phantom", sampleDraft("linkedin")); !errors.HasCode(err, errors.ErrCodePersistence) {
		t.Errorf("expected PERSISTENCE_ERROR, got %v", err)
	}
	if store.Count() != 1 {
		t.Errorf("count = %d after failed save, want 1", store.Count())
	}

	// A failed delete keeps the record in memory
	if err := store.Delete(id); !errors.HasCode(err, errors.ErrCodePersistence) {
		t.Errorf("expected PERSISTENCE_ERROR, got %v", err)
	}
	if _, err := store.Load(id); err != nil {
		t.Errorf("record should survive a failed delete: %v", err)
	}
}

func TestTemplateStoreCorruptDataFallsBack(t *testing.T) {
	kv := NewMemoryKV()
	if err := kv.Set(KeyTemplates, "{not json"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	store := NewTemplateStore(kv)
	if store.Count() != 0 {
		t.Errorf("count = %d for corrupt data, want 0", store.Count())
	}

	// The store stays usable
	if _, err := store.Save("Fresh", sampleDraft("instagram")); err != nil {
		t.Errorf("Save after corrupt load failed: %v", err)
	}
}
