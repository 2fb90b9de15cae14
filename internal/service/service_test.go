package service

import (
	"strings"
	"testing"

	"github.com/3cstudio/contentforge/internal/catalog"
	"github.com/3cstudio/contentforge/internal/errors"
	"github.com/3cstudio/contentforge/internal/models"
	"github.com/3cstudio/contentforge/internal/storage"
)

func newTestService() *Service {
	return NewServiceWith(storage.NewMemoryKV(), catalog.New())
}

// buildDraft runs a realistic editing flow and returns the snapshot.
func buildDraft(t *testing.T, svc *Service) *models.TemplateDraft {
	t.Helper()
	session := svc.NewSession()
	defer session.Close()

	if err := session.StartDraft("twitter"); err != nil {
		t.Fatalf("StartDraft failed: %v", err)
	}
	if err := session.SetMeta(models.MetaTheme, "promotion"); err != nil {
		t.Fatalf("SetMeta failed: %v", err)
	}
	if err := session.SetMeta(models.MetaSender, "anica"); err != nil {
		t.Fatalf("SetMeta failed: %v", err)
	}
	if err := session.SetContentField("post", "Big launch today. Details in thread."); err != nil {
		t.Fatalf("SetContentField failed: %v", err)
	}
	if err := session.AddHashtag("#Launch"); err != nil {
		t.Fatalf("AddHashtag failed: %v", err)
	}
	if err := session.AddHashtag("newrelease"); err != nil {
		t.Fatalf("AddHashtag failed: %v", err)
	}

	snapshot, err := session.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	return snapshot
}

func TestSaveAndLoadTemplate(t *testing.T) {
	svc := newTestService()
	snapshot := buildDraft(t, svc)

	id, err := svc.SaveTemplate("Launch Tweet", snapshot)
	if err != nil {
		t.Fatalf("SaveTemplate failed: %v", err)
	}

	record, err := svc.LoadTemplate(id)
	if err != nil {
		t.Fatalf("LoadTemplate failed: %v", err)
	}
	if record.Name != "Launch Tweet" || record.Platform != "twitter" {
		t.Errorf("record = %+v", record)
	}
	// The sender derived a brand voice onto the saved draft
	if record.Data.Meta[models.MetaBrandVoice] == "" {
		t.Error("saved draft should carry the derived brand voice")
	}

	if _, err := svc.LoadTemplate("template_missing"); !errors.HasCode(err, errors.ErrCodeNotFound) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}

func TestLoadTemplateIntoSession(t *testing.T) {
	svc := newTestService()
	id, err := svc.SaveTemplate("Resumable", buildDraft(t, svc))
	if err != nil {
		t.Fatalf("SaveTemplate failed: %v", err)
	}

	session := svc.NewSession()
	defer session.Close()
	record, err := svc.LoadTemplateIntoSession(id, session)
	if err != nil {
		t.Fatalf("LoadTemplateIntoSession failed: %v", err)
	}
	if record.ID != id {
		t.Errorf("record id = %s", record.ID)
	}
	if !session.Active() || session.Platform().Key != "twitter" {
		t.Error("session should resume the saved draft")
	}
	if got := session.ContentField("post"); !strings.Contains(got, "Big launch") {
		t.Errorf("resumed post = %q", got)
	}
}

func TestSearchTemplates(t *testing.T) {
	svc := newTestService()
	snapshot := buildDraft(t, svc)

	if _, err := svc.SaveTemplate("Quarterly Report", snapshot); err != nil {
		t.Fatalf("SaveTemplate failed: %v", err)
	}
	if _, err := svc.SaveTemplate("Launch Announcement", snapshot); err != nil {
		t.Fatalf("SaveTemplate failed: %v", err)
	}

	results := svc.SearchTemplates("launch")
	if len(results) == 0 {
		t.Fatal("expected matches for 'launch'")
	}
	if results[0].Name != "Launch Announcement" {
		t.Errorf("best match = %q", results[0].Name)
	}

	// An empty query returns everything
	if all := svc.SearchTemplates(""); len(all) != 2 {
		t.Errorf("empty query returned %d records", len(all))
	}
}

func TestExportAndImportRoundTrip(t *testing.T) {
	svc := newTestService()
	snapshot := buildDraft(t, svc)

	data, filename, err := svc.ExportTemplate(snapshot, "json")
	if err != nil {
		t.Fatalf("ExportTemplate failed: %v", err)
	}
	if !strings.HasPrefix(filename, "3c-template-twitter-") || !strings.HasSuffix(filename, ".json") {
		t.Errorf("filename = %q", filename)
	}

	id, err := svc.ImportTemplate("Imported Tweet", data)
	if err != nil {
		t.Fatalf("ImportTemplate failed: %v", err)
	}
	record, err := svc.LoadTemplate(id)
	if err != nil {
		t.Fatalf("LoadTemplate failed: %v", err)
	}
	if record.Platform != "twitter" || len(record.Data.Hashtags) != 2 {
		t.Errorf("imported record = %+v", record)
	}
}

func TestExportFormats(t *testing.T) {
	svc := newTestService()
	snapshot := buildDraft(t, svc)

	_, yamlName, err := svc.ExportTemplate(snapshot, "yaml")
	if err != nil {
		t.Fatalf("yaml export failed: %v", err)
	}
	if !strings.HasSuffix(yamlName, ".yaml") {
		t.Errorf("yaml filename = %q", yamlName)
	}

	if _, _, err := svc.ExportTemplate(snapshot, "xml"); !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT for xml, got %v", err)
	}
}

func TestImportRejectsUnknownPlatform(t *testing.T) {
	svc := newTestService()
	doc := `{"version":"1.0","template":{"platform":"friendster","meta":{},"content":{},"hashtags":[]}}`
	_, err := svc.ImportTemplate("Relic", []byte(doc))
	if !errors.HasCode(err, errors.ErrCodeUnknownPlatform) {
		t.Errorf("expected UNKNOWN_PLATFORM, got %v", err)
	}
}

func TestForwardTemplate(t *testing.T) {
	svc := newTestService()
	snapshot := buildDraft(t, svc)

	record, err := svc.ForwardTemplate(snapshot, "aurion")
	if err != nil {
		t.Fatalf("ForwardTemplate failed: %v", err)
	}
	if record.AssignedTo != "aurion" {
		t.Errorf("assigned to = %q", record.AssignedTo)
	}

	forwards := svc.ListForwards()
	if len(forwards) != 1 || forwards[0].ID != record.ID {
		t.Errorf("forwards = %+v", forwards)
	}

	if _, err := svc.ForwardTemplate(snapshot, "stranger"); !errors.HasCode(err, errors.ErrCodeInvalidMember) {
		t.Errorf("expected INVALID_MEMBER, got %v", err)
	}
	if len(svc.ListForwards()) != 1 {
		t.Error("rejected forward should not be recorded")
	}
}

func TestAutosaveRoundTrip(t *testing.T) {
	svc := newTestService()
	snapshot := buildDraft(t, svc)

	// Simulate the debounced write landing in the slot
	if err := svc.autosave.Save(snapshot); err != nil {
		t.Fatalf("autosave Save failed: %v", err)
	}

	session := svc.NewSession()
	defer session.Close()
	if err := svc.RestoreAutosave(session); err != nil {
		t.Fatalf("RestoreAutosave failed: %v", err)
	}
	if !session.Active() || session.Platform().Key != "twitter" {
		t.Error("session should resume the autosaved draft")
	}

	if err := svc.ClearAutosave(); err != nil {
		t.Fatalf("ClearAutosave failed: %v", err)
	}
	fresh := svc.NewSession()
	defer fresh.Close()
	if err := svc.RestoreAutosave(fresh); !errors.HasCode(err, errors.ErrCodeNotFound) {
		t.Errorf("expected NOT_FOUND after clear, got %v", err)
	}
}

func TestSuggestHashtags(t *testing.T) {
	svc := newTestService()
	session := svc.NewSession()
	defer session.Close()

	if err := session.StartDraft("twitter"); err != nil {
		t.Fatalf("StartDraft failed: %v", err)
	}
	if err := session.SetMeta(models.MetaTheme, "promotion"); err != nil {
		t.Fatalf("SetMeta failed: %v", err)
	}

	// twitter recommends 2 hashtags
	tags := svc.SuggestHashtags(session)
	if len(tags) != 2 {
		t.Errorf("tags = %v, want 2 suggestions", tags)
	}
}
