package export

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/3cstudio/contentforge/internal/errors"
	"github.com/3cstudio/contentforge/internal/models"
)

func fixedClock() func() time.Time {
	at := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return at }
}

func exportDraft() *models.TemplateDraft {
	d := models.NewTemplateDraft("instagram")
	d.Timestamp = time.Date(2026, 8, 15, 11, 30, 0, 0, time.UTC)
	d.Meta[models.MetaTheme] = "promotion"
	d.Meta[models.MetaSender] = "aurion"
	d.Content["caption"] = "New release out now"
	d.Hashtags = []string{"launch", "newrelease"}
	return d
}

func TestDocumentEnvelope(t *testing.T) {
	adapter := NewAdapter().WithClock(fixedClock())
	snapshot := exportDraft()

	doc := adapter.Document(snapshot)
	if doc.Version != models.ExportVersion {
		t.Errorf("version = %q", doc.Version)
	}
	if !doc.Exported.Equal(fixedClock()()) {
		t.Errorf("exported = %v", doc.Exported)
	}
	if doc.Template.Content["caption"] != "New release out now" {
		t.Errorf("template = %+v", doc.Template)
	}

	// The document holds a clone, not the live snapshot
	snapshot.Content["caption"] = "edited"
	if doc.Template.Content["caption"] != "New release out now" {
		t.Error("document aliased the snapshot")
	}
}

func TestFilename(t *testing.T) {
	adapter := NewAdapter().WithClock(fixedClock())
	want := models.ExportFilename("instagram", fixedClock()())
	if got := adapter.Filename(exportDraft()); got != want {
		t.Errorf("filename = %q, want %q", got, want)
	}
	// The convention is 3c-template-<platform>-<epochMillis>.json
	if want != "3c-template-instagram-1786795200000.json" {
		t.Errorf("convention changed: %q", want)
	}
}

func TestMarshalDeterminism(t *testing.T) {
	adapter := NewAdapter().WithClock(fixedClock())
	doc := adapter.Document(exportDraft())

	first, err := MarshalJSON(doc)
	if err != nil {
		t.Fatalf("MarshalJSON failed: %v", err)
	}
	second, err := MarshalJSON(doc)
	if err != nil {
		t.Fatalf("MarshalJSON failed: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("JSON export is not deterministic for a fixed clock")
	}

	if _, err := MarshalYAML(doc); err != nil {
		t.Fatalf("MarshalYAML failed: %v", err)
	}
}

func TestUnmarshalDocumentRoundTrip(t *testing.T) {
	adapter := NewAdapter().WithClock(fixedClock())
	data, err := MarshalJSON(adapter.Document(exportDraft()))
	if err != nil {
		t.Fatalf("MarshalJSON failed: %v", err)
	}

	doc, err := UnmarshalDocument(data)
	if err != nil {
		t.Fatalf("UnmarshalDocument failed: %v", err)
	}
	if doc.Template.Platform != "instagram" {
		t.Errorf("platform = %q", doc.Template.Platform)
	}
	if doc.Template.Hashtags[0] != "launch" {
		t.Errorf("hashtags = %v", doc.Template.Hashtags)
	}
}

func TestUnmarshalDocumentRejectsBadInput(t *testing.T) {
	if _, err := UnmarshalDocument([]byte("{broken")); !errors.HasCode(err, errors.ErrCodeLoad) {
		t.Errorf("expected LOAD_ERROR for bad JSON, got %v", err)
	}

	// Valid JSON without a template platform is equally useless
	empty, _ := json.Marshal(models.ExportDocument{Version: models.ExportVersion})
	if _, err := UnmarshalDocument(empty); !errors.HasCode(err, errors.ErrCodeLoad) {
		t.Errorf("expected LOAD_ERROR for missing platform, got %v", err)
	}
}

func TestAssignForward(t *testing.T) {
	adapter := NewAdapter().WithClock(fixedClock())
	snapshot := exportDraft()

	record, err := adapter.AssignForward(snapshot, "caelum")
	if err != nil {
		t.Fatalf("AssignForward failed: %v", err)
	}
	if record.ID == "" {
		t.Error("record should carry an id")
	}
	if record.AssignedTo != "caelum" {
		t.Errorf("assigned to = %q", record.AssignedTo)
	}
	if !record.ForwardedAt.Equal(fixedClock()()) {
		t.Errorf("forwarded at = %v", record.ForwardedAt)
	}

	// The record holds its own copy
	snapshot.Hashtags[0] = "changed"
	if record.Template.Hashtags[0] != "launch" {
		t.Error("forward record aliased the snapshot")
	}

	_, err = adapter.AssignForward(snapshot, "nobody")
	if !errors.HasCode(err, errors.ErrCodeInvalidMember) {
		t.Errorf("expected INVALID_MEMBER, got %v", err)
	}
}
