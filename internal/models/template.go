package models

import (
	"fmt"
	"strings"
	"time"
)

// SavedTemplate is a named, persisted snapshot of a draft. Records are
// immutable once created; reload plus re-save is the only way to change one.
type SavedTemplate struct {
	ID       string        `json:"id" yaml:"id"`
	Name     string        `json:"name" yaml:"name"`
	Platform string        `json:"platform" yaml:"platform"`
	Created  time.Time     `json:"created" yaml:"created"`
	Data     TemplateDraft `json:"data" yaml:"data"`
}

// ExportVersion is the document version written into exports.
const ExportVersion = "1.0"

// ExportDocument is the portable form of a template snapshot.
type ExportDocument struct {
	Version  string        `json:"version" yaml:"version"`
	Exported time.Time     `json:"exported" yaml:"exported"`
	Template TemplateDraft `json:"template" yaml:"template"`
}

// ForwardRecord is the hand-off produced when a template is routed to a team
// member's dashboard. The engine's responsibility ends at persisting it.
type ForwardRecord struct {
	ID          string        `json:"id" yaml:"id"`
	AssignedTo  string        `json:"assigned_to" yaml:"assigned_to"`
	ForwardedAt time.Time     `json:"forwarded_at" yaml:"forwarded_at"`
	Template    TemplateDraft `json:"template" yaml:"template"`
}

// ExportFilename returns the conventional download name for an export,
// 3c-template-<platform>-<epochMillis>.json.
func ExportFilename(platformKey string, at time.Time) string {
	return fmt.Sprintf("3c-template-%s-%d.json", platformKey, at.UnixMilli())
}

// Implement list.Item interface for bubbles list component

// FilterValue returns the value used for filtering in lists
func (t SavedTemplate) FilterValue() string {
	return t.Name
}

// Title satisfies the list.Item interface
func (t SavedTemplate) Title() string {
	return t.Name
}

// Description satisfies the list.Item interface
func (t SavedTemplate) Description() string {
	parts := []string{t.Platform}
	if !t.Created.IsZero() {
		parts = append(parts, "saved "+t.Created.Format("2006-01-02 15:04"))
	}
	if len(t.Data.Hashtags) > 0 {
		parts = append(parts, fmt.Sprintf("%d hashtags", len(t.Data.Hashtags)))
	}
	return strings.Join(parts, " • ")
}
