// Package export turns completed draft snapshots into portable artifacts:
// a versioned export document for download, or a forward record routed to a
// team member's dashboard. Both work on snapshots only; the adapter never
// sees a live draft.
package export

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/3cstudio/contentforge/internal/errors"
	"github.com/3cstudio/contentforge/internal/models"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Adapter builds export documents and forward records. The clock is a field
// so exports are deterministic under test.
type Adapter struct {
	now func() time.Time
}

// NewAdapter returns an adapter using the wall clock.
func NewAdapter() *Adapter {
	return &Adapter{now: time.Now}
}

// WithClock replaces the adapter's clock.
func (a *Adapter) WithClock(now func() time.Time) *Adapter {
	a.now = now
	return a
}

// Document wraps a snapshot in the versioned export envelope. Apart from the
// timestamp the output is fully determined by the snapshot.
func (a *Adapter) Document(snapshot *models.TemplateDraft) models.ExportDocument {
	return models.ExportDocument{
		Version:  models.ExportVersion,
		Exported: a.now(),
		Template: *snapshot.Clone(),
	}
}

// Filename returns the conventional download name for an export of snapshot.
func (a *Adapter) Filename(snapshot *models.TemplateDraft) string {
	return models.ExportFilename(snapshot.Platform, a.now())
}

// MarshalJSON renders an export document as indented JSON.
func MarshalJSON(doc models.ExportDocument) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal export document: %w", err)
	}
	return data, nil
}

// MarshalYAML renders an export document as YAML.
func MarshalYAML(doc models.ExportDocument) ([]byte, error) {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal export document: %w", err)
	}
	return data, nil
}

// UnmarshalDocument parses a JSON export document, for importing templates
// exported elsewhere.
func UnmarshalDocument(data []byte) (*models.ExportDocument, error) {
	var doc models.ExportDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.LoadError("export document", err)
	}
	if doc.Template.Platform == "" {
		return nil, errors.LoadError("export document",
			fmt.Errorf("document carries no template platform"))
	}
	return &doc, nil
}

// AssignForward attaches routing to a snapshot for the external dashboard.
// The member must be part of the fixed sender roster.
func (a *Adapter) AssignForward(snapshot *models.TemplateDraft, member string) (models.ForwardRecord, error) {
	if !models.IsSender(member) {
		return models.ForwardRecord{}, errors.InvalidMemberError(member)
	}
	return models.ForwardRecord{
		ID:          uuid.NewString(),
		AssignedTo:  member,
		ForwardedAt: a.now(),
		Template:    *snapshot.Clone(),
	}, nil
}
