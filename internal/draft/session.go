// Package draft implements the editing session: one in-progress template
// draft bound to a platform from the catalog, with mutation operations,
// validation and snapshotting. A Session is constructed per editing session
// and passed explicitly; there is no shared global state, so independent
// sessions can coexist in one process.
package draft

import (
	"strings"
	"time"

	"github.com/3cstudio/contentforge/internal/catalog"
	"github.com/3cstudio/contentforge/internal/errors"
	"github.com/3cstudio/contentforge/internal/models"
	"github.com/3cstudio/contentforge/internal/storage"
)

// Session owns the active draft. All operations run on the caller's
// goroutine; the only asynchronous piece is the debounced autosaver, which
// works on snapshots and never touches the live draft.
type Session struct {
	catalog   *catalog.Catalog
	labels    *storage.Registry
	audiences *storage.Registry

	draft     *models.TemplateDraft
	platform  *models.PlatformDefinition
	autosaver *Autosaver
}

// NewSession creates an editing session. The registries are consulted when
// validating meta.theme and meta.audience.
func NewSession(cat *catalog.Catalog, labels, audiences *storage.Registry) *Session {
	return &Session{
		catalog:   cat,
		labels:    labels,
		audiences: audiences,
	}
}

// SetAutosaver attaches a debounced autosaver; every draft mutation schedules
// a snapshot through it. Passing nil detaches.
func (s *Session) SetAutosaver(a *Autosaver) {
	s.autosaver = a
}

// Active reports whether a draft is in progress.
func (s *Session) Active() bool {
	return s.draft != nil
}

// Draft returns the live draft for read access, or nil when none is active.
func (s *Session) Draft() *models.TemplateDraft {
	return s.draft
}

// Platform returns the active platform definition, or nil.
func (s *Session) Platform() *models.PlatformDefinition {
	return s.platform
}

// StartDraft begins a fresh draft for the given platform, discarding any
// previous draft state.
func (s *Session) StartDraft(platformKey string) error {
	def, err := s.catalog.Get(platformKey)
	if err != nil {
		return err
	}
	s.platform = def
	s.draft = models.NewTemplateDraft(platformKey)
	s.touch()
	return nil
}

// Restore resumes an existing snapshot (a loaded template or an autosave) as
// the active draft.
func (s *Session) Restore(snapshot *models.TemplateDraft) error {
	def, err := s.catalog.Get(snapshot.Platform)
	if err != nil {
		return err
	}
	s.platform = def
	s.draft = snapshot.Clone()
	if s.draft.Meta == nil {
		s.draft.Meta = make(map[string]string)
	}
	if s.draft.Content == nil {
		s.draft.Content = make(map[string]string)
	}
	s.touch()
	return nil
}

// SetContentField stores a trimmed content value. An empty value removes the
// field instead of storing an empty string. Character limits are advisory at
// write time; Validate reports overflow.
func (s *Session) SetContentField(name, value string) error {
	if err := s.requireDraft(); err != nil {
		return err
	}
	if !s.platform.HasField(name) {
		return errors.FieldNotAllowedError(name, s.platform.Key)
	}

	value = strings.TrimSpace(value)
	if value == "" {
		delete(s.draft.Content, name)
	} else {
		s.draft.Content[name] = value
	}
	s.touch()
	return nil
}

// ContentField returns the stored value for a field, empty when unset.
func (s *Session) ContentField(name string) string {
	if s.draft == nil {
		return ""
	}
	return s.draft.Content[name]
}

// SetMeta sets one of the recognized meta keys. Setting the sender also
// derives meta.brand_voice from the fixed sender lookup; brand_voice itself
// is never settable.
func (s *Session) SetMeta(key, value string) error {
	if err := s.requireDraft(); err != nil {
		return err
	}

	recognized := false
	for _, k := range models.MetaKeys() {
		if k == key {
			recognized = true
			break
		}
	}
	if !recognized {
		return errors.UnknownMetaFieldError(key)
	}

	value = strings.TrimSpace(value)
	if value == "" {
		delete(s.draft.Meta, key)
	} else {
		s.draft.Meta[key] = value
	}

	if key == models.MetaSender {
		if voice, ok := models.BrandVoice(value); ok {
			s.draft.Meta[models.MetaBrandVoice] = voice
		} else {
			delete(s.draft.Meta, models.MetaBrandVoice)
		}
	}
	s.touch()
	return nil
}

// SetTone sets the content tone advanced option.
func (s *Session) SetTone(tone string) error {
	if err := s.requireDraft(); err != nil {
		return err
	}
	for _, t := range models.Tones() {
		if t == tone {
			s.draft.Options.Tone = tone
			s.touch()
			return nil
		}
	}
	return errors.NewAppError(errors.ErrCodeInvalidInput, "Tone '"+tone+"' is not a known tone")
}

// SetContentType sets the content type, which must be one of the platform's
// features.
func (s *Session) SetContentType(contentType string) error {
	if err := s.requireDraft(); err != nil {
		return err
	}
	if contentType != "" && !s.platform.HasFeature(contentType) {
		return errors.NewAppError(errors.ErrCodeInvalidInput,
			"Content type '"+contentType+"' is not a "+s.platform.Name+" feature")
	}
	s.draft.Options.ContentType = contentType
	s.touch()
	return nil
}

// SetSchedule toggles post scheduling and records the schedule time.
func (s *Session) SetSchedule(enabled bool, when string) error {
	if err := s.requireDraft(); err != nil {
		return err
	}
	s.draft.Options.SchedulePost = enabled
	if enabled {
		s.draft.Options.ScheduleTime = strings.TrimSpace(when)
	} else {
		s.draft.Options.ScheduleTime = ""
	}
	s.touch()
	return nil
}

// Snapshot returns a deep copy of the draft, safe to store or export.
func (s *Session) Snapshot() (*models.TemplateDraft, error) {
	if err := s.requireDraft(); err != nil {
		return nil, err
	}
	return s.draft.Clone(), nil
}

// FieldUsage reports the used and allowed length of a content field, and
// whether usage has crossed the 90% advisory threshold.
func (s *Session) FieldUsage(name string) (used, limit int, warn bool) {
	if s.draft == nil || s.platform == nil {
		return 0, 0, false
	}
	used = len(s.draft.Content[name])
	limit, _ = s.platform.CharacterLimit(name)
	warn = limit > 0 && used*10 > limit*9
	return used, limit, warn
}

// Close tears the session down, cancelling any pending autosave.
func (s *Session) Close() {
	if s.autosaver != nil {
		s.autosaver.Close()
	}
	s.draft = nil
	s.platform = nil
}

func (s *Session) requireDraft() error {
	if s.draft == nil {
		return errors.NewAppError(errors.ErrCodeInvalidInput, "No active draft; select a platform first")
	}
	return nil
}

// touch updates the draft's last-touch instant and schedules an autosave
// snapshot when an autosaver is attached.
func (s *Session) touch() {
	s.draft.Timestamp = time.Now()
	if s.autosaver != nil {
		s.autosaver.Schedule(s.draft.Clone())
	}
}
