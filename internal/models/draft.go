package models

import (
	"sort"
	"time"
)

// Recognized meta keys on a draft. BrandVoice is derived from the sender and
// never set directly.
const (
	MetaTheme      = "theme"
	MetaSender     = "sender"
	MetaMediaType  = "media_type"
	MetaAudience   = "audience"
	MetaBrandVoice = "brand_voice"
)

// MetaKeys returns the user-settable meta keys.
func MetaKeys() []string {
	return []string{MetaTheme, MetaSender, MetaMediaType, MetaAudience}
}

// DraftOptions carries the advanced options of a draft: tone, the content
// type chosen from the platform's feature list, and optional scheduling.
type DraftOptions struct {
	Tone         string `json:"tone,omitempty" yaml:"tone,omitempty"`
	ContentType  string `json:"content_type,omitempty" yaml:"content_type,omitempty"`
	SchedulePost bool   `json:"schedule_post,omitempty" yaml:"schedule_post,omitempty"`
	ScheduleTime string `json:"schedule_time,omitempty" yaml:"schedule_time,omitempty"`
}

// Tones lists the selectable content tones.
func Tones() []string {
	return []string{"professional", "casual", "friendly", "authoritative", "humorous"}
}

// TemplateDraft is the working state of one in-progress template. Content
// holds trimmed non-empty strings keyed by the active platform's field names;
// Hashtags is an ordered set of normalized tags.
type TemplateDraft struct {
	Platform  string            `json:"platform" yaml:"platform"`
	Timestamp time.Time         `json:"timestamp" yaml:"timestamp"`
	Meta      map[string]string `json:"meta" yaml:"meta"`
	Content   map[string]string `json:"content" yaml:"content"`
	Hashtags  []string          `json:"hashtags" yaml:"hashtags"`
	Options   DraftOptions      `json:"options" yaml:"options"`
}

// NewTemplateDraft returns an empty draft bound to a platform key.
func NewTemplateDraft(platformKey string) *TemplateDraft {
	return &TemplateDraft{
		Platform:  platformKey,
		Timestamp: time.Now(),
		Meta:      make(map[string]string),
		Content:   make(map[string]string),
		Hashtags:  []string{},
	}
}

// Clone returns a deep copy of the draft. Saved and exported records hold
// clones so later edits to the live draft never leak into them.
func (d *TemplateDraft) Clone() *TemplateDraft {
	c := &TemplateDraft{
		Platform:  d.Platform,
		Timestamp: d.Timestamp,
		Meta:      make(map[string]string, len(d.Meta)),
		Content:   make(map[string]string, len(d.Content)),
		Hashtags:  make([]string, len(d.Hashtags)),
		Options:   d.Options,
	}
	for k, v := range d.Meta {
		c.Meta[k] = v
	}
	for k, v := range d.Content {
		c.Content[k] = v
	}
	copy(c.Hashtags, d.Hashtags)
	return c
}

// HasHashtag reports whether the normalized tag is already in the set.
func (d *TemplateDraft) HasHashtag(tag string) bool {
	for _, t := range d.Hashtags {
		if t == tag {
			return true
		}
	}
	return false
}

// ContentFieldsInOrder returns the populated content field names in the
// platform's form order, with any fields unknown to the platform appended
// alphabetically.
func (d *TemplateDraft) ContentFieldsInOrder(platform *PlatformDefinition) []string {
	var ordered []string
	seen := make(map[string]bool)
	if platform != nil {
		for _, field := range platform.Fields {
			if _, ok := d.Content[field]; ok {
				ordered = append(ordered, field)
				seen[field] = true
			}
		}
	}
	var extras []string
	for field := range d.Content {
		if !seen[field] {
			extras = append(extras, field)
		}
	}
	sort.Strings(extras)
	return append(ordered, extras...)
}

// ValidationIssue describes one problem found by draft validation. Issues
// are collected, not short-circuited, so callers see every problem at once.
type ValidationIssue struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}
