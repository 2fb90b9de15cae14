package models

import "fmt"

// HashtagLimits bounds the hashtag set for one platform
type HashtagLimits struct {
	Max         int `json:"max_hashtags" yaml:"max_hashtags"`
	Recommended int `json:"recommended" yaml:"recommended"`
}

// PlatformDefinition describes one target platform: its display name,
// per-field character limits, hashtag limits and the content fields its
// form exposes. Definitions are immutable after catalog initialization.
type PlatformDefinition struct {
	Key             string         `json:"-" yaml:"-"`
	Name            string         `json:"name" yaml:"name"`
	CharacterLimits map[string]int `json:"character_limits" yaml:"character_limits"`
	Hashtags        HashtagLimits  `json:"hashtag_limits" yaml:"hashtag_limits"`
	Features        []string       `json:"features" yaml:"features"`
	Fields          []string       `json:"fields" yaml:"fields"`
}

// HasField reports whether the platform's form exposes the named content field.
func (p *PlatformDefinition) HasField(name string) bool {
	for _, f := range p.Fields {
		if f == name {
			return true
		}
	}
	return false
}

// HasFeature reports whether the platform supports the named feature tag.
func (p *PlatformDefinition) HasFeature(name string) bool {
	for _, f := range p.Features {
		if f == name {
			return true
		}
	}
	return false
}

// CharacterLimit returns the advisory max length for a field, if one is defined.
func (p *PlatformDefinition) CharacterLimit(field string) (int, bool) {
	limit, ok := p.CharacterLimits[field]
	return limit, ok
}

// Implement list.Item interface for bubbles list component

// FilterValue returns the value used for filtering in lists
func (p PlatformDefinition) FilterValue() string {
	return p.Name
}

// Title satisfies the list.Item interface
func (p PlatformDefinition) Title() string {
	if p.Name != "" {
		return p.Name
	}
	return p.Key
}

// Description satisfies the list.Item interface
func (p PlatformDefinition) Description() string {
	return fmt.Sprintf("%d fields • max %d hashtags • %d features",
		len(p.Fields), p.Hashtags.Max, len(p.Features))
}
