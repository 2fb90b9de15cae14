package draft

import (
	"strings"

	"github.com/3cstudio/contentforge/internal/errors"
)

// NormalizeHashtag canonicalizes a raw tag: the leading # is stripped,
// everything outside [A-Za-z0-9_] is removed, and the rest is lowercased.
// Normalization happens once at insertion time, so the stored sequence is
// always canonical and consumers never re-normalize.
func NormalizeHashtag(raw string) string {
	raw = strings.TrimPrefix(strings.TrimSpace(raw), "#")
	var b strings.Builder
	for _, r := range raw {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		}
	}
	return b.String()
}

// AddHashtag normalizes rawTag and appends it to the draft's hashtag set.
// Raw input shorter than two characters, or input that normalizes to the
// empty string, is silently ignored. Insertion order is preserved.
func (s *Session) AddHashtag(rawTag string) error {
	if err := s.requireDraft(); err != nil {
		return err
	}

	rawTag = strings.TrimSpace(rawTag)
	if len(rawTag) < 2 {
		return nil
	}

	if len(s.draft.Hashtags) >= s.platform.Hashtags.Max {
		return errors.LimitExceededError(s.platform.Hashtags.Max)
	}

	tag := NormalizeHashtag(rawTag)
	if tag == "" {
		return nil
	}
	if s.draft.HasHashtag(tag) {
		return errors.DuplicateTagError(tag)
	}

	s.draft.Hashtags = append(s.draft.Hashtags, tag)
	s.touch()
	return nil
}

// RemoveHashtag removes the first exact match; absent tags are a no-op.
func (s *Session) RemoveHashtag(tag string) {
	if s.draft == nil {
		return
	}
	for i, t := range s.draft.Hashtags {
		if t == tag {
			s.draft.Hashtags = append(s.draft.Hashtags[:i], s.draft.Hashtags[i+1:]...)
			s.touch()
			return
		}
	}
}

// HashtagCount returns the current size of the hashtag set.
func (s *Session) HashtagCount() int {
	if s.draft == nil {
		return 0
	}
	return len(s.draft.Hashtags)
}

// RemainingHashtagCapacity returns how many more hashtags the platform
// allows.
func (s *Session) RemainingHashtagCapacity() int {
	if s.draft == nil || s.platform == nil {
		return 0
	}
	remaining := s.platform.Hashtags.Max - len(s.draft.Hashtags)
	if remaining < 0 {
		return 0
	}
	return remaining
}
