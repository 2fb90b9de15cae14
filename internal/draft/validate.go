package draft

import (
	"fmt"

	"github.com/3cstudio/contentforge/internal/models"
)

// Validate checks the draft against the active platform's limits and the
// registries. It never mutates state; all problems are collected and
// returned at once. An empty result means the draft is valid.
func (s *Session) Validate() []models.ValidationIssue {
	var issues []models.ValidationIssue
	if s.draft == nil {
		return []models.ValidationIssue{{Field: "platform", Reason: "no active draft"}}
	}

	// theme and sender are required before a draft can be generated or saved
	if s.draft.Meta[models.MetaTheme] == "" {
		issues = append(issues, models.ValidationIssue{
			Field: "meta.theme", Reason: "required field is missing",
		})
	}
	if s.draft.Meta[models.MetaSender] == "" {
		issues = append(issues, models.ValidationIssue{
			Field: "meta.sender", Reason: "required field is missing",
		})
	}

	if theme := s.draft.Meta[models.MetaTheme]; theme != "" && s.labels != nil && !s.labels.Has(theme) {
		issues = append(issues, models.ValidationIssue{
			Field:  "meta.theme",
			Reason: fmt.Sprintf("'%s' is not a registered label", theme),
		})
	}
	if audience := s.draft.Meta[models.MetaAudience]; audience != "" && s.audiences != nil && !s.audiences.Has(audience) {
		issues = append(issues, models.ValidationIssue{
			Field:  "meta.audience",
			Reason: fmt.Sprintf("'%s' is not a registered audience", audience),
		})
	}

	for _, field := range s.platform.Fields {
		value, ok := s.draft.Content[field]
		if !ok {
			continue
		}
		if limit, has := s.platform.CharacterLimit(field); has && len(value) > limit {
			issues = append(issues, models.ValidationIssue{
				Field:  "content." + field,
				Reason: fmt.Sprintf("exceeds character limit (%d/%d)", len(value), limit),
			})
		}
	}

	if count := len(s.draft.Hashtags); count > s.platform.Hashtags.Max {
		issues = append(issues, models.ValidationIssue{
			Field:  "hashtags",
			Reason: fmt.Sprintf("too many hashtags (%d/%d)", count, s.platform.Hashtags.Max),
		})
	}

	return issues
}
