package catalog

// fieldTips holds per-field authoring hints shown next to form inputs.
var fieldTips = map[string]string{
	"caption":     "Include a compelling hook in the first line",
	"post":        "Start with an engaging question or statement",
	"bio":         "Make it clear, concise, and actionable",
	"headline":    "Highlight your key value proposition",
	"title":       "Front-load the keywords viewers search for",
	"description": "Summarize the value in the first two lines",
}

// FieldTip returns the authoring hint for a content field.
func FieldTip(field string) string {
	if tip, ok := fieldTips[field]; ok {
		return tip
	}
	return "Keep it engaging and on-brand"
}

// hashtagSuggestions is a static lookup of starter hashtags per theme. This
// is deliberately just a table, not a recommendation engine.
var hashtagSuggestions = map[string][]string{
	"news":          {"breaking", "update", "announcement"},
	"promotion":     {"launch", "offer", "newrelease"},
	"educational":   {"howto", "tips", "learnwithus"},
	"community":     {"community", "behindthescenes", "teamwork"},
	"inspiration":   {"motivation", "growth", "mindset"},
}

// SuggestHashtags returns starter hashtags for a theme, at most the
// platform's recommended count when that bound is known.
func SuggestHashtags(theme string, recommended int) []string {
	tags, ok := hashtagSuggestions[theme]
	if !ok {
		return nil
	}
	if recommended > 0 && len(tags) > recommended {
		tags = tags[:recommended]
	}
	out := make([]string, len(tags))
	copy(out, tags)
	return out
}
