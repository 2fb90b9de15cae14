package models

// The sender roster is fixed: these are the three studio personas content can
// be attributed to, and the only valid targets for forwarding a template.
const (
	SenderAnica  = "anica"
	SenderAurion = "aurion"
	SenderCaelum = "caelum"
)

// brandVoices maps each sender to the tone description derived onto
// meta.brand_voice. The descriptions are fixed copy, not user data.
var brandVoices = map[string]string{
	SenderAnica:  "Warm and direct, speaks to the reader like a trusted colleague sharing what actually works.",
	SenderAurion: "Bold and analytical, leads with data and challenges the audience to think bigger.",
	SenderCaelum: "Calm and reflective, favors storytelling and draws lessons out of small moments.",
}

// Senders returns the fixed sender roster in display order.
func Senders() []string {
	return []string{SenderAnica, SenderAurion, SenderCaelum}
}

// BrandVoice returns the tone description for a sender.
func BrandVoice(sender string) (string, bool) {
	voice, ok := brandVoices[sender]
	return voice, ok
}

// IsSender reports whether name is part of the fixed sender roster.
func IsSender(name string) bool {
	_, ok := brandVoices[name]
	return ok
}
