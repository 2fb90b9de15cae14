package draft

import (
	"fmt"
	"testing"

	"github.com/3cstudio/contentforge/internal/errors"
)

func TestNormalizeHashtag(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"#Growth!", "growth"},
		{"golang", "golang"},
		{"#GoLang", "golang"},
		{"  #social media  ", "socialmedia"},
		{"snake_case_tag", "snake_case_tag"},
		{"2026vision", "2026vision"},
		{"###", ""},
		{"!!!", ""},
		{"Ünïcödé", "ncd"},
	}
	for _, tc := range cases {
		if got := NormalizeHashtag(tc.raw); got != tc.want {
			t.Errorf("NormalizeHashtag(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}

	// Normalization is idempotent
	for _, tc := range cases {
		once := NormalizeHashtag(tc.raw)
		if twice := NormalizeHashtag(once); twice != once {
			t.Errorf("NormalizeHashtag not idempotent for %q: %q -> %q", tc.raw, once, twice)
		}
	}
}

func TestAddHashtag(t *testing.T) {
	session := newTestSession(t)
	if err := session.StartDraft("instagram"); err != nil {
		t.Fatalf("StartDraft failed: %v", err)
	}

	if err := session.AddHashtag("#Growth!"); err != nil {
		t.Fatalf("AddHashtag failed: %v", err)
	}
	if !session.Draft().HasHashtag("growth") {
		t.Fatalf("expected normalized tag, got %v", session.Draft().Hashtags)
	}

	// The duplicate check runs on the normalized form
	err := session.AddHashtag("GROWTH")
	if !errors.HasCode(err, errors.ErrCodeDuplicateTag) {
		t.Errorf("expected DUPLICATE_TAG, got %v", err)
	}
	if session.HashtagCount() != 1 {
		t.Errorf("count = %d after duplicate, want 1", session.HashtagCount())
	}
}

func TestAddHashtagShortInputIgnored(t *testing.T) {
	session := newTestSession(t)
	if err := session.StartDraft("instagram"); err != nil {
		t.Fatalf("StartDraft failed: %v", err)
	}

	// Raw input under two characters is silently ignored, as is input that
	// normalizes to nothing
	for _, raw := range []string{"", "a", "#", " x ", "!!!"} {
		if err := session.AddHashtag(raw); err != nil {
			t.Errorf("AddHashtag(%q) = %v, want nil", raw, err)
		}
	}
	if session.HashtagCount() != 0 {
		t.Errorf("count = %d, want 0", session.HashtagCount())
	}
}

func TestAddHashtagLimit(t *testing.T) {
	session := newTestSession(t)
	if err := session.StartDraft("linkedin"); err != nil {
		t.Fatalf("StartDraft failed: %v", err)
	}

	// linkedin allows 5 hashtags
	for i := 0; i < 5; i++ {
		if err := session.AddHashtag(fmt.Sprintf("tag%d", i)); err != nil {
			t.Fatalf("AddHashtag %d failed: %v", i, err)
		}
	}
	if session.RemainingHashtagCapacity() != 0 {
		t.Errorf("remaining = %d, want 0", session.RemainingHashtagCapacity())
	}

	// The limit check happens before normalization, so even a would-be
	// duplicate is rejected for capacity first
	err := session.AddHashtag("tag0")
	if !errors.HasCode(err, errors.ErrCodeLimitExceeded) {
		t.Errorf("expected LIMIT_EXCEEDED, got %v", err)
	}
	if session.HashtagCount() != 5 {
		t.Errorf("count = %d after rejected add, want 5", session.HashtagCount())
	}
}

func TestRemoveHashtag(t *testing.T) {
	session := newTestSession(t)
	if err := session.StartDraft("instagram"); err != nil {
		t.Fatalf("StartDraft failed: %v", err)
	}
	for _, tag := range []string{"alpha", "beta", "gamma"} {
		if err := session.AddHashtag(tag); err != nil {
			t.Fatalf("AddHashtag failed: %v", err)
		}
	}

	session.RemoveHashtag("beta")
	got := session.Draft().Hashtags
	if len(got) != 2 || got[0] != "alpha" || got[1] != "gamma" {
		t.Errorf("hashtags = %v, want [alpha gamma]", got)
	}

	// Removing an absent tag is a no-op
	session.RemoveHashtag("delta")
	if session.HashtagCount() != 2 {
		t.Errorf("count = %d after removing absent tag, want 2", session.HashtagCount())
	}
}
