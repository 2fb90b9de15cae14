package storage

import (
	"reflect"
	"testing"

	"github.com/3cstudio/contentforge/internal/errors"
)

func TestRegistryDefaults(t *testing.T) {
	kv := NewMemoryKV()

	labels := NewLabelRegistry(kv)
	want := []string{"news", "promotion", "educational", "community", "inspiration"}
	if got := labels.List(); !reflect.DeepEqual(got, want) {
		t.Errorf("label defaults = %v, want %v", got, want)
	}

	audiences := NewAudienceRegistry(kv)
	if !audiences.Has("general") || !audiences.Has("youth") {
		t.Errorf("audience defaults missing: %v", audiences.List())
	}
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"News", "news"},
		{"  Behind The Scenes  ", "behind_the_scenes"},
		{"ALREADY_SNAKE", "already_snake"},
		{"   ", ""},
	}
	for _, tc := range cases {
		if got := Normalize(tc.raw); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestRegistryAddAndPersist(t *testing.T) {
	kv := NewMemoryKV()
	labels := NewLabelRegistry(kv)

	if err := labels.Add("Behind The Scenes"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if !labels.Has("behind_the_scenes") {
		t.Errorf("entries = %v", labels.List())
	}

	// The duplicate check runs on the normalized value
	if err := labels.Add("behind the scenes"); !errors.HasCode(err, errors.ErrCodeAlreadyExists) {
		t.Errorf("expected ALREADY_EXISTS, got %v", err)
	}
	if err := labels.Add("   "); !errors.HasCode(err, errors.ErrCodeEmptyValue) {
		t.Errorf("expected EMPTY_VALUE, got %v", err)
	}

	// A fresh registry over the same KV sees the custom entry
	reloaded := NewLabelRegistry(kv)
	if !reloaded.Has("behind_the_scenes") {
		t.Errorf("reloaded entries = %v", reloaded.List())
	}
}

func TestRegistryRemove(t *testing.T) {
	kv := NewMemoryKV()
	labels := NewLabelRegistry(kv)

	if err := labels.Remove("news"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if labels.Has("news") {
		t.Error("news should be removed")
	}

	// Removing an absent entry is a no-op
	if err := labels.Remove("news"); err != nil {
		t.Errorf("second Remove = %v, want nil", err)
	}

	reloaded := NewLabelRegistry(kv)
	if reloaded.Has("news") {
		t.Error("removal should persist")
	}
}

func TestRegistryRollbackOnWriteFailure(t *testing.T) {
	kv := NewMemoryKV()
	labels := NewLabelRegistry(kv)
	kv.FailWrites = true

	if err := labels.Add("ephemeral"); !errors.HasCode(err, errors.ErrCodePersistence) {
		t.Errorf("expected PERSISTENCE_ERROR, got %v", err)
	}
	if labels.Has("ephemeral") {
		t.Error("failed add should roll back")
	}

	if err := labels.Remove("news"); !errors.HasCode(err, errors.ErrCodePersistence) {
		t.Errorf("expected PERSISTENCE_ERROR, got %v", err)
	}
	if !labels.Has("news") {
		t.Error("failed remove should roll back")
	}
}

func TestRegistryCorruptDataFallsBack(t *testing.T) {
	kv := NewMemoryKV()
	if err := kv.Set(KeyLabels, "not an array"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	labels := NewLabelRegistry(kv)
	if !labels.Has("news") {
		t.Errorf("corrupt data should fall back to defaults, got %v", labels.List())
	}
}
