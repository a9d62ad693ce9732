// Package uuid provides unit tests for id generation and validation.
package uuid

import "testing"

// TestNew tests that New() generates valid ids.
func TestNew(t *testing.T) {
	id := New()

	if id == "" {
		t.Fatal("Expected non-empty id string")
	}
	if !IsValid(id) {
		t.Errorf("Generated id does not match the expected format: %s", id)
	}
}

// TestNewUniqueness tests that New() generates unique ids.
func TestNewUniqueness(t *testing.T) {
	ids := make(map[string]bool)

	for i := 0; i < 1000; i++ {
		id := New()
		if ids[id] {
			t.Errorf("Duplicate id generated: %s", id)
		}
		ids[id] = true
	}

	if len(ids) != 1000 {
		t.Errorf("Expected 1000 unique ids, got %d", len(ids))
	}
}

// TestIsValid tests id validation.
func TestIsValid(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want bool
	}{
		{"valid v4", "a8098c1a-f86e-4936-a794-48fb64f4d7b0", true},
		{"uppercase hex", "A8098C1A-F86E-4936-A794-48FB64F4D7B0", true},
		{"wrong version", "a8098c1a-f86e-1936-a794-48fb64f4d7b0", false},
		{"missing dashes", "a8098c1af86e4936a79448fb64f4d7b0", false},
		{"empty", "", false},
		{"garbage", "not-an-id", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValid(tt.id); got != tt.want {
				t.Errorf("IsValid(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}

// TestValidate tests that Validate returns errors for bad ids only.
func TestValidate(t *testing.T) {
	if err := Validate(New()); err != nil {
		t.Errorf("Validate rejected a generated id: %v", err)
	}
	if err := Validate("nope"); err == nil {
		t.Error("Validate accepted an invalid id")
	}
}
