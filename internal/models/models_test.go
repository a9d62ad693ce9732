// Package models provides unit tests for the data model definitions.
package models

import (
	"testing"

	"github.com/likhlo/likhlo/internal/document"
)

// TestNoteColorValid verifies palette membership checks.
func TestNoteColorValid(t *testing.T) {
	for _, c := range Colors {
		if !c.Valid() {
			t.Errorf("Palette color %q reported invalid", c)
		}
	}
	if NoteColor("magenta").Valid() {
		t.Error("Expected unknown color to be invalid")
	}
	if NoteColor("").Valid() {
		t.Error("Expected empty color to be invalid")
	}
}

// TestNotePatchApply verifies shallow-merge semantics: nil fields keep
// their stored value, non-nil fields replace it.
func TestNotePatchApply(t *testing.T) {
	n := &Note{
		Title:    "before",
		Color:    ColorDefault,
		FolderID: "folder-1",
		Tags:     []string{"keep"},
	}

	title := "after"
	unfiled := ""
	patch := &NotePatch{
		Title:    &title,
		FolderID: &unfiled,
	}
	patch.Apply(n)

	if n.Title != "after" {
		t.Errorf("Expected title to change, got %q", n.Title)
	}
	if n.FolderID != "" {
		t.Errorf("Expected folder reference cleared, got %q", n.FolderID)
	}
	if n.Color != ColorDefault {
		t.Error("Expected untouched color to keep its value")
	}
	if len(n.Tags) != 1 || n.Tags[0] != "keep" {
		t.Errorf("Expected untouched tags to keep their value, got %v", n.Tags)
	}
}

// TestNotePatchApplyNil verifies a nil patch is a no-op.
func TestNotePatchApplyNil(t *testing.T) {
	n := &Note{Title: "unchanged"}
	var p *NotePatch
	p.Apply(n)
	if n.Title != "unchanged" {
		t.Error("Expected nil patch to leave the note alone")
	}
}

// TestNotePatchContent verifies content replacement through a patch.
func TestNotePatchContent(t *testing.T) {
	n := &Note{}
	doc := document.FromPlainText("hello")
	patch := &NotePatch{Content: doc}
	patch.Apply(n)

	if n.Content != doc {
		t.Error("Expected content to be replaced")
	}
}

// TestNormalizeTags verifies lower-casing, de-duplication and stable
// first-seen order.
func TestNormalizeTags(t *testing.T) {
	got := NormalizeTags([]string{"Work", "  home ", "work", "", "HOME", "ideas"})
	want := []string{"work", "home", "ideas"}

	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Expected %v, got %v", want, got)
		}
	}
}

// TestFolderIcons verifies the icon set and its default.
func TestFolderIcons(t *testing.T) {
	if !ValidFolderIcon(DefaultFolderIcon) {
		t.Error("Expected default icon to be part of the icon set")
	}
	if ValidFolderIcon("spaceship") {
		t.Error("Expected unknown icon to be rejected")
	}
}

// TestFolderPatchApply verifies shallow merge for folders.
func TestFolderPatchApply(t *testing.T) {
	f := &Folder{Name: "Inbox", Icon: DefaultFolderIcon, Color: ColorDefault, Order: 2}

	name := "Projects"
	icon := "star"
	patch := &FolderPatch{Name: &name, Icon: &icon}
	patch.Apply(f)

	if f.Name != "Projects" || f.Icon != "star" {
		t.Errorf("Expected patched fields applied, got %+v", f)
	}
	if f.Order != 2 {
		t.Error("Expected untouched order to keep its value")
	}
}

// TestDefaultSettings verifies the fixed defaults.
func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if s.Theme != ThemeSystem || s.ViewMode != ViewGrid || s.SortBy != SortByUpdated || !s.SortDesc {
		t.Errorf("Unexpected defaults: %+v", s)
	}
}

// TestSettingsPatchApply verifies unspecified fields retain their values.
func TestSettingsPatchApply(t *testing.T) {
	s := DefaultSettings()

	theme := ThemeDark
	patch := &SettingsPatch{Theme: &theme}
	patch.Apply(&s)

	if s.Theme != ThemeDark {
		t.Errorf("Expected theme dark, got %s", s.Theme)
	}
	if s.ViewMode != ViewGrid || s.SortBy != SortByUpdated || !s.SortDesc {
		t.Errorf("Expected other fields untouched, got %+v", s)
	}
}

// TestSettingsEnums verifies enum validity checks.
func TestSettingsEnums(t *testing.T) {
	valid := []bool{
		ThemeLight.Valid(), ThemeDark.Valid(), ThemeSystem.Valid(),
		ViewGrid.Valid(), ViewList.Valid(),
		SortByUpdated.Valid(), SortByCreated.Valid(), SortByTitle.Valid(),
	}
	for i, v := range valid {
		if !v {
			t.Errorf("Known enum value %d reported invalid", i)
		}
	}
	if Theme("neon").Valid() || ViewMode("table").Valid() || SortOption("color").Valid() {
		t.Error("Expected unknown enum values to be invalid")
	}
}

// TestTouch verifies UpdatedAt moves forward.
func TestTouch(t *testing.T) {
	n := &Note{UpdatedAt: 1}
	n.Touch()
	if n.UpdatedAt < 1 {
		t.Error("Expected Touch to refresh UpdatedAt")
	}
	if n.UpdatedAtTime().UnixMilli() != n.UpdatedAt {
		t.Error("Expected UpdatedAtTime to round-trip the millisecond value")
	}
}
