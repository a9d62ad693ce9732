package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/likhlo/likhlo/internal/db"
	"github.com/likhlo/likhlo/internal/document"
	"github.com/likhlo/likhlo/internal/models"
	"github.com/likhlo/likhlo/internal/notes"
)

func newTestExporter(t *testing.T) (*Service, *notes.Service) {
	t.Helper()
	dir := t.TempDir()
	lazy := db.NewLazy(func() (*db.DB, error) { return db.Open(dir, "test.db") })
	repo := db.NewRepository(lazy)
	t.Cleanup(func() {
		repo.Close()
		lazy.Close()
	})
	n := notes.NewService(repo)
	return NewService(n), n
}

func TestNoteMarkdown(t *testing.T) {
	n := &models.Note{
		Title:   "Daily log",
		Content: document.FromMarkdown("## Date:\n\n- A\n- B"),
	}
	want := "# Daily log\n\n## Date:\n\n- A\n- B"
	assert.Equal(t, want, NoteMarkdown(n))
}

func TestNoteMarkdownFallsBackToPlainText(t *testing.T) {
	n := &models.Note{PlainText: "just text"}
	assert.Equal(t, "# Untitled\n\njust text", NoteMarkdown(n))
}

func TestNoteText(t *testing.T) {
	n := &models.Note{Title: "Shopping", PlainText: "milk\neggs"}
	assert.Equal(t, "Shopping\n\nmilk\neggs", NoteText(n))
}

func TestFilename(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Daily log", "Daily_log.md"},
		{"a/b: c?", "a_b__c_.md"},
		{"", "Untitled.md"},
		{"already_safe", "already_safe.md"},
	}
	for _, tt := range tests {
		n := &models.Note{Title: tt.title}
		assert.Equal(t, tt.want, Filename(n, ".md"), "title %q", tt.title)
	}
}

func TestWriteNoteMarkdown(t *testing.T) {
	exporter, _ := newTestExporter(t)
	dir := t.TempDir()

	n := &models.Note{Title: "Hello World", PlainText: "body"}
	path, err := exporter.WriteNoteMarkdown(dir, n)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Hello_World.md"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# Hello World\n\nbody", string(data))
}

func TestExportMarkdownFiles(t *testing.T) {
	exporter, svc := newTestExporter(t)

	for _, title := range []string{"alpha", "beta", "gamma"} {
		_, err := svc.CreateNote(&models.NotePatch{Title: &title})
		require.NoError(t, err)
	}
	trashed, err := svc.CreateNote(nil)
	require.NoError(t, err)
	_, err = svc.TrashNote(trashed.ID)
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "markdown")
	result, err := exporter.ExportMarkdownFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, 3, result.NoteCount)
	assert.Equal(t, dir, result.FilePath)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 3, "trashed notes are not exported")
}

func TestExportAll(t *testing.T) {
	exporter, svc := newTestExporter(t)

	title := "Journal"
	_, err := svc.CreateNote(&models.NotePatch{
		Title:   &title,
		Content: document.FromPlainText("a thought"),
		Tags:    &[]string{"diary"},
	})
	require.NoError(t, err)

	trashed, err := svc.CreateNote(nil)
	require.NoError(t, err)
	_, err = svc.TrashNote(trashed.ID)
	require.NoError(t, err)

	dir := t.TempDir()
	result, err := exporter.ExportAll(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, result.NoteCount)
	assert.Positive(t, result.SizeBytes)

	wantName := "likhlo-export-" + time.Now().UTC().Format("2006-01-02") + ".json"
	assert.Equal(t, filepath.Join(dir, wantName), result.FilePath)

	data, err := os.ReadFile(result.FilePath)
	require.NoError(t, err)
	assert.Equal(t, result.SizeBytes, int64(len(data)))

	var entries []Entry
	require.NoError(t, json.Unmarshal(data, &entries))
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, "Journal", e.Title)
	assert.Equal(t, "a thought", e.Content)
	assert.Equal(t, "a thought", e.PlainText)
	assert.Equal(t, []string{"diary"}, e.Tags)

	_, err = time.Parse(time.RFC3339, e.CreatedAt)
	assert.NoError(t, err, "createdAt must be RFC3339")
	_, err = time.Parse(time.RFC3339, e.UpdatedAt)
	assert.NoError(t, err, "updatedAt must be RFC3339")
}

func TestExportAllEmpty(t *testing.T) {
	exporter, _ := newTestExporter(t)

	dir := t.TempDir()
	result, err := exporter.ExportAll(dir)
	require.NoError(t, err)
	assert.Zero(t, result.NoteCount)

	data, err := os.ReadFile(result.FilePath)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}
