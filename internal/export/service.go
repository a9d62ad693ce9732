// Package export produces one-shot output files from notes: a Markdown or
// plain-text file per note, and a bulk JSON export of many notes' metadata
// and Markdown bodies. Nothing here is part of the store schema.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/likhlo/likhlo/internal/document"
	apperr "github.com/likhlo/likhlo/internal/errors"
	"github.com/likhlo/likhlo/internal/models"
	"github.com/likhlo/likhlo/internal/notes"
)

// Service provides export functionality over the notes service.
type Service struct {
	notes *notes.Service
}

// NewService creates a new export Service.
func NewService(n *notes.Service) *Service {
	return &Service{notes: n}
}

// Entry is one note in the bulk JSON export.
type Entry struct {
	Title     string           `json:"title"`
	Content   string           `json:"content"`
	PlainText string           `json:"plainText"`
	Color     models.NoteColor `json:"color"`
	Tags      []string         `json:"tags"`
	CreatedAt string           `json:"createdAt"`
	UpdatedAt string           `json:"updatedAt"`
}

// Result describes a finished bulk export.
type Result struct {
	FilePath  string
	NoteCount int
	SizeBytes int64
	Duration  time.Duration
}

// NoteMarkdown renders one note as a standalone Markdown document: the
// title as a top-level heading, then the converted body. A note with no
// rich content falls back to its plain text.
func NoteMarkdown(n *models.Note) string {
	body := document.ToMarkdown(n.Content)
	if body == "" {
		body = n.PlainText
	}
	return "# " + titleOrUntitled(n) + "\n\n" + body
}

// NoteText renders one note as plain text: title, blank line, body.
func NoteText(n *models.Note) string {
	return titleOrUntitled(n) + "\n\n" + n.PlainText
}

// Filename derives a safe file name from the note title: every run of
// non-alphanumeric characters becomes an underscore.
func Filename(n *models.Note, ext string) string {
	return sanitize(titleOrUntitled(n)) + ext
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9]`)

func sanitize(s string) string {
	return unsafeChars.ReplaceAllString(s, "_")
}

func titleOrUntitled(n *models.Note) string {
	if n.Title == "" {
		return "Untitled"
	}
	return n.Title
}

// WriteNoteMarkdown writes one note as a .md file under dir and returns
// the written path.
func (s *Service) WriteNoteMarkdown(dir string, n *models.Note) (string, error) {
	return writeFile(dir, Filename(n, ".md"), NoteMarkdown(n))
}

// WriteNoteText writes one note as a .txt file under dir and returns the
// written path.
func (s *Service) WriteNoteText(dir string, n *models.Note) (string, error) {
	return writeFile(dir, Filename(n, ".txt"), NoteText(n))
}

// ExportMarkdownFiles writes every non-trashed note as its own Markdown
// file under dir, rendering and writing notes concurrently.
func (s *Service) ExportMarkdownFiles(dir string) (*Result, error) {
	start := time.Now()
	list, err := s.exportable()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, apperr.Wrap(apperr.ErrExportFailed, "failed to create export directory", err)
	}

	var g errgroup.Group
	for _, n := range list {
		g.Go(func() error {
			_, err := s.WriteNoteMarkdown(dir, n)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Result{
		FilePath:  dir,
		NoteCount: len(list),
		Duration:  time.Since(start),
	}, nil
}

// ExportAll writes the bulk JSON export of every non-trashed note under
// dir, named likhlo-export-<date>.json.
func (s *Service) ExportAll(dir string) (*Result, error) {
	start := time.Now()
	list, err := s.exportable()
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, len(list))
	var g errgroup.Group
	for i, n := range list {
		g.Go(func() error {
			entries[i] = buildEntry(n)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrExportFailed, "failed to encode export", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, apperr.Wrap(apperr.ErrExportFailed, "failed to create export directory", err)
	}
	name := fmt.Sprintf("likhlo-export-%s.json", start.UTC().Format("2006-01-02"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, apperr.Wrap(apperr.ErrExportFailed, "failed to write export file", err)
	}

	return &Result{
		FilePath:  path,
		NoteCount: len(list),
		SizeBytes: int64(len(data)),
		Duration:  time.Since(start),
	}, nil
}

// exportable returns every note outside the trash, in storage order.
func (s *Service) exportable() ([]*models.Note, error) {
	all, err := s.notes.AllNotes()
	if err != nil {
		return nil, err
	}
	var out []*models.Note
	for _, n := range all {
		if !n.IsTrashed {
			out = append(out, n)
		}
	}
	return out, nil
}

func buildEntry(n *models.Note) Entry {
	return Entry{
		Title:     n.Title,
		Content:   document.ToMarkdown(n.Content),
		PlainText: n.PlainText,
		Color:     n.Color,
		Tags:      n.Tags,
		CreatedAt: n.CreatedAtTime().UTC().Format(time.RFC3339),
		UpdatedAt: n.UpdatedAtTime().UTC().Format(time.RFC3339),
	}
}

func writeFile(dir, name, content string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", apperr.Wrap(apperr.ErrExportFailed, "failed to create export directory", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", apperr.Wrap(apperr.ErrExportFailed, "failed to write "+name, err)
	}
	return path, nil
}
