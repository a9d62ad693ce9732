// Read-side projections over the store. Every note belongs to exactly one
// of three display partitions: active (neither flag), archived (archived
// and not trashed), trashed (trashed, archived ignored).
package notes

import (
	"strings"

	"github.com/likhlo/likhlo/internal/models"
)

// GetNote retrieves one note. Returns (nil, nil) when the id is absent.
func (s *Service) GetNote(id string) (*models.Note, error) {
	return s.repo.GetNote(id)
}

// AllNotes returns every stored note regardless of partition.
func (s *Service) AllNotes() ([]*models.Note, error) {
	return s.repo.ListNotes()
}

// ActiveNotes returns notes that are neither archived nor trashed.
func (s *Service) ActiveNotes() ([]*models.Note, error) {
	return s.filterNotes(func(n *models.Note) bool {
		return !n.IsArchived && !n.IsTrashed
	})
}

// ArchivedNotes returns archived notes that are not in the trash.
func (s *Service) ArchivedNotes() ([]*models.Note, error) {
	return s.filterNotes(func(n *models.Note) bool {
		return n.IsArchived && !n.IsTrashed
	})
}

// TrashedNotes returns every trashed note; the archived flag is ignored
// once a note is in the trash.
func (s *Service) TrashedNotes() ([]*models.Note, error) {
	return s.filterNotes(func(n *models.Note) bool {
		return n.IsTrashed
	})
}

// NotesByFolder returns all notes filed under folderID regardless of
// archived or trashed state.
func (s *Service) NotesByFolder(folderID string) ([]*models.Note, error) {
	return s.repo.ListNotesByFolder(folderID)
}

// SearchNotes matches active notes whose title, plain text or any tag
// contains the query, case-insensitively. An empty or whitespace-only
// query returns all active notes. The result is a match set with no
// ranking; order is whatever SortNotes subsequently imposes.
func (s *Service) SearchNotes(query string) ([]*models.Note, error) {
	active, err := s.ActiveNotes()
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return active, nil
	}

	var matched []*models.Note
	for _, n := range active {
		if matchesQuery(n, q) {
			matched = append(matched, n)
		}
	}
	return matched, nil
}

func matchesQuery(n *models.Note, q string) bool {
	if strings.Contains(strings.ToLower(n.Title), q) {
		return true
	}
	if strings.Contains(strings.ToLower(n.PlainText), q) {
		return true
	}
	for _, tag := range n.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

func (s *Service) filterNotes(keep func(*models.Note) bool) ([]*models.Note, error) {
	all, err := s.repo.ListNotes()
	if err != nil {
		return nil, err
	}
	var out []*models.Note
	for _, n := range all {
		if keep(n) {
			out = append(out, n)
		}
	}
	return out, nil
}
