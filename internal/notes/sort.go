package notes

import (
	"sort"
	"strings"

	"github.com/likhlo/likhlo/internal/models"
)

// SortNotes returns a stably sorted copy of notes: pinned notes always
// come before unpinned ones regardless of sortBy and desc (pinned-first is
// absolute, never reversed), then each pin group is ordered by the chosen
// key, reversed when desc. The input slice is not modified.
func SortNotes(notes []*models.Note, sortBy models.SortOption, desc bool) []*models.Note {
	sorted := make([]*models.Note, len(notes))
	copy(sorted, notes)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.IsPinned != b.IsPinned {
			return a.IsPinned
		}

		var cmp int
		switch sortBy {
		case models.SortByTitle:
			cmp = strings.Compare(a.Title, b.Title)
		case models.SortByCreated:
			cmp = compareInt64(a.CreatedAt, b.CreatedAt)
		default:
			cmp = compareInt64(a.UpdatedAt, b.UpdatedAt)
		}
		if desc {
			cmp = -cmp
		}
		return cmp < 0
	})
	return sorted
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
