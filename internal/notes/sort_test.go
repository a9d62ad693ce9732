package notes

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/likhlo/likhlo/internal/models"
)

func note(id, title string, created, updated int64, pinned bool) *models.Note {
	return &models.Note{
		ID:        id,
		Title:     title,
		IsPinned:  pinned,
		CreatedAt: created,
		UpdatedAt: updated,
	}
}

func TestSortNotesByUpdated(t *testing.T) {
	notes := []*models.Note{
		note("old", "", 1, 100, false),
		note("new", "", 2, 300, false),
		note("mid", "", 3, 200, false),
	}

	got := SortNotes(notes, models.SortByUpdated, true)
	assert.Equal(t, []string{"new", "mid", "old"}, ids(got))

	got = SortNotes(notes, models.SortByUpdated, false)
	assert.Equal(t, []string{"old", "mid", "new"}, ids(got))
}

func TestSortNotesByTitle(t *testing.T) {
	notes := []*models.Note{
		note("b", "banana", 0, 0, false),
		note("a", "apple", 0, 0, false),
		note("c", "cherry", 0, 0, false),
	}

	got := SortNotes(notes, models.SortByTitle, false)
	assert.Equal(t, []string{"a", "b", "c"}, ids(got))

	got = SortNotes(notes, models.SortByTitle, true)
	assert.Equal(t, []string{"c", "b", "a"}, ids(got))
}

func TestSortNotesPinnedFirstIsAbsolute(t *testing.T) {
	notes := []*models.Note{
		note("unpinned-new", "", 0, 900, false),
		note("pinned-old", "", 0, 100, true),
		note("unpinned-old", "", 0, 200, false),
		note("pinned-new", "", 0, 800, true),
	}

	// Descending order must not push pinned notes to the end.
	got := SortNotes(notes, models.SortByUpdated, true)
	assert.Equal(t, []string{"pinned-new", "pinned-old", "unpinned-new", "unpinned-old"}, ids(got))

	got = SortNotes(notes, models.SortByUpdated, false)
	assert.Equal(t, []string{"pinned-old", "pinned-new", "unpinned-old", "unpinned-new"}, ids(got))
}

func TestSortNotesStable(t *testing.T) {
	// Equal keys keep their input order.
	notes := []*models.Note{
		note("first", "same", 5, 5, false),
		note("second", "same", 5, 5, false),
		note("third", "same", 5, 5, false),
	}

	for _, desc := range []bool{false, true} {
		got := SortNotes(notes, models.SortByTitle, desc)
		assert.Equal(t, []string{"first", "second", "third"}, ids(got), "desc=%v", desc)
	}
}

func TestSortNotesDoesNotMutateInput(t *testing.T) {
	notes := []*models.Note{
		note("b", "", 0, 200, false),
		note("a", "", 0, 100, false),
	}

	got := SortNotes(notes, models.SortByUpdated, false)
	assert.Equal(t, []string{"a", "b"}, ids(got))
	assert.Equal(t, []string{"b", "a"}, ids(notes), "input order preserved")

	// Sorting an already sorted slice changes nothing.
	again := SortNotes(got, models.SortByUpdated, false)
	assert.Equal(t, ids(got), ids(again))
}

func TestSortNotesEmptyAndSingle(t *testing.T) {
	assert.Empty(t, SortNotes(nil, models.SortByUpdated, true))

	one := []*models.Note{note("only", "", 1, 1, false)}
	assert.Equal(t, []string{"only"}, ids(SortNotes(one, models.SortByCreated, true)))
}
