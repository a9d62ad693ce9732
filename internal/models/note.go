// Package models provides data model definitions for the Likhlo core.
package models

import (
	"strings"
	"time"

	"github.com/likhlo/likhlo/internal/document"
)

// NoteColor is one value of the fixed palette notes and folders draw from.
type NoteColor string

const (
	ColorDefault NoteColor = "default"
	ColorRed     NoteColor = "red"
	ColorOrange  NoteColor = "orange"
	ColorYellow  NoteColor = "yellow"
	ColorGreen   NoteColor = "green"
	ColorTeal    NoteColor = "teal"
	ColorBlue    NoteColor = "blue"
	ColorPurple  NoteColor = "purple"
	ColorPink    NoteColor = "pink"
)

// Colors lists the full palette.
var Colors = []NoteColor{
	ColorDefault, ColorRed, ColorOrange, ColorYellow, ColorGreen,
	ColorTeal, ColorBlue, ColorPurple, ColorPink,
}

// Valid reports whether the color belongs to the palette.
func (c NoteColor) Valid() bool {
	for _, v := range Colors {
		if c == v {
			return true
		}
	}
	return false
}

// Note represents one document.
//
// UserID and FolderID use "" for "no account" / "unfiled"; both persist as
// SQL NULL. Content nil means an empty document. IsArchived and IsTrashed
// are independent flags: a trashed note keeps its archived bit so that
// restoring from trash puts it back where it was, but the query layer
// gives IsTrashed precedence when partitioning.
type Note struct {
	ID         string         `db:"id" json:"id"`
	UserID     string         `db:"user_id" json:"userId,omitempty"`
	Title      string         `db:"title" json:"title"`
	Content    *document.Doc  `db:"content" json:"content"`
	PlainText  string         `db:"plain_text" json:"plainText"`
	Color      NoteColor      `db:"color" json:"color"`
	FolderID   string         `db:"folder_id" json:"folderId,omitempty"`
	Tags       []string       `db:"tags" json:"tags"`
	IsPinned   bool           `db:"is_pinned" json:"isPinned"`
	IsArchived bool           `db:"is_archived" json:"isArchived"`
	IsTrashed  bool           `db:"is_trashed" json:"isTrashed"`
	CreatedAt  int64          `db:"created_at" json:"createdAt"`
	UpdatedAt  int64          `db:"updated_at" json:"updatedAt"`
}

// TableName returns the table name for Note.
func (Note) TableName() string {
	return "notes"
}

// CreatedAtTime returns CreatedAt as time.Time.
func (n *Note) CreatedAtTime() time.Time {
	return time.UnixMilli(n.CreatedAt)
}

// UpdatedAtTime returns UpdatedAt as time.Time.
func (n *Note) UpdatedAtTime() time.Time {
	return time.UnixMilli(n.UpdatedAt)
}

// Touch refreshes the UpdatedAt timestamp.
func (n *Note) Touch() {
	n.UpdatedAt = NowMillis()
}

// NowMillis returns the current wall clock in milliseconds, the unit every
// stored timestamp uses.
func NowMillis() int64 {
	return time.Now().UnixMilli()
}

// NotePatch carries field changes for an update. Nil fields are left
// untouched; a non-nil FolderID or UserID pointing at "" clears the
// reference. Content cannot be cleared through a patch, only replaced.
type NotePatch struct {
	UserID     *string
	Title      *string
	Content    *document.Doc
	PlainText  *string
	Color      *NoteColor
	FolderID   *string
	Tags       *[]string
	IsPinned   *bool
	IsArchived *bool
	IsTrashed  *bool
}

// Apply shallow-merges the patch into n. Timestamps are the caller's job.
func (p *NotePatch) Apply(n *Note) {
	if p == nil {
		return
	}
	if p.UserID != nil {
		n.UserID = *p.UserID
	}
	if p.Title != nil {
		n.Title = *p.Title
	}
	if p.Content != nil {
		n.Content = p.Content
	}
	if p.PlainText != nil {
		n.PlainText = *p.PlainText
	}
	if p.Color != nil {
		n.Color = *p.Color
	}
	if p.FolderID != nil {
		n.FolderID = *p.FolderID
	}
	if p.Tags != nil {
		n.Tags = NormalizeTags(*p.Tags)
	}
	if p.IsPinned != nil {
		n.IsPinned = *p.IsPinned
	}
	if p.IsArchived != nil {
		n.IsArchived = *p.IsArchived
	}
	if p.IsTrashed != nil {
		n.IsTrashed = *p.IsTrashed
	}
}

// NormalizeTags lower-cases tags and drops duplicates and blanks while
// keeping first-seen order, so display order stays stable.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = normalizeTag(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

func normalizeTag(t string) string {
	return strings.ToLower(strings.TrimSpace(t))
}
