package models

import "time"

// DefaultFolderIcon is the icon assigned when none is chosen.
const DefaultFolderIcon = "folder"

// FolderIcons is the fixed icon identifier set folders may use.
var FolderIcons = []string{
	"folder", "star", "heart", "bookmark", "lightbulb",
	"work", "home", "code", "music", "camera",
	"game", "shopping", "food", "fitness", "travel",
	"book", "calendar", "mail", "settings", "half-star",
	"sparkles", "zap", "shield", "flag", "tag",
}

// ValidFolderIcon reports whether icon is part of the icon set.
func ValidFolderIcon(icon string) bool {
	for _, v := range FolderIcons {
		if icon == v {
			return true
		}
	}
	return false
}

// Folder represents a user-defined note grouping. Order is the manual
// display position, assigned as the folder count at creation time; values
// are not re-compacted after deletions.
type Folder struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Icon      string    `db:"icon" json:"icon"`
	Color     NoteColor `db:"color" json:"color"`
	Order     int       `db:"ord" json:"order"`
	CreatedAt int64     `db:"created_at" json:"createdAt"`
}

// TableName returns the table name for Folder.
func (Folder) TableName() string {
	return "folders"
}

// CreatedAtTime returns CreatedAt as time.Time.
func (f *Folder) CreatedAtTime() time.Time {
	return time.UnixMilli(f.CreatedAt)
}

// FolderPatch carries field changes for a folder update. Nil fields are
// left untouched.
type FolderPatch struct {
	Name  *string
	Icon  *string
	Color *NoteColor
	Order *int
}

// Apply shallow-merges the patch into f.
func (p *FolderPatch) Apply(f *Folder) {
	if p == nil {
		return
	}
	if p.Name != nil {
		f.Name = *p.Name
	}
	if p.Icon != nil {
		f.Icon = *p.Icon
	}
	if p.Color != nil {
		f.Color = *p.Color
	}
	if p.Order != nil {
		f.Order = *p.Order
	}
}
