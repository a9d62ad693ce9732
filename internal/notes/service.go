// Package notes implements the mutation operations and read-side queries
// of the Likhlo core. It is the only code path that writes to the store.
package notes

import (
	"encoding/json"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/sirupsen/logrus"

	"github.com/likhlo/likhlo/internal/db"
	"github.com/likhlo/likhlo/internal/document"
	apperr "github.com/likhlo/likhlo/internal/errors"
	"github.com/likhlo/likhlo/internal/logging"
	"github.com/likhlo/likhlo/internal/models"
	"github.com/likhlo/likhlo/internal/uuid"
)

// Service exposes every operation the UI layer is allowed to invoke.
// Update-style operations return (nil, nil) when the target id is absent:
// updating something that no longer exists is an expected race, not an
// error, and callers must check for the nil result.
type Service struct {
	repo *db.Repository
}

// NewService creates a Service over the given repository.
func NewService(repo *db.Repository) *Service {
	return &Service{repo: repo}
}

// =====================================================
// Note mutations
// =====================================================

// CreateNote builds a note with every field defaulted, applies the caller
// overrides, persists and returns the full record.
func (s *Service) CreateNote(overrides *models.NotePatch) (*models.Note, error) {
	now := models.NowMillis()
	n := &models.Note{
		ID:        uuid.New(),
		Title:     "",
		Content:   nil,
		PlainText: "",
		Color:     models.ColorDefault,
		FolderID:  "",
		Tags:      []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	overrides.Apply(n)
	if overrides != nil && overrides.Content != nil && overrides.PlainText == nil {
		n.PlainText = document.PlainText(n.Content)
	}
	if err := validateNoteFields(n); err != nil {
		return nil, err
	}

	if err := s.repo.PutNote(n); err != nil {
		return nil, err
	}
	logging.Debug("note created", logrus.Fields{"id": n.ID})
	return n, nil
}

// UpdateNote shallow-merges changes over the stored record, refreshes
// updatedAt and persists. Returns (nil, nil) when the id is absent. When
// the patch replaces Content without supplying PlainText, the plain-text
// cache is recomputed here so it can never go stale.
func (s *Service) UpdateNote(id string, changes *models.NotePatch) (*models.Note, error) {
	n, err := s.repo.GetNote(id)
	if err != nil || n == nil {
		return nil, err
	}
	changes.Apply(n)
	if changes != nil && changes.Content != nil && changes.PlainText == nil {
		n.PlainText = document.PlainText(n.Content)
	}
	if err := validateNoteFields(n); err != nil {
		return nil, err
	}
	n.Touch()

	if err := s.repo.PutNote(n); err != nil {
		return nil, err
	}
	return n, nil
}

// TrashNote soft-deletes: the record is flagged, never removed.
func (s *Service) TrashNote(id string) (*models.Note, error) {
	return s.UpdateNote(id, &models.NotePatch{IsTrashed: ptr(true)})
}

// RestoreNote brings a note back from the trash. A note that was archived
// when trashed returns to the archive.
func (s *Service) RestoreNote(id string) (*models.Note, error) {
	return s.UpdateNote(id, &models.NotePatch{IsTrashed: ptr(false)})
}

// ArchiveNote moves a note to the archive partition.
func (s *Service) ArchiveNote(id string) (*models.Note, error) {
	return s.UpdateNote(id, &models.NotePatch{IsArchived: ptr(true)})
}

// UnarchiveNote moves a note back to the active partition.
func (s *Service) UnarchiveNote(id string) (*models.Note, error) {
	return s.UpdateNote(id, &models.NotePatch{IsArchived: ptr(false)})
}

// TogglePin flips the pinned flag. A missing id is a no-op.
func (s *Service) TogglePin(id string) (*models.Note, error) {
	n, err := s.repo.GetNote(id)
	if err != nil || n == nil {
		return nil, err
	}
	return s.UpdateNote(id, &models.NotePatch{IsPinned: ptr(!n.IsPinned)})
}

// PermanentlyDeleteNote removes the record from the store. Irreversible.
func (s *Service) PermanentlyDeleteNote(id string) error {
	if err := s.repo.DeleteNote(id); err != nil {
		return err
	}
	logging.Debug("note permanently deleted", logrus.Fields{"id": id})
	return nil
}

// EmptyTrash permanently deletes every trashed note in one batch and
// returns how many were removed. Notes outside the trash are never
// touched.
func (s *Service) EmptyTrash() (int, error) {
	trashed, err := s.TrashedNotes()
	if err != nil {
		return 0, err
	}
	ids := make([]string, len(trashed))
	for i, n := range trashed {
		ids[i] = n.ID
	}
	if err := s.repo.DeleteNotes(ids); err != nil {
		return 0, err
	}
	if len(ids) > 0 {
		logging.Info("trash emptied", logrus.Fields{"count": len(ids)})
	}
	return len(ids), nil
}

// ImportMarkdown creates a new note from Markdown source.
func (s *Service) ImportMarkdown(title, src string) (*models.Note, error) {
	doc := document.FromMarkdown(src)
	return s.CreateNote(&models.NotePatch{
		Title:   &title,
		Content: doc,
	})
}

// =====================================================
// Folder mutations
// =====================================================

// CreateFolder creates a folder appended to the end of the manual order.
// The icon starts as the base folder icon; an empty color means default.
func (s *Service) CreateFolder(name string, color models.NoteColor) (*models.Folder, error) {
	if color == "" {
		color = models.ColorDefault
	}
	if err := validateFolderName(name); err != nil {
		return nil, err
	}
	if err := validateColor(color); err != nil {
		return nil, err
	}

	count, err := s.repo.CountFolders()
	if err != nil {
		return nil, err
	}
	f := &models.Folder{
		ID:        uuid.New(),
		Name:      name,
		Icon:      models.DefaultFolderIcon,
		Color:     color,
		Order:     count,
		CreatedAt: models.NowMillis(),
	}
	if err := s.repo.PutFolder(f); err != nil {
		return nil, err
	}
	logging.Debug("folder created", logrus.Fields{"id": f.ID, "name": f.Name})
	return f, nil
}

// UpdateFolder shallow-merges changes over the stored folder. Returns
// (nil, nil) when the id is absent.
func (s *Service) UpdateFolder(id string, changes *models.FolderPatch) (*models.Folder, error) {
	if err := validateFolderPatch(changes); err != nil {
		return nil, err
	}
	f, err := s.repo.GetFolder(id)
	if err != nil || f == nil {
		return nil, err
	}
	changes.Apply(f)
	if err := s.repo.PutFolder(f); err != nil {
		return nil, err
	}
	return f, nil
}

// DeleteFolder moves every contained note to unfiled and then removes the
// folder, atomically. The notes themselves are never deleted. Deleting a
// folder that does not exist is a no-op.
func (s *Service) DeleteFolder(id string) error {
	if err := s.repo.DeleteFolderCascade(id); err != nil {
		return err
	}
	logging.Debug("folder deleted", logrus.Fields{"id": id})
	return nil
}

// Folders returns all folders in manual display order.
func (s *Service) Folders() ([]*models.Folder, error) {
	return s.repo.ListFolders()
}

// =====================================================
// Settings
// =====================================================

// Settings returns the stored settings merged over the defaults, so a
// fresh database and a partially written record both read back complete.
func (s *Service) Settings() (models.AppSettings, error) {
	settings := models.DefaultSettings()
	raw, err := s.repo.GetSetting(db.SettingsKey)
	if err != nil {
		return settings, err
	}
	if raw != nil {
		if err := json.Unmarshal(raw, &settings); err != nil {
			return models.DefaultSettings(), err
		}
	}
	return settings, nil
}

// UpdateSettings shallow-merges changes over the current settings and
// persists the merged record under the fixed key.
func (s *Service) UpdateSettings(changes *models.SettingsPatch) (models.AppSettings, error) {
	if err := validateSettingsPatch(changes); err != nil {
		return models.AppSettings{}, err
	}
	current, err := s.Settings()
	if err != nil {
		return current, err
	}
	changes.Apply(&current)
	raw, err := json.Marshal(current)
	if err != nil {
		return current, err
	}
	if err := s.repo.PutSetting(db.SettingsKey, raw); err != nil {
		return current, err
	}
	return current, nil
}

// =====================================================
// Validation
// =====================================================

func validateNoteFields(n *models.Note) error {
	if !n.Color.Valid() {
		return apperr.New(apperr.ErrValidation, "unknown note color: "+string(n.Color))
	}
	return nil
}

func validateFolderName(name string) error {
	if err := validation.Validate(name, validation.Required, validation.Length(1, 120)); err != nil {
		return apperr.Wrap(apperr.ErrValidation, "invalid folder name", err)
	}
	return nil
}

func validateColor(color models.NoteColor) error {
	if !color.Valid() {
		return apperr.New(apperr.ErrValidation, "unknown color: "+string(color))
	}
	return nil
}

func validateFolderPatch(p *models.FolderPatch) error {
	if p == nil {
		return nil
	}
	if p.Name != nil {
		if err := validateFolderName(*p.Name); err != nil {
			return err
		}
	}
	if p.Icon != nil && !models.ValidFolderIcon(*p.Icon) {
		return apperr.New(apperr.ErrValidation, "unknown folder icon: "+*p.Icon)
	}
	if p.Color != nil {
		if err := validateColor(*p.Color); err != nil {
			return err
		}
	}
	if p.Order != nil {
		if err := validation.Validate(*p.Order, validation.Min(0)); err != nil {
			return apperr.Wrap(apperr.ErrValidation, "invalid folder order", err)
		}
	}
	return nil
}

func validateSettingsPatch(p *models.SettingsPatch) error {
	if p == nil {
		return nil
	}
	if p.Theme != nil && !p.Theme.Valid() {
		return apperr.New(apperr.ErrValidation, "unknown theme: "+string(*p.Theme))
	}
	if p.ViewMode != nil && !p.ViewMode.Valid() {
		return apperr.New(apperr.ErrValidation, "unknown view mode: "+string(*p.ViewMode))
	}
	if p.SortBy != nil && !p.SortBy.Valid() {
		return apperr.New(apperr.ErrValidation, "unknown sort option: "+string(*p.SortBy))
	}
	return nil
}

func ptr[T any](v T) *T {
	return &v
}
