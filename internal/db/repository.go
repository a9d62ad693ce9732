// CRUD repository operations for the Likhlo record kinds: notes, folders
// and the settings singleton.
package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/likhlo/likhlo/internal/document"
	"github.com/likhlo/likhlo/internal/models"
)

// SettingsKey is the fixed key the settings singleton is stored under.
const SettingsKey = "app"

// Repository provides CRUD operations over the lazy store handle. The
// first operation opens the database; all later operations reuse the
// cached handle.
type Repository struct {
	store *Lazy

	// Prepared statement cache for frequently used queries.
	// Statements are prepared on first use and cached for reuse.
	stmtCache sync.Map // map[string]*sql.Stmt
}

// NewRepository creates a new Repository over the given lazy handle.
func NewRepository(store *Lazy) *Repository {
	return &Repository{store: store}
}

// prepareStmt gets or creates a prepared statement from the cache.
func (r *Repository) prepareStmt(query string) (*sql.Stmt, error) {
	if stmt, ok := r.stmtCache.Load(query); ok {
		return stmt.(*sql.Stmt), nil
	}

	db, err := r.store.Get()
	if err != nil {
		return nil, err
	}
	stmt, err := db.Prepare(query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare statement: %w", err)
	}

	actual, loaded := r.stmtCache.LoadOrStore(query, stmt)
	if loaded {
		// Another goroutine already prepared this, close our duplicate
		stmt.Close()
		return actual.(*sql.Stmt), nil
	}
	return stmt, nil
}

// Close closes all cached prepared statements.
func (r *Repository) Close() error {
	var firstErr error
	r.stmtCache.Range(func(key, value interface{}) bool {
		stmt := value.(*sql.Stmt)
		if err := stmt.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		return true
	})
	return firstErr
}

// =====================================================
// Note Operations
// =====================================================

const noteColumns = `id, user_id, title, content, plain_text, color, folder_id,
	tags, is_pinned, is_archived, is_trashed, created_at, updated_at`

// PutNote upserts the full note record.
func (r *Repository) PutNote(n *models.Note) error {
	content, err := encodeContent(n.Content)
	if err != nil {
		return fmt.Errorf("failed to encode note content: %w", err)
	}
	tags, err := json.Marshal(n.Tags)
	if err != nil {
		return fmt.Errorf("failed to encode note tags: %w", err)
	}

	query := `
	INSERT INTO notes (` + noteColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		user_id = excluded.user_id, title = excluded.title,
		content = excluded.content, plain_text = excluded.plain_text,
		color = excluded.color, folder_id = excluded.folder_id,
		tags = excluded.tags, is_pinned = excluded.is_pinned,
		is_archived = excluded.is_archived, is_trashed = excluded.is_trashed,
		created_at = excluded.created_at, updated_at = excluded.updated_at
	`
	stmt, err := r.prepareStmt(query)
	if err != nil {
		return err
	}
	_, err = stmt.Exec(n.ID, nullable(n.UserID), n.Title, content, n.PlainText,
		string(n.Color), nullable(n.FolderID), string(tags),
		n.IsPinned, n.IsArchived, n.IsTrashed, n.CreatedAt, n.UpdatedAt)
	return err
}

// GetNote retrieves a note by id. Returns (nil, nil) when the id is absent.
func (r *Repository) GetNote(id string) (*models.Note, error) {
	stmt, err := r.prepareStmt(`SELECT ` + noteColumns + ` FROM notes WHERE id = ?`)
	if err != nil {
		return nil, err
	}
	n, err := scanNote(stmt.QueryRow(id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return n, err
}

// ListNotes returns every stored note.
func (r *Repository) ListNotes() ([]*models.Note, error) {
	return r.queryNotes(`SELECT `+noteColumns+` FROM notes`, nil)
}

// ListNotesByFolder returns all notes filed under folderID, regardless of
// archived or trashed state. Used by the folder-delete cascade.
func (r *Repository) ListNotesByFolder(folderID string) ([]*models.Note, error) {
	return r.queryNotes(`SELECT `+noteColumns+` FROM notes WHERE folder_id = ?`,
		[]interface{}{folderID})
}

// DeleteNote removes a note record entirely. Irreversible.
func (r *Repository) DeleteNote(id string) error {
	stmt, err := r.prepareStmt(`DELETE FROM notes WHERE id = ?`)
	if err != nil {
		return err
	}
	_, err = stmt.Exec(id)
	return err
}

// DeleteNotes removes the given note records in one transaction, so no
// reader observes a half-emptied batch.
func (r *Repository) DeleteNotes(ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	db, err := r.store.Get()
	if err != nil {
		return err
	}
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, id := range ids {
		if _, err := tx.Exec(`DELETE FROM notes WHERE id = ?`, id); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *Repository) queryNotes(query string, args []interface{}) ([]*models.Note, error) {
	stmt, err := r.prepareStmt(query)
	if err != nil {
		return nil, err
	}
	rows, err := stmt.Query(args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []*models.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return notes, nil
}

// scanner matches both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanNote(row scanner) (*models.Note, error) {
	var n models.Note
	var userID, content, folderID sql.NullString
	var tags string
	err := row.Scan(&n.ID, &userID, &n.Title, &content, &n.PlainText,
		&n.Color, &folderID, &tags, &n.IsPinned, &n.IsArchived, &n.IsTrashed,
		&n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return nil, err
	}
	n.UserID = userID.String
	n.FolderID = folderID.String
	if err := json.Unmarshal([]byte(tags), &n.Tags); err != nil {
		return nil, fmt.Errorf("failed to decode note tags: %w", err)
	}
	if content.Valid {
		var doc document.Doc
		if err := json.Unmarshal([]byte(content.String), &doc); err != nil {
			return nil, fmt.Errorf("failed to decode note content: %w", err)
		}
		n.Content = &doc
	}
	return &n, nil
}

func encodeContent(doc *document.Doc) (interface{}, error) {
	if doc == nil {
		return nil, nil
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// nullable maps "" to SQL NULL for the optional reference columns.
func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// =====================================================
// Folder Operations
// =====================================================

const folderColumns = `id, name, icon, color, ord, created_at`

// PutFolder upserts the full folder record.
func (r *Repository) PutFolder(f *models.Folder) error {
	query := `
	INSERT INTO folders (` + folderColumns + `)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		name = excluded.name, icon = excluded.icon, color = excluded.color,
		ord = excluded.ord, created_at = excluded.created_at
	`
	stmt, err := r.prepareStmt(query)
	if err != nil {
		return err
	}
	_, err = stmt.Exec(f.ID, f.Name, f.Icon, string(f.Color), f.Order, f.CreatedAt)
	return err
}

// GetFolder retrieves a folder by id. Returns (nil, nil) when absent.
func (r *Repository) GetFolder(id string) (*models.Folder, error) {
	stmt, err := r.prepareStmt(`SELECT ` + folderColumns + ` FROM folders WHERE id = ?`)
	if err != nil {
		return nil, err
	}
	var f models.Folder
	err = stmt.QueryRow(id).Scan(&f.ID, &f.Name, &f.Icon, &f.Color, &f.Order, &f.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// ListFolders returns all folders in manual display order.
func (r *Repository) ListFolders() ([]*models.Folder, error) {
	stmt, err := r.prepareStmt(`SELECT ` + folderColumns + ` FROM folders ORDER BY ord, created_at`)
	if err != nil {
		return nil, err
	}
	rows, err := stmt.Query()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var folders []*models.Folder
	for rows.Next() {
		var f models.Folder
		if err := rows.Scan(&f.ID, &f.Name, &f.Icon, &f.Color, &f.Order, &f.CreatedAt); err != nil {
			return nil, err
		}
		folders = append(folders, &f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return folders, nil
}

// CountFolders returns the number of stored folders.
func (r *Repository) CountFolders() (int, error) {
	stmt, err := r.prepareStmt(`SELECT COUNT(*) FROM folders`)
	if err != nil {
		return 0, err
	}
	var count int
	err = stmt.QueryRow().Scan(&count)
	return count, err
}

// DeleteFolderCascade orphans every note filed under the folder and then
// removes the folder record, inside one transaction. The ordering is
// mandatory: no note may be observably left pointing at a deleted folder.
// Orphaning does not bump the notes' updated_at; moving to unfiled as a
// side effect of folder deletion is not a user edit.
func (r *Repository) DeleteFolderCascade(id string) error {
	db, err := r.store.Get()
	if err != nil {
		return err
	}
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`UPDATE notes SET folder_id = NULL WHERE folder_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM folders WHERE id = ?`, id); err != nil {
		return err
	}
	return tx.Commit()
}

// =====================================================
// Settings Operations
// =====================================================

// GetSetting retrieves a raw settings value. Returns (nil, nil) when the
// key was never written.
func (r *Repository) GetSetting(key string) ([]byte, error) {
	stmt, err := r.prepareStmt(`SELECT value FROM settings WHERE key = ?`)
	if err != nil {
		return nil, err
	}
	var value string
	err = stmt.QueryRow(key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []byte(value), nil
}

// PutSetting upserts a raw settings value under the given key.
func (r *Repository) PutSetting(key string, value []byte) error {
	query := `
	INSERT INTO settings (key, value) VALUES (?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`
	stmt, err := r.prepareStmt(query)
	if err != nil {
		return err
	}
	_, err = stmt.Exec(key, string(value))
	return err
}
