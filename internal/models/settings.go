package models

// Theme is the UI theme preference.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// Valid reports whether the theme is a known value.
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark || t == ThemeSystem
}

// ViewMode is the note listing layout.
type ViewMode string

const (
	ViewGrid ViewMode = "grid"
	ViewList ViewMode = "list"
)

// Valid reports whether the view mode is a known value.
func (v ViewMode) Valid() bool {
	return v == ViewGrid || v == ViewList
}

// SortOption selects the note sort key.
type SortOption string

const (
	SortByUpdated SortOption = "updatedAt"
	SortByCreated SortOption = "createdAt"
	SortByTitle   SortOption = "title"
)

// Valid reports whether the sort option is a known value.
func (s SortOption) Valid() bool {
	return s == SortByUpdated || s == SortByCreated || s == SortByTitle
}

// AppSettings is the process-wide settings singleton, stored as one record
// under a fixed key.
type AppSettings struct {
	Theme    Theme      `json:"theme"`
	ViewMode ViewMode   `json:"viewMode"`
	SortBy   SortOption `json:"sortBy"`
	SortDesc bool       `json:"sortDesc"`
}

// DefaultSettings returns the settings used when nothing is stored yet.
func DefaultSettings() AppSettings {
	return AppSettings{
		Theme:    ThemeSystem,
		ViewMode: ViewGrid,
		SortBy:   SortByUpdated,
		SortDesc: true,
	}
}

// SettingsPatch carries settings changes. Nil fields retain their stored
// value (shallow merge).
type SettingsPatch struct {
	Theme    *Theme
	ViewMode *ViewMode
	SortBy   *SortOption
	SortDesc *bool
}

// Apply shallow-merges the patch into s.
func (p *SettingsPatch) Apply(s *AppSettings) {
	if p == nil {
		return
	}
	if p.Theme != nil {
		s.Theme = *p.Theme
	}
	if p.ViewMode != nil {
		s.ViewMode = *p.ViewMode
	}
	if p.SortBy != nil {
		s.SortBy = *p.SortBy
	}
	if p.SortDesc != nil {
		s.SortDesc = *p.SortDesc
	}
}
