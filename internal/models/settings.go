package models

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func (t Theme) IsValid() bool {
	return t == ThemeLight || t == ThemeDark
}

// Settings is a singleton record, created with defaults on first access.
type Settings struct {
	Theme Theme `json:"theme"`
}

func DefaultSettings() Settings {
	return Settings{Theme: ThemeLight}
}
