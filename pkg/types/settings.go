package types

// Theme is the UI color theme.
type Theme string

// Valid themes.
const (
	ThemeSage Theme = "sage"
	ThemeBlue Theme = "blue"
	ThemeSand Theme = "sand"
)

// IsValidTheme reports whether t is one of the known themes.
func IsValidTheme(t Theme) bool {
	switch t {
	case ThemeSage, ThemeBlue, ThemeSand:
		return true
	}
	return false
}

// Settings is the singleton user configuration. It is persisted as a whole
// object; on read, persisted values are merged field-by-field over defaults.
type Settings struct {
	Theme           Theme `json:"theme"`
	ReminderEnabled bool  `json:"reminderEnabled"`
	ReminderHour    int   `json:"reminderHour"`   // 0-23
	ReminderMinute  int   `json:"reminderMinute"` // 0-59
}

// DefaultSettings returns the settings used when nothing has been persisted:
// sage theme, reminder disabled, reminder time 20:00.
func DefaultSettings() Settings {
	return Settings{
		Theme:           ThemeSage,
		ReminderEnabled: false,
		ReminderHour:    20,
		ReminderMinute:  0,
	}
}

// Normalize replaces out-of-range or unknown values with their defaults so a
// Settings loaded from an older or corrupted blob is always usable.
func (s *Settings) Normalize() {
	if !IsValidTheme(s.Theme) {
		s.Theme = ThemeSage
	}
	if s.ReminderHour < 0 || s.ReminderHour > 23 {
		s.ReminderHour = 20
	}
	if s.ReminderMinute < 0 || s.ReminderMinute > 59 {
		s.ReminderMinute = 0
	}
}
