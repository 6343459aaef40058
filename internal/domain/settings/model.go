package settings

// Settings are the simple key-value user toggles.
type Settings struct {
	DarkMode          bool   `json:"darkMode"`
	DailyNotification bool   `json:"dailyNotification"`
	HomeCity          string `json:"homeCity,omitempty"`
}

// UpdateRequest carries a partial update; nil fields are left unchanged.
type UpdateRequest struct {
	DarkMode          *bool   `json:"darkMode"`
	DailyNotification *bool   `json:"dailyNotification"`
	HomeCity          *string `json:"homeCity"`
}
