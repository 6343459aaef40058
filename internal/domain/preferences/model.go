package preferences

// RecordID is the fixed key of the singleton preferences record.
const RecordID = "user_preferences"

// Preferences holds the user's recommendation preferences.
type Preferences struct {
	WeatherSensitivity float64 `json:"weatherSensitivity"`
	PrefersCasual      bool    `json:"prefersCasual"`
}

// Defaults returns the record created on first load.
func Defaults() Preferences {
	return Preferences{WeatherSensitivity: 0.5, PrefersCasual: true}
}

// Clamp bounds WeatherSensitivity to [0, 1].
func (p Preferences) Clamp() Preferences {
	switch {
	case p.WeatherSensitivity < 0:
		p.WeatherSensitivity = 0
	case p.WeatherSensitivity > 1:
		p.WeatherSensitivity = 1
	}
	return p
}
