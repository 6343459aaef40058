package recommend

import (
	"regexp"
	"strconv"
	"strings"
)

// hotThreshold is exclusive: 75°F is still pleasant.
const hotThreshold = 75

var leadingTemperature = regexp.MustCompile(`^\s*(-?\d+)`)

var outdoorKeywords = []string{"park", "hike", "walking", "run", "jog", "picnic", "outdoor", "garden"}

type branch struct {
	description string
	tags        []string
	emoji       string
	reason      string
	outdoor     string
	indoor      string
}

var branches = map[Condition]branch{
	ConditionSnow: {
		description: "Heavy coat, warm boots, gloves and a scarf",
		tags:        []string{"Heavy coat", "Boots", "Gloves", "Scarf"},
		emoji:       "❄️🧥",
		reason:      "Snow means freezing temperatures and slippery ground, so insulation and grip matter most.",
		outdoor:     "Snow expected. Bundle up in a heavy coat and boots and allow extra time outside.",
		indoor:      "Snowy outside. Wear a warm coat and boots for the trip there.",
	},
	ConditionRain: {
		description: "Raincoat, umbrella and waterproof shoes",
		tags:        []string{"Raincoat", "Umbrella", "Waterproof shoes"},
		emoji:       "🌧️☂️",
		reason:      "Rain is expected, so stay dry with waterproof layers.",
		outdoor:     "Rain likely. Bring an umbrella and consider moving this indoors.",
		indoor:      "Rain expected. Grab a raincoat or umbrella on your way.",
	},
	ConditionStorm: {
		description: "Waterproof jacket and sturdy boots, or stay indoors",
		tags:        []string{"Waterproof jacket", "Sturdy boots", "Stay indoors"},
		emoji:       "⛈️🏠",
		reason:      "Storms bring heavy rain and wind; limit time outside.",
		outdoor:     "Storms forecast. Consider rescheduling this outdoor plan.",
		indoor:      "Stormy weather. Leave early and bring a waterproof jacket.",
	},
	ConditionCloud: {
		description: "Light jacket with jeans and sneakers",
		tags:        []string{"Light jacket", "Jeans", "Sneakers"},
		emoji:       "☁️🧥",
		reason:      "Clouds keep it cooler than it looks, so a light layer helps.",
		outdoor:     "Overcast skies. A light jacket will keep you comfortable outside.",
		indoor:      "Cloudy. A light jacket is enough.",
	},
	ConditionHot: {
		description: "T-shirt, shorts, sunglasses and sunscreen",
		tags:        []string{"T-shirt", "Shorts", "Sunglasses", "Sunscreen"},
		emoji:       "☀️😎",
		reason:      "It is hot and sunny; breathable fabrics and sun protection keep you cool.",
		outdoor:     "Hot and sunny. Wear breathable clothes and sunscreen, and bring water.",
		indoor:      "Hot out there. Dress light for the commute.",
	},
	ConditionPleasant: {
		description: "Light sweater, chinos and sunglasses",
		tags:        []string{"Light sweater", "Chinos", "Sunglasses"},
		emoji:       "☀️😎",
		reason:      "Clear skies and mild temperatures call for light, comfortable layers.",
		outdoor:     "Pleasant weather, perfect for being outside. A light layer will do.",
		indoor:      "Pleasant weather. Dress comfortably.",
	},
	ConditionDefault: {
		description: "Comfortable layers and sneakers",
		tags:        []string{"Comfortable layers", "Sneakers"},
		emoji:       "🌈👕",
		reason:      "Conditions are mixed, so layers let you adapt through the day.",
		outdoor:     "Check conditions before heading out and dress in layers.",
		indoor:      "Dress in comfortable layers.",
	},
}

// Classify maps a weather string to its branch. Keyword precedence is
// snow, rain/drizzle, storm, cloud, sunny/clear; the first hit wins.
func Classify(weather string) Condition {
	lowered := strings.ToLower(weather)
	switch {
	case strings.Contains(lowered, "snow"):
		return ConditionSnow
	case strings.Contains(lowered, "rain"), strings.Contains(lowered, "drizzle"):
		return ConditionRain
	case strings.Contains(lowered, "storm"):
		return ConditionStorm
	case strings.Contains(lowered, "cloud"):
		return ConditionCloud
	case strings.Contains(lowered, "sunny"), strings.Contains(lowered, "clear"):
		if temp, ok := ParseTemperature(weather); ok && temp > hotThreshold {
			return ConditionHot
		}
		return ConditionPleasant
	default:
		return ConditionDefault
	}
}

// ParseTemperature reads the leading integer of a "<int>°F, ..." string.
func ParseTemperature(weather string) (int, bool) {
	match := leadingTemperature.FindStringSubmatch(weather)
	if match == nil {
		return 0, false
	}
	value, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, false
	}
	return value, true
}

// IsOutdoor reports whether an event title suggests an outdoor activity.
func IsOutdoor(title string) bool {
	lowered := strings.ToLower(title)
	for _, keyword := range outdoorKeywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}

// Tags returns the clothing items for weather, most important first.
func Tags(weather string) []string {
	tags := branches[Classify(weather)].tags
	return append([]string(nil), tags...)
}

// Reason explains why the outfit fits the weather.
func Reason(weather string) string {
	return branches[Classify(weather)].reason
}

// Emoji returns the emoji pair for weather.
func Emoji(weather string) string {
	return branches[Classify(weather)].emoji
}

// Describe returns a one-line outfit description.
func Describe(weather string) string {
	return branches[Classify(weather)].description
}

// ForEvent returns event-specific advice. The outdoor flag only changes the
// text; the emoji always follows the weather branch.
func ForEvent(weather, eventTitle string) (string, string) {
	b := branches[Classify(weather)]
	if IsOutdoor(eventTitle) {
		return b.outdoor, b.emoji
	}
	return b.indoor, b.emoji
}

// Recommend bundles every output for weather.
func Recommend(weather string) Recommendation {
	condition := Classify(weather)
	b := branches[condition]
	return Recommendation{
		Weather:     weather,
		Condition:   condition,
		Description: b.description,
		Tags:        append([]string(nil), b.tags...),
		Emoji:       b.emoji,
		Reason:      b.reason,
	}
}

// AdviseEvent is ForEvent packaged for transport.
func AdviseEvent(weather, eventTitle string) EventAdvice {
	text, emoji := ForEvent(weather, eventTitle)
	return EventAdvice{
		Weather: weather,
		Outdoor: IsOutdoor(eventTitle),
		Text:    text,
		Emoji:   emoji,
	}
}
