package recommend

// Condition is the weather branch selected from a weather string.
type Condition string

const (
	ConditionSnow     Condition = "snow"
	ConditionRain     Condition = "rain"
	ConditionStorm    Condition = "storm"
	ConditionCloud    Condition = "cloud"
	ConditionHot      Condition = "hot"
	ConditionPleasant Condition = "pleasant"
	ConditionDefault  Condition = "default"
)

// Request is the payload accepted by the recommendation endpoint.
type Request struct {
	Weather    string `json:"weather"`
	EventTitle string `json:"eventTitle,omitempty"`
}

// Recommendation is the full outfit suggestion for a weather string.
type Recommendation struct {
	Weather     string    `json:"weather"`
	Condition   Condition `json:"condition"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags"`
	Emoji       string    `json:"emoji"`
	Reason      string    `json:"reason"`
}

// EventAdvice is the text and emoji shown next to a calendar event.
type EventAdvice struct {
	Weather string `json:"weather"`
	Outdoor bool   `json:"outdoor"`
	Text    string `json:"text"`
	Emoji   string `json:"emoji"`
}
