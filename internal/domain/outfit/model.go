package outfit

import "time"

// Outfit is a saved outfit record. Records are never mutated in place.
type Outfit struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ImageName   string    `json:"imageName"`
	Location    string    `json:"location"`
	CreatedAt   time.Time `json:"createdAt"`
}

// SaveRequest is the payload for saving an outfit.
type SaveRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageName   string `json:"imageName"`
	Location    string `json:"location"`
	// Force saves even when the outfit duplicates an existing one.
	Force bool `json:"force"`
}

// Draft converts the request into an unsaved Outfit.
func (r SaveRequest) Draft() Outfit {
	return Outfit{
		Name:        r.Name,
		Description: r.Description,
		ImageName:   r.ImageName,
		Location:    r.Location,
	}
}
