package models

// Site describes a retailer the viewer can display products from.
type Site struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Domain         string `json:"domain"`
	URLPlaceholder string `json:"urlPlaceholder"`
	SampleURL      string `json:"sampleUrl"`
	Description    string `json:"description,omitempty"`
}
