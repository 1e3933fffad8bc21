package models

// ScrapeRequest is the body sent to the scraping backend.
type ScrapeRequest struct {
	URL  string `json:"url"`
	Site string `json:"-"`
}

// ScrapeResponse is a scrape result after normalization.
type ScrapeResponse struct {
	Success   bool     `json:"success"`
	Data      *Product `json:"data,omitempty"`
	Timestamp string   `json:"timestamp"`
	Message   string   `json:"message,omitempty"`
}

// StatusResponse is the backend health payload.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
