package blossom

import (
	"time"
)

// Transcription is a single transcription record from the Blossom API.
type Transcription struct {
	ID         int       `json:"id"`
	Submission string    `json:"submission"` // API URL of the submission
	Author     string    `json:"author"`     // API URL of the volunteer
	CreateTime time.Time `json:"create_time"`
	OriginalID string    `json:"original_id"`
	Source     string    `json:"source"`
	URL        string    `json:"url"` // link to the posted transcription
	Text       string    `json:"text"`
}

// TranscriptionPage is one page of transcription search results.
type TranscriptionPage struct {
	Count    int             `json:"count"`
	Next     *string         `json:"next"`
	Previous *string         `json:"previous"`
	Results  []Transcription `json:"results"`
}

// Volunteer is a transcription volunteer.
type Volunteer struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Gamma    int    `json:"gamma"`
}

// volunteerPage is the paginated volunteer list response.
type volunteerPage struct {
	Count   int         `json:"count"`
	Results []Volunteer `json:"results"`
}
