package model

import "time"

// Episode is a secondary catalog record referenced by characters.
type Episode struct {
	ID         int       `json:"id"`
	Name       string    `json:"name"`
	AirDate    string    `json:"air_date"`
	Code       string    `json:"episode"` // season/episode code, e.g. "S01E01"
	Characters []string  `json:"characters,omitempty"`
	URL        string    `json:"url"`
	Created    time.Time `json:"created"`
}
