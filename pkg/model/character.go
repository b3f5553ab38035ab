package model

import (
	"strconv"
	"strings"
	"time"
)

// CharacterStatus is the life status reported by the catalog.
type CharacterStatus string

const (
	StatusAlive   CharacterStatus = "Alive"
	StatusDead    CharacterStatus = "Dead"
	StatusUnknown CharacterStatus = "unknown"
)

// String returns the string representation of the status.
func (s CharacterStatus) String() string {
	return string(s)
}

// IsKnown returns true if s is one of the statuses the catalog defines.
func (s CharacterStatus) IsKnown() bool {
	switch s {
	case StatusAlive, StatusDead, StatusUnknown:
		return true
	}
	return false
}

// LocationRef is a named link to a location record.
type LocationRef struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Character is a primary catalog record.
type Character struct {
	ID       int             `json:"id"`
	Name     string          `json:"name"`
	Status   CharacterStatus `json:"status"`
	Species  string          `json:"species"`
	Type     string          `json:"type"` // free-text subtype, often empty
	Gender   string          `json:"gender"`
	Origin   LocationRef     `json:"origin"`
	Location LocationRef     `json:"location"`
	Image    string          `json:"image"`
	Episode  []string        `json:"episode"` // episode reference URLs, in air order
	URL      string          `json:"url"`
	Created  time.Time       `json:"created"`
}

// EpisodeIDs returns the identifiers referenced by the character's episode list.
func (c *Character) EpisodeIDs() []int {
	return EpisodeIDs(c.Episode)
}

// EpisodeIDs extracts the trailing path segment of every reference and parses it
// as an integer. References whose last segment is not a positive integer are dropped.
func EpisodeIDs(refs []string) []int {
	ids := make([]int, 0, len(refs))
	for _, ref := range refs {
		seg := ref
		if i := strings.LastIndex(ref, "/"); i >= 0 {
			seg = ref[i+1:]
		}
		id, err := strconv.Atoi(seg)
		if err != nil || id <= 0 {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
