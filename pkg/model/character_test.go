package model

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestEpisodeIDs(t *testing.T) {
	tests := []struct {
		name string
		refs []string
		want []int
	}{
		{"empty", nil, []int{}},
		{"mixed", []string{"https://x/episode/1", "https://x/episode/28", "not-a-url/"}, []int{1, 28}},
		{"bare id", []string{"7"}, []int{7}},
		{"zero dropped", []string{"https://x/episode/0"}, []int{}},
		{"negative dropped", []string{"https://x/episode/-3"}, []int{}},
		{"non numeric", []string{"https://x/episode/abc", "https://x/episode/12"}, []int{12}},
		{"order kept", []string{"https://x/episode/30", "https://x/episode/2"}, []int{30, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EpisodeIDs(tt.refs)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("EpisodeIDs(%v) = %v, want %v", tt.refs, got, tt.want)
			}
		})
	}
}

func TestCharacter_UnmarshalUpstream(t *testing.T) {
	body := `{
		"id": 1,
		"name": "Rick Sanchez",
		"status": "Alive",
		"species": "Human",
		"type": "",
		"gender": "Male",
		"origin": {"name": "Earth (C-137)", "url": "https://rickandmortyapi.com/api/location/1"},
		"location": {"name": "Citadel of Ricks", "url": "https://rickandmortyapi.com/api/location/3"},
		"image": "https://rickandmortyapi.com/api/character/avatar/1.jpeg",
		"episode": ["https://rickandmortyapi.com/api/episode/1", "https://rickandmortyapi.com/api/episode/2"],
		"url": "https://rickandmortyapi.com/api/character/1",
		"created": "2017-11-04T18:48:46.250Z"
	}`

	var c Character
	if err := json.Unmarshal([]byte(body), &c); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if c.Status != StatusAlive {
		t.Errorf("Status = %q, want Alive", c.Status)
	}
	if c.Origin.Name != "Earth (C-137)" {
		t.Errorf("Origin.Name = %q", c.Origin.Name)
	}
	if c.Created.Year() != 2017 {
		t.Errorf("Created = %v, want 2017", c.Created)
	}
	if got := c.EpisodeIDs(); !reflect.DeepEqual(got, []int{1, 2}) {
		t.Errorf("EpisodeIDs() = %v, want [1 2]", got)
	}
}

func TestCharacterStatus_IsKnown(t *testing.T) {
	tests := []struct {
		status CharacterStatus
		known  bool
	}{
		{StatusAlive, true},
		{StatusDead, true},
		{StatusUnknown, true},
		{"Unknown", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := tt.status.IsKnown(); got != tt.known {
			t.Errorf("CharacterStatus(%q).IsKnown() = %v, want %v", tt.status, got, tt.known)
		}
	}
}
