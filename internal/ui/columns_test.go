package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/me/rickdex/pkg/model"
)

func TestCharacterColumns(t *testing.T) {
	var keys []string
	for _, c := range CharacterColumns {
		keys = append(keys, c.Key)
	}
	assert.Equal(t, []string{"image", "name", "status", "species", "location"}, keys)
}

func TestBuildRows(t *testing.T) {
	chars := []model.Character{
		{ID: 1, Name: "Rick Sanchez", Status: model.StatusAlive, Species: "Human", Location: model.LocationRef{Name: "Citadel of Ricks"}},
		{ID: 8, Name: "Adjudicator Rick", Status: model.StatusDead, Species: "Human"},
		{ID: 9, Name: "<script>", Status: model.StatusUnknown},
	}

	rows, err := buildRows(chars, CharacterColumns)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "/character/1", rows[0].Path)
	require.Len(t, rows[0].Cells, len(CharacterColumns))
	// The row carries the navigation; a link in a cell would navigate twice.
	assert.NotContains(t, string(rows[0].Cells[1]), "<a ")
	assert.Contains(t, string(rows[0].Cells[1]), "Rick Sanchez")
	assert.Contains(t, string(rows[0].Cells[2]), "bg-green-100")
	assert.Contains(t, string(rows[0].Cells[4]), "Citadel of Ricks")
	assert.Contains(t, string(rows[1].Cells[2]), "bg-red-100")
	assert.Contains(t, string(rows[2].Cells[2]), "bg-gray-100")
	assert.NotContains(t, string(rows[2].Cells[1]), "<script>")
}
