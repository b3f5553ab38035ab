package ui

import (
	"bytes"
	"html/template"

	"github.com/me/rickdex/pkg/model"
)

// Column describes one column of the character table.
type Column struct {
	Key    string
	Header string
	cell   *template.Template
}

// Render renders the column's cell for a character.
func (c Column) Render(ch model.Character) (template.HTML, error) {
	var buf bytes.Buffer
	if err := c.cell.Execute(&buf, ch); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

func newColumn(key, header, cell string) Column {
	return Column{
		Key:    key,
		Header: header,
		cell:   template.Must(template.New(key).Funcs(templateFuncs).Parse(cell)),
	}
}

// CharacterColumns is the fixed column set of the character table.
var CharacterColumns = []Column{
	newColumn("image", "Avatar",
		`<img src="{{.Image}}" alt="{{.Name}}" class="w-16 h-16 rounded-full object-cover ring-2 ring-indigo-200">`),
	newColumn("name", "Name",
		`<span class="font-semibold text-gray-900">{{.Name}}</span>`),
	newColumn("status", "Status",
		`<span class="inline-flex items-center px-2 py-0.5 rounded text-xs font-medium {{statusColor .Status}}">{{.Status}}</span>`),
	newColumn("species", "Species",
		`<span class="text-gray-500">{{.Species}}</span>`),
	newColumn("location", "Location",
		`<span class="text-gray-500">{{.Location.Name}}</span>`),
}

// tableRow is one rendered character row.
type tableRow struct {
	ID    int
	Path  string
	Cells []template.HTML
}

func buildRows(chars []model.Character, columns []Column) ([]tableRow, error) {
	rows := make([]tableRow, 0, len(chars))
	for _, ch := range chars {
		row := tableRow{ID: ch.ID, Path: characterPath(ch.ID), Cells: make([]template.HTML, 0, len(columns))}
		for _, col := range columns {
			cell, err := col.Render(ch)
			if err != nil {
				return nil, err
			}
			row.Cells = append(row.Cells, cell)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
