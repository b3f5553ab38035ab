package model

// PageInfo is the pagination metadata of a catalog page.
// Next and Prev are nil at the collection boundaries.
type PageInfo struct {
	Count int     `json:"count"`
	Pages int     `json:"pages"`
	Next  *string `json:"next"`
	Prev  *string `json:"prev"`
}

// HasNext reports whether a following page exists.
func (i PageInfo) HasNext() bool {
	return i.Next != nil
}

// HasPrev reports whether a preceding page exists.
func (i PageInfo) HasPrev() bool {
	return i.Prev != nil
}

// CharacterPage is one page of characters plus its pagination metadata.
type CharacterPage struct {
	Info    PageInfo    `json:"info"`
	Results []Character `json:"results"`
}
