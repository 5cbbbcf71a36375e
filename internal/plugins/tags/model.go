// Package tags manages note labels. Tags live in two places at once: as
// first-class rows in the tags table and as a comma-separated string stored
// on each note. The string is what clients write; the table and note_tags
// join are kept in sync from it on every note save and are the queryable
// representation. Tag listings merge both sources so labels that only ever
// appeared in note strings still show up.
package tags

import "strings"

// DefaultColor is assigned to tags created without an explicit color and
// to tag names that exist only inside note strings.
const DefaultColor = "#3B82F6"

// Tag is a first-class tag row.
type Tag struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// ListedTag is one entry of the merged tag listing. ID is nil for names
// that appear only in note tag strings and have no table row.
type ListedTag struct {
	ID    *int64 `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Count int    `json:"count"`
}

// CreateTagRequest holds the data submitted when creating a tag.
type CreateTagRequest struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// ParseList splits a note's comma-separated tag string into clean names:
// trimmed, empties dropped, duplicates removed, original order kept.
func ParseList(s string) []string {
	if s == "" {
		return nil
	}
	seen := make(map[string]bool)
	var names []string
	for _, part := range strings.Split(s, ",") {
		name := strings.TrimSpace(part)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}
