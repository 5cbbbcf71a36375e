// Package folders manages the folder tree notes are filed into. Folders
// nest arbitrarily deep through parent_id; deleting a folder removes its
// whole subtree (database cascade) and unfiles any notes that lived in it.
package folders

import "time"

// Folder is a named, optionally nested container for notes.
type Folder struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	ParentID  *int64    `json:"parent_id"`
	Icon      *string   `json:"icon"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FolderRequest holds the data submitted when creating or updating a folder.
type FolderRequest struct {
	Name     string  `json:"name"`
	ParentID *int64  `json:"parent_id,omitempty"`
	Icon     *string `json:"icon,omitempty"`
}
