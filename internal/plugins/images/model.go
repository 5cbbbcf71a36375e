package images

import "time"

// Image is a stored binary blob plus its metadata. Bodies live in the
// database so the whole notebook stays a single file on disk.
type Image struct {
	ID        int64     `json:"id"`
	Filename  *string   `json:"filename"`
	Mime      string    `json:"mime"`
	Data      []byte    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// UploadRequest is the JSON upload shape: base64 body plus content type.
type UploadRequest struct {
	Filename string `json:"filename"`
	Mime     string `json:"mime"`
	Data     string `json:"dataBase64"`
}

// UploadResponse is returned for both JSON and multipart uploads. URL
// points at the retrieval endpoint so the client can embed it directly.
type UploadResponse struct {
	ID     int64  `json:"id"`
	URL    string `json:"url"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}
