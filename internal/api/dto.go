package api

import "github.com/starford/pistlar/internal/content"

// CreatePostRequest is the request body for creating a post. Slug and Date
// are derived from Title and today's date when omitted.
type CreatePostRequest struct {
	Title string `json:"title"`
	Slug  string `json:"slug,omitempty"`
	Date  string `json:"date,omitempty"`
	Image string `json:"image,omitempty"`
	Body  string `json:"body"`
}

// UpdatePostRequest is the request body for updating a post. Content is the
// raw file content, front-matter included.
type UpdatePostRequest struct {
	Content string `json:"content"`
}

// PostListResponse wraps the full post collection.
type PostListResponse struct {
	Posts []*content.Post `json:"posts"`
	Total int             `json:"total"`
}

// RawPostResponse returns the unparsed file for editing, with the checksum
// to send back as If-Match.
type RawPostResponse struct {
	Path     string `json:"path"`
	Content  string `json:"content"`
	Checksum string `json:"checksum"`
}

// AssetUploadResponse is returned after a successful asset upload.
type AssetUploadResponse struct {
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	URL      string `json:"url"`
}
