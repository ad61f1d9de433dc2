package models

import "time"

// Upload is one gallery record as returned by GET /images.
type Upload struct {
	User       string    `json:"user"`
	Filename   string    `json:"filename"`
	Title      string    `json:"title"`
	Artist     string    `json:"artist"`
	URL        string    `json:"url"`
	UploadDate time.Time `json:"uploadDate"`
}

// NewUpload describes an image to be sent to the server.
type NewUpload struct {
	Path   string
	Title  string
	Artist string
	Link   string
}
