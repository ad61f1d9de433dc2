package models

import (
	"encoding/json"
	"time"
)

// UploadDateLayout is ISO-8601 in UTC with millisecond precision.
const UploadDateLayout = "2006-01-02T15:04:05.000Z07:00"

// Upload is the metadata of one stored image, tagged with its owner.
// JSON field names are part of the public API and of the data flat file.
type Upload struct {
	// Owner is the username of the uploader.
	Owner string `json:"user"`
	// Filename is the generated, unique key of the stored image.
	Filename string `json:"filename"`
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	// Link is an external URL supplied by the user (e.g. a streaming page).
	Link string `json:"url"`
	// UploadDate is set by the server.
	UploadDate time.Time `json:"uploadDate"`
}

type uploadJSON Upload

// MarshalJSON writes UploadDate as UTC with exactly three fractional digits.
func (u Upload) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		uploadJSON
		UploadDate string `json:"uploadDate"`
	}{
		uploadJSON: uploadJSON(u),
		UploadDate: u.UploadDate.UTC().Format(UploadDateLayout),
	})
}
