package model

import "time"

// GalleryImage is the database record for one uploaded file. The file
// itself lives on disk under the configured upload directory.
type GalleryImage struct {
	ID         string    `json:"id" bson:"id"`
	Filename   string    `json:"filename" bson:"filename"`
	URL        string    `json:"url" bson:"url"`
	UploadedAt time.Time `json:"uploaded_at" bson:"uploaded_at"`
}
