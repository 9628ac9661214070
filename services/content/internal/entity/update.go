package entity

import "time"

type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
)

func (t MediaType) Valid() bool {
	return t == MediaTypeImage || t == MediaTypeVideo
}

// Update is a feed post. MediaPath is the storage key behind MediaURL and is
// what gets deleted when the media is replaced or the post removed.
type Update struct {
	ID        string    `json:"id"`
	AdminID   string    `json:"admin_id"`
	Content   string    `json:"content"`
	MediaURL  string    `json:"media_url,omitempty"`
	MediaPath string    `json:"-"`
	MediaType MediaType `json:"media_type,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *Update) HasMedia() bool {
	return u.MediaURL != ""
}
