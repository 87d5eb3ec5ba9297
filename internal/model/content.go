package model

import "time"

// Content is a single renderable asset; campaign entries point at these.
type Content struct {
	ID        int       `db:"id"           json:"id"`
	Name      string    `db:"name"         json:"name"`
	Type      string    `db:"type"         json:"type"`
	URL       string    `db:"url"          json:"url"`
	CreatedBy int       `db:"created_by"   json:"created_by"`
	CreatedAt time.Time `db:"created_at"   json:"created_at"`
	UpdatedAt time.Time `db:"updated_at"   json:"updated_at"`
}

// Layout and Playlist are opaque fallback content entities. The resolver never
// inspects their internals; it only hands back an identifier and a name.

type Layout struct {
	ID        int       `db:"id"         json:"id"`
	Name      string    `db:"name"       json:"name"`
	CreatedBy int       `db:"created_by" json:"created_by"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type Playlist struct {
	ID          int       `db:"id"           json:"id"`
	Name        string    `db:"name"         json:"name"`
	Description *string   `db:"description"  json:"description,omitempty"`
	CreatedBy   int       `db:"created_by"   json:"created_by"`
	CreatedAt   time.Time `db:"created_at"   json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"   json:"updated_at"`
}
