package author

import (
	"time"

	"github.com/google/uuid"
)

// Author is a research profile that owns posts.
type Author struct {
	ID       uuid.UUID `json:"id"`
	UniqueID uuid.UUID `json:"uniqueId"`

	Name        string   `json:"name"`
	Topic       []string `json:"topic"`
	Description string   `json:"description"`

	// Optional links
	Image     *string `json:"image,omitempty"`
	Facebook  *string `json:"facebook,omitempty"`
	Twitter   *string `json:"twitter,omitempty"`
	Instagram *string `json:"instagram,omitempty"`

	// Derived at query time, never stored.
	PostCount *int64 `json:"postCount,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
