package team

import (
	"time"

	"github.com/google/uuid"
)

// Team is a group profile that owns posts.
type Team struct {
	ID          uuid.UUID `json:"id"`
	UniqueID    uuid.UUID `json:"uniqueId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`

	Image         *string `json:"image,omitempty"`
	GoogleScholar *string `json:"googleScholar,omitempty"`
	LinkedIn      *string `json:"linkedIn,omitempty"`
	ORCID         *string `json:"ORCID,omitempty"`

	PostCount *int64 `json:"postCount,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
