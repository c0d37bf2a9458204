package post

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// OwnerKind names the entity that owns posts in a deployment.
type OwnerKind string

const (
	OwnerUser   OwnerKind = "user"
	OwnerAuthor OwnerKind = "author"
	OwnerTeam   OwnerKind = "team"
)

func (k OwnerKind) IsValid() bool {
	switch k {
	case OwnerUser, OwnerAuthor, OwnerTeam:
		return true
	}
	return false
}

// ParseOwnerKind accepts user, author or team in any case.
func ParseOwnerKind(s string) (OwnerKind, error) {
	k := OwnerKind(strings.ToLower(strings.TrimSpace(s)))
	if !k.IsValid() {
		return "", fmt.Errorf("invalid post owner kind %q (want user, author or team)", s)
	}
	return k, nil
}

// Post is a publication owned by exactly one user, author or team.
type Post struct {
	ID          uuid.UUID `json:"id"`
	UniqueID    uuid.UUID `json:"uniqueId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Topics      []string  `json:"topics"`
	CoverImage  *string   `json:"coverImage,omitempty"`
	BodyImages  []string  `json:"bodyImages"`

	OwnerKind OwnerKind     `json:"ownerKind"`
	OwnerID   uuid.UUID     `json:"owner"`
	Owner     *OwnerSummary `json:"ownerDetails,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OwnerSummary is the owner embedded in a single-post response.
// Nil when the owner row no longer exists.
type OwnerSummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// ImagePrefix is the storage prefix for the images of one post.
func ImagePrefix(id uuid.UUID) string {
	return fmt.Sprintf("posts/%s", id)
}
