package post

import (
	"net/url"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	"research-blog-backend/internal/shared/apperror"
	"research-blog-backend/internal/shared/query"
)

const MaxTitleLength = 300

// CreatePostRequest - POST /api/post
// Owner may be omitted when posts are owned by users; the caller becomes the owner.
type CreatePostRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Topics      []string   `json:"topics"`
	CoverImage  *string    `json:"coverImage,omitempty"`
	BodyImages  []string   `json:"bodyImages,omitempty"`
	Owner       *uuid.UUID `json:"owner,omitempty"`
}

func (r CreatePostRequest) Validate() error {
	return wrap(validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required.Error("Please add a title"), validation.Length(1, MaxTitleLength)),
		validation.Field(&r.Description, validation.Required.Error("Please add a description")),
		validation.Field(&r.Topics, validation.By(requireTopics)),
		validation.Field(&r.CoverImage, is.URL),
		validation.Field(&r.BodyImages, validation.Each(validation.Required, is.URL)),
	))
}

// ToEntity copies the request fields; identifiers and owner are set by the service.
func (r CreatePostRequest) ToEntity() *Post {
	return &Post{
		Title:       strings.TrimSpace(r.Title),
		Description: r.Description,
		Topics:      cleanTopics(r.Topics),
		CoverImage:  r.CoverImage,
		BodyImages:  r.BodyImages,
	}
}

// UpdatePostRequest - PUT /api/post/:id
// The owner of a post cannot be changed.
type UpdatePostRequest struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Topics      *[]string `json:"topics,omitempty"`
	CoverImage  *string   `json:"coverImage,omitempty"`
	BodyImages  *[]string `json:"bodyImages,omitempty"`
}

func (r UpdatePostRequest) Validate() error {
	if r.Topics != nil {
		if err := requireTopics(*r.Topics); err != nil {
			return apperror.Validation(err.Error())
		}
	}
	return wrap(validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.NilOrNotEmpty.Error("Please add a title"), validation.Length(1, MaxTitleLength)),
		validation.Field(&r.Description, validation.NilOrNotEmpty.Error("Please add a description")),
		validation.Field(&r.CoverImage, is.URL),
		validation.Field(&r.BodyImages, validation.By(func(interface{}) error {
			if r.BodyImages == nil {
				return nil
			}
			return validation.Validate(*r.BodyImages, validation.Each(validation.Required, is.URL))
		})),
	))
}

func (r UpdatePostRequest) ApplyTo(p *Post) {
	if r.Title != nil {
		p.Title = strings.TrimSpace(*r.Title)
	}
	if r.Description != nil {
		p.Description = *r.Description
	}
	if r.Topics != nil {
		p.Topics = cleanTopics(*r.Topics)
	}
	if r.CoverImage != nil {
		p.CoverImage = r.CoverImage
	}
	if r.BodyImages != nil {
		p.BodyImages = *r.BodyImages
	}
}

type SortField string

const (
	SortByTitle     SortField = "title"
	SortByCreatedAt SortField = "created_at"
	SortByUpdatedAt SortField = "updated_at"
)

var sortFields = map[string]SortField{
	"title":     SortByTitle,
	"createdAt": SortByCreatedAt,
	"updatedAt": SortByUpdatedAt,
}

var DefaultSort = query.Sort[SortField]{Field: SortByCreatedAt, Direction: query.Ascending}

// ListParams - GET /api/post?sort=title,desc&page=1&limit=10&topic=ml&owner=<uuid>&search=
type ListParams struct {
	Sort   query.Sort[SortField]
	Page   query.Page
	Topic  string
	Owner  *uuid.UUID
	Search string

	// OwnerKind is set by the service, never from the query string.
	OwnerKind OwnerKind
}

// ParseListParams never fails on sort or pagination input. A malformed owner
// id is rejected instead of being dropped, since dropping it would widen the result.
func ParseListParams(v url.Values) (ListParams, error) {
	params := ListParams{
		Sort:   query.ParseSort(v.Get("sort"), sortFields, DefaultSort),
		Page:   query.ParsePage(v.Get("page"), v.Get("limit")),
		Topic:  strings.TrimSpace(v.Get("topic")),
		Search: v.Get("search"),
	}

	if raw := strings.TrimSpace(v.Get("owner")); raw != "" {
		owner, err := uuid.Parse(raw)
		if err != nil {
			return ListParams{}, ErrInvalidOwnerFilter
		}
		params.Owner = &owner
	}
	return params, nil
}

// requireTopics rejects a topic list that is empty once blank entries are dropped.
func requireTopics(value interface{}) error {
	topics, _ := value.([]string)
	if len(cleanTopics(topics)) == 0 {
		return validation.NewError("validation_topics_required", "Please add topics")
	}
	return nil
}

func cleanTopics(topics []string) []string {
	out := make([]string, 0, len(topics))
	for _, t := range topics {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func wrap(err error) error {
	if err == nil {
		return nil
	}
	return &apperror.Error{Kind: apperror.KindValidation, Message: err.Error(), Err: err}
}
