package author

import (
	"net/url"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"research-blog-backend/internal/shared/apperror"
	"research-blog-backend/internal/shared/query"
)

const (
	MaxNameLength        = 255
	MaxDescriptionLength = 5000
)

// CreateAuthorRequest - POST /api/author
type CreateAuthorRequest struct {
	Name        string   `json:"name"`
	Topic       []string `json:"topic"`
	Description string   `json:"description"`
	Image       *string  `json:"image,omitempty"`
	Facebook    *string  `json:"facebook,omitempty"`
	Twitter     *string  `json:"twitter,omitempty"`
	Instagram   *string  `json:"instagram,omitempty"`
}

func (r CreateAuthorRequest) Validate() error {
	return wrap(validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required.Error("Please add a name"), validation.Length(1, MaxNameLength)),
		validation.Field(&r.Topic,
			validation.Required.Error("Please add topics"),
			validation.By(requireTopics),
			validation.Each(validation.Required.Error("Topics cannot be empty")),
		),
		validation.Field(&r.Description,
			validation.Required.Error("Please add a description"),
			validation.Length(1, MaxDescriptionLength),
		),
		validation.Field(&r.Image, is.URL),
		validation.Field(&r.Facebook, is.URL),
		validation.Field(&r.Twitter, is.URL),
		validation.Field(&r.Instagram, is.URL),
	))
}

// ToEntity builds a new Author. Ids are assigned by the service.
func (r CreateAuthorRequest) ToEntity() *Author {
	return &Author{
		Name:        strings.TrimSpace(r.Name),
		Topic:       cleanTopics(r.Topic),
		Description: r.Description,
		Image:       r.Image,
		Facebook:    r.Facebook,
		Twitter:     r.Twitter,
		Instagram:   r.Instagram,
	}
}

// UpdateAuthorRequest - PUT /api/author/:id
// All fields optional for partial updates. A present field is validated
// with the same rules as on create.
type UpdateAuthorRequest struct {
	Name        *string   `json:"name,omitempty"`
	Topic       *[]string `json:"topic,omitempty"`
	Description *string   `json:"description,omitempty"`
	Image       *string   `json:"image,omitempty"`
	Facebook    *string   `json:"facebook,omitempty"`
	Twitter     *string   `json:"twitter,omitempty"`
	Instagram   *string   `json:"instagram,omitempty"`
}

func (r UpdateAuthorRequest) Validate() error {
	if r.Topic != nil && len(cleanTopics(*r.Topic)) == 0 {
		return apperror.Validation("Please add topics")
	}
	return wrap(validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty.Error("Please add a name"), validation.Length(1, MaxNameLength)),
		validation.Field(&r.Topic, validation.By(func(value interface{}) error {
			if r.Topic == nil {
				return nil
			}
			return validation.Validate(*r.Topic, validation.Each(validation.Required.Error("Topics cannot be empty")))
		})),
		validation.Field(&r.Description,
			validation.NilOrNotEmpty.Error("Please add a description"),
			validation.Length(1, MaxDescriptionLength),
		),
		validation.Field(&r.Image, is.URL),
		validation.Field(&r.Facebook, is.URL),
		validation.Field(&r.Twitter, is.URL),
		validation.Field(&r.Instagram, is.URL),
	))
}

// ApplyTo applies the non-nil fields onto a.
func (r UpdateAuthorRequest) ApplyTo(a *Author) {
	if r.Name != nil {
		a.Name = strings.TrimSpace(*r.Name)
	}
	if r.Topic != nil {
		a.Topic = cleanTopics(*r.Topic)
	}
	if r.Description != nil {
		a.Description = *r.Description
	}
	if r.Image != nil {
		a.Image = r.Image
	}
	if r.Facebook != nil {
		a.Facebook = r.Facebook
	}
	if r.Twitter != nil {
		a.Twitter = r.Twitter
	}
	if r.Instagram != nil {
		a.Instagram = r.Instagram
	}
}

// SortField is a sortable authors column.
type SortField string

const (
	SortByName      SortField = "name"
	SortByCreatedAt SortField = "created_at"
	SortByUpdatedAt SortField = "updated_at"
)

var sortFields = map[string]SortField{
	"name":      SortByName,
	"createdAt": SortByCreatedAt,
	"updatedAt": SortByUpdatedAt,
}

var DefaultSort = query.Sort[SortField]{Field: SortByCreatedAt, Direction: query.Ascending}

// ListParams - GET /api/author?sort=name,desc&page=2&limit=10&topic=ml&search=ann
type ListParams struct {
	Sort   query.Sort[SortField]
	Page   query.Page
	Topic  string
	Search string
}

func ParseListParams(v url.Values) ListParams {
	return ListParams{
		Sort:   query.ParseSort(v.Get("sort"), sortFields, DefaultSort),
		Page:   query.ParsePage(v.Get("page"), v.Get("limit")),
		Topic:  strings.TrimSpace(v.Get("topic")),
		Search: v.Get("search"),
	}
}

// requireTopics fails when only blank topics were given.
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
