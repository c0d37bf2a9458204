package team

import (
	"net/url"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"research-blog-backend/internal/shared/apperror"
	"research-blog-backend/internal/shared/query"
)

// CreateTeamRequest - POST /api/team
type CreateTeamRequest struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Image         *string `json:"image,omitempty"`
	GoogleScholar *string `json:"googleScholar,omitempty"`
	LinkedIn      *string `json:"linkedIn,omitempty"`
	ORCID         *string `json:"ORCID,omitempty"`
}

func (r CreateTeamRequest) Validate() error {
	return wrap(validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required.Error("Please add a name"), validation.Length(1, 255)),
		validation.Field(&r.Description, validation.Required.Error("Please add a description")),
		validation.Field(&r.Image, is.URL),
		validation.Field(&r.GoogleScholar, is.URL),
		validation.Field(&r.LinkedIn, is.URL),
	))
}

func (r CreateTeamRequest) ToEntity() *Team {
	return &Team{
		Name:          strings.TrimSpace(r.Name),
		Description:   r.Description,
		Image:         r.Image,
		GoogleScholar: r.GoogleScholar,
		LinkedIn:      r.LinkedIn,
		ORCID:         r.ORCID,
	}
}

// UpdateTeamRequest - PUT /api/team/:id
type UpdateTeamRequest struct {
	Name          *string `json:"name,omitempty"`
	Description   *string `json:"description,omitempty"`
	Image         *string `json:"image,omitempty"`
	GoogleScholar *string `json:"googleScholar,omitempty"`
	LinkedIn      *string `json:"linkedIn,omitempty"`
	ORCID         *string `json:"ORCID,omitempty"`
}

func (r UpdateTeamRequest) Validate() error {
	return wrap(validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty.Error("Please add a name"), validation.Length(1, 255)),
		validation.Field(&r.Description, validation.NilOrNotEmpty.Error("Please add a description")),
		validation.Field(&r.Image, is.URL),
		validation.Field(&r.GoogleScholar, is.URL),
		validation.Field(&r.LinkedIn, is.URL),
	))
}

func (r UpdateTeamRequest) ApplyTo(t *Team) {
	if r.Name != nil {
		t.Name = strings.TrimSpace(*r.Name)
	}
	if r.Description != nil {
		t.Description = *r.Description
	}
	if r.Image != nil {
		t.Image = r.Image
	}
	if r.GoogleScholar != nil {
		t.GoogleScholar = r.GoogleScholar
	}
	if r.LinkedIn != nil {
		t.LinkedIn = r.LinkedIn
	}
	if r.ORCID != nil {
		t.ORCID = r.ORCID
	}
}

type SortField string

const (
	SortByName      SortField = "name"
	SortByCreatedAt SortField = "created_at"
)

var sortFields = map[string]SortField{
	"name":      SortByName,
	"createdAt": SortByCreatedAt,
}

var DefaultSort = query.Sort[SortField]{Field: SortByCreatedAt, Direction: query.Ascending}

type ListParams struct {
	Sort   query.Sort[SortField]
	Page   query.Page
	Search string
}

func ParseListParams(v url.Values) ListParams {
	return ListParams{
		Sort:   query.ParseSort(v.Get("sort"), sortFields, DefaultSort),
		Page:   query.ParsePage(v.Get("page"), v.Get("limit")),
		Search: v.Get("search"),
	}
}

func wrap(err error) error {
	if err == nil {
		return nil
	}
	return &apperror.Error{Kind: apperror.KindValidation, Message: err.Error(), Err: err}
}
