package user

import (
	"net/url"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"research-blog-backend/internal/shared/apperror"
	"research-blog-backend/internal/shared/query"
)

// emailPattern is the address format accepted at registration.
var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

const (
	MinPasswordLength = 6
	// bcrypt ignores input past 72 bytes
	MaxPasswordLength = 72
)

// ========================================
// AUTH DTOs
// ========================================

// RegisterRequest - POST /api/auth/register
type RegisterRequest struct {
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Password      string  `json:"password"`
	Image         *string `json:"image,omitempty"`
	Description   *string `json:"description,omitempty"`
	GoogleScholar *string `json:"googleScholar,omitempty"`
	LinkedIn      *string `json:"linkedIn,omitempty"`
	ORCID         *string `json:"ORCID,omitempty"`
}

func (r RegisterRequest) Validate() error {
	return validationError(validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("Please add a name"),
			validation.Length(1, 100),
		),
		validation.Field(&r.Email,
			validation.Required.Error("Please add an email"),
			validation.Match(emailPattern).Error("Please add a valid email"),
		),
		validation.Field(&r.Password,
			validation.Required.Error("Please add a password"),
			validation.Length(MinPasswordLength, MaxPasswordLength).Error("Password must be 6-72 characters"),
		),
		validation.Field(&r.Image, validation.NilOrNotEmpty, is.URL),
		validation.Field(&r.GoogleScholar, validation.NilOrNotEmpty, is.URL),
		validation.Field(&r.LinkedIn, validation.NilOrNotEmpty, is.URL),
	))
}

// LoginRequest - POST /api/auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" || r.Password == "" {
		return ErrMissingCredentials
	}
	return nil
}

// ========================================
// ADMIN DTOs
// ========================================

// UpdateUserRequest - PUT /api/auth/user/:id
// Nil fields are left untouched. The password is re-hashed only when present.
type UpdateUserRequest struct {
	Name          *string `json:"name,omitempty"`
	Email         *string `json:"email,omitempty"`
	Role          *Role   `json:"role,omitempty"`
	Password      *string `json:"password,omitempty"`
	Image         *string `json:"image,omitempty"`
	Description   *string `json:"description,omitempty"`
	GoogleScholar *string `json:"googleScholar,omitempty"`
	LinkedIn      *string `json:"linkedIn,omitempty"`
	ORCID         *string `json:"ORCID,omitempty"`
}

func (r UpdateUserRequest) Validate() error {
	if r.Role != nil && !r.Role.IsValid() {
		return ErrInvalidRole
	}
	return validationError(validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty.Error("Name cannot be empty"), validation.Length(1, 100)),
		validation.Field(&r.Email,
			validation.NilOrNotEmpty.Error("Email cannot be empty"),
			validation.Match(emailPattern).Error("Please add a valid email"),
		),
		validation.Field(&r.Password,
			validation.NilOrNotEmpty.Error("Password cannot be empty"),
			validation.Length(MinPasswordLength, MaxPasswordLength).Error("Password must be 6-72 characters"),
		),
		validation.Field(&r.Image, is.URL),
		validation.Field(&r.GoogleScholar, is.URL),
		validation.Field(&r.LinkedIn, is.URL),
	))
}

// ApplyTo copies the non-nil fields onto u. The password is handled by the service.
func (r UpdateUserRequest) ApplyTo(u *User) {
	if r.Name != nil {
		u.Name = strings.TrimSpace(*r.Name)
	}
	if r.Email != nil {
		u.Email = strings.ToLower(strings.TrimSpace(*r.Email))
	}
	if r.Role != nil {
		u.Role = *r.Role
	}
	if r.Image != nil {
		u.Image = r.Image
	}
	if r.Description != nil {
		u.Description = r.Description
	}
	if r.GoogleScholar != nil {
		u.GoogleScholar = r.GoogleScholar
	}
	if r.LinkedIn != nil {
		u.LinkedIn = r.LinkedIn
	}
	if r.ORCID != nil {
		u.ORCID = r.ORCID
	}
}

// ========================================
// LISTING
// ========================================

// SortField is a sortable users column.
type SortField string

const (
	SortByName      SortField = "name"
	SortByEmail     SortField = "email"
	SortByRole      SortField = "role"
	SortByCreatedAt SortField = "created_at"
)

var sortFields = map[string]SortField{
	"name":      SortByName,
	"email":     SortByEmail,
	"role":      SortByRole,
	"createdAt": SortByCreatedAt,
}

var DefaultSort = query.Sort[SortField]{Field: SortByCreatedAt, Direction: query.Ascending}

// ListParams - GET /api/auth/users?sort=name,desc&page=1&limit=10&role=admin&search=ann
type ListParams struct {
	Sort   query.Sort[SortField]
	Page   query.Page
	Role   string
	Search string
}

func ParseListParams(v url.Values) ListParams {
	return ListParams{
		Sort:   query.ParseSort(v.Get("sort"), sortFields, DefaultSort),
		Page:   query.ParsePage(v.Get("page"), v.Get("limit")),
		Role:   strings.TrimSpace(v.Get("role")),
		Search: v.Get("search"),
	}
}

func validationError(err error) error {
	if err == nil {
		return nil
	}
	return &apperror.Error{Kind: apperror.KindValidation, Message: err.Error(), Err: err}
}
