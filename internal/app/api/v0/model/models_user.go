package model

import (
	"time"

	"github.com/hrms-project/hrms-portal/internal/domain"
)

type User struct {
	Identifier string `json:"Identifier"`
	Email      string `json:"Email"`
	IsAdmin    bool   `json:"IsAdmin"`

	Firstname string `json:"Firstname"`
	Lastname  string `json:"Lastname"`

	EmailConfirmed bool       `json:"EmailConfirmed"`
	CreatedAt      *time.Time `json:"CreatedAt,omitempty"`
	LastSignInAt   *time.Time `json:"LastSignInAt,omitempty"`
}

func NewUser(src *domain.User) *User {
	return &User{
		Identifier:     string(src.Identifier),
		Email:          src.Email,
		IsAdmin:        src.IsAdmin,
		Firstname:      src.Firstname,
		Lastname:       src.Lastname,
		EmailConfirmed: src.EmailConfirmed,
		CreatedAt:      src.CreatedAt,
		LastSignInAt:   src.LastSignInAt,
	}
}

func NewUsers(src []domain.User) []User {
	results := make([]User, len(src))
	for i := range src {
		results[i] = *NewUser(&src[i])
	}

	return results
}

// UserPage is a single page of the filtered user directory.
type UserPage struct {
	Users []User `json:"Users"`

	Page       int `json:"Page"`
	PageSize   int `json:"PageSize"`
	TotalPages int `json:"TotalPages"`
	TotalUsers int `json:"TotalUsers"`
}

type UserCreateRequest struct {
	Email    string `json:"Email" validate:"required,email"`
	Password string `json:"Password" validate:"required,min=6"`

	Firstname string `json:"Firstname"`
	Lastname  string `json:"Lastname"`
	IsAdmin   bool   `json:"IsAdmin"`
}

type UserUpdateRequest struct {
	Email string `json:"Email" validate:"required,email"`

	Firstname string `json:"Firstname"`
	Lastname  string `json:"Lastname"`
	IsAdmin   bool   `json:"IsAdmin"`
}

func NewDomainUserDraft(src *UserCreateRequest) domain.UserDraft {
	return domain.UserDraft{
		Email:     src.Email,
		Password:  domain.PrivateString(src.Password),
		Firstname: src.Firstname,
		Lastname:  src.Lastname,
		IsAdmin:   src.IsAdmin,
	}
}

func NewDomainUserPatch(src *UserUpdateRequest) domain.UserPatch {
	return domain.UserPatch{
		Email:     src.Email,
		Firstname: src.Firstname,
		Lastname:  src.Lastname,
		IsAdmin:   src.IsAdmin,
	}
}
