package user

import (
	"jobalert-web/internal/pkg/apitime"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID                     string       `json:"id"`
	Email                  string       `json:"email"`
	FullName               string       `json:"full_name"`
	Phone                  string       `json:"phone,omitempty"`
	Location               string       `json:"location,omitempty"`
	Role                   string       `json:"role"`
	IsActive               bool         `json:"is_active"`
	EmailVerified          bool         `json:"email_verified"`
	CreatedAt              apitime.Time `json:"created_at"`
	PreferredJobCategories []string     `json:"preferred_job_categories"`
	EducationLevel         string       `json:"education_level,omitempty"`
}

func (u User) HasRole(role string) bool {
	return role != "" && u.Role == role
}

// DisplayName prefers the full name and falls back to the email.
func (u User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Email
}

type RegisterInput struct {
	Email          string `json:"email"`
	Password       string `json:"password"`
	FullName       string `json:"full_name"`
	Phone          string `json:"phone,omitempty"`
	Location       string `json:"location,omitempty"`
	EducationLevel string `json:"education_level,omitempty"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
