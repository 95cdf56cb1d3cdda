package dto

import (
	"strings"

	"jobalert-web/internal/domain/user"
)

type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

func (r LoginRequest) Normalize() LoginRequest {
	r.Email = strings.TrimSpace(r.Email)
	return r
}

func (r LoginRequest) Validate() error {
	return requireFields(map[string]string{
		"email":    r.Email,
		"password": r.Password,
	}, "email", "password")
}

// Values returns the fields echoed back into a re-rendered form. The
// password is never echoed.
func (r LoginRequest) Values() map[string]string {
	return map[string]string{"email": r.Email}
}

type RegisterRequest struct {
	FullName       string `json:"full_name" form:"full_name"`
	Email          string `json:"email" form:"email"`
	Password       string `json:"password" form:"password"`
	Phone          string `json:"phone" form:"phone"`
	Location       string `json:"location" form:"location"`
	EducationLevel string `json:"education_level" form:"education_level"`
}

func (r RegisterRequest) Normalize() RegisterRequest {
	r.FullName = strings.TrimSpace(r.FullName)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Location = strings.TrimSpace(r.Location)
	r.EducationLevel = strings.TrimSpace(r.EducationLevel)
	return r
}

func (r RegisterRequest) Validate() error {
	return requireFields(map[string]string{
		"full_name": r.FullName,
		"email":     r.Email,
		"password":  r.Password,
	}, "full_name", "email", "password")
}

func (r RegisterRequest) Values() map[string]string {
	return map[string]string{
		"full_name":       r.FullName,
		"email":           r.Email,
		"phone":           r.Phone,
		"location":        r.Location,
		"education_level": r.EducationLevel,
	}
}

func (r RegisterRequest) ToInput() user.RegisterInput {
	return user.RegisterInput{
		Email:          r.Email,
		Password:       r.Password,
		FullName:       r.FullName,
		Phone:          r.Phone,
		Location:       r.Location,
		EducationLevel: r.EducationLevel,
	}
}
