package dto

import (
	"errors"
	"fmt"
	"strings"
)

var ErrValidation = errors.New("validation failed")

// FieldError describes a single rejected form field. Its message is shown to
// the user as is.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Message
}

func (e *FieldError) Unwrap() error {
	return ErrValidation
}

var fieldLabels = map[string]string{
	"email":                     "Email",
	"password":                  "Password",
	"full_name":                 "Full name",
	"title":                     "Title",
	"organization":              "Organization",
	"description":               "Description",
	"category":                  "Category",
	"location":                  "Location",
	"state":                     "State",
	"min_education":             "Minimum education",
	"total_posts":               "Total posts",
	"application_start_date":    "Application start date",
	"application_end_date":      "Application end date",
	"exam_date":                 "Exam date",
	"min_age":                   "Minimum age",
	"max_age":                   "Maximum age",
	"salary_min":                "Minimum salary",
	"salary_max":                "Maximum salary",
	"application_fee":           "Application fee",
	"official_notification_url": "Official notification URL",
	"apply_online_url":          "Apply online URL",
}

func label(field string) string {
	if l, ok := fieldLabels[field]; ok {
		return l
	}
	return field
}

// requireFields reports every empty field among keys, in order.
func requireFields(values map[string]string, keys ...string) error {
	var missing []string
	for _, k := range keys {
		if strings.TrimSpace(values[k]) == "" {
			missing = append(missing, label(k))
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return &FieldError{
		Field:   keys[0],
		Message: fmt.Sprintf("Please fill in the required fields: %s", strings.Join(missing, ", ")),
	}
}
