// Package forms defines the form payloads bound from server-rendered
// pages, plus the translation of binding failures into per-field messages
// for redisplay.
package forms

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// RegisterForm is the account creation form, with a role selection.
type RegisterForm struct {
	Username  string `form:"username" binding:"required,min=3,max=150"`
	Email     string `form:"email" binding:"required,email"`
	Password1 string `form:"password1" binding:"required,min=8"`
	Password2 string `form:"password2" binding:"required,eqfield=Password1"`
	Role      string `form:"role" binding:"required,oneof=student lecturer"`
}

// LoginForm is the sign-in form.
type LoginForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// OpportunityForm is the shared create/edit form for postings. Company,
// role and deadline are required; link and description are optional.
type OpportunityForm struct {
	Company     string    `form:"company" binding:"required,max=200"`
	RoleTitle   string    `form:"role" binding:"required,max=300"`
	Deadline    time.Time `form:"deadline" time_format:"2006-01-02" binding:"required"`
	Link        string    `form:"link" binding:"omitempty,url"`
	Description string    `form:"description"`
}

// ApplicationForm is the inline application form on the detail page.
// The message is optional.
type ApplicationForm struct {
	Message string `form:"message"`
}

// ProfileForm edits the student's comma-separated skills and subjects.
type ProfileForm struct {
	Skills           string `form:"skills"`
	EnrolledSubjects string `form:"enrolled_subjects"`
}

// FieldErrors converts a binding error into field name → message for
// template redisplay. Non-validator errors (e.g. an unparsable date)
// collapse into a single form-wide message under "form".
func FieldErrors(err error) map[string]string {
	out := map[string]string{}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["form"] = "Invalid form input."
		return out
	}

	for _, e := range verrs {
		out[strings.ToLower(e.Field())] = fieldErrorMessage(e)
	}

	return out
}

// fieldErrorMessage creates a human-readable validation error message
func fieldErrorMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required."
	case "min":
		return "Must be at least " + e.Param() + " characters."
	case "max":
		return "Must be at most " + e.Param() + " characters."
	case "email":
		return "Must be a valid email address."
	case "eqfield":
		return "Passwords do not match."
	case "oneof":
		return "Must be one of: " + e.Param() + "."
	case "url":
		return "Must be a valid URL."
	default:
		return "Invalid value."
	}
}
