package domain

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type User struct {
	Name     string
	Email    string
	Mobile   string
	Company  string
	Location string
}

func (u User) Snapshot() Submitter {
	return Submitter(u)
}

// FirstName is the greeting name; "there" stands in for anonymous visitors.
func (u *User) FirstName() string {
	if u == nil {
		return "there"
	}
	first, _, _ := strings.Cut(strings.TrimSpace(u.Name), " ")
	if first == "" {
		return "there"
	}
	return first
}

// UserFromEmail fabricates the profile of a simulated login.
func UserFromEmail(email string) User {
	local, _, _ := strings.Cut(strings.TrimSpace(email), "@")
	words := strings.FieldsFunc(local, func(r rune) bool {
		return r == '.' || r == '_' || r == '-' || r == '+'
	})
	name := cases.Title(language.English).String(strings.Join(words, " "))
	if name == "" {
		name = "User"
	}
	return User{Name: name, Email: strings.TrimSpace(email)}
}

type LoginForm struct {
	Email    string `form:"email" validate:"required,looseemail"`
	Password string `form:"password" validate:"required"`
}

type SignupAccountForm struct {
	Name            string `form:"name" validate:"required"`
	Email           string `form:"email" validate:"required,looseemail"`
	Mobile          string `form:"mobile" validate:"required,digits10"`
	Password        string `form:"password" validate:"required,min=6"`
	ConfirmPassword string `form:"confirm_password" validate:"eqfield=Password"`
}

type SignupProfileForm struct {
	Company  string `form:"company" validate:"required"`
	Location string `form:"location" validate:"required"`
}

type ResetForm struct {
	Email string `form:"email" validate:"required,looseemail"`
}

type AdminLoginForm struct {
	Username string
	Password string
}

// FieldMessages maps "<field>.<rule>" to the inline message shown next to
// the field.
var FieldMessages = map[string]string{
	"name.required":           "Name is required.",
	"email.required":          "Email is required.",
	"email.looseemail":        "Email is invalid.",
	"password.required":       "Password is required.",
	"password.min":            "Password must be at least 6 characters.",
	"confirm_password.eqfield": "Passwords do not match.",
	"mobile.required":         "Mobile number is required.",
	"mobile.digits10":         "Mobile number must be 10 digits.",
	"company.required":        "Company name is required.",
	"location.required":       "Location is required.",
	"message.required":        "Message is required.",
	"phone.digits10":          "Phone must be 10 digits.",
}
