// Package validation holds the input schemas for the write paths.
// Checks never panic and never return an error type; callers get a
// Result with the full field-level detail and decide what to expose.
package validation

import (
	"fmt"
	"net/mail"
	"net/url"
	"strings"
)

const (
	MaxTitleLen    = 200
	MaxBodyLen     = 20000
	MinNameLen     = 2
	MaxNameLen     = 30
	MinPasswordLen = 8
	MaxPasswordLen = 30
)

// FieldError names one violated constraint on one field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Result is the outcome of a schema check. Zero value means valid.
type Result struct {
	Errors []FieldError
}

func (r Result) Ok() bool { return len(r.Errors) == 0 }

func (r *Result) add(field, message string) {
	r.Errors = append(r.Errors, FieldError{Field: field, Message: message})
}

type CreatePostInput struct {
	Title    string
	Body     string
	ImageURL string
}

// CreatePost checks a post payload. Title and body are required; the
// optional image URL must be https and its host must be on the
// allow-list. Title is returned trimmed.
func CreatePost(in CreatePostInput, allowedImageHosts []string) (CreatePostInput, Result) {
	var res Result

	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		res.add("title", "title is required")
	} else if len(in.Title) > MaxTitleLen {
		res.add("title", fmt.Sprintf("title must be at most %d characters", MaxTitleLen))
	}

	if strings.TrimSpace(in.Body) == "" {
		res.add("body", "body is required")
	} else if len(in.Body) > MaxBodyLen {
		res.add("body", fmt.Sprintf("body must be at most %d characters", MaxBodyLen))
	}

	if in.ImageURL != "" {
		u, err := url.Parse(in.ImageURL)
		switch {
		case err != nil || u.Host == "":
			res.add("image_url", "image_url must be a valid URL")
		case u.Scheme != "https":
			res.add("image_url", "image_url must use https")
		case !hostAllowed(u.Hostname(), allowedImageHosts):
			res.add("image_url", "image host is not allowed")
		}
	}

	return in, res
}

type SignUpInput struct {
	Name     string
	Email    string
	Password string
}

func SignUp(in SignUpInput) (SignUpInput, Result) {
	var res Result

	in.Name = strings.TrimSpace(in.Name)
	if len(in.Name) < MinNameLen {
		res.add("name", fmt.Sprintf("name must be at least %d characters", MinNameLen))
	} else if len(in.Name) > MaxNameLen {
		res.add("name", fmt.Sprintf("name must be at most %d characters", MaxNameLen))
	}

	checkEmail(&res, in.Email)
	checkPassword(&res, in.Password)

	return in, res
}

type LoginInput struct {
	Email    string
	Password string
}

func Login(in LoginInput) (LoginInput, Result) {
	var res Result
	checkEmail(&res, in.Email)
	checkPassword(&res, in.Password)
	return in, res
}

func checkEmail(res *Result, email string) {
	if email == "" {
		res.add("email", "email is required")
		return
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		res.add("email", "invalid email address")
	}
}

func checkPassword(res *Result, password string) {
	if len(password) < MinPasswordLen {
		res.add("password", fmt.Sprintf("password must be at least %d characters", MinPasswordLen))
	} else if len(password) > MaxPasswordLen {
		res.add("password", fmt.Sprintf("password must be at most %d characters", MaxPasswordLen))
	}
}

func hostAllowed(host string, allowed []string) bool {
	for _, h := range allowed {
		if strings.EqualFold(host, h) {
			return true
		}
	}
	return false
}
