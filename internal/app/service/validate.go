package service

import (
	"net/mail"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/atinyakov/go-link-tracker/internal/apperr"
	"github.com/atinyakov/go-link-tracker/internal/models"
)

const (
	maxNameLength       = 100
	maxDescriptionLines = 2
	minPasswordLength   = 6
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]{3,30}$`)

// ValidateURL accepts absolute http and https URLs with a host.
func ValidateURL(field, raw string) error {
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return apperr.Invalid(field, "must be an absolute URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return apperr.Invalid(field, "must use http or https")
	}
	if u.Host == "" {
		return apperr.Invalid(field, "must have a host")
	}
	return nil
}

// ValidateDescription allows at most two newline-separated lines. A trailing
// newline starts a new, empty line.
func ValidateDescription(desc string) error {
	if len(strings.Split(desc, "\n")) > maxDescriptionLines {
		return apperr.Invalid("description", "must be at most 2 lines")
	}
	return nil
}

// ValidateUsername checks the profile username rules.
func ValidateUsername(username string) error {
	if !usernamePattern.MatchString(username) {
		return apperr.Invalid("username", "must be 3-30 letters, digits or underscores")
	}
	return nil
}

// ValidateEmail checks that email is a bare address.
func ValidateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return apperr.Invalid("email", "must be a valid address")
	}
	return nil
}

// ValidatePassword checks the account password rules.
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < minPasswordLength {
		return apperr.Invalid("password", "must be at least 6 characters")
	}
	return nil
}

// normalizeLinkInput trims the input, turns empty optional fields into nil and
// validates the result.
func normalizeLinkInput(in models.LinkInput) (models.LinkInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.URL = strings.TrimSpace(in.URL)
	if in.Description != nil && strings.TrimSpace(*in.Description) == "" {
		in.Description = nil
	}
	in.ThumbnailURL = emptyToNil(in.ThumbnailURL)

	if in.Password != nil && *in.Password == "" {
		in.Password = nil
	}

	if in.Name == "" {
		return in, apperr.Invalid("name", "is required")
	}
	if utf8.RuneCountInString(in.Name) > maxNameLength {
		return in, apperr.Invalid("name", "must be at most 100 characters")
	}
	if err := ValidateURL("url", in.URL); err != nil {
		return in, err
	}
	if in.ThumbnailURL != nil {
		if err := ValidateURL("thumbnail_url", *in.ThumbnailURL); err != nil {
			return in, err
		}
	}
	if in.Description != nil {
		if err := ValidateDescription(*in.Description); err != nil {
			return in, err
		}
	}

	return in, nil
}

func emptyToNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	if trimmed != *s {
		return &trimmed
	}
	return s
}
