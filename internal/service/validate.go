package service

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/boardkit/boardkit/internal/apperr"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{0,31}$`)

type DefaultValidator struct{}

func (DefaultValidator) Slug(slug string) error {
	if !slugPattern.MatchString(slug) {
		return &apperr.StatusError{
			Message: fmt.Sprintf("invalid slug %q: lowercase letters, digits and dashes only, max 32 chars", slug),
			Code:    http.StatusBadRequest,
		}
	}
	return nil
}

func (DefaultValidator) Name(name string) error {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 80 {
		return &apperr.StatusError{Message: "name must be 1-80 characters", Code: http.StatusBadRequest}
	}
	return nil
}

func (DefaultValidator) Title(title string) error {
	title = strings.TrimSpace(title)
	if title == "" || len(title) > 200 {
		return &apperr.StatusError{Message: "title must be 1-200 characters", Code: http.StatusBadRequest}
	}
	return nil
}

func (DefaultValidator) Body(body string) error {
	if strings.TrimSpace(body) == "" {
		return &apperr.StatusError{Message: "post body must not be empty", Code: http.StatusBadRequest}
	}
	if len(body) > 64*1024 {
		return &apperr.StatusError{Message: "post body too long", Code: http.StatusBadRequest}
	}
	return nil
}
