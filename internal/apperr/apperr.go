// Package apperr holds the domain error taxonomy and its mapping to
// HTTP status codes. Services return these errors as-is; handlers
// translate them at the boundary with WriteError.
package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/boardkit/boardkit/internal/domain"
)

// Action is the permission being evaluated for a resource.
type Action string

const (
	ActionRead     Action = "read"
	ActionCreate   Action = "create"
	ActionModerate Action = "moderate"
)

// NotFoundError reports a missing resource of a given kind.
type NotFoundError struct {
	Kind domain.Kind
	Ref  string // the identifier the caller asked for
}

func (e *NotFoundError) Error() string {
	if e.Ref == "" {
		return fmt.Sprintf("%s not found", e.Kind)
	}
	return fmt.Sprintf("%s %q not found", e.Kind, e.Ref)
}

func NotFound(kind domain.Kind, ref string) error {
	return &NotFoundError{Kind: kind, Ref: ref}
}

// DeniedError is a failed permission check, tagged with the resource
// kind and the action that was denied.
type DeniedError struct {
	Kind   domain.Kind
	Action Action
}

func (e *DeniedError) Error() string {
	return fmt.Sprintf("not allowed to %s this %s", e.Action, e.Kind)
}

// denials is the static kind+action table. One entry per resource kind
// and action, so a single authorization call site can produce the
// specific denial without per-call-site branching.
var denials = map[domain.Kind]map[Action]*DeniedError{
	domain.KindMessageboard: {
		ActionRead:     {Kind: domain.KindMessageboard, Action: ActionRead},
		ActionCreate:   {Kind: domain.KindMessageboard, Action: ActionCreate},
		ActionModerate: {Kind: domain.KindMessageboard, Action: ActionModerate},
	},
	domain.KindTopic: {
		ActionRead:     {Kind: domain.KindTopic, Action: ActionRead},
		ActionCreate:   {Kind: domain.KindTopic, Action: ActionCreate},
		ActionModerate: {Kind: domain.KindTopic, Action: ActionModerate},
	},
	domain.KindPrivateTopic: {
		ActionRead:     {Kind: domain.KindPrivateTopic, Action: ActionRead},
		ActionCreate:   {Kind: domain.KindPrivateTopic, Action: ActionCreate},
		ActionModerate: {Kind: domain.KindPrivateTopic, Action: ActionModerate},
	},
	domain.KindUser: {
		ActionRead:     {Kind: domain.KindUser, Action: ActionRead},
		ActionCreate:   {Kind: domain.KindUser, Action: ActionCreate},
		ActionModerate: {Kind: domain.KindUser, Action: ActionModerate},
	},
}

// Denial returns the kind-specific denial for a resource/action pair.
// Unknown kinds fall back to the generic ErrNotAuthorized.
func Denial(kind domain.Kind, action Action) error {
	if byAction, ok := denials[kind]; ok {
		if d, ok := byAction[action]; ok {
			return d
		}
	}
	return ErrNotAuthorized
}

var (
	// ErrLoginRequired is returned when an anonymous actor attempts an
	// action that requires a signed-in user.
	ErrLoginRequired = errors.New("please sign in to continue")

	// ErrNotAuthorized is the generic denial from the permission policy,
	// before the gate re-tags it with a resource kind.
	ErrNotAuthorized = errors.New("not authorized")
)

// StatusError carries an explicit status code for errors outside the
// domain taxonomy (validation, decoding, conflicts).
type StatusError struct {
	Message string
	Code    int
}

func (e *StatusError) Error() string { return e.Message }

// StatusCode maps a domain error to its HTTP status. Not-found kinds
// map to 404, every denial and unauthenticated condition to 403,
// anything unrecognized to 500.
func StatusCode(err error) int {
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return http.StatusNotFound
	}
	var d *DeniedError
	if errors.As(err, &d) {
		return http.StatusForbidden
	}
	if errors.Is(err, ErrLoginRequired) || errors.Is(err, ErrNotAuthorized) {
		return http.StatusForbidden
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code
	}
	return http.StatusInternalServerError
}

// WriteError renders the boundary response for an error. The raw error
// message is used as the body for every mapped kind; unmapped errors
// get a generic body so internals do not leak.
func WriteError(w http.ResponseWriter, err error) {
	code := StatusCode(err)
	if code == http.StatusInternalServerError {
		http.Error(w, "Internal error", code)
		return
	}
	http.Error(w, err.Error(), code)
}
