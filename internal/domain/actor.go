package domain

import "time"

// Actor is the resolved identity associated with a request.
// The zero Id marks the anonymous placeholder, which satisfies the same
// interface as a real user but is denied all elevated actions.
type Actor struct {
	Id        UserId
	Email     Email
	Name      string
	Moderator bool
	Prefs     *Preferences
	CreatedAt time.Time
	LastSeen  time.Time
}

// Preferences is the per-user preference record, loaded lazily.
type Preferences struct {
	UserId         UserId
	TimeZone       string
	PostsPerPage   int
	HideSignatures bool
}

// Anonymous returns the placeholder actor used when no session resolves.
func Anonymous() *Actor {
	return &Actor{Name: "Anonymous"}
}

// SignedIn reports whether the actor is a real authenticated user.
// The variadic argument is accepted for backward compatibility with
// older call sites and has no effect on the outcome.
func (a *Actor) SignedIn(_ ...bool) bool {
	return a != nil && a.Id != 0
}

func (a *Actor) ResourceKind() Kind { return KindUser }
