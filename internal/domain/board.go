package domain

import "time"

// to iterate thru layers: handler -> service -> storage
type BoardCreationData struct {
	Slug        BoardSlug
	Name        BoardName
	Description string
	// nil means public; otherwise only these emails (plus moderators) may read
	AllowedEmails *Emails
}

type Messageboard struct {
	Id            BoardId
	Slug          BoardSlug
	Name          BoardName
	Description   string
	AllowedEmails *Emails
	Locked        bool
	CreatedAt     time.Time
	LastActivity  time.Time
}

func (b *Messageboard) ResourceKind() Kind { return KindMessageboard }

// Public reports whether the board has no read restriction.
func (b *Messageboard) Public() bool {
	return b.AllowedEmails == nil || len(*b.AllowedEmails) == 0
}
