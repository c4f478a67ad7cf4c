package domain

import "github.com/lib/pq"

type (
	Email  = string
	UserId = int64

	Emails    = pq.StringArray
	BoardId   = int64
	BoardSlug = string
	BoardName = string

	TopicId    = int64
	TopicTitle = string

	PostId   = int64
	PostBody = string
)
