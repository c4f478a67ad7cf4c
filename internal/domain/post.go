package domain

import "time"

type PostCreationData struct {
	TopicId TopicId
	Author  UserId
	Body    PostBody
}

type Post struct {
	Id        PostId
	TopicId   TopicId
	BoardId   BoardId
	Author    Actor
	Body      PostBody // raw markdown as submitted
	BodyHtml  string   // rendered and sanitized at write time
	CreatedAt time.Time
	EditedAt  *time.Time
}
