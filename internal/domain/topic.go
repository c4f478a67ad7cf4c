package domain

import "time"

type TopicCreationData struct {
	BoardId BoardId
	Title   TopicTitle
	Author  UserId
	Private bool
	// participant user ids for private topics; ignored otherwise
	Participants []UserId
	FirstPost    PostCreationData
}

type Topic struct {
	Id           TopicId
	BoardId      BoardId
	Title        TopicTitle
	Author       Actor
	Sticky       bool
	Locked       bool
	Private      bool
	Participants []UserId
	CreatedAt    time.Time
	LastPostAt   time.Time
	PostCount    int
	Posts        []Post
}

// Private topics carry their own kind so denials name the right resource.
func (t *Topic) ResourceKind() Kind {
	if t.Private {
		return KindPrivateTopic
	}
	return KindTopic
}

// HasParticipant reports whether the user is on the topic's participant list.
func (t *Topic) HasParticipant(id UserId) bool {
	for _, p := range t.Participants {
		if p == id {
			return true
		}
	}
	return false
}
