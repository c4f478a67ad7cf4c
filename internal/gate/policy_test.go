package gate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boardkit/boardkit/internal/apperr"
	"github.com/boardkit/boardkit/internal/domain"
)

// stubStrategy grants moderation over its boards to flagged actors.
type stubStrategy struct {
	boards []domain.Messageboard
}

func (s *stubStrategy) CanModerate(_ context.Context, actor *domain.Actor) ([]domain.Messageboard, error) {
	if actor.SignedIn() && actor.Moderator {
		return s.boards, nil
	}
	return []domain.Messageboard{}, nil
}

func (s *stubStrategy) ModeratorsOf(context.Context, []domain.Messageboard) ([]domain.Actor, error) {
	return nil, nil
}

func TestDefaultPolicyBoard(t *testing.T) {
	public := &domain.Messageboard{Id: 1, Slug: "general"}
	allowed := domain.Emails{"member@example.com"}
	restricted := &domain.Messageboard{Id: 2, Slug: "staff", AllowedEmails: &allowed}
	locked := &domain.Messageboard{Id: 3, Slug: "archive", Locked: true}

	anonymous := domain.Anonymous()
	member := &domain.Actor{Id: 1, Email: "member@example.com"}
	outsider := &domain.Actor{Id: 2, Email: "outsider@example.com"}
	mod := &domain.Actor{Id: 3, Email: "mod@example.com", Moderator: true}

	policy := NewPolicy(&stubStrategy{boards: []domain.Messageboard{*public, *restricted, *locked}})

	tests := []struct {
		name    string
		actor   *domain.Actor
		board   *domain.Messageboard
		action  apperr.Action
		allowed bool
	}{
		{name: "anyone reads public board", actor: anonymous, board: public, action: apperr.ActionRead, allowed: true},
		{name: "anonymous denied restricted board", actor: anonymous, board: restricted, action: apperr.ActionRead, allowed: false},
		{name: "listed email reads restricted board", actor: member, board: restricted, action: apperr.ActionRead, allowed: true},
		{name: "unlisted email denied restricted board", actor: outsider, board: restricted, action: apperr.ActionRead, allowed: false},
		{name: "moderator reads restricted board", actor: mod, board: restricted, action: apperr.ActionRead, allowed: true},
		{name: "anonymous cannot create topics", actor: anonymous, board: public, action: apperr.ActionCreate, allowed: false},
		{name: "member creates topic on public board", actor: member, board: public, action: apperr.ActionCreate, allowed: true},
		{name: "locked board blocks topic creation", actor: member, board: locked, action: apperr.ActionCreate, allowed: false},
		{name: "moderator creates topic on locked board", actor: mod, board: locked, action: apperr.ActionCreate, allowed: true},
		{name: "outsider cannot create on restricted board", actor: outsider, board: restricted, action: apperr.ActionCreate, allowed: false},
		{name: "member cannot moderate", actor: member, board: public, action: apperr.ActionModerate, allowed: false},
		{name: "moderator moderates", actor: mod, board: public, action: apperr.ActionModerate, allowed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := policy.Allows(context.Background(), tt.actor, tt.board, tt.action)
			require.NoError(t, err)
			assert.Equal(t, tt.allowed, got)
		})
	}
}

func TestDefaultPolicyTopic(t *testing.T) {
	open := &domain.Topic{Id: 1, BoardId: 1}
	locked := &domain.Topic{Id: 2, BoardId: 1, Locked: true}
	private := &domain.Topic{Id: 3, BoardId: 1, Private: true, Participants: []domain.UserId{1, 4}}

	anonymous := domain.Anonymous()
	participant := &domain.Actor{Id: 1, Email: "a@example.com"}
	outsider := &domain.Actor{Id: 2, Email: "b@example.com"}
	mod := &domain.Actor{Id: 3, Email: "mod@example.com", Moderator: true}

	policy := NewPolicy(&stubStrategy{boards: []domain.Messageboard{{Id: 1}}})

	tests := []struct {
		name    string
		actor   *domain.Actor
		topic   *domain.Topic
		action  apperr.Action
		allowed bool
	}{
		{name: "anyone reads open topic", actor: anonymous, topic: open, action: apperr.ActionRead, allowed: true},
		{name: "participant reads private topic", actor: participant, topic: private, action: apperr.ActionRead, allowed: true},
		{name: "outsider denied private topic", actor: outsider, topic: private, action: apperr.ActionRead, allowed: false},
		{name: "anonymous denied private topic", actor: anonymous, topic: private, action: apperr.ActionRead, allowed: false},
		{name: "moderator reads private topic", actor: mod, topic: private, action: apperr.ActionRead, allowed: true},
		{name: "participant replies to private topic", actor: participant, topic: private, action: apperr.ActionCreate, allowed: true},
		{name: "outsider cannot reply to private topic", actor: outsider, topic: private, action: apperr.ActionCreate, allowed: false},
		{name: "anonymous cannot reply", actor: anonymous, topic: open, action: apperr.ActionCreate, allowed: false},
		{name: "locked topic blocks replies", actor: participant, topic: locked, action: apperr.ActionCreate, allowed: false},
		{name: "moderator replies to locked topic", actor: mod, topic: locked, action: apperr.ActionCreate, allowed: true},
		{name: "participant cannot moderate topic", actor: participant, topic: open, action: apperr.ActionModerate, allowed: false},
		{name: "moderator moderates topic", actor: mod, topic: open, action: apperr.ActionModerate, allowed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := policy.Allows(context.Background(), tt.actor, tt.topic, tt.action)
			require.NoError(t, err)
			assert.Equal(t, tt.allowed, got)
		})
	}
}

func TestDefaultPolicyUser(t *testing.T) {
	target := &domain.Actor{Id: 9, Email: "target@example.com"}

	policy := NewPolicy(&stubStrategy{boards: []domain.Messageboard{{Id: 1}}})

	self, err := policy.Allows(context.Background(), &domain.Actor{Id: 9}, target, apperr.ActionRead)
	require.NoError(t, err)
	assert.True(t, self, "users can read their own record")

	other, err := policy.Allows(context.Background(), &domain.Actor{Id: 2}, target, apperr.ActionRead)
	require.NoError(t, err)
	assert.False(t, other)

	mod, err := policy.Allows(context.Background(), &domain.Actor{Id: 3, Moderator: true}, target, apperr.ActionRead)
	require.NoError(t, err)
	assert.True(t, mod)

	anon, err := policy.Allows(context.Background(), domain.Anonymous(), target, apperr.ActionRead)
	require.NoError(t, err)
	assert.False(t, anon)
}

func TestDefaultPolicyUnknownResource(t *testing.T) {
	policy := NewPolicy(&stubStrategy{})

	got, err := policy.Allows(context.Background(), &domain.Actor{Id: 1}, resourceOfKind("widget"), apperr.ActionRead)
	require.NoError(t, err)
	assert.False(t, got, "unknown resource types default to deny")
}

type resourceOfKind domain.Kind

func (r resourceOfKind) ResourceKind() domain.Kind { return domain.Kind(r) }
