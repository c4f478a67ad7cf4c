package gate

import (
	"context"

	"github.com/boardkit/boardkit/internal/apperr"
	"github.com/boardkit/boardkit/internal/domain"
	"github.com/boardkit/boardkit/internal/moderation"
)

// DefaultPolicy is the stock permission policy: public boards are
// readable by anyone, restricted boards by listed emails and
// moderators, creation requires a signed-in actor and an unlocked
// target, moderation goes through the configured strategy.
type DefaultPolicy struct {
	mods moderation.Strategy
}

func NewPolicy(mods moderation.Strategy) *DefaultPolicy {
	return &DefaultPolicy{mods: mods}
}

func (p *DefaultPolicy) Allows(ctx context.Context, actor *domain.Actor, res domain.Resource, action apperr.Action) (bool, error) {
	switch res := res.(type) {
	case *domain.Messageboard:
		return p.allowsBoard(ctx, actor, res, action)
	case *domain.Topic:
		return p.allowsTopic(ctx, actor, res, action)
	case *domain.Actor:
		return p.allowsUser(ctx, actor, res, action)
	default:
		return false, nil
	}
}

func (p *DefaultPolicy) allowsBoard(ctx context.Context, actor *domain.Actor, board *domain.Messageboard, action apperr.Action) (bool, error) {
	switch action {
	case apperr.ActionRead:
		if board.Public() {
			return true, nil
		}
		return p.canEnterRestricted(ctx, actor, board)
	case apperr.ActionCreate:
		// creating a topic on the board
		if !actor.SignedIn() {
			return false, nil
		}
		if ok, err := p.allowsBoard(ctx, actor, board, apperr.ActionRead); err != nil || !ok {
			return ok, err
		}
		if board.Locked {
			return moderation.Moderates(ctx, p.mods, actor, board.Id)
		}
		return true, nil
	case apperr.ActionModerate:
		return moderation.Moderates(ctx, p.mods, actor, board.Id)
	}
	return false, nil
}

func (p *DefaultPolicy) allowsTopic(ctx context.Context, actor *domain.Actor, topic *domain.Topic, action apperr.Action) (bool, error) {
	switch action {
	case apperr.ActionRead:
		if !topic.Private {
			// board-level restrictions are checked against the board itself
			return true, nil
		}
		if !actor.SignedIn() {
			return false, nil
		}
		if topic.HasParticipant(actor.Id) {
			return true, nil
		}
		return moderation.Moderates(ctx, p.mods, actor, topic.BoardId)
	case apperr.ActionCreate:
		// replying to the topic
		if !actor.SignedIn() {
			return false, nil
		}
		if topic.Private && !topic.HasParticipant(actor.Id) {
			return moderation.Moderates(ctx, p.mods, actor, topic.BoardId)
		}
		if topic.Locked {
			return moderation.Moderates(ctx, p.mods, actor, topic.BoardId)
		}
		return true, nil
	case apperr.ActionModerate:
		return moderation.Moderates(ctx, p.mods, actor, topic.BoardId)
	}
	return false, nil
}

func (p *DefaultPolicy) allowsUser(ctx context.Context, actor *domain.Actor, target *domain.Actor, action apperr.Action) (bool, error) {
	switch action {
	case apperr.ActionRead:
		// activity and profile pages: self, or any moderator
		if actor.SignedIn() && actor.Id == target.Id {
			return true, nil
		}
		return p.moderatesAnything(ctx, actor)
	case apperr.ActionModerate:
		return p.moderatesAnything(ctx, actor)
	}
	return false, nil
}

func (p *DefaultPolicy) canEnterRestricted(ctx context.Context, actor *domain.Actor, board *domain.Messageboard) (bool, error) {
	if !actor.SignedIn() {
		return false, nil
	}
	for _, email := range *board.AllowedEmails {
		if email == actor.Email {
			return true, nil
		}
	}
	return moderation.Moderates(ctx, p.mods, actor, board.Id)
}

func (p *DefaultPolicy) moderatesAnything(ctx context.Context, actor *domain.Actor) (bool, error) {
	boards, err := p.mods.CanModerate(ctx, actor)
	if err != nil {
		return false, err
	}
	return len(boards) > 0, nil
}
