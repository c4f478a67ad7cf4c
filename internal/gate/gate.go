// Package gate is the per-request authorization layer: it resolves the
// acting user and the target messageboard, evaluates permissions, and
// produces the typed errors the boundary maps to 404/403 responses.
package gate

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/boardkit/boardkit/internal/apperr"
	"github.com/boardkit/boardkit/internal/config"
	"github.com/boardkit/boardkit/internal/domain"
	"github.com/boardkit/boardkit/internal/identity"
	"github.com/boardkit/boardkit/internal/jobs"
)

type Storage interface {
	// MessageboardByRef looks a board up by slug or numeric id.
	// A miss is (nil, false, nil); errors are real storage failures.
	MessageboardByRef(ctx context.Context, ref string) (*domain.Messageboard, bool, error)

	// Ordered most-recent-first, as supplied by the activity table.
	RecentlyActiveUsers(ctx context.Context, boardId domain.BoardId, since time.Time, limit int) ([]domain.Actor, error)
	GloballyActiveUsers(ctx context.Context, since time.Time, limit int) ([]domain.Actor, error)
}

type Policy interface {
	// Allows evaluates one action for an (actor, resource) pair.
	// A plain false means denied; errors are storage failures, except
	// apperr.ErrNotAuthorized which also means denied.
	Allows(ctx context.Context, actor *domain.Actor, res domain.Resource, action apperr.Action) (bool, error)
}

type Dispatcher interface {
	Schedule(kind string, payload any)
}

// Builder holds the process-wide gate dependencies. One builder per
// configuration; gates are built per request and never shared.
type Builder struct {
	identity   identity.Resolver
	storage    Storage
	policy     Policy
	dispatcher Dispatcher
	cfg        config.Gate
}

func NewBuilder(resolver identity.Resolver, storage Storage, policy Policy, dispatcher Dispatcher, cfg config.Gate) *Builder {
	return &Builder{
		identity:   resolver,
		storage:    storage,
		policy:     policy,
		dispatcher: dispatcher,
		cfg:        cfg,
	}
}

// ForRequest builds a gate scoped to one request's lifetime.
func (b *Builder) ForRequest(r *http.Request) *Gate {
	return &Gate{b: b, r: r}
}

// Gate resolves identity and the target board once per request and
// caches both. Single goroutine per request, so no locking.
type Gate struct {
	b *Builder
	r *http.Request

	actor         *domain.Actor
	actorResolved bool

	board         *domain.Messageboard
	boardResolved bool
}

// Actor returns the request's actor, resolving it on first use. Any
// resolution failure yields the anonymous placeholder; never errors.
func (g *Gate) Actor() *domain.Actor {
	if g.actorResolved {
		return g.actor
	}
	g.actor = g.b.identity.CurrentUser(g.r)
	if g.actor == nil {
		g.actor = domain.Anonymous()
	}
	g.actorResolved = true
	return g.actor
}

// MessageboardOrNone resolves the board named by the {board} URL
// parameter. Absence is (nil, nil), not an error; storage failures
// propagate. The result (including absence) is cached.
func (g *Gate) MessageboardOrNone() (*domain.Messageboard, error) {
	if g.boardResolved {
		return g.board, nil
	}

	ref := chi.URLParam(g.r, "board")
	if ref == "" {
		g.boardResolved = true
		return nil, nil
	}

	board, found, err := g.b.storage.MessageboardByRef(g.r.Context(), ref)
	if err != nil {
		return nil, err
	}
	if found {
		g.board = board
	}
	g.boardResolved = true
	return g.board, nil
}

// Messageboard is the unwrap-or-fail variant of MessageboardOrNone.
func (g *Gate) Messageboard() (*domain.Messageboard, error) {
	board, err := g.MessageboardOrNone()
	if err != nil {
		return nil, err
	}
	if board == nil {
		return nil, apperr.NotFound(domain.KindMessageboard, chi.URLParam(g.r, "board"))
	}
	return board, nil
}

// RequireLogin fails with LoginRequired for the anonymous actor.
func (g *Gate) RequireLogin() error {
	if !g.Actor().SignedIn() {
		return apperr.ErrLoginRequired
	}
	return nil
}

func (g *Gate) AuthorizeRead(res domain.Resource) error {
	return g.authorize(res, apperr.ActionRead)
}

func (g *Gate) AuthorizeCreate(res domain.Resource) error {
	return g.authorize(res, apperr.ActionCreate)
}

func (g *Gate) AuthorizeModerate(res domain.Resource) error {
	return g.authorize(res, apperr.ActionModerate)
}

// authorize re-tags generic denials with the resource's declared kind,
// so one call site serves every resource type.
func (g *Gate) authorize(res domain.Resource, action apperr.Action) error {
	allowed, err := g.b.policy.Allows(g.r.Context(), g.Actor(), res, action)
	if err != nil {
		if errors.Is(err, apperr.ErrNotAuthorized) {
			return apperr.Denial(res.ResourceKind(), action)
		}
		return err
	}
	if !allowed {
		return apperr.Denial(res.ResourceKind(), action)
	}
	return nil
}

// ActiveUsers returns the recently-active list for the resolved board,
// or the global list when no board resolves. The signed-in actor is
// always present exactly once; storage ordering is preserved for the
// rest.
func (g *Gate) ActiveUsers() ([]domain.Actor, error) {
	board, err := g.MessageboardOrNone()
	if err != nil {
		return nil, err
	}

	ctx := g.r.Context()
	since := time.Now().Add(-g.b.cfg.ActiveWindow)

	var users []domain.Actor
	if board != nil {
		users, err = g.b.storage.RecentlyActiveUsers(ctx, board.Id, since, g.b.cfg.ActiveUsersLimit)
	} else {
		users, err = g.b.storage.GloballyActiveUsers(ctx, since, g.b.cfg.ActiveUsersLimit)
	}
	if err != nil {
		return nil, err
	}

	if actor := g.Actor(); actor.SignedIn() {
		users = append(users, *actor)
	}

	return dedupeActors(users), nil
}

// UpdateActivity schedules a fire-and-forget last-seen upsert for the
// (actor, board) pair. No-op for anonymous actors or when no board
// resolves; scheduling failures are the dispatcher's problem.
func (g *Gate) UpdateActivity() {
	board, err := g.MessageboardOrNone()
	if err != nil || board == nil {
		return
	}
	actor := g.Actor()
	if !actor.SignedIn() {
		return
	}
	g.b.dispatcher.Schedule(jobs.KindTouchActivity, jobs.TouchActivity{
		UserId:  actor.Id,
		BoardId: board.Id,
	})
}

// dedupeActors keeps the first occurrence of each user id.
func dedupeActors(users []domain.Actor) []domain.Actor {
	seen := make(map[domain.UserId]struct{}, len(users))
	out := make([]domain.Actor, 0, len(users))
	for _, u := range users {
		if _, ok := seen[u.Id]; ok {
			continue
		}
		seen[u.Id] = struct{}{}
		out = append(out, u)
	}
	return out
}
