// Package setup wires the application graph: storage, renderer, jobs,
// identity, moderation, the gate builder, services and the handler.
package setup

import (
	"context"
	"fmt"

	"github.com/boardkit/boardkit/internal/config"
	"github.com/boardkit/boardkit/internal/gate"
	"github.com/boardkit/boardkit/internal/handler"
	"github.com/boardkit/boardkit/internal/identity"
	"github.com/boardkit/boardkit/internal/jobs"
	"github.com/boardkit/boardkit/internal/moderation"
	"github.com/boardkit/boardkit/internal/render"
	"github.com/boardkit/boardkit/internal/service"
	"github.com/boardkit/boardkit/internal/storage/pg"
)

// Dependencies holds every initialized component.
type Dependencies struct {
	Config     *config.Config
	Storage    *pg.Storage
	Dispatcher *jobs.Dispatcher
	Pruner     *jobs.Pruner
	Handler    *handler.Handler
}

// SetupDependencies builds the full graph from config. The dispatcher
// and pruner are returned unstarted; the caller owns their lifecycle.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("storage init: %w", err)
	}

	renderer, err := render.New(cfg.Public.RenderCacheSize)
	if err != nil {
		return nil, fmt.Errorf("renderer init: %w", err)
	}

	dispatcher := jobs.NewDispatcher(cfg.Public.Jobs.QueueSize)
	dispatcher.Register(jobs.KindTouchActivity, func(ctx context.Context, payload any) error {
		touch, ok := payload.(jobs.TouchActivity)
		if !ok {
			return fmt.Errorf("unexpected payload type %T", payload)
		}
		return storage.TouchActivity(ctx, touch.UserId, touch.BoardId)
	})
	pruner := jobs.NewPruner(storage, cfg.Public.Gate.ActiveWindow)

	jwtService := identity.NewJwt(cfg.Private.JwtKey, cfg.Public.JwtTTL)
	resolver, err := identity.NewResolver(cfg.Public.Gate.IdentityStrategy, jwtService)
	if err != nil {
		return nil, err
	}
	mods, err := moderation.New(cfg.Public.Gate.ModerationStrategy, storage)
	if err != nil {
		return nil, err
	}

	policy := gate.NewPolicy(mods)
	gates := gate.NewBuilder(resolver, storage, policy, dispatcher, cfg.Public.Gate)

	validator := service.DefaultValidator{}
	auth := service.NewAuth(storage, jwtService)
	board := service.NewBoard(storage, validator)
	topic := service.NewTopic(storage, validator, renderer, cfg.Public.TopicsPerPage, cfg.Public.PostsPerPage)
	post := service.NewPost(storage, validator, renderer)
	activity := service.NewUserActivity(storage, cfg.Public.PostsPerPage)

	h := handler.New(gates, auth, board, topic, post, activity, mods, storage, cfg)

	return &Dependencies{
		Config:     cfg,
		Storage:    storage,
		Dispatcher: dispatcher,
		Pruner:     pruner,
		Handler:    h,
	}, nil
}
