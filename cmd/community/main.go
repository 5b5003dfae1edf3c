package main

import (
	"context"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/example/community-platform/internal/comments"
	"github.com/example/community-platform/internal/handlers"
	"github.com/example/community-platform/internal/notify"
	"github.com/example/community-platform/internal/platform/auth"
	"github.com/example/community-platform/internal/platform/config"
	"github.com/example/community-platform/internal/platform/db"
	"github.com/example/community-platform/internal/platform/httpserver"
	"github.com/example/community-platform/internal/platform/logging"
	"github.com/example/community-platform/internal/platform/natsconn"
	"github.com/example/community-platform/internal/platform/run"
	"github.com/example/community-platform/internal/postview"
	"github.com/example/community-platform/internal/reactions"
	"github.com/example/community-platform/internal/store"
)

type stores struct {
	Users         store.UserStore
	Posts         store.PostStore
	Comments      store.CommentStore
	Reactions     store.ReactionStore
	Notifications store.NotificationStore
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log, err := logging.New(cfg.ServiceName, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	st, closePool := initStores(cfg, log)
	if closePool != nil {
		defer closePool()
	}

	sink, nc := initSink(cfg, st.Notifications, log)
	if nc != nil {
		defer nc.Close()
	}

	reactionSvc := &reactions.Service{
		Store:    st.Reactions,
		Posts:    st.Posts,
		Comments: st.Comments,
	}
	commentSvc := &comments.Service{
		Store: st.Comments,
		Users: st.Users,
		Posts: st.Posts,
		Sink:  sink,
		Log:   log,
	}
	renderer := &postview.Renderer{
		Reactions: reactionSvc,
		Comments:  commentSvc,
		Users:     st.Users,
	}

	verifier := auth.JWTVerifier{Secret: []byte(cfg.JWTSecret)}

	r := chi.NewRouter()
	httpserver.SetupRouter(r)

	// Public reads
	r.Get("/v1/posts", handlers.ListPosts(st.Posts, renderer))
	r.Get("/v1/posts/{post_id}", handlers.GetPost(st.Posts, renderer, log))
	r.Get("/v1/posts/{post_id}/comments", handlers.ListComments(commentSvc))
	r.Get("/v1/comments/{comment_id}", handlers.GetComment(commentSvc))
	r.Get("/v1/reactions/{content_type}/{content_id}", handlers.GetReactionSummary(reactionSvc))

	// Authenticated writes
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireUser(verifier))
		r.Post("/v1/posts/{post_id}/comments", handlers.CreateComment(commentSvc))
		r.Put("/v1/comments/{comment_id}", handlers.UpdateComment(commentSvc))
		r.Delete("/v1/comments/{comment_id}", handlers.DeleteComment(commentSvc))
		r.Post("/v1/reactions/{content_type}/{content_id}", handlers.CastReaction(reactionSvc))
		r.Delete("/v1/reactions/{content_type}/{content_id}", handlers.RemoveReaction(reactionSvc))
		r.Get("/v1/notifications", handlers.ListNotifications(st.Notifications))
		r.Post("/v1/notifications/{notification_id}/read", handlers.MarkNotificationRead(st.Notifications))
		r.Get("/v1/notifications/unread_count", handlers.UnreadNotificationCount(st.Notifications))
	})

	// Post management is admin territory
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireUser(verifier))
		r.Use(auth.RequireAdmin)
		r.Post("/v1/posts", handlers.CreatePost(st.Posts, renderer))
		r.Put("/v1/posts/{post_id}", handlers.UpdatePost(st.Posts, renderer))
		r.Delete("/v1/posts/{post_id}", handlers.DeletePost(st.Posts))
	})

	srv := httpserver.New(httpserver.Options{Addr: cfg.HTTP.Addr, ServiceName: cfg.ServiceName, Logger: log, Router: r})

	runner := run.New(log)
	code := runner.WithSignals(func(ctx context.Context) error {
		if nc != nil {
			go notify.StartConsumer(ctx, nc, st.Notifications, log)
		}
		go func() {
			<-ctx.Done()
			_ = srv.Shutdown(context.Background())
		}()
		return srv.Start(log)
	})

	log.Info("exit", zap.Int("code", code))
	run.Exit(code)
}

// initStores selects the storage backend. In production a working Postgres
// connection is mandatory; development falls back to the in-memory stores.
func initStores(cfg config.AppConfig, log *zap.Logger) (stores, func()) {
	memory := func() stores {
		comments := store.NewInMemoryCommentStore()
		return stores{
			Users:         store.NewInMemoryUserStore(),
			Posts:         &store.CascadingPostStore{PostStore: store.NewInMemoryPostStore(), Comments: comments},
			Comments:      comments,
			Reactions:     store.NewInMemoryReactionStore(),
			Notifications: store.NewInMemoryNotificationStore(),
		}
	}

	if cfg.DatabaseURL == "" {
		if cfg.IsProduction() {
			log.Error("DATABASE_URL is required in production")
			_ = log.Sync()
			run.Exit(1)
		}
		log.Warn("DATABASE_URL not set, using in-memory stores (development only)")
		return memory(), nil
	}

	pool, err := openPool(cfg.DatabaseURL, log)
	if err != nil {
		if cfg.IsProduction() {
			log.Error("postgres is required in production but unavailable", zap.Error(err))
			_ = log.Sync()
			run.Exit(1)
		}
		log.Warn("postgres unavailable, falling back to in-memory stores", zap.Error(err))
		return memory(), nil
	}

	log.Info("stores: postgres")
	return stores{
		Users:         store.NewPostgresUserStore(pool),
		Posts:         store.NewPostgresPostStore(pool),
		Comments:      store.NewPostgresCommentStore(pool),
		Reactions:     store.NewPostgresReactionStore(pool),
		Notifications: store.NewPostgresNotificationStore(pool),
	}, pool.Close
}

func openPool(dsn string, log *zap.Logger) (*pgxpool.Pool, error) {
	ctx := context.Background()
	pool, err := db.Open(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := store.Schema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	log.Info("schema bootstrap complete")
	return pool, nil
}

// initSink picks the notification path: NATS when available, otherwise
// direct inbox writes. Either way delivery stays best-effort.
func initSink(cfg config.AppConfig, inbox store.NotificationStore, log *zap.Logger) (notify.Sink, *nats.Conn) {
	if cfg.NATSURL == "" {
		log.Warn("NATS_URL not set, notifications write straight to the inbox store")
		return notify.StoreSink{Store: inbox}, nil
	}

	nc, err := natsconn.Connect(natsconn.Options{URL: cfg.NATSURL, Name: cfg.ServiceName})
	if err != nil {
		log.Warn("nats unavailable, notifications write straight to the inbox store", zap.Error(err))
		return notify.StoreSink{Store: inbox}, nil
	}

	pub, err := notify.NewPublisher(nc, log)
	if err != nil {
		log.Warn("jetstream unavailable, notifications write straight to the inbox store", zap.Error(err))
		nc.Close()
		return notify.StoreSink{Store: inbox}, nil
	}
	return pub, nc
}
