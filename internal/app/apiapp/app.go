package apiapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/dextiii09/pingnewapp/internal/config"
	pgrepo "github.com/dextiii09/pingnewapp/internal/repo/postgres"
	redrepo "github.com/dextiii09/pingnewapp/internal/repo/redis"
	authsvc "github.com/dextiii09/pingnewapp/internal/services/auth"
	chatsvc "github.com/dextiii09/pingnewapp/internal/services/chat"
	dealssvc "github.com/dextiii09/pingnewapp/internal/services/deals"
	feedsvc "github.com/dextiii09/pingnewapp/internal/services/feed"
	likessvc "github.com/dextiii09/pingnewapp/internal/services/likes"
	matchessvc "github.com/dextiii09/pingnewapp/internal/services/matches"
	profilessvc "github.com/dextiii09/pingnewapp/internal/services/profiles"
	ratesvc "github.com/dextiii09/pingnewapp/internal/services/rate"
	swipesvc "github.com/dextiii09/pingnewapp/internal/services/swipes"
)

type App struct {
	cfg        config.Config
	logger     *zap.Logger
	server     *http.Server
	postgres   *pgxpool.Pool
	redis      *goredis.Client
	httpRouter http.Handler
}

func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	r := chi.NewRouter()
	ApplyMiddlewares(r, log)

	var pool *pgxpool.Pool
	if p, err := pgrepo.NewPool(ctx, cfg.Postgres.DSN); err != nil {
		log.Warn("postgres init failed, continuing in degraded mode", zap.Error(err))
	} else {
		pool = p
	}

	redisClient := redrepo.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	rateRepo := redrepo.NewRateRepo(redisClient)
	likesCacheRepo := redrepo.NewLikesCacheRepo(redisClient)

	userRepo := pgrepo.NewUserRepo(pool)
	swipeRepo := pgrepo.NewSwipeRepo(pool)
	receivedSwipeRepo := pgrepo.NewReceivedSwipeRepo(pool)
	matchRepo := pgrepo.NewMatchRepo(pool)
	messageRepo := pgrepo.NewMessageRepo(pool)
	proposalRepo := pgrepo.NewProposalRepo(pool)
	dealStateRepo := pgrepo.NewDealStateRepo(pool)

	jwtManager := authsvc.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTAccessTTL)
	rateLimiter := ratesvc.NewLimiter(rateRepo, cfg.Remote.Swipe.RatePerMinute, cfg.Remote.Swipe.RatePer10Sec)

	profileService := profilessvc.NewService(userRepo)
	feedService := feedsvc.NewService(feedsvc.Dependencies{
		Profiles: userRepo,
		Received: receivedSwipeRepo,
	}, feedsvc.Config{
		SuperLikeBoost:    cfg.Remote.Feed.SuperLikeBoost,
		DefaultMatchScore: cfg.Remote.Feed.DefaultMatchScore,
		MinPoolSize:       cfg.Remote.Feed.MinPoolSize,
		SeedPoolSize:      cfg.Remote.Feed.SeedPoolSize,
		MaxFeedSize:       cfg.Remote.Feed.MaxFeedSize,
	})
	swipeService := swipesvc.NewService(swipesvc.Dependencies{
		SwipeStore:    swipeRepo,
		ReceivedStore: receivedSwipeRepo,
		MatchStore:    matchRepo,
		Profiles:      userRepo,
		LikesCache:    likesCacheRepo,
		RateLimiter:   rateLimiter,
		Logger:        log,
	}, swipesvc.Config{
		MatchScoreNudge:   cfg.Remote.Swipe.MatchScoreNudge,
		DefaultMatchScore: cfg.Remote.Feed.DefaultMatchScore,
	})
	likesService := likessvc.NewService(likessvc.Dependencies{
		Ledger: receivedSwipeRepo,
		Cache:  likesCacheRepo,
		Logger: log,
	}, likessvc.Config{
		UnseenCountTTL: cfg.Remote.Likes.UnseenCountTTL,
		IncomingLimit:  cfg.Remote.Likes.IncomingLimit,
	})
	matchesService := matchessvc.NewService(matchessvc.Dependencies{
		MatchStore: matchRepo,
		SwipeStore: swipeRepo,
	})
	chatService := chatsvc.NewService(chatsvc.Dependencies{
		Pool:     pool,
		Messages: messageRepo,
		Matches:  matchRepo,
	})
	dealsService := dealssvc.NewService(dealssvc.Dependencies{
		Pool:      pool,
		Proposals: proposalRepo,
		States:    dealStateRepo,
		Messages:  messageRepo,
		Matches:   matchRepo,
	})

	RegisterRoutes(r, Dependencies{
		JWTManager:      jwtManager,
		FeedService:     feedService,
		SwipeService:    swipeService,
		LikesService:    likesService,
		MatchesService:  matchesService,
		ChatService:     chatService,
		DealsService:    dealsService,
		ProfilesService: profileService,
		Logger:          log,
	})

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	return &App{
		cfg:        cfg,
		logger:     log,
		server:     server,
		postgres:   pool,
		redis:      redisClient,
		httpRouter: r,
	}, nil
}

func (a *App) Run() error {
	a.logger.Info("api server started", zap.String("addr", a.cfg.HTTP.Addr))
	err := a.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (a *App) Shutdown(ctx context.Context) error {
	var shutdownErr error

	if err := a.server.Shutdown(ctx); err != nil {
		shutdownErr = err
	}
	if a.postgres != nil {
		a.postgres.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil && shutdownErr == nil {
			shutdownErr = err
		}
	}

	return shutdownErr
}

func (a *App) Handler() http.Handler {
	return a.httpRouter
}
