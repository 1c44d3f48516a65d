package apiapp

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	authsvc "github.com/dextiii09/pingnewapp/internal/services/auth"
	chatsvc "github.com/dextiii09/pingnewapp/internal/services/chat"
	dealssvc "github.com/dextiii09/pingnewapp/internal/services/deals"
	feedsvc "github.com/dextiii09/pingnewapp/internal/services/feed"
	likessvc "github.com/dextiii09/pingnewapp/internal/services/likes"
	matchessvc "github.com/dextiii09/pingnewapp/internal/services/matches"
	profilessvc "github.com/dextiii09/pingnewapp/internal/services/profiles"
	swipesvc "github.com/dextiii09/pingnewapp/internal/services/swipes"
	"github.com/dextiii09/pingnewapp/internal/transport/http/handlers"
)

type Dependencies struct {
	JWTManager      *authsvc.JWTManager
	FeedService     *feedsvc.Service
	SwipeService    *swipesvc.Service
	LikesService    *likessvc.Service
	MatchesService  *matchessvc.Service
	ChatService     *chatsvc.Service
	DealsService    *dealssvc.Service
	ProfilesService *profilessvc.Service
	Logger          *zap.Logger
}

func RegisterRoutes(r chi.Router, deps Dependencies) {
	healthHandler := handlers.NewHealthHandler()
	feedHandler := handlers.NewFeedHandler(deps.FeedService)
	swipeHandler := handlers.NewSwipeHandler(deps.SwipeService)
	likesHandler := handlers.NewLikesHandler(deps.LikesService)
	matchesHandler := handlers.NewMatchesHandler(deps.MatchesService)
	chatHandler := handlers.NewChatHandler(deps.ChatService)
	dealsHandler := handlers.NewDealsHandler(deps.DealsService)
	profileHandler := handlers.NewProfileHandler(deps.ProfilesService)

	authMW := AuthMiddleware(deps.JWTManager, deps.Logger)

	r.Get("/healthz", healthHandler.Get)

	r.Route("/v1", func(r chi.Router) {
		r.Use(authMW)

		r.Get("/feed", feedHandler.Get)
		r.Post("/swipes", swipeHandler.Handle)

		r.Get("/likes", likesHandler.Incoming)
		r.Get("/likes/unseen_count", likesHandler.UnseenCount)
		r.Post("/likes/seen", likesHandler.MarkSeen)

		r.Get("/matches", matchesHandler.List)
		r.Post("/matches/repair", matchesHandler.Repair)

		r.Route("/matches/{id}", func(r chi.Router) {
			r.Get("/messages", chatHandler.List)
			r.Post("/messages", chatHandler.Send)

			r.Post("/proposals", dealsHandler.CreateProposal)
			r.Post("/proposals/{proposal_id}/respond", dealsHandler.Respond)

			r.Get("/deal", dealsHandler.Get)
			r.Post("/deal/fund", dealsHandler.FundEscrow)
			r.Post("/deal/submit", dealsHandler.SubmitWork)
			r.Post("/deal/release", dealsHandler.ReleaseFunds)
		})

		r.Get("/profile/{id}", profileHandler.Get)
		r.Patch("/profile", profileHandler.Update)
	})
}
