package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/neardeal/neardeal-backend/api/controllers"
	"github.com/neardeal/neardeal-backend/api/middleware"
	"github.com/neardeal/neardeal-backend/internal/auth"
	"github.com/neardeal/neardeal-backend/internal/coupons"
	"github.com/neardeal/neardeal-backend/internal/events"
	"github.com/neardeal/neardeal-backend/internal/favorites"
	"github.com/neardeal/neardeal-backend/internal/items"
	"github.com/neardeal/neardeal-backend/internal/organizations"
	"github.com/neardeal/neardeal-backend/internal/reviews"
	"github.com/neardeal/neardeal-backend/internal/stores"
	"github.com/neardeal/neardeal-backend/internal/users"
	"github.com/neardeal/neardeal-backend/pkg/config"
	"github.com/neardeal/neardeal-backend/pkg/db"
	"github.com/neardeal/neardeal-backend/pkg/enums"
	"github.com/neardeal/neardeal-backend/pkg/logger"
	"github.com/neardeal/neardeal-backend/pkg/redis"
)

// Deps bundles everything the router wires into handlers.
type Deps struct {
	Config *config.Config
	Logger *logger.Logger

	DB       db.Pinger
	Redis    *redis.Client
	Registry prometheus.Gatherer

	Auth          auth.Service
	Users         users.Service
	Stores        stores.Service
	Items         items.Service
	Reviews       reviews.Service
	Events        events.Service
	Organizations organizations.Service
	Favorites     favorites.Service

	Coupons    coupons.Service
	Issuance   *coupons.IssuanceService
	Activation *coupons.ActivationStateMachine
	Redemption *coupons.RedemptionVerifier
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	// a typed nil *redis.Client must not masquerade as a live store
	var idemStore redis.IdempotencyStore
	var rateStore redis.RateLimiterStore
	var redisPinger redis.Pinger
	if deps.Redis != nil {
		idemStore = deps.Redis
		rateStore = deps.Redis
		redisPinger = deps.Redis
	}

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, redisPinger))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, rateStore, logg)).Post("/login", controllers.AuthLogin(deps.Auth, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, rateStore, logg)).Post("/register", controllers.AuthRegister(deps.Auth, logg))
	})

	// browse surface: no credentials needed
	r.Route("/api/v1/public", func(r chi.Router) {
		r.Get("/stores", controllers.StoreList(deps.Stores, logg))
		r.Get("/stores/{storeId}", controllers.StoreDetail(deps.Stores, logg))
		r.Get("/stores/{storeId}/items", controllers.ItemListByStore(deps.Items, logg))
		r.Get("/stores/{storeId}/reviews", controllers.ReviewListByStore(deps.Reviews, logg))
		r.Get("/stores/{storeId}/coupons", controllers.CouponListByStore(deps.Coupons, logg))
		r.Get("/events", controllers.EventList(deps.Events, logg))
		r.Get("/events/{eventId}", controllers.EventDetail(deps.Events, logg))
		r.Get("/organizations", controllers.OrganizationList(deps.Organizations, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.Idempotency(idemStore, logg))

		r.Route("/users", func(r chi.Router) {
			r.Get("/me", controllers.UserMe(deps.Users, logg))
			r.Patch("/me", controllers.UserUpdateMe(deps.Users, logg))
		})

		r.Route("/stores", func(r chi.Router) {
			r.Get("/", controllers.StoreList(deps.Stores, logg))
			r.Post("/", controllers.StoreCreate(deps.Stores, logg))
			r.Get("/mine", controllers.StoreListMine(deps.Stores, logg))
			r.Route("/{storeId}", func(r chi.Router) {
				r.Get("/", controllers.StoreDetail(deps.Stores, logg))
				r.Put("/", controllers.StoreUpdate(deps.Stores, logg))
				r.Delete("/", controllers.StoreDelete(deps.Stores, logg))

				r.Get("/items", controllers.ItemListByStore(deps.Items, logg))
				r.Post("/items", controllers.ItemCreate(deps.Items, logg))

				r.Get("/reviews", controllers.ReviewListByStore(deps.Reviews, logg))
				r.Post("/reviews", controllers.ReviewCreate(deps.Reviews, logg))

				r.Get("/coupons", controllers.CouponListByStore(deps.Coupons, logg))
				r.Post("/coupons", controllers.CouponCreate(deps.Coupons, logg))
				r.Post("/coupons/verify", controllers.CouponVerify(deps.Redemption, deps.Stores, logg))

				r.Post("/favorite", controllers.FavoriteToggle(deps.Favorites, logg))
			})
		})

		r.Route("/items/{itemId}", func(r chi.Router) {
			r.Patch("/", controllers.ItemUpdate(deps.Items, logg))
			r.Delete("/", controllers.ItemDelete(deps.Items, logg))
		})

		r.Route("/reviews/{reviewId}", func(r chi.Router) {
			r.Post("/reply", controllers.ReviewReply(deps.Reviews, logg))
			r.Delete("/", controllers.ReviewDelete(deps.Reviews, logg))
		})

		r.Route("/coupons/{couponId}", func(r chi.Router) {
			r.Patch("/", controllers.CouponUpdate(deps.Coupons, logg))
			r.Delete("/", controllers.CouponDelete(deps.Coupons, logg))
			r.Post("/issue", controllers.CouponIssue(deps.Issuance, logg))
		})

		r.Route("/my-coupons", func(r chi.Router) {
			r.Get("/", controllers.CouponListMine(deps.Coupons, logg))
			r.Post("/{issuanceId}/activate", controllers.CouponActivate(deps.Activation, logg))
		})

		r.Route("/my", func(r chi.Router) {
			r.Get("/favorites", controllers.FavoriteList(deps.Favorites, logg))
			r.Get("/organizations", controllers.OrganizationListMine(deps.Organizations, logg))
		})

		r.Route("/organizations/{organizationId}", func(r chi.Router) {
			r.Post("/join", controllers.OrganizationJoin(deps.Organizations, logg))
			r.Delete("/join", controllers.OrganizationLeave(deps.Organizations, logg))
		})

		r.Route("/events", func(r chi.Router) {
			r.Get("/", controllers.EventList(deps.Events, logg))
			r.Get("/{eventId}", controllers.EventDetail(deps.Events, logg))
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(string(enums.UserRoleAdmin), logg))
				r.Post("/", controllers.EventCreate(deps.Events, logg))
				r.Patch("/{eventId}", controllers.EventUpdate(deps.Events, logg))
				r.Delete("/{eventId}", controllers.EventDelete(deps.Events, logg))
			})
		})
	})

	return r
}
