// Package server exposes the scoring engines over HTTP.
package server

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/digbiz/insight-engine/internal/config"
	"github.com/digbiz/insight-engine/internal/deal"
	"github.com/digbiz/insight-engine/internal/market"
	"github.com/digbiz/insight-engine/internal/match"
	"github.com/digbiz/insight-engine/internal/store"
)

const apiVersion = "2.0.0"

// Server bundles the engines behind a chi router.
type Server struct {
	cfg       config.ServerConfig
	matcher   *match.Engine
	market    *market.Service
	predictor *deal.Predictor
	profiles  store.Store
	now       func() time.Time
	router    chi.Router
}

// New assembles the router. A nil clock defaults to time.Now.
func New(cfg config.ServerConfig, matcher *match.Engine, marketSvc *market.Service, predictor *deal.Predictor, profiles store.Store, clock func() time.Time) *Server {
	if clock == nil {
		clock = time.Now
	}
	s := &Server{
		cfg:       cfg,
		matcher:   matcher,
		market:    marketSvc,
		predictor: predictor,
		profiles:  profiles,
		now:       clock,
	}
	s.router = s.routes()
	return s
}

// Router returns the assembled HTTP handler.
func (s *Server) Router() chi.Router { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(requestLogger)
	r.Use(recoverer)
	if s.cfg.RateLimitRPS > 0 {
		r.Use(rateLimit(s.cfg.RateLimitRPS, s.cfg.RateBurst))
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/", s.handleHome)
	r.Get("/health", s.handleHealth)
	r.Post("/match", s.handleMatch)
	r.Post("/predict-meeting", s.handlePredictMeeting)
	r.Get("/market-trends", s.handleMarketTrends)
	r.Post("/predict-deal", s.handlePredictDeal)
	r.Post("/opportunities", s.handleOpportunities)

	r.Route("/profiles", func(r chi.Router) {
		r.Post("/", s.handleUpsertProfile)
		r.Get("/", s.handleListProfiles)
		r.Get("/{id}", s.handleGetProfile)
		r.Delete("/{id}", s.handleDeleteProfile)
	})

	return r
}
