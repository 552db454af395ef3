package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"

	"github.com/mrsyedhasan/congresstrading/internal/config"
	"github.com/mrsyedhasan/congresstrading/internal/database"
)

// Server exposes the trade database over a JSON API.
type Server struct {
	cfg    *config.Config
	db     *database.DB
	router chi.Router
}

func New(cfg *config.Config, db *database.DB) *Server {
	s := &Server{cfg: cfg, db: db}
	s.router = s.buildRouter()
	return s
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(rateLimit(rate.Limit(50), 100))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Route("/trades", func(r chi.Router) {
			r.Get("/", s.handleListTrades)
			r.Get("/recent", s.handleRecentTrades)
			r.Get("/stats", s.handleStats)
			r.Get("/by-member/{memberID}", s.handleTradesByMember)
			r.Get("/by-ticker/{ticker}", s.handleTradesByTicker)
			r.Get("/{id}", s.handleGetTrade)
		})

		r.Route("/members", func(r chi.Router) {
			r.Get("/", s.handleListMembers)
			r.Get("/most-active", s.handleMostActiveMembers)
			r.Get("/by-chamber/{chamber}", s.handleMembersByChamber)
			r.Get("/by-state/{state}", s.handleMembersByState)
			r.Get("/by-party/{party}", s.handleMembersByParty)
			r.Get("/search/{name}", s.handleSearchMembers)
			r.Get("/{id}", s.handleGetMember)
		})

		r.Route("/committees", func(r chi.Router) {
			r.Get("/", s.handleListCommittees)
			r.Get("/main", s.handleMainCommittees)
			r.Get("/subcommittees", s.handleSubcommittees)
			r.Get("/by-chamber/{chamber}", s.handleCommitteesByChamber)
			r.Get("/member/{memberID}/committees", s.handleMemberCommittees)
			r.Get("/{id}", s.handleGetCommittee)
			r.Get("/{id}/members", s.handleCommitteeMembers)
			r.Get("/{id}/memberships", s.handleCommitteeMemberships)
		})

		r.Post("/collect-data", s.handleCollectData)
	})

	return r
}

// rateLimit applies a global token bucket to all requests.
func rateLimit(limit rate.Limit, burst int) func(http.Handler) http.Handler {
	limiter := rate.NewLimiter(limit, burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Serve runs the HTTP server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down server: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving: %w", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
