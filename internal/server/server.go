// Package server exposes the library's query and mutation surface over
// HTTP for the browser front end: JSON listings, blob streaming for
// playback and covers, multipart uploads and the auth/session endpoints.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rcavaliericopy-max/salomao/internal/auth"
	"github.com/rcavaliericopy-max/salomao/internal/library"
	"github.com/rcavaliericopy-max/salomao/internal/repositories"
	"github.com/rcavaliericopy-max/salomao/internal/shared"
)

// sessionUserKey is the session key holding the logged-in user id.
const sessionUserKey = "userID"

// Server wires the store, auth gateway and seeder to HTTP handlers.
type Server struct {
	cfg      shared.ServerConfig
	store    *repositories.Store
	gateway  *auth.Gateway
	seeder   *library.Seeder
	sessions *scs.SessionManager
	logger   *log.Logger
}

// New creates a Server. Sessions are persisted in the same SQLite
// database as the library so a restart keeps users logged in.
func New(cfg shared.ServerConfig, store *repositories.Store, gateway *auth.Gateway, seeder *library.Seeder, logger *log.Logger) (*Server, error) {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	db, err := store.DB()
	if err != nil {
		return nil, err
	}

	sessions := scs.New()
	sessions.Store = sqlite3store.New(db)
	sessions.Lifetime = 30 * 24 * time.Hour
	sessions.Cookie.HttpOnly = true
	sessions.Cookie.SameSite = http.SameSiteLaxMode

	return &Server{
		cfg:      cfg,
		store:    store,
		gateway:  gateway,
		seeder:   seeder,
		sessions: sessions,
		logger:   logger,
	}, nil
}

// Router assembles the chi route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(60 * time.Second))
	r.Use(s.logRequests)
	r.Use(s.sessions.LoadAndSave)

	r.Get("/health", s.handleHealth)

	if s.cfg.AssetsDir != "" {
		fs := http.StripPrefix("/audio/", http.FileServer(http.Dir(s.cfg.AssetsDir)))
		r.Handle("/audio/*", fs)
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/signup", s.handleSignup)
		r.Post("/auth/login", s.handleLogin)
		r.Post("/auth/logout", s.handleLogout)
		r.Get("/auth/me", s.handleMe)

		r.Get("/folders", s.handleListFolders)
		r.Get("/folders/{id}", s.handleGetFolder)
		r.Get("/folders/{id}/cover", s.handleFolderCover)
		r.Get("/tracks", s.handleListTracks)
		r.Get("/tracks/{id}/audio", s.handleTrackAudio)
		r.Get("/settings/{key}", s.handleGetSetting)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAdmin)

			r.Post("/folders", s.handleCreateFolder)
			r.Put("/folders/{id}", s.handleUpdateFolder)
			r.Delete("/folders/{id}", s.handleDeleteFolder)

			r.Post("/tracks", s.handleUploadTrack)
			r.Patch("/tracks/{id}", s.handleMoveTrack)
			r.Delete("/tracks/{id}", s.handleDeleteTrack)

			r.Put("/settings/{key}", s.handlePutSetting)
			r.Post("/library/repair", s.handleRepair)
		})
	})

	return r
}

// Listen serves HTTP until the context is canceled, then shuts down
// gracefully.
func (s *Server) Listen(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	db, err := s.store.DB()
	if err == nil {
		err = db.PingContext(r.Context())
	}
	if err != nil {
		s.writeError(w, http.StatusServiceUnavailable, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// logRequests emits one structured log line per request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
		)
	})
}
