// Package httpapi is the thin HTTP JSON adapter over the core service.
// It translates requests into core operations and the result envelope into
// status codes; it holds no business rules of its own.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/recordkeeper/internal/logging"
	"github.com/dmitrijs2005/recordkeeper/internal/server/core"
)

type Server struct {
	address   string
	logger    logging.Logger
	core      *core.Service
	jwtSecret []byte
}

func NewServer(address string, l logging.Logger, c *core.Service, secretKey string) *Server {
	return &Server{
		address:   address,
		logger:    l.With("module", "http_server"),
		core:      c,
		jwtSecret: []byte(secretKey),
	}
}

// Handler builds the route table. Record routes take the owner id from the
// verified access token, never from the request.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/ping", s.handlePing)
	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("POST /api/auth/refresh", s.handleRefresh)
	mux.HandleFunc("POST /api/auth/logout", s.handleLogout)

	mux.Handle("POST /api/auth/password", s.withAuth(s.handleChangePassword))
	mux.Handle("DELETE /api/auth/account", s.withAuth(s.handleDeleteAccount))

	mux.Handle("POST /api/users", s.withAuth(s.handleCreateRecord))
	mux.Handle("GET /api/users", s.withAuth(s.handleListRecords))
	mux.Handle("GET /api/users/{id}", s.withAuth(s.handleGetRecord))
	mux.Handle("PUT /api/users/{id}", s.withAuth(s.handleUpdateRecord))
	mux.Handle("DELETE /api/users/{id}", s.withAuth(s.handleDeleteRecord))
	mux.Handle("GET /api/users/search/{name}", s.withAuth(s.handleSearchRecords))
	mux.Handle("GET /api/stats", s.withAuth(s.handleStats))

	return s.withRequestLog(mux)
}

// Run starts the HTTP server and shuts it down gracefully when ctx is done.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
