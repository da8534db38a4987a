package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/recordkeeper/internal/server/auth"
	"github.com/dmitrijs2005/recordkeeper/internal/server/core"
)

type ctxKey string

const ownerIDKey ctxKey = "ownerID"

// ownerID extracts the authenticated account id placed in the context by
// withAuth. The second value is false on unauthenticated requests.
func ownerID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(ownerIDKey).(int64)
	return id, ok
}

// withAuth verifies the bearer access token and stores the account id in
// the request context. Requests without a valid token get a 401 envelope.
func (s *Server) withAuth(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			writeError(w, http.StatusUnauthorized, "missing access token")
			return
		}

		accountID, err := auth.GetAccountIDFromToken(token, s.jwtSecret)
		if err != nil {
			writeResult(w, core.Result{Error: err.Error(), Err: err}, http.StatusOK)
			return
		}

		ctx := context.WithValue(r.Context(), ownerIDKey, accountID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// statusRecorder captures the response status for the request log.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withRequestLog tags each request with a generated id and logs method,
// path, status, and duration.
func (s *Server) withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-Id", requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)

		s.logger.Info(r.Context(), "request",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start).String(),
		)
	})
}
